package handlers

import (
	"net/http"
	"strconv"

	"luma-service/internal/dto"
	"luma-service/internal/middleware"
	"luma-service/internal/models"
	"luma-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	svc service.OrderService
	log *zap.Logger
}

func NewOrderHandler(svc service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

func toServiceItems(items []dto.OrderItemRequest) []service.CreateOrderItem {
	out := make([]service.CreateOrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, service.CreateOrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create order request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	order, err := h.svc.CreateOrder(middleware.CallerContext(c), service.CreateOrderInput{
		Items: toServiceItems(req.Items),
		Phone: req.Phone,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromOrder(order))
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id"))
		return
	}

	order, err := h.svc.GetOrder(middleware.CallerContext(c), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOrder(order))
}

func (h *OrderHandler) List(c *gin.Context) {
	var f service.ListFilter
	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(s)
		if !models.ValidOrderStatus(st) {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("unknown order status"))
			return
		}
		f.Status = &st
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := h.svc.ListOrders(middleware.CallerContext(c), f)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	resp := dto.ListOrdersResponse{
		Orders: make([]dto.OrderResponse, 0, len(orders)),
		Total:  total,
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, dto.FromOrder(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) ReplaceItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id"))
		return
	}

	var req dto.ReplaceItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	order, err := h.svc.ReplaceItems(middleware.CallerContext(c), id, toServiceItems(req.Items))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOrder(order))
}

func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id"))
		return
	}

	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	entry, err := h.svc.AdvanceStatus(middleware.CallerContext(c), id, models.OrderStatus(req.Status), req.Comment)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.TrackingEntryResponse{
		Status:     string(entry.Status),
		Comment:    &entry.Comment,
		EmployeeID: entry.EmployeeID,
		CreatedAt:  entry.CreatedAt,
	})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id"))
		return
	}

	if err := h.svc.DeleteOrder(middleware.CallerContext(c), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Track is the public tracking endpoint: anyone may look an order up by id,
// the access gate in the service decides how much is disclosed.
func (h *OrderHandler) Track(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id"))
		return
	}

	view, err := h.svc.TrackOrder(middleware.CallerContext(c), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTrackingView(view))
}
