package handlers

import (
	"net/http"
	"strconv"

	"luma-service/internal/dto"
	"luma-service/internal/middleware"
	"luma-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	svc *service.CatalogService
	log *zap.Logger
}

func NewCatalogHandler(svc *service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	p, err := h.svc.CreateProduct(middleware.CallerContext(c), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromProduct(p))
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid product id"))
		return
	}

	p, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(p))
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	limit, offset := pagination(c)
	list, total, err := h.svc.ListProducts(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromProduct(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": out, "total": total})
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid product id"))
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	p, err := h.svc.UpdateProduct(middleware.CallerContext(c), id, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(p))
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid product id"))
		return
	}

	if err := h.svc.DeleteProduct(middleware.CallerContext(c), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) CreateSupply(c *gin.Context) {
	var req dto.SupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	s, err := h.svc.CreateSupply(middleware.CallerContext(c), service.SupplyInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromSupply(s))
}

func (h *CatalogHandler) GetSupply(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid supply id"))
		return
	}

	s, err := h.svc.GetSupply(middleware.CallerContext(c), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSupply(s))
}

func (h *CatalogHandler) ListSupplies(c *gin.Context) {
	limit, offset := pagination(c)
	list, total, err := h.svc.ListSupplies(middleware.CallerContext(c), limit, offset)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	out := make([]dto.SupplyResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromSupply(s))
	}
	c.JSON(http.StatusOK, gin.H{"supplies": out, "total": total})
}

func (h *CatalogHandler) UpdateSupply(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid supply id"))
		return
	}

	var req dto.SupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	s, err := h.svc.UpdateSupply(middleware.CallerContext(c), id, service.SupplyInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSupply(s))
}

func (h *CatalogHandler) DeleteSupply(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid supply id"))
		return
	}

	if err := h.svc.DeleteSupply(middleware.CallerContext(c), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
