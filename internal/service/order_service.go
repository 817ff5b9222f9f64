package service

import (
	"context"
	"encoding/json"
	"time"

	"luma-service/internal/models"
	"luma-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// initialComment is appended atomically with every new order.
const initialComment = "order received"

type orderService struct {
	repo   *repository.Repository
	events EventBus
	cache  TrackingCache
	now    func() time.Time
	log    *zap.Logger
}

// NewOrderService wires the order lifecycle. events and cache may be nil,
// which disables publishing and tracking-cache lookups.
func NewOrderService(repo *repository.Repository, events EventBus, cache TrackingCache, log *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		events: events,
		cache:  cache,
		now:    time.Now,
		log:    log,
	}
}

func (s *orderService) validateItems(ctx context.Context, items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return ErrQuantityInvalid
		}
		ids = append(ids, it.ProductID)
	}
	ok, err := s.repo.Products.ExistAll(ctx, ids)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

// resolveClient finds the caller's client profile, creating it on first
// order placement.
func (s *orderService) resolveClient(ctx context.Context, userID uuid.UUID, phone *string) (*models.Client, error) {
	cl, err := s.repo.Clients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cl != nil {
		return cl, nil
	}
	cl = &models.Client{
		ID:        uuid.New(),
		UserID:    userID,
		Phone:     phone,
		CreatedAt: s.now(),
	}
	if err := s.repo.Clients.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validateItems(ctx, in.Items); err != nil {
		return nil, err
	}

	client, err := s.resolveClient(ctx, userID, in.Phone)
	if err != nil {
		return nil, err
	}

	var (
		order *models.Order
		now   = s.now()
	)

	err = s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, ir repository.OrderItemRepo, tr repository.TrackingRepo) error {
		order = &models.Order{
			ID:        uuid.New(),
			ClientID:  client.ID,
			Status:    models.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := or.Create(ctx, order); err != nil {
			return err
		}

		itemsDB := make([]models.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			itemsDB = append(itemsDB, models.OrderItem{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				CreatedAt: now,
			})
		}
		if err := ir.BulkCreate(ctx, itemsDB); err != nil {
			return err
		}

		// The initial ledger entry is mandatory and atomic with the order.
		if err := tr.Append(ctx, &models.TrackingEntry{
			OrderID:   order.ID,
			Status:    models.OrderStatusPending,
			Comment:   initialComment,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		ordWith, err := or.GetByID(ctx, order.ID)
		if err != nil {
			return err
		}
		order = ordWith
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		evItems := make([]OrderItemEvent, 0, len(order.Items))
		for _, it := range order.Items {
			evItems = append(evItems, OrderItemEvent{ProductID: it.ProductID, Quantity: it.Quantity})
		}
		_ = s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
			OrderID:   order.ID,
			ClientID:  order.ClientID,
			Items:     evItems,
			Status:    order.Status,
			CreatedAt: order.CreatedAt,
		})
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var ord *models.Order
	if isStaff(role) {
		ord, err = s.repo.Orders.GetByID(ctx, id)
	} else {
		client, cerr := s.repo.Clients.GetByUserID(ctx, userID)
		if cerr != nil {
			return nil, cerr
		}
		if client == nil {
			return nil, ErrOrderNotFound
		}
		ord, err = s.repo.Orders.GetByIDForClient(ctx, id, client.ID)
	}
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}

	if !isStaff(role) {
		client, cerr := s.repo.Clients.GetByUserID(ctx, userID)
		if cerr != nil {
			return nil, 0, cerr
		}
		if client == nil {
			return []models.Order{}, 0, nil
		}
		f.ClientID = &client.ID
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	ordersPtr, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{
		ClientID: f.ClientID,
		Status:   f.Status,
		Limit:    f.Limit,
		Offset:   f.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

// ReplaceItems swaps an order's line items wholesale. It does not touch the
// ledger: an item edit is not a status change.
func (s *orderService) ReplaceItems(ctx context.Context, id uuid.UUID, items []CreateOrderItem) (*models.Order, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}

	if err := s.validateItems(ctx, items); err != nil {
		return nil, err
	}

	var order *models.Order
	now := s.now()

	err := s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, ir repository.OrderItemRepo, tr repository.TrackingRepo) error {
		ok, err := or.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOrderNotFound
		}

		if _, err := ir.DeleteByOrderID(ctx, id); err != nil {
			return err
		}

		itemsDB := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			itemsDB = append(itemsDB, models.OrderItem{
				ID:        uuid.New(),
				OrderID:   id,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				CreatedAt: now,
			})
		}
		if err := ir.BulkCreate(ctx, itemsDB); err != nil {
			return err
		}

		order, err = or.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) AdvanceStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, comment string) (*models.TrackingEntry, error) {
	userID, _, err := requireStaff(ctx)
	if err != nil {
		return nil, err
	}

	if !models.ValidOrderStatus(status) {
		return nil, ErrUnknownStatus
	}

	// Actor attribution: the caller's employee profile, if one exists.
	// Admins without a profile produce unattributed entries.
	var actorID *uuid.UUID
	emp, err := s.repo.Employees.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if emp != nil {
		actorID = &emp.ID
	}

	var entry *models.TrackingEntry

	err = s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, ir repository.OrderItemRepo, tr repository.TrackingRepo) error {
		// Row lock serializes concurrent advances; last committer wins and
		// the denormalized status always matches the newest entry.
		ord, err := or.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if ord == nil {
			return ErrOrderNotFound
		}
		if !ord.Status.CanTransitionTo(status) {
			return ErrIllegalTransition
		}

		entry = &models.TrackingEntry{
			OrderID:    id,
			Status:     status,
			EmployeeID: actorID,
			Comment:    comment,
			CreatedAt:  s.now(),
		}
		if err := tr.Append(ctx, entry); err != nil {
			return err
		}
		return or.UpdateStatus(ctx, id, status)
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateTracking(ctx, id); err != nil {
			s.log.Warn("tracking cache invalidation failed", zap.String("order_id", id.String()), zap.Error(err))
		}
	}
	if s.events != nil {
		_ = s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
			OrderID:    id,
			Status:     status,
			EmployeeID: actorID,
			Comment:    comment,
			ChangedAt:  entry.CreatedAt,
		})
	}

	return entry, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if _, _, err := requireStaff(ctx); err != nil {
		return err
	}

	err := s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, ir repository.OrderItemRepo, tr repository.TrackingRepo) error {
		ok, err := or.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOrderNotFound
		}

		if _, err := tr.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		if _, err := ir.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		_, err = or.Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateTracking(ctx, id); err != nil {
			s.log.Warn("tracking cache invalidation failed", zap.String("order_id", id.String()), zap.Error(err))
		}
	}
	return nil
}

// TrackOrder is the public read path. Full ledger for staff and the owning
// client, redacted (status + timestamp only) for everyone else.
func (s *orderService) TrackOrder(ctx context.Context, id uuid.UUID) (*TrackingView, error) {
	userID, uidOK := UserIDFromContext(ctx)
	role, _ := RoleFromContext(ctx)

	// Anonymous callers only ever see the redacted projection, so a cache
	// hit can short-circuit the store entirely.
	if !uidOK && s.cache != nil {
		if payload, err := s.cache.GetTracking(ctx, id); err == nil && len(payload) > 0 {
			var view TrackingView
			if err := json.Unmarshal(payload, &view); err == nil {
				return &view, nil
			}
		}
	}

	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	authorized := false
	if uidOK {
		if isStaff(role) {
			authorized = true
		} else {
			client, cerr := s.repo.Clients.GetByUserID(ctx, userID)
			if cerr != nil {
				return nil, cerr
			}
			authorized = client != nil && client.ID == ord.ClientID
		}
	}

	entries, err := s.repo.Tracking.ListByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &TrackingView{
		OrderID:   ord.ID,
		Status:    ord.Status,
		CreatedAt: ord.CreatedAt,
		Redacted:  !authorized,
		Entries:   make([]TrackingEntryView, 0, len(entries)),
	}
	for _, e := range entries {
		ev := TrackingEntryView{Status: e.Status, CreatedAt: e.CreatedAt}
		if authorized {
			c := e.Comment
			ev.Comment = &c
			ev.EmployeeID = e.EmployeeID
		}
		view.Entries = append(view.Entries, ev)
	}

	if !authorized && s.cache != nil {
		if payload, err := json.Marshal(view); err == nil {
			_ = s.cache.SetTracking(ctx, id, payload)
		}
	}

	return view, nil
}
