package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"luma-service/internal/models"
	"luma-service/internal/testutil"

	"github.com/google/uuid"
)

func seedClient(t *testing.T, repo *Repository) *models.Client {
	t.Helper()
	c := &models.Client{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		CreatedAt: time.Now(),
	}
	if err := repo.Clients.Create(context.Background(), c); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

func seedOrder(t *testing.T, repo *Repository, clientID uuid.UUID, status models.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()
	o := &models.Order{
		ID:        uuid.New(),
		ClientID:  clientID,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := repo.Orders.Create(context.Background(), o); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return o
}

func TestOrderRepoCreateAndGet(t *testing.T) {
	repo := New(testutil.SetupTestDB(t))
	ctx := context.Background()

	client := seedClient(t, repo)
	order := seedOrder(t, repo, client.ID, models.OrderStatusPending, time.Now())

	items := []models.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: uuid.New(), Quantity: 2, CreatedAt: time.Now()},
		{ID: uuid.New(), OrderID: order.ID, ProductID: uuid.New(), Quantity: 1, CreatedAt: time.Now()},
	}
	if err := repo.Items.BulkCreate(ctx, items); err != nil {
		t.Fatalf("bulk create items: %v", err)
	}

	got, err := repo.Orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got == nil {
		t.Fatal("expected order, got nil")
	}
	if got.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
	if len(got.Items) != 2 {
		t.Errorf("preloaded items = %d, want 2", len(got.Items))
	}
}

func TestOrderRepoGetMissingReturnsNil(t *testing.T) {
	repo := New(testutil.SetupTestDB(t))

	got, err := repo.Orders.GetByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing order, got %+v", got)
	}
}

func TestOrderRepoGetByIDForClient(t *testing.T) {
	repo := New(testutil.SetupTestDB(t))
	ctx := context.Background()

	owner := seedClient(t, repo)
	other := seedClient(t, repo)
	order := seedOrder(t, repo, owner.ID, models.OrderStatusPending, time.Now())

	got, err := repo.Orders.GetByIDForClient(ctx, order.ID, owner.ID)
	if err != nil || got == nil {
		t.Fatalf("owner lookup: got %v, err %v", got, err)
	}

	got, err = repo.Orders.GetByIDForClient(ctx, order.ID, other.ID)
	if err != nil {
		t.Fatalf("foreign lookup: %v", err)
	}
	if got != nil {
		t.Error("foreign client must not see the order")
	}
}

func TestOrderRepoList(t *testing.T) {
	repo := New(testutil.SetupTestDB(t))
	ctx := context.Background()

	a := seedClient(t, repo)
	b := seedClient(t, repo)

	base := time.Now().Add(-time.Hour)
	seedOrder(t, repo, a.ID, models.OrderStatusPending, base)
	newest := seedOrder(t, repo, a.ID, models.OrderStatusShipped, base.Add(time.Minute))
	seedOrder(t, repo, b.ID, models.OrderStatusPending, base.Add(2*time.Minute))

	list, total, err := repo.Orders.List(ctx, OrderListFilter{ClientID: &a.ID})
	if err != nil {
		t.Fatalf("list by client: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("client filter: total=%d len=%d, want 2/2", total, len(list))
	}
	if list[0].ID != newest.ID {
		t.Error("list must be newest first")
	}

	shipped := models.OrderStatusShipped
	list, total, err = repo.Orders.List(ctx, OrderListFilter{Status: &shipped})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if total != 1 || list[0].ID != newest.ID {
		t.Errorf("status filter: total=%d, want the shipped order", total)
	}
}

func TestOrderRepoUpdateStatus(t *testing.T) {
	repo := New(testutil.SetupTestDB(t))
	ctx := context.Background()

	client := seedClient(t, repo)
	order := seedOrder(t, repo, client.ID, models.OrderStatusPending, time.Now())

	if err := repo.Orders.UpdateStatus(ctx, order.ID, models.OrderStatusReady); err != nil {
		t.Fatalf("update status: %v", err)
	}

	got, err := repo.Orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.Status != models.OrderStatusReady {
		t.Errorf("status = %s, want ready", got.Status)
	}
}

func TestOrderRepoWithTxRollsBack(t *testing.T) {
	repo := New(testutil.SetupTestDB(t))
	ctx := context.Background()

	client := seedClient(t, repo)
	orderID := uuid.New()
	boom := errors.New("boom")

	err := repo.Orders.WithTx(ctx, func(or OrderRepo, ir OrderItemRepo, tr TrackingRepo) error {
		if err := or.Create(ctx, &models.Order{
			ID:        orderID,
			ClientID:  client.ID,
			Status:    models.OrderStatusPending,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}); err != nil {
			return err
		}
		if err := tr.Append(ctx, &models.TrackingEntry{
			OrderID:   orderID,
			Status:    models.OrderStatusPending,
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx err = %v, want boom", err)
	}

	exists, err := repo.Orders.Exists(ctx, orderID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("order must be rolled back")
	}
	cnt, err := repo.Tracking.CountByOrderID(ctx, orderID)
	if err != nil {
		t.Fatalf("count tracking: %v", err)
	}
	if cnt != 0 {
		t.Errorf("tracking entries = %d, want 0 after rollback", cnt)
	}
}

func TestOrderRepoDelete(t *testing.T) {
	repo := New(testutil.SetupTestDB(t))
	ctx := context.Background()

	client := seedClient(t, repo)
	order := seedOrder(t, repo, client.ID, models.OrderStatusPending, time.Now())

	rows, err := repo.Orders.Delete(ctx, order.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows affected = %d, want 1", rows)
	}

	rows, err = repo.Orders.Delete(ctx, order.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if rows != 0 {
		t.Errorf("second delete rows = %d, want 0", rows)
	}
}
