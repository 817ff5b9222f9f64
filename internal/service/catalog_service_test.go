package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"luma-service/internal/models"
	"luma-service/internal/repository"
	"luma-service/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newCatalogTestEnv(t *testing.T) (*repository.Repository, *CatalogService) {
	t.Helper()
	repo := repository.New(testutil.SetupTestDB(t))
	return repo, NewCatalogService(repo, zap.NewNop())
}

func TestProductCRUD(t *testing.T) {
	_, svc := newCatalogTestEnv(t)
	ctx := staffCtx(uuid.New(), models.RoleAdmin)

	p, err := svc.CreateProduct(ctx, ProductInput{Name: "shelf", PriceCents: 4990, Stock: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Reads are public.
	got, err := svc.GetProduct(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "shelf" || got.PriceCents != 4990 {
		t.Errorf("got %+v", got)
	}

	updated, err := svc.UpdateProduct(ctx, p.ID, ProductInput{Name: "tall shelf", PriceCents: 5990, Stock: 2})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "tall shelf" || updated.PriceCents != 5990 || updated.Stock != 2 {
		t.Errorf("update not applied: %+v", updated)
	}

	list, total, err := svc.ListProducts(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Errorf("list total=%d len=%d, want 1/1", total, len(list))
	}

	if err := svc.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetProduct(context.Background(), p.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("get deleted err = %v, want not found", err)
	}
	if err := svc.DeleteProduct(ctx, p.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("second delete err = %v, want not found", err)
	}
}

func TestProductWritesAreStaffOnly(t *testing.T) {
	_, svc := newCatalogTestEnv(t)
	in := ProductInput{Name: "shelf", PriceCents: 100}

	if _, err := svc.CreateProduct(context.Background(), in); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("anonymous err = %v, want unauthorized", err)
	}
	if _, err := svc.CreateProduct(clientCtx(uuid.New()), in); !errors.Is(err, ErrForbidden) {
		t.Errorf("client err = %v, want forbidden", err)
	}
	if _, err := svc.UpdateProduct(clientCtx(uuid.New()), uuid.New(), in); !errors.Is(err, ErrForbidden) {
		t.Errorf("client update err = %v, want forbidden", err)
	}
	if err := svc.DeleteProduct(clientCtx(uuid.New()), uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Errorf("client delete err = %v, want forbidden", err)
	}
}

func TestProductInputValidation(t *testing.T) {
	_, svc := newCatalogTestEnv(t)
	ctx := staffCtx(uuid.New(), models.RoleEmployee)

	bad := []ProductInput{
		{Name: "", PriceCents: 100},
		{Name: "   ", PriceCents: 100},
		{Name: "shelf", PriceCents: -1},
		{Name: "shelf", PriceCents: 100, Stock: -1},
	}
	for i, in := range bad {
		if _, err := svc.CreateProduct(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want invalid input", i, err)
		}
	}
}

func TestDeleteProductInUse(t *testing.T) {
	repo, svc := newCatalogTestEnv(t)
	ctx := staffCtx(uuid.New(), models.RoleAdmin)

	p, err := svc.CreateProduct(ctx, ProductInput{Name: "chair", PriceCents: 2500})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A referencing order item blocks deletion; history must stay resolvable.
	if err := repo.Items.BulkCreate(context.Background(), []models.OrderItem{
		{ID: uuid.New(), OrderID: uuid.New(), ProductID: p.ID, Quantity: 1, CreatedAt: time.Now()},
	}); err != nil {
		t.Fatalf("seed item: %v", err)
	}

	if err := svc.DeleteProduct(ctx, p.ID); !errors.Is(err, ErrProductInUse) {
		t.Errorf("err = %v, want product in use", err)
	}
	if _, err := svc.GetProduct(context.Background(), p.ID); err != nil {
		t.Errorf("product must survive the refused delete: %v", err)
	}
}

func TestSupplyCRUD(t *testing.T) {
	_, svc := newCatalogTestEnv(t)
	ctx := staffCtx(uuid.New(), models.RoleEmployee)

	s, err := svc.CreateSupply(ctx, SupplyInput{Name: "oak board", Quantity: 40, Unit: "pcs"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetSupply(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Unit != "pcs" || got.Quantity != 40 {
		t.Errorf("got %+v", got)
	}

	updated, err := svc.UpdateSupply(ctx, s.ID, SupplyInput{Name: "oak board", Quantity: 25, Unit: "pcs"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Quantity != 25 {
		t.Errorf("quantity = %d, want 25", updated.Quantity)
	}

	if err := svc.DeleteSupply(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetSupply(ctx, s.ID); !errors.Is(err, ErrSupplyNotFound) {
		t.Errorf("get deleted err = %v, want not found", err)
	}
}

// Supplies are internal inventory, so even reads need a staff caller.
func TestSuppliesAreStaffOnly(t *testing.T) {
	_, svc := newCatalogTestEnv(t)
	ctx := clientCtx(uuid.New())

	if _, err := svc.GetSupply(ctx, uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Errorf("get err = %v, want forbidden", err)
	}
	if _, _, err := svc.ListSupplies(ctx, 10, 0); !errors.Is(err, ErrForbidden) {
		t.Errorf("list err = %v, want forbidden", err)
	}
	if _, err := svc.CreateSupply(ctx, SupplyInput{Name: "glue", Quantity: 1, Unit: "l"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("create err = %v, want forbidden", err)
	}
}

func TestSupplyInputValidation(t *testing.T) {
	_, svc := newCatalogTestEnv(t)
	ctx := staffCtx(uuid.New(), models.RoleAdmin)

	bad := []SupplyInput{
		{Name: "", Quantity: 1, Unit: "pcs"},
		{Name: "glue", Quantity: 1, Unit: ""},
		{Name: "glue", Quantity: -1, Unit: "l"},
	}
	for i, in := range bad {
		if _, err := svc.CreateSupply(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want invalid input", i, err)
		}
	}
}
