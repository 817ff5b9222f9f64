package service

import (
	"context"
	"strings"

	"luma-service/internal/models"
	"luma-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService covers the plain data-management side: products and
// raw-material supplies. Reads are public, writes are staff only.
type CatalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Stock       int
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || in.PriceCents < 0 || in.Stock < 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &models.Product{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, int64, error) {
	return s.repo.Products.List(ctx, limit, offset)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	p.Name = in.Name
	p.Description = in.Description
	p.PriceCents = in.PriceCents
	p.Stock = in.Stock
	if err := s.repo.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct refuses to remove a product that order items still
// reference; order history must stay resolvable.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, _, err := requireStaff(ctx); err != nil {
		return err
	}

	refs, err := s.repo.Items.CountByProductID(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrProductInUse
	}

	rows, err := s.repo.Products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	return nil
}

type SupplyInput struct {
	Name        string
	Description string
	Quantity    int
	Unit        string
}

func (in SupplyInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" || in.Quantity < 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *CatalogService) CreateSupply(ctx context.Context, in SupplyInput) (*models.Supply, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	sup := &models.Supply{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
	}
	if err := s.repo.Supplies.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *CatalogService) GetSupply(ctx context.Context, id uuid.UUID) (*models.Supply, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	sup, err := s.repo.Supplies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, ErrSupplyNotFound
	}
	return sup, nil
}

func (s *CatalogService) ListSupplies(ctx context.Context, limit, offset int) ([]*models.Supply, int64, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, 0, err
	}
	return s.repo.Supplies.List(ctx, limit, offset)
}

func (s *CatalogService) UpdateSupply(ctx context.Context, id uuid.UUID, in SupplyInput) (*models.Supply, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	sup, err := s.repo.Supplies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, ErrSupplyNotFound
	}

	sup.Name = in.Name
	sup.Description = in.Description
	sup.Quantity = in.Quantity
	sup.Unit = in.Unit
	if err := s.repo.Supplies.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *CatalogService) DeleteSupply(ctx context.Context, id uuid.UUID) error {
	if _, _, err := requireStaff(ctx); err != nil {
		return err
	}
	rows, err := s.repo.Supplies.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSupplyNotFound
	}
	return nil
}
