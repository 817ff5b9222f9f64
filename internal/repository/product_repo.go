package repository

import (
	"context"
	"errors"

	"luma-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*models.Product, int64, error)
	ExistAll(ctx context.Context, ids []uuid.UUID) (bool, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"price_cents": p.PriceCents,
		"stock":       p.Stock,
	}).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	return tx.RowsAffected, tx.Error
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var list []*models.Product
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

// ExistAll reports whether every id resolves to a product. Duplicate ids in
// the input are allowed.
func (r *productRepo) ExistAll(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	uniq := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		uniq[id] = struct{}{}
	}
	distinct := make([]uuid.UUID, 0, len(uniq))
	for id := range uniq {
		distinct = append(distinct, id)
	}

	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id IN ?", distinct).Count(&cnt).Error
	return cnt == int64(len(distinct)), err
}
