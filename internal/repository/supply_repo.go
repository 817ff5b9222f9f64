package repository

import (
	"context"
	"errors"

	"luma-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplyRepo interface {
	Create(ctx context.Context, s *models.Supply) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supply, error)
	Update(ctx context.Context, s *models.Supply) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*models.Supply, int64, error)
}

type supplyRepo struct{ db *gorm.DB }

func NewSupplyRepo(db *gorm.DB) SupplyRepo { return &supplyRepo{db: db} }

func (r *supplyRepo) Create(ctx context.Context, s *models.Supply) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Supply, error) {
	var s models.Supply
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *supplyRepo) Update(ctx context.Context, s *models.Supply) error {
	return r.db.WithContext(ctx).Model(&models.Supply{}).Where("id = ?", s.ID).Updates(map[string]any{
		"name":        s.Name,
		"description": s.Description,
		"quantity":    s.Quantity,
		"unit":        s.Unit,
	}).Error
}

func (r *supplyRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Supply{})
	return tx.RowsAffected, tx.Error
}

func (r *supplyRepo) List(ctx context.Context, limit, offset int) ([]*models.Supply, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Supply{})

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

	var list []*models.Supply
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}
