package repository

import (
	"context"
	"errors"

	"luma-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepo interface {
	Create(ctx context.Context, c *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Client, error)
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepo(db *gorm.DB) ClientRepo { return &clientRepo{db: db} }

func (r *clientRepo) Create(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var c models.Client
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *clientRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	var c models.Client
	err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}
