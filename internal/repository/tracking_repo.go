package repository

import (
	"context"
	"errors"

	"luma-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackingRepo is append-only by construction: there is no update method and
// deletion exists solely for the order-delete cascade.
type TrackingRepo interface {
	Append(ctx context.Context, e *models.TrackingEntry) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.TrackingEntry, error)
	LatestByOrderID(ctx context.Context, orderID uuid.UUID) (*models.TrackingEntry, error)
	CountByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error)
}

type trackingRepo struct{ db *gorm.DB }

func NewTrackingRepo(db *gorm.DB) TrackingRepo { return &trackingRepo{db: db} }

func (r *trackingRepo) Append(ctx context.Context, e *models.TrackingEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ListByOrderID returns entries newest first, insertion order breaking ties.
func (r *trackingRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.TrackingEntry, error) {
	var rows []models.TrackingEntry
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *trackingRepo) LatestByOrderID(ctx context.Context, orderID uuid.UUID) (*models.TrackingEntry, error) {
	var e models.TrackingEntry
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").Order("id DESC").
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

func (r *trackingRepo) CountByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.TrackingEntry{}).Where("order_id = ?", orderID).Count(&cnt).Error
	return cnt, err
}

func (r *trackingRepo) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.TrackingEntry{})
	return tx.RowsAffected, tx.Error
}
