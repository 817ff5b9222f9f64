package repository

import (
	"context"
	"errors"

	"luma-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeRepo interface {
	Create(ctx context.Context, e *models.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error)
}

type employeeRepo struct{ db *gorm.DB }

func NewEmployeeRepo(db *gorm.DB) EmployeeRepo { return &employeeRepo{db: db} }

func (r *employeeRepo) Create(ctx context.Context, e *models.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var e models.Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

func (r *employeeRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	var e models.Employee
	err := r.db.WithContext(ctx).First(&e, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}
