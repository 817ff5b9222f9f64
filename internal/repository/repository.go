package repository

import "gorm.io/gorm"

type Repository struct {
	DB        *gorm.DB
	Users     UserRepo
	Clients   ClientRepo
	Employees EmployeeRepo
	Products  ProductRepo
	Supplies  SupplyRepo
	Orders    OrderRepo
	Items     OrderItemRepo
	Tracking  TrackingRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:        db,
		Users:     NewUserRepo(db),
		Clients:   NewClientRepo(db),
		Employees: NewEmployeeRepo(db),
		Products:  NewProductRepo(db),
		Supplies:  NewSupplyRepo(db),
		Orders:    NewOrderRepo(db),
		Items:     NewOrderItemRepo(db),
		Tracking:  NewTrackingRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }
