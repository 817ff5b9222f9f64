package service

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrSupplyNotFound     = errors.New("supply not found")
	ErrEmptyItems         = errors.New("empty items")
	ErrInvalidInput       = errors.New("invalid input")
	ErrQuantityInvalid    = errors.New("quantity must be > 0")
	ErrUnknownStatus      = errors.New("unknown order status")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrProductInUse       = errors.New("product is referenced by order items")
)
