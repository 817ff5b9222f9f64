package dto

import (
	"luma-service/internal/models"

	"github.com/google/uuid"
)

type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"min=0"`
	Stock       int    `json:"stock" binding:"min=0"`
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
}

type SupplyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity" binding:"min=0"`
	Unit        string `json:"unit" binding:"required"`
}

type SupplyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit"`
}

func FromProduct(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
	}
}

func FromSupply(s *models.Supply) SupplyResponse {
	return SupplyResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Quantity:    s.Quantity,
		Unit:        s.Unit,
	}
}
