package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SchemeTierDTO tramo de cashback. Upper 0 = sin tope.
type SchemeTierDTO struct {
	Lower    int64           `json:"lower" validate:"gte=0"`
	Upper    int64           `json:"upper" validate:"gte=0"`
	Cashback decimal.Decimal `json:"cashback" validate:"gte=0"`
}

// CreateSchemeRequest esquema de cashback sobre un producto. La marca se toma del producto.
type CreateSchemeRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	FromDate  string          `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate    string          `json:"to_date" validate:"required,datetime=2006-01-02"`
	Tiers     []SchemeTierDTO `json:"tiers" validate:"required,min=1,dive"`
}

// CreatePriceProtectionRequest protección de precio sobre un producto.
type CreatePriceProtectionRequest struct {
	ProductID     int64           `json:"product_id" validate:"required,gt=0"`
	FromDate      string          `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate        string          `json:"to_date" validate:"required,datetime=2006-01-02"`
	AmountPerUnit decimal.Decimal `json:"amount_per_unit" validate:"gte=0"`
}

// SetStatusRequest cambio de estado de un esquema o protección.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active expired"`
}

// SchemeResponse salida de un esquema con su cuenta por cobrar recalculada.
type SchemeResponse struct {
	ID         int64           `json:"id"`
	BrandID    int64           `json:"brand_id"`
	ProductID  int64           `json:"product_id"`
	FromDate   string          `json:"from_date"`
	ToDate     string          `json:"to_date"`
	Status     string          `json:"status"`
	Tiers      []SchemeTierDTO `json:"tiers"`
	Sold       int64           `json:"sold"`
	Receivable decimal.Decimal `json:"receivable"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PriceProtectionResponse salida de una protección de precio.
type PriceProtectionResponse struct {
	ID            int64           `json:"id"`
	BrandID       int64           `json:"brand_id"`
	ProductID     int64           `json:"product_id"`
	FromDate      string          `json:"from_date"`
	ToDate        string          `json:"to_date"`
	Status        string          `json:"status"`
	AmountPerUnit decimal.Decimal `json:"amount_per_unit"`
	Sold          int64           `json:"sold"`
	Receivable    decimal.Decimal `json:"receivable"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
