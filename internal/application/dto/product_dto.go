package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBrandRequest entrada para crear una marca.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// BrandResponse salida de una marca con sus agregados.
type BrandResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Count     int64           `json:"count"`
	Stock     decimal.Decimal `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateProductRequest entrada para crear un producto. Count y Stock inician en cero.
type CreateProductRequest struct {
	BrandID      int64           `json:"brand_id" validate:"required,gt=0"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"gte=0"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"gte=0"`
}

// RepriceProductRequest cambia el precio de referencia (reexpresa el stock) y opcionalmente el de venta.
type RepriceProductRequest struct {
	UnitPrice    decimal.Decimal  `json:"unit_price" validate:"gte=0"`
	SellingPrice *decimal.Decimal `json:"selling_price" validate:"omitempty,gte=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	BrandID      int64           `json:"brand_id"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Count        int64           `json:"count"`
	Stock        decimal.Decimal `json:"stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BrandAuditResponse compara los agregados acarreados de la marca con la suma de sus productos.
type BrandAuditResponse struct {
	BrandID      int64           `json:"brand_id"`
	CarriedCount int64           `json:"carried_count"`
	CarriedStock decimal.Decimal `json:"carried_stock"`
	ProductCount int64           `json:"product_count"`
	ProductStock decimal.Decimal `json:"product_stock"`
	Consistent   bool            `json:"consistent"`
	Violations   []string        `json:"violations,omitempty"`
}
