package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un SKU (o un modelo de teléfono con IMEI) bajo una marca.
// UnitPrice es el precio de referencia: Stock = Count * UnitPrice al momento de la última actualización.
type Product struct {
	ID           int64
	EnterpriseID int64
	BranchID     *int64
	BrandID      int64
	Name         string
	UnitPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Count        int64
	Stock        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProduct construye un producto con agregados en cero.
func NewProduct(scope Scope, brandID int64, name string, unitPrice, sellingPrice decimal.Decimal, now time.Time) *Product {
	return &Product{
		EnterpriseID: scope.EnterpriseID,
		BranchID:     scope.BranchID,
		BrandID:      brandID,
		Name:         name,
		UnitPrice:    unitPrice,
		SellingPrice: sellingPrice,
		Count:        0,
		Stock:        decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
