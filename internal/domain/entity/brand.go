package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Brand agrupa productos. Count y Stock son agregados acarreados: deben igualar
// la suma de Count y Stock de sus productos.
type Brand struct {
	ID           int64
	EnterpriseID int64
	BranchID     *int64
	Name         string
	Count        int64
	Stock        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewBrand construye una marca con agregados en cero.
func NewBrand(scope Scope, name string, now time.Time) *Brand {
	return &Brand{
		EnterpriseID: scope.EnterpriseID,
		BranchID:     scope.BranchID,
		Name:         name,
		Count:        0,
		Stock:        decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
