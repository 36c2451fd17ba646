package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CounterpartyKind distingue proveedores de deudores EMI.
type CounterpartyKind string

const (
	CounterpartyVendor CounterpartyKind = "vendor" // Due: lo que la empresa le debe al proveedor
	CounterpartyDebtor CounterpartyKind = "debtor" // Due: lo que el deudor le debe a la empresa
)

// Valid indica si el tipo es conocido.
func (k CounterpartyKind) Valid() bool {
	return k == CounterpartyVendor || k == CounterpartyDebtor
}

// Counterparty es un proveedor o un deudor EMI con saldo acarreado.
type Counterparty struct {
	ID           int64
	EnterpriseID int64
	BranchID     *int64
	Kind         CounterpartyKind
	Name         string
	Phone        string
	BrandID      *int64
	Due          decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCounterparty construye la contraparte con saldo en cero.
func NewCounterparty(scope Scope, kind CounterpartyKind, name, phone string, brandID *int64, now time.Time) *Counterparty {
	return &Counterparty{
		EnterpriseID: scope.EnterpriseID,
		BranchID:     scope.BranchID,
		Kind:         kind,
		Name:         name,
		Phone:        phone,
		BrandID:      brandID,
		Due:          decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
