package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de esquemas y protecciones de precio. La transición es externa (por fecha o por un admin).
const (
	PromotionActive  = "active"
	PromotionExpired = "expired"
)

// SchemeTier tramo de cashback: aplica si Lower <= vendidos <= Upper (Upper 0 = sin tope).
type SchemeTier struct {
	Lower    int64
	Upper    int64
	Cashback decimal.Decimal
}

// Contains indica si la cantidad vendida cae en el tramo.
func (t SchemeTier) Contains(sold int64) bool {
	return sold >= t.Lower && (t.Upper == 0 || sold <= t.Upper)
}

// Scheme acuerdo de rebate por volumen sobre un producto en un periodo.
// Receivable se recalcula desde las ventas vinculadas; no se acarrea.
type Scheme struct {
	ID           int64
	EnterpriseID int64
	BranchID     *int64
	BrandID      int64
	ProductID    int64
	FromDate     time.Time
	ToDate       time.Time
	Status       string
	Tiers        []SchemeTier
	Sold         int64
	Receivable   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PriceProtection compensación fija por unidad vendida en un periodo.
type PriceProtection struct {
	ID            int64
	EnterpriseID  int64
	BranchID      *int64
	BrandID       int64
	ProductID     int64
	FromDate      time.Time
	ToDate        time.Time
	Status        string
	AmountPerUnit decimal.Decimal
	Sold          int64
	Receivable    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Window devuelve el intervalo semiabierto [desde, hasta+1día) usado para contar ventas.
func Window(from, to time.Time) (time.Time, time.Time) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
	return start, end
}
