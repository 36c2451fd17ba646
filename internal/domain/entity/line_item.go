package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem línea de una transacción. Las líneas con SerialNumber (IMEI) tienen cantidad 1.
type LineItem struct {
	ID            int64
	TransactionID int64
	ProductID     int64
	SerialNumber  string
	Quantity      int64
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	Returned      bool
	ReturnedAt    *time.Time
}

// Serialized indica si la línea corresponde a una unidad con número de serie.
func (l *LineItem) Serialized() bool {
	return l.SerialNumber != ""
}

// Recalc actualiza TotalPrice = Quantity * UnitPrice.
func (l *LineItem) Recalc() {
	l.TotalPrice = l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}
