package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment registra un pago a un proveedor o de un deudor. Reduce Due de la contraparte.
// Si TransactionID no es nil es la liquidación de una transacción cash/cheque y la gestiona la transacción.
type Payment struct {
	ID             int64
	EnterpriseID   int64
	BranchID       *int64
	CounterpartyID int64
	TransactionID  *int64
	Date           time.Time
	Amount         decimal.Decimal
	Method         Method
	ChequeNumber   string
	CashoutDate    *time.Time
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsSettlement indica si el pago pertenece a una transacción.
func (p *Payment) IsSettlement() bool {
	return p.TransactionID != nil
}
