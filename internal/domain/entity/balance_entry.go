package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de un asiento de saldo.
const (
	ReasonBilled           = "billed"            // total de una transacción
	ReasonBillReversed     = "bill_reversed"     // reversa por eliminación
	ReasonBillAdjusted     = "bill_adjusted"     // edición, cambio de método o devolución
	ReasonPayment          = "payment"           // pago explícito
	ReasonPaymentAdjusted  = "payment_adjusted"  // edición de un pago
	ReasonPaymentReversed  = "payment_reversed"  // eliminación de un pago
	ReasonSettlement       = "settlement"        // pago automático de una transacción cash/cheque
	ReasonSettlementVoided = "settlement_voided" // reversa de la liquidación al eliminar la transacción
)

// BalanceEntry asiento del diario de saldos de una contraparte.
// BalanceAfter es el Due resultante; permite reconstruir el estado de cuenta.
type BalanceEntry struct {
	ID             int64
	CounterpartyID int64
	OperationID    string
	TransactionID  *int64
	PaymentID      *int64
	Reason         string
	Delta          decimal.Decimal
	BalanceAfter   decimal.Decimal
	CreatedAt      time.Time
}
