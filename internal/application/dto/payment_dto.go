package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest pago a un proveedor o de un deudor.
type CreatePaymentRequest struct {
	CounterpartyID int64           `json:"counterparty_id" validate:"required,gt=0"`
	Date           string          `json:"date" validate:"required,datetime=2006-01-02"`
	Amount         decimal.Decimal `json:"amount" validate:"gt=0"`
	Method         string          `json:"method" validate:"required,oneof=cash cheque credit"`
	ChequeNumber   string          `json:"cheque_number" validate:"omitempty,max=64"`
	CashoutDate    string          `json:"cashout_date" validate:"omitempty,datetime=2006-01-02"`
	Description    string          `json:"description" validate:"omitempty,max=500"`
}

// UpdatePaymentRequest actualización parcial de un pago.
type UpdatePaymentRequest struct {
	CounterpartyID *int64           `json:"counterparty_id" validate:"omitempty,gt=0"`
	Date           *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Amount         *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	Method         *string          `json:"method" validate:"omitempty,oneof=cash cheque credit"`
	ChequeNumber   *string          `json:"cheque_number" validate:"omitempty,max=64"`
	CashoutDate    *string          `json:"cashout_date" validate:"omitempty,datetime=2006-01-02"`
	Description    *string          `json:"description" validate:"omitempty,max=500"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID             int64           `json:"id"`
	CounterpartyID int64           `json:"counterparty_id"`
	TransactionID  *int64          `json:"transaction_id,omitempty"`
	Date           string          `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	ChequeNumber   string          `json:"cheque_number,omitempty"`
	CashoutDate    *string         `json:"cashout_date,omitempty"`
	Description    string          `json:"description,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
