package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de compra o venta. Sin ID es una línea nueva; con ID reemplaza la existente.
// Con SerialNumber (IMEI) la cantidad debe ser 1.
type LineItemRequest struct {
	ID           int64           `json:"id,omitempty" validate:"omitempty,gt=0"`
	ProductID    int64           `json:"product_id" validate:"required,gt=0"`
	SerialNumber string          `json:"serial_number,omitempty" validate:"omitempty,max=64"`
	Quantity     int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

// CreateTransactionRequest entrada para crear una compra o venta.
// CounterpartyID es obligatorio en compras; en ventas es el deudor EMI (opcional).
type CreateTransactionRequest struct {
	CounterpartyID *int64            `json:"counterparty_id" validate:"omitempty,gt=0"`
	CustomerName   string            `json:"customer_name" validate:"omitempty,max=200"`
	BillNo         string            `json:"bill_no" validate:"omitempty,max=64"`
	Date           string            `json:"date" validate:"required,datetime=2006-01-02"`
	Method         string            `json:"method" validate:"required,oneof=cash cheque credit"`
	ChequeNumber   string            `json:"cheque_number" validate:"omitempty,max=64"`
	CashoutDate    string            `json:"cashout_date" validate:"omitempty,datetime=2006-01-02"`
	Discount       decimal.Decimal   `json:"discount" validate:"gte=0"`
	Lines          []LineItemRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateTransactionRequest actualización parcial. Lines nil deja las líneas intactas;
// una lista (incluso vacía) reemplaza el conjunto completo. ClearCounterparty quita el deudor de una venta.
type UpdateTransactionRequest struct {
	CounterpartyID    *int64            `json:"counterparty_id" validate:"omitempty,gt=0"`
	ClearCounterparty bool              `json:"clear_counterparty"`
	CustomerName      *string           `json:"customer_name" validate:"omitempty,max=200"`
	BillNo            *string           `json:"bill_no" validate:"omitempty,max=64"`
	Date              *string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Method            *string           `json:"method" validate:"omitempty,oneof=cash cheque credit"`
	ChequeNumber      *string           `json:"cheque_number" validate:"omitempty,max=64"`
	CashoutDate       *string           `json:"cashout_date" validate:"omitempty,datetime=2006-01-02"`
	Discount          *decimal.Decimal  `json:"discount" validate:"omitempty,gte=0"`
	Lines             []LineItemRequest `json:"lines" validate:"omitempty,dive"`
}

// LineItemResponse salida de una línea.
type LineItemResponse struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	SerialNumber string          `json:"serial_number,omitempty"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Returned     bool            `json:"returned"`
	ReturnedAt   *time.Time      `json:"returned_at,omitempty"`
}

// TransactionResponse salida de una compra o venta con sus líneas.
type TransactionResponse struct {
	ID             int64              `json:"id"`
	Kind           string             `json:"kind"`
	CounterpartyID *int64             `json:"counterparty_id,omitempty"`
	CustomerName   string             `json:"customer_name,omitempty"`
	BillNo         string             `json:"bill_no,omitempty"`
	Date           string             `json:"date"`
	Method         string             `json:"method"`
	ChequeNumber   string             `json:"cheque_number,omitempty"`
	CashoutDate    *string            `json:"cashout_date,omitempty"`
	Discount       decimal.Decimal    `json:"discount"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	SettlementID   *int64             `json:"settlement_id,omitempty"`
	Lines          []LineItemResponse `json:"lines"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
