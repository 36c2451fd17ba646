package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCounterpartyRequest entrada para crear un proveedor o deudor. Due inicia en cero.
type CreateCounterpartyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	BrandID *int64 `json:"brand_id" validate:"omitempty,gt=0"`
}

// CounterpartyResponse salida de un proveedor o deudor.
type CounterpartyResponse struct {
	ID        int64           `json:"id"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	BrandID   *int64          `json:"brand_id,omitempty"`
	Due       decimal.Decimal `json:"due"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BalanceEntryResponse asiento del estado de cuenta.
type BalanceEntryResponse struct {
	ID            int64           `json:"id"`
	OperationID   string          `json:"operation_id"`
	TransactionID *int64          `json:"transaction_id,omitempty"`
	PaymentID     *int64          `json:"payment_id,omitempty"`
	Reason        string          `json:"reason"`
	Delta         decimal.Decimal `json:"delta"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	CreatedAt     time.Time       `json:"created_at"`
}

// StatementResponse estado de cuenta: saldo actual y asientos, más recientes primero.
type StatementResponse struct {
	Counterparty CounterpartyResponse   `json:"counterparty"`
	Entries      []BalanceEntryResponse `json:"entries"`
	Page         PageResponse           `json:"page"`
}
