package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tipo de transacción compuesta.
type TransactionKind string

const (
	TransactionPurchase TransactionKind = "purchase"
	TransactionSale     TransactionKind = "sale"
)

// Valid indica si el tipo es conocido.
func (k TransactionKind) Valid() bool {
	return k == TransactionPurchase || k == TransactionSale
}

// CounterpartyKind devuelve el tipo de contraparte asociado: proveedor en compras, deudor en ventas.
func (k TransactionKind) CounterpartyKind() CounterpartyKind {
	if k == TransactionSale {
		return CounterpartyDebtor
	}
	return CounterpartyVendor
}

// Method medio de pago de una transacción o de un pago.
type Method string

const (
	MethodCash   Method = "cash"
	MethodCheque Method = "cheque"
	MethodCredit Method = "credit"
)

// Valid indica si el método es conocido.
func (m Method) Valid() bool {
	return m == MethodCash || m == MethodCheque || m == MethodCredit
}

// Settles es true para cash y cheque: la transacción se liquida al momento con un pago.
func (m Method) Settles() bool {
	return m == MethodCash || m == MethodCheque
}

// Transaction cabecera de una compra o venta con sus líneas.
// CounterpartyID es obligatorio en compras y opcional en ventas (cliente anónimo o con nombre).
type Transaction struct {
	ID             int64
	EnterpriseID   int64
	BranchID       *int64
	Kind           TransactionKind
	CounterpartyID *int64
	CustomerName   string
	BillNo         string
	Date           time.Time
	Method         Method
	ChequeNumber   string
	CashoutDate    *time.Time
	Discount       decimal.Decimal
	Subtotal       decimal.Decimal // suma de TotalPrice de líneas no devueltas
	TotalAmount    decimal.Decimal // Subtotal - Discount (mínimo 0)
	Lines          []*LineItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ActiveLines devuelve las líneas no devueltas.
func (t *Transaction) ActiveLines() []*LineItem {
	out := make([]*LineItem, 0, len(t.Lines))
	for _, l := range t.Lines {
		if !l.Returned {
			out = append(out, l)
		}
	}
	return out
}

// Line busca una línea por ID.
func (t *Transaction) Line(id int64) *LineItem {
	for _, l := range t.Lines {
		if l.ID == id {
			return l
		}
	}
	return nil
}
