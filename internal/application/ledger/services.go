package ledger

import "github.com/jhoicas/retail-ledger/internal/domain/entity"

// Services agrupa los casos de uso del libro sobre un mismo TxRunner.
type Services struct {
	Catalog        *CatalogUseCase
	Purchases      *TransactionUseCase
	Sales          *TransactionUseCase
	VendorPayments *PaymentUseCase
	DebtorPayments *PaymentUseCase
	Schemes        *SchemeUseCase
}

// NewServices construye todos los casos de uso compartiendo libro de líneas y de saldos.
func NewServices(txRunner TxRunner, opts Options) Services {
	lines := NewLineLedger(opts)
	balances := NewBalanceTracker(opts)
	return Services{
		Catalog:        NewCatalogUseCase(txRunner, opts),
		Purchases:      NewTransactionUseCase(entity.TransactionPurchase, txRunner, lines, balances, opts),
		Sales:          NewTransactionUseCase(entity.TransactionSale, txRunner, lines, balances, opts),
		VendorPayments: NewPaymentUseCase(entity.CounterpartyVendor, txRunner, balances, opts),
		DebtorPayments: NewPaymentUseCase(entity.CounterpartyDebtor, txRunner, balances, opts),
		Schemes:        NewSchemeUseCase(txRunner, opts),
	}
}
