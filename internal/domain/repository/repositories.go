package repository

// Repositories agrupa los puertos atados a una misma unidad de trabajo.
type Repositories struct {
	Brands           BrandRepository
	Products         ProductRepository
	Counterparties   CounterpartyRepository
	Transactions     TransactionRepository
	Payments         PaymentRepository
	BalanceEntries   BalanceEntryRepository
	Schemes          SchemeRepository
	PriceProtections PriceProtectionRepository
}
