package repository

import (
	"context"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// BalanceEntryRepository diario de saldos (sólo inserción).
type BalanceEntryRepository interface {
	Create(ctx context.Context, e *entity.BalanceEntry) error
	// ListByCounterparty devuelve los asientos más recientes primero.
	ListByCounterparty(ctx context.Context, counterpartyID int64, limit, offset int) ([]*entity.BalanceEntry, error)
}
