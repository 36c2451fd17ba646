package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

var _ repository.BalanceEntryRepository = (*BalanceEntryRepo)(nil)

// BalanceEntryRepo diario de saldos (sólo inserción).
type BalanceEntryRepo struct {
	q Querier
}

// NewBalanceEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceEntryRepository(q Querier) *BalanceEntryRepo {
	return &BalanceEntryRepo{q: q}
}

func (r *BalanceEntryRepo) Create(ctx context.Context, e *entity.BalanceEntry) error {
	query := `
		INSERT INTO balance_entries (counterparty_id, operation_id, transaction_id, payment_id, reason, delta, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		e.CounterpartyID, e.OperationID, e.TransactionID, e.PaymentID, e.Reason, e.Delta, e.BalanceAfter, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return writeErr("insert balance entry", err)
	}
	return nil
}

// ListByCounterparty devuelve los asientos más recientes primero.
func (r *BalanceEntryRepo) ListByCounterparty(ctx context.Context, counterpartyID int64, limit, offset int) ([]*entity.BalanceEntry, error) {
	query := `
		SELECT id, counterparty_id, operation_id::text, transaction_id, payment_id, reason, delta, balance_after, created_at
		FROM balance_entries
		WHERE counterparty_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, counterpartyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list balance entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.BalanceEntry
	for rows.Next() {
		var e entity.BalanceEntry
		if err := rows.Scan(
			&e.ID, &e.CounterpartyID, &e.OperationID, &e.TransactionID, &e.PaymentID, &e.Reason,
			&e.Delta, &e.BalanceAfter, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan balance entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
