package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

var _ repository.TransactionRepository = (*transactionRepo)(nil)

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	st := r.s.state
	tx.ID = st.next("transactions")
	st.transactions[tx.ID] = copyTransaction(tx)
	return nil
}

func (r *transactionRepo) GetByID(_ context.Context, id int64) (*entity.Transaction, error) {
	st := r.s.state
	h, ok := st.transactions[id]
	if !ok {
		return nil, nil
	}
	tx := copyTransaction(h)
	for _, l := range st.lines {
		if l.TransactionID == id {
			tx.Lines = append(tx.Lines, copyLine(l))
		}
	}
	sort.Slice(tx.Lines, func(i, j int) bool { return tx.Lines[i].ID < tx.Lines[j].ID })
	return tx, nil
}

func (r *transactionRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *transactionRepo) Update(_ context.Context, tx *entity.Transaction) error {
	if _, ok := r.s.state.transactions[tx.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.state.transactions[tx.ID] = copyTransaction(tx)
	return nil
}

func (r *transactionRepo) Delete(_ context.Context, id int64) error {
	st := r.s.state
	if _, ok := st.transactions[id]; !ok {
		return domain.ErrNotFound
	}
	for lid, l := range st.lines {
		if l.TransactionID == id {
			delete(st.lines, lid)
		}
	}
	delete(st.transactions, id)
	return nil
}

func (r *transactionRepo) CreateLine(_ context.Context, l *entity.LineItem) error {
	st := r.s.state
	if _, ok := st.transactions[l.TransactionID]; !ok {
		return domain.ErrNotFound
	}
	l.ID = st.next("line_items")
	st.lines[l.ID] = copyLine(l)
	return nil
}

func (r *transactionRepo) UpdateLine(_ context.Context, l *entity.LineItem) error {
	if _, ok := r.s.state.lines[l.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.state.lines[l.ID] = copyLine(l)
	return nil
}

func (r *transactionRepo) DeleteLine(_ context.Context, id int64) error {
	if _, ok := r.s.state.lines[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.state.lines, id)
	return nil
}

func (r *transactionRepo) SoldUnits(_ context.Context, productID int64, from, to time.Time) (int64, error) {
	st := r.s.state
	var sold int64
	for _, l := range st.lines {
		if l.ProductID != productID || l.Returned {
			continue
		}
		tx, ok := st.transactions[l.TransactionID]
		if !ok || tx.Kind != entity.TransactionSale {
			continue
		}
		if tx.Date.Before(from) || !tx.Date.Before(to) {
			continue
		}
		sold += l.Quantity
	}
	return sold, nil
}
