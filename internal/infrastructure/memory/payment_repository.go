package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

var (
	_ repository.PaymentRepository      = (*paymentRepo)(nil)
	_ repository.BalanceEntryRepository = (*balanceEntryRepo)(nil)
)

type paymentRepo struct{ s *Store }

func (r *paymentRepo) Create(_ context.Context, p *entity.Payment) error {
	st := r.s.state
	p.ID = st.next("payments")
	st.payments[p.ID] = copyPayment(p)
	return nil
}

func (r *paymentRepo) GetByID(_ context.Context, id int64) (*entity.Payment, error) {
	p, ok := r.s.state.payments[id]
	if !ok {
		return nil, nil
	}
	return copyPayment(p), nil
}

func (r *paymentRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Payment, error) {
	return r.GetByID(ctx, id)
}

func (r *paymentRepo) GetByTransaction(_ context.Context, transactionID int64) (*entity.Payment, error) {
	for _, p := range r.s.state.payments {
		if p.TransactionID != nil && *p.TransactionID == transactionID {
			return copyPayment(p), nil
		}
	}
	return nil, nil
}

func (r *paymentRepo) Update(_ context.Context, p *entity.Payment) error {
	if _, ok := r.s.state.payments[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.state.payments[p.ID] = copyPayment(p)
	return nil
}

func (r *paymentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.state.payments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.state.payments, id)
	return nil
}

type balanceEntryRepo struct{ s *Store }

func (r *balanceEntryRepo) Create(_ context.Context, e *entity.BalanceEntry) error {
	st := r.s.state
	e.ID = st.next("balance_entries")
	c := *e
	st.entries[e.ID] = &c
	return nil
}

func (r *balanceEntryRepo) ListByCounterparty(_ context.Context, counterpartyID int64, limit, offset int) ([]*entity.BalanceEntry, error) {
	var all []*entity.BalanceEntry
	for _, e := range r.s.state.entries {
		if e.CounterpartyID == counterpartyID {
			c := *e
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return []*entity.BalanceEntry{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}
