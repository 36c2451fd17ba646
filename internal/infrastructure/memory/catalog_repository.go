package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

var (
	_ repository.BrandRepository        = (*brandRepo)(nil)
	_ repository.ProductRepository      = (*productRepo)(nil)
	_ repository.CounterpartyRepository = (*counterpartyRepo)(nil)
)

type brandRepo struct{ s *Store }

func (r *brandRepo) Create(_ context.Context, b *entity.Brand) error {
	st := r.s.state
	b.ID = st.next("brands")
	st.brands[b.ID] = copyBrand(b)
	return nil
}

func (r *brandRepo) GetByID(_ context.Context, id int64) (*entity.Brand, error) {
	b, ok := r.s.state.brands[id]
	if !ok {
		return nil, nil
	}
	return copyBrand(b), nil
}

// GetForUpdate equivale a GetByID: Run ya tiene el store bloqueado.
func (r *brandRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Brand, error) {
	return r.GetByID(ctx, id)
}

func (r *brandRepo) UpdateAggregates(_ context.Context, b *entity.Brand) error {
	cur, ok := r.s.state.brands[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Count = b.Count
	cur.Stock = b.Stock
	cur.UpdatedAt = b.UpdatedAt
	return nil
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	st := r.s.state
	p.ID = st.next("products")
	st.products[p.ID] = copyProduct(p)
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.s.state.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.state.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.state.products[p.ID] = copyProduct(p)
	return nil
}

func (r *productRepo) ListByBrand(_ context.Context, brandID int64) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.state.products {
		if p.BrandID == brandID {
			out = append(out, copyProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type counterpartyRepo struct{ s *Store }

func (r *counterpartyRepo) Create(_ context.Context, cp *entity.Counterparty) error {
	st := r.s.state
	cp.ID = st.next("counterparties")
	st.counterparties[cp.ID] = copyCounterparty(cp)
	return nil
}

func (r *counterpartyRepo) GetByID(_ context.Context, id int64) (*entity.Counterparty, error) {
	cp, ok := r.s.state.counterparties[id]
	if !ok {
		return nil, nil
	}
	return copyCounterparty(cp), nil
}

func (r *counterpartyRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Counterparty, error) {
	return r.GetByID(ctx, id)
}

func (r *counterpartyRepo) UpdateDue(_ context.Context, cp *entity.Counterparty) error {
	cur, ok := r.s.state.counterparties[cp.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Due = cp.Due
	cur.UpdatedAt = cp.UpdatedAt
	return nil
}
