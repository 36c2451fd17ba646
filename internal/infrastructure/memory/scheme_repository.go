package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

var (
	_ repository.SchemeRepository          = (*schemeRepo)(nil)
	_ repository.PriceProtectionRepository = (*priceProtectionRepo)(nil)
)

type schemeRepo struct{ s *Store }

func (r *schemeRepo) Create(_ context.Context, sc *entity.Scheme) error {
	st := r.s.state
	sc.ID = st.next("schemes")
	st.schemes[sc.ID] = copyScheme(sc)
	return nil
}

func (r *schemeRepo) GetByID(_ context.Context, id int64) (*entity.Scheme, error) {
	sc, ok := r.s.state.schemes[id]
	if !ok {
		return nil, nil
	}
	return copyScheme(sc), nil
}

func (r *schemeRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.Scheme, error) {
	var out []*entity.Scheme
	for _, sc := range r.s.state.schemes {
		if sc.ProductID == productID {
			out = append(out, copyScheme(sc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *schemeRepo) Update(_ context.Context, sc *entity.Scheme) error {
	if _, ok := r.s.state.schemes[sc.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.state.schemes[sc.ID] = copyScheme(sc)
	return nil
}

type priceProtectionRepo struct{ s *Store }

func (r *priceProtectionRepo) Create(_ context.Context, pp *entity.PriceProtection) error {
	st := r.s.state
	pp.ID = st.next("price_protections")
	c := *pp
	st.priceProtections[pp.ID] = &c
	return nil
}

func (r *priceProtectionRepo) GetByID(_ context.Context, id int64) (*entity.PriceProtection, error) {
	pp, ok := r.s.state.priceProtections[id]
	if !ok {
		return nil, nil
	}
	c := *pp
	return &c, nil
}

func (r *priceProtectionRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.PriceProtection, error) {
	var out []*entity.PriceProtection
	for _, pp := range r.s.state.priceProtections {
		if pp.ProductID == productID {
			c := *pp
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *priceProtectionRepo) Update(_ context.Context, pp *entity.PriceProtection) error {
	if _, ok := r.s.state.priceProtections[pp.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *pp
	r.s.state.priceProtections[pp.ID] = &c
	return nil
}
