package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/ledger"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

// LineLedger aplica y revierte el efecto de una línea sobre su producto y su marca.
type LineLedger struct {
	allowNegativeStock bool
	now                func() time.Time
}

// NewLineLedger construye el libro de líneas.
func NewLineLedger(opts Options) *LineLedger {
	return &LineLedger{allowNegativeStock: opts.AllowNegativeStock, now: opts.clock()}
}

// Apply bloquea producto y marca (SELECT FOR UPDATE), aplica el efecto y persiste el par.
func (l *LineLedger) Apply(ctx context.Context, repos repository.Repositories, scope entity.Scope, eff ledger.Effect) error {
	if eff.Quantity == 0 {
		return nil
	}
	product, err := repos.Products.GetForUpdate(ctx, eff.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return notFound("producto", eff.ProductID)
	}
	if err := checkScope(scope, product.EnterpriseID); err != nil {
		return err
	}
	brand, err := repos.Brands.GetForUpdate(ctx, product.BrandID)
	if err != nil {
		return err
	}
	if brand == nil {
		return fmt.Errorf("marca %d del producto %d: %w", product.BrandID, product.ID, domain.ErrConsistency)
	}
	if !l.allowNegativeStock && eff.Guarded() && ledger.WouldOverdraw(product, eff.Direction, eff.Quantity) {
		return fmt.Errorf("producto %d: disponible %d, solicitado %d: %w",
			product.ID, product.Count, eff.Quantity, domain.ErrInsufficientStock)
	}
	if err := ledger.ApplyLine(product, brand, eff.Direction, eff.Quantity); err != nil {
		return err
	}
	now := l.now()
	product.UpdatedAt = now
	brand.UpdatedAt = now
	if err := repos.Products.Update(ctx, product); err != nil {
		return err
	}
	return repos.Brands.UpdateAggregates(ctx, brand)
}

// ApplyAll aplica los efectos en orden.
func (l *LineLedger) ApplyAll(ctx context.Context, repos repository.Repositories, scope entity.Scope, effects []ledger.Effect) error {
	for _, eff := range effects {
		if err := l.Apply(ctx, repos, scope, eff); err != nil {
			return err
		}
	}
	return nil
}
