package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/ledger"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

// recomputeReceivables recalcula Sold y Receivable de los esquemas y protecciones de precio
// de los productos dados. Corre en la misma unidad de trabajo que la venta que los afectó.
func recomputeReceivables(ctx context.Context, repos repository.Repositories, productIDs []int64, now time.Time) error {
	for _, productID := range productIDs {
		schemes, err := repos.Schemes.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		for _, s := range schemes {
			if err := refreshScheme(ctx, repos, s, now); err != nil {
				return err
			}
		}
		protections, err := repos.PriceProtections.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		for _, pp := range protections {
			if err := refreshPriceProtection(ctx, repos, pp, now); err != nil {
				return err
			}
		}
	}
	return nil
}

func soldInWindow(ctx context.Context, repos repository.Repositories, productID int64, from, to time.Time) (int64, error) {
	start, end := entity.Window(from, to)
	return repos.Transactions.SoldUnits(ctx, productID, start, end)
}

func refreshScheme(ctx context.Context, repos repository.Repositories, s *entity.Scheme, now time.Time) error {
	sold, err := soldInWindow(ctx, repos, s.ProductID, s.FromDate, s.ToDate)
	if err != nil {
		return err
	}
	receivable := ledger.SchemeReceivable(s.Tiers, sold)
	if sold == s.Sold && receivable.Equal(s.Receivable) {
		return nil
	}
	s.Sold = sold
	s.Receivable = receivable
	s.UpdatedAt = now
	return repos.Schemes.Update(ctx, s)
}

func refreshPriceProtection(ctx context.Context, repos repository.Repositories, pp *entity.PriceProtection, now time.Time) error {
	sold, err := soldInWindow(ctx, repos, pp.ProductID, pp.FromDate, pp.ToDate)
	if err != nil {
		return err
	}
	receivable := ledger.PriceProtectionReceivable(pp.AmountPerUnit, sold)
	if sold == pp.Sold && receivable.Equal(pp.Receivable) {
		return nil
	}
	pp.Sold = sold
	pp.Receivable = receivable
	pp.UpdatedAt = now
	return repos.PriceProtections.Update(ctx, pp)
}

// productIDs devuelve los productos distintos de las líneas, en orden de aparición.
func productIDs(lines ...[]*entity.LineItem) []int64 {
	seen := map[int64]bool{}
	var ids []int64
	for _, set := range lines {
		for _, l := range set {
			if !seen[l.ProductID] {
				seen[l.ProductID] = true
				ids = append(ids, l.ProductID)
			}
		}
	}
	return ids
}
