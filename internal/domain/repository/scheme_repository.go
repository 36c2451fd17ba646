package repository

import (
	"context"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// SchemeRepository persistencia de esquemas de cashback.
type SchemeRepository interface {
	Create(ctx context.Context, s *entity.Scheme) error
	GetByID(ctx context.Context, id int64) (*entity.Scheme, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Scheme, error)
	// Update persiste Status, Sold y Receivable.
	Update(ctx context.Context, s *entity.Scheme) error
}

// PriceProtectionRepository persistencia de protecciones de precio.
type PriceProtectionRepository interface {
	Create(ctx context.Context, pp *entity.PriceProtection) error
	GetByID(ctx context.Context, id int64) (*entity.PriceProtection, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.PriceProtection, error)
	Update(ctx context.Context, pp *entity.PriceProtection) error
}
