package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// TransactionRepository persistencia de compras y ventas con sus líneas.
// GetByID y GetForUpdate cargan las líneas ordenadas por ID.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Transaction, error)
	// Update persiste la cabecera (no las líneas).
	Update(ctx context.Context, tx *entity.Transaction) error
	// Delete elimina la cabecera y sus líneas.
	Delete(ctx context.Context, id int64) error

	CreateLine(ctx context.Context, line *entity.LineItem) error
	UpdateLine(ctx context.Context, line *entity.LineItem) error
	DeleteLine(ctx context.Context, id int64) error

	// SoldUnits suma las cantidades de líneas de venta no devueltas del producto con fecha en [from, to).
	SoldUnits(ctx context.Context, productID int64, from, to time.Time) (int64, error)
}
