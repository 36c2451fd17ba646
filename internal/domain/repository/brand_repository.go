package repository

import (
	"context"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// BrandRepository define el puerto de persistencia para Brand.
// GetByID y GetForUpdate devuelven (nil, nil) si no existe.
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id int64) (*entity.Brand, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) hasta el fin de la unidad de trabajo.
	GetForUpdate(ctx context.Context, id int64) (*entity.Brand, error)
	// UpdateAggregates persiste Count y Stock.
	UpdateAggregates(ctx context.Context, brand *entity.Brand) error
}
