package repository

import (
	"context"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// Update persiste precios y agregados (Count, Stock).
	Update(ctx context.Context, product *entity.Product) error
	ListByBrand(ctx context.Context, brandID int64) ([]*entity.Product, error)
}
