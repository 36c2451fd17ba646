package repository

import (
	"context"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// PaymentRepository persistencia de pagos a proveedores y de deudores.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Payment, error)
	// GetByTransaction devuelve la liquidación de una transacción, o (nil, nil).
	GetByTransaction(ctx context.Context, transactionID int64) (*entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment) error
	Delete(ctx context.Context, id int64) error
}
