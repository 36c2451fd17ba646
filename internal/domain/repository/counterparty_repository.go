package repository

import (
	"context"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// CounterpartyRepository persistencia de proveedores y deudores.
type CounterpartyRepository interface {
	Create(ctx context.Context, cp *entity.Counterparty) error
	GetByID(ctx context.Context, id int64) (*entity.Counterparty, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Counterparty, error)
	UpdateDue(ctx context.Context, cp *entity.Counterparty) error
}
