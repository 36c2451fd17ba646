package postgres

import (
	"context"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

var _ repository.CounterpartyRepository = (*CounterpartyRepo)(nil)

// CounterpartyRepo proveedores y deudores sobre PostgreSQL.
type CounterpartyRepo struct {
	q Querier
}

// NewCounterpartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterpartyRepository(q Querier) *CounterpartyRepo {
	return &CounterpartyRepo{q: q}
}

const counterpartyColumns = `id, enterprise_id, branch_id, kind, name, phone, brand_id, due, created_at, updated_at`

func (r *CounterpartyRepo) Create(ctx context.Context, c *entity.Counterparty) error {
	query := `
		INSERT INTO counterparties (enterprise_id, branch_id, kind, name, phone, brand_id, due, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.EnterpriseID, c.BranchID, string(c.Kind), c.Name, c.Phone, c.BrandID, c.Due, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return writeErr("insert counterparty", err)
	}
	return nil
}

func (r *CounterpartyRepo) GetByID(ctx context.Context, id int64) (*entity.Counterparty, error) {
	return r.get(ctx, id, false)
}

func (r *CounterpartyRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Counterparty, error) {
	return r.get(ctx, id, true)
}

func (r *CounterpartyRepo) get(ctx context.Context, id int64, lock bool) (*entity.Counterparty, error) {
	query := forUpdate(`SELECT `+counterpartyColumns+` FROM counterparties WHERE id = $1`, lock)
	var (
		c    entity.Counterparty
		kind string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.EnterpriseID, &c.BranchID, &kind, &c.Name, &c.Phone, &c.BrandID, &c.Due, &c.CreatedAt, &c.UpdatedAt,
	)
	c.Kind = entity.CounterpartyKind(kind)
	return scanOne("get counterparty", &c, err)
}

// UpdateDue persiste el saldo acarreado.
func (r *CounterpartyRepo) UpdateDue(ctx context.Context, c *entity.Counterparty) error {
	tag, err := r.q.Exec(ctx, `UPDATE counterparties SET due = $2, updated_at = $3 WHERE id = $1`, c.ID, c.Due, c.UpdatedAt)
	return mustAffect("update counterparty due", tag, err)
}
