package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación de BrandRepository sobre PostgreSQL (usable con pool o tx).
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

const brandColumns = `id, enterprise_id, branch_id, name, item_count, stock, created_at, updated_at`

// Create inserta la marca y asigna ID.
func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	query := `
		INSERT INTO brands (enterprise_id, branch_id, name, item_count, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		b.EnterpriseID, b.BranchID, b.Name, b.Count, b.Stock, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		return writeErr("insert brand", err)
	}
	return nil
}

// GetByID obtiene una marca por ID.
func (r *BrandRepo) GetByID(ctx context.Context, id int64) (*entity.Brand, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene la marca y bloquea la fila.
func (r *BrandRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Brand, error) {
	return r.get(ctx, id, true)
}

func (r *BrandRepo) get(ctx context.Context, id int64, lock bool) (*entity.Brand, error) {
	query := forUpdate(`SELECT `+brandColumns+` FROM brands WHERE id = $1`, lock)
	var b entity.Brand
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.EnterpriseID, &b.BranchID, &b.Name, &b.Count, &b.Stock, &b.CreatedAt, &b.UpdatedAt,
	)
	return scanOne("get brand", &b, err)
}

// UpdateAggregates persiste item_count y stock.
func (r *BrandRepo) UpdateAggregates(ctx context.Context, b *entity.Brand) error {
	query := `UPDATE brands SET item_count = $2, stock = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, b.ID, b.Count, b.Stock, b.UpdatedAt)
	return mustAffect("update brand", tag, err)
}

// ListIDsByEnterprise devuelve los IDs de marcas de una empresa (para auditorías por lote).
func (r *BrandRepo) ListIDsByEnterprise(ctx context.Context, enterpriseID int64) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM brands WHERE enterprise_id = $1 ORDER BY id`, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
