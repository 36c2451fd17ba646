package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

var (
	_ repository.SchemeRepository          = (*SchemeRepo)(nil)
	_ repository.PriceProtectionRepository = (*PriceProtectionRepo)(nil)
)

// tierJSON forma persistida de un tramo en la columna JSONB schemes.tiers.
type tierJSON struct {
	Lower    int64           `json:"lower"`
	Upper    int64           `json:"upper"`
	Cashback decimal.Decimal `json:"cashback"`
}

func toTierJSON(tiers []entity.SchemeTier) []tierJSON {
	out := make([]tierJSON, len(tiers))
	for i, t := range tiers {
		out[i] = tierJSON{Lower: t.Lower, Upper: t.Upper, Cashback: t.Cashback}
	}
	return out
}

func fromTierJSON(tiers []tierJSON) []entity.SchemeTier {
	out := make([]entity.SchemeTier, len(tiers))
	for i, t := range tiers {
		out[i] = entity.SchemeTier{Lower: t.Lower, Upper: t.Upper, Cashback: t.Cashback}
	}
	return out
}

// SchemeRepo esquemas de cashback sobre PostgreSQL.
type SchemeRepo struct {
	q Querier
}

// NewSchemeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSchemeRepository(q Querier) *SchemeRepo {
	return &SchemeRepo{q: q}
}

const schemeColumns = `id, enterprise_id, branch_id, brand_id, product_id, from_date, to_date, status, tiers,
	sold, receivable, created_at, updated_at`

func scanScheme(row pgx.Row) (*entity.Scheme, error) {
	var (
		s     entity.Scheme
		tiers []tierJSON
	)
	if err := row.Scan(
		&s.ID, &s.EnterpriseID, &s.BranchID, &s.BrandID, &s.ProductID, &s.FromDate, &s.ToDate, &s.Status, &tiers,
		&s.Sold, &s.Receivable, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Tiers = fromTierJSON(tiers)
	return &s, nil
}

func (r *SchemeRepo) Create(ctx context.Context, s *entity.Scheme) error {
	query := `
		INSERT INTO schemes (enterprise_id, branch_id, brand_id, product_id, from_date, to_date, status, tiers,
			sold, receivable, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.EnterpriseID, s.BranchID, s.BrandID, s.ProductID, s.FromDate, s.ToDate, s.Status, toTierJSON(s.Tiers),
		s.Sold, s.Receivable, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return writeErr("insert scheme", err)
	}
	return nil
}

func (r *SchemeRepo) GetByID(ctx context.Context, id int64) (*entity.Scheme, error) {
	s, err := scanScheme(r.q.QueryRow(ctx, `SELECT `+schemeColumns+` FROM schemes WHERE id = $1`, id))
	return scanOne("get scheme", s, err)
}

func (r *SchemeRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Scheme, error) {
	rows, err := r.q.Query(ctx, `SELECT `+schemeColumns+` FROM schemes WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Scheme
	for rows.Next() {
		s, err := scanScheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheme: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update persiste estado, vendidos y receivable.
func (r *SchemeRepo) Update(ctx context.Context, s *entity.Scheme) error {
	query := `UPDATE schemes SET status = $2, sold = $3, receivable = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Status, s.Sold, s.Receivable, s.UpdatedAt)
	return mustAffect("update scheme", tag, err)
}

// PriceProtectionRepo protecciones de precio sobre PostgreSQL.
type PriceProtectionRepo struct {
	q Querier
}

// NewPriceProtectionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceProtectionRepository(q Querier) *PriceProtectionRepo {
	return &PriceProtectionRepo{q: q}
}

const priceProtectionColumns = `id, enterprise_id, branch_id, brand_id, product_id, from_date, to_date, status,
	amount_per_unit, sold, receivable, created_at, updated_at`

func scanPriceProtection(row pgx.Row) (*entity.PriceProtection, error) {
	var pp entity.PriceProtection
	if err := row.Scan(
		&pp.ID, &pp.EnterpriseID, &pp.BranchID, &pp.BrandID, &pp.ProductID, &pp.FromDate, &pp.ToDate, &pp.Status,
		&pp.AmountPerUnit, &pp.Sold, &pp.Receivable, &pp.CreatedAt, &pp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pp, nil
}

func (r *PriceProtectionRepo) Create(ctx context.Context, pp *entity.PriceProtection) error {
	query := `
		INSERT INTO price_protections (enterprise_id, branch_id, brand_id, product_id, from_date, to_date, status,
			amount_per_unit, sold, receivable, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		pp.EnterpriseID, pp.BranchID, pp.BrandID, pp.ProductID, pp.FromDate, pp.ToDate, pp.Status,
		pp.AmountPerUnit, pp.Sold, pp.Receivable, pp.CreatedAt, pp.UpdatedAt,
	).Scan(&pp.ID)
	if err != nil {
		return writeErr("insert price protection", err)
	}
	return nil
}

func (r *PriceProtectionRepo) GetByID(ctx context.Context, id int64) (*entity.PriceProtection, error) {
	pp, err := scanPriceProtection(r.q.QueryRow(ctx, `SELECT `+priceProtectionColumns+` FROM price_protections WHERE id = $1`, id))
	return scanOne("get price protection", pp, err)
}

func (r *PriceProtectionRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.PriceProtection, error) {
	rows, err := r.q.Query(ctx, `SELECT `+priceProtectionColumns+` FROM price_protections WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list price protections: %w", err)
	}
	defer rows.Close()

	var list []*entity.PriceProtection
	for rows.Next() {
		pp, err := scanPriceProtection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price protection: %w", err)
		}
		list = append(list, pp)
	}
	return list, rows.Err()
}

func (r *PriceProtectionRepo) Update(ctx context.Context, pp *entity.PriceProtection) error {
	query := `UPDATE price_protections SET status = $2, sold = $3, receivable = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, pp.ID, pp.Status, pp.Sold, pp.Receivable, pp.UpdatedAt)
	return mustAffect("update price protection", tag, err)
}
