package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, enterprise_id, branch_id, brand_id, name, unit_price, selling_price, item_count, stock, created_at, updated_at`

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(
		&p.ID, &p.EnterpriseID, &p.BranchID, &p.BrandID, &p.Name, &p.UnitPrice, &p.SellingPrice,
		&p.Count, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
}

// Create persiste un nuevo producto con agregados en cero.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (enterprise_id, branch_id, brand_id, name, unit_price, selling_price, item_count, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.EnterpriseID, p.BranchID, p.BrandID, p.Name, p.UnitPrice, p.SellingPrice,
		p.Count, p.Stock, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return writeErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id), &p)
	return scanOne("get product", &p, err)
}

// GetForUpdate obtiene el producto con bloqueo de fila (SELECT ... FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id), &p)
	return scanOne("get product for update", &p, err)
}

// Update persiste precios y agregados.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, unit_price = $3, selling_price = $4, item_count = $5, stock = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Name, p.UnitPrice, p.SellingPrice, p.Count, p.Stock, p.UpdatedAt)
	return mustAffect("update product", tag, err)
}

// ListByBrand lista los productos de una marca ordenados por ID.
func (r *ProductRepo) ListByBrand(ctx context.Context, brandID int64) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE brand_id = $1 ORDER BY id`, brandID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
