package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo compras y ventas (cabecera + line_items) sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, enterprise_id, branch_id, kind, counterparty_id, customer_name, bill_no, tx_date,
	method, cheque_number, cashout_date, discount, subtotal, total_amount, created_at, updated_at`

const lineColumns = `id, transaction_id, product_id, serial_number, quantity, unit_price, total_price, returned, returned_at`

// Create inserta la cabecera y asigna ID. Las líneas se insertan con CreateLine.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (enterprise_id, branch_id, kind, counterparty_id, customer_name, bill_no, tx_date,
			method, cheque_number, cashout_date, discount, subtotal, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		tx.EnterpriseID, tx.BranchID, string(tx.Kind), tx.CounterpartyID, tx.CustomerName, tx.BillNo, tx.Date,
		string(tx.Method), tx.ChequeNumber, tx.CashoutDate, tx.Discount, tx.Subtotal, tx.TotalAmount,
		tx.CreatedAt, tx.UpdatedAt,
	).Scan(&tx.ID)
	if err != nil {
		return writeErr("insert transaction", err)
	}
	return nil
}

// GetByID obtiene la transacción con sus líneas.
func (r *TransactionRepo) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate bloquea la cabecera y sus líneas.
func (r *TransactionRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Transaction, error) {
	return r.get(ctx, id, true)
}

func (r *TransactionRepo) get(ctx context.Context, id int64, lock bool) (*entity.Transaction, error) {
	query := forUpdate(`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, lock)
	var (
		tx           entity.Transaction
		kind, method string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&tx.ID, &tx.EnterpriseID, &tx.BranchID, &kind, &tx.CounterpartyID, &tx.CustomerName, &tx.BillNo, &tx.Date,
		&method, &tx.ChequeNumber, &tx.CashoutDate, &tx.Discount, &tx.Subtotal, &tx.TotalAmount,
		&tx.CreatedAt, &tx.UpdatedAt,
	)
	found, err := scanOne("get transaction", &tx, err)
	if err != nil || found == nil {
		return nil, err
	}
	tx.Kind = entity.TransactionKind(kind)
	tx.Method = entity.Method(method)

	lines, err := r.lines(ctx, id, lock)
	if err != nil {
		return nil, err
	}
	tx.Lines = lines
	return &tx, nil
}

func (r *TransactionRepo) lines(ctx context.Context, txID int64, lock bool) ([]*entity.LineItem, error) {
	query := forUpdate(`SELECT `+lineColumns+` FROM line_items WHERE transaction_id = $1 ORDER BY id`, lock)
	rows, err := r.q.Query(ctx, query, txID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()

	var out []*entity.LineItem
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanLine(row pgx.Row) (*entity.LineItem, error) {
	var l entity.LineItem
	if err := row.Scan(
		&l.ID, &l.TransactionID, &l.ProductID, &l.SerialNumber, &l.Quantity, &l.UnitPrice, &l.TotalPrice,
		&l.Returned, &l.ReturnedAt,
	); err != nil {
		return nil, fmt.Errorf("scan line item: %w", err)
	}
	return &l, nil
}

// Update persiste la cabecera.
func (r *TransactionRepo) Update(ctx context.Context, tx *entity.Transaction) error {
	query := `
		UPDATE transactions
		SET counterparty_id = $2, customer_name = $3, bill_no = $4, tx_date = $5, method = $6,
			cheque_number = $7, cashout_date = $8, discount = $9, subtotal = $10, total_amount = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		tx.ID, tx.CounterpartyID, tx.CustomerName, tx.BillNo, tx.Date, string(tx.Method),
		tx.ChequeNumber, tx.CashoutDate, tx.Discount, tx.Subtotal, tx.TotalAmount, tx.UpdatedAt,
	)
	return mustAffect("update transaction", tag, err)
}

// Delete elimina la cabecera; line_items cae por ON DELETE CASCADE.
func (r *TransactionRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return mustAffect("delete transaction", tag, err)
}

func (r *TransactionRepo) CreateLine(ctx context.Context, l *entity.LineItem) error {
	query := `
		INSERT INTO line_items (transaction_id, product_id, serial_number, quantity, unit_price, total_price, returned, returned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		l.TransactionID, l.ProductID, l.SerialNumber, l.Quantity, l.UnitPrice, l.TotalPrice, l.Returned, l.ReturnedAt,
	).Scan(&l.ID)
	if err != nil {
		return writeErr("insert line item", err)
	}
	return nil
}

func (r *TransactionRepo) UpdateLine(ctx context.Context, l *entity.LineItem) error {
	query := `
		UPDATE line_items
		SET product_id = $2, serial_number = $3, quantity = $4, unit_price = $5, total_price = $6,
			returned = $7, returned_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		l.ID, l.ProductID, l.SerialNumber, l.Quantity, l.UnitPrice, l.TotalPrice, l.Returned, l.ReturnedAt,
	)
	return mustAffect("update line item", tag, err)
}

func (r *TransactionRepo) DeleteLine(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM line_items WHERE id = $1`, id)
	return mustAffect("delete line item", tag, err)
}

// SoldUnits suma las unidades vendidas y no devueltas del producto con tx_date en [from, to).
func (r *TransactionRepo) SoldUnits(ctx context.Context, productID int64, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(li.quantity), 0)
		FROM line_items li
		JOIN transactions t ON t.id = li.transaction_id
		WHERE t.kind = 'sale'
			AND li.product_id = $1
			AND NOT li.returned
			AND t.tx_date >= $2 AND t.tx_date < $3`
	var sold int64
	if err := r.q.QueryRow(ctx, query, productID, from, to).Scan(&sold); err != nil {
		return 0, fmt.Errorf("sold units: %w", err)
	}
	return sold, nil
}
