package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos explícitos y liquidaciones sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, enterprise_id, branch_id, counterparty_id, transaction_id, payment_date, amount, method,
	cheque_number, cashout_date, description, created_at, updated_at`

func scanPayment(row pgx.Row, op string) (*entity.Payment, error) {
	var (
		p      entity.Payment
		method string
	)
	err := row.Scan(
		&p.ID, &p.EnterpriseID, &p.BranchID, &p.CounterpartyID, &p.TransactionID, &p.Date, &p.Amount, &method,
		&p.ChequeNumber, &p.CashoutDate, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Method = entity.Method(method)
	return scanOne(op, &p, err)
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (enterprise_id, branch_id, counterparty_id, transaction_id, payment_date, amount, method,
			cheque_number, cashout_date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.EnterpriseID, p.BranchID, p.CounterpartyID, p.TransactionID, p.Date, p.Amount, string(p.Method),
		p.ChequeNumber, p.CashoutDate, p.Description, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return writeErr("insert payment", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	return scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id), "get payment")
}

func (r *PaymentRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Payment, error) {
	return scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id), "get payment for update")
}

// GetByTransaction devuelve la liquidación de la transacción (bloqueada), o (nil, nil).
func (r *PaymentRepo) GetByTransaction(ctx context.Context, transactionID int64) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1 FOR UPDATE`
	return scanPayment(r.q.QueryRow(ctx, query, transactionID), "get settlement")
}

func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	query := `
		UPDATE payments
		SET counterparty_id = $2, payment_date = $3, amount = $4, method = $5, cheque_number = $6,
			cashout_date = $7, description = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.CounterpartyID, p.Date, p.Amount, string(p.Method), p.ChequeNumber, p.CashoutDate, p.Description, p.UpdatedAt,
	)
	return mustAffect("update payment", tag, err)
}

func (r *PaymentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return mustAffect("delete payment", tag, err)
}
