package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/ledger"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

// BalanceTracker mantiene el Due de proveedores y deudores y su diario de asientos.
type BalanceTracker struct {
	now func() time.Time
}

// NewBalanceTracker construye el tracker de saldos.
func NewBalanceTracker(opts Options) *BalanceTracker {
	return &BalanceTracker{now: opts.clock()}
}

// entryRef documento que origina un asiento.
type entryRef struct {
	transactionID *int64
	paymentID     *int64
}

// AdjustDue suma delta al Due de la contraparte y registra el asiento. Un delta cero no hace nada.
func (t *BalanceTracker) AdjustDue(ctx context.Context, repos repository.Repositories, operationID string, p ledger.Posting, ref entryRef) error {
	if p.Delta.IsZero() {
		return nil
	}
	cp, err := repos.Counterparties.GetForUpdate(ctx, p.CounterpartyID)
	if err != nil {
		return err
	}
	if cp == nil {
		return notFound("contraparte", p.CounterpartyID)
	}
	now := t.now()
	cp.Due = cp.Due.Add(p.Delta)
	cp.UpdatedAt = now
	if err := repos.Counterparties.UpdateDue(ctx, cp); err != nil {
		return err
	}
	entry := &entity.BalanceEntry{
		CounterpartyID: cp.ID,
		OperationID:    operationID,
		TransactionID:  ref.transactionID,
		PaymentID:      ref.paymentID,
		Reason:         p.Reason,
		Delta:          p.Delta,
		BalanceAfter:   cp.Due,
		CreatedAt:      now,
	}
	if err := repos.BalanceEntries.Create(ctx, entry); err != nil {
		return fmt.Errorf("asiento de saldo: %w", err)
	}
	return nil
}

// Post aplica una lista de ajustes con la misma referencia.
func (t *BalanceTracker) Post(ctx context.Context, repos repository.Repositories, operationID string, postings []ledger.Posting, ref entryRef) error {
	for _, p := range postings {
		if err := t.AdjustDue(ctx, repos, operationID, p, ref); err != nil {
			return err
		}
	}
	return nil
}

// ApplyPlan ejecuta el plan de saldo de una transacción: crea o actualiza la liquidación antes de los
// asientos (para referenciarla) y la elimina después. Devuelve la liquidación vigente, o nil.
func (t *BalanceTracker) ApplyPlan(ctx context.Context, repos repository.Repositories, operationID string, tx *entity.Transaction, plan ledger.BalancePlan) (*entity.Payment, error) {
	settlement, err := repos.Payments.GetByTransaction(ctx, tx.ID)
	if err != nil {
		return nil, err
	}
	now := t.now()

	switch plan.Settlement {
	case ledger.SettlementCreate, ledger.SettlementUpdate:
		if settlement == nil {
			txID := tx.ID
			settlement = &entity.Payment{
				EnterpriseID:  tx.EnterpriseID,
				BranchID:      tx.BranchID,
				TransactionID: &txID,
				CreatedAt:     now,
			}
			fillSettlement(settlement, tx, plan, now)
			if err := repos.Payments.Create(ctx, settlement); err != nil {
				return nil, err
			}
		} else {
			fillSettlement(settlement, tx, plan, now)
			if err := repos.Payments.Update(ctx, settlement); err != nil {
				return nil, err
			}
		}
	}

	txID := tx.ID
	for _, p := range plan.Postings {
		ref := entryRef{transactionID: &txID}
		if p.Settlement && settlement != nil {
			pid := settlement.ID
			ref.paymentID = &pid
		}
		if err := t.AdjustDue(ctx, repos, operationID, p, ref); err != nil {
			return nil, err
		}
	}

	if plan.Settlement == ledger.SettlementDelete && settlement != nil {
		if err := repos.Payments.Delete(ctx, settlement.ID); err != nil {
			return nil, err
		}
		settlement = nil
	}
	return settlement, nil
}

func fillSettlement(p *entity.Payment, tx *entity.Transaction, plan ledger.BalancePlan, now time.Time) {
	p.CounterpartyID = plan.SettlementCounterpartyID
	p.Amount = plan.SettlementAmount
	p.Method = tx.Method
	p.ChequeNumber = tx.ChequeNumber
	p.CashoutDate = tx.CashoutDate
	p.Date = tx.Date
	p.Description = settlementDescription(tx)
	p.UpdatedAt = now
}

func settlementDescription(tx *entity.Transaction) string {
	if tx.BillNo != "" {
		return fmt.Sprintf("liquidación %s %s", tx.Kind, tx.BillNo)
	}
	return fmt.Sprintf("liquidación %s #%d", tx.Kind, tx.ID)
}
