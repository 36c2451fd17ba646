package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/ledger"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

// TransactionUseCase concilia compras o ventas (según kind): aplica el efecto de sus líneas sobre
// productos y marcas, recalcula totales y mantiene el saldo de la contraparte, todo en una unidad de trabajo.
type TransactionUseCase struct {
	kind     entity.TransactionKind
	txRunner TxRunner
	lines    *LineLedger
	balances *BalanceTracker
	log      *zerolog.Logger
	now      func() time.Time
}

// NewTransactionUseCase construye el conciliador para un tipo de transacción.
func NewTransactionUseCase(
	kind entity.TransactionKind,
	txRunner TxRunner,
	lines *LineLedger,
	balances *BalanceTracker,
	opts Options,
) *TransactionUseCase {
	return &TransactionUseCase{
		kind:     kind,
		txRunner: txRunner,
		lines:    lines,
		balances: balances,
		log:      opts.logger(),
		now:      opts.clock(),
	}
}

// Create valida el payload, aplica todas las líneas en el sentido del tipo, persiste la transacción
// y aplica el saldo: +total a la contraparte y, en cash/cheque, la liquidación por el total.
func (uc *TransactionUseCase) Create(ctx context.Context, scope entity.Scope, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	now := uc.now()
	verr := &domain.ValidationError{}
	tx := &entity.Transaction{
		EnterpriseID:   scope.EnterpriseID,
		BranchID:       scope.BranchID,
		Kind:           uc.kind,
		CounterpartyID: in.CounterpartyID,
		CustomerName:   in.CustomerName,
		BillNo:         in.BillNo,
		Date:           parseDate(verr, "date", in.Date),
		Method:         parseMethod(verr, "method", in.Method),
		ChequeNumber:   in.ChequeNumber,
		CashoutDate:    parseOptionalDate(verr, "cashout_date", in.CashoutDate),
		Discount:       in.Discount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if uc.kind == entity.TransactionPurchase && tx.CounterpartyID == nil {
		verr.Add("counterparty_id", "es obligatorio en compras")
	}
	if len(in.Lines) == 0 {
		verr.Add("lines", "se requiere al menos una línea")
	}
	tx.Lines = toLineEntities(in.Lines)
	for _, l := range tx.Lines {
		l.ID = 0
	}
	verr.Merge(ledger.ValidateLines(tx.Lines))
	tx.Subtotal, tx.TotalAmount = ledger.Totals(tx.Lines, tx.Discount)
	verr.Merge(ledger.ValidateDiscount(tx.Discount, tx.Subtotal))
	if err := verr.Err(); err != nil {
		return nil, err
	}

	opID := uuid.New().String()
	dir := ledger.DirectionFor(uc.kind)
	var settlement *entity.Payment
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := uc.checkCounterparty(ctx, repos, scope, tx.CounterpartyID); err != nil {
			return err
		}
		if err := checkProducts(ctx, repos, scope, tx.Lines); err != nil {
			return err
		}
		if err := repos.Transactions.Create(ctx, tx); err != nil {
			return err
		}
		for _, l := range tx.Lines {
			l.TransactionID = tx.ID
			if err := repos.Transactions.CreateLine(ctx, l); err != nil {
				return err
			}
			eff := ledger.NetEffect(l.ProductID, dir, l.Quantity)
			if err := uc.lines.Apply(ctx, repos, scope, eff); err != nil {
				return err
			}
		}
		s, err := uc.balances.ApplyPlan(ctx, repos, opID, tx, ledger.PlanCreate(balanceState(tx)))
		if err != nil {
			return err
		}
		settlement = s
		return uc.afterSale(ctx, repos, productIDs(tx.Lines), now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("operation_id", opID).
		Str("kind", string(uc.kind)).
		Int64("transaction_id", tx.ID).
		Str("total_amount", tx.TotalAmount.String()).
		Msg("transacción creada")
	return toTransactionResponse(tx, settlement), nil
}

// Update aplica una actualización parcial. Con líneas, compara por ID contra las persistidas y aplica
// sólo los efectos netos; después aplica la matriz método/contraparte sobre el saldo.
func (uc *TransactionUseCase) Update(ctx context.Context, scope entity.Scope, id int64, in dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	now := uc.now()
	verr := &domain.ValidationError{}
	var date *time.Time
	if in.Date != nil {
		d := parseDate(verr, "date", *in.Date)
		date = &d
	}
	var method *entity.Method
	if in.Method != nil {
		m := parseMethod(verr, "method", *in.Method)
		method = &m
	}
	var cashout *time.Time
	if in.CashoutDate != nil {
		cashout = parseOptionalDate(verr, "cashout_date", *in.CashoutDate)
	}
	if in.ClearCounterparty {
		if uc.kind == entity.TransactionPurchase {
			verr.Add("clear_counterparty", "una compra requiere proveedor")
		}
		if in.CounterpartyID != nil {
			verr.Add("clear_counterparty", "incompatible con counterparty_id")
		}
	}
	var next []*entity.LineItem
	if in.Lines != nil {
		next = toLineEntities(in.Lines)
		verr.Merge(ledger.ValidateLines(next))
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	opID := uuid.New().String()
	dir := ledger.DirectionFor(uc.kind)
	var out *dto.TransactionResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		tx, err := uc.load(ctx, repos, scope, id, true)
		if err != nil {
			return err
		}
		oldState := balanceState(tx)
		oldLines := tx.Lines

		if in.ClearCounterparty {
			tx.CounterpartyID = nil
		}
		if in.CounterpartyID != nil {
			cpID := *in.CounterpartyID
			tx.CounterpartyID = &cpID
		}
		if in.CustomerName != nil {
			tx.CustomerName = *in.CustomerName
		}
		if in.BillNo != nil {
			tx.BillNo = *in.BillNo
		}
		if date != nil {
			tx.Date = *date
		}
		if method != nil {
			tx.Method = *method
		}
		if in.ChequeNumber != nil {
			tx.ChequeNumber = *in.ChequeNumber
		}
		if in.CashoutDate != nil {
			tx.CashoutDate = cashout
		}
		if in.Discount != nil {
			tx.Discount = *in.Discount
		}
		if err := uc.checkCounterparty(ctx, repos, scope, tx.CounterpartyID); err != nil {
			return err
		}

		touched := productIDs(oldLines)
		if next != nil {
			diff, err := ledger.Diff(oldLines, next)
			if err != nil {
				return err
			}
			merged := mergeLines(diff)
			if err := checkProducts(ctx, repos, scope, merged); err != nil {
				return err
			}
			subtotal, _ := ledger.Totals(merged, tx.Discount)
			if err := ledger.ValidateDiscount(tx.Discount, subtotal); err != nil {
				return err
			}
			if err := uc.lines.ApplyAll(ctx, repos, scope, diff.Effects(dir)); err != nil {
				return err
			}
			if err := persistLines(ctx, repos, tx.ID, diff, merged); err != nil {
				return err
			}
			sort.SliceStable(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
			tx.Lines = merged
			touched = productIDs(oldLines, merged)
		} else if in.Discount != nil {
			subtotal, _ := ledger.Totals(tx.Lines, tx.Discount)
			if err := ledger.ValidateDiscount(tx.Discount, subtotal); err != nil {
				return err
			}
		}

		tx.Subtotal, tx.TotalAmount = ledger.Totals(tx.Lines, tx.Discount)
		tx.UpdatedAt = now
		if err := repos.Transactions.Update(ctx, tx); err != nil {
			return err
		}
		settlement, err := uc.balances.ApplyPlan(ctx, repos, opID, tx, ledger.PlanUpdate(oldState, balanceState(tx)))
		if err != nil {
			return err
		}
		if err := uc.afterSale(ctx, repos, touched, now); err != nil {
			return err
		}
		out = toTransactionResponse(tx, settlement)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("operation_id", opID).
		Str("kind", string(uc.kind)).
		Int64("transaction_id", id).
		Msg("transacción actualizada")
	return out, nil
}

// Delete revierte las líneas no devueltas, la liquidación y el asiento propio, y elimina la transacción.
// Un ID inexistente es ErrNotFound: nunca se revierte dos veces.
func (uc *TransactionUseCase) Delete(ctx context.Context, scope entity.Scope, id int64) error {
	now := uc.now()
	opID := uuid.New().String()
	dir := ledger.DirectionFor(uc.kind)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		tx, err := uc.load(ctx, repos, scope, id, true)
		if err != nil {
			return err
		}
		effects := make([]ledger.Effect, 0, len(tx.Lines))
		for _, l := range tx.ActiveLines() {
			effects = append(effects, ledger.ReversalOf(l.ProductID, dir, l.Quantity))
		}
		if err := uc.lines.ApplyAll(ctx, repos, scope, effects); err != nil {
			return err
		}
		if _, err := uc.balances.ApplyPlan(ctx, repos, opID, tx, ledger.PlanDelete(balanceState(tx))); err != nil {
			return err
		}
		if err := repos.Transactions.Delete(ctx, tx.ID); err != nil {
			return err
		}
		return uc.afterSale(ctx, repos, productIDs(tx.Lines), now)
	})
	if err != nil {
		return err
	}
	uc.log.Debug().
		Str("operation_id", opID).
		Str("kind", string(uc.kind)).
		Int64("transaction_id", id).
		Msg("transacción eliminada")
	return nil
}

// Get devuelve la transacción confirmada con sus líneas.
func (uc *TransactionUseCase) Get(ctx context.Context, scope entity.Scope, id int64) (*dto.TransactionResponse, error) {
	var out *dto.TransactionResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		tx, err := uc.load(ctx, repos, scope, id, false)
		if err != nil {
			return err
		}
		settlement, err := repos.Payments.GetByTransaction(ctx, tx.ID)
		if err != nil {
			return err
		}
		out = toTransactionResponse(tx, settlement)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReturnLine marca una línea como devuelta (devolución de compra o de venta): revierte su efecto,
// recalcula totales y compensa el saldo por la diferencia.
func (uc *TransactionUseCase) ReturnLine(ctx context.Context, scope entity.Scope, id, lineID int64) (*dto.TransactionResponse, error) {
	now := uc.now()
	opID := uuid.New().String()
	dir := ledger.DirectionFor(uc.kind)
	var out *dto.TransactionResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		tx, err := uc.load(ctx, repos, scope, id, true)
		if err != nil {
			return err
		}
		line := tx.Line(lineID)
		if line == nil {
			return notFound("línea", lineID)
		}
		if line.Returned {
			return domain.ErrConflict
		}
		// El descuento debe seguir cubierto por las líneas que quedan.
		if err := ledger.ValidateDiscount(tx.Discount, tx.Subtotal.Sub(line.TotalPrice)); err != nil {
			return err
		}
		oldState := balanceState(tx)

		eff := ledger.ReversalOf(line.ProductID, dir, line.Quantity)
		if err := uc.lines.Apply(ctx, repos, scope, eff); err != nil {
			return err
		}
		line.Returned = true
		line.ReturnedAt = &now
		if err := repos.Transactions.UpdateLine(ctx, line); err != nil {
			return err
		}
		tx.Subtotal, tx.TotalAmount = ledger.Totals(tx.Lines, tx.Discount)
		tx.UpdatedAt = now
		if err := repos.Transactions.Update(ctx, tx); err != nil {
			return err
		}
		settlement, err := uc.balances.ApplyPlan(ctx, repos, opID, tx, ledger.PlanUpdate(oldState, balanceState(tx)))
		if err != nil {
			return err
		}
		if err := uc.afterSale(ctx, repos, []int64{line.ProductID}, now); err != nil {
			return err
		}
		out = toTransactionResponse(tx, settlement)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("operation_id", opID).
		Str("kind", string(uc.kind)).
		Int64("transaction_id", id).
		Int64("line_id", lineID).
		Msg("línea devuelta")
	return out, nil
}

// load obtiene la transacción (bloqueada si lock) y verifica tipo y empresa.
func (uc *TransactionUseCase) load(ctx context.Context, repos repository.Repositories, scope entity.Scope, id int64, lock bool) (*entity.Transaction, error) {
	var (
		tx  *entity.Transaction
		err error
	)
	if lock {
		tx, err = repos.Transactions.GetForUpdate(ctx, id)
	} else {
		tx, err = repos.Transactions.GetByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.Kind != uc.kind {
		return nil, notFound("transacción", id)
	}
	if err := checkScope(scope, tx.EnterpriseID); err != nil {
		return nil, err
	}
	return tx, nil
}

// checkCounterparty verifica que la contraparte exista, sea de la empresa y del tipo que corresponde.
func (uc *TransactionUseCase) checkCounterparty(ctx context.Context, repos repository.Repositories, scope entity.Scope, id *int64) error {
	if id == nil {
		return nil
	}
	cp, err := repos.Counterparties.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if cp == nil {
		return notFound("contraparte", *id)
	}
	if err := checkScope(scope, cp.EnterpriseID); err != nil {
		return err
	}
	if want := uc.kind.CounterpartyKind(); cp.Kind != want {
		return domain.NewValidationError("counterparty_id", "debe ser un "+string(want))
	}
	return nil
}

func (uc *TransactionUseCase) afterSale(ctx context.Context, repos repository.Repositories, products []int64, now time.Time) error {
	if uc.kind != entity.TransactionSale {
		return nil
	}
	return recomputeReceivables(ctx, repos, products, now)
}

// checkProducts verifica que todos los productos de las líneas existan y sean de la empresa.
func checkProducts(ctx context.Context, repos repository.Repositories, scope entity.Scope, lines []*entity.LineItem) error {
	for _, id := range productIDs(lines) {
		p, err := repos.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound("producto", id)
		}
		if err := checkScope(scope, p.EnterpriseID); err != nil {
			return err
		}
	}
	return nil
}

// mergeLines construye el conjunto de líneas resultante: las modificadas con los valores nuevos
// (las devueltas quedan como estaban) más las nuevas.
func mergeLines(diff ledger.LineDiff) []*entity.LineItem {
	merged := make([]*entity.LineItem, 0, len(diff.Modified)+len(diff.Added))
	for _, c := range diff.Modified {
		if c.Old.Returned {
			merged = append(merged, c.Old)
			continue
		}
		updated := *c.Old
		updated.ProductID = c.New.ProductID
		updated.SerialNumber = c.New.SerialNumber
		updated.Quantity = c.New.Quantity
		updated.UnitPrice = c.New.UnitPrice
		updated.Recalc()
		merged = append(merged, &updated)
	}
	merged = append(merged, diff.Added...)
	return merged
}

func persistLines(ctx context.Context, repos repository.Repositories, txID int64, diff ledger.LineDiff, merged []*entity.LineItem) error {
	for _, o := range diff.Removed {
		if err := repos.Transactions.DeleteLine(ctx, o.ID); err != nil {
			return err
		}
	}
	for _, l := range merged {
		if l.ID == 0 {
			l.TransactionID = txID
			if err := repos.Transactions.CreateLine(ctx, l); err != nil {
				return err
			}
			continue
		}
		if l.Returned {
			continue
		}
		if err := repos.Transactions.UpdateLine(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func balanceState(tx *entity.Transaction) ledger.BalanceState {
	return ledger.BalanceState{
		CounterpartyID: tx.CounterpartyID,
		Method:         tx.Method,
		Total:          tx.TotalAmount,
	}
}
