package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/ledger"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

// PaymentUseCase pagos a proveedores o de deudores EMI (según kind). Cada pago reduce el Due.
// Las liquidaciones de transacciones cash/cheque sólo cambian a través de su transacción.
type PaymentUseCase struct {
	kind     entity.CounterpartyKind
	txRunner TxRunner
	balances *BalanceTracker
	log      *zerolog.Logger
	now      func() time.Time
}

// NewPaymentUseCase construye el caso de uso de pagos.
func NewPaymentUseCase(kind entity.CounterpartyKind, txRunner TxRunner, balances *BalanceTracker, opts Options) *PaymentUseCase {
	return &PaymentUseCase{
		kind:     kind,
		txRunner: txRunner,
		balances: balances,
		log:      opts.logger(),
		now:      opts.clock(),
	}
}

// Create registra el pago y resta el monto del Due.
func (uc *PaymentUseCase) Create(ctx context.Context, scope entity.Scope, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	now := uc.now()
	verr := &domain.ValidationError{}
	p := &entity.Payment{
		EnterpriseID:   scope.EnterpriseID,
		BranchID:       scope.BranchID,
		CounterpartyID: in.CounterpartyID,
		Date:           parseDate(verr, "date", in.Date),
		Amount:         in.Amount,
		Method:         parseMethod(verr, "method", in.Method),
		ChequeNumber:   in.ChequeNumber,
		CashoutDate:    parseOptionalDate(verr, "cashout_date", in.CashoutDate),
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if !p.Amount.IsPositive() {
		verr.Add("amount", "debe ser mayor que cero")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	opID := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := uc.checkCounterparty(ctx, repos, scope, p.CounterpartyID); err != nil {
			return err
		}
		if err := repos.Payments.Create(ctx, p); err != nil {
			return err
		}
		return uc.balances.Post(ctx, repos, opID, ledger.PlanPaymentCreate(p.CounterpartyID, p.Amount), paymentRef(p))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("operation_id", opID).Str("kind", string(uc.kind)).Int64("payment_id", p.ID).Msg("pago registrado")
	return toPaymentResponse(p), nil
}

// Update aplica la diferencia al saldo; si cambia la contraparte devuelve el monto anterior a la vieja.
func (uc *PaymentUseCase) Update(ctx context.Context, scope entity.Scope, id int64, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
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
	if in.Amount != nil && !in.Amount.IsPositive() {
		verr.Add("amount", "debe ser mayor que cero")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	opID := uuid.New().String()
	var out *dto.PaymentResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := uc.load(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		oldCP, oldAmount := p.CounterpartyID, p.Amount
		if in.CounterpartyID != nil && *in.CounterpartyID != p.CounterpartyID {
			if err := uc.checkCounterparty(ctx, repos, scope, *in.CounterpartyID); err != nil {
				return err
			}
			p.CounterpartyID = *in.CounterpartyID
		}
		if in.Amount != nil {
			p.Amount = *in.Amount
		}
		if date != nil {
			p.Date = *date
		}
		if method != nil {
			p.Method = *method
		}
		if in.ChequeNumber != nil {
			p.ChequeNumber = *in.ChequeNumber
		}
		if in.CashoutDate != nil {
			p.CashoutDate = cashout
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		p.UpdatedAt = now
		if err := repos.Payments.Update(ctx, p); err != nil {
			return err
		}
		postings := ledger.PlanPaymentUpdate(oldCP, oldAmount, p.CounterpartyID, p.Amount)
		if err := uc.balances.Post(ctx, repos, opID, postings, paymentRef(p)); err != nil {
			return err
		}
		out = toPaymentResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("operation_id", opID).Str("kind", string(uc.kind)).Int64("payment_id", id).Msg("pago actualizado")
	return out, nil
}

// Delete elimina el pago y devuelve el monto al Due.
func (uc *PaymentUseCase) Delete(ctx context.Context, scope entity.Scope, id int64) error {
	opID := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := uc.load(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		if err := uc.balances.Post(ctx, repos, opID, ledger.PlanPaymentDelete(p.CounterpartyID, p.Amount), paymentRef(p)); err != nil {
			return err
		}
		return repos.Payments.Delete(ctx, p.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Debug().Str("operation_id", opID).Str("kind", string(uc.kind)).Int64("payment_id", id).Msg("pago eliminado")
	return nil
}

// Get devuelve un pago (incluye liquidaciones).
func (uc *PaymentUseCase) Get(ctx context.Context, scope entity.Scope, id int64) (*dto.PaymentResponse, error) {
	var out *dto.PaymentResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Payments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound("pago", id)
		}
		if err := checkScope(scope, p.EnterpriseID); err != nil {
			return err
		}
		if err := uc.checkKind(ctx, repos, p); err != nil {
			return err
		}
		out = toPaymentResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// load bloquea el pago y rechaza las liquidaciones (ErrConflict).
func (uc *PaymentUseCase) load(ctx context.Context, repos repository.Repositories, scope entity.Scope, id int64) (*entity.Payment, error) {
	p, err := repos.Payments.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("pago", id)
	}
	if err := checkScope(scope, p.EnterpriseID); err != nil {
		return nil, err
	}
	if err := uc.checkKind(ctx, repos, p); err != nil {
		return nil, err
	}
	if p.IsSettlement() {
		return nil, domain.ErrConflict
	}
	return p, nil
}

// checkKind trata como inexistente un pago cuya contraparte no es del tipo del caso de uso.
func (uc *PaymentUseCase) checkKind(ctx context.Context, repos repository.Repositories, p *entity.Payment) error {
	cp, err := repos.Counterparties.GetByID(ctx, p.CounterpartyID)
	if err != nil {
		return err
	}
	if cp == nil || cp.Kind != uc.kind {
		return notFound("pago", p.ID)
	}
	return nil
}

func (uc *PaymentUseCase) checkCounterparty(ctx context.Context, repos repository.Repositories, scope entity.Scope, id int64) error {
	cp, err := repos.Counterparties.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cp == nil {
		return notFound("contraparte", id)
	}
	if err := checkScope(scope, cp.EnterpriseID); err != nil {
		return err
	}
	if cp.Kind != uc.kind {
		return domain.NewValidationError("counterparty_id", "debe ser un "+string(uc.kind))
	}
	return nil
}

func paymentRef(p *entity.Payment) entryRef {
	id := p.ID
	return entryRef{transactionID: p.TransactionID, paymentID: &id}
}
