package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// BalanceState lo que determina el efecto de una transacción sobre el saldo de su contraparte.
type BalanceState struct {
	CounterpartyID *int64
	Method         entity.Method
	Total          decimal.Decimal
}

func (s BalanceState) hasCounterparty() bool {
	return s.CounterpartyID != nil && *s.CounterpartyID != 0
}

func (s BalanceState) settled() bool {
	return s.hasCounterparty() && s.Method.Settles()
}

func (s BalanceState) credited() bool {
	return s.hasCounterparty() && s.Method == entity.MethodCredit
}

// Posting ajuste aditivo sobre el Due de una contraparte.
// Settlement marca los asientos que corresponden al pago de liquidación de la transacción.
type Posting struct {
	CounterpartyID int64
	Delta          decimal.Decimal
	Reason         string
	Settlement     bool
}

// SettlementAction qué hacer con el pago de liquidación de una transacción cash/cheque.
type SettlementAction int

const (
	SettlementNone SettlementAction = iota
	SettlementCreate
	SettlementUpdate
	SettlementDelete
)

// BalancePlan ajustes y acción sobre la liquidación que resultan de un cambio de transacción.
// SettlementCounterpartyID y SettlementAmount aplican a Create y Update.
type BalancePlan struct {
	Postings                 []Posting
	Settlement               SettlementAction
	SettlementCounterpartyID int64
	SettlementAmount         decimal.Decimal
}

func (p *BalancePlan) post(cp int64, delta decimal.Decimal, reason string, settlement bool) {
	if delta.IsZero() {
		return
	}
	p.Postings = append(p.Postings, Posting{CounterpartyID: cp, Delta: delta, Reason: reason, Settlement: settlement})
}

// PlanCreate: toda transacción con contraparte suma su total; cash/cheque crea además la liquidación
// por el total, que lo resta. Neto: crédito +total, cash/cheque 0.
func PlanCreate(s BalanceState) BalancePlan {
	var p BalancePlan
	if !s.hasCounterparty() {
		return p
	}
	cp := *s.CounterpartyID
	p.post(cp, s.Total, entity.ReasonBilled, false)
	if s.Method.Settles() {
		p.Settlement = SettlementCreate
		p.SettlementCounterpartyID = cp
		p.SettlementAmount = s.Total
		p.post(cp, s.Total.Neg(), entity.ReasonSettlement, true)
	}
	return p
}

// PlanUpdate aplica la matriz método/contraparte entre el estado persistido y el nuevo.
func PlanUpdate(old, next BalanceState) BalancePlan {
	var p BalancePlan
	sameCP := old.hasCounterparty() && next.hasCounterparty() && *old.CounterpartyID == *next.CounterpartyID

	if sameCP {
		cp := *next.CounterpartyID
		switch {
		case old.credited() && next.credited():
			p.post(cp, next.Total.Sub(old.Total), entity.ReasonBillAdjusted, false)
		case old.settled() && next.settled():
			p.Settlement = SettlementUpdate
		case old.credited() && next.settled():
			p.post(cp, old.Total.Neg(), entity.ReasonBillAdjusted, false)
			p.Settlement = SettlementCreate
		case old.settled() && next.credited():
			p.post(cp, next.Total, entity.ReasonBillAdjusted, false)
			p.Settlement = SettlementDelete
		}
		if p.Settlement == SettlementCreate || p.Settlement == SettlementUpdate {
			p.SettlementCounterpartyID = cp
			p.SettlementAmount = next.Total
		}
		return p
	}

	// Contraparte cambiada (o agregada/quitada en ventas).
	if old.credited() {
		p.post(*old.CounterpartyID, old.Total.Neg(), entity.ReasonBillReversed, false)
	}
	if next.credited() {
		p.post(*next.CounterpartyID, next.Total, entity.ReasonBilled, false)
	}
	switch {
	case old.settled() && next.settled():
		p.Settlement = SettlementUpdate
	case old.settled():
		p.Settlement = SettlementDelete
	case next.settled():
		p.Settlement = SettlementCreate
	}
	if next.settled() {
		p.SettlementCounterpartyID = *next.CounterpartyID
		p.SettlementAmount = next.Total
	}
	return p
}

// PlanDelete revierte el asiento propio de la transacción y, si existe, el de su liquidación.
func PlanDelete(s BalanceState) BalancePlan {
	var p BalancePlan
	if !s.hasCounterparty() {
		return p
	}
	cp := *s.CounterpartyID
	if s.Method.Settles() {
		p.Settlement = SettlementDelete
		p.post(cp, s.Total, entity.ReasonSettlementVoided, true)
	}
	p.post(cp, s.Total.Neg(), entity.ReasonBillReversed, false)
	return p
}

// PlanPaymentCreate un pago reduce el saldo.
func PlanPaymentCreate(cp int64, amount decimal.Decimal) []Posting {
	var p BalancePlan
	p.post(cp, amount.Neg(), entity.ReasonPayment, false)
	return p.Postings
}

// PlanPaymentUpdate misma contraparte: -(nuevo - anterior). Contraparte cambiada: +anterior a la vieja, -nuevo a la nueva.
func PlanPaymentUpdate(oldCP int64, oldAmount decimal.Decimal, newCP int64, newAmount decimal.Decimal) []Posting {
	var p BalancePlan
	if oldCP == newCP {
		p.post(oldCP, newAmount.Sub(oldAmount).Neg(), entity.ReasonPaymentAdjusted, false)
		return p.Postings
	}
	p.post(oldCP, oldAmount, entity.ReasonPaymentReversed, false)
	p.post(newCP, newAmount.Neg(), entity.ReasonPayment, false)
	return p.Postings
}

// PlanPaymentDelete devuelve el monto al saldo.
func PlanPaymentDelete(cp int64, amount decimal.Decimal) []Posting {
	var p BalancePlan
	p.post(cp, amount, entity.ReasonPaymentReversed, false)
	return p.Postings
}
