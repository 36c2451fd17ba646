package ledger

import (
	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

func toLineEntities(in []dto.LineItemRequest) []*entity.LineItem {
	out := make([]*entity.LineItem, 0, len(in))
	for _, r := range in {
		l := &entity.LineItem{
			ID:           r.ID,
			ProductID:    r.ProductID,
			SerialNumber: r.SerialNumber,
			Quantity:     r.Quantity,
			UnitPrice:    r.UnitPrice,
		}
		l.Recalc()
		out = append(out, l)
	}
	return out
}

func toTransactionResponse(tx *entity.Transaction, settlement *entity.Payment) *dto.TransactionResponse {
	lines := make([]dto.LineItemResponse, 0, len(tx.Lines))
	for _, l := range tx.Lines {
		lines = append(lines, dto.LineItemResponse{
			ID:           l.ID,
			ProductID:    l.ProductID,
			SerialNumber: l.SerialNumber,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			TotalPrice:   l.TotalPrice,
			Returned:     l.Returned,
			ReturnedAt:   l.ReturnedAt,
		})
	}
	out := &dto.TransactionResponse{
		ID:             tx.ID,
		Kind:           string(tx.Kind),
		CounterpartyID: tx.CounterpartyID,
		CustomerName:   tx.CustomerName,
		BillNo:         tx.BillNo,
		Date:           formatDate(tx.Date),
		Method:         string(tx.Method),
		ChequeNumber:   tx.ChequeNumber,
		CashoutDate:    formatOptionalDate(tx.CashoutDate),
		Discount:       tx.Discount,
		Subtotal:       tx.Subtotal,
		TotalAmount:    tx.TotalAmount,
		Lines:          lines,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
	if settlement != nil {
		id := settlement.ID
		out.SettlementID = &id
	}
	return out
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:             p.ID,
		CounterpartyID: p.CounterpartyID,
		TransactionID:  p.TransactionID,
		Date:           formatDate(p.Date),
		Amount:         p.Amount,
		Method:         string(p.Method),
		ChequeNumber:   p.ChequeNumber,
		CashoutDate:    formatOptionalDate(p.CashoutDate),
		Description:    p.Description,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:        b.ID,
		Name:      b.Name,
		Count:     b.Count,
		Stock:     b.Stock,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		BrandID:      p.BrandID,
		Name:         p.Name,
		UnitPrice:    p.UnitPrice,
		SellingPrice: p.SellingPrice,
		Count:        p.Count,
		Stock:        p.Stock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toCounterpartyResponse(c *entity.Counterparty) *dto.CounterpartyResponse {
	return &dto.CounterpartyResponse{
		ID:        c.ID,
		Kind:      string(c.Kind),
		Name:      c.Name,
		Phone:     c.Phone,
		BrandID:   c.BrandID,
		Due:       c.Due,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toBalanceEntryResponse(e *entity.BalanceEntry) dto.BalanceEntryResponse {
	return dto.BalanceEntryResponse{
		ID:            e.ID,
		OperationID:   e.OperationID,
		TransactionID: e.TransactionID,
		PaymentID:     e.PaymentID,
		Reason:        e.Reason,
		Delta:         e.Delta,
		BalanceAfter:  e.BalanceAfter,
		CreatedAt:     e.CreatedAt,
	}
}

func toSchemeResponse(s *entity.Scheme) *dto.SchemeResponse {
	tiers := make([]dto.SchemeTierDTO, 0, len(s.Tiers))
	for _, t := range s.Tiers {
		tiers = append(tiers, dto.SchemeTierDTO{Lower: t.Lower, Upper: t.Upper, Cashback: t.Cashback})
	}
	return &dto.SchemeResponse{
		ID:         s.ID,
		BrandID:    s.BrandID,
		ProductID:  s.ProductID,
		FromDate:   formatDate(s.FromDate),
		ToDate:     formatDate(s.ToDate),
		Status:     s.Status,
		Tiers:      tiers,
		Sold:       s.Sold,
		Receivable: s.Receivable,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toPriceProtectionResponse(pp *entity.PriceProtection) *dto.PriceProtectionResponse {
	return &dto.PriceProtectionResponse{
		ID:            pp.ID,
		BrandID:       pp.BrandID,
		ProductID:     pp.ProductID,
		FromDate:      formatDate(pp.FromDate),
		ToDate:        formatDate(pp.ToDate),
		Status:        pp.Status,
		AmountPerUnit: pp.AmountPerUnit,
		Sold:          pp.Sold,
		Receivable:    pp.Receivable,
		CreatedAt:     pp.CreatedAt,
		UpdatedAt:     pp.UpdatedAt,
	}
}
