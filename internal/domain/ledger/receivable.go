package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// ValidateTiers exige lower <= upper (upper 0 = sin tope), cashback no negativo y tramos sin solaparse.
func ValidateTiers(tiers []entity.SchemeTier) error {
	verr := &domain.ValidationError{}
	if len(tiers) == 0 {
		verr.Add("tiers", "se requiere al menos un tramo")
		return verr
	}
	for i, t := range tiers {
		field := fmt.Sprintf("tiers[%d]", i)
		if t.Lower < 0 || t.Upper < 0 {
			verr.Add(field, "los límites no pueden ser negativos")
		}
		if t.Upper != 0 && t.Upper < t.Lower {
			verr.Add(field, "upper debe ser mayor o igual a lower")
		}
		if t.Cashback.IsNegative() {
			verr.Add(field+".cashback", "no puede ser negativo")
		}
	}
	if !verr.Empty() {
		return verr
	}
	sorted := append([]entity.SchemeTier(nil), tiers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lower < sorted[j].Lower })
	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1]
		if prev.Upper == 0 || prev.Upper >= sorted[i].Lower {
			verr.Add("tiers", "los tramos se solapan")
			break
		}
	}
	return verr.Err()
}

// SchemeReceivable = vendidos * cashback del tramo que contiene la cantidad vendida (0 si ninguno).
func SchemeReceivable(tiers []entity.SchemeTier, sold int64) decimal.Decimal {
	for _, t := range tiers {
		if t.Contains(sold) {
			return t.Cashback.Mul(decimal.NewFromInt(sold))
		}
	}
	return decimal.Zero
}

// PriceProtectionReceivable = vendidos * monto por unidad.
func PriceProtectionReceivable(amountPerUnit decimal.Decimal, sold int64) decimal.Decimal {
	return amountPerUnit.Mul(decimal.NewFromInt(sold))
}
