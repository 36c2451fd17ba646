package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// ValidateLines revisa un conjunto de líneas antes de cualquier mutación: cantidad positiva,
// precio no negativo y, en líneas con número de serie, cantidad 1 y serie única en la transacción.
func ValidateLines(lines []*entity.LineItem) error {
	verr := &domain.ValidationError{}
	serials := map[string]int{}
	for i, l := range lines {
		field := fmt.Sprintf("lines[%d]", i)
		if l.ProductID <= 0 {
			verr.Add(field+".product_id", "es obligatorio")
		}
		if l.Quantity <= 0 {
			verr.Add(field+".quantity", "debe ser mayor que cero")
		}
		if l.UnitPrice.IsNegative() {
			verr.Add(field+".unit_price", "no puede ser negativo")
		}
		if l.Serialized() {
			if l.Quantity != 1 {
				verr.Add(field+".quantity", "una línea con número de serie tiene cantidad 1")
			}
			if prev, dup := serials[l.SerialNumber]; dup {
				verr.Add(field+".serial_number", fmt.Sprintf("repetido en lines[%d]", prev))
			} else {
				serials[l.SerialNumber] = i
			}
		}
	}
	return verr.Err()
}

// Totals devuelve subtotal (suma de líneas no devueltas) y total (subtotal - descuento, mínimo 0).
func Totals(lines []*entity.LineItem, discount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Returned {
			continue
		}
		subtotal = subtotal.Add(l.TotalPrice)
	}
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return subtotal, total
}

// ValidateDiscount exige 0 <= descuento <= subtotal.
func ValidateDiscount(discount, subtotal decimal.Decimal) error {
	if discount.IsNegative() {
		return domain.NewValidationError("discount", "no puede ser negativo")
	}
	if discount.GreaterThan(subtotal) {
		return domain.NewValidationError("discount", "no puede superar el subtotal")
	}
	return nil
}
