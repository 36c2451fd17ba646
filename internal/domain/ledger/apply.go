package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// StockValue valor monetario de una cantidad al precio de referencia actual del producto.
func StockValue(product *entity.Product, qty int64) decimal.Decimal {
	return product.UnitPrice.Mul(decimal.NewFromInt(qty))
}

// ApplyLine aplica el efecto de qty unidades del producto sobre el producto y su marca.
// Ambos se modifican juntos o ninguno; el caller persiste el par en la misma unidad de trabajo.
func ApplyLine(product *entity.Product, brand *entity.Brand, dir Direction, qty int64) error {
	if qty < 0 {
		return domain.NewValidationError("quantity", "no puede ser negativa")
	}
	if product.BrandID != brand.ID {
		return fmt.Errorf("producto %d no pertenece a la marca %d: %w", product.ID, brand.ID, domain.ErrConsistency)
	}
	if qty == 0 {
		return nil
	}
	signed := int64(dir) * qty
	value := StockValue(product, signed)

	product.Count += signed
	product.Stock = product.Stock.Add(value)
	brand.Count += signed
	brand.Stock = brand.Stock.Add(value)
	return nil
}

// WouldOverdraw indica si una disminución dejaría el conteo del producto por debajo de cero.
func WouldOverdraw(product *entity.Product, dir Direction, qty int64) bool {
	return dir == Decrease && product.Count-qty < 0
}

// Reprice cambia el precio de referencia y reexpresa el stock del producto (count * nuevo precio).
// La diferencia se traslada a la marca para conservar la suma.
func Reprice(product *entity.Product, brand *entity.Brand, unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return domain.NewValidationError("unit_price", "no puede ser negativo")
	}
	if product.BrandID != brand.ID {
		return fmt.Errorf("producto %d no pertenece a la marca %d: %w", product.ID, brand.ID, domain.ErrConsistency)
	}
	restated := unitPrice.Mul(decimal.NewFromInt(product.Count))
	brand.Stock = brand.Stock.Add(restated.Sub(product.Stock))
	product.Stock = restated
	product.UnitPrice = unitPrice
	return nil
}
