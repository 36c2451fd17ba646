package ledger

import "github.com/jhoicas/retail-ledger/internal/domain/entity"

// Direction sentido del efecto de una línea sobre el inventario.
type Direction int

const (
	Increase Direction = 1  // compra o reversa de venta
	Decrease Direction = -1 // venta o reversa de compra
)

// Opposite devuelve el sentido de la reversa.
func (d Direction) Opposite() Direction {
	return -d
}

func (d Direction) String() string {
	if d == Increase {
		return "increase"
	}
	return "decrease"
}

// DirectionFor devuelve el sentido original de las líneas de un tipo de transacción.
func DirectionFor(kind entity.TransactionKind) Direction {
	if kind == entity.TransactionSale {
		return Decrease
	}
	return Increase
}
