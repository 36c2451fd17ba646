package ledger

import (
	"fmt"
	"sort"

	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// LineChange par (persistida, propuesta) de una línea existente.
type LineChange struct {
	Old *entity.LineItem
	New *entity.LineItem
}

// ProductChanged indica si la línea cambió de producto.
func (c LineChange) ProductChanged() bool {
	return c.Old.ProductID != c.New.ProductID
}

// LineDiff resultado de comparar el conjunto de líneas persistido con el propuesto.
type LineDiff struct {
	Modified []LineChange
	Added    []*entity.LineItem
	Removed  []*entity.LineItem
}

// Effect movimiento de inventario neto sobre un producto.
// Reversal marca los movimientos que deshacen el sentido original de la transacción.
type Effect struct {
	ProductID int64
	Direction Direction
	Quantity  int64
	Reversal  bool
}

// NetEffect efecto de qty unidades en el sentido original dir. Una cantidad negativa es una reversa parcial.
func NetEffect(productID int64, dir Direction, qty int64) Effect {
	if qty < 0 {
		return ReversalOf(productID, dir, -qty)
	}
	return Effect{ProductID: productID, Direction: dir, Quantity: qty}
}

// ReversalOf efecto que deshace qty unidades aplicadas en el sentido dir.
func ReversalOf(productID int64, dir Direction, qty int64) Effect {
	return Effect{ProductID: productID, Direction: dir.Opposite(), Quantity: qty, Reversal: true}
}

// Guarded indica si el efecto consume stock disponible: sólo una disminución en el sentido original (venta).
func (e Effect) Guarded() bool {
	return e.Direction == Decrease && !e.Reversal
}

// Diff compara las líneas por ID. Una línea propuesta sin ID es nueva; con un ID que no pertenece
// a la transacción es ErrNotFound. Una línea devuelta no puede modificarse (ErrConflict).
func Diff(old, next []*entity.LineItem) (LineDiff, error) {
	var d LineDiff
	byID := make(map[int64]*entity.LineItem, len(old))
	for _, l := range old {
		byID[l.ID] = l
	}
	seen := make(map[int64]bool, len(next))
	for _, n := range next {
		if n.ID == 0 {
			d.Added = append(d.Added, n)
			continue
		}
		o, ok := byID[n.ID]
		if !ok {
			return LineDiff{}, fmt.Errorf("línea %d: %w", n.ID, domain.ErrNotFound)
		}
		if seen[n.ID] {
			return LineDiff{}, domain.NewValidationError("lines", fmt.Sprintf("línea %d repetida", n.ID))
		}
		seen[n.ID] = true
		if o.Returned {
			if lineEdited(o, n) {
				return LineDiff{}, fmt.Errorf("línea %d ya fue devuelta: %w", n.ID, domain.ErrConflict)
			}
		}
		d.Modified = append(d.Modified, LineChange{Old: o, New: n})
	}
	for _, o := range old {
		if !seen[o.ID] {
			d.Removed = append(d.Removed, o)
		}
	}
	return d, nil
}

func lineEdited(o, n *entity.LineItem) bool {
	return o.ProductID != n.ProductID ||
		o.Quantity != n.Quantity ||
		o.SerialNumber != n.SerialNumber ||
		!o.UnitPrice.Equal(n.UnitPrice)
}

// Effects traduce el diff a movimientos netos en el sentido original dir.
// Misma línea y mismo producto: sólo la diferencia de cantidad. Cambio de producto: reversa total
// del anterior y aplicación total del nuevo. Las líneas devueltas ya fueron revertidas y no generan efecto.
// Los incrementos se ordenan antes que las disminuciones.
func (d LineDiff) Effects(dir Direction) []Effect {
	var out []Effect
	add := func(eff Effect) {
		if eff.Quantity != 0 {
			out = append(out, eff)
		}
	}
	for _, c := range d.Modified {
		if c.Old.Returned {
			continue
		}
		if c.ProductChanged() {
			add(ReversalOf(c.Old.ProductID, dir, c.Old.Quantity))
			add(NetEffect(c.New.ProductID, dir, c.New.Quantity))
			continue
		}
		add(NetEffect(c.New.ProductID, dir, c.New.Quantity-c.Old.Quantity))
	}
	for _, n := range d.Added {
		add(NetEffect(n.ProductID, dir, n.Quantity))
	}
	for _, o := range d.Removed {
		if o.Returned {
			continue
		}
		add(ReversalOf(o.ProductID, dir, o.Quantity))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Direction > out[j].Direction })
	return out
}

// Touched devuelve los productos afectados por el diff (incluye los de líneas devueltas eliminadas).
func (d LineDiff) Touched() []int64 {
	set := map[int64]struct{}{}
	for _, c := range d.Modified {
		set[c.Old.ProductID] = struct{}{}
		set[c.New.ProductID] = struct{}{}
	}
	for _, n := range d.Added {
		set[n.ProductID] = struct{}{}
	}
	for _, o := range d.Removed {
		set[o.ProductID] = struct{}{}
	}
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
