package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchase_CreditoSumaStockYSaldo(t *testing.T) {
	f := newFixture(t, true)
	brandID := f.brand(t, "Samsung")
	productID := f.product(t, brandID, "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")

	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productID, 5, "90")))
	require.NoError(t, err)

	assertDec(t, "450", tx.Subtotal, "subtotal")
	assertDec(t, "450", tx.TotalAmount, "total")
	assert.Nil(t, tx.SettlementID, "crédito no crea liquidación")

	p := f.productState(t, productID)
	assert.Equal(t, int64(5), p.Count)
	assertDec(t, "500", p.Stock, "stock al precio de referencia")
	b := f.brandState(t, brandID)
	assert.Equal(t, int64(5), b.Count)
	assertDec(t, "500", b.Stock, "stock de marca")
	assertDec(t, "450", f.due(t, entity.CounterpartyVendor, vendorID), "due del proveedor")
}

func TestCreatePurchase_CashCreaLiquidacionYSaldoNeto(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")

	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "cash", lineReq(productID, 5, "90")))
	require.NoError(t, err)

	require.NotNil(t, tx.SettlementID)
	assert.True(t, f.due(t, entity.CounterpartyVendor, vendorID).IsZero())

	entries := f.entries(t, entity.CounterpartyVendor, vendorID)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.ReasonSettlement, entries[0].Reason, "más reciente primero")
	assertDec(t, "-450", entries[0].Delta, "liquidación")
	assert.True(t, entries[0].BalanceAfter.IsZero())
	assert.Equal(t, *tx.SettlementID, *entries[0].PaymentID)
	assertDec(t, "450", entries[1].Delta, "total facturado")
	assert.Equal(t, entries[0].OperationID, entries[1].OperationID, "misma unidad de trabajo")
}

func TestCreatePurchase_SinProveedorEsValidacion(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")

	req := purchaseReq(0, "credit", lineReq(productID, 1, "90"))
	req.CounterpartyID = nil
	_, err := f.purchases.Create(f.ctx, testScope, req)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "counterparty_id")
	assert.Zero(t, f.productState(t, productID).Count, "nada se aplica antes de validar")
}

func TestCreatePurchase_DeudorComoProveedorEsValidacion(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")
	debtorID := f.counterparty(t, entity.CounterpartyDebtor, "Juan")

	_, err := f.purchases.Create(f.ctx, testScope, purchaseReq(debtorID, "credit", lineReq(productID, 1, "90")))

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreatePurchase_DescuentoReduceTotalYSaldo(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")

	req := purchaseReq(vendorID, "credit", lineReq(productID, 5, "90"))
	req.Discount = dec("50")
	tx, err := f.purchases.Create(f.ctx, testScope, req)
	require.NoError(t, err)
	assertDec(t, "400", tx.TotalAmount, "total con descuento")
	assertDec(t, "400", f.due(t, entity.CounterpartyVendor, vendorID), "due")

	req.Discount = dec("451")
	_, err = f.purchases.Create(f.ctx, testScope, req)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "descuento mayor al subtotal")
}

func TestCreateSale_SerialConCantidadDistintaDeUnoEsValidacion(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")

	line := lineReq(productID, 2, "120")
	line.SerialNumber = "356938035643809"
	_, err := f.sales.Create(f.ctx, testScope, dto.CreateTransactionRequest{
		Date: "2024-01-15", Method: "cash", Lines: []dto.LineItemRequest{line},
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "lines[0].quantity")
}

func TestCreateSale_StockInsuficienteConGuardNoPersisteNada(t *testing.T) {
	f := newDefaultFixture(t)
	brandID := f.brand(t, "Samsung")
	productID := f.product(t, brandID, "100")
	debtorID := f.counterparty(t, entity.CounterpartyDebtor, "Juan")

	_, err := f.sales.Create(f.ctx, testScope, dto.CreateTransactionRequest{
		CounterpartyID: ptr(debtorID),
		Date:           "2024-01-15",
		Method:         "credit",
		Lines:          []dto.LineItemRequest{lineReq(productID, 1, "120")},
	})

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Zero(t, f.productState(t, productID).Count)
	assert.True(t, f.due(t, entity.CounterpartyDebtor, debtorID).IsZero(), "rollback del saldo")
	_, err = f.sales.Get(f.ctx, testScope, 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "la venta no quedó persistida")
}

func TestCreateSale_SinDeudorNoAfectaSaldos(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")

	tx, err := f.sales.Create(f.ctx, testScope, dto.CreateTransactionRequest{
		CustomerName: "Cliente mostrador",
		Date:         "2024-01-15",
		Method:       "cash",
		Lines:        []dto.LineItemRequest{lineReq(productID, 2, "120")},
	})
	require.NoError(t, err)

	assert.Nil(t, tx.SettlementID)
	assert.Equal(t, int64(-2), f.productState(t, productID).Count, "sin guard el conteo puede quedar negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_SinCambiosNoAlteraNada(t *testing.T) {
	f := newFixture(t, true)
	brandID := f.brand(t, "Samsung")
	productID := f.product(t, brandID, "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productID, 5, "90")))
	require.NoError(t, err)
	before := len(f.entries(t, entity.CounterpartyVendor, vendorID))

	updated, err := f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{Lines: linesOf(tx)})
	require.NoError(t, err)

	assertDec(t, "450", updated.TotalAmount, "total")
	p := f.productState(t, productID)
	assert.Equal(t, int64(5), p.Count)
	assertDec(t, "500", p.Stock, "stock")
	assert.Equal(t, int64(5), f.brandState(t, brandID).Count)
	assertDec(t, "450", f.due(t, entity.CounterpartyVendor, vendorID), "due")
	assert.Len(t, f.entries(t, entity.CounterpartyVendor, vendorID), before, "sin asientos nuevos")
}

func TestUpdate_SinLineasDejaLineasIntactas(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productID, 5, "90")))
	require.NoError(t, err)

	updated, err := f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{BillNo: ptr("F-002")})
	require.NoError(t, err)

	assert.Equal(t, "F-002", updated.BillNo)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, int64(5), f.productState(t, productID).Count)
}

func TestUpdate_SoloCantidadAplicaDiferencia(t *testing.T) {
	f := newDefaultFixture(t)
	brandID := f.brand(t, "Samsung")
	productID := f.product(t, brandID, "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productID, 5, "90")))
	require.NoError(t, err)

	lines := linesOf(tx)
	lines[0].Quantity = 8
	updated, err := f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{Lines: lines})
	require.NoError(t, err)

	assert.Equal(t, tx.Lines[0].ID, updated.Lines[0].ID, "la línea conserva su ID")
	p := f.productState(t, productID)
	assert.Equal(t, int64(8), p.Count, "+3 unidades")
	assertDec(t, "800", p.Stock, "stock")
	b := f.brandState(t, brandID)
	assert.Equal(t, int64(8), b.Count)
	assertDec(t, "800", b.Stock, "stock de marca")
	assertDec(t, "720", f.due(t, entity.CounterpartyVendor, vendorID), "due = nuevo total")
}

func TestUpdate_CambioDeProductoRevierteYAplica(t *testing.T) {
	f := newDefaultFixture(t)
	brandID := f.brand(t, "Samsung")
	productA := f.product(t, brandID, "100")
	productB := f.product(t, brandID, "50")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productA, 5, "90")))
	require.NoError(t, err)

	lines := linesOf(tx)
	lines[0].ProductID = productB
	_, err = f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{Lines: lines})
	require.NoError(t, err)

	a := f.productState(t, productA)
	assert.Zero(t, a.Count)
	assert.True(t, a.Stock.IsZero())
	bp := f.productState(t, productB)
	assert.Equal(t, int64(5), bp.Count)
	assertDec(t, "250", bp.Stock, "stock del producto nuevo")
	b := f.brandState(t, brandID)
	assert.Equal(t, int64(5), b.Count)
	assertDec(t, "250", b.Stock, "stock de marca")
	f.assertBrandConsistent(t, brandID)
}

func TestUpdate_EliminarYAgregarLineas(t *testing.T) {
	f := newFixture(t, true)
	brandID := f.brand(t, "Samsung")
	productA := f.product(t, brandID, "100")
	productB := f.product(t, brandID, "50")
	productC := f.product(t, brandID, "10")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit",
		lineReq(productA, 5, "90"), lineReq(productB, 2, "40")))
	require.NoError(t, err)
	assertDec(t, "530", f.due(t, entity.CounterpartyVendor, vendorID), "due inicial")

	lines := linesOf(tx)[:1]
	lines = append(lines, lineReq(productC, 3, "10"))
	updated, err := f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{Lines: lines})
	require.NoError(t, err)

	require.Len(t, updated.Lines, 2)
	assert.Zero(t, f.productState(t, productB).Count, "línea eliminada revertida")
	assert.Equal(t, int64(3), f.productState(t, productC).Count)
	assertDec(t, "480", updated.TotalAmount, "450 + 30")
	assertDec(t, "480", f.due(t, entity.CounterpartyVendor, vendorID), "due")
	f.assertBrandConsistent(t, brandID)
}

func TestUpdate_LineaAjenaEsNotFoundYNoMuta(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productID, 5, "90")))
	require.NoError(t, err)

	lines := linesOf(tx)
	lines[0].Quantity = 9
	lines = append(lines, dto.LineItemRequest{ID: 999, ProductID: productID, Quantity: 1, UnitPrice: dec("1")})
	_, err = f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{Lines: lines})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, int64(5), f.productState(t, productID).Count)
	assertDec(t, "450", f.due(t, entity.CounterpartyVendor, vendorID), "due sin cambios")
}

func TestUpdate_CreditoACashYDeVuelta(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productID, 5, "90")))
	require.NoError(t, err)

	cash, err := f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{Method: ptr("cash")})
	require.NoError(t, err)
	require.NotNil(t, cash.SettlementID, "exactamente una liquidación")
	assert.True(t, f.due(t, entity.CounterpartyVendor, vendorID).IsZero(), "neto cero")

	settlement, err := f.vendorPayments.Get(f.ctx, testScope, *cash.SettlementID)
	require.NoError(t, err)
	assertDec(t, "450", settlement.Amount, "liquidación por el total")

	cheque, err := f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{
		Method:       ptr("cheque"),
		ChequeNumber: ptr("CH-77"),
	})
	require.NoError(t, err)
	assert.Equal(t, *cash.SettlementID, *cheque.SettlementID, "la liquidación se actualiza en su lugar")
	assert.True(t, f.due(t, entity.CounterpartyVendor, vendorID).IsZero())

	credit, err := f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{Method: ptr("credit")})
	require.NoError(t, err)
	assert.Nil(t, credit.SettlementID)
	assertDec(t, "450", f.due(t, entity.CounterpartyVendor, vendorID), "vuelve a deber el total")

	_, err = f.vendorPayments.Get(f.ctx, testScope, *cash.SettlementID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "liquidación eliminada")
}

func TestUpdate_CambioDeProveedorMueveElSaldo(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")
	vendorA := f.counterparty(t, entity.CounterpartyVendor, "Proveedor A")
	vendorB := f.counterparty(t, entity.CounterpartyVendor, "Proveedor B")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorA, "credit", lineReq(productID, 5, "90")))
	require.NoError(t, err)

	_, err = f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{CounterpartyID: ptr(vendorB)})
	require.NoError(t, err)

	assert.True(t, f.due(t, entity.CounterpartyVendor, vendorA).IsZero())
	assertDec(t, "450", f.due(t, entity.CounterpartyVendor, vendorB), "due del nuevo proveedor")
}

func TestUpdateSale_QuitarDeudorEliminaLiquidacion(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")
	debtorID := f.counterparty(t, entity.CounterpartyDebtor, "Juan")
	tx, err := f.sales.Create(f.ctx, testScope, dto.CreateTransactionRequest{
		CounterpartyID: ptr(debtorID),
		Date:           "2024-01-15",
		Method:         "cash",
		Lines:          []dto.LineItemRequest{lineReq(productID, 1, "120")},
	})
	require.NoError(t, err)
	require.NotNil(t, tx.SettlementID)

	updated, err := f.sales.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{ClearCounterparty: true})
	require.NoError(t, err)

	assert.Nil(t, updated.CounterpartyID)
	assert.Nil(t, updated.SettlementID)
	assert.True(t, f.due(t, entity.CounterpartyDebtor, debtorID).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / round trip
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RevierteTodoYSegundoDeleteEsNotFound(t *testing.T) {
	f := newDefaultFixture(t)
	brandID := f.brand(t, "Samsung")
	productID := f.product(t, brandID, "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "cheque", lineReq(productID, 5, "90")))
	require.NoError(t, err)

	require.NoError(t, f.purchases.Delete(f.ctx, testScope, tx.ID))

	p := f.productState(t, productID)
	assert.Zero(t, p.Count)
	assert.True(t, p.Stock.IsZero())
	b := f.brandState(t, brandID)
	assert.Zero(t, b.Count)
	assert.True(t, b.Stock.IsZero())
	assert.True(t, f.due(t, entity.CounterpartyVendor, vendorID).IsZero())

	err = f.purchases.Delete(f.ctx, testScope, tx.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "nunca doble reversa")
	_, err = f.purchases.Get(f.ctx, testScope, tx.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.vendorPayments.Get(f.ctx, testScope, *tx.SettlementID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "liquidación eliminada con la transacción")
}

func TestDelete_CompraYaVendidaRevierteConConfigPorDefecto(t *testing.T) {
	f := newDefaultFixture(t)
	brandID := f.brand(t, "Samsung")
	productID := f.product(t, brandID, "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	purchase, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productID, 5, "90")))
	require.NoError(t, err)
	_, err = f.sales.Create(f.ctx, testScope, dto.CreateTransactionRequest{
		Date:   "2024-01-15",
		Method: "cash",
		Lines:  []dto.LineItemRequest{lineReq(productID, 3, "120")},
	})
	require.NoError(t, err)

	require.NoError(t, f.purchases.Delete(f.ctx, testScope, purchase.ID), "revertir una compra no depende del stock disponible")

	p := f.productState(t, productID)
	assert.Equal(t, int64(-3), p.Count, "5 - 3 vendidas - 5 revertidas")
	assertDec(t, "-300", p.Stock, "stock")
	b := f.brandState(t, brandID)
	assert.Equal(t, int64(-3), b.Count)
	assertDec(t, "-300", b.Stock, "stock de marca")
	assert.True(t, f.due(t, entity.CounterpartyVendor, vendorID).IsZero())
	f.assertBrandConsistent(t, brandID)
}

func TestUpdate_ReducirCompraYaVendidaConConfigPorDefecto(t *testing.T) {
	f := newDefaultFixture(t)
	brandID := f.brand(t, "Samsung")
	productID := f.product(t, brandID, "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	purchase, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productID, 5, "90")))
	require.NoError(t, err)
	_, err = f.sales.Create(f.ctx, testScope, dto.CreateTransactionRequest{
		Date:   "2024-01-15",
		Method: "cash",
		Lines:  []dto.LineItemRequest{lineReq(productID, 3, "120")},
	})
	require.NoError(t, err)

	lines := linesOf(purchase)
	lines[0].Quantity = 1
	_, err = f.purchases.Update(f.ctx, testScope, purchase.ID, dto.UpdateTransactionRequest{Lines: lines})
	require.NoError(t, err)

	p := f.productState(t, productID)
	assert.Equal(t, int64(-2), p.Count, "se aplica la diferencia -4")
	assertDec(t, "-200", p.Stock, "stock")
	assertDec(t, "90", f.due(t, entity.CounterpartyVendor, vendorID), "due = nuevo total")
	f.assertBrandConsistent(t, brandID)

	// La venta sigue limitada por el stock disponible.
	_, err = f.sales.Create(f.ctx, testScope, dto.CreateTransactionRequest{
		Date:   "2024-01-16",
		Method: "cash",
		Lines:  []dto.LineItemRequest{lineReq(productID, 1, "120")},
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}

func TestRoundTrip_CrearYEliminarVentaRestauraEstado(t *testing.T) {
	f := newDefaultFixture(t)
	brandID := f.brand(t, "Samsung")
	productID := f.product(t, brandID, "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	debtorID := f.counterparty(t, entity.CounterpartyDebtor, "Juan")
	_, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productID, 10, "90")))
	require.NoError(t, err)

	sale, err := f.sales.Create(f.ctx, testScope, dto.CreateTransactionRequest{
		CounterpartyID: ptr(debtorID),
		Date:           "2024-01-15",
		Method:         "credit",
		Lines:          []dto.LineItemRequest{lineReq(productID, 3, "120")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), f.productState(t, productID).Count)
	assertDec(t, "360", f.due(t, entity.CounterpartyDebtor, debtorID), "el deudor debe la venta")

	require.NoError(t, f.sales.Delete(f.ctx, testScope, sale.ID))

	p := f.productState(t, productID)
	assert.Equal(t, int64(10), p.Count)
	assertDec(t, "1000", p.Stock, "stock restaurado")
	assert.True(t, f.due(t, entity.CounterpartyDebtor, debtorID).IsZero())
	f.assertBrandConsistent(t, brandID)
}

func TestGet_OtraEmpresaEsForbiddenYOtroTipoEsNotFound(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productID, 1, "90")))
	require.NoError(t, err)

	_, err = f.purchases.Get(f.ctx, entity.Scope{EnterpriseID: 2}, tx.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = f.sales.Get(f.ctx, testScope, tx.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "una compra no se ve como venta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones
// ──────────────────────────────────────────────────────────────────────────────

func TestReturnLine_RevierteLineaYCompensaSaldo(t *testing.T) {
	f := newFixture(t, true)
	brandID := f.brand(t, "Samsung")
	productA := f.product(t, brandID, "100")
	productB := f.product(t, brandID, "50")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit",
		lineReq(productA, 5, "90"), lineReq(productB, 2, "40")))
	require.NoError(t, err)

	returned, err := f.purchases.ReturnLine(f.ctx, testScope, tx.ID, tx.Lines[1].ID)
	require.NoError(t, err)

	assert.True(t, returned.Lines[1].Returned)
	assert.NotNil(t, returned.Lines[1].ReturnedAt)
	assertDec(t, "450", returned.TotalAmount, "total sin la línea devuelta")
	assert.Zero(t, f.productState(t, productB).Count)
	assertDec(t, "450", f.due(t, entity.CounterpartyVendor, vendorID), "due compensado")
	f.assertBrandConsistent(t, brandID)

	_, err = f.purchases.ReturnLine(f.ctx, testScope, tx.ID, tx.Lines[1].ID)
	assert.True(t, errors.Is(err, domain.ErrConflict), "ya devuelta")

	// Una línea devuelta no se puede editar, pero sí quitar sin reversa.
	lines := linesOf(returned)
	lines[1].Quantity = 1
	_, err = f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{Lines: lines})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	updated, err := f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{Lines: linesOf(returned)[:1]})
	require.NoError(t, err)
	assert.Len(t, updated.Lines, 1)
	assert.Zero(t, f.productState(t, productB).Count, "sin doble reversa")
	f.assertBrandConsistent(t, brandID)
}

func TestDelete_ConLineaDevueltaNoRevierteDosVeces(t *testing.T) {
	f := newDefaultFixture(t)
	brandID := f.brand(t, "Samsung")
	productA := f.product(t, brandID, "100")
	productB := f.product(t, brandID, "50")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit",
		lineReq(productA, 5, "90"), lineReq(productB, 2, "40")))
	require.NoError(t, err)
	_, err = f.purchases.ReturnLine(f.ctx, testScope, tx.ID, tx.Lines[1].ID)
	require.NoError(t, err)

	require.NoError(t, f.purchases.Delete(f.ctx, testScope, tx.ID))

	a := f.productState(t, productA)
	assert.Zero(t, a.Count)
	assert.True(t, a.Stock.IsZero())
	bp := f.productState(t, productB)
	assert.Zero(t, bp.Count, "la línea devuelta no se revierte otra vez")
	assert.True(t, bp.Stock.IsZero())
	b := f.brandState(t, brandID)
	assert.Zero(t, b.Count)
	assert.True(t, b.Stock.IsZero())
	assert.True(t, f.due(t, entity.CounterpartyVendor, vendorID).IsZero())
	f.assertBrandConsistent(t, brandID)
}

func TestReturnLine_DescuentoMayorAlRestanteEsValidacion(t *testing.T) {
	f := newDefaultFixture(t)
	brandID := f.brand(t, "Samsung")
	productA := f.product(t, brandID, "100")
	productB := f.product(t, brandID, "50")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	req := purchaseReq(vendorID, "credit", lineReq(productA, 5, "90"), lineReq(productB, 2, "40"))
	req.Discount = dec("100")
	tx, err := f.purchases.Create(f.ctx, testScope, req)
	require.NoError(t, err)
	assertDec(t, "430", tx.TotalAmount, "530 - 100")

	_, err = f.purchases.ReturnLine(f.ctx, testScope, tx.ID, tx.Lines[0].ID)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "quedarían 80 para un descuento de 100")
	assert.Contains(t, verr.Fields, "discount")
	assert.Equal(t, int64(5), f.productState(t, productA).Count, "sin mutaciones")
	assertDec(t, "430", f.due(t, entity.CounterpartyVendor, vendorID), "due intacto")

	_, err = f.purchases.Update(f.ctx, testScope, tx.ID, dto.UpdateTransactionRequest{Discount: ptr(dec("50"))})
	require.NoError(t, err)
	returned, err := f.purchases.ReturnLine(f.ctx, testScope, tx.ID, tx.Lines[0].ID)
	require.NoError(t, err)
	assertDec(t, "30", returned.TotalAmount, "80 - 50")
	assertDec(t, "30", f.due(t, entity.CounterpartyVendor, vendorID), "due compensado")
	f.assertBrandConsistent(t, brandID)
}

func TestReturnLine_VentaCashActualizaLiquidacion(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")
	debtorID := f.counterparty(t, entity.CounterpartyDebtor, "Juan")
	tx, err := f.sales.Create(f.ctx, testScope, dto.CreateTransactionRequest{
		CounterpartyID: ptr(debtorID),
		Date:           "2024-01-15",
		Method:         "cash",
		Lines:          []dto.LineItemRequest{lineReq(productID, 1, "120"), lineReq(productID, 2, "100")},
	})
	require.NoError(t, err)

	returned, err := f.sales.ReturnLine(f.ctx, testScope, tx.ID, tx.Lines[0].ID)
	require.NoError(t, err)

	assert.Equal(t, int64(-2), f.productState(t, productID).Count)
	settlement, err := f.debtorPayments.Get(f.ctx, testScope, *returned.SettlementID)
	require.NoError(t, err)
	assertDec(t, "200", settlement.Amount, "liquidación por el nuevo total")
	assert.True(t, f.due(t, entity.CounterpartyDebtor, debtorID).IsZero())
}
