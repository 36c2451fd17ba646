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

func TestCatalog_AgregadosInicianEnCero(t *testing.T) {
	f := newFixture(t, true)
	brandID := f.brand(t, "Xiaomi")
	productID := f.product(t, brandID, "100")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")

	b := f.brandState(t, brandID)
	assert.Zero(t, b.Count)
	assert.True(t, b.Stock.IsZero())
	p := f.productState(t, productID)
	assert.Zero(t, p.Count)
	assert.True(t, p.Stock.IsZero())
	assert.True(t, f.due(t, entity.CounterpartyVendor, vendorID).IsZero())

	_, err := f.catalog.GetCounterparty(f.ctx, testScope, entity.CounterpartyDebtor, vendorID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "un proveedor no es deudor")
}

func TestCatalog_ProductoConMarcaInexistente(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.catalog.CreateProduct(f.ctx, testScope, dto.CreateProductRequest{
		BrandID: 42, Name: "Redmi 13", UnitPrice: dec("10"), SellingPrice: dec("12"),
	})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRepriceProduct_ReexpresaStockYPermiteReversaLimpia(t *testing.T) {
	f := newFixture(t, true)
	brandID := f.brand(t, "Samsung")
	productID := f.product(t, brandID, "10")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	tx, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit", lineReq(productID, 4, "10")))
	require.NoError(t, err)

	p, err := f.catalog.RepriceProduct(f.ctx, testScope, productID, dto.RepriceProductRequest{
		UnitPrice: dec("15"), SellingPrice: ptr(dec("18")),
	})
	require.NoError(t, err)
	assertDec(t, "60", p.Stock, "stock reexpresado")
	assertDec(t, "18", p.SellingPrice, "precio de venta")
	assertDec(t, "60", f.brandState(t, brandID).Stock, "diferencia trasladada a la marca")
	f.assertBrandConsistent(t, brandID)

	require.NoError(t, f.purchases.Delete(f.ctx, testScope, tx.ID))
	assert.True(t, f.productState(t, productID).Stock.IsZero())
	assert.True(t, f.brandState(t, brandID).Stock.IsZero())
}

func TestAuditBrand_SumaConsistenteTrasSecuencia(t *testing.T) {
	f := newFixture(t, true)
	brandID := f.brand(t, "Samsung")
	productA := f.product(t, brandID, "100")
	productB := f.product(t, brandID, "35.50")
	vendorID := f.counterparty(t, entity.CounterpartyVendor, "Distribuidora Norte")
	debtorID := f.counterparty(t, entity.CounterpartyDebtor, "Juan")

	purchase, err := f.purchases.Create(f.ctx, testScope, purchaseReq(vendorID, "credit",
		lineReq(productA, 10, "90"), lineReq(productB, 6, "30")))
	require.NoError(t, err)
	sale, err := f.sales.Create(f.ctx, testScope, dto.CreateTransactionRequest{
		CounterpartyID: ptr(debtorID), Date: "2024-01-15", Method: "cheque",
		Lines: []dto.LineItemRequest{lineReq(productA, 2, "120"), lineReq(productB, 1, "40")},
	})
	require.NoError(t, err)

	lines := linesOf(purchase)
	lines[1].Quantity = 9
	_, err = f.purchases.Update(f.ctx, testScope, purchase.ID, dto.UpdateTransactionRequest{Lines: lines})
	require.NoError(t, err)
	_, err = f.sales.ReturnLine(f.ctx, testScope, sale.ID, sale.Lines[1].ID)
	require.NoError(t, err)

	audit, err := f.catalog.AuditBrand(f.ctx, testScope, brandID)
	require.NoError(t, err)
	assert.True(t, audit.Consistent, "violaciones: %v", audit.Violations)
	assert.Equal(t, int64(8+9), audit.CarriedCount)
	assertDec(t, "1119.5", audit.CarriedStock, "8*100 + 9*35.50")
}
