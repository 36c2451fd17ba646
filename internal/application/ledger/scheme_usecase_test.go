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

func saleReq(date string, lines ...dto.LineItemRequest) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{Date: date, Method: "cash", Lines: lines}
}

func TestSchemes_ReceivableSigueLasVentas(t *testing.T) {
	f := newFixture(t, true)
	brandID := f.brand(t, "Samsung")
	productID := f.product(t, brandID, "100")

	scheme, err := f.schemes.CreateScheme(f.ctx, testScope, dto.CreateSchemeRequest{
		ProductID: productID,
		FromDate:  "2024-01-01",
		ToDate:    "2024-01-31",
		Tiers: []dto.SchemeTierDTO{
			{Lower: 1, Upper: 5, Cashback: dec("10")},
			{Lower: 6, Upper: 0, Cashback: dec("20")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, brandID, scheme.BrandID, "la marca sale del producto")
	assert.Equal(t, entity.PromotionActive, scheme.Status)
	assert.True(t, scheme.Receivable.IsZero())

	pp, err := f.schemes.CreatePriceProtection(f.ctx, testScope, dto.CreatePriceProtectionRequest{
		ProductID: productID, FromDate: "2024-01-01", ToDate: "2024-01-31", AmountPerUnit: dec("5"),
	})
	require.NoError(t, err)

	sale, err := f.sales.Create(f.ctx, testScope, saleReq("2024-01-31", lineReq(productID, 3, "120")))
	require.NoError(t, err)
	_, err = f.sales.Create(f.ctx, testScope, saleReq("2024-02-01", lineReq(productID, 4, "120")))
	require.NoError(t, err)

	got, err := f.schemes.GetScheme(f.ctx, testScope, scheme.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Sold, "la venta de febrero queda fuera del periodo")
	assertDec(t, "30", got.Receivable, "tramo 1")

	lines := linesOf(sale)
	lines[0].Quantity = 7
	_, err = f.sales.Update(f.ctx, testScope, sale.ID, dto.UpdateTransactionRequest{Lines: lines})
	require.NoError(t, err)

	got, err = f.schemes.GetScheme(f.ctx, testScope, scheme.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Sold)
	assertDec(t, "140", got.Receivable, "tramo abierto")
	gotPP, err := f.schemes.GetPriceProtection(f.ctx, testScope, pp.ID)
	require.NoError(t, err)
	assertDec(t, "35", gotPP.Receivable, "7 * 5")

	require.NoError(t, f.sales.Delete(f.ctx, testScope, sale.ID))
	got, err = f.schemes.GetScheme(f.ctx, testScope, scheme.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Sold)
	assert.True(t, got.Receivable.IsZero())
}

func TestSchemes_DevolucionDescuentaVendidos(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")
	pp, err := f.schemes.CreatePriceProtection(f.ctx, testScope, dto.CreatePriceProtectionRequest{
		ProductID: productID, FromDate: "2024-01-01", ToDate: "2024-01-31", AmountPerUnit: dec("2.5"),
	})
	require.NoError(t, err)
	sale, err := f.sales.Create(f.ctx, testScope, saleReq("2024-01-15", lineReq(productID, 2, "120"), lineReq(productID, 4, "120")))
	require.NoError(t, err)

	_, err = f.sales.ReturnLine(f.ctx, testScope, sale.ID, sale.Lines[0].ID)
	require.NoError(t, err)

	got, err := f.schemes.GetPriceProtection(f.ctx, testScope, pp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Sold)
	assertDec(t, "10", got.Receivable, "4 * 2.5")
}

func TestSchemes_TramosInvalidosYEstado(t *testing.T) {
	f := newFixture(t, true)
	productID := f.product(t, f.brand(t, "Samsung"), "100")

	_, err := f.schemes.CreateScheme(f.ctx, testScope, dto.CreateSchemeRequest{
		ProductID: productID, FromDate: "2024-01-01", ToDate: "2024-01-31",
		Tiers: []dto.SchemeTierDTO{{Lower: 1, Upper: 10, Cashback: dec("1")}, {Lower: 5, Upper: 0, Cashback: dec("2")}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "tramos solapados")

	_, err = f.schemes.CreateScheme(f.ctx, testScope, dto.CreateSchemeRequest{
		ProductID: productID, FromDate: "2024-02-01", ToDate: "2024-01-01",
		Tiers: []dto.SchemeTierDTO{{Lower: 1, Upper: 0, Cashback: dec("1")}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "periodo invertido")

	scheme, err := f.schemes.CreateScheme(f.ctx, testScope, dto.CreateSchemeRequest{
		ProductID: productID, FromDate: "2024-01-01", ToDate: "2024-01-31",
		Tiers: []dto.SchemeTierDTO{{Lower: 1, Upper: 0, Cashback: dec("1")}},
	})
	require.NoError(t, err)

	expired, err := f.schemes.SetSchemeStatus(f.ctx, testScope, scheme.ID, dto.SetStatusRequest{Status: entity.PromotionExpired})
	require.NoError(t, err)
	assert.Equal(t, entity.PromotionExpired, expired.Status)

	_, err = f.schemes.SetSchemeStatus(f.ctx, testScope, scheme.ID, dto.SetStatusRequest{Status: "paused"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.schemes.GetScheme(f.ctx, testScope, 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
