package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	appledger "github.com/jhoicas/retail-ledger/internal/application/ledger"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/retail-ledger/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testScope = entity.Scope{EnterpriseID: 1}

type fixture struct {
	ctx            context.Context
	store          *memory.Store
	catalog        *appledger.CatalogUseCase
	purchases      *appledger.TransactionUseCase
	sales          *appledger.TransactionUseCase
	vendorPayments *appledger.PaymentUseCase
	debtorPayments *appledger.PaymentUseCase
	schemes        *appledger.SchemeUseCase
}

func newFixture(t *testing.T, allowNegativeStock bool) *fixture {
	t.Helper()
	nop := zerolog.Nop()
	opts := appledger.Options{
		AllowNegativeStock: allowNegativeStock,
		Logger:             &nop,
		Now:                func() time.Time { return time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC) },
	}
	store := memory.NewStore()
	svc := appledger.NewServices(store, opts)
	return &fixture{
		ctx:            context.Background(),
		store:          store,
		catalog:        svc.Catalog,
		purchases:      svc.Purchases,
		sales:          svc.Sales,
		vendorPayments: svc.VendorPayments,
		debtorPayments: svc.DebtorPayments,
		schemes:        svc.Schemes,
	}
}

// newDefaultFixture arma el fixture con la configuración que carga el servicio sin variables del libro.
func newDefaultFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("STORE_DRIVER", config.StoreMemory)
	t.Setenv("LEDGER_ALLOW_NEGATIVE_STOCK", "")
	cfg, err := config.Load()
	require.NoError(t, err)
	return newFixture(t, cfg.Ledger.AllowNegativeStock)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

func (f *fixture) brand(t *testing.T, name string) int64 {
	t.Helper()
	b, err := f.catalog.CreateBrand(f.ctx, testScope, dto.CreateBrandRequest{Name: name})
	require.NoError(t, err)
	return b.ID
}

func (f *fixture) product(t *testing.T, brandID int64, unitPrice string) int64 {
	t.Helper()
	p, err := f.catalog.CreateProduct(f.ctx, testScope, dto.CreateProductRequest{
		BrandID:      brandID,
		Name:         "Galaxy A15",
		UnitPrice:    dec(unitPrice),
		SellingPrice: dec(unitPrice),
	})
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) counterparty(t *testing.T, kind entity.CounterpartyKind, name string) int64 {
	t.Helper()
	cp, err := f.catalog.CreateCounterparty(f.ctx, testScope, kind, dto.CreateCounterpartyRequest{Name: name})
	require.NoError(t, err)
	return cp.ID
}

func (f *fixture) productState(t *testing.T, id int64) *dto.ProductResponse {
	t.Helper()
	p, err := f.catalog.GetProduct(f.ctx, testScope, id)
	require.NoError(t, err)
	return p
}

func (f *fixture) brandState(t *testing.T, id int64) *dto.BrandResponse {
	t.Helper()
	b, err := f.catalog.GetBrand(f.ctx, testScope, id)
	require.NoError(t, err)
	return b
}

func (f *fixture) due(t *testing.T, kind entity.CounterpartyKind, id int64) decimal.Decimal {
	t.Helper()
	cp, err := f.catalog.GetCounterparty(f.ctx, testScope, kind, id)
	require.NoError(t, err)
	return cp.Due
}

func (f *fixture) entries(t *testing.T, kind entity.CounterpartyKind, id int64) []dto.BalanceEntryResponse {
	t.Helper()
	st, err := f.catalog.Statement(f.ctx, testScope, kind, id, dto.PageRequest{Limit: 100})
	require.NoError(t, err)
	return st.Entries
}

// assertBrandConsistent verifica que los agregados de la marca igualen la suma de sus productos.
func (f *fixture) assertBrandConsistent(t *testing.T, brandID int64) {
	t.Helper()
	audit, err := f.catalog.AuditBrand(f.ctx, testScope, brandID)
	require.NoError(t, err)
	assert.True(t, audit.Consistent, "violaciones: %v", audit.Violations)
}

func lineReq(productID, qty int64, price string) dto.LineItemRequest {
	return dto.LineItemRequest{ProductID: productID, Quantity: qty, UnitPrice: dec(price)}
}

func purchaseReq(vendorID int64, method string, lines ...dto.LineItemRequest) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		CounterpartyID: ptr(vendorID),
		BillNo:         "F-001",
		Date:           "2024-01-10",
		Method:         method,
		Lines:          lines,
	}
}

// linesOf convierte las líneas de una respuesta en líneas de payload (conservando IDs).
func linesOf(tx *dto.TransactionResponse) []dto.LineItemRequest {
	out := make([]dto.LineItemRequest, 0, len(tx.Lines))
	for _, l := range tx.Lines {
		out = append(out, dto.LineItemRequest{
			ID:           l.ID,
			ProductID:    l.ProductID,
			SerialNumber: l.SerialNumber,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
		})
	}
	return out
}
