package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ledger/internal/application/ledger"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog        *ledger.CatalogUseCase
	Purchases      *ledger.TransactionUseCase
	Sales          *ledger.TransactionUseCase
	VendorPayments *ledger.PaymentUseCase
	DebtorPayments *ledger.PaymentUseCase
	Schemes        *ledger.SchemeUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(RoleAdmin)

	catalog := NewCatalogHandler(deps.Catalog)
	brands := api.Group("/brands")
	brands.Post("/", catalog.CreateBrand)
	brands.Get("/:id", catalog.GetBrand)
	brands.Get("/:id/audit", catalog.AuditBrand)

	products := api.Group("/products")
	products.Post("/", catalog.CreateProduct)
	products.Get("/:id", catalog.GetProduct)
	products.Patch("/:id/price", admin, catalog.RepriceProduct)

	registerCounterparties(api.Group("/vendors"), NewCounterpartyHandler(deps.Catalog, entity.CounterpartyVendor))
	registerCounterparties(api.Group("/debtors"), NewCounterpartyHandler(deps.Catalog, entity.CounterpartyDebtor))

	registerTransactions(api.Group("/purchases"), NewTransactionHandler(deps.Purchases), admin)
	registerTransactions(api.Group("/sales"), NewTransactionHandler(deps.Sales), admin)

	registerPayments(api.Group("/vendor-payments"), NewPaymentHandler(deps.VendorPayments), admin)
	registerPayments(api.Group("/debtor-payments"), NewPaymentHandler(deps.DebtorPayments), admin)

	schemeHandler := NewSchemeHandler(deps.Schemes)
	schemes := api.Group("/schemes")
	schemes.Post("/", schemeHandler.CreateScheme)
	schemes.Get("/:id", schemeHandler.GetScheme)
	schemes.Patch("/:id/status", admin, schemeHandler.SetSchemeStatus)

	protections := api.Group("/price-protections")
	protections.Post("/", schemeHandler.CreatePriceProtection)
	protections.Get("/:id", schemeHandler.GetPriceProtection)
	protections.Patch("/:id/status", admin, schemeHandler.SetPriceProtectionStatus)
}

func registerCounterparties(g fiber.Router, h *CounterpartyHandler) {
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Get("/:id/statement", h.Statement)
}

func registerTransactions(g fiber.Router, h *TransactionHandler, admin fiber.Handler) {
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Patch("/:id", admin, h.Update)
	g.Delete("/:id", admin, h.Delete)
	g.Post("/:id/lines/:lineId/return", admin, h.ReturnLine)
}

func registerPayments(g fiber.Router, h *PaymentHandler, admin fiber.Handler) {
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Patch("/:id", admin, h.Update)
	g.Delete("/:id", admin, h.Delete)
}
