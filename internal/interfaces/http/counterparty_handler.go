package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/application/ledger"
	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// CounterpartyHandler proveedores o deudores, según kind (protegido).
type CounterpartyHandler struct {
	uc   *ledger.CatalogUseCase
	kind entity.CounterpartyKind
}

// NewCounterpartyHandler construye el handler para un tipo de contraparte.
func NewCounterpartyHandler(uc *ledger.CatalogUseCase, kind entity.CounterpartyKind) *CounterpartyHandler {
	return &CounterpartyHandler{uc: uc, kind: kind}
}

// Create godoc
// @Summary      Crear proveedor / deudor
// @Tags         counterparties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCounterpartyRequest  true  "Datos de la contraparte"
// @Success      201   {object}  dto.CounterpartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vendors [post]
// @Router       /api/debtors [post]
func (h *CounterpartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCounterpartyRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateCounterparty(c.UserContext(), GetScope(c), h.kind, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor / deudor con su saldo
// @Tags         counterparties
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.CounterpartyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [get]
// @Router       /api/debtors/{id} [get]
func (h *CounterpartyHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetCounterparty(c.UserContext(), GetScope(c), h.kind, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Estado de cuenta (asientos de saldo, más recientes primero)
// @Tags         counterparties
// @Security     Bearer
// @Produce      json
// @Param        id      path   int  true   "ID"
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.StatementResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/vendors/{id}/statement [get]
// @Router       /api/debtors/{id}/statement [get]
func (h *CounterpartyHandler) Statement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondError(c, domain.NewValidationError("query", "limit y offset deben ser enteros"))
	}
	if err := validateStruct(page); err != nil {
		return respondError(c, err)
	}
	page.DefaultPage()
	out, err := h.uc.Statement(c.UserContext(), GetScope(c), h.kind, id, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
