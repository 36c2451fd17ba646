package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/application/ledger"
)

// SchemeHandler esquemas de cashback y protecciones de precio (protegido).
type SchemeHandler struct {
	uc *ledger.SchemeUseCase
}

// NewSchemeHandler construye el handler.
func NewSchemeHandler(uc *ledger.SchemeUseCase) *SchemeHandler {
	return &SchemeHandler{uc: uc}
}

// CreateScheme godoc
// @Summary      Crear esquema de cashback por tramos
// @Tags         schemes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSchemeRequest  true  "Producto, periodo y tramos"
// @Success      201   {object}  dto.SchemeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/schemes [post]
func (h *SchemeHandler) CreateScheme(c *fiber.Ctx) error {
	var in dto.CreateSchemeRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateScheme(c.UserContext(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetScheme godoc
// @Summary      Obtener esquema con vendidos y receivable
// @Tags         schemes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.SchemeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schemes/{id} [get]
func (h *SchemeHandler) GetScheme(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetScheme(c.UserContext(), GetScope(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetSchemeStatus godoc
// @Summary      Cambiar estado del esquema
// @Tags         schemes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.SetStatusRequest  true  "active | expired"
// @Success      200   {object}  dto.SchemeResponse
// @Router       /api/schemes/{id}/status [patch]
func (h *SchemeHandler) SetSchemeStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SetStatusRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SetSchemeStatus(c.UserContext(), GetScope(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreatePriceProtection godoc
// @Summary      Crear protección de precio
// @Tags         schemes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePriceProtectionRequest  true  "Producto, periodo y monto por unidad"
// @Success      201   {object}  dto.PriceProtectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/price-protections [post]
func (h *SchemeHandler) CreatePriceProtection(c *fiber.Ctx) error {
	var in dto.CreatePriceProtectionRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreatePriceProtection(c.UserContext(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPriceProtection godoc
// @Summary      Obtener protección de precio
// @Tags         schemes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.PriceProtectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-protections/{id} [get]
func (h *SchemeHandler) GetPriceProtection(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetPriceProtection(c.UserContext(), GetScope(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetPriceProtectionStatus godoc
// @Summary      Cambiar estado de la protección de precio
// @Tags         schemes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.SetStatusRequest  true  "active | expired"
// @Success      200   {object}  dto.PriceProtectionResponse
// @Router       /api/price-protections/{id}/status [patch]
func (h *SchemeHandler) SetPriceProtectionStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SetStatusRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SetPriceProtectionStatus(c.UserContext(), GetScope(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
