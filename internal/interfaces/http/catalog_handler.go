package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/application/ledger"
)

// CatalogHandler marcas y productos (protegido).
type CatalogHandler struct {
	uc *ledger.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *ledger.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateBrand godoc
// @Summary      Crear marca
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBrandRequest  true  "Datos de la marca"
// @Success      201   {object}  dto.BrandResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/brands [post]
func (h *CatalogHandler) CreateBrand(c *fiber.Ctx) error {
	var in dto.CreateBrandRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateBrand(c.UserContext(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBrand godoc
// @Summary      Obtener marca con sus agregados
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la marca"
// @Success      200  {object}  dto.BrandResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [get]
func (h *CatalogHandler) GetBrand(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetBrand(c.UserContext(), GetScope(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AuditBrand godoc
// @Summary      Auditar agregados de la marca contra la suma de sus productos
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la marca"
// @Success      200  {object}  dto.BrandAuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id}/audit [get]
func (h *CatalogHandler) AuditBrand(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AuditBrand(c.UserContext(), GetScope(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateProduct(c.UserContext(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetProduct(c.UserContext(), GetScope(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RepriceProduct godoc
// @Summary      Cambiar precio de referencia (revalúa stock del producto y de la marca)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.RepriceProductRequest  true  "Nuevos precios"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/price [patch]
func (h *CatalogHandler) RepriceProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.RepriceProductRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RepriceProduct(c.UserContext(), GetScope(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
