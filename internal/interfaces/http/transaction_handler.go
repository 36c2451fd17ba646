package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/application/ledger"
)

// TransactionHandler compras o ventas; el caso de uso ya está fijado a un tipo (protegido).
type TransactionHandler struct {
	uc *ledger.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *ledger.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar compra / venta con sus líneas
// @Description  Aplica las líneas al stock del producto y la marca, ajusta el saldo de la contraparte y, si es cash/cheque, crea la liquidación.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/purchases [post]
// @Router       /api/sales [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener compra / venta
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
// @Router       /api/sales/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), GetScope(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar compra / venta (cabecera y/o conjunto de líneas)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateTransactionRequest  true  "Campos a cambiar; lines reemplaza el conjunto"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [patch]
// @Router       /api/sales/{id} [patch]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateTransactionRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetScope(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar compra / venta (revierte stock y saldo)
// @Tags         transactions
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [delete]
// @Router       /api/sales/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetScope(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReturnLine godoc
// @Summary      Devolver una línea (revierte su efecto y recalcula totales)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id      path  int  true  "ID de la transacción"
// @Param        lineId  path  int  true  "ID de la línea"
// @Success      200     {object}  dto.TransactionResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse  "Línea ya devuelta"
// @Router       /api/purchases/{id}/lines/{lineId}/return [post]
// @Router       /api/sales/{id}/lines/{lineId}/return [post]
func (h *TransactionHandler) ReturnLine(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	lineID, err := paramID(c, "lineId")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ReturnLine(c.UserContext(), GetScope(c), id, lineID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
