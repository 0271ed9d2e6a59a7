package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/application/payment"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
)

// PaymentHandler maneja el pago con tarjeta vía checkout alojado.
type PaymentHandler struct {
	uc *payment.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Init crea la sesión de pago en el proveedor a partir del carrito vigente.
// POST /api/payment/init
func (h *PaymentHandler) Init(c *fiber.Ctx) error {
	var in dto.InitPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Init(c.Context(), GetUserID(c), GetEmail(c), in)
	if err != nil {
		if err == domain.ErrUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dirección de envío y teléfono son requeridos"})
		}
		if err == domain.ErrEmptyCart {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto del carrito no disponible"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// Callback recibe el token del proveedor al terminar el comprador en la
// página de pago. Con pago confirmado se liquida el carrito como pedido.
// POST /api/payment/callback
func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	var in dto.PaymentCallbackRequest
	if err := c.BodyParser(&in); err != nil {
		// El proveedor también puede enviar el token como form field.
		in.Token = c.FormValue("token")
	}
	if in.Token == "" {
		in.Token = c.Query("token")
	}
	resp, err := h.uc.HandleCallback(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token es requerido"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión de pago desconocida o expirada"})
		}
		if err == domain.ErrEmptyCart {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito ya fue liquidado"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para completar el pedido"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CART_CHANGED", Message: "el carrito cambió después de iniciar el pago; inicie el pago de nuevo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
