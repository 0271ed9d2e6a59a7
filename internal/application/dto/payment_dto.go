package dto

// InitPaymentRequest entrada para iniciar un pago con tarjeta (checkout alojado).
// La dirección y el teléfono se necesitan para crear el pedido al resolverse el pago.
type InitPaymentRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Notes           string `json:"notes"`
}

// InitPaymentResponse URL de la página de pago del proveedor + token de seguimiento.
type InitPaymentResponse struct {
	PaymentPageURL string `json:"payment_page_url"`
	Token          string `json:"token"`
}

// PaymentCallbackRequest token que el proveedor envía al callback.
type PaymentCallbackRequest struct {
	Token string `json:"token" validate:"required"`
}

// PaymentResultResponse resultado de resolver el token del callback.
type PaymentResultResponse struct {
	Paid        bool   `json:"paid"`
	PaymentID   string `json:"payment_id,omitempty"`
	OrderNumber string `json:"order_number,omitempty"`
	Message     string `json:"message,omitempty"`
}
