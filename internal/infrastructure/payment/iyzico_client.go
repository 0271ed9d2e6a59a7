// Package payment implementa el puerto hacia la pasarela de pagos usando el
// checkout alojado de iyzico: Init crea un formulario de pago y el comprador
// termina en la página del proveedor; el resultado se consulta por token.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	apppayment "github.com/jhoicas/tienda-movil-api/internal/application/payment"
	"github.com/jhoicas/tienda-movil-api/pkg/config"
)

// Verificar en tiempo de compilación que IyzicoClient implementa Provider.
var _ apppayment.Provider = (*IyzicoClient)(nil)

const (
	initializePath = "/payment/iyzipos/checkoutform/initialize/auth/ecom"
	retrievePath   = "/payment/iyzipos/checkoutform/auth/ecom/detail"
)

// IyzicoClient adaptador REST hacia iyzico. Solo usa net/http; la firma de
// las peticiones es HMAC-SHA256 según el esquema IYZWSv2 del proveedor.
type IyzicoClient struct {
	apiKey      string
	secretKey   string
	baseURL     string
	callbackURL string
	httpClient  *http.Client
}

// NewIyzicoClient construye el cliente con la configuración de la pasarela.
func NewIyzicoClient(cfg config.PaymentConfig) *IyzicoClient {
	return &IyzicoClient{
		apiKey:      cfg.APIKey,
		secretKey:   cfg.SecretKey,
		baseURL:     cfg.BaseURL,
		callbackURL: cfg.CallbackURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// ── Estructuras internas para la API de iyzico ────────────────────────────────

type basketItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category1 string `json:"category1"`
	ItemType  string `json:"itemType"` // PHYSICAL
	Price     string `json:"price"`
}

type initializeRequest struct {
	Locale         string       `json:"locale"`
	ConversationID string       `json:"conversationId"`
	Price          string       `json:"price"`
	PaidPrice      string       `json:"paidPrice"`
	Currency       string       `json:"currency"`
	CallbackURL    string       `json:"callbackUrl"`
	BuyerEmail     string       `json:"buyerEmail"`
	BasketItems    []basketItem `json:"basketItems"`
}

type initializeResponse struct {
	Status         string `json:"status"` // success | failure
	ErrorMessage   string `json:"errorMessage"`
	Token          string `json:"token"`
	PaymentPageURL string `json:"paymentPageUrl"`
}

type retrieveRequest struct {
	Locale string `json:"locale"`
	Token  string `json:"token"`
}

type retrieveResponse struct {
	Status        string `json:"status"`
	ErrorMessage  string `json:"errorMessage"`
	PaymentStatus string `json:"paymentStatus"` // SUCCESS | FAILURE | INIT_THREEDS ...
	PaymentID     string `json:"paymentId"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// InitCheckout crea la sesión de checkout alojado y devuelve token + URL de pago.
func (c *IyzicoClient) InitCheckout(ctx context.Context, in apppayment.CheckoutInit) (*apppayment.CheckoutSession, error) {
	if c.apiKey == "" || c.secretKey == "" {
		return nil, fmt.Errorf("payment: PAYMENT_API_KEY/PAYMENT_SECRET_KEY no configurados")
	}

	items := make([]basketItem, 0, len(in.Lines))
	for _, l := range in.Lines {
		// iyzico no maneja cantidades: una entrada por línea con el subtotal.
		items = append(items, basketItem{
			ID:        l.ProductID,
			Name:      l.Name,
			Category1: "Tienda",
			ItemType:  "PHYSICAL",
			Price:     l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)).StringFixed(2),
		})
	}
	payload := initializeRequest{
		Locale:         "es",
		ConversationID: in.UserID,
		Price:          in.Amount.StringFixed(2),
		PaidPrice:      in.Amount.StringFixed(2),
		Currency:       "USD",
		CallbackURL:    c.callbackURL,
		BuyerEmail:     in.Email,
		BasketItems:    items,
	}

	var out initializeResponse
	if err := c.post(ctx, initializePath, payload, &out); err != nil {
		return nil, err
	}
	if out.Status != "success" {
		return nil, fmt.Errorf("payment: inicializar checkout: %s", out.ErrorMessage)
	}
	return &apppayment.CheckoutSession{Token: out.Token, PaymentPageURL: out.PaymentPageURL}, nil
}

// Resolve consulta el resultado del pago asociado al token del callback.
func (c *IyzicoClient) Resolve(ctx context.Context, token string) (*apppayment.Result, error) {
	var out retrieveResponse
	if err := c.post(ctx, retrievePath, retrieveRequest{Locale: "es", Token: token}, &out); err != nil {
		return nil, err
	}
	if out.Status != "success" {
		return &apppayment.Result{Paid: false, Message: out.ErrorMessage}, nil
	}
	if out.PaymentStatus != "SUCCESS" {
		return &apppayment.Result{Paid: false, Message: "pago no completado: " + out.PaymentStatus}, nil
	}
	return &apppayment.Result{Paid: true, PaymentID: out.PaymentID}, nil
}

// post envía una petición firmada y decodifica la respuesta JSON.
func (c *IyzicoClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("payment: serializar petición: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("payment: crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authHeader(path, body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payment: llamar pasarela: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("payment: leer respuesta: %w", err)
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("payment: pasarela respondió %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("payment: decodificar respuesta: %w", err)
	}
	return nil
}

// authHeader arma el header IYZWSv2: firma HMAC-SHA256 de randomKey + path +
// body con la secret key, codificada en el formato que espera el proveedor.
func (c *IyzicoClient) authHeader(path string, body []byte) string {
	randomKey := randomHex(8)

	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(randomKey + path + string(body)))
	signature := hex.EncodeToString(mac.Sum(nil))

	auth := fmt.Sprintf("apiKey:%s&randomKey:%s&signature:%s", c.apiKey, randomKey, signature)
	return "IYZWSv2 " + base64.StdEncoding.EncodeToString([]byte(auth))
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read solo falla si el sistema no tiene entropía
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
