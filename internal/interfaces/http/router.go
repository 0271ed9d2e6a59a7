package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-movil-api/internal/application/auth"
	"github.com/jhoicas/tienda-movil-api/internal/application/cart"
	"github.com/jhoicas/tienda-movil-api/internal/application/checkout"
	"github.com/jhoicas/tienda-movil-api/internal/application/order"
	"github.com/jhoicas/tienda-movil-api/internal/application/payment"
	"github.com/jhoicas/tienda-movil-api/internal/application/product"
	"github.com/jhoicas/tienda-movil-api/internal/application/repair"
	"github.com/jhoicas/tienda-movil-api/internal/application/review"
	"github.com/jhoicas/tienda-movil-api/internal/application/stats"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *product.ProductUseCase
	CartUC    *cart.CartUseCase
	SettleUC  *checkout.SettleUseCase
	OrderUC   *order.OrderUseCase
	PaymentUC *payment.PaymentUseCase
	RepairUC  *repair.RepairUseCase
	ReviewUC  *review.ReviewUseCase
	StatsUC   *stats.StatsUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	productHandler := NewProductHandler(deps.ProductUC)
	cartHandler := NewCartHandler(deps.CartUC)
	orderHandler := NewOrderHandler(deps.SettleUC, deps.OrderUC)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	repairHandler := NewRepairHandler(deps.RepairUC)
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	statsHandler := NewStatsHandler(deps.StatsUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Catálogo (público)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/reviews", reviewHandler.List)

	// Callback de la pasarela: llega del proveedor, sin sesión del comprador.
	api.Post("/payment/callback", paymentHandler.Callback)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/products/:id/reviews", reviewHandler.Create)

	cartGroup := protected.Group("/cart")
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Get("/count", cartHandler.Count)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:id", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:id", cartHandler.RemoveItem)

	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.Checkout)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	protected.Post("/payment/init", paymentHandler.Init)

	repairs := protected.Group("/repairs")
	repairs.Post("/", repairHandler.Create)
	repairs.Get("/", repairHandler.List)

	// Back office (requiere rol ADMIN)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)
	admin.Get("/orders", orderHandler.ListAll)
	admin.Put("/orders/:id/status", orderHandler.UpdateStatus)
	admin.Get("/repairs", repairHandler.ListAll)
	admin.Put("/repairs/:id/status", repairHandler.UpdateStatus)
	admin.Get("/users", authHandler.ListUsers)
	admin.Get("/stats", statsHandler.Dashboard)
}
