package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/tienda-movil-api/internal/application/auth"
	"github.com/jhoicas/tienda-movil-api/internal/application/cart"
	"github.com/jhoicas/tienda-movil-api/internal/application/checkout"
	"github.com/jhoicas/tienda-movil-api/internal/application/order"
	apppayment "github.com/jhoicas/tienda-movil-api/internal/application/payment"
	"github.com/jhoicas/tienda-movil-api/internal/application/product"
	"github.com/jhoicas/tienda-movil-api/internal/application/repair"
	"github.com/jhoicas/tienda-movil-api/internal/application/review"
	"github.com/jhoicas/tienda-movil-api/internal/application/stats"
	infrapayment "github.com/jhoicas/tienda-movil-api/internal/infrastructure/payment"
	infrapdf "github.com/jhoicas/tienda-movil-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-movil-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-movil-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-movil-api/pkg/config"
	"github.com/jhoicas/tienda-movil-api/pkg/logger"
	"github.com/jhoicas/tienda-movil-api/pkg/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	repairRepo := postgres.NewRepairRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	repairLimiter := ratelimit.NewSlidingWindow(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	)
	defer repairLimiter.Close()

	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	paymentClient := infrapayment.NewIyzicoClient(cfg.Payment)

	authUC := auth.NewAuthUseCase(userRepo, cfg.JWT)
	productUC := product.NewProductUseCase(productRepo)
	cartUC := cart.NewCartUseCase(cartRepo, productRepo)
	settleUC := checkout.NewSettleUseCase(txRunner, cartRepo)
	orderUC := order.NewOrderUseCase(orderRepo, receiptGen)
	paymentUC := apppayment.NewPaymentUseCase(paymentClient, settleUC, cartRepo, productRepo)
	repairUC := repair.NewRepairUseCase(repairRepo, repairLimiter)
	reviewUC := review.NewReviewUseCase(reviewRepo, productRepo)
	statsUC := stats.NewStatsUseCase(productRepo, userRepo, orderRepo, repairRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ProductUC: productUC,
		CartUC:    cartUC,
		SettleUC:  settleUC,
		OrderUC:   orderUC,
		PaymentUC: paymentUC,
		RepairUC:  repairUC,
		ReviewUC:  reviewUC,
		StatsUC:   statsUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
