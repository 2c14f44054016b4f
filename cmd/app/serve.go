package main

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/emberandwick/candle-shop/internal/address"
	"github.com/emberandwick/candle-shop/internal/admin"
	"github.com/emberandwick/candle-shop/internal/cart"
	"github.com/emberandwick/candle-shop/internal/category"
	"github.com/emberandwick/candle-shop/internal/config"
	"github.com/emberandwick/candle-shop/internal/content"
	"github.com/emberandwick/candle-shop/internal/customorder"
	"github.com/emberandwick/candle-shop/internal/events"
	"github.com/emberandwick/candle-shop/internal/favorite"
	"github.com/emberandwick/candle-shop/internal/logging"
	"github.com/emberandwick/candle-shop/internal/metrics"
	"github.com/emberandwick/candle-shop/internal/order"
	"github.com/emberandwick/candle-shop/internal/payment"
	"github.com/emberandwick/candle-shop/internal/product"
	"github.com/emberandwick/candle-shop/internal/profile"
	"github.com/emberandwick/candle-shop/internal/recommended"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides CANDLE_SHOP_ADDR)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// amounts leave the API as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	db, err := openDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewServerMetrics(reg)

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.OrderEventsTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("closing event publisher", "error", err)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      "candle-shop",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(logging.Middleware(logger))
	app.Use(m.Middleware())
	app.Use(profile.OptionalAuth(cfg.JWTSecret))

	app.Get("/metrics", m.Handler())
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "database": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	profileService := profile.NewService(profile.NewPostgresRepository(db))
	profileHandler := profile.NewHandler(profileService, cfg.JWTSecret, logger)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	orderService := order.NewService(order.NewPostgresRepository(db), publisher, logger)
	orderHandler := order.NewHandler(orderService, profileService)

	gateway := payment.NewRazorpayClient(cfg.Razorpay.BaseURL, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	paymentService := payment.NewService(gateway, orderService, profileService, cfg.Razorpay.KeySecret, cfg.Currency, logger, m)
	paymentHandler := payment.NewHandler(paymentService)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db), logger))
	contentHandler := content.NewHandler(content.NewService(content.NewPostgresRepository(db), logger))
	recommendedHandler := recommended.NewHandler(recommended.NewService(recommended.NewPostgresRepository(db), logger))
	addressHandler := address.NewHandler(address.NewService(address.NewPostgresRepository(db)))
	cartHandler := cart.NewHandler(cart.NewService(cart.NewPostgresRepository(db), productService))
	favoriteHandler := favorite.NewHandler(favorite.NewService(favorite.NewPostgresRepository(db), productService))
	customOrderHandler := customorder.NewHandler(customorder.NewService(customorder.NewPostgresRepository(db), logger))

	adminCache := admin.NewStatusCache(cfg.AdminCacheTTL)
	profileHandler.OnSignOut(adminCache.Invalidate)

	profileHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	contentHandler.RegisterPublicRoutes(app)
	recommendedHandler.RegisterPublicRoutes(app)
	addressHandler.RegisterPublicRoutes(app)
	customOrderHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	profileHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	favoriteHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)

	adminGroup := app.Group("/api/v1/admin", admin.Middleware(adminCache, profileService, logger))
	productHandler.RegisterAdminRoutes(adminGroup)
	orderHandler.RegisterAdminRoutes(adminGroup)
	profileHandler.RegisterAdminRoutes(adminGroup)
	contentHandler.RegisterAdminRoutes(adminGroup)
	customOrderHandler.RegisterAdminRoutes(adminGroup)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "currency", cfg.Currency)
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
