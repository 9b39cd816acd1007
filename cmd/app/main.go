package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookrider/cmd"
	bookriderhttp "bookrider/internal/adapters/in/http"
	"bookrider/internal/adapters/in/ws"
	"bookrider/internal/adapters/out/postgres"
	"bookrider/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs, err := getConfigs()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	hub := ws.NewHub(logger)
	app := cmd.NewCompositionRoot(configs, db, hub)

	jobManager := jobs.NewJobManager(
		app.CreateMarkOverdueRentalsCommandHandler(),
		app.CreatePurgeExpiredQuotesCommandHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/ws", hub.ServeWS)

	server := bookriderhttp.NewServer(bookriderhttp.Handlers{
		GenerateQuote:        app.CreateGenerateQuoteCommandHandler(),
		AddQuoteOptionToCart: app.CreateAddQuoteOptionToCartCommandHandler(),
		SetDeliveryAddress:   app.CreateSetDeliveryAddressCommandHandler(),
		UpdateCartQuantity:   app.CreateUpdateCartQuantityCommandHandler(),
		RemoveCartSubItem:    app.CreateRemoveCartSubItemCommandHandler(),
		Checkout:             app.CreateCheckoutCommandHandler(),
		AcceptOrder:          app.CreateAcceptOrderCommandHandler(),
		AssignDriver:         app.CreateAssignDriverCommandHandler(),
		PickUpOrder:          app.CreatePickUpOrderCommandHandler(),
		DeliverOrder:         app.CreateDeliverOrderCommandHandler(),
		CancelOrder:          app.CreateCancelOrderCommandHandler(),
		CreateRentalReturn:   app.CreateCreateRentalReturnCommandHandler(),
		CompleteRentalReturn: app.CreateCompleteRentalReturnCommandHandler(),

		GetCart:             app.CreateGetCartQueryHandler(),
		GetUserOrders:       app.CreateGetUserOrdersQueryHandler(),
		GetUserRentals:      app.CreateGetUserRentalsQueryHandler(),
		GetUserTransactions: app.CreateGetUserTransactionsQueryHandler(),
		PreviewRentalReturn: app.CreatePreviewRentalReturnQueryHandler(),
	})
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down HTTP server", "error", err)
	}
}

func getConfigs() (cmd.Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load(".env")

	orsTimeout := 10 * time.Second
	if raw := os.Getenv("ORS_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return cmd.Config{}, fmt.Errorf("invalid ORS_TIMEOUT: %w", err)
		}
		orsTimeout = parsed
	}

	config := cmd.Config{
		HTTPPort:   envOrDefault("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),
		ORSBaseURL: envOrDefault("ORS_BASE_URL", "https://api.openrouteservice.org"),
		ORSAPIKey:  os.Getenv("ORS_API_KEY"),
		ORSTimeout: orsTimeout,
	}
	return config, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)
	return gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
}
