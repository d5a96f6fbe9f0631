package main

import (
	"fmt"
	nethttp "net/http"
	"os"
	"time"

	"fulfillment/cmd"
	adapterhttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := mustConnectDB(configs)
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db)
	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file found, relying on environment variables")
	}

	config := cmd.Config{
		HTTPPort:      envVariable("HTTP_PORT"),
		DBHost:        envVariable("DB_HOST"),
		DBPort:        envVariable("DB_PORT"),
		DBUser:        envVariable("DB_USER"),
		DBPassword:    envVariable("DB_PASSWORD"),
		DBName:        envVariable("DB_NAME"),
		DBSslMode:     envVariable("DB_SSLMODE"),
		JWTSecret:     envVariable("JWT_SECRET"),
		StripeAPIKey:  envVariable("STRIPE_API_KEY"),
		RefundTimeout: durationVariable("REFUND_TIMEOUT", 5*time.Second),
	}
	return config
}

func envVariable(key string) string {
	return os.Getenv(key)
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid %s value %q: %v", key, value, err)
	}
	return parsed
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	// TranslateError maps the unique-index violation behind route creation
	// races onto gorm.ErrDuplicatedKey
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.Validator = adapterhttp.NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := adapterhttp.NewServer(
		app.CreateSubmitCancellationCommandHandler(),
		app.CreateResolveCancellationCommandHandler(),
		app.CreateSubmitReturnCommandHandler(),
		app.CreateResolveReturnCommandHandler(),
		app.CreateExecuteRouteAssignmentCommandHandler(),
		app.CreateSetRouteStatusCommandHandler(),
		app.CreateDeleteRouteCommandHandler(),
		app.CreateRefundOrderCommandHandler(),
		app.CreatePreviewRouteAssignmentQueryHandler(),
		app.CreateGetPendingRequestsQueryHandler(),
	)
	server.RegisterRoutes(e, adapterhttp.NewAuth(configs.JWTSecret))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
