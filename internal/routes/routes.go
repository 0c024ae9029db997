// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and groups routes by
// authentication requirements.
package routes

import (
	"time"

	"sprpay/internal/config"
	"sprpay/internal/handlers"
	"sprpay/internal/middleware"
	"sprpay/internal/repositories"
	"sprpay/internal/services/currency"
	"sprpay/internal/services/ledger"
	"sprpay/internal/services/paymentmethod"
	"sprpay/internal/services/referral"
	"sprpay/internal/services/subscription"
	"sprpay/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	repos := repositories.NewManager(db)
	baseURL := config.GetEnv("APP_BASE_URL", "http://localhost:3000")

	provider := currency.NewHTTPRateProvider(
		config.GetEnv("EXCHANGE_RATE_API_URL", "https://open.er-api.com/v6/latest"),
		10*time.Second,
	)
	converter := currency.NewService(repos.Rates(), provider)

	ledgerService := ledger.NewService(
		repos.Wallets(),
		repositories.CacheService,
		ledger.Config{},
		&ledger.NoopMetricsCollector{},
	)

	subscriptionService := subscription.NewService(
		repos,
		converter,
		paymentmethod.NewRegistry(),
		repositories.CacheService,
		subscription.Config{BaseURL: baseURL},
	)

	userService := user.NewService(repos, baseURL)
	codes := referral.NewCodeGenerator(repos.Users(), repos.Subscriptions(), baseURL)

	userHandler := handlers.NewUserHandler(userService)
	walletHandler := handlers.NewWalletHandler(ledgerService, repos.Commissions())
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	currencyHandler := handlers.NewCurrencyHandler(converter)
	referralHandler := handlers.NewReferralHandler(codes)

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	api.Post("/register", userHandler.Register)
	api.Post("/login", userHandler.Login)

	authed := api.Group("/", middleware.Auth())
	authed.Get("/wallet", walletHandler.GetWallet)
	authed.Get("/wallet/commissions", walletHandler.GetCommissions)
	authed.Post("/subscriptions/purchase", subscriptionHandler.Purchase)
	authed.Post("/subscriptions/renew", subscriptionHandler.Renew)
	authed.Post("/currency/convert", currencyHandler.Convert)
	authed.Get("/referral/code", referralHandler.GenerateReferralCode)
	authed.Get("/referral/pack-code", referralHandler.GeneratePackReferralCode)
}
