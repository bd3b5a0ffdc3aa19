package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"grafibot/clients"
	"grafibot/clients/anthropic"
	"grafibot/clients/gemini"
	"grafibot/config"
	"grafibot/db"
	"grafibot/handlers"
	"grafibot/middleware"
	"grafibot/ordernotif"
	"grafibot/services"
	"grafibot/services/assistant"
	"grafibot/services/orders"
	"grafibot/services/txmanager"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackAlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "grafibot",
		LogsURL:     cfg.ServerLogsURL,
	})

	// Initialize order notifications
	ordernotif.Init(cfg.OrderNotifWebhookURL, cfg.Environment)

	// Initialize the order store when configured; otherwise the order
	// endpoints answer with their degraded responses.
	var ordersService services.OrdersService
	if cfg.StoreConfig.IsConfigured() {
		dbConn, err := db.NewLazyConnection(cfg.StoreConfig.DatabaseURL)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ordersRepo := db.NewPostgresOrdersRepository(dbConn, cfg.StoreConfig.DatabaseSchema)
		txManager := txmanager.NewTransactionManager(dbConn)
		ordersService = orders.NewOrdersService(ordersRepo, txManager)
	} else {
		ordersService = orders.NewUnconfiguredOrdersService()
	}

	// Initialize the chat assistant when a provider credential is present
	var assistantService services.AssistantService
	if cfg.ChatConfig.IsConfigured() {
		var client clients.GenerativeClient
		switch cfg.ChatConfig.Provider {
		case config.ProviderAnthropic:
			client = anthropic.NewAnthropicClient(cfg.ChatConfig.AnthropicAPIKey, cfg.ChatConfig.AnthropicModel)
		default:
			client = gemini.NewGeminiClient(cfg.ChatConfig.GeminiAPIKey, cfg.ChatConfig.GeminiModel)
		}
		assistantService = assistant.NewAssistantService(
			ordersService,
			client,
			cfg.ChatConfig.ContextLimit,
			cfg.ChatConfig.Temperature,
			cfg.ChatConfig.SafetyMode,
		)

		// Seed the first session at boot so the chatbot greets users with
		// the order context already loaded
		_ = alertMiddleware.WrapBackgroundTask("InitialContextRefresh", func() error {
			return assistantService.RefreshContext(context.Background())
		})()
	} else {
		assistantService = assistant.NewUnconfiguredAssistantService()
	}

	apiHandler := handlers.NewAPIHandler(
		assistantService,
		ordersService,
		cfg.StaticDir,
		cfg.ChatConfig.ContextLimit,
	)

	// Create a new router
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Setup endpoints with the new router. Registers the static catch-all,
	// so this comes after every other route.
	apiHandler.SetupEndpoints(router)

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(middleware.RequestIDMiddleware(router))),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
