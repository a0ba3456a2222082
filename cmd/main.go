package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"cmdbot/clients/rates"
	"cmdbot/config"
	"cmdbot/core/log"
	"cmdbot/handlers"
	"cmdbot/middleware"
	"cmdbot/services/botcommands"
	"cmdbot/services/commands"
	"cmdbot/services/signature"
	"cmdbot/usecases/webhook"
)

const readTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Error("❌ Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	level := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	if cfg.LogFile != "" {
		logFile := log.EnableFileOutput(cfg.LogFile, level)
		defer logFile.Close()
	}

	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.AlertConfig.WebhookURL,
		Environment: cfg.Environment,
		AppName:     "cmdbot",
		LogsURL:     cfg.AlertConfig.LogsURL,
	})
	defer alertMiddleware.Wait()

	ratesClient := rates.NewRatesClient(cfg.RatesAPIURL, cfg.HandlerTimeout)
	registry, err := commands.NewBuilder().
		Add(botcommands.NewDefaultCommands(ratesClient, catalog, botcommands.NewRandomPicker())...).
		Build()
	if err != nil {
		return err
	}

	verifier := signature.NewVerifier(cfg.SharedSecret)
	webhookUseCase := webhook.NewWebhookUseCase(verifier, registry, cfg.HandlerTimeout, alertMiddleware)
	webhookHandler := handlers.NewWebhookHandler(webhookUseCase, cfg.WebhookPath)

	router := mux.NewRouter()
	webhookHandler.SetupEndpoints(router)
	router.HandleFunc("/health", handlers.HandleHealth).Methods(http.MethodGet)

	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	server := newServer(cfg, alertMiddleware.HTTPMiddleware(c.Handler(router)))

	return handleGracefulShutdown(server)
}

// newServer caps how long a client may take to send a request. Writes get
// the command timeout plus headroom.
func newServer(cfg *config.AppConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.HandlerTimeout + 10*time.Second,
	}
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("✅ Listening", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.Error("❌ Server error", "error", err)
		return err
	case <-stop:
		log.Info("🛑 Shutdown signal received, cleaning up...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("❌ Server shutdown error", "error", err)
		return err
	}

	log.Info("✅ Server stopped gracefully")
	return nil
}
