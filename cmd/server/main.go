package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptforge/promptforge/internal/api"
	"github.com/promptforge/promptforge/internal/auth"
	"github.com/promptforge/promptforge/internal/config"
	"github.com/promptforge/promptforge/internal/core"
	"github.com/promptforge/promptforge/internal/enhance"
	"github.com/promptforge/promptforge/internal/logger"
	"github.com/promptforge/promptforge/internal/metrics"
	"github.com/promptforge/promptforge/internal/store"
	"github.com/promptforge/promptforge/internal/utils"
)

func main() {
	root := &cobra.Command{
		Use:   "promptforge",
		Short: "Turn short ideas into structured prompts",
		Long: `PromptForge serves the prompt generation API and the per-user
prompt history behind it.

Run without a subcommand to start the HTTP server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(serveCmd())
	root.AddCommand(enhanceCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func enhanceCmd() *cobra.Command {
	var categoryOnly bool

	cmd := &cobra.Command{
		Use:   "enhance [idea...]",
		Short: "Print the generated prompt for an idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idea := strings.Join(args, " ")
			if utils.IsBlank(idea) {
				return errors.New("user idea is required")
			}
			category, text := enhance.Enhance(idea)
			if categoryOnly {
				fmt.Fprintln(cmd.OutOrStdout(), category)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&categoryOnly, "category", false, "print only the detected category")
	return cmd
}

func serve(ctx context.Context) error {
	config.LoadConfig()
	cfg := config.AppConfig

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFile,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Log

	dbStore, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return err
	}
	defer dbStore.Close()

	var denylist auth.Denylist
	if cfg.RedisAddr != "" {
		redisClient, err := auth.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Error("Failed to connect to Redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			return err
		}
		defer redisClient.Close()
		denylist = auth.NewRedisDenylist(redisClient)
	} else {
		log.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
		denylist = auth.NewMemoryDenylist()
	}

	// Titles fall back to a deterministic label without a Gemini key.
	var titler core.Titler
	if cfg.GeminiAPIKey != "" {
		llmService, err := core.NewLLMService(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Error("Failed to initialize LLM service", zap.Error(err))
			return err
		}
		defer llmService.Close()
		titler = llmService
	}

	m := metrics.New()
	broker := auth.NewBroker()
	defer broker.Subscribe(m.ObserveAuth)()
	defer broker.Subscribe(func(ev auth.Event) {
		log.Info("Auth state changed", zap.String("event", string(ev.Type)), zap.String("user_id", ev.UserID))
	})()

	authService := core.NewAuthService(dbStore, auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL), denylist, broker)
	promptService := core.NewPromptService(dbStore, titler, m, cfg.RecentPromptsLimit)

	apiHandler := api.NewAPIHandler(promptService, authService)
	router := api.NewRouter(apiHandler, m.Handler())

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // title generation may call out to Gemini
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		log.Error("Could not listen", zap.String("addr", serverAddr), zap.Error(err))
		return err
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	log.Info("Server exiting gracefully")
	return nil
}
