package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"employee-directory/internal/auth"
	"employee-directory/internal/broker"
	"employee-directory/internal/config"
	"employee-directory/internal/db"
	"employee-directory/internal/employees"
	"employee-directory/internal/middleware"
	"employee-directory/internal/repository"
	"employee-directory/internal/router"

	"github.com/gin-gonic/gin"
)

func main() {
	task := flag.String("task", "", "admin task: migrate")
	direction := flag.String("direction", "up", "migration direction: up|down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.InitLogger(config.ParseLevel(cfg.LogLevel))

	if *task != "" {
		switch *task {
		case "migrate":
			if err := db.Migrate(cfg.DatabaseURL, *direction); err != nil {
				logger.Error("migration failed", "err", err)
				os.Exit(1)
			}
			return
		default:
			logger.Error("unknown admin task", "task", *task)
			os.Exit(2)
		}
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	var notifier employees.Notifier
	if cfg.EventsEnabled() {
		pub, err := broker.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			return err
		}
		defer pub.Close()
		notifier = pub
	} else {
		logger.Info("change events disabled")
	}

	tokens := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	svc := employees.NewService(
		repository.NewEmployeeRepository(pool),
		auth.NewBcryptHasher(cfg.BcryptCost),
		tokens,
		employees.WithTransactionManager(db.NewTransactionManager(pool)),
		employees.WithNotifier(notifier),
		employees.WithLogger(logger),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.SecureHeaders(cfg.IsProduction()))
	router.Setup(r, router.Deps{Auth: svc, Directory: svc, Tokens: tokens, DB: pool})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown error", "err", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
