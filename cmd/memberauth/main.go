package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/giftshop/memberauth/pkg/config"
	"github.com/giftshop/memberauth/pkg/logger"
)

// AppConfig holds process-level settings.
type AppConfig struct {
	Store string `env:"APP_STORE" envDefault:"memory"` // memory, postgres or mongo
}

func main() {
	logCfg := config.MustLoad[logger.Config]()
	log := logger.NewFromConfig(logCfg, logger.WithContextExtractors(requestIDExtractor))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error("memberauth stopped with error", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	appCfg, err := config.Load[AppConfig]()
	if err != nil {
		return err
	}

	deps, err := newDependencies(ctx, appCfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	srv, router, err := newServer(ctx, deps, log)
	if err != nil {
		return err
	}

	err = srv.Run(ctx, router)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
