package main

import (
	"context"
	"log/slog"
	"os"

	"noteful/config"
	"noteful/internal/delivery"
	"noteful/internal/delivery/api"
	"noteful/internal/delivery/api/middleware"
	"noteful/internal/delivery/api/router/handler"
	"noteful/internal/infra/auth"
	logs "noteful/internal/infra/log"
	"noteful/internal/infra/metrics"
	"noteful/internal/infra/persistence"
	"noteful/internal/usecase"
	"noteful/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			app := fx.New(appOptions(*configFile)...)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()

			return nil
		},
	}
}

func appOptions(configFile string) []fx.Option {
	return []fx.Option{
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		injectInfra(configFile),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	}
}

func injectInfra(configFile string) fx.Option {
	return fx.Provide(
		func() (*config.Config, error) { return config.Load(configFile) },
		logs.New,
		context.Background,
		metrics.NewRegistry,
		newAuthMetrics,
	)
}

func newAuthMetrics(registry *prometheus.Registry) usecase.AuthMetrics {
	return metrics.NewAuthMetrics(registry)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.NewUserRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewPasswordStrategy,
			impl.NewTokenStrategy,
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, logger *slog.Logger, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				logger.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
