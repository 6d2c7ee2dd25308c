// Package persistence selects the user store named by store.driver.
package persistence

import (
	"log/slog"

	"noteful/config"
	"noteful/internal/domain/repository"
	"noteful/internal/infra/persistence/memory"
	"noteful/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewUserRepository builds the configured store. Only the postgres driver
// opens a database connection.
func NewUserRepository(params Params) (repository.UserRepository, error) {
	switch params.Config.Store.Driver {
	case config.StoreDriverMemory:
		params.Logger.Warn("Using in-memory user store, data is lost on restart")

		return memory.NewUserRepository(), nil
	case config.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewUserRepository(db), nil
	default:
		return nil, errors.Errorf("unknown store driver %q", params.Config.Store.Driver)
	}
}
