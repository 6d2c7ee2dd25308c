// Package migrations embeds the SQL schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var Migrations embed.FS

const dialect = "postgres"

// Direction names accepted by Run.
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionStatus = "status"
)

// gooseRunner is a seam so tests can run without a database.
var gooseRunner = func(ctx context.Context, direction string, db *sql.DB, dir string) error {
	switch direction {
	case DirectionUp:
		return goose.UpContext(ctx, db, dir)
	case DirectionDown:
		return goose.DownContext(ctx, db, dir)
	case DirectionStatus:
		return goose.StatusContext(ctx, db, dir)
	default:
		return errors.Errorf("unknown migration direction %q", direction)
	}
}

// Run applies the embedded migrations in the given direction.
func Run(ctx context.Context, db *sql.DB, direction string) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}

	if err := gooseRunner(ctx, direction, db, "."); err != nil {
		return errors.Wrapf(err, "migrate %s", direction)
	}

	return nil
}
