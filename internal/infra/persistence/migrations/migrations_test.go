package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	content, err := fs.ReadFile(Migrations, "00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- +goose Up")
	assert.Contains(t, string(content), "UNIQUE INDEX")
}

func TestRun_UsesRunner(t *testing.T) {
	original := gooseRunner
	t.Cleanup(func() { gooseRunner = original })

	var gotDirection, gotDir string
	gooseRunner = func(_ context.Context, direction string, _ *sql.DB, dir string) error {
		gotDirection, gotDir = direction, dir

		return nil
	}

	require.NoError(t, Run(context.Background(), nil, DirectionUp))
	assert.Equal(t, DirectionUp, gotDirection)
	assert.Equal(t, ".", gotDir)
}

func TestRun_WrapsError(t *testing.T) {
	original := gooseRunner
	t.Cleanup(func() { gooseRunner = original })

	boom := errors.New("boom")
	gooseRunner = func(context.Context, string, *sql.DB, string) error { return boom }

	err := Run(context.Background(), nil, DirectionDown)

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "migrate down")
}

func TestRun_UnknownDirection(t *testing.T) {
	err := Run(context.Background(), nil, "sideways")

	require.Error(t, err)
}
