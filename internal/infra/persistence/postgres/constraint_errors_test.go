package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "gorm translated", err: gorm.ErrDuplicatedKey, expected: true},
		{name: "wrapped gorm translated", err: errors.Wrap(gorm.ErrDuplicatedKey, "insert"), expected: true},
		{name: "pg unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, expected: true},
		{name: "wrapped pg unique violation", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}), expected: true},
		{name: "other pg error", err: &pgconn.PgError{Code: pgerrcode.NotNullViolation}, expected: false},
		{name: "plain error", err: errors.New("duplicate key value"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isUniqueConstraintViolation(tt.err))
		})
	}
}

func TestIsNotNullConstraintViolation(t *testing.T) {
	assert.True(t, isNotNullConstraintViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
	assert.False(t, isNotNullConstraintViolation(gorm.ErrDuplicatedKey))
}
