package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPGUniqueConstraint(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "todolist_title_key"})

	name, ok := PGUniqueConstraint(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "todolist_title_key", name)

	for _, err := range []error{&pgconn.PgError{Code: "23503"}, errors.New("boom"), nil} {
		_, ok := PGUniqueConstraint(err)
		assert.False(t, ok, "%v", err)
	}
}
