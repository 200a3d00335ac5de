package utils

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PGUniqueConstraint returns the name of the violated unique constraint, if err is one.
func PGUniqueConstraint(err error) (string, bool) {
	var pge *pgconn.PgError
	if errors.As(err, &pge) && pge.Code == pgUniqueViolation {
		return pge.ConstraintName, true
	}
	return "", false
}
