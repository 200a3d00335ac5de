package repo

import (
	"database/sql"
	"errors"

	"todolist/internal/utils"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// DuplicateError reports which unique field a write collided on.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string { return "duplicate " + e.Field }

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// uniqueFields maps Postgres constraint names to domain field names.
var uniqueFields = map[string]string{
	"authentication_email_key": "email",
	"authentication_name_key":  "name",
	"todolist_title_key":       "title",
}

// translate maps driver errors onto the package's error values.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if constraint, ok := utils.PGUniqueConstraint(err); ok {
		if field, known := uniqueFields[constraint]; known {
			return &DuplicateError{Field: field}
		}
		return &DuplicateError{Field: constraint}
	}
	return err
}
