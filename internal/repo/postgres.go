package repo

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable = "authentication"
	itemsTable = "todolist"
)

// psql builds statements with $n placeholders for the pgx driver.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
