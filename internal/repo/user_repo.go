package repo

import (
	"context"

	dom "todolist/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, u dom.User) (dom.User, error)
	GetByID(ctx context.Context, id int64) (dom.User, error)
	GetByName(ctx context.Context, name string) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
}

type userRow struct {
	ID       int64  `db:"id"`
	Email    string `db:"email"`
	Password string `db:"password"`
	Name     string `db:"name"`
}

func (r userRow) toDomain() dom.User {
	return dom.User{ID: r.ID, Email: r.Email, Name: r.Name, PasswordHash: r.Password}
}

var userColumns = []string{"id", "email", "password", "name"}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *sqlx.DB
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *sqlx.DB) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// Create inserts a new user and returns it with its assigned id.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query, args, err := psql.Insert(usersTable).
		Columns("email", "password", "name").
		Values(u.Email, u.PasswordHash, u.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return dom.User{}, err
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&u.ID); err != nil {
		return dom.User{}, translate(err)
	}
	return u, nil
}

func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

// GetByName returns the user by login name.
func (r *PGUserRepo) GetByName(ctx context.Context, name string) (dom.User, error) {
	return r.findOne(ctx, sq.Eq{"name": name})
}

func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *PGUserRepo) findOne(ctx context.Context, pred sq.Sqlizer) (dom.User, error) {
	query, args, err := psql.Select(userColumns...).From(usersTable).Where(pred).Limit(1).ToSql()
	if err != nil {
		return dom.User{}, err
	}
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return dom.User{}, translate(err)
	}
	return row.toDomain(), nil
}
