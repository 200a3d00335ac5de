package repo

import (
	"context"

	dom "todolist/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type ItemRepo interface {
	Create(ctx context.Context, it dom.Item) (dom.Item, error)
	GetByID(ctx context.Context, id int64) (dom.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]dom.Item, error)
	Delete(ctx context.Context, id int64) error
}

type itemRow struct {
	ID          int64  `db:"id"`
	OwnerID     int64  `db:"owner_id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Due         string `db:"due"`
}

func (r itemRow) toDomain() dom.Item {
	return dom.Item{ID: r.ID, OwnerID: r.OwnerID, Title: r.Title, Description: r.Description, Due: r.Due}
}

var itemColumns = []string{"id", "owner_id", "title", "description", "due"}

type PGItemRepo struct {
	db *sqlx.DB
}

func NewPGItemRepo(db *sqlx.DB) *PGItemRepo {
	return &PGItemRepo{db: db}
}

func (r *PGItemRepo) Create(ctx context.Context, it dom.Item) (dom.Item, error) {
	query, args, err := psql.Insert(itemsTable).
		Columns("owner_id", "title", "description", "due").
		Values(it.OwnerID, it.Title, it.Description, it.Due).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return dom.Item{}, err
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&it.ID); err != nil {
		return dom.Item{}, translate(err)
	}
	return it, nil
}

func (r *PGItemRepo) GetByID(ctx context.Context, id int64) (dom.Item, error) {
	query, args, err := psql.Select(itemColumns...).From(itemsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return dom.Item{}, err
	}
	var row itemRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return dom.Item{}, translate(err)
	}
	return row.toDomain(), nil
}

// ListByOwner returns the owner's items in creation order.
func (r *PGItemRepo) ListByOwner(ctx context.Context, ownerID int64) ([]dom.Item, error) {
	query, args, err := psql.Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, translate(err)
	}
	list := make([]dom.Item, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toDomain())
	}
	return list, nil
}

// Delete removes the item. ErrNotFound if no row matched.
func (r *PGItemRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(itemsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
