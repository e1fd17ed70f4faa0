package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type queries struct {
	list         string
	listByAuthor string
	get          string
	create       string
	update       string
	delete       string
}

// SQLRepository implements Repository over a dbx.DBTX for one SQL dialect.
type SQLRepository struct {
	db       dbx.DBTX
	q        queries
	conflict func(error) error
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries, conflict: postgresConflict}
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries, conflict: sqliteConflict}
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Post, error) {
	return r.query(ctx, r.q.list)
}

func (r *SQLRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	return r.query(ctx, r.q.listByAuthor, authorID)
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*models.Post
	for rows.Next() {
		p := &models.Post{}
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Post, error) {
	p := &models.Post{}
	err := r.db.QueryRowContext(ctx, r.q.get, id).
		Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *SQLRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	err := r.db.QueryRowContext(ctx, r.q.create,
		post.AuthorID, post.Title, post.Subtitle, post.Date, post.Body, post.ImgURL).Scan(&post.ID)

	if err != nil {
		if cerr := r.conflict(err); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

func (r *SQLRepository) Update(ctx context.Context, id int64, u models.PostUpdate) (*models.Post, error) {
	res, err := r.db.ExecContext(ctx, r.q.update, id,
		dbx.NullString(u.Title), dbx.NullString(u.Subtitle), dbx.NullString(u.Body), dbx.NullString(u.ImgURL))

	if err != nil {
		if cerr := r.conflict(err); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return r.Get(ctx, id)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.q.delete, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func postgresConflict(err error) error {
	name, ok := dbx.PgUniqueConstraint(err)
	if !ok {
		return nil
	}
	if name == "blog_posts_title_key" {
		return common.ErrorTitleTaken
	}
	return common.ErrorAlreadyExists
}

func sqliteConflict(err error) error {
	col, ok := dbx.SQLiteUniqueColumn(err)
	if !ok {
		return nil
	}
	if col == "blog_posts.title" {
		return common.ErrorTitleTaken
	}
	return common.ErrorAlreadyExists
}
