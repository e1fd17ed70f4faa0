package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type queries struct {
	create     string
	get        string
	getByEmail string
	getByName  string
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

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, r.q.create,
		user.Email, user.Name, user.PasswordHash, user.CreatedAt).Scan(&user.ID)

	if err != nil {
		if cerr := r.conflict(err); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, r.q.get, id)
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, r.q.getByEmail, email)
}

func (r *SQLRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	return r.getOne(ctx, r.q.getByName, name)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func postgresConflict(err error) error {
	name, ok := dbx.PgUniqueConstraint(err)
	if !ok {
		return nil
	}
	switch name {
	case "users_email_key":
		return common.ErrorEmailTaken
	case "users_name_key":
		return common.ErrorNameTaken
	}
	return common.ErrorAlreadyExists
}

func sqliteConflict(err error) error {
	col, ok := dbx.SQLiteUniqueColumn(err)
	if !ok {
		return nil
	}
	switch col {
	case "users.email":
		return common.ErrorEmailTaken
	case "users.name":
		return common.ErrorNameTaken
	}
	return common.ErrorAlreadyExists
}
