package sessions

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
	create        string
	find          string
	delete        string
	deleteExpired string
}

var postgresQueries = queries{
	create:        `INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
	find:          `SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = $1`,
	delete:        `DELETE FROM sessions WHERE token = $1`,
	deleteExpired: `DELETE FROM sessions WHERE expires_at < $1`,
}

var sqliteQueries = queries{
	create:        `INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
	find:          `SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = ?`,
	delete:        `DELETE FROM sessions WHERE token = ?`,
	deleteExpired: `DELETE FROM sessions WHERE expires_at < ?`,
}

type SQLRepository struct {
	db dbx.DBTX
	q  queries
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}

func (r *SQLRepository) Create(ctx context.Context, s *models.Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, r.q.create, s.Token, s.UserID, s.ExpiresAt.UTC(), s.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, r.q.find, token).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *SQLRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, r.q.delete, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	if _, err := r.db.ExecContext(ctx, r.q.deleteExpired, now.UTC()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
