// Package sessions stores server-side login sessions keyed by an opaque token.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Session) error
	// Find returns common.ErrorNotFound for unknown tokens. Expired sessions
	// are returned as is; callers check ExpiresAt.
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}
