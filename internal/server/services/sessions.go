package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

const sessionTokenSize = 32

// SessionService binds logged-in users to opaque server-side tokens.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validity    time.Duration
	now         func() time.Time
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, validity time.Duration) *SessionService {
	return &SessionService{db: db, repomanager: m, validity: validity, now: time.Now}
}

// Login starts a session for who and returns its token. prevToken, when
// set, is revoked in the same transaction so a token is never carried over
// across a login.
func (s *SessionService) Login(ctx context.Context, prevToken string, who models.Identifiable) (string, error) {
	token, err := common.MakeRandHexString(sessionTokenSize)
	if err != nil {
		return "", fmt.Errorf("error generating session token: %w", err)
	}

	now := s.now().UTC()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)

		if prevToken != "" {
			if err := repo.Delete(ctx, prevToken); err != nil {
				return fmt.Errorf("error deleting session: %w", err)
			}
		}

		if err := repo.DeleteExpired(ctx, now); err != nil {
			return fmt.Errorf("error purging sessions: %w", err)
		}

		return repo.Create(ctx, &models.Session{
			Token:     token,
			UserID:    who.SessionKey(),
			ExpiresAt: now.Add(s.validity),
			CreatedAt: now,
		})
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// Logout revokes token. Unknown tokens are ignored.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repomanager.Sessions(s.db).Delete(ctx, token)
}

// CurrentUser resolves token to its user. It returns nil, nil for anonymous
// requests: no token, an unknown or expired one, or a vanished account.
func (s *SessionService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.repomanager.Sessions(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error searching session: %w", err)
	}

	if session.ExpiresAt.Before(s.now()) {
		return nil, nil
	}

	user, err := s.repomanager.Users(s.db).Get(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	return user, nil
}
