package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

// PostService reads posts for everyone and changes them for the admin.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m, now: time.Now}
}

func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).List(ctx)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).ListByAuthor(ctx, authorID)
}

func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	return s.repomanager.Posts(s.db).Get(ctx, id)
}

// Create publishes post on behalf of actor, who becomes its author. The date
// is stamped here and never changes afterwards.
func (s *PostService) Create(ctx context.Context, actor *models.User, post *models.Post) (*models.Post, error) {
	if err := Authorize(actor); err != nil {
		return nil, err
	}

	post.AuthorID = actor.ID
	post.Date = s.now().Format(common.DateLayout)

	return s.repomanager.Posts(s.db).Create(ctx, post)
}

func (s *PostService) Update(ctx context.Context, actor *models.User, id int64, u models.PostUpdate) (*models.Post, error) {
	if err := Authorize(actor); err != nil {
		return nil, err
	}
	return s.repomanager.Posts(s.db).Update(ctx, id, u)
}

func (s *PostService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if err := Authorize(actor); err != nil {
		return err
	}
	return s.repomanager.Posts(s.db).Delete(ctx, id)
}
