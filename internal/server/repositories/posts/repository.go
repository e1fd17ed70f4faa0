// Package posts is the post store. Every post belongs to the user that
// created it through author_id.
package posts

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type Repository interface {
	// List returns all posts in creation order.
	List(ctx context.Context) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	// Create inserts post and fills in its ID. A duplicate title yields
	// common.ErrorTitleTaken.
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	// Update applies the non-nil fields of u. Author and date never change.
	Update(ctx context.Context, id int64, u models.PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}
