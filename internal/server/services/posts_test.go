package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin  = &models.User{ID: AdminUserID, Name: "admin"}
	reader = &models.User{ID: 2, Name: "reader"}
)

func newPostFixture(t *testing.T) (*PostService, *fakeRepoManager) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	s := NewPostService(db, rm)
	s.now = func() time.Time { return time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC) }
	return s, rm
}

func TestPostCreate_StampsAuthorAndDate(t *testing.T) {
	s, _ := newPostFixture(t)

	p, err := s.Create(context.Background(), admin, &models.Post{AuthorID: 77, Title: "Hello", Date: "bogus"})
	require.NoError(t, err)

	assert.Equal(t, AdminUserID, p.AuthorID)
	assert.Equal(t, "May 01, 2024", p.Date)
}

func TestPostMutations_RequireAdmin(t *testing.T) {
	s, rm := newPostFixture(t)
	ctx := context.Background()

	p, err := s.Create(ctx, admin, &models.Post{Title: "Hello"})
	require.NoError(t, err)

	for _, tt := range []struct {
		actor *models.User
		want  error
	}{
		{nil, common.ErrorUnauthorized},
		{reader, common.ErrorForbidden},
	} {
		_, err = s.Create(ctx, tt.actor, &models.Post{Title: "Other"})
		assert.ErrorIs(t, err, tt.want)

		title := "Hijacked"
		_, err = s.Update(ctx, tt.actor, p.ID, models.PostUpdate{Title: &title})
		assert.ErrorIs(t, err, tt.want)

		assert.ErrorIs(t, s.Delete(ctx, tt.actor, p.ID), tt.want)
	}

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Len(t, rm.p.byID, 1)
}

func TestPostUpdate_KeepsDateAndAuthor(t *testing.T) {
	s, _ := newPostFixture(t)
	ctx := context.Background()

	p, err := s.Create(ctx, admin, &models.Post{Title: "Hello", Body: "old"})
	require.NoError(t, err)

	s.now = func() time.Time { return time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC) }
	body := "new"
	got, err := s.Update(ctx, admin, p.ID, models.PostUpdate{Body: &body})
	require.NoError(t, err)

	assert.Equal(t, "new", got.Body)
	assert.Equal(t, "May 01, 2024", got.Date)
	assert.Equal(t, AdminUserID, got.AuthorID)
}

func TestPostDelete_Missing(t *testing.T) {
	s, _ := newPostFixture(t)
	ctx := context.Background()

	p, err := s.Create(ctx, admin, &models.Post{Title: "Hello"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, admin, p.ID))
	assert.ErrorIs(t, s.Delete(ctx, admin, p.ID), common.ErrorNotFound)
	_, err = s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostList_CreationOrderAndByAuthor(t *testing.T) {
	s, _ := newPostFixture(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := s.Create(ctx, admin, &models.Post{Title: title})
		require.NoError(t, err)
	}

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "one", items[0].Title)
	assert.Equal(t, "three", items[2].Title)

	mine, err := s.ListByAuthor(ctx, AdminUserID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	theirs, err := s.ListByAuthor(ctx, reader.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestPostCreate_DuplicateTitle(t *testing.T) {
	s, _ := newPostFixture(t)
	ctx := context.Background()

	_, err := s.Create(ctx, admin, &models.Post{Title: "Hello"})
	require.NoError(t, err)
	_, err = s.Create(ctx, admin, &models.Post{Title: "Hello"})
	assert.ErrorIs(t, err, common.ErrorTitleTaken)
}
