package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/authz"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentService(comments *commentRepoStub, posts *postRepoStub, users *userRepoStub, requireOwnership bool) *CommentService {
	return NewCommentService(comments, posts, users, authz.NewPolicy(requireOwnership))
}

func TestCommentService_CreateComment(t *testing.T) {
	ctx := context.Background()
	users := ownerUserRepo(map[uint]*models.User{1: {ID: 1, Name: "Reader"}})

	t.Run("success", func(t *testing.T) {
		svc := newCommentService(noopCommentRepo(), noopPostRepo(), users, true)
		comment, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 10, Text: "well said"})
		require.NoError(t, err)
		require.NotNil(t, comment)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		svc := newCommentService(noopCommentRepo(), noopPostRepo(), users, true)
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 0, PostID: 10, Text: "hi"})
		assertCode(t, err, models.CodeAuthRequired)
	})

	t.Run("empty text", func(t *testing.T) {
		svc := newCommentService(noopCommentRepo(), noopPostRepo(), users, true)
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 10, Text: "  "})
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("text too long", func(t *testing.T) {
		svc := newCommentService(noopCommentRepo(), noopPostRepo(), users, true)
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: 1,
			PostID: 10,
			Text:   strings.Repeat("x", maxCommentLen+1),
		})
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("unknown post surfaces the integrity error", func(t *testing.T) {
		comments := noopCommentRepo()
		comments.createFn = func(_ context.Context, _ *models.Comment) error {
			return models.NewIntegrityError("parent post does not exist")
		}
		svc := newCommentService(comments, noopPostRepo(), users, true)
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 99, Text: "lost"})
		assertCode(t, err, models.CodeIntegrity)
	})
}

func TestCommentService_ListComments(t *testing.T) {
	ctx := context.Background()
	users := ownerUserRepo(map[uint]*models.User{1: {ID: 1}})

	t.Run("returns comments for an existing post", func(t *testing.T) {
		comments := noopCommentRepo()
		comments.listByPostFn = func(_ context.Context, postID uint) ([]*models.Comment, error) {
			return []*models.Comment{{ID: 100, PostID: postID, Text: "first"}}, nil
		}
		svc := newCommentService(comments, noopPostRepo(), users, true)
		got, err := svc.ListComments(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "first", got[0].Text)
	})

	t.Run("unknown post", func(t *testing.T) {
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := newCommentService(noopCommentRepo(), posts, users, true)
		_, err := svc.ListComments(ctx, 99)
		assertCode(t, err, models.CodeNotFound)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	ctx := context.Background()
	users := ownerUserRepo(map[uint]*models.User{
		1: {ID: 1, Name: "Owner"},
		2: {ID: 2, Name: "Intruder"},
		3: {ID: 3, Name: "Admin", IsAdmin: true},
	})

	t.Run("owner deletes own comment", func(t *testing.T) {
		svc := newCommentService(noopCommentRepo(), noopPostRepo(), users, true)
		err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 1, CommentID: 100, PostID: 10})
		assert.NoError(t, err)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		svc := newCommentService(noopCommentRepo(), noopPostRepo(), users, true)
		err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 2, CommentID: 100, PostID: 10})
		assertCode(t, err, models.CodeForbidden)
	})

	t.Run("admin may delete", func(t *testing.T) {
		svc := newCommentService(noopCommentRepo(), noopPostRepo(), users, true)
		err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 3, CommentID: 100, PostID: 10})
		assert.NoError(t, err)
	})

	t.Run("legacy mode skips the ownership check", func(t *testing.T) {
		svc := newCommentService(noopCommentRepo(), noopPostRepo(), users, false)
		err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 2, CommentID: 100, PostID: 10})
		assert.NoError(t, err)
	})

	t.Run("comment under a different post reads as missing", func(t *testing.T) {
		svc := newCommentService(noopCommentRepo(), noopPostRepo(), users, true)
		err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 1, CommentID: 100, PostID: 55})
		assertCode(t, err, models.CodeNotFound)
	})
}
