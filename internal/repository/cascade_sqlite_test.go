package repository

import (
	"context"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestDeletePost_CascadesComments(t *testing.T) {
	db := setupSQLiteDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	author := &models.User{Name: "Author", Email: "author@example.com", Password: "hashed"}
	require.NoError(t, users.Create(ctx, author))

	post := &models.Post{Title: "Cascade Study", Body: "words", UserID: author.ID}
	require.NoError(t, posts.Create(ctx, post))

	c1 := &models.Comment{Text: "one", UserID: author.ID, PostID: post.ID}
	c2 := &models.Comment{Text: "two", UserID: author.ID, PostID: post.ID}
	require.NoError(t, comments.Create(ctx, c1))
	require.NoError(t, comments.Create(ctx, c2))

	require.NoError(t, posts.Delete(ctx, post.ID))

	_, err := posts.GetByID(ctx, post.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	for _, id := range []uint{c1.ID, c2.ID} {
		_, err := comments.GetByID(ctx, id)
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	}
}

func TestCreateComment_OnDeletedPost(t *testing.T) {
	db := setupSQLiteDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	author := &models.User{Name: "Author", Email: "author@example.com", Password: "hashed"}
	require.NoError(t, users.Create(ctx, author))

	post := &models.Post{Title: "Short Lived", Body: "words", UserID: author.ID}
	require.NoError(t, posts.Create(ctx, post))
	require.NoError(t, posts.Delete(ctx, post.ID))

	err := comments.Create(ctx, &models.Comment{Text: "late", UserID: author.ID, PostID: post.ID})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeIntegrity, appErr.Code)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreatePost_TitleReusableAfterDelete(t *testing.T) {
	db := setupSQLiteDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := &models.User{Name: "Author", Email: "author@example.com", Password: "hashed"}
	require.NoError(t, users.Create(ctx, author))

	first := &models.Post{Title: "Recycled Title", Body: "one", UserID: author.ID}
	require.NoError(t, posts.Create(ctx, first))
	require.NoError(t, posts.Delete(ctx, first.ID))

	second := &models.Post{Title: "Recycled Title", Body: "two", UserID: author.ID}
	require.NoError(t, posts.Create(ctx, second))

	got, err := posts.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Recycled Title", got.Title)
}

func TestCreatePost_DuplicateTitle_SQLite(t *testing.T) {
	db := setupSQLiteDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := &models.User{Name: "Author", Email: "author@example.com", Password: "hashed"}
	require.NoError(t, users.Create(ctx, author))

	require.NoError(t, posts.Create(ctx, &models.Post{Title: "Same Title", Body: "one", UserID: author.ID}))

	err := posts.Create(ctx, &models.Post{Title: "Same Title", Body: "two", UserID: author.ID})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDuplicate, appErr.Code)
}
