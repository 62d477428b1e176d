package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	List(ctx context.Context, limit, offset int, sort string) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post inside a transaction after verifying the author
// still exists, so a concurrently deleted user cannot gain an orphan post.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	ctx, cancel := withStorageTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var authorCount int64
		if err := tx.Model(&models.User{}).Where("id = ?", post.UserID).Count(&authorCount).Error; err != nil {
			return mapStorageError(err)
		}
		if authorCount == 0 {
			return models.NewIntegrityError("post author does not exist")
		}

		if err := tx.Create(post).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewDuplicateError("Post", "title")
			}
			return mapStorageError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	ctx, cancel := withStorageTimeout(ctx)
	defer cancel()

	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.applyPostDetails(r.db.WithContext(ctx)).
			Preload("User").
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return mapStorageError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	ctx, cancel := withStorageTimeout(ctx)
	defer cancel()

	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("user_id = ?", userID).
		Order("posts.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, mapStorageError(err)
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, sort string) ([]*models.Post, error) {
	ctx, cancel := withStorageTimeout(ctx)
	defer cancel()

	var posts []*models.Post
	err := r.applySort(r.applyPostDetails(r.db.WithContext(ctx)).Preload("User"), sort).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, mapStorageError(err)
	}
	return posts, nil
}

// applySort appends the ORDER BY clause for the requested sort type.
func (r *postRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "newest":
		return db.Order("posts.created_at DESC, posts.id DESC")
	default: // creation order
		return db.Order("posts.id ASC")
	}
}

// applyPostDetails adds a subquery to fetch the comment count in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	ctx, cancel := withStorageTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Post", "title")
		}
		return mapStorageError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes the post and all of its comments in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := withStorageTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return mapStorageError(err)
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return mapStorageError(err)
		}
		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			return mapStorageError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidatePost(ctx, id)
	return nil
}
