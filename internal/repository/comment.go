package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create verifies the parent post and the author inside the insert
// transaction so a comment can never land on a post deleted concurrently.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := withStorageTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postCount int64
		if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&postCount).Error; err != nil {
			return mapStorageError(err)
		}
		if postCount == 0 {
			return models.NewIntegrityError("parent post does not exist")
		}

		var authorCount int64
		if err := tx.Model(&models.User{}).Where("id = ?", comment.UserID).Count(&authorCount).Error; err != nil {
			return mapStorageError(err)
		}
		if authorCount == 0 {
			return models.NewIntegrityError("comment author does not exist")
		}

		if err := tx.Create(comment).Error; err != nil {
			return mapStorageError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	ctx, cancel := withStorageTimeout(ctx)
	defer cancel()

	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, mapStorageError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	ctx, cancel := withStorageTimeout(ctx)
	defer cancel()

	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, mapStorageError(err)
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := withStorageTimeout(ctx)
	defer cancel()

	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", id)
		}
		return mapStorageError(err)
	}

	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return mapStorageError(err)
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}
