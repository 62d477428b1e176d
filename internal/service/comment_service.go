package service

import (
	"context"
	"strings"

	"inkwell/internal/authz"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	policy      authz.Policy
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
	PostID    uint
}

const maxCommentLen = 10000

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	policy authz.Policy,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		policy:      policy,
	}
}

func (s *CommentService) actor(ctx context.Context, userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// CreateComment leaves the parent-post check to the repository
// transaction, so a post deleted mid-request yields an integrity error
// rather than an orphan row.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	actor, err := s.actor(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Can(authz.ActionCreateComment, actor, nil); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Text:   text,
		UserID: actor.ID,
		PostID: in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if in.PostID != 0 && comment.PostID != in.PostID {
		return models.NewNotFoundError("Comment", in.CommentID)
	}

	actor, err := s.actor(ctx, in.UserID)
	if err != nil {
		return err
	}
	if err := s.policy.Can(authz.ActionDeleteComment, actor, comment); err != nil {
		return err
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}
