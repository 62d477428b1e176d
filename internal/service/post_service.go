package service

import (
	"context"
	"strings"

	"inkwell/internal/authz"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	policy   authz.Policy
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    *string
	Subtitle *string
	Body     *string
	ImageURL *string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, policy authz.Policy) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		policy:   policy,
	}
}

// actor loads the acting user, or nil for anonymous requests.
func (s *PostService) actor(ctx context.Context, userID uint) (*models.User, error) {
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

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	actor, err := s.actor(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Can(authz.ActionCreatePost, actor, nil); err != nil {
		return nil, err
	}

	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateBody(in.Body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Title:    strings.TrimSpace(in.Title),
		Subtitle: strings.TrimSpace(in.Subtitle),
		Body:     in.Body,
		ImageURL: in.ImageURL,
		UserID:   actor.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int, sort string) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset, sort)
}

func (s *PostService) ListPostsByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	actor, err := s.actor(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Can(authz.ActionEditPost, actor, post); err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validation.ValidateTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = strings.TrimSpace(*in.Title)
	}
	if in.Subtitle != nil {
		post.Subtitle = strings.TrimSpace(*in.Subtitle)
	}
	if in.Body != nil {
		if err := validation.ValidateBody(*in.Body); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Body = *in.Body
	}
	if in.ImageURL != nil {
		post.ImageURL = *in.ImageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	actor, err := s.actor(ctx, in.UserID)
	if err != nil {
		return err
	}
	if err := s.policy.Can(authz.ActionDeletePost, actor, post); err != nil {
		return err
	}

	return s.postRepo.Delete(ctx, in.PostID)
}
