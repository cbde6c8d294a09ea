package content

import (
	"context"
	"errors"

	"github.com/clipstream/clipstream/internal/adapters/transport/http/dto"
	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/clipstream/clipstream/internal/repo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PostService struct {
	postRepo repo.PostRepo
	userRepo repo.UserRepo
	v        *validator.Validate
}

func NewPostService(postRepo repo.PostRepo, userRepo repo.UserRepo, v *validator.Validate) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo, v: v}
}

func (s *PostService) CreatePost(ctx context.Context, actor uuid.UUID, d dto.CreatePostDTO) (model.Post, error) {
	if err := s.v.Struct(d); err != nil {
		return model.Post{}, customErrors.NewInvalidArgument(err.Error())
	}

	post := model.Post{
		ID:      uuid.New(),
		Content: d.Content,
		OwnerID: actor,
	}
	if _, err := s.postRepo.CreatePost(ctx, post); err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "CreatePost")
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, actor, postID uuid.UUID, d dto.UpdatePostDTO) (model.Post, error) {
	if err := s.v.Struct(d); err != nil {
		return model.Post{}, customErrors.NewInvalidArgument(err.Error())
	}

	post, err := s.postRepo.GetPostByID(ctx, postID)
	if errors.Is(err, customErrors.ErrNotFound) {
		return model.Post{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "UpdatePost")
	}

	if err := requireOwner(post.OwnerID, actor, "update", "post"); err != nil {
		return model.Post{}, err
	}

	post.Content = d.Content
	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "UpdatePost")
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, actor, postID uuid.UUID) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if errors.Is(err, customErrors.ErrNotFound) {
		return customErrors.ErrNotFound
	}
	if err != nil {
		return customErrors.WrapInternal(err, "DeletePost")
	}

	if err := requireOwner(post.OwnerID, actor, "delete", "post"); err != nil {
		return err
	}

	err = s.postRepo.DeletePost(ctx, postID)
	if errors.Is(err, customErrors.ErrNotFound) {
		return customErrors.ErrNotFound
	}
	if err != nil {
		return customErrors.WrapInternal(err, "DeletePost")
	}
	return nil
}

func (s *PostService) ListPostsByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	if _, err := s.userRepo.GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, customErrors.ErrNotFound) {
			return nil, customErrors.ErrNotFound
		}
		return nil, customErrors.WrapInternal(err, "ListPostsByOwner")
	}

	posts, err := s.postRepo.ListPostsByOwner(ctx, ownerID)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListPostsByOwner")
	}
	return posts, nil
}
