package repo

import (
	"context"

	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/google/uuid"
)

type PostRepo interface {
	CreatePost(ctx context.Context, p model.Post) (uuid.UUID, error)

	GetPostByID(ctx context.Context, id uuid.UUID) (model.Post, error)

	UpdatePost(ctx context.Context, p model.Post) error

	DeletePost(ctx context.Context, id uuid.UUID) error

	ListPostsByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error)
}
