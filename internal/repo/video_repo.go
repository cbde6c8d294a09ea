package repo

import (
	"context"

	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/google/uuid"
)

// VideoFilter narrows and orders a video listing. Zero values mean "no filter";
// page numbering starts at 1.
type VideoFilter struct {
	OwnerID  uuid.UUID
	Query    string
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

type VideoRepo interface {
	CreateVideo(ctx context.Context, v model.Video) (uuid.UUID, error)

	GetVideoByID(ctx context.Context, id uuid.UUID) (model.Video, error)

	UpdateVideo(ctx context.Context, v model.Video) error

	DeleteVideo(ctx context.Context, id uuid.UUID) error

	ListVideos(ctx context.Context, f VideoFilter) ([]model.Video, error)
}
