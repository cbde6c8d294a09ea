package postgres

import (
	"context"
	"errors"

	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/clipstream/clipstream/internal/repo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresVideoRepo struct {
	db *gorm.DB
}

func NewPostgresVideoRepo(db *gorm.DB) *PostgresVideoRepo {
	return &PostgresVideoRepo{db: db}
}

func (p *PostgresVideoRepo) CreateVideo(ctx context.Context, video model.Video) (uuid.UUID, error) {
	res := p.db.WithContext(ctx).Create(&video)
	if err := res.Error; err != nil {
		return uuid.Nil, customErrors.WrapInternal(err, "CreateVideo")
	}
	return video.ID, nil
}

func (p *PostgresVideoRepo) GetVideoByID(ctx context.Context, id uuid.UUID) (model.Video, error) {
	var video model.Video
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&video)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Video{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Video{}, customErrors.WrapInternal(err, "GetVideoByID")
	}

	return video, nil
}

func (p *PostgresVideoRepo) UpdateVideo(ctx context.Context, video model.Video) error {
	res := p.db.WithContext(ctx).Save(&video)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdateVideo")
	}

	return nil
}

func (p *PostgresVideoRepo) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Delete(&model.Video{}, "id = ?", id)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteVideo")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}

	return nil
}

// allowed sort columns; anything else falls back to created_at
var videoSortColumns = map[string]bool{
	"created_at": true,
	"title":      true,
	"duration":   true,
	"views":      true,
}

func (p *PostgresVideoRepo) ListVideos(ctx context.Context, f repo.VideoFilter) ([]model.Video, error) {
	q := p.db.WithContext(ctx).Model(&model.Video{})

	if f.Query != "" {
		q = q.Where("title ILIKE ?", "%"+f.Query+"%")
	}
	if f.OwnerID != uuid.Nil {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	sortBy := f.SortBy
	if !videoSortColumns[sortBy] {
		sortBy = "created_at"
	}
	order := sortBy
	if f.SortDesc || f.SortBy == "" {
		order += " DESC"
	}

	var videos []model.Video
	res := q.Order(order).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&videos)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListVideos")
	}

	return videos, nil
}
