package content

import (
	"context"
	"errors"

	"github.com/clipstream/clipstream/internal/adapters/transport/http/dto"
	"github.com/clipstream/clipstream/internal/app/media"
	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/clipstream/clipstream/internal/repo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type VideoService struct {
	videoRepo repo.VideoRepo
	storage   media.Storage
	v         *validator.Validate
}

func NewVideoService(videoRepo repo.VideoRepo, storage media.Storage, v *validator.Validate) *VideoService {
	return &VideoService{videoRepo: videoRepo, storage: storage, v: v}
}

// PublishVideo uploads both files and only then writes the record. When a
// later step fails, objects uploaded by the earlier steps are removed so the
// bucket does not accumulate orphans.
func (s *VideoService) PublishVideo(ctx context.Context, actor uuid.UUID, d dto.PublishVideoDTO, videoFile, thumbnail media.Upload) (model.Video, error) {
	if err := s.v.Struct(d); err != nil {
		return model.Video{}, customErrors.NewInvalidArgument(err.Error())
	}

	videoURL, err := s.storage.Upload(ctx, "videos", videoFile)
	if err != nil {
		return model.Video{}, customErrors.WrapInternal(err, "upload video file")
	}

	thumbnailURL, err := s.storage.Upload(ctx, "thumbnails", thumbnail)
	if err != nil {
		_ = s.storage.Delete(ctx, videoURL)
		return model.Video{}, customErrors.WrapInternal(err, "upload thumbnail")
	}

	video := model.Video{
		ID:           uuid.New(),
		Title:        d.Title,
		Description:  d.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		IsPublished:  true,
		OwnerID:      actor,
	}
	if _, err := s.videoRepo.CreateVideo(ctx, video); err != nil {
		_ = s.storage.Delete(ctx, videoURL)
		_ = s.storage.Delete(ctx, thumbnailURL)
		return model.Video{}, customErrors.WrapInternal(err, "PublishVideo")
	}
	return video, nil
}

func (s *VideoService) GetVideo(ctx context.Context, videoID uuid.UUID) (model.Video, error) {
	video, err := s.videoRepo.GetVideoByID(ctx, videoID)
	if errors.Is(err, customErrors.ErrNotFound) {
		return model.Video{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.Video{}, customErrors.WrapInternal(err, "GetVideo")
	}
	return video, nil
}

func (s *VideoService) ListVideos(ctx context.Context, q dto.ListVideosQuery) ([]model.Video, error) {
	filter := repo.VideoFilter{
		Query:    q.Query,
		SortBy:   q.SortBy,
		SortDesc: q.SortType == "desc",
		Page:     q.Page,
		Limit:    q.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}
	if q.UserID != "" {
		ownerID, err := uuid.Parse(q.UserID)
		if err != nil {
			return nil, customErrors.NewInvalidArgument("bad userId")
		}
		filter.OwnerID = ownerID
	}

	videos, err := s.videoRepo.ListVideos(ctx, filter)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListVideos")
	}
	if len(videos) == 0 {
		return nil, customErrors.ErrNotFound
	}
	return videos, nil
}

// UpdateVideo changes title/description and, when a new thumbnail is supplied,
// replaces the stored object with it.
func (s *VideoService) UpdateVideo(ctx context.Context, actor, videoID uuid.UUID, d dto.UpdateVideoDTO, thumbnail *media.Upload) (model.Video, error) {
	if err := s.v.Struct(d); err != nil {
		return model.Video{}, customErrors.NewInvalidArgument(err.Error())
	}

	video, err := s.videoRepo.GetVideoByID(ctx, videoID)
	if errors.Is(err, customErrors.ErrNotFound) {
		return model.Video{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.Video{}, customErrors.WrapInternal(err, "UpdateVideo")
	}

	if err := requireOwner(video.OwnerID, actor, "update", "video"); err != nil {
		return model.Video{}, err
	}

	oldThumbnail := ""
	if thumbnail != nil {
		url, err := s.storage.Upload(ctx, "thumbnails", *thumbnail)
		if err != nil {
			return model.Video{}, customErrors.WrapInternal(err, "upload thumbnail")
		}
		oldThumbnail = video.ThumbnailURL
		video.ThumbnailURL = url
	}

	video.Title = d.Title
	video.Description = d.Description
	if err := s.videoRepo.UpdateVideo(ctx, video); err != nil {
		if video.ThumbnailURL != oldThumbnail && oldThumbnail != "" {
			_ = s.storage.Delete(ctx, video.ThumbnailURL)
		}
		return model.Video{}, customErrors.WrapInternal(err, "UpdateVideo")
	}

	if oldThumbnail != "" {
		_ = s.storage.Delete(ctx, oldThumbnail)
	}
	return video, nil
}

func (s *VideoService) DeleteVideo(ctx context.Context, actor, videoID uuid.UUID) error {
	video, err := s.videoRepo.GetVideoByID(ctx, videoID)
	if errors.Is(err, customErrors.ErrNotFound) {
		return customErrors.ErrNotFound
	}
	if err != nil {
		return customErrors.WrapInternal(err, "DeleteVideo")
	}

	if err := requireOwner(video.OwnerID, actor, "delete", "video"); err != nil {
		return err
	}

	err = s.videoRepo.DeleteVideo(ctx, videoID)
	if errors.Is(err, customErrors.ErrNotFound) {
		return customErrors.ErrNotFound
	}
	if err != nil {
		return customErrors.WrapInternal(err, "DeleteVideo")
	}

	// record is gone; object removal is best effort
	_ = s.storage.Delete(ctx, video.VideoURL)
	_ = s.storage.Delete(ctx, video.ThumbnailURL)
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, actor, videoID uuid.UUID) (model.Video, error) {
	video, err := s.videoRepo.GetVideoByID(ctx, videoID)
	if errors.Is(err, customErrors.ErrNotFound) {
		return model.Video{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.Video{}, customErrors.WrapInternal(err, "TogglePublish")
	}

	if err := requireOwner(video.OwnerID, actor, "update", "video"); err != nil {
		return model.Video{}, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.UpdateVideo(ctx, video); err != nil {
		return model.Video{}, customErrors.WrapInternal(err, "TogglePublish")
	}
	return video, nil
}
