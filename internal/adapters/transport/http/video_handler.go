package http

import (
	"net/http"

	"github.com/clipstream/clipstream/internal/adapters/transport/http/dto"
	"github.com/clipstream/clipstream/internal/adapters/transport/http/middleware"
	"github.com/clipstream/clipstream/internal/app/content"
	"github.com/clipstream/clipstream/internal/app/media"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VideoHandler struct {
	svc *content.VideoService
}

func NewVideoHandler(svc *content.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

func (h *VideoHandler) List(c *gin.Context) {
	var q dto.ListVideosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	videos, err := h.svc.ListVideos(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, videos, "videos fetched successfully")
}

func (h *VideoHandler) Publish(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var body dto.PublishVideoDTO
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	videoFile, closeVideo, err := formUpload(c, "videoFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video file is required"})
		return
	}
	defer closeVideo()

	thumbnail, closeThumb, err := formUpload(c, "thumbnail")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thumbnail file is required"})
		return
	}
	defer closeThumb()

	video, err := h.svc.PublishVideo(c.Request.Context(), principal.UserID, body, videoFile, thumbnail)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, video, "video uploaded successfully")
}

func (h *VideoHandler) Get(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad video id"})
		return
	}

	video, err := h.svc.GetVideo(c.Request.Context(), videoID)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "video fetched successfully")
}

func (h *VideoHandler) Update(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad video id"})
		return
	}

	var body dto.UpdateVideoDTO
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// thumbnail is optional on update
	var thumbnail *media.Upload
	if up, closeFn, err := formUpload(c, "thumbnail"); err == nil {
		defer closeFn()
		thumbnail = &up
	}

	video, err := h.svc.UpdateVideo(c.Request.Context(), principal.UserID, videoID, body, thumbnail)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "video details updated successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad video id"})
		return
	}

	if err := h.svc.DeleteVideo(c.Request.Context(), principal.UserID, videoID); err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "video deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad video id"})
		return
	}

	video, err := h.svc.TogglePublish(c.Request.Context(), principal.UserID, videoID)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "video status changed successfully")
}
