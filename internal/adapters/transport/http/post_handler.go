package http

import (
	"net/http"

	"github.com/clipstream/clipstream/internal/adapters/transport/http/dto"
	"github.com/clipstream/clipstream/internal/adapters/transport/http/middleware"
	"github.com/clipstream/clipstream/internal/app/content"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	svc *content.PostService
}

func NewPostHandler(svc *content.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

func (h *PostHandler) Create(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var body dto.CreatePostDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), principal.UserID, body)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, post, "post created successfully")
}

func (h *PostHandler) Update(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad post id"})
		return
	}

	var body dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.svc.UpdatePost(c.Request.Context(), principal.UserID, postID, body)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, post, "post updated successfully")
}

func (h *PostHandler) Delete(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad post id"})
		return
	}

	if err := h.svc.DeletePost(c.Request.Context(), principal.UserID, postID); err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "post deleted successfully")
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad user id"})
		return
	}

	posts, err := h.svc.ListPostsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, posts, "posts fetched successfully")
}
