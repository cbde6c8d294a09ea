package http

import (
	"context"
	"net/http"
	"time"

	"github.com/clipstream/clipstream/internal/adapters/transport/http/dto"
	"github.com/clipstream/clipstream/internal/adapters/transport/http/middleware"
	"github.com/clipstream/clipstream/internal/app/media"
	"github.com/clipstream/clipstream/internal/app/session"
	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/clipstream/clipstream/internal/infra/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const refreshTokenCookie = "refresh_token"

type AuthHandler struct {
	svc *session.Service
	cfg *config.Config
	log *zap.Logger
}

func NewAuthHandler(svc *session.Service, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg, log: log}
}

// userResponse is the wire shape of a user: the secret hash and the stored
// refresh token never leave the store boundary.
type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CoverURL  string    `json:"coverUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		CoverURL:  u.CoverURL,
		CreatedAt: u.CreatedAt,
	}
}

// issueTokens sets the pair as two httpOnly cookies and echoes it in the body
// for clients that cannot use cookies.
func (h *AuthHandler) issueTokens(c *gin.Context, pair model.TokenPair, user model.User) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AccessTokenCookie,
		pair.AccessToken,
		int(pair.AccessTTL.Seconds()),
		"/",
		h.cfg.CookieDomain,
		true, // secure
		true, // httpOnly
	)

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		refreshTokenCookie,
		pair.RefreshToken,
		int(pair.RefreshTTL.Seconds()),
		"/",
		h.cfg.CookieDomain,
		true,
		true,
	)

	respond(c, http.StatusOK, gin.H{
		"user":         toUserResponse(user),
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    int(pair.AccessTTL.Seconds()),
	}, "logged in successfully")
}

func (h *AuthHandler) clearTokens(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", h.cfg.CookieDomain, true, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", h.cfg.CookieDomain, true, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}

	h.log.Info("user registered", zap.String("user_id", user.ID.String()))
	respond(c, http.StatusCreated, toUserResponse(user), "user registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, user, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}

	h.log.Info("login", zap.String("user_id", user.ID.String()))
	h.issueTokens(c, pair, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized request"})
		return
	}

	if err := h.svc.Logout(c.Request.Context(), principal.UserID); err != nil {
		handleError(c, err)
		return
	}

	h.clearTokens(c)
	respond(c, http.StatusOK, nil, "logged out")
}

// Refresh reads the refresh token from its cookie, or from the body for
// non-cookie clients.
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw, _ := c.Cookie(refreshTokenCookie)
	if raw == "" {
		var body dto.RefreshDTO
		if err := c.ShouldBindJSON(&body); err == nil {
			raw = body.RefreshToken
		}
	}
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized request"})
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), raw)
	if err != nil {
		handleError(c, err)
		return
	}

	user, err := h.svc.CurrentUser(c.Request.Context(), pair.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	h.issueTokens(c, pair, user)
}

func (h *AuthHandler) Me(c *gin.Context) {
	principal, _ := middleware.Principal(c)
	respond(c, http.StatusOK, toUserResponse(principal.User), "current user fetched successfully")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var body dto.ChangePasswordDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), principal.UserID, body); err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "password changed successfully")
}

func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var body dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), principal.UserID, body)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, toUserResponse(user), "account updated successfully")
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.svc.UpdateAvatar)
}

func (h *AuthHandler) UpdateCover(c *gin.Context) {
	h.updateImage(c, "cover", h.svc.UpdateCover)
}

func (h *AuthHandler) updateImage(c *gin.Context, field string, update func(ctx context.Context, id uuid.UUID, up media.Upload) (model.User, error)) {
	principal, _ := middleware.Principal(c)

	up, closeFn, err := formUpload(c, field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": field + " file is required"})
		return
	}
	defer closeFn()

	user, err := update(c.Request.Context(), principal.UserID, up)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, toUserResponse(user), field+" updated successfully")
}
