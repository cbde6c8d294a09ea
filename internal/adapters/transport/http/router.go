package http

import (
	"net/http"
	"time"

	"github.com/clipstream/clipstream/internal/adapters/transport/http/middleware"
	"github.com/clipstream/clipstream/internal/app/session"
	"github.com/clipstream/clipstream/internal/infra/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires every route. Everything behind requireAuth carries a
// Principal; ownership checks happen one layer down in the services.
func NewRouter(cfg *config.Config, log *zap.Logger, sessionSvc *session.Service, auth *AuthHandler, posts *PostHandler, videos *VideoHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept",
				"Authorization",
				"X-Requested-With",
			},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	requireAuth := middleware.RequireAuth(sessionSvc)

	v1 := router.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("/register", auth.Register)
	users.POST("/login", auth.Login)
	users.POST("/refresh-token", auth.Refresh)
	users.POST("/logout", requireAuth, auth.Logout)
	users.GET("/me", requireAuth, auth.Me)
	users.POST("/change-password", requireAuth, auth.ChangePassword)
	users.PATCH("/update-account", requireAuth, auth.UpdateAccount)
	users.PATCH("/avatar", requireAuth, auth.UpdateAvatar)
	users.PATCH("/cover", requireAuth, auth.UpdateCover)

	postGroup := v1.Group("/posts", requireAuth)
	postGroup.POST("", posts.Create)
	postGroup.PATCH("/:postId", posts.Update)
	postGroup.DELETE("/:postId", posts.Delete)
	postGroup.GET("/user/:userId", posts.ListByUser)

	videoGroup := v1.Group("/videos", requireAuth)
	videoGroup.GET("", videos.List)
	videoGroup.POST("", videos.Publish)
	videoGroup.GET("/:videoId", videos.Get)
	videoGroup.PATCH("/:videoId", videos.Update)
	videoGroup.DELETE("/:videoId", videos.Delete)
	videoGroup.PATCH("/:videoId/toggle-publish", videos.TogglePublish)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	return router
}
