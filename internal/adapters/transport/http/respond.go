package http

import (
	"net/http"

	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
	"github.com/gin-gonic/gin"
)

// apiResponse is the uniform success envelope.
type apiResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, apiResponse{Data: data, Message: message})
}

// handleError maps an error kind to a status code. Internal detail never
// reaches the client; auth failures share one message regardless of cause.
func handleError(c *gin.Context, err error) {
	switch {
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case customErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case customErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case customErrors.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case customErrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case customErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
