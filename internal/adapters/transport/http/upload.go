package http

import (
	"github.com/clipstream/clipstream/internal/app/media"
	"github.com/gin-gonic/gin"
)

// formUpload opens a multipart file field as a media upload. The returned
// close func must be called once the upload has been consumed.
func formUpload(c *gin.Context, field string) (media.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		return media.Upload{}, nil, err
	}

	f, err := header.Open()
	if err != nil {
		return media.Upload{}, nil, err
	}

	return media.Upload{
		Body:        f,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, func() { _ = f.Close() }, nil
}
