package media

import (
	"context"
	"io"
)

type Upload struct {
	Body        io.Reader
	ContentType string
	Size        int64
}

// Storage is the external media store. Upload returns a publicly reachable URL;
// Delete accepts that same URL back.
type Storage interface {
	Upload(ctx context.Context, folder string, up Upload) (string, error)
	Delete(ctx context.Context, url string) error
}
