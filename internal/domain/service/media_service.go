package service

import (
	"context"
	"io"
)

// MediaUploadService produces a durable, fetchable locator for a media blob.
// Callers must obtain the locator before persisting any record that
// references it; a failed upload aborts the record write.
type MediaUploadService interface {
	UploadMedia(ctx context.Context, media io.Reader, contentType, folder string) (string, error)
	DeleteMedia(ctx context.Context, mediaURL string) error
	Close() error
}
