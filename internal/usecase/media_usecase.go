package usecase

import (
	"context"
	"io"
	"strings"

	"vibely/internal/domain/service"
	"vibely/pkg/errors"
	"vibely/pkg/logger"
)

// Purposes accepted by the standalone upload endpoint. Each maps to a
// folder under the caller's prefix in the bucket.
var allowedUploadPurposes = map[string]bool{
	"avatar":  true,
	"posts":   true,
	"stories": true,
	"videos":  true,
	"chat":    true,
}

type MediaUseCase struct {
	uploader service.MediaUploadService
}

func NewMediaUseCase(uploader service.MediaUploadService) *MediaUseCase {
	return &MediaUseCase{uploader: uploader}
}

// Upload stores a blob under the caller's prefix and returns the public
// locator. Messages carry the locator, never the bytes.
func (uc *MediaUseCase) Upload(ctx context.Context, userID, purpose, contentType string, media io.Reader) (string, error) {
	if userID == "" {
		return "", errors.Unauthenticated("Sign in to upload media", nil)
	}
	if media == nil {
		return "", errors.Validation("Media is required", nil)
	}
	if !allowedUploadPurposes[purpose] {
		return "", errors.Validation("Invalid upload purpose", nil)
	}
	if !validUploadContentType(contentType) {
		return "", errors.Validation("Unsupported content type", nil)
	}

	url, err := uc.uploader.UploadMedia(ctx, media, contentType, "users/"+userID+"/"+purpose)
	if err != nil {
		logger.Error("Upload: media upload failed for user %s purpose %s: %v", userID, purpose, err)
		return "", errors.Unavailable("Media upload failed", err)
	}

	return url, nil
}

func (uc *MediaUseCase) Delete(ctx context.Context, userID, url string) error {
	if userID == "" {
		return errors.Unauthenticated("Sign in to delete media", nil)
	}
	if !strings.Contains(url, "/users/"+userID+"/") {
		return errors.Forbidden("You can only delete your own media", nil)
	}

	return uc.uploader.DeleteMedia(ctx, url)
}

func validUploadContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") ||
		strings.HasPrefix(contentType, "video/") ||
		strings.HasPrefix(contentType, "audio/")
}
