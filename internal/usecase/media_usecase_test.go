package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibely/pkg/errors"
)

func TestMediaUploadKeyedByUserAndPurpose(t *testing.T) {
	uploader := &fakeUploader{}
	mediaUC := NewMediaUseCase(uploader)

	url, err := mediaUC.Upload(context.Background(), "alice", "chat", "audio/mp4", strings.NewReader("voice bytes"))
	require.NoError(t, err)

	assert.Contains(t, url, "users/alice/chat")
}

func TestMediaUploadValidation(t *testing.T) {
	mediaUC := NewMediaUseCase(&fakeUploader{})

	_, err := mediaUC.Upload(context.Background(), "", "chat", "audio/mp4", strings.NewReader("x"))
	assert.True(t, errors.Is(err, "UNAUTHENTICATED"))

	_, err = mediaUC.Upload(context.Background(), "alice", "secrets", "audio/mp4", strings.NewReader("x"))
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "unknown purposes must be rejected")

	_, err = mediaUC.Upload(context.Background(), "alice", "chat", "application/x-msdownload", strings.NewReader("x"))
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "non-media content types must be rejected")

	_, err = mediaUC.Upload(context.Background(), "alice", "chat", "audio/mp4", nil)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestMediaUploadSurfacesStorageFailure(t *testing.T) {
	mediaUC := NewMediaUseCase(&fakeUploader{failUpload: true})

	_, err := mediaUC.Upload(context.Background(), "alice", "chat", "audio/mp4", strings.NewReader("x"))
	assert.True(t, errors.Is(err, "UNAVAILABLE"))
}

func TestMediaDeleteOwnPrefixOnly(t *testing.T) {
	uploader := &fakeUploader{}
	mediaUC := NewMediaUseCase(uploader)

	err := mediaUC.Delete(context.Background(), "alice", "https://storage.googleapis.com/bucket/users/bob/chat/blob")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, mediaUC.Delete(context.Background(), "alice", "https://storage.googleapis.com/bucket/users/alice/chat/blob"))
	assert.Len(t, uploader.deletedURLs, 1)
}
