package usecase

import (
	"context"
	"io"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/internal/domain/service"
	"vibely/pkg/errors"
	"vibely/pkg/logger"
)

type VideoUseCase struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	uploader  service.MediaUploadService
}

func NewVideoUseCase(videoRepo repository.VideoRepository, userRepo repository.UserRepository, uploader service.MediaUploadService) *VideoUseCase {
	return &VideoUseCase{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		uploader:  uploader,
	}
}

type CreateVideoInput struct {
	Title     string
	Media     io.Reader
	MediaType string
}

func (uc *VideoUseCase) CreateVideo(ctx context.Context, userID string, input CreateVideoInput) (*entity.Video, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to upload videos", nil)
	}
	if input.Title == "" {
		return nil, errors.Validation("Video title is required", nil)
	}
	if input.Media == nil {
		return nil, errors.Validation("Video media is required", nil)
	}

	author, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	mediaURL, err := uc.uploader.UploadMedia(ctx, input.Media, input.MediaType, "users/"+userID+"/videos")
	if err != nil {
		logger.Error("CreateVideo: media upload failed for user %s: %v", userID, err)
		return nil, errors.Unavailable("Media upload failed", err)
	}

	video := &entity.Video{
		UserID:   userID,
		Username: author.Username,
		Title:    input.Title,
		MediaURL: mediaURL,
	}

	if err := uc.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	return video, nil
}

func (uc *VideoUseCase) ListVideos(ctx context.Context, limit, offset int) ([]*entity.Video, int64, error) {
	return uc.videoRepo.List(ctx, limit, offset)
}
