package usecase

import (
	"context"
	"io"
	"time"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/internal/domain/service"
	"vibely/pkg/errors"
	"vibely/pkg/logger"
)

type StoryUseCase struct {
	storyRepo repository.StoryRepository
	userRepo  repository.UserRepository
	uploader  service.MediaUploadService
}

func NewStoryUseCase(storyRepo repository.StoryRepository, userRepo repository.UserRepository, uploader service.MediaUploadService) *StoryUseCase {
	return &StoryUseCase{
		storyRepo: storyRepo,
		userRepo:  userRepo,
		uploader:  uploader,
	}
}

type CreateStoryInput struct {
	Caption   string
	Media     io.Reader
	MediaType string
}

// CreateStory uploads the story media and writes the record only once the
// locator is durable; a failed upload aborts the story.
func (uc *StoryUseCase) CreateStory(ctx context.Context, userID string, input CreateStoryInput) (*entity.Story, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to create stories", nil)
	}
	if input.Media == nil {
		return nil, errors.Validation("Story media is required", nil)
	}

	author, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	mediaURL, err := uc.uploader.UploadMedia(ctx, input.Media, input.MediaType, "users/"+userID+"/stories")
	if err != nil {
		logger.Error("CreateStory: media upload failed for user %s: %v", userID, err)
		return nil, errors.Unavailable("Media upload failed", err)
	}

	story := &entity.Story{
		UserID:    userID,
		Username:  author.Username,
		UserImage: author.AvatarURL,
		MediaURL:  mediaURL,
		Caption:   input.Caption,
	}

	if err := uc.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	return story, nil
}

// ListActive returns stories still inside the visibility window.
func (uc *StoryUseCase) ListActive(ctx context.Context) ([]*entity.Story, error) {
	return uc.storyRepo.ListActive(ctx, time.Now().Add(-entity.StoryWindow))
}

func (uc *StoryUseCase) ListByUser(ctx context.Context, userID string) ([]*entity.Story, error) {
	return uc.storyRepo.ListByUserID(ctx, userID)
}

func (uc *StoryUseCase) WatchUserStories(ctx context.Context, viewerID, userID string) (repository.StoryStream, error) {
	if viewerID == "" {
		return nil, errors.Unauthenticated("Sign in to view stories", nil)
	}

	return uc.storyRepo.WatchByUserID(ctx, userID)
}
