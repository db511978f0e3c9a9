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

type UserUseCase struct {
	userRepo repository.UserRepository
	uploader service.MediaUploadService
}

func NewUserUseCase(userRepo repository.UserRepository, uploader service.MediaUploadService) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		uploader: uploader,
	}
}

type UpdateProfileInput struct {
	Username   string
	Bio        string
	Avatar     io.Reader
	AvatarType string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies partial profile edits. A new avatar is uploaded
// before the profile document is touched; a failed upload leaves the
// profile unchanged.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to edit your profile", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Avatar != nil {
		avatarURL, err := uc.uploader.UploadMedia(ctx, input.Avatar, input.AvatarType, "users/"+userID+"/avatar")
		if err != nil {
			logger.Error("UpdateProfile: avatar upload failed for %s: %v", userID, err)
			return nil, errors.Unavailable("Avatar upload failed", err)
		}
		user.AvatarURL = avatarURL
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	return uc.userRepo.List(ctx, limit, offset)
}
