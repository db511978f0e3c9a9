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

type PostUseCase struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	uploader service.MediaUploadService
}

func NewPostUseCase(postRepo repository.PostRepository, userRepo repository.UserRepository, uploader service.MediaUploadService) *PostUseCase {
	return &PostUseCase{
		postRepo: postRepo,
		userRepo: userRepo,
		uploader: uploader,
	}
}

type CreatePostInput struct {
	Content   string
	Kind      string
	Media     io.Reader
	MediaType string
}

// CreatePost uploads any attached media first and writes the post record
// only after a durable locator exists. A failed upload aborts the post.
func (uc *PostUseCase) CreatePost(ctx context.Context, userID string, input CreatePostInput) (*entity.Post, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to create posts", nil)
	}

	if input.Kind == "" {
		input.Kind = entity.PostKindText
	}
	if input.Kind != entity.PostKindText && input.Kind != entity.PostKindImage && input.Kind != entity.PostKindVideo {
		return nil, errors.Validation("Unsupported post kind", nil)
	}
	if input.Kind == entity.PostKindText && input.Content == "" {
		return nil, errors.Validation("Post content is required", nil)
	}
	if input.Kind != entity.PostKindText && input.Media == nil {
		return nil, errors.Validation("Media is required for "+input.Kind+" posts", nil)
	}

	author, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	var mediaURL string
	if input.Media != nil {
		mediaURL, err = uc.uploader.UploadMedia(ctx, input.Media, input.MediaType, "users/"+userID+"/posts")
		if err != nil {
			logger.Error("CreatePost: media upload failed for user %s: %v", userID, err)
			return nil, errors.Unavailable("Media upload failed", err)
		}
	}

	post := &entity.Post{
		UserID:    userID,
		Username:  author.Username,
		UserImage: author.AvatarURL,
		Content:   input.Content,
		Kind:      input.Kind,
		MediaURL:  mediaURL,
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (uc *PostUseCase) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	return uc.postRepo.GetByID(ctx, id)
}

func (uc *PostUseCase) ListFeed(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error) {
	return uc.postRepo.List(ctx, limit, offset)
}

func (uc *PostUseCase) WatchFeed(ctx context.Context, limit int) (repository.PostStream, error) {
	return uc.postRepo.Watch(ctx, limit)
}

func (uc *PostUseCase) UpdatePost(ctx context.Context, userID, postID, content string) (*entity.Post, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to edit posts", nil)
	}
	if content == "" {
		return nil, errors.Validation("Post content is required", nil)
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, errors.Forbidden("You can only edit your own posts", nil)
	}

	post.Content = content
	if err := uc.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (uc *PostUseCase) DeletePost(ctx context.Context, userID, postID string) error {
	if userID == "" {
		return errors.Unauthenticated("Sign in to delete posts", nil)
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return errors.Forbidden("You can only delete your own posts", nil)
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	// The record is gone; orphaned media is only worth a warning.
	if post.MediaURL != "" {
		if err := uc.uploader.DeleteMedia(ctx, post.MediaURL); err != nil {
			logger.Warn("DeletePost: failed to delete media for post %s: %v", postID, err)
		}
	}

	return nil
}

func (uc *PostUseCase) LikePost(ctx context.Context, userID, postID string) error {
	if userID == "" {
		return errors.Unauthenticated("Sign in to like posts", nil)
	}

	return uc.postRepo.IncrementLikes(ctx, postID, 1)
}

// CreateRepost publishes a new feed entry quoting an existing post, with an
// optional comment, and bumps the original's repost counter.
func (uc *PostUseCase) CreateRepost(ctx context.Context, userID, postID, comment string) (*entity.Post, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to repost", nil)
	}

	original, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	author, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	repost := &entity.Post{
		UserID:         userID,
		Username:       author.Username,
		UserImage:      author.AvatarURL,
		Kind:           entity.PostKindRepost,
		OriginalPostID: original.ID,
		RepostComment:  comment,
	}

	if err := uc.postRepo.Create(ctx, repost); err != nil {
		return nil, err
	}

	// The repost document is the record; a missed counter bump only skews
	// the displayed number.
	if err := uc.postRepo.IncrementReposts(ctx, original.ID, 1); err != nil {
		logger.Warn("CreateRepost: failed to bump repost counter for post %s: %v", original.ID, err)
	}

	return repost, nil
}

func (uc *PostUseCase) AddComment(ctx context.Context, userID, postID, text string) (*entity.Comment, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to comment", nil)
	}
	if text == "" {
		return nil, errors.Validation("Comment text is required", nil)
	}

	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	author, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	comment := &entity.Comment{
		PostID:    postID,
		UserID:    userID,
		Username:  author.Username,
		UserImage: author.AvatarURL,
		Text:      text,
	}

	if err := uc.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (uc *PostUseCase) ListComments(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int64, error) {
	return uc.postRepo.ListComments(ctx, postID, limit, offset)
}

func (uc *PostUseCase) WatchComments(ctx context.Context, postID string) (repository.CommentStream, error) {
	return uc.postRepo.WatchComments(ctx, postID)
}
