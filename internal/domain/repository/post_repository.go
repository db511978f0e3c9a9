package repository

import (
	"context"

	"vibely/internal/domain/entity"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context, limit int) (PostStream, error)

	// Counter mutations are atomic server-side increments; callers never
	// read-modify-write the numeric fields.
	IncrementLikes(ctx context.Context, id string, delta int64) error
	IncrementReposts(ctx context.Context, id string, delta int64) error

	CreateComment(ctx context.Context, comment *entity.Comment) error
	ListComments(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int64, error)
	WatchComments(ctx context.Context, postID string) (CommentStream, error)
}
