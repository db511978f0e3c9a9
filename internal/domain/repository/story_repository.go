package repository

import (
	"context"
	"time"

	"vibely/internal/domain/entity"
)

type StoryRepository interface {
	Create(ctx context.Context, story *entity.Story) error
	ListActive(ctx context.Context, since time.Time) ([]*entity.Story, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Story, error)
	WatchByUserID(ctx context.Context, userID string) (StoryStream, error)
}
