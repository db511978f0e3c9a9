package repository

import (
	"context"

	"vibely/internal/domain/entity"
)

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	List(ctx context.Context, limit, offset int) ([]*entity.Video, int64, error)
}
