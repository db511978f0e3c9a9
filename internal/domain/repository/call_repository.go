package repository

import (
	"context"

	"vibely/internal/domain/entity"
)

type CallRepository interface {
	Create(ctx context.Context, call *entity.Call) error
	GetByID(ctx context.Context, id string) (*entity.Call, error)
	Update(ctx context.Context, call *entity.Call) error
	ListByParticipant(ctx context.Context, userID string, limit, offset int) ([]*entity.Call, int64, error)
	WatchByParticipant(ctx context.Context, userID string) (CallStream, error)
}
