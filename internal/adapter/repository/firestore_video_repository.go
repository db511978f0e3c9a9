package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/pkg/errors"
	"vibely/pkg/logger"
)

type firestoreVideoRepository struct {
	client *firestore.Client
}

func NewFirestoreVideoRepository(client *firestore.Client) repository.VideoRepository {
	return &firestoreVideoRepository{
		client: client,
	}
}

func (r *firestoreVideoRepository) Create(ctx context.Context, video *entity.Video) error {
	if video.ID == "" {
		video.ID = uuid.New().String()
	}

	video.CreatedAt = time.Now()

	_, err := r.client.Collection("videos").Doc(video.ID).Set(ctx, video)
	if err != nil {
		return errors.Unavailable("Failed to create video", err)
	}

	return nil
}

func (r *firestoreVideoRepository) List(ctx context.Context, limit, offset int) ([]*entity.Video, int64, error) {
	query := r.client.Collection("videos").OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching videos: %v", err)
		return nil, 0, errors.Unavailable("Failed to fetch videos", err)
	}

	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var videos []*entity.Video
	for i := start; i < end; i++ {
		var video entity.Video
		if err := allDocs[i].DataTo(&video); err != nil {
			logger.Warn("Skipping malformed video %s: %v", allDocs[i].Ref.ID, err)
			continue
		}
		video.ID = allDocs[i].Ref.ID
		videos = append(videos, &video)
	}

	return videos, total, nil
}
