package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/pkg/errors"
	"vibely/pkg/logger"
)

type firestoreStoryRepository struct {
	client *firestore.Client
}

func NewFirestoreStoryRepository(client *firestore.Client) repository.StoryRepository {
	return &firestoreStoryRepository{
		client: client,
	}
}

func (r *firestoreStoryRepository) Create(ctx context.Context, story *entity.Story) error {
	if story.ID == "" {
		story.ID = uuid.New().String()
	}

	story.CreatedAt = time.Now()
	story.ExpiresAt = story.CreatedAt.Add(entity.StoryWindow)

	_, err := r.client.Collection("stories").Doc(story.ID).Set(ctx, story)
	if err != nil {
		return errors.Unavailable("Failed to create story", err)
	}

	return nil
}

func (r *firestoreStoryRepository) ListActive(ctx context.Context, since time.Time) ([]*entity.Story, error) {
	query := r.client.Collection("stories").
		Where("createdAt", ">=", since).
		OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query)
}

func (r *firestoreStoryRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Story, error) {
	return r.collect(ctx, r.userStoriesQuery(userID))
}

func (r *firestoreStoryRepository) WatchByUserID(ctx context.Context, userID string) (repository.StoryStream, error) {
	return watchQuery(ctx, r.userStoriesQuery(userID), "stories/"+userID, decodeStory), nil
}

func (r *firestoreStoryRepository) userStoriesQuery(userID string) firestore.Query {
	return r.client.Collection("stories").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Asc)
}

func (r *firestoreStoryRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Story, error) {
	iter := query.Documents(ctx)
	var stories []*entity.Story

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating stories: %v", err)
			return nil, errors.Unavailable("Failed to iterate stories", err)
		}

		story, err := decodeStory(doc)
		if err != nil {
			logger.Warn("Skipping malformed story %s: %v", doc.Ref.ID, err)
			continue
		}
		stories = append(stories, story)
	}

	return stories, nil
}

func decodeStory(doc *firestore.DocumentSnapshot) (*entity.Story, error) {
	var story entity.Story
	if err := doc.DataTo(&story); err != nil {
		return nil, err
	}
	story.ID = doc.Ref.ID
	return &story, nil
}
