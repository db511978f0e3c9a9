package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/pkg/errors"
)

type fakeStoryRepo struct {
	stories     []*entity.Story
	createCalls int
	lastSince   time.Time
}

func (f *fakeStoryRepo) Create(ctx context.Context, story *entity.Story) error {
	f.createCalls++
	story.CreatedAt = time.Now()
	story.ExpiresAt = story.CreatedAt.Add(entity.StoryWindow)
	f.stories = append(f.stories, story)
	return nil
}

func (f *fakeStoryRepo) ListActive(ctx context.Context, since time.Time) ([]*entity.Story, error) {
	f.lastSince = since
	var active []*entity.Story
	for _, story := range f.stories {
		if story.CreatedAt.After(since) {
			active = append(active, story)
		}
	}
	return active, nil
}

func (f *fakeStoryRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Story, error) {
	var result []*entity.Story
	for _, story := range f.stories {
		if story.UserID == userID {
			result = append(result, story)
		}
	}
	return result, nil
}

func (f *fakeStoryRepo) WatchByUserID(ctx context.Context, userID string) (repository.StoryStream, error) {
	return nil, errors.Internal("not implemented", nil)
}

func TestCreateStoryUploadsBeforeWrite(t *testing.T) {
	storyRepo := &fakeStoryRepo{}
	uploader := &fakeUploader{}
	storyUC := NewStoryUseCase(storyRepo, testUsers(), uploader)

	story, err := storyUC.CreateStory(context.Background(), "alice", CreateStoryInput{
		Caption:   "sunset",
		Media:     strings.NewReader("jpeg bytes"),
		MediaType: "image/jpeg",
	})
	require.NoError(t, err)

	assert.Contains(t, story.MediaURL, "users/alice/stories")
	assert.Equal(t, "alice", story.Username)
	assert.Equal(t, 1, storyRepo.createCalls)
}

func TestCreateStoryFailedUploadAbortsRecordWrite(t *testing.T) {
	storyRepo := &fakeStoryRepo{}
	storyUC := NewStoryUseCase(storyRepo, testUsers(), &fakeUploader{failUpload: true})

	_, err := storyUC.CreateStory(context.Background(), "alice", CreateStoryInput{
		Media:     strings.NewReader("jpeg bytes"),
		MediaType: "image/jpeg",
	})

	assert.True(t, errors.Is(err, "UNAVAILABLE"))
	assert.Zero(t, storyRepo.createCalls)
}

func TestCreateStoryRequiresMedia(t *testing.T) {
	storyUC := NewStoryUseCase(&fakeStoryRepo{}, testUsers(), &fakeUploader{})

	_, err := storyUC.CreateStory(context.Background(), "alice", CreateStoryInput{Caption: "no media"})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestListActiveFiltersOnWindow(t *testing.T) {
	storyRepo := &fakeStoryRepo{
		stories: []*entity.Story{
			{UserID: "alice", CreatedAt: time.Now().Add(-2 * time.Hour)},
			{UserID: "bob", CreatedAt: time.Now().Add(-30 * time.Hour)},
		},
	}
	storyUC := NewStoryUseCase(storyRepo, testUsers(), &fakeUploader{})

	active, err := storyUC.ListActive(context.Background())
	require.NoError(t, err)

	assert.Len(t, active, 1)
	assert.Equal(t, "alice", active[0].UserID)
	assert.WithinDuration(t, time.Now().Add(-entity.StoryWindow), storyRepo.lastSince, time.Minute)
}
