package usecase

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/pkg/errors"
)

type fakeUploader struct {
	failUpload  bool
	uploads     []string
	deletedURLs []string
}

func (f *fakeUploader) UploadMedia(ctx context.Context, media io.Reader, contentType, folder string) (string, error) {
	if f.failUpload {
		return "", errors.Unavailable("bucket unreachable", nil)
	}
	url := "https://storage.googleapis.com/bucket/" + folder + "/blob"
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeUploader) DeleteMedia(ctx context.Context, mediaURL string) error {
	f.deletedURLs = append(f.deletedURLs, mediaURL)
	return nil
}

func (f *fakeUploader) Close() error { return nil }

type fakePostRepo struct {
	posts       map[string]*entity.Post
	comments    map[string][]*entity.Comment
	nextID      int
	likeCalls   []int64
	repostCalls []int64
	createCalls int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:    make(map[string]*entity.Post),
		comments: make(map[string][]*entity.Comment),
	}
}

func (f *fakePostRepo) Create(ctx context.Context, post *entity.Post) error {
	f.createCalls++
	f.nextID++
	post.ID = "post-" + string(rune('0'+f.nextID))
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if post, ok := f.posts[id]; ok {
		return post, nil
	}
	return nil, errors.NotFound("Post", nil)
}

func (f *fakePostRepo) List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error) {
	posts := make([]*entity.Post, 0, len(f.posts))
	for _, post := range f.posts {
		posts = append(posts, post)
	}
	return posts, int64(len(posts)), nil
}

func (f *fakePostRepo) Update(ctx context.Context, post *entity.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id string) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) Watch(ctx context.Context, limit int) (repository.PostStream, error) {
	return nil, errors.Internal("not implemented", nil)
}

func (f *fakePostRepo) IncrementLikes(ctx context.Context, id string, delta int64) error {
	if _, ok := f.posts[id]; !ok {
		return errors.NotFound("Post", nil)
	}
	f.likeCalls = append(f.likeCalls, delta)
	f.posts[id].Likes += delta
	return nil
}

func (f *fakePostRepo) IncrementReposts(ctx context.Context, id string, delta int64) error {
	if _, ok := f.posts[id]; !ok {
		return errors.NotFound("Post", nil)
	}
	f.repostCalls = append(f.repostCalls, delta)
	f.posts[id].Reposts += delta
	return nil
}

func (f *fakePostRepo) CreateComment(ctx context.Context, comment *entity.Comment) error {
	f.comments[comment.PostID] = append(f.comments[comment.PostID], comment)
	return nil
}

func (f *fakePostRepo) ListComments(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int64, error) {
	comments := f.comments[postID]
	return comments, int64(len(comments)), nil
}

func (f *fakePostRepo) WatchComments(ctx context.Context, postID string) (repository.CommentStream, error) {
	return nil, errors.Internal("not implemented", nil)
}

func TestCreateTextPost(t *testing.T) {
	postRepo := newFakePostRepo()
	postUC := NewPostUseCase(postRepo, testUsers(), &fakeUploader{})

	post, err := postUC.CreatePost(context.Background(), "alice", CreatePostInput{
		Content: "first post",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PostKindText, post.Kind)
	assert.Equal(t, "alice", post.Username)
	assert.Empty(t, post.MediaURL)
}

func TestCreateImagePostUploadsBeforeWrite(t *testing.T) {
	postRepo := newFakePostRepo()
	uploader := &fakeUploader{}
	postUC := NewPostUseCase(postRepo, testUsers(), uploader)

	post, err := postUC.CreatePost(context.Background(), "alice", CreatePostInput{
		Kind:      entity.PostKindImage,
		Media:     strings.NewReader("jpeg bytes"),
		MediaType: "image/jpeg",
	})
	require.NoError(t, err)

	assert.Contains(t, post.MediaURL, "users/alice/posts")
	assert.Len(t, uploader.uploads, 1)
}

func TestCreatePostFailedUploadAbortsRecordWrite(t *testing.T) {
	postRepo := newFakePostRepo()
	postUC := NewPostUseCase(postRepo, testUsers(), &fakeUploader{failUpload: true})

	_, err := postUC.CreatePost(context.Background(), "alice", CreatePostInput{
		Kind:      entity.PostKindImage,
		Media:     strings.NewReader("jpeg bytes"),
		MediaType: "image/jpeg",
	})

	assert.True(t, errors.Is(err, "UNAVAILABLE"))
	assert.Zero(t, postRepo.createCalls, "no record may exist without a durable media locator")
}

func TestCreatePostValidation(t *testing.T) {
	postUC := NewPostUseCase(newFakePostRepo(), testUsers(), &fakeUploader{})

	_, err := postUC.CreatePost(context.Background(), "alice", CreatePostInput{})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "empty text post must be rejected")

	_, err = postUC.CreatePost(context.Background(), "alice", CreatePostInput{Kind: entity.PostKindVideo})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "media post without media must be rejected")

	_, err = postUC.CreatePost(context.Background(), "", CreatePostInput{Content: "hi"})
	assert.True(t, errors.Is(err, "UNAUTHENTICATED"))
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	postRepo := newFakePostRepo()
	postUC := NewPostUseCase(postRepo, testUsers(), &fakeUploader{})

	post, err := postUC.CreatePost(context.Background(), "alice", CreatePostInput{Content: "original"})
	require.NoError(t, err)

	updated, err := postUC.UpdatePost(context.Background(), "alice", post.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	_, err = postUC.UpdatePost(context.Background(), "bob", post.ID, "hijacked")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDeletePostOwnerOnlyAndCleansMedia(t *testing.T) {
	postRepo := newFakePostRepo()
	uploader := &fakeUploader{}
	postUC := NewPostUseCase(postRepo, testUsers(), uploader)

	post, err := postUC.CreatePost(context.Background(), "alice", CreatePostInput{
		Kind:      entity.PostKindImage,
		Media:     strings.NewReader("jpeg bytes"),
		MediaType: "image/jpeg",
	})
	require.NoError(t, err)

	err = postUC.DeletePost(context.Background(), "bob", post.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, postUC.DeletePost(context.Background(), "alice", post.ID))
	assert.Empty(t, postRepo.posts)
	assert.Equal(t, []string{post.MediaURL}, uploader.deletedURLs)
}

func TestLikeAndRepostUseAtomicIncrements(t *testing.T) {
	postRepo := newFakePostRepo()
	postUC := NewPostUseCase(postRepo, testUsers(), &fakeUploader{})

	post, err := postUC.CreatePost(context.Background(), "alice", CreatePostInput{Content: "count me"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, postUC.LikePost(context.Background(), "bob", post.ID))
	}
	_, err = postUC.CreateRepost(context.Background(), "bob", post.ID, "")
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 1, 1}, postRepo.likeCalls)
	assert.Equal(t, []int64{1}, postRepo.repostCalls)
	assert.Equal(t, int64(3), postRepo.posts[post.ID].Likes)
	assert.Equal(t, int64(1), postRepo.posts[post.ID].Reposts)
}

func TestCreateRepostPublishesQuoteReferencingOriginal(t *testing.T) {
	postRepo := newFakePostRepo()
	postUC := NewPostUseCase(postRepo, testUsers(), &fakeUploader{})

	original, err := postUC.CreatePost(context.Background(), "alice", CreatePostInput{Content: "hot take"})
	require.NoError(t, err)

	repost, err := postUC.CreateRepost(context.Background(), "bob", original.ID, "cold take, actually")
	require.NoError(t, err)

	assert.Equal(t, entity.PostKindRepost, repost.Kind)
	assert.Equal(t, "bob", repost.Username)
	assert.Equal(t, original.ID, repost.OriginalPostID)
	assert.Equal(t, "cold take, actually", repost.RepostComment)
	assert.NotEqual(t, original.ID, repost.ID, "a repost is its own feed document")

	assert.Len(t, postRepo.posts, 2)
	assert.Equal(t, int64(1), postRepo.posts[original.ID].Reposts)
}

func TestCreateRepostOfMissingPost(t *testing.T) {
	postUC := NewPostUseCase(newFakePostRepo(), testUsers(), &fakeUploader{})

	_, err := postUC.CreateRepost(context.Background(), "bob", "ghost", "")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, err = postUC.CreateRepost(context.Background(), "", "ghost", "")
	assert.True(t, errors.Is(err, "UNAUTHENTICATED"))
}

func TestAddCommentToMissingPost(t *testing.T) {
	postUC := NewPostUseCase(newFakePostRepo(), testUsers(), &fakeUploader{})

	_, err := postUC.AddComment(context.Background(), "alice", "ghost", "hello?")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestAddAndListComments(t *testing.T) {
	postRepo := newFakePostRepo()
	postUC := NewPostUseCase(postRepo, testUsers(), &fakeUploader{})

	post, err := postUC.CreatePost(context.Background(), "alice", CreatePostInput{Content: "discuss"})
	require.NoError(t, err)

	comment, err := postUC.AddComment(context.Background(), "bob", post.ID, "nice one")
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.Username)

	comments, total, err := postUC.ListComments(context.Background(), post.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "nice one", comments[0].Text)
}
