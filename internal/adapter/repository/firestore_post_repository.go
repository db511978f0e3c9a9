package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/pkg/errors"
	"vibely/pkg/logger"
)

type firestorePostRepository struct {
	client *firestore.Client
}

func NewFirestorePostRepository(client *firestore.Client) repository.PostRepository {
	return &firestorePostRepository{
		client: client,
	}
}

func (r *firestorePostRepository) Create(ctx context.Context, post *entity.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.client.Collection("posts").Doc(post.ID).Set(ctx, post)
	if err != nil {
		return errors.Unavailable("Failed to create post", err)
	}

	return nil
}

func (r *firestorePostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	doc, err := r.client.Collection("posts").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Post", err)
		}
		return nil, errors.Unavailable("Failed to get post", err)
	}

	return decodePost(doc)
}

func (r *firestorePostRepository) List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error) {
	query := r.client.Collection("posts").OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching posts: %v", err)
		return nil, 0, errors.Unavailable("Failed to fetch posts", err)
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

	var posts []*entity.Post
	for i := start; i < end; i++ {
		post, err := decodePost(allDocs[i])
		if err != nil {
			logger.Warn("Skipping malformed post %s: %v", allDocs[i].Ref.ID, err)
			continue
		}
		posts = append(posts, post)
	}

	return posts, total, nil
}

func (r *firestorePostRepository) Update(ctx context.Context, post *entity.Post) error {
	post.UpdatedAt = time.Now()

	_, err := r.client.Collection("posts").Doc(post.ID).Set(ctx, post)
	if err != nil {
		return errors.Unavailable("Failed to update post", err)
	}

	return nil
}

func (r *firestorePostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("posts").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Unavailable("Failed to delete post", err)
	}

	return nil
}

func (r *firestorePostRepository) Watch(ctx context.Context, limit int) (repository.PostStream, error) {
	query := r.client.Collection("posts").OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	return watchQuery(ctx, query, "posts", decodePostSnapshot), nil
}

func (r *firestorePostRepository) IncrementLikes(ctx context.Context, id string, delta int64) error {
	return r.incrementCounter(ctx, id, "likes", delta)
}

func (r *firestorePostRepository) IncrementReposts(ctx context.Context, id string, delta int64) error {
	return r.incrementCounter(ctx, id, "reposts", delta)
}

func (r *firestorePostRepository) incrementCounter(ctx context.Context, id, field string, delta int64) error {
	_, err := r.client.Collection("posts").Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.Increment(delta)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Post", err)
		}
		return errors.Unavailable("Failed to update "+field, err)
	}

	return nil
}

func (r *firestorePostRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}

	comment.CreatedAt = time.Now()

	_, err := r.client.Collection("posts").Doc(comment.PostID).
		Collection("comments").Doc(comment.ID).Set(ctx, comment)
	if err != nil {
		return errors.Unavailable("Failed to create comment", err)
	}

	return nil
}

func (r *firestorePostRepository) ListComments(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int64, error) {
	query := r.commentsQuery(postID)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching comments for post %s: %v", postID, err)
		return nil, 0, errors.Unavailable("Failed to fetch comments", err)
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

	var comments []*entity.Comment
	for i := start; i < end; i++ {
		comment, err := decodeComment(allDocs[i])
		if err != nil {
			logger.Warn("Skipping malformed comment %s: %v", allDocs[i].Ref.ID, err)
			continue
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

func (r *firestorePostRepository) WatchComments(ctx context.Context, postID string) (repository.CommentStream, error) {
	return watchQuery(ctx, r.commentsQuery(postID), "comments/"+postID, decodeComment), nil
}

func (r *firestorePostRepository) commentsQuery(postID string) firestore.Query {
	return r.client.Collection("posts").Doc(postID).
		Collection("comments").OrderBy("createdAt", firestore.Asc)
}

func decodePost(doc *firestore.DocumentSnapshot) (*entity.Post, error) {
	post, err := decodePostSnapshot(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse post data", err)
	}
	return post, nil
}

func decodePostSnapshot(doc *firestore.DocumentSnapshot) (*entity.Post, error) {
	var post entity.Post
	if err := doc.DataTo(&post); err != nil {
		return nil, err
	}
	post.ID = doc.Ref.ID
	return &post, nil
}

func decodeComment(doc *firestore.DocumentSnapshot) (*entity.Comment, error) {
	var comment entity.Comment
	if err := doc.DataTo(&comment); err != nil {
		return nil, err
	}
	comment.ID = doc.Ref.ID
	return &comment, nil
}
