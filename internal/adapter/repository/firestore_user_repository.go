package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/pkg/errors"
	"vibely/pkg/logger"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Unavailable("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Unavailable("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := r.client.Collection("users").Where("email", "==", email).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("User", nil)
		}
		return nil, errors.Unavailable("Failed to query user by email", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	logger.Debug("Updating user %s", user.ID)

	updateData := map[string]interface{}{
		"updatedAt": time.Now(),
	}
	if user.Username != "" {
		updateData["username"] = user.Username
	}
	if user.Bio != "" {
		updateData["bio"] = user.Bio
	}
	if user.AvatarURL != "" {
		updateData["avatarURL"] = user.AvatarURL
	}
	if user.Status != "" {
		updateData["status"] = user.Status
	}
	if !user.LastSeen.IsZero() {
		updateData["lastSeen"] = user.LastSeen
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, updateData, firestore.MergeAll)
	if err != nil {
		return errors.Unavailable("Failed to update user", err)
	}

	return nil
}

func (r *firestoreUserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	query := r.client.Collection("users").OrderBy("username", firestore.Asc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while listing users: %v", err)
		return nil, 0, errors.Unavailable("Failed to list users", err)
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

	var users []*entity.User
	for i := start; i < end; i++ {
		var user entity.User
		if err := allDocs[i].DataTo(&user); err != nil {
			logger.Warn("Skipping malformed user %s: %v", allDocs[i].Ref.ID, err)
			continue
		}
		user.ID = allDocs[i].Ref.ID
		users = append(users, &user)
	}

	return users, total, nil
}
