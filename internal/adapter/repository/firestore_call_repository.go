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

type firestoreCallRepository struct {
	client *firestore.Client
}

func NewFirestoreCallRepository(client *firestore.Client) repository.CallRepository {
	return &firestoreCallRepository{
		client: client,
	}
}

func (r *firestoreCallRepository) Create(ctx context.Context, call *entity.Call) error {
	if call.ID == "" {
		call.ID = uuid.New().String()
	}

	call.StartedAt = time.Now()

	_, err := r.client.Collection("calls").Doc(call.ID).Set(ctx, call)
	if err != nil {
		return errors.Unavailable("Failed to create call record", err)
	}

	return nil
}

func (r *firestoreCallRepository) GetByID(ctx context.Context, id string) (*entity.Call, error) {
	doc, err := r.client.Collection("calls").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Call", err)
		}
		return nil, errors.Unavailable("Failed to get call record", err)
	}

	return decodeCall(doc)
}

func (r *firestoreCallRepository) Update(ctx context.Context, call *entity.Call) error {
	_, err := r.client.Collection("calls").Doc(call.ID).Set(ctx, call)
	if err != nil {
		return errors.Unavailable("Failed to update call record", err)
	}

	return nil
}

func (r *firestoreCallRepository) ListByParticipant(ctx context.Context, userID string, limit, offset int) ([]*entity.Call, int64, error) {
	allDocs, err := r.participantQuery(userID).Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching calls for user %s: %v", userID, err)
		return nil, 0, errors.Unavailable("Failed to fetch calls", err)
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

	var calls []*entity.Call
	for i := start; i < end; i++ {
		call, err := decodeCall(allDocs[i])
		if err != nil {
			logger.Warn("Skipping malformed call %s: %v", allDocs[i].Ref.ID, err)
			continue
		}
		calls = append(calls, call)
	}

	return calls, total, nil
}

func (r *firestoreCallRepository) WatchByParticipant(ctx context.Context, userID string) (repository.CallStream, error) {
	return watchQuery(ctx, r.participantQuery(userID), "calls/"+userID, decodeCall), nil
}

func (r *firestoreCallRepository) participantQuery(userID string) firestore.Query {
	return r.client.Collection("calls").
		Where("participants", "array-contains", userID).
		OrderBy("startedAt", firestore.Desc)
}

func decodeCall(doc *firestore.DocumentSnapshot) (*entity.Call, error) {
	var call entity.Call
	if err := doc.DataTo(&call); err != nil {
		return nil, err
	}
	call.ID = doc.Ref.ID
	return &call, nil
}
