package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/pkg/errors"
)

type fakeCallRepo struct {
	calls  map[string]*entity.Call
	nextID int
}

func newFakeCallRepo() *fakeCallRepo {
	return &fakeCallRepo{calls: make(map[string]*entity.Call)}
}

func (f *fakeCallRepo) Create(ctx context.Context, call *entity.Call) error {
	f.nextID++
	call.ID = "call-" + string(rune('0'+f.nextID))
	f.calls[call.ID] = call
	return nil
}

func (f *fakeCallRepo) GetByID(ctx context.Context, id string) (*entity.Call, error) {
	if call, ok := f.calls[id]; ok {
		return call, nil
	}
	return nil, errors.NotFound("Call", nil)
}

func (f *fakeCallRepo) Update(ctx context.Context, call *entity.Call) error {
	f.calls[call.ID] = call
	return nil
}

func (f *fakeCallRepo) ListByParticipant(ctx context.Context, userID string, limit, offset int) ([]*entity.Call, int64, error) {
	var result []*entity.Call
	for _, call := range f.calls {
		for _, participant := range call.Participants {
			if participant == userID {
				result = append(result, call)
				break
			}
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeCallRepo) WatchByParticipant(ctx context.Context, userID string) (repository.CallStream, error) {
	return nil, errors.Internal("not implemented", nil)
}

func TestPlaceCall(t *testing.T) {
	callUC := NewCallUseCase(newFakeCallRepo(), testUsers())

	call, err := callUC.PlaceCall(context.Background(), "alice", PlaceCallInput{
		CalleeID: "bob",
		Kind:     entity.CallKindVideo,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CallStatusRinging, call.Status)
	assert.Equal(t, "alice", call.CallerName)
	assert.Equal(t, "bob", call.CalleeName)
	assert.ElementsMatch(t, []string{"alice", "bob"}, call.Participants)
}

func TestPlaceCallValidation(t *testing.T) {
	callUC := NewCallUseCase(newFakeCallRepo(), testUsers())

	_, err := callUC.PlaceCall(context.Background(), "alice", PlaceCallInput{CalleeID: "alice", Kind: entity.CallKindVoice})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "self calls must be rejected")

	_, err = callUC.PlaceCall(context.Background(), "alice", PlaceCallInput{CalleeID: "bob", Kind: "telepathy"})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = callUC.PlaceCall(context.Background(), "alice", PlaceCallInput{CalleeID: "nobody", Kind: entity.CallKindVoice})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestEndCall(t *testing.T) {
	callRepo := newFakeCallRepo()
	callUC := NewCallUseCase(callRepo, testUsers())

	call, err := callUC.PlaceCall(context.Background(), "alice", PlaceCallInput{
		CalleeID: "bob",
		Kind:     entity.CallKindVoice,
	})
	require.NoError(t, err)

	ended, err := callUC.EndCall(context.Background(), "bob", call.ID, entity.CallStatusDeclined)
	require.NoError(t, err)
	assert.Equal(t, entity.CallStatusDeclined, ended.Status)
	assert.False(t, ended.EndedAt.IsZero())
}

func TestEndCallParticipantOnly(t *testing.T) {
	callUC := NewCallUseCase(newFakeCallRepo(), testUsers())

	call, err := callUC.PlaceCall(context.Background(), "alice", PlaceCallInput{
		CalleeID: "bob",
		Kind:     entity.CallKindVoice,
	})
	require.NoError(t, err)

	_, err = callUC.EndCall(context.Background(), "mallory", call.ID, entity.CallStatusCompleted)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = callUC.EndCall(context.Background(), "bob", call.ID, entity.CallStatusRinging)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "ringing is not a final status")
}

func TestListCallsFiltersByParticipant(t *testing.T) {
	callRepo := newFakeCallRepo()
	callUC := NewCallUseCase(callRepo, testUsers())

	_, err := callUC.PlaceCall(context.Background(), "alice", PlaceCallInput{CalleeID: "bob", Kind: entity.CallKindVoice})
	require.NoError(t, err)

	calls, total, err := callUC.ListCalls(context.Background(), "bob", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, calls, 1)

	_, _, err = callUC.ListCalls(context.Background(), "", 20, 0)
	assert.True(t, errors.Is(err, "UNAUTHENTICATED"))
}
