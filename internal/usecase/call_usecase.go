package usecase

import (
	"context"
	"time"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/pkg/errors"
)

type CallUseCase struct {
	callRepo repository.CallRepository
	userRepo repository.UserRepository
}

func NewCallUseCase(callRepo repository.CallRepository, userRepo repository.UserRepository) *CallUseCase {
	return &CallUseCase{
		callRepo: callRepo,
		userRepo: userRepo,
	}
}

type PlaceCallInput struct {
	CalleeID string
	Kind     string
}

// PlaceCall writes the log entry for an outgoing call. The media path of
// the call itself belongs to the device; only the log is persisted.
func (uc *CallUseCase) PlaceCall(ctx context.Context, callerID string, input PlaceCallInput) (*entity.Call, error) {
	if callerID == "" {
		return nil, errors.Unauthenticated("Sign in to place calls", nil)
	}
	if input.CalleeID == "" {
		return nil, errors.Validation("Callee is required", nil)
	}
	if input.CalleeID == callerID {
		return nil, errors.Validation("You cannot call yourself", nil)
	}
	if input.Kind != entity.CallKindVoice && input.Kind != entity.CallKindVideo {
		return nil, errors.Validation("Call kind must be voice or video", nil)
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, errors.NotFound("Caller", err)
	}
	callee, err := uc.userRepo.GetByID(ctx, input.CalleeID)
	if err != nil {
		return nil, errors.NotFound("Callee", err)
	}

	call := &entity.Call{
		CallerID:     callerID,
		CallerName:   caller.Username,
		CalleeID:     input.CalleeID,
		CalleeName:   callee.Username,
		Participants: []string{callerID, input.CalleeID},
		Kind:         input.Kind,
		Status:       entity.CallStatusRinging,
	}

	if err := uc.callRepo.Create(ctx, call); err != nil {
		return nil, err
	}

	return call, nil
}

// EndCall records the final status of a call from either participant.
func (uc *CallUseCase) EndCall(ctx context.Context, userID, callID, callStatus string) (*entity.Call, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to update calls", nil)
	}

	switch callStatus {
	case entity.CallStatusCompleted, entity.CallStatusMissed, entity.CallStatusDeclined:
	default:
		return nil, errors.Validation("Invalid final call status", nil)
	}

	call, err := uc.callRepo.GetByID(ctx, callID)
	if err != nil {
		return nil, err
	}

	participant := false
	for _, id := range call.Participants {
		if id == userID {
			participant = true
			break
		}
	}
	if !participant {
		return nil, errors.Forbidden("You are not a participant in this call", nil)
	}

	call.Status = callStatus
	call.EndedAt = time.Now()

	if err := uc.callRepo.Update(ctx, call); err != nil {
		return nil, err
	}

	return call, nil
}

func (uc *CallUseCase) ListCalls(ctx context.Context, userID string, limit, offset int) ([]*entity.Call, int64, error) {
	if userID == "" {
		return nil, 0, errors.Unauthenticated("Sign in to list calls", nil)
	}

	return uc.callRepo.ListByParticipant(ctx, userID, limit, offset)
}

func (uc *CallUseCase) WatchCalls(ctx context.Context, userID string) (repository.CallStream, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to watch calls", nil)
	}

	return uc.callRepo.WatchByParticipant(ctx, userID)
}
