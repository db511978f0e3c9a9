package usecase

import (
	"context"
	"time"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/pkg/errors"
	"vibely/pkg/logger"
)

type AuthUseCase struct {
	authClient FirebaseAuthClient
	userRepo   repository.UserRepository
}

func NewAuthUseCase(authClient FirebaseAuthClient, userRepo repository.UserRepository) *AuthUseCase {
	return &AuthUseCase{
		authClient: authClient,
		userRepo:   userRepo,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3,max=30"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates the identity first, then the profile document keyed by
// the identity's uid. If the profile write fails the identity is rolled back
// so the email is not left unusable.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if existing, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, errors.BadRequest("Email already registered", nil)
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		logger.Error("Register: identity creation failed for %s: %v", input.Email, err)
		return nil, errors.Internal("Failed to create user", err)
	}

	user := &entity.User{
		ID:       uid,
		Email:    input.Email,
		Username: input.Username,
		Status:   "online",
		LastSeen: time.Now(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		logger.Error("Register: profile write failed for %s, rolling back identity: %v", uid, err)
		if delErr := uc.authClient.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("Register: identity rollback failed for %s: %v", uid, delErr)
		}
		return nil, errors.Internal("Failed to create user profile", err)
	}

	token, err := uc.authClient.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		logger.Error("Register: post-register sign-in failed for %s: %v", input.Email, err)
		return nil, errors.Internal("Failed to sign in", err)
	}

	return &AuthResponse{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	token, err := uc.authClient.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		logger.Warn("Login: sign-in failed for %s: %v", input.Email, err)
		return nil, errors.Unauthenticated("Invalid email or password", err)
	}

	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	user.Status = "online"
	user.LastSeen = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Warn("Login: failed to update presence for %s: %v", user.ID, err)
	}

	return &AuthResponse{User: user, Token: token}, nil
}

// VerifyToken resolves a bearer token to a uid. Used by the auth middleware
// and the websocket handshake.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", errors.Unauthenticated("Missing token", nil)
	}

	uid, err := uc.authClient.VerifyToken(ctx, token)
	if err != nil {
		return "", errors.Unauthenticated("Invalid or expired token", err)
	}

	return uid, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.Unauthenticated("Sign in first", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Status = "offline"
	user.LastSeen = time.Now()

	return uc.userRepo.Update(ctx, user)
}
