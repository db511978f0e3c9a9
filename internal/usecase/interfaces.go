package usecase

import "context"

// FirebaseAuthClient is the slice of the auth collaborator the usecases
// need; the concrete client lives in internal/infrastructure/firebase and
// tests substitute a fake.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
}
