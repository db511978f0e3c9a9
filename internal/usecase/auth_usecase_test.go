package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibely/internal/domain/entity"
	"vibely/pkg/errors"
)

type fakeAuthClient struct {
	failCreate  bool
	failSignIn  bool
	createdUIDs []string
	deletedUIDs []string
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	if f.failCreate {
		return "", errors.Internal("identity backend down", nil)
	}
	uid := "uid-" + displayName
	f.createdUIDs = append(f.createdUIDs, uid)
	return uid, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	if token == "valid-token" {
		return "uid-alice", nil
	}
	return "", errors.Unauthenticated("bad token", nil)
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	if f.failSignIn {
		return "", errors.Unauthenticated("wrong password", nil)
	}
	return "id-token", nil
}

func (f *fakeAuthClient) DeleteUser(ctx context.Context, uid string) error {
	f.deletedUIDs = append(f.deletedUIDs, uid)
	return nil
}

type failingUserRepo struct {
	*fakeUserRepo
}

func (f *failingUserRepo) Create(ctx context.Context, user *entity.User) error {
	return errors.Internal("firestore down", nil)
}

func TestRegisterCreatesIdentityAndProfile(t *testing.T) {
	authClient := &fakeAuthClient{}
	userRepo := newFakeUserRepo()
	authUC := NewAuthUseCase(authClient, userRepo)

	result, err := authUC.Register(context.Background(), RegisterInput{
		Email:    "carol@example.com",
		Password: "sup3rsecret",
		Username: "carol",
	})
	require.NoError(t, err)

	assert.Equal(t, "uid-carol", result.User.ID)
	assert.Equal(t, "id-token", result.Token)
	assert.Contains(t, userRepo.users, "uid-carol")
}

func TestRegisterRollsBackIdentityOnProfileFailure(t *testing.T) {
	authClient := &fakeAuthClient{}
	authUC := NewAuthUseCase(authClient, &failingUserRepo{fakeUserRepo: newFakeUserRepo()})

	_, err := authUC.Register(context.Background(), RegisterInput{
		Email:    "carol@example.com",
		Password: "sup3rsecret",
		Username: "carol",
	})

	assert.Error(t, err)
	assert.Equal(t, []string{"uid-carol"}, authClient.deletedUIDs, "orphaned identity must be removed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	authUC := NewAuthUseCase(&fakeAuthClient{}, testUsers())

	_, err := authUC.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "sup3rsecret",
		Username: "alice2",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestLogin(t *testing.T) {
	authUC := NewAuthUseCase(&fakeAuthClient{}, testUsers())

	result, err := authUC.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "id-token", result.Token)
	assert.Equal(t, "online", result.User.Status)
}

func TestLoginWrongPassword(t *testing.T) {
	authUC := NewAuthUseCase(&fakeAuthClient{failSignIn: true}, testUsers())

	_, err := authUC.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "nope",
	})
	assert.True(t, errors.Is(err, "UNAUTHENTICATED"))
}

func TestVerifyToken(t *testing.T) {
	authUC := NewAuthUseCase(&fakeAuthClient{}, testUsers())

	uid, err := authUC.VerifyToken(context.Background(), "valid-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-alice", uid)

	_, err = authUC.VerifyToken(context.Background(), "garbage")
	assert.True(t, errors.Is(err, "UNAUTHENTICATED"))

	_, err = authUC.VerifyToken(context.Background(), "")
	assert.True(t, errors.Is(err, "UNAUTHENTICATED"))
}

func TestLogoutMarksOffline(t *testing.T) {
	userRepo := testUsers()
	authUC := NewAuthUseCase(&fakeAuthClient{}, userRepo)

	require.NoError(t, authUC.Logout(context.Background(), "alice"))
	assert.Equal(t, "offline", userRepo.users["alice"].Status)
}
