package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/todoapp/todo-api/internal/crypto"
	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/validate"
)

func newTestAuthService(t *testing.T, users UserStore) (*AuthService, *crypto.TokenManager) {
	t.Helper()
	tokens, err := crypto.NewTokenManager([]byte("test-secret"))
	require.NoError(t, err)

	svc := NewAuthService(users, crypto.NewHasher(bcrypt.MinCost), tokens, validate.New(false), time.Hour)
	return svc, tokens
}

func aliceRequest() model.CreateUserRequest {
	return model.CreateUserRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Liddell",
		Password:  "Str0ng!Pass",
		Role:      model.RoleUser,
	}
}

func TestRegisterThenAuthenticate(t *testing.T) {
	tests := []model.CreateUserRequest{
		aliceRequest(),
		{Username: "bob", Email: "bob.b+tag@mail.example.org", FirstName: "Bob", LastName: "Builder", Password: "abc", Role: "admin"},
		{Username: "carol_x", Email: "c@d.io", FirstName: "Carol", LastName: "Danvers", Password: "sp ace s", Role: "auditor"},
	}

	for _, req := range tests {
		t.Run(req.Username, func(t *testing.T) {
			svc, _ := newTestAuthService(t, newMemUsers())
			ctx := context.Background()

			created, err := svc.Register(ctx, req)
			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.True(t, created.IsActive)
			assert.Equal(t, req.Role, created.Role)
			assert.NotEqual(t, req.Password, created.HashedPassword)

			user, err := svc.Authenticate(ctx, req.Username, req.Password)
			require.NoError(t, err)
			assert.Equal(t, req.Email, user.Email)
			assert.Equal(t, created.ID, user.ID)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t, newMemUsers())
	ctx := context.Background()

	_, err := svc.Register(ctx, aliceRequest())
	require.NoError(t, err)

	dup := aliceRequest()
	dup.Username = "alice2"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService(t, newMemUsers())
	ctx := context.Background()

	_, err := svc.Register(ctx, aliceRequest())
	require.NoError(t, err)

	dup := aliceRequest()
	dup.Email = "alice2@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterValidation(t *testing.T) {
	users := newMemUsers()
	svc, _ := newTestAuthService(t, users)

	req := aliceRequest()
	req.Email = "not-an-email"
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, validate.ErrValidation)

	all, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "failed registration must not persist a user")
}

func TestRegisterStrongPasswordPolicy(t *testing.T) {
	tokens, err := crypto.NewTokenManager([]byte("test-secret"))
	require.NoError(t, err)
	svc := NewAuthService(newMemUsers(), crypto.NewHasher(bcrypt.MinCost), tokens, validate.New(true), time.Hour)

	req := aliceRequest()
	req.Password = "weakpass"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, validate.ErrValidation)

	_, err = svc.Register(context.Background(), aliceRequest())
	assert.NoError(t, err)
}

func TestRegisterStoreFailure(t *testing.T) {
	users := newMemUsers()
	users.err = errors.New("connection refused")
	svc, _ := newTestAuthService(t, users)

	_, err := svc.Register(context.Background(), aliceRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	assert.NotErrorIs(t, err, validate.ErrValidation)
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	svc, _ := newTestAuthService(t, newMemUsers())
	ctx := context.Background()

	_, err := svc.Register(ctx, aliceRequest())
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate(ctx, "alice", "Wr0ng!Pass")
	_, unknownUser := svc.Authenticate(ctx, "mallory", "Str0ng!Pass")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthenticateStoreFailureIsNotAuthFailure(t *testing.T) {
	users := newMemUsers()
	users.err = errors.New("connection refused")
	svc, _ := newTestAuthService(t, users)

	_, err := svc.Authenticate(context.Background(), "alice", "Str0ng!Pass")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginIssuesResolvableToken(t *testing.T) {
	svc, tokens := newTestAuthService(t, newMemUsers())
	ctx := context.Background()

	req := aliceRequest()
	req.Role = model.RoleAdmin
	created, err := svc.Register(ctx, req)
	require.NoError(t, err)

	resp, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "Str0ng!Pass"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)

	p, err := tokens.Resolve(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.Principal{Username: "alice", ID: created.ID, Role: model.RoleAdmin}, p)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t, newMemUsers())
	ctx := context.Background()

	_, err := svc.Register(ctx, aliceRequest())
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, model.LoginRequest{Username: "alice"})
	assert.ErrorIs(t, err, validate.ErrValidation)
}

func TestUserServiceMeAndList(t *testing.T) {
	users := newMemUsers()
	auth, _ := newTestAuthService(t, users)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		req := aliceRequest()
		req.Username = fmt.Sprintf("user%d", i)
		req.Email = fmt.Sprintf("user%d@example.com", i)
		_, err := auth.Register(ctx, req)
		require.NoError(t, err)
	}

	svc := NewUserService(users)

	me, err := svc.Me(ctx, model.Principal{Username: "user1", ID: 2})
	require.NoError(t, err)
	assert.Equal(t, "user1@example.com", me.Email)

	_, err = svc.Me(ctx, model.Principal{Username: "ghost", ID: 99})
	assert.ErrorIs(t, err, ErrUserNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
