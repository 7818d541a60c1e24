package users

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalassist-backend/internal/shared/auth"
)

func newTestService(t *testing.T) (*Service, *auth.Signer) {
	t.Helper()
	signer, err := auth.NewSigner("test-secret", 0)
	require.NoError(t, err)
	return NewService(NewMemoryRepo(), signer), signer
}

func TestRegisterIssuesTokenForNewUser(t *testing.T) {
	svc, signer := newTestService(t)

	result, err := svc.Register(context.Background(), "  Lawyer@Example.com ", "pw", "Jane")
	require.NoError(t, err)
	assert.Equal(t, "lawyer@example.com", result.User.Email)
	assert.Equal(t, "Jane", result.User.Name)
	assert.NotEmpty(t, result.User.ID)

	claims, err := signer.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "lawyer@example.com", claims.Email)

	stored, err := svc.Repo.GetByID(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored.PasswordHash)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@example.com", "pw", "")
	require.NoError(t, err)

	first, err := svc.Register(ctx, "a@example.com", "pw", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Empty(t, first.Token)

	_, err = svc.Register(ctx, "A@example.com", "other", "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Login(ctx, "a@example.com", "other")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRejectedDuplicateKeepsOriginalAccount(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	original, err := svc.Register(ctx, "a@example.com", "first-pw", "First")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@example.com", "second-pw", "Second")
	require.ErrorIs(t, err, ErrEmailTaken)

	result, err := svc.Login(ctx, "a@example.com", "first-pw")
	require.NoError(t, err)
	assert.Equal(t, original.User.ID, result.User.ID)
	assert.Equal(t, "First", result.User.Name)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@example.com", strings.Repeat("x", auth.MaxPasswordBytes+1), "")
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	_, err = svc.Repo.GetByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Register(ctx, "a@example.com", strings.Repeat("x", auth.MaxPasswordBytes), "")
	assert.NoError(t, err)
}

func TestExists(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "a@example.com", "pw", "")
	require.NoError(t, err)

	ok, err := svc.Exists(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, id := range []string{"", "  ", "no-such-user"} {
		ok, err = svc.Exists(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok, id)
	}
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), "", "pw", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), "a@example.com", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	svc, signer := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "a@example.com", "pw", "A")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, registered.User, result.User)
	claims, err := signer.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	_, err = svc.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
