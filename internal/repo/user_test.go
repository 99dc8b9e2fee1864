package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/domain"
)

func TestUserRepo_Create(t *testing.T) {
	r := newTestRepos(t)

	got, err := r.Users.Create(context.Background(), userFixture("a@example.com"))

	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "a@example.com", got.Email)
	assert.False(t, got.IsAdmin)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	mustCreateUser(t, r, "a@example.com")

	_, err := r.Users.Create(ctx, userFixture("a@example.com"))

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserRepo_CreateIfAbsent(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	admin := userFixture("admin@example.com")
	admin.IsAdmin = true

	first, err := r.Users.CreateIfAbsent(ctx, admin)
	require.NoError(t, err)
	second, err := r.Users.CreateIfAbsent(ctx, admin)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)

	got, err := r.Users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
}

func TestUserRepo_GetByEmail_IsExact(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	mustCreateUser(t, r, "a@example.com")

	_, err := r.Users.GetByEmail(ctx, "A@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_GetByID(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	created := mustCreateUser(t, r, "a@example.com")

	got, err := r.Users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = r.Users.GetByID(ctx, created.ID+1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
