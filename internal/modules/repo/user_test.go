package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
	"github.com/fieldmap-io/fieldmap/internal/pkg/utils/ids"
)

func TestUserRepo_CreateAndLookup(t *testing.T) {
	ctx := t.Context()
	r := NewUserRepo(setupTestDB(t))

	u := &model.User{
		ID:           ids.New(),
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$stub",
		Role:         model.RoleUser,
	}
	require.NoError(t, r.Create(ctx, u))

	t.Run("get by id", func(t *testing.T) {
		got, err := r.Get(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := r.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("email lookup is exact", func(t *testing.T) {
		got, err := r.GetByEmail(ctx, "ALICE@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := r.Create(ctx, &model.User{ID: u.ID, Email: "other@example.com", PasswordHash: "x"})
		assert.ErrorIs(t, err, store.ErrDuplicateKey)
	})
}

func TestUserRepo_UpdateAndDelete(t *testing.T) {
	ctx := t.Context()
	r := NewUserRepo(setupTestDB(t))

	u := &model.User{ID: ids.New(), Email: "bob@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, r.Create(ctx, u))

	got, err := r.Update(ctx, u.ID, map[string]any{"role": model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.Equal(t, "bob@example.com", got.Email)

	_, err = r.Update(ctx, "missing", map[string]any{"role": model.RoleUser})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, r.Delete(ctx, u.ID))
	gone, err := r.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// hard delete is idempotent
	assert.NoError(t, r.Delete(ctx, u.ID))
}

func TestUserRepo_List(t *testing.T) {
	ctx := t.Context()
	r := NewUserRepo(setupTestDB(t))

	for _, email := range []string{"a@example.com", "b@example.com"} {
		require.NoError(t, r.Create(ctx, &model.User{ID: ids.New(), Email: email, PasswordHash: "x"}))
	}

	users, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
