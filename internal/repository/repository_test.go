package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rlaig/ezorder/internal/access"
	"github.com/rlaig/ezorder/internal/docstore"
	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/utils"
	"github.com/rlaig/ezorder/internal/validate"
)

func newUserRepo(t *testing.T) *UserRepo {
	t.Helper()
	w := access.New(docstore.NewMemory(), validate.New(true, zap.NewNop()), nil)
	return NewUserRepo(w)
}

func TestUserRepoCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	u, err := repo.Create(ctx, NewUser{
		Email: "  Owner@Cafe.PH ", Name: "Cafe Luna", Password: "TempPassword123!", Role: model.RoleMerchant,
	}, 4)
	require.NoError(t, err)
	require.Equal(t, "owner@cafe.ph", u.Email)
	require.NotNil(t, u.PasswordHash)
	require.True(t, utils.VerifyPassword(*u.PasswordHash, "TempPassword123!"))

	byEmail, err := repo.GetByEmail(ctx, "OWNER@cafe.ph")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, model.RoleMerchant, byID.Role)
	require.False(t, byID.Verified)

	require.NoError(t, repo.SetVerified(ctx, u.ID, true))
	byID, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, byID.Verified)
}

func TestUserRepoErrors(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	_, err := repo.Create(ctx, NewUser{Email: "a@b.ph", Password: "password1", Role: model.RoleAdmin}, 4)
	require.NoError(t, err)
	_, err = repo.Create(ctx, NewUser{Email: "A@B.ph", Password: "password2", Role: model.RoleMerchant}, 4)
	require.ErrorIs(t, err, ErrEmailExists)

	_, err = repo.GetByEmail(ctx, "nobody@b.ph")
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "missing"), ErrUserNotFound)
	require.ErrorIs(t, repo.SetVerified(ctx, "missing", true), ErrUserNotFound)
}

func TestMemoryTokens(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	store := NewMemoryTokens()
	store.now = func() time.Time { return now }

	require.NoError(t, store.StoreRefresh(ctx, "u1", "h1", now.Add(time.Hour)))
	require.NoError(t, store.StoreRefresh(ctx, "u1", "h2", now.Add(time.Hour)))
	require.NoError(t, store.StoreRefresh(ctx, "u2", "h3", now.Add(-time.Minute)))
	require.ErrorIs(t, store.StoreRefresh(ctx, "u1", "h1", now.Add(time.Hour)), ErrConflict)

	uid, err := store.ValidateRefresh(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, "u1", uid)

	_, err = store.ValidateRefresh(ctx, "h3")
	require.ErrorIs(t, err, ErrInvalidRefresh)
	_, err = store.ValidateRefresh(ctx, "unknown")
	require.ErrorIs(t, err, ErrInvalidRefresh)

	require.NoError(t, store.RevokeByHash(ctx, "h1"))
	_, err = store.ValidateRefresh(ctx, "h1")
	require.ErrorIs(t, err, ErrInvalidRefresh)

	require.NoError(t, store.RevokeAllForUser(ctx, "u1"))
	_, err = store.ValidateRefresh(ctx, "h2")
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

var _ TokenStore = (*TokenRepo)(nil)
var _ TokenStore = (*MemoryTokens)(nil)
