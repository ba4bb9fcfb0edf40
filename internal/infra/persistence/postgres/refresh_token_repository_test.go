package postgres

import (
	"context"
	"testing"
	"time"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewRefreshTokenRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "frank", entity.RoleCustomer)

	active := &entity.RefreshToken{UserID: user.ID, TokenHash: "active", ExpiresAt: time.Now().Add(time.Hour)}
	expired := &entity.RefreshToken{UserID: user.ID, TokenHash: "expired", ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.CreateRefreshToken(ctx, active))
	require.NoError(t, repo.CreateRefreshToken(ctx, expired))

	found, err := repo.FindRefreshTokenByHash(ctx, "active")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)

	_, err = repo.FindRefreshTokenByHash(ctx, "expired")
	assert.ErrorIs(t, err, repository.ErrRefreshTokenExpired)

	require.NoError(t, repo.DeleteExpiredRefreshTokens(ctx))
	_, err = repo.FindRefreshTokenByHash(ctx, "expired")
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)

	require.NoError(t, repo.DeleteRefreshTokenByHash(ctx, "active"))
	assert.ErrorIs(t, repo.DeleteRefreshTokenByHash(ctx, "active"), repository.ErrRefreshTokenNotFound)
}
