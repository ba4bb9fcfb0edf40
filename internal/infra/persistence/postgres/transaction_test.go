package postgres

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.UserRepo().Create(ctx, &entity.User{
			Username: "committed",
			Email:    "committed@example.com",
			Profile:  &entity.Profile{Role: entity.RoleCustomer},
		})
	})
	require.NoError(t, err)

	exists, err := NewUserRepository(db).ExistsByUsername(ctx, "committed")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.UserRepo().Create(ctx, &entity.User{
			Username: "rolled",
			Email:    "rolled@example.com",
			Profile:  &entity.Profile{Role: entity.RoleCustomer},
		}); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := NewUserRepository(db).ExistsByUsername(ctx, "rolled")
	require.NoError(t, err)
	assert.False(t, exists)
}
