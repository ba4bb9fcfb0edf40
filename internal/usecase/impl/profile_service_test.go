package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_UpdateOwnProfile(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)

	updated, err := env.profile.UpdateProfile(context.Background(), business.ID, business.ID, &usecase.UpdateProfileInput{
		FirstName:    ptr("Max"),
		Location:     ptr("Berlin"),
		Tel:          ptr("0123456789"),
		WorkingHours: ptr("9-17"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Max", updated.FirstName)
	assert.Equal(t, "Berlin", updated.Profile.Location)
	assert.Equal(t, entity.RoleBusiness, updated.Role())

	stored, err := env.profile.GetProfile(context.Background(), business.ID)
	require.NoError(t, err)
	assert.Equal(t, "9-17", stored.Profile.WorkingHours)
	assert.Equal(t, "studio@example.com", stored.Email)
}

func TestProfileService_UpdateCheckOrder(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner", entity.RoleCustomer)
	stranger := env.register(t, "stranger", entity.RoleBusiness)
	env.register(t, "taken", entity.RoleCustomer)

	tests := []struct {
		name     string
		callerID uuid.UUID
		userID   uuid.UUID
		input    usecase.UpdateProfileInput
		wantErr  *domainerrors.BaseError
	}{
		{"anonymous", uuid.Nil, owner.ID, usecase.UpdateProfileInput{}, domainerrors.ErrUnauthenticated},
		{"missing profile", stranger.ID, uuid.New(), usecase.UpdateProfileInput{}, domainerrors.ErrUserNotFound},
		{"not the owner", stranger.ID, owner.ID, usecase.UpdateProfileInput{Type: ptr("business")}, domainerrors.ErrForbidden},
		{"type change", owner.ID, owner.ID, usecase.UpdateProfileInput{Type: ptr("business")}, domainerrors.ErrValidationFailed},
		{"email taken", owner.ID, owner.ID, usecase.UpdateProfileInput{Email: ptr("taken@example.com")}, domainerrors.ErrDuplicateEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.profile.UpdateProfile(context.Background(), tt.callerID, tt.userID, &tt.input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	stored, err := env.profile.GetProfile(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, stored.Role())
}

func TestProfileService_ListProfiles(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "studio", entity.RoleBusiness)
	env.register(t, "agency", entity.RoleBusiness)
	env.register(t, "buyer", entity.RoleCustomer)

	businesses, err := env.profile.ListProfiles(context.Background(), entity.RoleBusiness)
	require.NoError(t, err)
	assert.Len(t, businesses, 2)

	customers, err := env.profile.ListProfiles(context.Background(), entity.RoleCustomer)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "buyer", customers[0].Username)

	_, err = env.profile.ListProfiles(context.Background(), "admin")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
