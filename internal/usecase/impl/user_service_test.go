package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered, err := env.users.Register(ctx, &usecase.RegisterInput{
		Username:         "alice",
		Email:            "alice@example.com",
		Password:         testPassword,
		RepeatedPassword: testPassword,
		Type:             entity.RoleBusiness,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, entity.RoleBusiness, registered.User.Role())

	loggedIn, err := env.users.Login(ctx, &usecase.LoginInput{Username: "alice", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
	assert.Equal(t, "alice@example.com", loggedIn.User.Email)

	_, err = env.users.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrong-password-1"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = env.users.Login(ctx, &usecase.LoginInput{Username: "nobody", Password: testPassword})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_RegisterRejections(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", entity.RoleCustomer)

	tests := []struct {
		name      string
		input     usecase.RegisterInput
		wantErr   *domainerrors.BaseError
		wantField string
	}{
		{
			name:      "duplicate username",
			input:     usecase.RegisterInput{Username: "alice", Email: "other@example.com", Password: testPassword, RepeatedPassword: testPassword, Type: entity.RoleCustomer},
			wantErr:   domainerrors.ErrDuplicateUsername,
			wantField: "username",
		},
		{
			name:      "duplicate email",
			input:     usecase.RegisterInput{Username: "bob", Email: "alice@example.com", Password: testPassword, RepeatedPassword: testPassword, Type: entity.RoleCustomer},
			wantErr:   domainerrors.ErrDuplicateEmail,
			wantField: "email",
		},
		{
			name:      "password mismatch",
			input:     usecase.RegisterInput{Username: "bob", Email: "bob@example.com", Password: testPassword, RepeatedPassword: testPassword + "x", Type: entity.RoleCustomer},
			wantErr:   domainerrors.ErrPasswordMismatch,
			wantField: "password",
		},
		{
			name:      "numeric password",
			input:     usecase.RegisterInput{Username: "bob", Email: "bob@example.com", Password: "1234567890", RepeatedPassword: "1234567890", Type: entity.RoleCustomer},
			wantErr:   domainerrors.ErrPasswordPolicy,
			wantField: "password",
		},
		{
			name:      "unknown type",
			input:     usecase.RegisterInput{Username: "bob", Email: "bob@example.com", Password: testPassword, RepeatedPassword: testPassword, Type: "admin"},
			wantErr:   domainerrors.ErrValidationFailed,
			wantField: "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.users.Register(context.Background(), &tt.input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Contains(t, domainerrors.FieldsOf(err), tt.wantField)
		})
	}
}

func TestUserService_RefreshAndLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.users.Register(ctx, &usecase.RegisterInput{
		Username:         "carol",
		Email:            "carol@example.com",
		Password:         testPassword,
		RepeatedPassword: testPassword,
		Type:             entity.RoleCustomer,
	})
	require.NoError(t, err)

	refreshed, err := env.users.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: out.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = env.users.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: out.AccessToken})
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid), "access tokens cannot refresh")

	require.NoError(t, env.users.Logout(ctx, &usecase.LogoutInput{RefreshToken: out.RefreshToken}))

	_, err = env.users.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: out.RefreshToken})
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))

	err = env.users.Logout(ctx, &usecase.LogoutInput{RefreshToken: out.RefreshToken})
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestUserService_PromoteAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "dave", entity.RoleCustomer)

	promoted, err := env.users.PromoteAdmin(context.Background(), "dave")
	require.NoError(t, err)
	assert.True(t, promoted.IsStaff)
	assert.Equal(t, entity.RoleCustomer, promoted.Role())

	_, err = env.users.PromoteAdmin(context.Background(), "nobody")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
