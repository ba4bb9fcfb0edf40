package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	authRepo         repository.AuthRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	AuthRepo         repository.AuthRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		authRepo:         params.AuthRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the user, its profile and its password credential in one
// transaction, then opens a session for the new account.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username), slog.Any("type", input.Type))

	if err := validateRegistration(input); err != nil {
		return nil, err
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password, input.Username, input.Email); err != nil {
		srv.log(ctx).Warn("Password rejected during registration", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "password does not meet security requirements")
	}

	// Hash outside the transaction; bcrypt is CPU-bound.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registered *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := checkAccountAvailable(ctx, userRepo, input.Username, input.Email); err != nil {
			return err
		}

		newUser := &entity.User{
			Username: input.Username,
			Email:    input.Email,
			Profile:  &entity.Profile{Role: input.Type},
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		credential := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypePassword,
			ProviderUserID: newUser.Username,
			PasswordHash:   passwordHash,
		}
		if err := repoFactory.AuthRepo().CreateAuthentication(ctx, credential); err != nil {
			return errors.Wrap(err, "failed to create authentication during registration")
		}
		registered = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	output, err := srv.openSession(ctx, registered)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registered.ID))

	return output, nil
}

func validateRegistration(input *usecase.RegisterInput) error {
	collector := domainerrors.Validation()
	collector.Check(strings.TrimSpace(input.Username) != "", "username", "this field is required")
	collector.Check(strings.TrimSpace(input.Email) != "", "email", "this field is required")
	collector.Check(input.Password != "", "password", "this field is required")
	collector.Check(input.Type.IsValid(), "type", "must be one of customer, business")
	if err := collector.Err(); err != nil {
		return err
	}

	if input.Password != input.RepeatedPassword {
		return domainerrors.ErrPasswordMismatch.WithField("password", "passwords do not match")
	}

	return nil
}

func checkAccountAvailable(ctx context.Context, userRepo repository.UserRepository, username, email string) error {
	taken, err := userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return errors.Wrap(err, "failed to check username")
	}
	if taken {
		return domainerrors.ErrDuplicateUsername.WithField("username", "a user with that username already exists")
	}

	taken, err = userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return errors.Wrap(err, "failed to check email")
	}
	if taken {
		return domainerrors.ErrDuplicateEmail.WithField("email", "a user with this email already exists")
	}

	return nil
}

// Login verifies the password credential and opens a session.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("username", input.Username))

	credential, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypePassword, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.String("reason", "unknown username"))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	if !srv.hasher.Check(input.Password, credential.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.String("reason", "password mismatch"))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	user, err := srv.userRepo.FindByID(ctx, credential.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load login user")
	}

	output, err := srv.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return output, nil
}

// openSession issues a token pair and stores the hash of the refresh token.
func (srv *userService) openSession(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, roleClaims(user))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	session := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	if err := srv.refreshTokenRepo.CreateRefreshToken(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &usecase.AuthOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// roleClaims is informational only; authorization always re-reads the profile.
func roleClaims(user *entity.User) []string {
	if role := user.Role(); role.IsValid() {
		return []string{role.String()}
	}

	return nil
}

// RefreshToken issues a new access token for a stored, unexpired refresh token.
// The refresh token itself is not rotated.
func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Info("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateToken(input.RefreshToken)
	if err != nil || claims.Type != service.TokenTypeRefresh {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	if _, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, srv.tokenService.HashToken(input.RefreshToken)); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	accessToken, _, err := srv.tokenService.GenerateTokens(user.ID, roleClaims(user))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate new access token")
	}

	return &usecase.RefreshTokenOutput{AccessToken: accessToken}, nil
}

// Logout ends the session identified by the refresh token.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	if _, err := srv.tokenService.ValidateToken(input.RefreshToken); err != nil {
		// An invalid or expired token may still have a stored row worth deleting.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, srv.tokenService.HashToken(input.RefreshToken)); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return domainerrors.ErrRefreshTokenInvalid
		}

		return errors.Wrap(err, "failed to delete refresh token")
	}
	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// PromoteAdmin sets the administrator flag on the named account.
func (srv *userService) PromoteAdmin(ctx context.Context, username string) (*entity.User, error) {
	var promoted *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WithDetails(username)
			}

			return errors.Wrap(err, "failed to find user")
		}

		user.IsStaff = true
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}
		promoted = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to promote user")
	}
	srv.log(ctx).Info("User promoted to administrator", slog.Any("userID", promoted.ID))

	return promoted, nil
}
