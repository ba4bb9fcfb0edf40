package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type profileService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewProfileService creates a new profile service instance.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the user with its profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to get profile")
	}

	return user, nil
}

// UpdateProfile applies a partial update. Checks run in the order
// unauthenticated, missing profile, not the owner, then invalid input.
func (srv *profileService) UpdateProfile(
	ctx context.Context,
	callerID, userID uuid.UUID,
	input *usecase.UpdateProfileInput,
) (*entity.User, error) {
	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		actor, err := requireAuthenticated(ctx, userRepo, callerID)
		if err != nil {
			return err
		}

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find profile")
		}

		if err := policy.Authorize(policy.ActionProfileUpdate, actor, policy.Subject{OwnerID: user.ID}); err != nil {
			return err
		}

		if err := validateProfileUpdate(user, input); err != nil {
			return err
		}

		if input.Email != nil && !strings.EqualFold(*input.Email, user.Email) {
			taken, err := userRepo.ExistsByEmail(ctx, *input.Email)
			if err != nil {
				return errors.Wrap(err, "failed to check email")
			}
			if taken {
				return domainerrors.ErrDuplicateEmail.WithField("email", "a user with this email already exists")
			}
		}

		applyProfileUpdate(user, input)
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}
		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update rejected", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update profile")
	}

	return updated, nil
}

func validateProfileUpdate(user *entity.User, input *usecase.UpdateProfileInput) error {
	collector := domainerrors.Validation()
	if input.Type != nil {
		collector.Check(entity.Role(*input.Type) == user.Role(), "type", "the profile type cannot be changed")
	}
	if input.Email != nil {
		collector.Check(strings.TrimSpace(*input.Email) != "", "email", "this field may not be blank")
	}

	return collector.Err()
}

func applyProfileUpdate(user *entity.User, input *usecase.UpdateProfileInput) {
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	assign(&user.FirstName, input.FirstName)
	assign(&user.LastName, input.LastName)
	assign(&user.Email, input.Email)

	if user.Profile == nil {
		user.Profile = &entity.Profile{UserID: user.ID}
	}
	assign(&user.Profile.File, input.File)
	assign(&user.Profile.Location, input.Location)
	assign(&user.Profile.Tel, input.Tel)
	assign(&user.Profile.Description, input.Description)
	assign(&user.Profile.WorkingHours, input.WorkingHours)
}

// ListProfiles returns every user whose profile carries role.
func (srv *profileService) ListProfiles(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithField("type", "must be one of customer, business")
	}

	users, err := srv.userRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list profiles")
	}

	return users, nil
}
