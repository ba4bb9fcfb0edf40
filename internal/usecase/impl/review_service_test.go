package impl

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/errors"
	"coderr/internal/infra/persistence/postgres"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestReviewService_CreateReview(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	customer := env.register(t, "buyer", entity.RoleCustomer)
	otherCustomer := env.register(t, "shopper", entity.RoleCustomer)
	ctx := context.Background()

	review, err := env.reviews.CreateReview(ctx, customer.ID, &usecase.CreateReviewInput{
		BusinessUserID: business.ID,
		Rating:         4,
		Description:    "Alles war toll!",
	})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, review.ReviewerID)

	tests := []struct {
		name     string
		callerID uuid.UUID
		input    usecase.CreateReviewInput
		wantErr  *domainerrors.BaseError
	}{
		{"second review", customer.ID, usecase.CreateReviewInput{BusinessUserID: business.ID, Rating: 5}, domainerrors.ErrDuplicateReview},
		{"business reviewer", business.ID, usecase.CreateReviewInput{BusinessUserID: business.ID, Rating: 5}, domainerrors.ErrForbidden},
		{"rating too high", otherCustomer.ID, usecase.CreateReviewInput{BusinessUserID: business.ID, Rating: 6}, domainerrors.ErrInvalidRating},
		{"rating zero", otherCustomer.ID, usecase.CreateReviewInput{BusinessUserID: business.ID, Rating: 0}, domainerrors.ErrInvalidRating},
		{"missing business", otherCustomer.ID, usecase.CreateReviewInput{BusinessUserID: uuid.New(), Rating: 3}, domainerrors.ErrNotFound},
		{"customer target", otherCustomer.ID, usecase.CreateReviewInput{BusinessUserID: customer.ID, Rating: 3}, domainerrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.reviews.CreateReview(ctx, tt.callerID, &tt.input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestReviewService_ParallelCreatesYieldOneReview(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	customer := env.register(t, "buyer", entity.RoleCustomer)

	var created, duplicates atomic.Int32
	var group errgroup.Group
	for range 2 {
		group.Go(func() error {
			_, err := env.reviews.CreateReview(context.Background(), customer.ID, &usecase.CreateReviewInput{
				BusinessUserID: business.ID,
				Rating:         5,
			})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, domainerrors.ErrDuplicateReview):
				duplicates.Add(1)
			default:
				return err
			}

			return nil
		})
	}
	require.NoError(t, group.Wait())

	assert.EqualValues(t, 1, created.Load())
	assert.EqualValues(t, 1, duplicates.Load())
}

// blindReviewRepo hides existing reviews so that Create is the only guard left.
type blindReviewRepo struct {
	repository.ReviewRepository
}

func (blindReviewRepo) ExistsForPair(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

type blindReviewFactory struct {
	repository.RepositoryFactory
}

func (f blindReviewFactory) ReviewRepo() repository.ReviewRepository {
	return blindReviewRepo{f.RepositoryFactory.ReviewRepo()}
}

type blindReviewTxManager struct {
	repository.TransactionManager
}

func (m blindReviewTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.TransactionManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return fn(blindReviewFactory{factory})
	})
}

func TestReviewService_UniqueIndexRejectsDuplicateReview(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	customer := env.register(t, "buyer", entity.RoleCustomer)
	ctx := context.Background()

	reviews := NewReviewService(ReviewServiceParams{
		TxManager:  blindReviewTxManager{postgres.NewTransactionManager(env.db)},
		ReviewRepo: blindReviewRepo{postgres.NewReviewRepository(env.db)},
		Logger:     slog.New(slog.DiscardHandler),
	})

	_, err := reviews.CreateReview(ctx, customer.ID, &usecase.CreateReviewInput{BusinessUserID: business.ID, Rating: 5})
	require.NoError(t, err)

	_, err = reviews.CreateReview(ctx, customer.ID, &usecase.CreateReviewInput{BusinessUserID: business.ID, Rating: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateReview), "got %v", err)

	list, err := env.reviews.ListReviews(ctx, &usecase.ListReviewsInput{BusinessUserID: &business.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Rating)
}

func TestReviewService_UpdateDeleteAndList(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	customer := env.register(t, "buyer", entity.RoleCustomer)
	stranger := env.register(t, "shopper", entity.RoleCustomer)
	ctx := context.Background()

	review, err := env.reviews.CreateReview(ctx, customer.ID, &usecase.CreateReviewInput{BusinessUserID: business.ID, Rating: 2})
	require.NoError(t, err)
	_, err = env.reviews.CreateReview(ctx, stranger.ID, &usecase.CreateReviewInput{BusinessUserID: business.ID, Rating: 5})
	require.NoError(t, err)

	_, err = env.reviews.UpdateReview(ctx, stranger.ID, review.ID, &usecase.UpdateReviewInput{Rating: ptr(1)})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	_, err = env.reviews.UpdateReview(ctx, customer.ID, review.ID, &usecase.UpdateReviewInput{Rating: ptr(9)})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidRating))

	updated, err := env.reviews.UpdateReview(ctx, customer.ID, review.ID, &usecase.UpdateReviewInput{
		Rating:      ptr(3),
		Description: ptr("Better than expected"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
	assert.Equal(t, "Better than expected", updated.Description)

	byRating, err := env.reviews.ListReviews(ctx, &usecase.ListReviewsInput{
		BusinessUserID: &business.ID,
		Ordering:       "-rating",
	})
	require.NoError(t, err)
	require.Len(t, byRating, 2)
	assert.Equal(t, 5, byRating[0].Rating)

	mine, err := env.reviews.ListReviews(ctx, &usecase.ListReviewsInput{ReviewerID: &customer.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = env.reviews.ListReviews(ctx, &usecase.ListReviewsInput{Ordering: "created_at"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	err = env.reviews.DeleteReview(ctx, stranger.ID, review.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	require.NoError(t, env.reviews.DeleteReview(ctx, customer.ID, review.ID))

	_, err = env.reviews.GetReview(ctx, review.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
