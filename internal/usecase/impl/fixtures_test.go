package impl

import (
	"context"
	"log/slog"
	"testing"

	"coderr/config"
	"coderr/internal/domain/entity"
	"coderr/internal/infra/auth"
	"coderr/internal/infra/persistence/postgres"
	"coderr/internal/infra/persistence/testdb"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "tangerine-Orbit-42"

type testEnv struct {
	db      *gorm.DB
	users   usecase.UserUsecase
	profile usecase.ProfileUsecase
	offers  usecase.OfferUsecase
	orders  usecase.OrderUsecase
	reviews usecase.ReviewUsecase
	stats   usecase.StatsUsecase
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:       8,
			MaxLength:       128,
			CheckSimilarity: true,
		},
		Pagination: &config.PaginationConfig{DefaultPageSize: 6, MaxPageSize: 100},
	}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	return cfg
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testdb.Open(t)
	cfg := newTestConfig()
	logger := slog.New(slog.DiscardHandler)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	txManager := postgres.NewTransactionManager(db)
	userRepo := postgres.NewUserRepository(db)

	return &testEnv{
		db: db,
		users: NewUserService(UserServiceParams{
			TxManager:        txManager,
			UserRepo:         userRepo,
			AuthRepo:         postgres.NewAuthRepository(db),
			RefreshTokenRepo: postgres.NewRefreshTokenRepository(db),
			Hasher:           auth.NewBcryptHasher(cfg),
			TokenService:     tokens,
			Logger:           logger,
		}),
		profile: NewProfileService(ProfileServiceParams{
			TxManager: txManager,
			UserRepo:  userRepo,
			Logger:    logger,
		}),
		offers: NewOfferService(OfferServiceParams{
			Config:    cfg,
			TxManager: txManager,
			OfferRepo: postgres.NewOfferRepository(db),
			Logger:    logger,
		}),
		orders: NewOrderService(OrderServiceParams{
			TxManager: txManager,
			UserRepo:  userRepo,
			OrderRepo: postgres.NewOrderRepository(db),
			Logger:    logger,
		}),
		reviews: NewReviewService(ReviewServiceParams{
			TxManager:  txManager,
			ReviewRepo: postgres.NewReviewRepository(db),
			Logger:     logger,
		}),
		stats: NewStatsService(StatsServiceParams{
			StatsRepo: postgres.NewStatsRepository(db),
			Logger:    logger,
		}),
	}
}

// register creates an account through the service and returns the stored user.
func (env *testEnv) register(t *testing.T, username string, role entity.Role) *entity.User {
	t.Helper()

	out, err := env.users.Register(context.Background(), &usecase.RegisterInput{
		Username:         username,
		Email:            username + "@example.com",
		Password:         testPassword,
		RepeatedPassword: testPassword,
		Type:             role,
	})
	require.NoError(t, err)

	return out.User
}

func tierInput(title, price string, days int, offerType entity.OfferType) usecase.TierInput {
	return usecase.TierInput{
		Title:              ptr(title),
		Revisions:          ptr(3),
		DeliveryTimeInDays: ptr(days),
		Price:              ptr(decimal.RequireFromString(price)),
		Features:           []string{"Logo design", "Visitenkarte"},
		OfferType:          ptr(offerType),
	}
}

func defaultTierInputs() []usecase.TierInput {
	return []usecase.TierInput{
		tierInput("Basic Design", "100", 5, entity.OfferTypeBasic),
		tierInput("Standard Design", "160", 7, entity.OfferTypeStandard),
		tierInput("Premium Design", "230", 10, entity.OfferTypePremium),
	}
}

func (env *testEnv) createOffer(t *testing.T, ownerID uuid.UUID, title string) *entity.Offer {
	t.Helper()

	offer, err := env.offers.CreateOffer(context.Background(), ownerID, &usecase.CreateOfferInput{
		Title:       title,
		Description: "Description of " + title,
		Tiers:       defaultTierInputs(),
	})
	require.NoError(t, err)

	return offer
}

func ptr[T any](v T) *T {
	return &v
}
