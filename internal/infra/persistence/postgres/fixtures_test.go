package postgres

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	"coderr/internal/infra/persistence/testdb"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	return testdb.Open(t)
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "First " + username,
		LastName:  "Last " + username,
		Profile:   &entity.Profile{Role: role},
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))

	return user
}

func tier(title string, price string, days int, offerType entity.OfferType) *entity.Tier {
	return &entity.Tier{
		Title:              title,
		Revisions:          2,
		DeliveryTimeInDays: days,
		Price:              decimal.RequireFromString(price),
		Features:           []string{"source files"},
		OfferType:          offerType,
	}
}

func createTestOffer(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string, tiers ...*entity.Tier) *entity.Offer {
	t.Helper()

	if len(tiers) == 0 {
		tiers = []*entity.Tier{
			tier("Basic", "100.00", 7, entity.OfferTypeBasic),
			tier("Standard", "200.00", 5, entity.OfferTypeStandard),
			tier("Premium", "300.00", 3, entity.OfferTypePremium),
		}
	}
	offer := &entity.Offer{
		UserID:      ownerID,
		Title:       title,
		Description: "Description of " + title,
		Tiers:       tiers,
	}
	require.NoError(t, NewOfferRepository(db).Create(context.Background(), offer))

	return offer
}
