package postgres

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferRepository_CreateAndFindByID(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "studio", entity.RoleBusiness)
	offer := createTestOffer(t, db, owner.ID, "Logo design")

	for _, tier := range offer.Tiers {
		assert.NotEqual(t, uuid.Nil, tier.ID)
		assert.Equal(t, offer.ID, tier.OfferID)
	}

	found, err := NewOfferRepository(db).FindByID(context.Background(), offer.ID)
	require.NoError(t, err)
	require.Len(t, found.Tiers, 3)
	assert.Equal(t, []string{"source files"}, found.Tiers[0].Features)
	require.NotNil(t, found.MinPrice)
	assert.True(t, found.MinPrice.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, found.MinDeliveryTime)
	assert.Equal(t, 3, *found.MinDeliveryTime)
	require.NotNil(t, found.Owner)
	assert.Equal(t, "studio", found.Owner.Username)
}

func TestOfferRepository_FindByIDNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewOfferRepository(db).FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrOfferNotFound)
}

func TestOfferRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	first := createTestUser(t, db, "first", entity.RoleBusiness)
	second := createTestUser(t, db, "second", entity.RoleBusiness)

	cheap := createTestOffer(t, db, first.ID, "Cheap website",
		tier("Basic", "10.00", 10, entity.OfferTypeBasic),
		tier("Standard", "20.00", 9, entity.OfferTypeStandard),
		tier("Premium", "30.00", 8, entity.OfferTypePremium),
	)
	pricey := createTestOffer(t, db, second.ID, "Premium branding",
		tier("Basic", "500.00", 2, entity.OfferTypeBasic),
		tier("Standard", "750.50", 4, entity.OfferTypeStandard),
		tier("Premium", "999.99", 6, entity.OfferTypePremium),
	)

	tests := []struct {
		name   string
		filter repository.OfferFilter
		want   []uuid.UUID
	}{
		{
			name:   "creator",
			filter: repository.OfferFilter{CreatorID: &first.ID},
			want:   []uuid.UUID{cheap.ID},
		},
		{
			name:   "any tier at or above min price",
			filter: repository.OfferFilter{MinPrice: ptr(decimal.RequireFromString("30"))},
			want:   []uuid.UUID{pricey.ID, cheap.ID},
		},
		{
			name:   "min price above every cheap tier",
			filter: repository.OfferFilter{MinPrice: ptr(decimal.RequireFromString("31"))},
			want:   []uuid.UUID{pricey.ID},
		},
		{
			name:   "any tier within max delivery time",
			filter: repository.OfferFilter{MaxDeliveryTime: ptr(7)},
			want:   []uuid.UUID{pricey.ID},
		},
		{
			name:   "search is case insensitive over title and description",
			filter: repository.OfferFilter{Search: "WEBSITE"},
			want:   []uuid.UUID{cheap.ID},
		},
		{
			name:   "ordering by minimum price",
			filter: repository.OfferFilter{Ordering: repository.OfferOrderMinPriceAsc},
			want:   []uuid.UUID{cheap.ID, pricey.ID},
		},
		{
			name:   "ordering by minimum price descending",
			filter: repository.OfferFilter{Ordering: repository.OfferOrderMinPriceDesc},
			want:   []uuid.UUID{pricey.ID, cheap.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offers, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)

			got := make([]uuid.UUID, 0, len(offers))
			for _, offer := range offers {
				got = append(got, offer.ID)
			}
			if tt.filter.Ordering == "" {
				assert.ElementsMatch(t, tt.want, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestOfferRepository_ListSearchMatchesWildcardsLiterally(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "wildcards", entity.RoleBusiness)

	discount := createTestOffer(t, db, owner.ID, "50% off logo")
	underscore := createTestOffer(t, db, owner.ID, "Logo_pack")
	createTestOffer(t, db, owner.ID, "Logo-pack")

	tests := []struct {
		search string
		want   []uuid.UUID
	}{
		{"%", []uuid.UUID{discount.ID}},
		{"o_p", []uuid.UUID{underscore.ID}},
		{`\`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			offers, total, err := repo.List(ctx, repository.OfferFilter{Search: tt.search})
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)

			got := make([]uuid.UUID, 0, len(offers))
			for _, offer := range offers {
				got = append(got, offer.ID)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestOfferRepository_ListAggregatesAndPages(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "pager", entity.RoleBusiness)
	for _, title := range []string{"One", "Two", "Three"} {
		createTestOffer(t, db, owner.ID, title)
	}
	// An offer left without tiers reports null minimums.
	empty := &model.OfferModel{UserID: owner.ID, Title: "Empty"}
	require.NoError(t, db.Create(empty).Error)

	offers, total, err := repo.List(ctx, repository.OfferFilter{
		Ordering: repository.OfferOrderMinPriceAsc,
		Page:     1,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, offers, 2)

	all, _, err := repo.List(ctx, repository.OfferFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for _, offer := range all {
		if offer.ID == empty.ID {
			assert.Nil(t, offer.MinPrice)
			assert.Nil(t, offer.MinDeliveryTime)

			continue
		}
		require.NotNil(t, offer.MinPrice)
		assert.True(t, offer.MinPrice.Equal(decimal.NewFromInt(100)))
		require.NotNil(t, offer.MinDeliveryTime)
		assert.Equal(t, 3, *offer.MinDeliveryTime)
		require.NotNil(t, offer.Owner)
		assert.Equal(t, "pager", offer.Owner.Username)
	}

	lastPage, _, err := repo.List(ctx, repository.OfferFilter{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, lastPage, 1)
}

func TestOfferRepository_ApplyTierChanges(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "merger", entity.RoleBusiness)
	offer := createTestOffer(t, db, owner.ID, "Mergeable")
	basicID := offer.Tiers[0].ID

	changes, err := offer.MergeTiers([]entity.TierPatch{
		{ID: basicID, Title: ptr("Basic v2"), Revisions: ptr(1), DeliveryTimeInDays: ptr(1), Price: ptr(decimal.RequireFromString("55.50")), Features: []string{"a", "b"}},
		{Title: ptr("Express"), Revisions: ptr(0), DeliveryTimeInDays: ptr(0), Price: ptr(decimal.RequireFromString("80")), OfferType: ptr(entity.OfferTypePremium)},
	})
	require.NoError(t, err)
	require.NoError(t, repo.ApplyTierChanges(ctx, offer.ID, changes))
	require.NotEqual(t, uuid.Nil, changes.Created[0].ID)

	reloaded, err := repo.FindByID(ctx, offer.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Tiers, 2)

	byID := map[uuid.UUID]*entity.Tier{}
	for _, tier := range reloaded.Tiers {
		byID[tier.ID] = tier
	}
	require.Contains(t, byID, basicID)
	assert.Equal(t, "Basic v2", byID[basicID].Title)
	assert.Equal(t, []string{"a", "b"}, byID[basicID].Features)
	assert.True(t, byID[basicID].Price.Equal(decimal.RequireFromString("55.5")))
	require.Contains(t, byID, changes.Created[0].ID)
	assert.Equal(t, 0, *reloaded.MinDeliveryTime)
	assert.True(t, reloaded.MinPrice.Equal(decimal.RequireFromString("55.5")))
	assert.False(t, reloaded.UpdatedAt.Before(offer.UpdatedAt))
}

func TestOfferRepository_DeleteRemovesTiers(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "deleter", entity.RoleBusiness)
	offer := createTestOffer(t, db, owner.ID, "Short lived")
	tierID := offer.Tiers[0].ID

	require.NoError(t, repo.Delete(ctx, offer.ID))

	_, err := repo.FindByID(ctx, offer.ID)
	assert.ErrorIs(t, err, repository.ErrOfferNotFound)
	_, err = repo.FindTierByID(ctx, tierID)
	assert.ErrorIs(t, err, repository.ErrTierNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, offer.ID), repository.ErrOfferNotFound)
}

func TestOfferRepository_UpdateOwnColumns(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "editor", entity.RoleBusiness)
	offer := createTestOffer(t, db, owner.ID, "Before")

	offer.Title = "After"
	offer.Description = ""
	require.NoError(t, repo.Update(ctx, offer))

	reloaded, err := repo.FindByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", reloaded.Title)
	assert.Empty(t, reloaded.Description)
	assert.Len(t, reloaded.Tiers, 3)

	assert.ErrorIs(t, repo.Update(ctx, &entity.Offer{ID: uuid.New(), Title: "x"}), repository.ErrOfferNotFound)
}

func ptr[T any](v T) *T {
	return &v
}
