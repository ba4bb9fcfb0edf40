package impl

import (
	"context"
	"fmt"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferService_CreateOffer(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)

	offer := env.createOffer(t, business.ID, "Grafikdesign-Paket")

	require.Len(t, offer.Tiers, 3)
	for _, tier := range offer.Tiers {
		assert.NotEqual(t, uuid.Nil, tier.ID)
	}
	require.NotNil(t, offer.MinPrice)
	assert.True(t, offer.MinPrice.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 5, *offer.MinDeliveryTime)
	require.NotNil(t, offer.Owner)
	assert.Equal(t, "studio", offer.Owner.Username)
}

func TestOfferService_CreateOfferRejections(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	customer := env.register(t, "buyer", entity.RoleCustomer)

	tests := []struct {
		name     string
		callerID uuid.UUID
		tiers    []usecase.TierInput
		wantErr  *domainerrors.BaseError
	}{
		{"anonymous", uuid.Nil, defaultTierInputs(), domainerrors.ErrUnauthenticated},
		{"customer", customer.ID, defaultTierInputs(), domainerrors.ErrForbidden},
		{"two tiers", business.ID, defaultTierInputs()[:2], domainerrors.ErrInsufficientTiers},
		{
			"negative price",
			business.ID,
			append(defaultTierInputs()[:2], tierInput("Broken", "-5", 1, entity.OfferTypePremium)),
			domainerrors.ErrValidationFailed,
		},
		{
			"tier without price",
			business.ID,
			append(defaultTierInputs()[:2], usecase.TierInput{
				Title:              ptr("Premium"),
				Revisions:          ptr(1),
				DeliveryTimeInDays: ptr(3),
				OfferType:          ptr(entity.OfferTypePremium),
			}),
			domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.offers.CreateOffer(context.Background(), tt.callerID, &usecase.CreateOfferInput{
				Title: "Offer",
				Tiers: tt.tiers,
			})

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	page, err := env.offers.ListOffers(context.Background(), &usecase.ListOffersInput{})
	require.NoError(t, err)
	assert.Zero(t, page.Count, "rejected offers must not be persisted")
}

func TestOfferService_ListOffersPaging(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	for i := range 8 {
		env.createOffer(t, business.ID, fmt.Sprintf("Offer %d", i))
	}
	ctx := context.Background()

	first, err := env.offers.ListOffers(ctx, &usecase.ListOffersInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 8, first.Count)
	assert.Len(t, first.Offers, 6)
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())

	second, err := env.offers.ListOffers(ctx, &usecase.ListOffersInput{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Offers, 2)
	assert.False(t, second.HasNext())
	assert.True(t, second.HasPrevious())

	_, err = env.offers.ListOffers(ctx, &usecase.ListOffersInput{Page: 3})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	_, err = env.offers.ListOffers(ctx, &usecase.ListOffersInput{Ordering: "title"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	assert.Contains(t, domainerrors.FieldsOf(err), "ordering")

	capped, err := env.offers.ListOffers(ctx, &usecase.ListOffersInput{PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100, capped.PageSize)
}

func TestOfferService_UpdateOfferMergesTiers(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	offer := env.createOffer(t, business.ID, "Logo")
	basic, standard := offer.Tiers[0], offer.Tiers[1]

	edited := tierInput("Basic v2", "120", 4, entity.OfferTypeBasic)
	edited.ID = basic.ID
	renamed := tierInput("Standard v2", "170", 6, entity.OfferTypeStandard)
	renamed.ID = standard.ID

	updated, err := env.offers.UpdateOffer(context.Background(), business.ID, offer.ID, &usecase.UpdateOfferInput{
		Title: ptr("Logo Deluxe"),
		Tiers: []usecase.TierInput{edited, renamed},
	})
	require.NoError(t, err)

	assert.Equal(t, "Logo Deluxe", updated.Title)
	require.Len(t, updated.Tiers, 2, "the untouched premium tier is pruned")
	titles := []string{updated.Tiers[0].Title, updated.Tiers[1].Title}
	assert.ElementsMatch(t, []string{"Basic v2", "Standard v2"}, titles)
	assert.True(t, updated.MinPrice.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, 4, *updated.MinDeliveryTime)

	_, err = env.offers.GetTier(context.Background(), offer.Tiers[2].ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestOfferService_UpdateOfferPatchesOnlySentTierFields(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	offer := env.createOffer(t, business.ID, "Logo")
	basic, standard, premium := offer.Tiers[0], offer.Tiers[1], offer.Tiers[2]
	ctx := context.Background()

	updated, err := env.offers.UpdateOffer(ctx, business.ID, offer.ID, &usecase.UpdateOfferInput{
		Tiers: []usecase.TierInput{
			{ID: basic.ID, Price: ptr(decimal.NewFromInt(500))},
			{ID: standard.ID},
			{ID: premium.ID, Title: ptr("Premium v2")},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Tiers, 3)

	repriced, err := env.offers.GetTier(ctx, basic.ID)
	require.NoError(t, err)
	assert.True(t, repriced.Price.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "Basic Design", repriced.Title)
	assert.Equal(t, 3, repriced.Revisions)
	assert.Equal(t, 5, repriced.DeliveryTimeInDays)
	assert.Equal(t, []string{"Logo design", "Visitenkarte"}, repriced.Features)
	assert.Equal(t, entity.OfferTypeBasic, repriced.OfferType)

	renamed, err := env.offers.GetTier(ctx, premium.ID)
	require.NoError(t, err)
	assert.Equal(t, "Premium v2", renamed.Title)
	assert.Equal(t, 10, renamed.DeliveryTimeInDays)
	assert.True(t, renamed.Price.Equal(decimal.NewFromInt(230)))

	assert.True(t, updated.MinPrice.Equal(decimal.NewFromInt(160)))
	assert.Equal(t, 5, *updated.MinDeliveryTime)
}

func TestOfferService_UpdateOfferRejectsIncompleteNewTier(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	offer := env.createOffer(t, business.ID, "Logo")
	ctx := context.Background()

	_, err := env.offers.UpdateOffer(ctx, business.ID, offer.ID, &usecase.UpdateOfferInput{
		Tiers: []usecase.TierInput{
			{ID: offer.Tiers[0].ID},
			{Title: ptr("Express"), OfferType: ptr(entity.OfferTypePremium)},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	fields := domainerrors.FieldsOf(err)
	assert.Contains(t, fields, "details[1].price")
	assert.Contains(t, fields, "details[1].delivery_time_in_days")

	stored, err := env.offers.GetOffer(ctx, offer.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Tiers, 3, "a rejected merge must not prune tiers")
}

func TestOfferService_UpdateOfferWithoutTiersKeepsThem(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	offer := env.createOffer(t, business.ID, "Logo")

	updated, err := env.offers.UpdateOffer(context.Background(), business.ID, offer.ID, &usecase.UpdateOfferInput{
		Description: ptr("Now with vectors"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Now with vectors", updated.Description)
	assert.Len(t, updated.Tiers, 3)
}

func TestOfferService_NonOwnerCannotUpdate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "studio", entity.RoleBusiness)
	rival := env.register(t, "rival", entity.RoleBusiness)
	offer := env.createOffer(t, owner.ID, "Logo")
	ctx := context.Background()

	_, err := env.offers.UpdateOffer(ctx, rival.ID, offer.ID, &usecase.UpdateOfferInput{Title: ptr("Hijacked")})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	_, err = env.offers.UpdateOffer(ctx, rival.ID, uuid.New(), &usecase.UpdateOfferInput{Title: ptr("Missing")})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	stored, err := env.offers.GetOffer(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Logo", stored.Title)
}

func TestOfferService_DeleteOffer(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "studio", entity.RoleBusiness)
	rival := env.register(t, "rival", entity.RoleBusiness)
	admin := env.register(t, "root", entity.RoleCustomer)
	_, err := env.users.PromoteAdmin(context.Background(), "root")
	require.NoError(t, err)
	ctx := context.Background()

	first := env.createOffer(t, owner.ID, "First")
	second := env.createOffer(t, owner.ID, "Second")

	err = env.offers.DeleteOffer(ctx, rival.ID, first.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	require.NoError(t, env.offers.DeleteOffer(ctx, owner.ID, first.ID))
	require.NoError(t, env.offers.DeleteOffer(ctx, admin.ID, second.ID))

	_, err = env.offers.GetOffer(ctx, first.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	_, err = env.offers.GetTier(ctx, second.Tiers[0].ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
