package impl

import (
	"context"
	"fmt"
	"log/slog"

	"coderr/config"
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

var offerOrderings = map[string]bool{
	repository.OfferOrderCreatedDesc:  true,
	repository.OfferOrderCreatedAsc:   true,
	repository.OfferOrderUpdatedDesc:  true,
	repository.OfferOrderUpdatedAsc:   true,
	repository.OfferOrderMinPriceAsc:  true,
	repository.OfferOrderMinPriceDesc: true,
}

type offerService struct {
	txManager       repository.TransactionManager
	offerRepo       repository.OfferRepository
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

// OfferServiceParams holds dependencies for OfferService, injected by Fx.
type OfferServiceParams struct {
	fx.In

	Config    *config.Config
	TxManager repository.TransactionManager
	OfferRepo repository.OfferRepository
	Logger    *slog.Logger
}

// NewOfferService creates a new offer service instance.
func NewOfferService(params OfferServiceParams) usecase.OfferUsecase {
	srv := &offerService{
		txManager:       params.TxManager,
		offerRepo:       params.OfferRepo,
		defaultPageSize: config.DefaultPageSize,
		maxPageSize:     config.MaxPageSize,
		logger:          params.Logger,
	}
	if params.Config != nil && params.Config.Pagination != nil {
		srv.defaultPageSize = params.Config.Pagination.DefaultPageSize
		srv.maxPageSize = params.Config.Pagination.MaxPageSize
	}

	return srv
}

func (srv *offerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func tierPatches(inputs []usecase.TierInput) []entity.TierPatch {
	patches := make([]entity.TierPatch, 0, len(inputs))
	for _, in := range inputs {
		patches = append(patches, entity.TierPatch(in))
	}

	return patches
}

// CreateOffer publishes an offer with its tiers for a business caller.
func (srv *offerService) CreateOffer(ctx context.Context, callerID uuid.UUID, input *usecase.CreateOfferInput) (*entity.Offer, error) {
	offer := &entity.Offer{
		UserID:      callerID,
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		if _, err := authorize(ctx, userRepo, callerID, policy.ActionOfferCreate, policy.Subject{}); err != nil {
			return err
		}

		tiers, err := entity.NewTiers(tierPatches(input.Tiers))
		if err != nil {
			return err
		}
		offer.Tiers = tiers

		if err := entity.ValidateNewOffer(offer); err != nil {
			return err
		}

		if err := repoFactory.OfferRepo().Create(ctx, offer); err != nil {
			return errors.Wrap(err, "failed to create offer")
		}

		owner, err := userRepo.FindByID(ctx, callerID)
		if err != nil {
			return errors.Wrap(err, "failed to load offer owner")
		}
		offer.Owner = &entity.UserDetails{
			Username:  owner.Username,
			FirstName: owner.FirstName,
			LastName:  owner.LastName,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Offer creation rejected", slog.Any("callerID", callerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create offer")
	}
	srv.log(ctx).Info("Offer created", slog.Any("offerID", offer.ID), slog.Int("tiers", len(offer.Tiers)))

	return offer, nil
}

// ListOffers returns one page of offers. Pages past the end are NotFound,
// except the first page of an empty result.
func (srv *offerService) ListOffers(ctx context.Context, input *usecase.ListOffersInput) (*usecase.OfferPage, error) {
	if err := srv.validateListInput(input); err != nil {
		return nil, err
	}

	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = srv.defaultPageSize
	}
	pageSize = min(pageSize, srv.maxPageSize)
	page := max(input.Page, 1)

	offers, total, err := srv.offerRepo.List(ctx, repository.OfferFilter{
		CreatorID:       input.CreatorID,
		MinPrice:        input.MinPrice,
		MaxDeliveryTime: input.MaxDeliveryTime,
		Search:          input.Search,
		Ordering:        input.Ordering,
		Page:            page,
		PageSize:        pageSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list offers")
	}

	if page > 1 && int64((page-1)*pageSize) >= total {
		return nil, domainerrors.ErrNotFound.WithDetails("invalid page")
	}

	return &usecase.OfferPage{
		Offers:   offers,
		Count:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (srv *offerService) validateListInput(input *usecase.ListOffersInput) error {
	collector := domainerrors.Validation()
	if input.Ordering != "" {
		collector.Check(offerOrderings[input.Ordering], "ordering", fmt.Sprintf("%q is not a valid ordering", input.Ordering))
	}
	collector.Check(input.Page >= 0, "page", "must be a positive integer")
	collector.Check(input.PageSize >= 0, "page_size", "must be a positive integer")
	if input.MinPrice != nil {
		collector.Check(!input.MinPrice.IsNegative(), "min_price", "must be greater than or equal to 0")
	}
	if input.MaxDeliveryTime != nil {
		collector.Check(*input.MaxDeliveryTime >= 0, "max_delivery_time", "must be greater than or equal to 0")
	}

	return collector.Err()
}

// GetOffer returns an offer with its tiers and current minimums.
func (srv *offerService) GetOffer(ctx context.Context, offerID uuid.UUID) (*entity.Offer, error) {
	offer, err := srv.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("offer")
		}

		return nil, errors.Wrap(err, "failed to get offer")
	}

	return offer, nil
}

// UpdateOffer applies a partial update. When tiers are submitted they are
// reconciled against the stored ones by id in the same transaction.
func (srv *offerService) UpdateOffer(
	ctx context.Context,
	callerID, offerID uuid.UUID,
	input *usecase.UpdateOfferInput,
) (*entity.Offer, error) {
	var updated *entity.Offer

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		actor, err := resolveActor(ctx, repoFactory.UserRepo(), callerID)
		if err != nil {
			return err
		}
		if !actor.Authenticated() {
			return domainerrors.ErrUnauthenticated
		}

		offer, err := offerRepo.FindByID(ctx, offerID)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return domainerrors.ErrNotFound.WithDetails("offer")
			}

			return errors.Wrap(err, "failed to find offer")
		}

		if err := policy.Authorize(policy.ActionOfferUpdate, actor, policy.Subject{OwnerID: offer.UserID}); err != nil {
			return err
		}

		if err := applyOfferPatch(ctx, offerRepo, offer, input); err != nil {
			return err
		}

		updated, err = offerRepo.FindByID(ctx, offerID)
		if err != nil {
			return errors.Wrap(err, "failed to reload offer")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Offer update rejected", slog.Any("offerID", offerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update offer")
	}

	return updated, nil
}

func applyOfferPatch(ctx context.Context, offerRepo repository.OfferRepository, offer *entity.Offer, input *usecase.UpdateOfferInput) error {
	collector := domainerrors.Validation()
	if input.Title != nil {
		collector.Check(*input.Title != "", "title", "this field may not be blank")
		offer.Title = *input.Title
	}
	if input.Description != nil {
		offer.Description = *input.Description
	}
	if input.Image != nil {
		offer.Image = *input.Image
	}

	if err := collector.Err(); err != nil {
		return err
	}

	var changes entity.TierChangeSet
	if input.Tiers != nil {
		var err error
		if changes, err = offer.MergeTiers(tierPatches(input.Tiers)); err != nil {
			return err
		}
	}

	if err := offerRepo.Update(ctx, offer); err != nil {
		return errors.Wrap(err, "failed to update offer fields")
	}

	if input.Tiers == nil {
		return nil
	}

	if err := offerRepo.ApplyTierChanges(ctx, offer.ID, changes); err != nil {
		return errors.Wrap(err, "failed to apply tier changes")
	}

	return nil
}

// DeleteOffer removes an offer and its tiers. Owners and administrators may delete.
func (srv *offerService) DeleteOffer(ctx context.Context, callerID, offerID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		actor, err := requireAuthenticated(ctx, repoFactory.UserRepo(), callerID)
		if err != nil {
			return err
		}

		offer, err := offerRepo.FindByID(ctx, offerID)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return domainerrors.ErrNotFound.WithDetails("offer")
			}

			return errors.Wrap(err, "failed to find offer")
		}

		if err := policy.Authorize(policy.ActionOfferDelete, actor, policy.Subject{OwnerID: offer.UserID}); err != nil {
			return err
		}

		if err := offerRepo.Delete(ctx, offerID); err != nil {
			return errors.Wrap(err, "failed to delete offer")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete offer")
	}
	srv.log(ctx).Info("Offer deleted", slog.Any("offerID", offerID))

	return nil
}

// GetTier returns a single tier.
func (srv *offerService) GetTier(ctx context.Context, tierID uuid.UUID) (*entity.Tier, error) {
	tier, err := srv.offerRepo.FindTierByID(ctx, tierID)
	if err != nil {
		if errors.Is(err, repository.ErrTierNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("offer detail")
		}

		return nil, errors.Wrap(err, "failed to get tier")
	}

	return tier, nil
}
