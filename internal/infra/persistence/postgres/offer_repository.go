package postgres

import (
	"context"
	"strings"
	"time"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	minPriceSubquery        = "(SELECT MIN(t.price) FROM offer_tiers t WHERE t.offer_id = offers.id)"
	minDeliveryTimeSubquery = "(SELECT MIN(t.delivery_time_in_days) FROM offer_tiers t WHERE t.offer_id = offers.id)"
)

// offerOrderings whitelists the ORDER BY clauses reachable from a listing request.
var offerOrderings = map[string]string{
	repository.OfferOrderCreatedDesc:  "offers.created_at DESC, offers.id DESC",
	repository.OfferOrderCreatedAsc:   "offers.created_at ASC, offers.id ASC",
	repository.OfferOrderUpdatedDesc:  "offers.updated_at DESC, offers.id DESC",
	repository.OfferOrderUpdatedAsc:   "offers.updated_at ASC, offers.id ASC",
	repository.OfferOrderMinPriceAsc:  "min_price ASC, offers.id ASC",
	repository.OfferOrderMinPriceDesc: "min_price DESC, offers.id DESC",
}

func orderTiers(db *gorm.DB) *gorm.DB {
	return db.Order("offer_tiers.created_at ASC, offer_tiers.id ASC")
}

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository is the constructor for offerRepository.
func NewOfferRepository(db *gorm.DB) repository.OfferRepository {
	return &offerRepository{db: db}
}

// Create inserts the offer and, through the association, all of its tiers.
func (repo *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	offerM := fromOfferDomain(offer)

	if err := repo.db.WithContext(ctx).Create(offerM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WithDetails("offer owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create offer")
	}

	offer.ID = offerM.ID
	offer.CreatedAt = offerM.CreatedAt
	offer.UpdatedAt = offerM.UpdatedAt
	for i := range offerM.Tiers {
		offer.Tiers[i].ID = offerM.Tiers[i].ID
		offer.Tiers[i].OfferID = offerM.ID
	}
	offer.ComputeMinimums()

	return nil
}

// FindByID loads the offer with its tiers and owner; minimums are derived from the loaded tiers.
func (repo *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offerM model.OfferModel
	err := repo.db.WithContext(ctx).
		Preload("Tiers", orderTiers).
		Preload("User").
		Where("offers.id = ?", id).
		First(&offerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer")
	}

	offer := toOfferDomain(&offerM)
	offer.ComputeMinimums()

	return offer, nil
}

// List pages through offers matching filter. Minimums come from correlated
// aggregate subqueries, so they always reflect the current tiers.
func (repo *offerRepository) List(ctx context.Context, filter repository.OfferFilter) ([]*entity.Offer, int64, error) {
	var total int64
	if err := repo.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count offers")
	}

	ordering, ok := offerOrderings[filter.Ordering]
	if !ok {
		ordering = offerOrderings[repository.OfferOrderCreatedDesc]
	}

	query := repo.filtered(ctx, filter).
		Select("offers.*, " + minPriceSubquery + " AS min_price, " + minDeliveryTimeSubquery + " AS min_delivery_time").
		Preload("Tiers", orderTiers).
		Preload("User").
		Order(ordering)
	if filter.PageSize > 0 {
		page := max(filter.Page, 1)
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var offerModels []*model.OfferModel
	if err := query.Find(&offerModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list offers")
	}

	offers := make([]*entity.Offer, 0, len(offerModels))
	for _, offerM := range offerModels {
		offer := toOfferDomain(offerM)
		if offerM.MinPrice.Valid {
			price := offerM.MinPrice.Decimal
			offer.MinPrice = &price
		}
		if offerM.MinDeliveryTime.Valid {
			days := int(offerM.MinDeliveryTime.Int64)
			offer.MinDeliveryTime = &days
		}
		offers = append(offers, offer)
	}

	return offers, total, nil
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// filtered builds a fresh statement carrying the WHERE clauses of filter, so
// the count and the page query never share statement state.
func (repo *offerRepository) filtered(ctx context.Context, filter repository.OfferFilter) *gorm.DB {
	db := repo.db.WithContext(ctx).Model(&model.OfferModel{})

	if filter.CreatorID != nil {
		db = db.Where("offers.user_id = ?", *filter.CreatorID)
	}
	if filter.MinPrice != nil {
		db = db.Where("EXISTS (SELECT 1 FROM offer_tiers t WHERE t.offer_id = offers.id AND t.price >= ?)", *filter.MinPrice)
	}
	if filter.MaxDeliveryTime != nil {
		db = db.Where("EXISTS (SELECT 1 FROM offer_tiers t WHERE t.offer_id = offers.id AND t.delivery_time_in_days <= ?)", *filter.MaxDeliveryTime)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		db = db.Where(`(LOWER(offers.title) LIKE ? ESCAPE '\' OR LOWER(offers.description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	return db
}

// Update writes title, description and image.
func (repo *offerRepository) Update(ctx context.Context, offer *entity.Offer) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OfferModel{ID: offer.ID}).
		Select("Title", "Description", "Image", "UpdatedAt").
		Updates(&model.OfferModel{
			Title:       offer.Title,
			Description: offer.Description,
			Image:       offer.Image,
			UpdatedAt:   time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update offer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

// ApplyTierChanges writes a reconciled tier set and touches the offer's updated_at.
// Run it inside a transaction; a partial application leaves the offer inconsistent.
func (repo *offerRepository) ApplyTierChanges(ctx context.Context, offerID uuid.UUID, changes entity.TierChangeSet) error {
	db := repo.db.WithContext(ctx)

	if len(changes.Deleted) > 0 {
		err := db.Where("offer_id = ? AND id IN ?", offerID, changes.Deleted).
			Delete(&model.OfferTierModel{}).Error
		if err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to delete offer tiers")
		}
	}

	for _, tier := range changes.Updated {
		tierM := fromTierDomain(tier)
		result := db.Model(&model.OfferTierModel{ID: tier.ID}).
			Where("offer_id = ?", offerID).
			Select("Title", "Revisions", "DeliveryTimeInDays", "Price", "Features", "OfferType").
			Updates(tierM)
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update offer tier")
		}
		if result.RowsAffected == 0 {
			return repository.ErrTierNotFound
		}
	}

	for _, tier := range changes.Created {
		tierM := fromTierDomain(tier)
		tierM.OfferID = offerID
		if err := db.Create(tierM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to create offer tier")
		}
		tier.ID = tierM.ID
		tier.OfferID = offerID
	}

	err := db.Model(&model.OfferModel{ID: offerID}).UpdateColumn("updated_at", time.Now()).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to touch offer")
	}

	return nil
}

// Delete removes the tiers explicitly before the offer, so the result does not
// depend on the store enforcing ON DELETE CASCADE.
func (repo *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("offer_id = ?", id).Delete(&model.OfferTierModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete offer tiers")
	}

	result := db.Where("id = ?", id).Delete(&model.OfferModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete offer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

// FindTierByID loads a single tier.
func (repo *offerRepository) FindTierByID(ctx context.Context, id uuid.UUID) (*entity.Tier, error) {
	var tierM model.OfferTierModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&tierM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTierNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer tier")
	}

	return toTierDomain(&tierM), nil
}

// --- Mapper Functions ---

func toOfferDomain(data *model.OfferModel) *entity.Offer {
	tiers := make([]*entity.Tier, 0, len(data.Tiers))
	for i := range data.Tiers {
		tiers = append(tiers, toTierDomain(&data.Tiers[i]))
	}

	return &entity.Offer{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Image:       data.Image,
		Tiers:       tiers,
		Owner:       toUserDetails(data.User),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromOfferDomain(data *entity.Offer) *model.OfferModel {
	tiers := make([]model.OfferTierModel, 0, len(data.Tiers))
	for _, tier := range data.Tiers {
		tiers = append(tiers, *fromTierDomain(tier))
	}

	return &model.OfferModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Image:       data.Image,
		Tiers:       tiers,
	}
}

func toTierDomain(data *model.OfferTierModel) *entity.Tier {
	return &entity.Tier{
		ID:                 data.ID,
		OfferID:            data.OfferID,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           featuresFromColumn(data.Features),
		OfferType:          entity.OfferType(data.OfferType),
	}
}

func fromTierDomain(data *entity.Tier) *model.OfferTierModel {
	return &model.OfferTierModel{
		ID:                 data.ID,
		OfferID:            data.OfferID,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price.Round(2),
		Features:           featuresToColumn(data.Features),
		OfferType:          string(data.OfferType),
	}
}

// featuresToColumn never yields a nil slice, which would be stored as JSON null.
func featuresToColumn(features []string) datatypes.JSONSlice[string] {
	if features == nil {
		return datatypes.JSONSlice[string]{}
	}

	return datatypes.JSONSlice[string](features)
}

func featuresFromColumn(features datatypes.JSONSlice[string]) []string {
	if features == nil {
		return []string{}
	}

	return []string(features)
}
