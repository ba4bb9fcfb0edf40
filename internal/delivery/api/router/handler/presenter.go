package handler

import (
	"fmt"
	"time"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Money is rendered with exactly two fraction digits, as a string.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalMoney(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money(*d)

	return &s
}

func tierURL(id uuid.UUID) string {
	return fmt.Sprintf("/api/offerdetails/%s/", id)
}

// --- Profiles ---

type userRefResponse struct {
	PK        uuid.UUID `json:"pk"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// profileResponse is the detail form. Customer profiles leave out the
// business-only contact fields.
type profileResponse struct {
	User         uuid.UUID        `json:"user"`
	Username     string           `json:"username"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	File         string           `json:"file"`
	Location     *string          `json:"location,omitempty"`
	Tel          *string          `json:"tel,omitempty"`
	Description  *string          `json:"description,omitempty"`
	WorkingHours *string          `json:"working_hours,omitempty"`
	Type         entity.Role      `json:"type"`
	Email        string           `json:"email"`
	CreatedAt    time.Time        `json:"created_at"`
	UserRef      *userRefResponse `json:"user_details,omitempty"`
}

func toProfileResponse(user *entity.User) profileResponse {
	profile := user.Profile
	if profile == nil {
		profile = &entity.Profile{}
	}

	resp := profileResponse{
		User:      user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		File:      profile.File,
		Type:      profile.Role,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
	if profile.Role == entity.RoleBusiness {
		resp.Location = &profile.Location
		resp.Tel = &profile.Tel
		resp.Description = &profile.Description
		resp.WorkingHours = &profile.WorkingHours
	}

	return resp
}

// toProfileListItem nests the account fields, as the listings do.
func toProfileListItem(user *entity.User) profileResponse {
	resp := toProfileResponse(user)
	resp.UserRef = &userRefResponse{
		PK:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}

	return resp
}

// --- Offers ---

type tierResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Title              string           `json:"title"`
	Revisions          int              `json:"revisions"`
	DeliveryTimeInDays int              `json:"delivery_time_in_days"`
	Price              string           `json:"price"`
	Features           []string         `json:"features"`
	OfferType          entity.OfferType `json:"offer_type"`
}

func toTierResponse(tier *entity.Tier) tierResponse {
	features := tier.Features
	if features == nil {
		features = []string{}
	}

	return tierResponse{
		ID:                 tier.ID,
		Title:              tier.Title,
		Revisions:          tier.Revisions,
		DeliveryTimeInDays: tier.DeliveryTimeInDays,
		Price:              money(tier.Price),
		Features:           features,
		OfferType:          tier.OfferType,
	}
}

type tierRefResponse struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

type userDetailsResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

type offerBase struct {
	ID              uuid.UUID `json:"id"`
	User            uuid.UUID `json:"user"`
	Title           string    `json:"title"`
	Image           string    `json:"image"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	MinPrice        *string   `json:"min_price"`
	MinDeliveryTime *int      `json:"min_delivery_time"`
}

func toOfferBase(offer *entity.Offer) offerBase {
	return offerBase{
		ID:              offer.ID,
		User:            offer.UserID,
		Title:           offer.Title,
		Image:           offer.Image,
		Description:     offer.Description,
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
		MinPrice:        optionalMoney(offer.MinPrice),
		MinDeliveryTime: offer.MinDeliveryTime,
	}
}

func toUserDetails(owner *entity.UserDetails) *userDetailsResponse {
	if owner == nil {
		return nil
	}

	return &userDetailsResponse{
		FirstName: owner.FirstName,
		LastName:  owner.LastName,
		Username:  owner.Username,
	}
}

// offerListItem links to its tiers instead of embedding them.
type offerListItem struct {
	offerBase
	Details     []tierRefResponse    `json:"details"`
	UserDetails *userDetailsResponse `json:"user_details"`
}

func toOfferListItem(offer *entity.Offer) offerListItem {
	refs := make([]tierRefResponse, 0, len(offer.Tiers))
	for _, tier := range offer.Tiers {
		refs = append(refs, tierRefResponse{ID: tier.ID, URL: tierURL(tier.ID)})
	}

	return offerListItem{
		offerBase:   toOfferBase(offer),
		Details:     refs,
		UserDetails: toUserDetails(offer.Owner),
	}
}

type offerResponse struct {
	offerBase
	Details     []tierResponse       `json:"details"`
	UserDetails *userDetailsResponse `json:"user_details,omitempty"`
}

func toOfferResponse(offer *entity.Offer, withOwner bool) offerResponse {
	tiers := make([]tierResponse, 0, len(offer.Tiers))
	for _, tier := range offer.Tiers {
		tiers = append(tiers, toTierResponse(tier))
	}

	resp := offerResponse{
		offerBase: toOfferBase(offer),
		Details:   tiers,
	}
	if withOwner {
		resp.UserDetails = toUserDetails(offer.Owner)
	}

	return resp
}

// --- Orders ---

type orderResponse struct {
	ID                 uuid.UUID          `json:"id"`
	CustomerUser       uuid.UUID          `json:"customer_user"`
	BusinessUser       uuid.UUID          `json:"business_user"`
	Title              string             `json:"title"`
	Revisions          int                `json:"revisions"`
	DeliveryTimeInDays int                `json:"delivery_time_in_days"`
	Price              string             `json:"price"`
	Features           []string           `json:"features"`
	OfferType          entity.OfferType   `json:"offer_type"`
	Status             entity.OrderStatus `json:"status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func toOrderResponse(order *entity.Order) orderResponse {
	features := order.Features
	if features == nil {
		features = []string{}
	}

	return orderResponse{
		ID:                 order.ID,
		CustomerUser:       order.CustomerUserID,
		BusinessUser:       order.BusinessUserID,
		Title:              order.Title,
		Revisions:          order.Revisions,
		DeliveryTimeInDays: order.DeliveryTimeInDays,
		Price:              money(order.Price),
		Features:           features,
		OfferType:          order.OfferType,
		Status:             order.Status,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

// --- Reviews ---

type reviewResponse struct {
	ID           uuid.UUID `json:"id"`
	BusinessUser uuid.UUID `json:"business_user"`
	Reviewer     uuid.UUID `json:"reviewer"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toReviewResponse(review *entity.Review) reviewResponse {
	return reviewResponse{
		ID:           review.ID,
		BusinessUser: review.BusinessUserID,
		Reviewer:     review.ReviewerID,
		Rating:       review.Rating,
		Description:  review.Description,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}

	return out
}
