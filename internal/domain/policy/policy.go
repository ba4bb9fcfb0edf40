// Package policy is the capability table consulted before every mutation.
// Roles are a closed tag on the profile; what each role may do is decided here
// rather than by variants of the User type.
package policy

import (
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"

	"github.com/google/uuid"
)

// Action names an operation guarded by the table.
type Action string

const (
	ActionOfferCreate       Action = "offer.create"
	ActionOfferUpdate       Action = "offer.update"
	ActionOfferDelete       Action = "offer.delete"
	ActionOrderCreate       Action = "order.create"
	ActionOrderRead         Action = "order.read"
	ActionOrderList         Action = "order.list"
	ActionOrderUpdateStatus Action = "order.update_status"
	ActionOrderDelete       Action = "order.delete"
	ActionReviewCreate      Action = "review.create"
	ActionReviewUpdate      Action = "review.update"
	ActionReviewDelete      Action = "review.delete"
	ActionProfileUpdate     Action = "profile.update"
)

// Actor is the resolved caller. The zero value is the anonymous actor.
type Actor struct {
	UserID  uuid.UUID
	Role    entity.Role
	IsAdmin bool
}

// Anonymous returns the actor used when no valid credential was presented.
func Anonymous() Actor {
	return Actor{}
}

// FromUser builds an authenticated actor; the role comes from the stored profile.
func FromUser(user *entity.User) Actor {
	return Actor{
		UserID:  user.ID,
		Role:    user.Role(),
		IsAdmin: user.IsStaff,
	}
}

// Authenticated reports whether the actor carries a resolved identity.
func (a Actor) Authenticated() bool {
	return a.UserID != uuid.Nil
}

// Subject describes the resource an action targets.
type Subject struct {
	// OwnerID is the offer owner, review author, order business user or profile user.
	OwnerID uuid.UUID
	// CounterpartyID is the order customer; unused elsewhere.
	CounterpartyID uuid.UUID
}

// Predicate decides a single capability for an authenticated actor.
type Predicate func(actor Actor, subject Subject) bool

func hasRole(role entity.Role) Predicate {
	return func(actor Actor, _ Subject) bool {
		return actor.Role == role
	}
}

func isOwner(actor Actor, subject Subject) bool {
	return subject.OwnerID != uuid.Nil && actor.UserID == subject.OwnerID
}

func isCounterparty(actor Actor, subject Subject) bool {
	return subject.CounterpartyID != uuid.Nil && actor.UserID == subject.CounterpartyID
}

func isAdmin(actor Actor, _ Subject) bool {
	return actor.IsAdmin
}

func always(Actor, Subject) bool {
	return true
}

func allOf(predicates ...Predicate) Predicate {
	return func(actor Actor, subject Subject) bool {
		for _, p := range predicates {
			if !p(actor, subject) {
				return false
			}
		}

		return true
	}
}

func anyOf(predicates ...Predicate) Predicate {
	return func(actor Actor, subject Subject) bool {
		for _, p := range predicates {
			if p(actor, subject) {
				return true
			}
		}

		return false
	}
}

var table = map[Action]Predicate{
	ActionOfferCreate:       hasRole(entity.RoleBusiness),
	ActionOfferUpdate:       allOf(hasRole(entity.RoleBusiness), isOwner),
	ActionOfferDelete:       anyOf(isAdmin, allOf(hasRole(entity.RoleBusiness), isOwner)),
	ActionOrderCreate:       hasRole(entity.RoleCustomer),
	ActionOrderRead:         anyOf(isAdmin, isOwner, isCounterparty),
	ActionOrderList:         always,
	ActionOrderUpdateStatus: isOwner,
	ActionOrderDelete:       isAdmin,
	ActionReviewCreate:      hasRole(entity.RoleCustomer),
	ActionReviewUpdate:      allOf(hasRole(entity.RoleCustomer), isOwner),
	ActionReviewDelete:      allOf(hasRole(entity.RoleCustomer), isOwner),
	ActionProfileUpdate:     isOwner,
}

// Allows reports whether actor may perform action on subject. Unknown actions
// and anonymous actors are always denied.
func Allows(action Action, actor Actor, subject Subject) bool {
	if !actor.Authenticated() {
		return false
	}

	predicate, ok := table[action]
	if !ok {
		return false
	}

	return predicate(actor, subject)
}

// Authorize is Allows expressed as an error: ErrUnauthenticated for anonymous
// actors and ErrForbidden when the predicate rejects the call.
func Authorize(action Action, actor Actor, subject Subject) error {
	if !actor.Authenticated() {
		return domainerrors.ErrUnauthenticated.WithDetails(string(action))
	}

	if !Allows(action, actor, subject) {
		return domainerrors.ErrForbidden.WithDetails(string(action))
	}

	return nil
}
