// Package model holds the GORM persistence models. They are mapped to and from
// domain entities by the repositories and never leave the infra layer.
package model

import "github.com/google/uuid"

// All lists every model in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&UserModel{},
		&ProfileModel{},
		&AuthenticationModel{},
		&RefreshTokenModel{},
		&OfferModel{},
		&OfferTierModel{},
		&OrderModel{},
		&ReviewModel{},
	}
}

func ensureID(id uuid.UUID) uuid.UUID {
	if id != uuid.Nil {
		return id
	}

	return uuid.Must(uuid.NewV7())
}
