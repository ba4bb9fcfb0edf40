// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity of an account. Every user owns exactly one Profile.
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username  string    // Login name, unique across the system.
	Email     string    // Contact email, unique across the system.
	FirstName string
	LastName  string
	IsStaff   bool     // Administrator privilege; granted out of band.
	Profile   *Profile // Never nil for a persisted user.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Role returns the role carried by the user's profile, or the empty role when
// the profile was not loaded.
func (u *User) Role() Role {
	if u == nil || u.Profile == nil {
		return ""
	}

	return u.Profile.Role
}

// Profile holds the role tag and the public contact metadata of a user.
// Role is written once at registration and never changes afterwards.
type Profile struct {
	UserID       uuid.UUID
	Role         Role
	File         string // Reference to an uploaded avatar; storage is external.
	Location     string
	Tel          string
	Description  string
	WorkingHours string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserDetails is the public owner summary embedded in offer listings.
type UserDetails struct {
	Username  string
	FirstName string
	LastName  string
}
