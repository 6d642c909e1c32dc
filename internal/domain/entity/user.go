// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the account entity. A user may own any number of businesses and
// every tenant-scoped operation is authorized against business ownership.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // The user's login identifier. Unique across the system.
	PasswordHash string    // Salted bcrypt hash of the user's password. Never exposed in responses.
	Name         string    // The user's display name.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
