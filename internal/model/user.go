// Package model defines the data structures used throughout the application.
package model

import "time"

// Provider names accepted by the auth flow. These are the values stored in
// the users.provider column — changing them would orphan existing accounts.
const (
	ProviderGitHub = "github"
	ProviderYandex = "yandex"
)

// User represents a local account backed by a third-party OAuth identity.
//
// The identity key is the pair (Provider, ProviderID) — both are set at
// creation and never change. GitHub reports a numeric id (we stringify it),
// Yandex reports a string id; storing both as TEXT keeps the key uniform.
// We still generate our own internal ID (xid) so primary keys aren't tied to
// a third party's numbering scheme.
//
// WHY Name/Avatar/Email string (not *string)?
// Providers may withhold any of these (GitHub hides email behind a privacy
// setting, Yandex accounts can lack an avatar). We use the empty string as
// the zero value rather than nullable pointers — simpler to work with and
// safe to display. These three fields are overwritten with whatever the
// provider sends on every login, empty included.
type User struct {
	ID         string    `json:"id"         db:"id"`
	Provider   string    `json:"provider"   db:"provider"`    // "github" or "yandex"
	ProviderID string    `json:"providerId" db:"provider_id"` // provider's stable subject id
	Name       string    `json:"name"       db:"name"`        // display name (may be empty)
	Avatar     string    `json:"avatar"     db:"avatar"`      // avatar URL (may be empty)
	Email      string    `json:"email"      db:"email"`       // email (may be empty)
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt"  db:"updated_at"`
}
