package domain

// Game is the canonical shape returned to the frontend for any game,
// regardless of which upstream endpoint produced it.
//
// Optional fields use pointers: nil means the upstream never provided a
// value, which the frontend renders as "absent" rather than zero.
type Game struct {
	// ID is the canonical unique identifier. A game whose ID cannot be
	// resolved from any upstream alias is dropped from result sets.
	ID int64 `json:"id"`

	// Name is the display name of the game.
	Name string `json:"name"`

	// Creator is the creator/owner display name. Defaults to "Unknown"
	// when no upstream field carries it.
	Creator string `json:"creator"`

	// Thumbnail is the thumbnail image URL, if any upstream provided one.
	Thumbnail *string `json:"thumbnail"`

	// Playing is the current live player count.
	Playing *int64 `json:"playing"`

	// Visits is the all-time visit count.
	Visits *int64 `json:"visits"`
}

// User is the canonical shape for a platform user.
type User struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Avatar      *string `json:"avatar"`
	Presence    *int64  `json:"presence"`
}

// UnknownCreator is the placeholder creator name for games whose upstream
// payload carries no creator information.
const UnknownCreator = "Unknown"
