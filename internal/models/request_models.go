package models

import "time"

// SignInRequest carries the provider-issued Firebase ID token.
type SignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// CreateFundraiserRequest represents the request body for creating a new
// fundraiser. The location must already be resolved (searched or pinned) on
// the client side.
type CreateFundraiserRequest struct {
	Title                string    `json:"title" binding:"required"`
	Description          string    `json:"description" binding:"required"`
	GoalAmount           float64   `json:"goalAmount" binding:"required"`
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	Organizer            string    `json:"organizer"`
	ExternalDonationLink string    `json:"externalDonationLink" binding:"required"`
}

// CreatePostRequest represents the request body for appending an update post
// to a fundraiser.
type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// ResolvePlaceRequest selects one search candidate for coordinate resolution.
// Title is the candidate's display title, used as the name fallback when the
// details lookup returns none.
type ResolvePlaceRequest struct {
	PlaceID string `json:"placeId" binding:"required"`
	Title   string `json:"title"`
}

// SetMarkedRequest toggles the local "marked as donated" flag for a
// fundraiser. The flag is a UI hint only; the server-side donated set is
// authoritative.
type SetMarkedRequest struct {
	Marked bool `json:"marked"`
}
