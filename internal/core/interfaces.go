package core

import (
	"context"

	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

// Identity is the authenticated user's stable external key plus display
// claims from the identity provider.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// Session defines the session store contract: the current authenticated
// identity plus change notification for subscribers.
type Session interface {
	// Current returns the signed-in identity, or nil when signed out.
	Current() *Identity
	// Subscribe registers a callback invoked on every sign-in and sign-out,
	// including immediately with the current state. The returned func
	// detaches the subscriber.
	Subscribe(onChange func(*Identity)) (cancel func())
	// SignIn verifies the provider-issued ID token, bootstraps the user
	// profile if absent, and publishes the new identity. Failures are
	// *AuthError values.
	SignIn(ctx context.Context, idToken string) (*Identity, error)
	// SignOut clears the current identity and notifies subscribers.
	SignOut() error
}

// FundraiserService defines fundraiser-related operations.
type FundraiserService interface {
	Create(ctx context.Context, req models.CreateFundraiserRequest) (*models.Fundraiser, error)
	GetByID(ctx context.Context, fundraiserID string) (*models.Fundraiser, error)
	ListAll(ctx context.Context) ([]*models.Fundraiser, error)
	WatchAll(ctx context.Context) *watch.Value[[]*models.Fundraiser]
	WatchByCreator(ctx context.Context, creatorID string) *watch.Value[[]*models.Fundraiser]
}

// DonationService records and removes donations on the signed-in user's
// profile. Both operations are idempotent set updates; the profile
// aggregator reacts to the resulting profile change rather than being told.
type DonationService interface {
	Donate(ctx context.Context, fundraiserID string) error
	Undonate(ctx context.Context, fundraiserID string) error
}

// PostService defines operations on fundraiser update posts.
type PostService interface {
	Append(ctx context.Context, fundraiserID, content string) (*models.Post, error)
	ListByFundraiser(ctx context.Context, fundraiserID string) ([]*models.Post, error)
	WatchByFundraiser(ctx context.Context, fundraiserID string) *watch.Value[[]*models.Post]
}
