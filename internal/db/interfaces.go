package db

import (
	"context"

	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

// ProfileRepository defines the interface for user profile storage operations.
type ProfileRepository interface {
	GetByID(ctx context.Context, userID string) (*models.UserProfile, error)
	Create(ctx context.Context, profile *models.UserProfile) error
	// AddDonation unions the fundraiser ID into the profile's donated set.
	// Idempotent: adding an ID that is already present is a no-op.
	AddDonation(ctx context.Context, userID, fundraiserID string) error
	// RemoveDonation removes the fundraiser ID from the profile's donated set.
	// Idempotent: removing an absent ID is a no-op.
	RemoveDonation(ctx context.Context, userID, fundraiserID string) error
	// Watch opens a live subscription on the user's profile document. The
	// subscription runs until ctx is cancelled; the returned Value is closed
	// when the listener stops.
	Watch(ctx context.Context, userID string) *watch.Value[*models.UserProfile]
}

// FundraiserRepository defines the interface for fundraiser storage operations.
type FundraiserRepository interface {
	Create(ctx context.Context, fundraiser *models.Fundraiser) (string, error) // Returns new fundraiser ID
	GetByID(ctx context.Context, fundraiserID string) (*models.Fundraiser, error)
	ListAll(ctx context.Context) ([]*models.Fundraiser, error)
	// WatchAll opens a live subscription on the whole collection. Each
	// emission is the full current set, not a diff.
	WatchAll(ctx context.Context) *watch.Value[[]*models.Fundraiser]
	WatchByCreator(ctx context.Context, creatorID string) *watch.Value[[]*models.Fundraiser]
	// WatchByIDs opens a live subscription scoped to the given document IDs.
	// An empty ID set yields an immediately-empty result without issuing any
	// query against the store.
	WatchByIDs(ctx context.Context, ids []string) *watch.Value[[]*models.Fundraiser]
}

// PostRepository defines the interface for fundraiser update posts.
type PostRepository interface {
	Append(ctx context.Context, fundraiserID string, post *models.Post) (string, error) // Returns new post ID
	ListByFundraiser(ctx context.Context, fundraiserID string) ([]*models.Post, error)
	// WatchByFundraiser opens a live subscription on a fundraiser's posts,
	// ordered by creation time descending.
	WatchByFundraiser(ctx context.Context, fundraiserID string) *watch.Value[[]*models.Post]
}
