package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

const usersCollection = "users"

// ErrNotFound is a common error for when a document is not found in Firestore.
var ErrNotFound = errors.New("document not found")

// firestoreProfileRepository implements ProfileRepository using Firestore.
type firestoreProfileRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreProfileRepository creates a new instance of firestoreProfileRepository.
func NewFirestoreProfileRepository(client *firestore.Client, logger *zap.Logger) ProfileRepository {
	return &firestoreProfileRepository{client: client, logger: logger}
}

// GetByID retrieves a profile document by its ID (Firebase Auth UID).
func (r *firestoreProfileRepository) GetByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("profile for user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile for user '%s': %w", userID, err)
	}

	var profile models.UserProfile
	if err := docSnap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile for user '%s': %w", userID, err)
	}
	profile.ID = docSnap.Ref.ID
	return &profile, nil
}

// Create adds a new profile document. The Firebase Auth UID is used as the
// document ID.
func (r *firestoreProfileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	if profile.ID == "" {
		return errors.New("profile ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(profile.ID).Create(ctx, profile)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("profile for user '%s' already exists: %w", profile.ID, err)
		}
		return fmt.Errorf("failed to create profile for user '%s': %w", profile.ID, err)
	}
	return nil
}

// AddDonation unions the fundraiser ID into donatedFundraisers. ArrayUnion is
// a server-side set operation, so repeated adds of the same ID are no-ops and
// concurrent adds of different IDs do not clobber each other.
func (r *firestoreProfileRepository) AddDonation(ctx context.Context, userID, fundraiserID string) error {
	if userID == "" || fundraiserID == "" {
		return errors.New("userID and fundraiserID are required for AddDonation")
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "donatedFundraisers", Value: firestore.ArrayUnion(fundraiserID)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("profile for user '%s' not found: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to add donation for user '%s': %w", userID, err)
	}
	return nil
}

// RemoveDonation removes the fundraiser ID from donatedFundraisers.
func (r *firestoreProfileRepository) RemoveDonation(ctx context.Context, userID, fundraiserID string) error {
	if userID == "" || fundraiserID == "" {
		return errors.New("userID and fundraiserID are required for RemoveDonation")
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "donatedFundraisers", Value: firestore.ArrayRemove(fundraiserID)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("profile for user '%s' not found: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to remove donation for user '%s': %w", userID, err)
	}
	return nil
}

// Watch opens a snapshot listener on the profile document and publishes every
// decoded revision. Listener errors degrade to the last published state; they
// never close the stream early except on ctx cancellation.
func (r *firestoreProfileRepository) Watch(ctx context.Context, userID string) *watch.Value[*models.UserProfile] {
	value := watch.NewValue[*models.UserProfile]()

	go func() {
		defer value.Close()

		it := r.client.Collection(usersCollection).Doc(userID).Snapshots(ctx)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() == nil {
					r.logger.Warn("profile snapshot listener stopped",
						zap.String("userID", userID), zap.Error(err))
				}
				return
			}
			if !snap.Exists() {
				// Profile not bootstrapped yet; nothing to publish.
				continue
			}
			var profile models.UserProfile
			if err := snap.DataTo(&profile); err != nil {
				r.logger.Warn("skipping undecodable profile snapshot",
					zap.String("userID", userID), zap.Error(err))
				continue
			}
			profile.ID = snap.Ref.ID
			value.Set(&profile)
		}
	}()

	return value
}
