package models

// UserProfile represents a user's profile document in the "users" collection.
// The document ID is the Firebase Auth UID. Profiles are created lazily on
// first sign-in with empty fundraiser sets and are never deleted.
type UserProfile struct {
	ID                 string   `json:"id" firestore:"-"` // Firebase Auth UID, the document ID
	CreatedFundraisers []string `json:"createdFundraisers" firestore:"createdFundraisers"`
	DonatedFundraisers []string `json:"donatedFundraisers" firestore:"donatedFundraisers"`
}

// NewUserProfile returns an empty profile for the given UID, suitable for
// first-sign-in bootstrap.
func NewUserProfile(uid string) *UserProfile {
	return &UserProfile{
		ID:                 uid,
		CreatedFundraisers: []string{},
		DonatedFundraisers: []string{},
	}
}
