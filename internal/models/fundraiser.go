package models

import (
	"errors"
	"net/url"
	"time"

	"google.golang.org/genproto/googleapis/type/latlng"
)

// ErrInvalidDocument indicates a fundraiser document that does not satisfy the
// required shape. Repositories skip such documents when decoding live query
// results; a single malformed record must never blank the whole list.
var ErrInvalidDocument = errors.New("invalid fundraiser document")

// Fundraiser represents a fundraiser document in the "fundraisers" collection.
// Fundraisers are immutable after creation except for their posts
// subcollection, and are never deleted.
type Fundraiser struct {
	ID                   string         `json:"id" firestore:"-"` // Document ID, auto-generated
	Title                string         `json:"title" firestore:"title"`
	Description          string         `json:"description" firestore:"description"`
	GoalAmount           float64        `json:"goalAmount" firestore:"goalAmount"`
	Location             *latlng.LatLng `json:"location" firestore:"location"`
	StartDate            time.Time      `json:"startDate" firestore:"startDate"`
	EndDate              time.Time      `json:"endDate" firestore:"endDate"`
	Organizer            string         `json:"organizer" firestore:"organizer"`
	ExternalDonationLink string         `json:"externalDonationLink" firestore:"externalDonationLink"`
	CreatorID            string         `json:"creatorId" firestore:"creatorId"`
}

// Validate reports whether the fundraiser satisfies the required document
// shape: non-empty title and description, a positive goal amount and a
// geographic point. Missing fields decode to zero values, so this doubles as
// the read-side shape check for documents coming back from Firestore.
func (f *Fundraiser) Validate() error {
	if f.Title == "" {
		return errors.New("title is required")
	}
	if f.Description == "" {
		return errors.New("description is required")
	}
	if f.GoalAmount <= 0 {
		return errors.New("goal amount must be positive")
	}
	if f.Location == nil {
		return errors.New("location is required")
	}
	return nil
}

// ValidateDraft checks everything Validate does plus the fields only a
// creation request can get wrong, such as the donation link URL.
func (f *Fundraiser) ValidateDraft() error {
	if err := f.Validate(); err != nil {
		return err
	}
	u, err := url.ParseRequestURI(f.ExternalDonationLink)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("external donation link must be a valid http(s) URL")
	}
	return nil
}
