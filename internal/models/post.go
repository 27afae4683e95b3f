package models

import "time"

// Post represents an update post in a fundraiser's "posts" subcollection.
// Posts are append-only: created by the fundraiser's creator, never edited or
// deleted, and displayed newest first.
type Post struct {
	ID           string    `json:"id" firestore:"-"` // Document ID, auto-generated
	Content      string    `json:"content" firestore:"content"`
	Timestamp    time.Time `json:"timestamp" firestore:"timestamp"`
	FundraiserID string    `json:"fundraiserId" firestore:"fundraiserId"`
}
