package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

const postsSubcollection = "posts"

// firestorePostRepository implements PostRepository using the
// fundraisers/{id}/posts subcollection.
type firestorePostRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestorePostRepository creates a new instance of firestorePostRepository.
func NewFirestorePostRepository(client *firestore.Client, logger *zap.Logger) PostRepository {
	return &firestorePostRepository{client: client, logger: logger}
}

func (r *firestorePostRepository) posts(fundraiserID string) *firestore.CollectionRef {
	return r.client.Collection(fundraisersCollection).Doc(fundraiserID).Collection(postsSubcollection)
}

// Append adds a new post document with an auto-generated ID. Posts are
// append-only; there is no update or delete. Authorization (creator-only
// writes) is enforced by the store's security rules; the service layer's
// creator check is a UX shortcut on top of that.
func (r *firestorePostRepository) Append(ctx context.Context, fundraiserID string, post *models.Post) (string, error) {
	if fundraiserID == "" {
		return "", errors.New("fundraiserID cannot be empty for Append operation")
	}
	docRef := r.posts(fundraiserID).NewDoc()
	post.ID = docRef.ID
	post.FundraiserID = fundraiserID
	if _, err := docRef.Create(ctx, post); err != nil {
		return "", fmt.Errorf("failed to append post to fundraiser '%s': %w", fundraiserID, err)
	}
	return docRef.ID, nil
}

// ListByFundraiser returns the fundraiser's posts ordered newest first.
func (r *firestorePostRepository) ListByFundraiser(ctx context.Context, fundraiserID string) ([]*models.Post, error) {
	if fundraiserID == "" {
		return nil, errors.New("fundraiserID cannot be empty for ListByFundraiser operation")
	}
	iter := r.posts(fundraiserID).OrderBy("timestamp", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	posts := []*models.Post{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate posts for fundraiser '%s': %w", fundraiserID, err)
		}
		var post models.Post
		if err := doc.DataTo(&post); err != nil {
			r.logger.Warn("skipping malformed post document",
				zap.String("fundraiserID", fundraiserID), zap.String("docID", doc.Ref.ID), zap.Error(err))
			continue
		}
		post.ID = doc.Ref.ID
		posts = append(posts, &post)
	}
	return posts, nil
}

// WatchByFundraiser opens a snapshot listener on the fundraiser's posts,
// ordered by creation time descending. The subscription runs until ctx is
// cancelled. Iteration errors leave the last published list in place.
func (r *firestorePostRepository) WatchByFundraiser(ctx context.Context, fundraiserID string) *watch.Value[[]*models.Post] {
	value := watch.NewValue[[]*models.Post]()

	go func() {
		defer value.Close()

		it := r.posts(fundraiserID).OrderBy("timestamp", firestore.Desc).Snapshots(ctx)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() == nil {
					r.logger.Warn("post snapshot listener stopped",
						zap.String("fundraiserID", fundraiserID), zap.Error(err))
				}
				return
			}

			posts := []*models.Post{}
			docs := snap.Documents
			if err := drainDocs(docs.Next, func(doc *firestore.DocumentSnapshot) {
				var post models.Post
				if err := doc.DataTo(&post); err != nil {
					r.logger.Warn("skipping malformed post document",
						zap.String("docID", doc.Ref.ID), zap.Error(err))
					return
				}
				post.ID = doc.Ref.ID
				posts = append(posts, &post)
			}); err != nil {
				// Partial prefix; do not publish it over the last good list.
				r.logger.Warn("error iterating post snapshot",
					zap.String("fundraiserID", fundraiserID), zap.Error(err))
				continue
			}
			value.Set(posts)
		}
	}()

	return value
}
