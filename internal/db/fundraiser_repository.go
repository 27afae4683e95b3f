package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

const fundraisersCollection = "fundraisers"

// firestoreFundraiserRepository implements FundraiserRepository using Firestore.
type firestoreFundraiserRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreFundraiserRepository creates a new instance of firestoreFundraiserRepository.
func NewFirestoreFundraiserRepository(client *firestore.Client, logger *zap.Logger) FundraiserRepository {
	return &firestoreFundraiserRepository{client: client, logger: logger}
}

// Create adds a new fundraiser document with an auto-generated ID. The caller
// is responsible for stamping CreatorID; fundraisers are immutable after
// creation except for their posts subcollection.
func (r *firestoreFundraiserRepository) Create(ctx context.Context, fundraiser *models.Fundraiser) (string, error) {
	docRef := r.client.Collection(fundraisersCollection).NewDoc()
	fundraiser.ID = docRef.ID
	if _, err := docRef.Create(ctx, fundraiser); err != nil {
		return "", fmt.Errorf("failed to create fundraiser: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a fundraiser document by its ID.
func (r *firestoreFundraiserRepository) GetByID(ctx context.Context, fundraiserID string) (*models.Fundraiser, error) {
	if fundraiserID == "" {
		return nil, errors.New("fundraiserID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(fundraisersCollection).Doc(fundraiserID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("fundraiser '%s' not found: %w", fundraiserID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get fundraiser '%s': %w", fundraiserID, err)
	}
	fundraiser, err := decodeFundraiser(docSnap)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fundraiser '%s': %w", fundraiserID, err)
	}
	return fundraiser, nil
}

// ListAll returns the full current set of fundraisers in one shot.
func (r *firestoreFundraiserRepository) ListAll(ctx context.Context) ([]*models.Fundraiser, error) {
	iter := r.client.Collection(fundraisersCollection).Documents(ctx)
	defer iter.Stop()

	fundraisers := []*models.Fundraiser{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate fundraisers: %w", err)
		}
		fundraiser, err := decodeFundraiser(doc)
		if err != nil {
			r.logger.Warn("skipping malformed fundraiser document",
				zap.String("docID", doc.Ref.ID), zap.Error(err))
			continue
		}
		fundraisers = append(fundraisers, fundraiser)
	}
	return fundraisers, nil
}

// WatchAll opens a snapshot listener on the whole fundraisers collection,
// used for map display. Every store-side change republishes the full set.
func (r *firestoreFundraiserRepository) WatchAll(ctx context.Context) *watch.Value[[]*models.Fundraiser] {
	return r.watchQuery(ctx, r.client.Collection(fundraisersCollection).Query, "all")
}

// WatchByCreator opens a snapshot listener scoped to fundraisers created by
// the given identity.
func (r *firestoreFundraiserRepository) WatchByCreator(ctx context.Context, creatorID string) *watch.Value[[]*models.Fundraiser] {
	query := r.client.Collection(fundraisersCollection).Where("creatorId", "==", creatorID)
	return r.watchQuery(ctx, query, "creator "+creatorID)
}

// WatchByIDs opens a snapshot listener scoped to the given document IDs. An
// empty ID set short-circuits to an immediately-empty result: Firestore
// rejects "in" filters with an empty operand, so no query is issued at all.
func (r *firestoreFundraiserRepository) WatchByIDs(ctx context.Context, ids []string) *watch.Value[[]*models.Fundraiser] {
	if len(ids) == 0 {
		return watch.NewValueOf([]*models.Fundraiser{})
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.client.Collection(fundraisersCollection).Doc(id))
	}
	// Firestore caps "in" filters at 30 operands; donation lists beyond that
	// are truncated rather than erroring the whole subscription.
	if len(refs) > 30 {
		r.logger.Warn("truncating fundraiser ID filter to 30 entries", zap.Int("requested", len(refs)))
		refs = refs[:30]
	}
	query := r.client.Collection(fundraisersCollection).Where(firestore.DocumentID, "in", refs)
	return r.watchQuery(ctx, query, "ids")
}

// watchQuery runs a snapshot listener for the given query, publishing the
// decoded full result set on every change. Dangling references and malformed
// documents are filtered out, never surfaced as corruption. Listener and
// iteration errors leave the last published state in place; a transient
// failure must not shrink the live list.
func (r *firestoreFundraiserRepository) watchQuery(ctx context.Context, query firestore.Query, scope string) *watch.Value[[]*models.Fundraiser] {
	value := watch.NewValue[[]*models.Fundraiser]()

	go func() {
		defer value.Close()

		it := query.Snapshots(ctx)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() == nil {
					r.logger.Warn("fundraiser snapshot listener stopped",
						zap.String("scope", scope), zap.Error(err))
				}
				return
			}

			fundraisers := []*models.Fundraiser{}
			docs := snap.Documents
			if err := drainDocs(docs.Next, func(doc *firestore.DocumentSnapshot) {
				fundraiser, err := decodeFundraiser(doc)
				if err != nil {
					r.logger.Warn("skipping malformed fundraiser document",
						zap.String("docID", doc.Ref.ID), zap.Error(err))
					return
				}
				fundraisers = append(fundraisers, fundraiser)
			}); err != nil {
				// Partial prefix; do not publish it over the last good set.
				r.logger.Warn("error iterating fundraiser snapshot",
					zap.String("scope", scope), zap.Error(err))
				continue
			}
			value.Set(fundraisers)
		}
	}()

	return value
}

// drainDocs iterates next until Done, passing each document to visit. A
// non-Done error is returned to the caller, whose partial result must then be
// discarded rather than published.
func drainDocs(next func() (*firestore.DocumentSnapshot, error), visit func(*firestore.DocumentSnapshot)) error {
	for {
		doc, err := next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		visit(doc)
	}
}

// decodeFundraiser decodes a document snapshot and checks the required shape.
func decodeFundraiser(doc *firestore.DocumentSnapshot) (*models.Fundraiser, error) {
	var fundraiser models.Fundraiser
	if err := doc.DataTo(&fundraiser); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidDocument, err)
	}
	return shapeFundraiser(fundraiser, doc.Ref.ID)
}

// shapeFundraiser stamps the document ID and checks the required document
// shape. Missing fields decode to zero values, so the shape check is what
// actually catches malformed documents coming back from the store.
func shapeFundraiser(fundraiser models.Fundraiser, docID string) (*models.Fundraiser, error) {
	fundraiser.ID = docID
	if err := fundraiser.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidDocument, err)
	}
	return &fundraiser, nil
}
