package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/db"
	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

// postService implements PostService.
type postService struct {
	posts       db.PostRepository
	fundraisers db.FundraiserRepository
	session     Session
	logger      *zap.Logger
}

// NewPostService creates a new PostService instance.
func NewPostService(posts db.PostRepository, fundraisers db.FundraiserRepository, session Session, logger *zap.Logger) PostService {
	return &postService{posts: posts, fundraisers: fundraisers, session: session, logger: logger}
}

// Append adds an update post to a fundraiser. Only the fundraiser's creator
// may post; this check is a UX shortcut, the store's security rules are the
// actual boundary.
func (s *postService) Append(ctx context.Context, fundraiserID, content string) (*models.Post, error) {
	identity := s.session.Current()
	if identity == nil {
		return nil, ErrUnauthenticated
	}
	if content == "" {
		return nil, fmt.Errorf("%w: post content is required", ErrInvalidInput)
	}

	fundraiser, err := s.fundraisers.GetByID(ctx, fundraiserID)
	if err != nil {
		return nil, err
	}
	if fundraiser.CreatorID != identity.UID {
		return nil, ErrForbidden
	}

	post := &models.Post{
		Content:      content,
		Timestamp:    time.Now().UTC(),
		FundraiserID: fundraiserID,
	}
	id, err := s.posts.Append(ctx, fundraiserID, post)
	if err != nil {
		return nil, err
	}
	post.ID = id
	s.logger.Info("post appended",
		zap.String("fundraiserID", fundraiserID), zap.String("postID", id))
	return post, nil
}

func (s *postService) ListByFundraiser(ctx context.Context, fundraiserID string) ([]*models.Post, error) {
	return s.posts.ListByFundraiser(ctx, fundraiserID)
}

func (s *postService) WatchByFundraiser(ctx context.Context, fundraiserID string) *watch.Value[[]*models.Post] {
	return s.posts.WatchByFundraiser(ctx, fundraiserID)
}
