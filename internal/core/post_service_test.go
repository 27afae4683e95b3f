package core

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/db"
	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

type fakePostRepo struct {
	appended []*models.Post
	nextID   int
}

func (r *fakePostRepo) Append(ctx context.Context, fundraiserID string, post *models.Post) (string, error) {
	r.nextID++
	r.appended = append(r.appended, post)
	return "post-1", nil
}

func (r *fakePostRepo) ListByFundraiser(ctx context.Context, fundraiserID string) ([]*models.Post, error) {
	return r.appended, nil
}

func (r *fakePostRepo) WatchByFundraiser(ctx context.Context, fundraiserID string) *watch.Value[[]*models.Post] {
	return watch.NewValueOf([]*models.Post{})
}

func newPostFixture(t *testing.T) (PostService, *fakePostRepo, *fakeSession, string) {
	t.Helper()
	posts := &fakePostRepo{}
	fundraisers := newFakeFundraiserRepo()
	session := newFakeSession()
	session.publish(&Identity{UID: "creator"})

	id, err := fundraisers.Create(context.Background(), &models.Fundraiser{
		Title: "Garden", Description: "Beds", GoalAmount: 100, CreatorID: "creator",
	})
	if err != nil {
		t.Fatalf("seed fundraiser: %v", err)
	}
	return NewPostService(posts, fundraisers, session, zap.NewNop()), posts, session, id
}

func TestAppendPostAsCreator(t *testing.T) {
	svc, posts, _, fundraiserID := newPostFixture(t)

	post, err := svc.Append(context.Background(), fundraiserID, "First harvest!")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if post.ID != "post-1" || post.Content != "First harvest!" || post.FundraiserID != fundraiserID {
		t.Fatalf("post = %+v", post)
	}
	if post.Timestamp.IsZero() {
		t.Fatal("post timestamp not stamped")
	}
	if len(posts.appended) != 1 {
		t.Fatalf("appended %d posts, want 1", len(posts.appended))
	}
}

func TestAppendPostRequiresSignIn(t *testing.T) {
	svc, _, session, fundraiserID := newPostFixture(t)
	session.publish(nil)

	if _, err := svc.Append(context.Background(), fundraiserID, "hi"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestAppendPostForbiddenForNonCreator(t *testing.T) {
	svc, posts, session, fundraiserID := newPostFixture(t)
	session.publish(&Identity{UID: "someone-else"})

	if _, err := svc.Append(context.Background(), fundraiserID, "hi"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if len(posts.appended) != 0 {
		t.Fatal("forbidden append still reached the repository")
	}
}

func TestAppendPostRejectsEmptyContent(t *testing.T) {
	svc, _, _, fundraiserID := newPostFixture(t)

	if _, err := svc.Append(context.Background(), fundraiserID, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAppendPostUnknownFundraiser(t *testing.T) {
	svc, _, _, _ := newPostFixture(t)

	if _, err := svc.Append(context.Background(), "missing", "hi"); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("err = %v, want db.ErrNotFound", err)
	}
}
