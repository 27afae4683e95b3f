package core

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"

	"github.com/RaevaDesai/CommunityFund/internal/db"
	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}

// fakeSession is a hand-driven Session for service and aggregator tests.
type fakeSession struct {
	mu      sync.Mutex
	current *Identity
	subs    map[int]func(*Identity)
	nextID  int
}

func newFakeSession() *fakeSession {
	return &fakeSession{subs: make(map[int]func(*Identity))}
}

func (s *fakeSession) Current() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *fakeSession) Subscribe(onChange func(*Identity)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = onChange
	cur := s.current
	s.mu.Unlock()

	onChange(cur)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *fakeSession) SignIn(ctx context.Context, idToken string) (*Identity, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *fakeSession) SignOut() error {
	s.publish(nil)
	return nil
}

func (s *fakeSession) publish(identity *Identity) {
	s.mu.Lock()
	s.current = identity
	subs := make([]func(*Identity), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(identity)
	}
}

// fakeProfileRepo stores profiles in memory and lets tests drive profile
// watch emissions by hand.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.UserProfile
	watches  map[string]*watch.Value[*models.UserProfile]
	watchCtx map[string]context.Context
	getErr   error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: make(map[string]*models.UserProfile),
		watches:  make(map[string]*watch.Value[*models.UserProfile]),
		watchCtx: make(map[string]context.Context),
	}
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.profiles[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) AddDonation(ctx context.Context, userID, fundraiserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		p = models.NewUserProfile(userID)
		r.profiles[userID] = p
	}
	for _, id := range p.DonatedFundraisers {
		if id == fundraiserID {
			return nil
		}
	}
	p.DonatedFundraisers = append(p.DonatedFundraisers, fundraiserID)
	return nil
}

func (r *fakeProfileRepo) RemoveDonation(ctx context.Context, userID, fundraiserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil
	}
	kept := p.DonatedFundraisers[:0]
	for _, id := range p.DonatedFundraisers {
		if id != fundraiserID {
			kept = append(kept, id)
		}
	}
	p.DonatedFundraisers = kept
	return nil
}

func (r *fakeProfileRepo) Watch(ctx context.Context, userID string) *watch.Value[*models.UserProfile] {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := watch.NewValue[*models.UserProfile]()
	r.watches[userID] = v
	r.watchCtx[userID] = ctx
	return v
}

func (r *fakeProfileRepo) watching(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.watches[userID]
	return ok
}

func (r *fakeProfileRepo) watchCancelled(userID string) bool {
	r.mu.Lock()
	ctx, ok := r.watchCtx[userID]
	r.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// emitProfile pushes a profile emission into the open watch for userID.
func (r *fakeProfileRepo) emitProfile(userID string, donated []string) {
	r.mu.Lock()
	v := r.watches[userID]
	r.mu.Unlock()
	v.Set(&models.UserProfile{ID: userID, DonatedFundraisers: donated})
}

func (r *fakeProfileRepo) donatedOf(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil
	}
	return append([]string(nil), p.DonatedFundraisers...)
}

// byIDsCall records one WatchByIDs subscription so tests can assert on the
// requested ID set, drive emissions, and observe cancellation.
type byIDsCall struct {
	ctx context.Context
	ids []string
	val *watch.Value[[]*models.Fundraiser]
}

func (c *byIDsCall) cancelled() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// fakeFundraiserRepo records watch subscriptions and lets tests drive them.
type fakeFundraiserRepo struct {
	mu           sync.Mutex
	fundraisers  map[string]*models.Fundraiser
	nextID       int
	byIDsCalls   []*byIDsCall
	creatorCalls []*byIDsCall
	// overlap is set if a WatchByIDs call arrives while a previous call is
	// still uncancelled: the old subscription must be dead first.
	overlap bool
}

func newFakeFundraiserRepo() *fakeFundraiserRepo {
	return &fakeFundraiserRepo{fundraisers: make(map[string]*models.Fundraiser)}
}

func (r *fakeFundraiserRepo) Create(ctx context.Context, fundraiser *models.Fundraiser) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := fmt.Sprintf("fund-%d", r.nextID)
	fundraiser.ID = id
	r.fundraisers[id] = fundraiser
	return id, nil
}

func (r *fakeFundraiserRepo) GetByID(ctx context.Context, fundraiserID string) (*models.Fundraiser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fundraisers[fundraiserID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return f, nil
}

func (r *fakeFundraiserRepo) ListAll(ctx context.Context) ([]*models.Fundraiser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Fundraiser, 0, len(r.fundraisers))
	for _, f := range r.fundraisers {
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFundraiserRepo) WatchAll(ctx context.Context) *watch.Value[[]*models.Fundraiser] {
	return watch.NewValueOf([]*models.Fundraiser{})
}

func (r *fakeFundraiserRepo) WatchByCreator(ctx context.Context, creatorID string) *watch.Value[[]*models.Fundraiser] {
	r.mu.Lock()
	defer r.mu.Unlock()
	call := &byIDsCall{ctx: ctx, ids: []string{creatorID}, val: watch.NewValue[[]*models.Fundraiser]()}
	r.creatorCalls = append(r.creatorCalls, call)
	return call.val
}

func (r *fakeFundraiserRepo) WatchByIDs(ctx context.Context, ids []string) *watch.Value[[]*models.Fundraiser] {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, prev := range r.byIDsCalls {
		if !prev.cancelled() {
			r.overlap = true
		}
	}
	call := &byIDsCall{
		ctx: ctx,
		ids: append([]string(nil), ids...),
		val: watch.NewValue[[]*models.Fundraiser](),
	}
	r.byIDsCalls = append(r.byIDsCalls, call)
	return call.val
}

func (r *fakeFundraiserRepo) byIDsCallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byIDsCalls)
}

func (r *fakeFundraiserRepo) lastByIDsCall() *byIDsCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.byIDsCalls) == 0 {
		return nil
	}
	return r.byIDsCalls[len(r.byIDsCalls)-1]
}

func (r *fakeFundraiserRepo) hadOverlap() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlap
}

// fakeVerifier returns a canned token or error for SignIn tests.
type fakeVerifier struct {
	token *auth.Token
	err   error
}

func (v *fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.token, nil
}
