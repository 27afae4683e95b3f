package core

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/db"
	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

// AggregatorState is the profile aggregator's lifecycle state.
type AggregatorState int

const (
	// StateIdle: no identity; nothing is subscribed.
	StateIdle AggregatorState = iota
	// StateWatchingProfile: subscribed to the profile document only (the
	// donated ID set is empty).
	StateWatchingProfile
	// StateWatchingProfileAndDonations: subscribed to the profile document
	// and to the fundraisers resolved from its donated ID set.
	StateWatchingProfileAndDonations
)

// ProfileAggregator keeps "the live set of fundraisers the current user has
// donated to" correct while two things change independently: the profile's
// donated-ID list and the underlying fundraiser documents.
//
// On every profile update whose donated set differs from the currently
// watched set, the aggregator tears down the previous fundraiser-by-ids
// subscription and opens a new one scoped to the new set. Teardown happens
// before replacement, and every emission is checked against a generation
// counter, so a late callback from a superseded subscription can never
// overwrite fresher state. At most one fundraiser-by-ids subscription is
// active at any time.
//
// It also maintains the live list of fundraisers the user created, scoped by
// a creator-equality query for the lifetime of the session.
type ProfileAggregator struct {
	profiles    db.ProfileRepository
	fundraisers db.FundraiserRepository
	logger      *zap.Logger

	donated *watch.Value[[]*models.Fundraiser]
	created *watch.Value[[]*models.Fundraiser]

	mu            sync.Mutex
	state         AggregatorState
	sessGen       uint64 // bumped on every identity change
	donGen        uint64 // bumped on every donated-ids re-subscription
	watchedIDs    []string
	cancelProfile context.CancelFunc
	cancelCreated context.CancelFunc
	cancelDonated context.CancelFunc
	unsubSession  func()
}

// NewProfileAggregator creates an aggregator in the Idle state. Call Bind to
// attach it to a session store.
func NewProfileAggregator(profiles db.ProfileRepository, fundraisers db.FundraiserRepository, logger *zap.Logger) *ProfileAggregator {
	return &ProfileAggregator{
		profiles:    profiles,
		fundraisers: fundraisers,
		logger:      logger,
		donated:     watch.NewValueOf([]*models.Fundraiser{}),
		created:     watch.NewValueOf([]*models.Fundraiser{}),
	}
}

// Donated is the published live list of fundraisers the signed-in user has
// donated to. Only the aggregator writes it.
func (a *ProfileAggregator) Donated() *watch.Value[[]*models.Fundraiser] { return a.donated }

// Created is the published live list of fundraisers the signed-in user
// created.
func (a *ProfileAggregator) Created() *watch.Value[[]*models.Fundraiser] { return a.created }

// State returns the current lifecycle state.
func (a *ProfileAggregator) State() AggregatorState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Bind subscribes the aggregator to identity changes. The session store
// invokes the callback immediately with the current identity.
func (a *ProfileAggregator) Bind(session Session) {
	a.unsubSession = session.Subscribe(a.onIdentity)
}

// Stop detaches from the session store, tears down all subscriptions and
// closes the published values.
func (a *ProfileAggregator) Stop() {
	if a.unsubSession != nil {
		a.unsubSession()
		a.unsubSession = nil
	}
	a.mu.Lock()
	a.teardownLocked()
	a.mu.Unlock()
	a.donated.Close()
	a.created.Close()
}

// onIdentity handles sign-in and sign-out transitions.
func (a *ProfileAggregator) onIdentity(identity *Identity) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.teardownLocked()
	a.donated.Set([]*models.Fundraiser{})
	a.created.Set([]*models.Fundraiser{})

	if identity == nil {
		return
	}

	a.state = StateWatchingProfile
	sg := a.sessGen

	pctx, pcancel := context.WithCancel(context.Background())
	a.cancelProfile = pcancel
	go a.forwardProfile(sg, a.profiles.Watch(pctx, identity.UID))

	cctx, ccancel := context.WithCancel(context.Background())
	a.cancelCreated = ccancel
	go a.forwardCreated(sg, a.fundraisers.WatchByCreator(cctx, identity.UID))

	a.logger.Debug("aggregator watching profile", zap.String("uid", identity.UID))
}

// teardownLocked cancels every open subscription and invalidates all
// outstanding generations. Callers hold a.mu.
func (a *ProfileAggregator) teardownLocked() {
	if a.cancelProfile != nil {
		a.cancelProfile()
		a.cancelProfile = nil
	}
	if a.cancelCreated != nil {
		a.cancelCreated()
		a.cancelCreated = nil
	}
	if a.cancelDonated != nil {
		a.cancelDonated()
		a.cancelDonated = nil
	}
	a.sessGen++
	a.donGen++
	a.watchedIDs = nil
	a.state = StateIdle
}

func (a *ProfileAggregator) forwardProfile(sg uint64, src *watch.Value[*models.UserProfile]) {
	ch, stop := src.Subscribe()
	defer stop()
	for profile := range ch {
		a.onProfile(sg, profile)
	}
}

// onProfile re-resolves the donated ID set into a live fundraiser
// subscription whenever the set changes.
func (a *ProfileAggregator) onProfile(sg uint64, profile *models.UserProfile) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sessGen != sg {
		// Emission from a session that has since ended.
		return
	}

	ids := append([]string(nil), profile.DonatedFundraisers...)
	sort.Strings(ids)
	if equalIDs(ids, a.watchedIDs) {
		return
	}

	// Cancel before replace: the old subscription must be dead before the
	// new one exists, and its generation is retired so any emission already
	// in flight is discarded.
	if a.cancelDonated != nil {
		a.cancelDonated()
		a.cancelDonated = nil
	}
	a.donGen++
	a.watchedIDs = ids

	if len(ids) == 0 {
		a.state = StateWatchingProfile
		a.donated.Set([]*models.Fundraiser{})
		return
	}

	a.state = StateWatchingProfileAndDonations
	g := a.donGen
	dctx, dcancel := context.WithCancel(context.Background())
	a.cancelDonated = dcancel
	go a.forwardDonated(g, a.fundraisers.WatchByIDs(dctx, ids))

	a.logger.Debug("aggregator resubscribed to donated fundraisers", zap.Int("ids", len(ids)))
}

func (a *ProfileAggregator) forwardDonated(g uint64, src *watch.Value[[]*models.Fundraiser]) {
	ch, stop := src.Subscribe()
	defer stop()
	for list := range ch {
		a.publishDonated(g, list)
	}
}

// publishDonated writes to the donated value only if the emission's
// generation is still current. The generation check and the write happen
// under the same lock, so a retired forwarder can never interleave a stale
// write after a newer one.
func (a *ProfileAggregator) publishDonated(g uint64, list []*models.Fundraiser) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.donGen != g {
		return
	}
	a.donated.Set(list)
}

func (a *ProfileAggregator) forwardCreated(sg uint64, src *watch.Value[[]*models.Fundraiser]) {
	ch, stop := src.Subscribe()
	defer stop()
	for list := range ch {
		a.mu.Lock()
		if a.sessGen == sg {
			a.created.Set(list)
		}
		a.mu.Unlock()
	}
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
