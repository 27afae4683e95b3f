package core

import (
	"context"
	"errors"
	"strings"
	"sync"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/db"
	"github.com/RaevaDesai/CommunityFund/internal/models"
)

// TokenVerifier is the slice of the Firebase Auth client the session store
// needs. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// sessionStore implements Session. It holds the single active identity of
// this process and fans sign-in/sign-out changes out to subscribers.
type sessionStore struct {
	verifier TokenVerifier
	profiles db.ProfileRepository
	logger   *zap.Logger

	mu      sync.Mutex
	current *Identity
	subs    map[int]func(*Identity)
	nextID  int
}

// NewSessionStore creates a new session store.
func NewSessionStore(verifier TokenVerifier, profiles db.ProfileRepository, logger *zap.Logger) Session {
	return &sessionStore{
		verifier: verifier,
		profiles: profiles,
		logger:   logger,
		subs:     make(map[int]func(*Identity)),
	}
}

func (s *sessionStore) Current() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *sessionStore) Subscribe(onChange func(*Identity)) func() {
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

// SignIn verifies the provider ID token, publishes the identity, and lazily
// creates the user's profile document if this is their first sign-in.
func (s *sessionStore) SignIn(ctx context.Context, idToken string) (*Identity, error) {
	token, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		authErr := classifyAuthError(err)
		s.logger.Warn("sign-in rejected", zap.String("kind", string(authErr.Kind)), zap.Error(err))
		return nil, authErr
	}

	identity := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.DisplayName = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.PhotoURL = picture
	}

	if err := s.bootstrapProfile(ctx, identity.UID); err != nil {
		// Profile bootstrap failure degrades the profile screens, it does
		// not block authentication.
		s.logger.Error("profile bootstrap failed", zap.String("uid", identity.UID), zap.Error(err))
	}

	s.publish(identity)
	s.logger.Info("signed in", zap.String("uid", identity.UID))
	return identity, nil
}

func (s *sessionStore) SignOut() error {
	s.publish(nil)
	s.logger.Info("signed out")
	return nil
}

// bootstrapProfile creates an empty profile document on first sign-in.
func (s *sessionStore) bootstrapProfile(ctx context.Context, uid string) error {
	_, err := s.profiles.GetByID(ctx, uid)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return err
	}
	return s.profiles.Create(ctx, models.NewUserProfile(uid))
}

func (s *sessionStore) publish(identity *Identity) {
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

// classifyAuthError maps Firebase Auth SDK failures onto the AuthError
// taxonomy. The SDK exposes typed checkers for some codes; the rest are
// matched on the provider's error code strings.
func classifyAuthError(err error) *AuthError {
	msg := err.Error()
	upper := strings.ToUpper(msg)
	switch {
	case auth.IsIDTokenExpired(err), auth.IsIDTokenInvalid(err), auth.IsIDTokenRevoked(err):
		return NewAuthError(AuthInvalidCredential, "Invalid authentication credentials", err)
	case auth.IsUserDisabled(err):
		return NewAuthError(AuthAccountDisabled, "Account disabled", err)
	case auth.IsEmailAlreadyExists(err):
		return NewAuthError(AuthEmailInUse, "Email already in use", err)
	case strings.Contains(upper, "ACCOUNT_EXISTS_WITH_DIFFERENT_CREDENTIAL"):
		return NewAuthError(AuthAccountConflict, "Account already exists with different method", err)
	case strings.Contains(upper, "OPERATION_NOT_ALLOWED"):
		return NewAuthError(AuthMethodDisabled, "Sign-in method not enabled", err)
	case strings.Contains(upper, "INVALID_LOGIN_CREDENTIALS"), strings.Contains(upper, "WRONG_PASSWORD"):
		return NewAuthError(AuthWrongCredential, "Incorrect credentials", err)
	default:
		return NewAuthError(AuthOther, "Authentication failed: "+msg, err)
	}
}
