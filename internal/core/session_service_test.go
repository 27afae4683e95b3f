package core

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

func TestSignInPublishesIdentity(t *testing.T) {
	profiles := newFakeProfileRepo()
	verifier := &fakeVerifier{token: &auth.Token{
		UID: "u1",
		Claims: map[string]interface{}{
			"email":   "ada@example.com",
			"name":    "Ada",
			"picture": "https://example.com/ada.png",
		},
	}}
	session := NewSessionStore(verifier, profiles, zap.NewNop())

	var seen []*Identity
	cancel := session.Subscribe(func(id *Identity) { seen = append(seen, id) })
	defer cancel()
	if len(seen) != 1 || seen[0] != nil {
		t.Fatalf("subscriber not called immediately with nil identity: %v", seen)
	}

	identity, err := session.SignIn(context.Background(), "token")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if identity.UID != "u1" || identity.Email != "ada@example.com" ||
		identity.DisplayName != "Ada" || identity.PhotoURL != "https://example.com/ada.png" {
		t.Fatalf("identity = %+v", identity)
	}
	if cur := session.Current(); cur == nil || cur.UID != "u1" {
		t.Fatalf("Current() = %+v, want u1", cur)
	}
	if len(seen) != 2 || seen[1].UID != "u1" {
		t.Fatalf("subscriber emissions = %v", seen)
	}
}

func TestSignInBootstrapsProfileOnce(t *testing.T) {
	profiles := newFakeProfileRepo()
	verifier := &fakeVerifier{token: &auth.Token{UID: "u1", Claims: map[string]interface{}{}}}
	session := NewSessionStore(verifier, profiles, zap.NewNop())

	if _, err := session.SignIn(context.Background(), "token"); err != nil {
		t.Fatalf("first SignIn: %v", err)
	}
	if _, err := profiles.GetByID(context.Background(), "u1"); err != nil {
		t.Fatalf("profile not created on first sign-in: %v", err)
	}

	// A returning user's donated list must survive re-authentication.
	if err := profiles.AddDonation(context.Background(), "u1", "f1"); err != nil {
		t.Fatalf("AddDonation: %v", err)
	}
	if _, err := session.SignIn(context.Background(), "token"); err != nil {
		t.Fatalf("second SignIn: %v", err)
	}
	if got := profiles.donatedOf("u1"); len(got) != 1 || got[0] != "f1" {
		t.Fatalf("profile reset on re-sign-in: donated = %v", got)
	}
}

func TestSignInSucceedsWhenBootstrapFails(t *testing.T) {
	profiles := newFakeProfileRepo()
	profiles.getErr = errors.New("store unavailable")
	verifier := &fakeVerifier{token: &auth.Token{UID: "u1", Claims: map[string]interface{}{}}}
	session := NewSessionStore(verifier, profiles, zap.NewNop())

	identity, err := session.SignIn(context.Background(), "token")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if identity.UID != "u1" {
		t.Fatalf("identity = %+v", identity)
	}
}

func TestSignOutClearsIdentity(t *testing.T) {
	profiles := newFakeProfileRepo()
	verifier := &fakeVerifier{token: &auth.Token{UID: "u1", Claims: map[string]interface{}{}}}
	session := NewSessionStore(verifier, profiles, zap.NewNop())

	if _, err := session.SignIn(context.Background(), "token"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	var last *Identity
	cancel := session.Subscribe(func(id *Identity) { last = id })
	defer cancel()

	if err := session.SignOut(); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if session.Current() != nil {
		t.Fatal("Current() not nil after sign-out")
	}
	if last != nil {
		t.Fatal("subscriber not notified of sign-out")
	}
}

func TestUnsubscribedCallbackNotInvoked(t *testing.T) {
	profiles := newFakeProfileRepo()
	verifier := &fakeVerifier{token: &auth.Token{UID: "u1", Claims: map[string]interface{}{}}}
	session := NewSessionStore(verifier, profiles, zap.NewNop())

	calls := 0
	cancel := session.Subscribe(func(*Identity) { calls++ })
	cancel()

	if _, err := session.SignIn(context.Background(), "token"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if calls != 1 {
		t.Fatalf("detached subscriber invoked %d times, want only the initial call", calls)
	}
}

func TestClassifyAuthError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind AuthErrorKind
	}{
		{"account conflict", errors.New("ACCOUNT_EXISTS_WITH_DIFFERENT_CREDENTIAL"), AuthAccountConflict},
		{"method disabled", errors.New("OPERATION_NOT_ALLOWED"), AuthMethodDisabled},
		{"wrong password", errors.New("INVALID_LOGIN_CREDENTIALS"), AuthWrongCredential},
		{"wrong password legacy", errors.New("WRONG_PASSWORD"), AuthWrongCredential},
		{"unknown", errors.New("something else entirely"), AuthOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyAuthError(tc.err)
			if got.Kind != tc.kind {
				t.Fatalf("kind = %s, want %s", got.Kind, tc.kind)
			}
			if !errors.Is(got, tc.err) {
				t.Fatal("classified error does not wrap its cause")
			}
		})
	}
}

func TestSignInReturnsAuthError(t *testing.T) {
	profiles := newFakeProfileRepo()
	verifier := &fakeVerifier{err: errors.New("OPERATION_NOT_ALLOWED: provider disabled")}
	session := NewSessionStore(verifier, profiles, zap.NewNop())

	_, err := session.SignIn(context.Background(), "token")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("SignIn error = %v, want *AuthError", err)
	}
	if authErr.Kind != AuthMethodDisabled {
		t.Fatalf("kind = %s, want %s", authErr.Kind, AuthMethodDisabled)
	}
	if session.Current() != nil {
		t.Fatal("failed sign-in must not publish an identity")
	}
	if _, getErr := profiles.GetByID(context.Background(), "u1"); getErr == nil {
		t.Fatal("failed sign-in must not create a profile")
	}
}
