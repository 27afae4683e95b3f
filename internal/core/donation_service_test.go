package core

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestDonateRequiresSignIn(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := NewDonationService(profiles, newFakeSession(), zap.NewNop())

	if err := svc.Donate(context.Background(), "f1"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("Donate err = %v, want ErrUnauthenticated", err)
	}
	if err := svc.Undonate(context.Background(), "f1"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("Undonate err = %v, want ErrUnauthenticated", err)
	}
}

func TestDonateIsIdempotent(t *testing.T) {
	profiles := newFakeProfileRepo()
	session := newFakeSession()
	session.publish(&Identity{UID: "u1"})
	svc := NewDonationService(profiles, session, zap.NewNop())

	ctx := context.Background()
	if err := svc.Donate(ctx, "f1"); err != nil {
		t.Fatalf("Donate: %v", err)
	}
	if err := svc.Donate(ctx, "f1"); err != nil {
		t.Fatalf("repeated Donate: %v", err)
	}
	if got := profiles.donatedOf("u1"); !reflect.DeepEqual(got, []string{"f1"}) {
		t.Fatalf("donated = %v, want single f1", got)
	}
}

func TestUndonateIsIdempotent(t *testing.T) {
	profiles := newFakeProfileRepo()
	session := newFakeSession()
	session.publish(&Identity{UID: "u1"})
	svc := NewDonationService(profiles, session, zap.NewNop())

	ctx := context.Background()
	if err := svc.Donate(ctx, "f1"); err != nil {
		t.Fatalf("Donate: %v", err)
	}
	if err := svc.Undonate(ctx, "f1"); err != nil {
		t.Fatalf("Undonate: %v", err)
	}
	// Removing an ID that is already absent is a no-op, not an error.
	if err := svc.Undonate(ctx, "f1"); err != nil {
		t.Fatalf("repeated Undonate: %v", err)
	}
	if got := profiles.donatedOf("u1"); len(got) != 0 {
		t.Fatalf("donated = %v, want empty", got)
	}
}
