package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/db"
)

// donationService implements DonationService. Donate and Undonate are
// set-union and set-difference updates on the profile's donated list; the
// store arbitrates ordering (last write wins at the field level) and the
// profile aggregator picks up the resulting document change.
type donationService struct {
	profiles db.ProfileRepository
	session  Session
	logger   *zap.Logger
}

// NewDonationService creates a new DonationService instance.
func NewDonationService(profiles db.ProfileRepository, session Session, logger *zap.Logger) DonationService {
	return &donationService{profiles: profiles, session: session, logger: logger}
}

func (s *donationService) Donate(ctx context.Context, fundraiserID string) error {
	identity := s.session.Current()
	if identity == nil {
		return ErrUnauthenticated
	}
	if err := s.profiles.AddDonation(ctx, identity.UID, fundraiserID); err != nil {
		return err
	}
	s.logger.Info("donation recorded",
		zap.String("uid", identity.UID), zap.String("fundraiserID", fundraiserID))
	return nil
}

func (s *donationService) Undonate(ctx context.Context, fundraiserID string) error {
	identity := s.session.Current()
	if identity == nil {
		return ErrUnauthenticated
	}
	if err := s.profiles.RemoveDonation(ctx, identity.UID, fundraiserID); err != nil {
		return err
	}
	s.logger.Info("donation removed",
		zap.String("uid", identity.UID), zap.String("fundraiserID", fundraiserID))
	return nil
}
