package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/type/latlng"

	"github.com/RaevaDesai/CommunityFund/internal/db"
	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

// fundraiserService implements FundraiserService.
type fundraiserService struct {
	repo    db.FundraiserRepository
	session Session
	logger  *zap.Logger
}

// NewFundraiserService creates a new FundraiserService instance.
func NewFundraiserService(repo db.FundraiserRepository, session Session, logger *zap.Logger) FundraiserService {
	return &fundraiserService{repo: repo, session: session, logger: logger}
}

// Create validates the draft, stamps the signed-in identity as creator, and
// writes the fundraiser. The creator assignment is permanent; nothing in the
// system reassigns it later.
func (s *fundraiserService) Create(ctx context.Context, req models.CreateFundraiserRequest) (*models.Fundraiser, error) {
	identity := s.session.Current()
	if identity == nil {
		return nil, ErrUnauthenticated
	}

	fundraiser := &models.Fundraiser{
		Title:       req.Title,
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		Location: &latlng.LatLng{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Organizer:            req.Organizer,
		ExternalDonationLink: req.ExternalDonationLink,
		CreatorID:            identity.UID,
	}
	if req.Latitude == 0 && req.Longitude == 0 {
		// A pinned or searched location is required; the zero coordinate is
		// treated as "not resolved".
		fundraiser.Location = nil
	}
	if err := fundraiser.ValidateDraft(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.repo.Create(ctx, fundraiser)
	if err != nil {
		return nil, err
	}
	fundraiser.ID = id
	s.logger.Info("fundraiser created",
		zap.String("fundraiserID", id), zap.String("creatorID", identity.UID))
	return fundraiser, nil
}

func (s *fundraiserService) GetByID(ctx context.Context, fundraiserID string) (*models.Fundraiser, error) {
	return s.repo.GetByID(ctx, fundraiserID)
}

func (s *fundraiserService) ListAll(ctx context.Context) ([]*models.Fundraiser, error) {
	return s.repo.ListAll(ctx)
}

func (s *fundraiserService) WatchAll(ctx context.Context) *watch.Value[[]*models.Fundraiser] {
	return s.repo.WatchAll(ctx)
}

func (s *fundraiserService) WatchByCreator(ctx context.Context, creatorID string) *watch.Value[[]*models.Fundraiser] {
	return s.repo.WatchByCreator(ctx, creatorID)
}
