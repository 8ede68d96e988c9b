package donations

import (
	"context"
	"strings"
	"time"

	"github.com/TechXplorers1/comagend-website/internal/schema"
	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

func (s *Service) Create(ctx context.Context, req schema.DonationInput) (Donation, error) {
	d := Donation{
		ID:         uuid.NewString(),
		Program:    req.Program,
		Amount:     req.Amount,
		DonorName:  strings.TrimSpace(req.DonorName),
		DonorEmail: strings.TrimSpace(req.DonorEmail),
		CreatedAt:  time.Now().In(s.location),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Donation{}, err
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]Donation, error) {
	return s.repo.List(ctx)
}
