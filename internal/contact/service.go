package contact

import (
	"context"
	"strings"
	"time"

	"github.com/TechXplorers1/comagend-website/internal/schema"
	"go.mongodb.org/mongo-driver/bson/primitive"
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

func (s *Service) Create(ctx context.Context, req schema.ContactInput) (Message, error) {
	msg := Message{
		ID:        primitive.NewObjectID().Hex(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now().In(s.location),
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func (s *Service) List(ctx context.Context) ([]Message, error) {
	return s.repo.List(ctx)
}
