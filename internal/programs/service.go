package programs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/TechXplorers1/comagend-website/internal/schema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("program not found")

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

func (s *Service) Create(ctx context.Context, req schema.ProgramInput) (Program, error) {
	now := time.Now().In(s.location)

	item := Program{
		ID:          primitive.NewObjectID().Hex(),
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Image:       strings.TrimSpace(req.Image),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return Program{}, err
	}
	return item, nil
}

// Update applies only the fields present in the patch; untouched fields
// keep their stored values.
func (s *Service) Update(ctx context.Context, id string, req schema.ProgramPatch) (Program, error) {
	id = strings.TrimSpace(id)

	set := bson.M{
		"updated_at": time.Now().In(s.location),
	}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		set["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Image != nil {
		set["image"] = strings.TrimSpace(*req.Image)
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Program{}, ErrNotFound
		}
		return Program{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Program, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Program{}, ErrNotFound
		}
		return Program{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Program, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repo.List(ctx, filter)
}
