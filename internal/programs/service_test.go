package programs

import (
	"context"
	"testing"
	"time"

	"github.com/TechXplorers1/comagend-website/internal/schema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items map[string]Program
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Program)}
}

func (f *fakeRepo) Create(ctx context.Context, item Program) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Program, error) {
	item, ok := f.items[id]
	if !ok {
		return Program{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Program, error) {
	item, ok := f.items[id]
	if !ok {
		return Program{}, mongo.ErrNoDocuments
	}
	for k, v := range set {
		switch k {
		case "title":
			item.Title = v.(string)
		case "category":
			item.Category = v.(string)
		case "description":
			item.Description = v.(string)
		case "image":
			item.Image = v.(string)
		case "updated_at":
			item.UpdatedAt = v.(time.Time)
		}
	}
	f.items[id] = item
	return item, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]Program, error) {
	items := make([]Program, 0, len(f.items))
	for _, item := range f.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, time.UTC)
}

func TestCreateAssignsIDAndTrims(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	item, err := svc.Create(context.Background(), schema.ProgramInput{
		Title:       "  Clean Water  ",
		Category:    "Health",
		Image:       "https://x/y.png",
		Description: "desc",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if item.Title != "Clean Water" {
		t.Fatalf("expected trimmed title, got %q", item.Title)
	}
	if _, ok := repo.items[item.ID]; !ok {
		t.Fatalf("item not persisted")
	}
}

func TestUpdatePartialKeepsUntouchedFields(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), schema.ProgramInput{
		Title:       "Clean Water",
		Category:    "Health",
		Image:       "https://x/y.png",
		Description: "desc",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	title := "Safe Water"
	updated, err := svc.Update(context.Background(), created.ID, schema.ProgramPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "Safe Water" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Category != "Health" || updated.Image != "https://x/y.png" || updated.Description != "desc" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	title := "x"
	_, err := svc.Update(context.Background(), "missing", schema.ProgramPatch{Title: &title})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), schema.ProgramInput{
		Title:       "Clean Water",
		Category:    "Health",
		Image:       "https://x/y.png",
		Description: "desc",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != ErrNotFound {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
}

func TestGetByIDMissing(t *testing.T) {
	svc := newTestService(newFakeRepo())
	if _, err := svc.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
