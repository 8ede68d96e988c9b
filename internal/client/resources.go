package client

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/TechXplorers1/comagend-website/internal/blog"
	"github.com/TechXplorers1/comagend-website/internal/contact"
	"github.com/TechXplorers1/comagend-website/internal/programs"
)

// Resource keys understood by the API. These double as cache keys.
const (
	KeyPrograms        = "/api/programs"
	KeyBlogPosts       = "/api/blog"
	KeyContactMessages = "/api/contact-messages"
)

// ErrNotFound is returned when an identifier has no match in the fetched
// collection; callers render their not-found fallback instead of failing.
var ErrNotFound = errors.New("not found")

func (c *Client) Programs(ctx context.Context) ([]programs.Program, error) {
	raw, err := c.Read(ctx, KeyPrograms)
	if err != nil {
		return nil, err
	}
	var items []programs.Program
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ProgramByID resolves a program detail view from the cached collection.
func (c *Client) ProgramByID(ctx context.Context, id string) (programs.Program, error) {
	items, err := c.Programs(ctx)
	if err != nil {
		return programs.Program{}, err
	}
	for _, p := range items {
		if p.ID == id {
			return p, nil
		}
	}
	return programs.Program{}, ErrNotFound
}

func (c *Client) BlogPosts(ctx context.Context) ([]blog.Post, error) {
	raw, err := c.Read(ctx, KeyBlogPosts)
	if err != nil {
		return nil, err
	}
	var items []blog.Post
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ContactMessages(ctx context.Context) ([]contact.Message, error) {
	raw, err := c.Read(ctx, KeyContactMessages)
	if err != nil {
		return nil, err
	}
	var items []contact.Message
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
