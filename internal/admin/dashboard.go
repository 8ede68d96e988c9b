package admin

import (
	"context"
	"sync"

	"github.com/TechXplorers1/comagend-website/internal/blog"
	"github.com/TechXplorers1/comagend-website/internal/client"
	"github.com/TechXplorers1/comagend-website/internal/contact"
	"github.com/TechXplorers1/comagend-website/internal/programs"
)

// recentLimit caps the preview list under each dashboard count card.
const recentLimit = 5

// Section is the dashboard's view of one collection: either items or an
// error, never both, resolved independently of the other sections.
type Section[T any] struct {
	Count  int
	Recent []T
	Err    error
}

type Dashboard struct {
	Programs  Section[programs.Program]
	BlogPosts Section[blog.Post]
	Contacts  Section[contact.Message]
}

// LoadDashboard fetches the three collections concurrently. A failing or
// slow collection only affects its own section.
func LoadDashboard(ctx context.Context, c *client.Client) Dashboard {
	var d Dashboard
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		items, err := c.Programs(ctx)
		d.Programs = makeSection(items, err)
	}()
	go func() {
		defer wg.Done()
		items, err := c.BlogPosts(ctx)
		d.BlogPosts = makeSection(items, err)
	}()
	go func() {
		defer wg.Done()
		items, err := c.ContactMessages(ctx)
		d.Contacts = makeSection(items, err)
	}()
	wg.Wait()

	return d
}

func makeSection[T any](items []T, err error) Section[T] {
	if err != nil {
		return Section[T]{Err: err}
	}
	recent := items
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return Section[T]{
		Count:  len(items),
		Recent: recent,
	}
}
