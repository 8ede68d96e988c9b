// Package client is the cache-aware API client the admin pages and the
// public site read through. Reads are keyed by resource path and served
// from an in-memory cache until the key is invalidated; concurrent reads
// of the same stale key collapse into a single network request. Writes
// never touch the cache; callers invalidate the affected key after a
// successful mutation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// APIError carries the HTTP status and the server's human-readable
// message for any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type entry struct {
	data  []byte
	stale bool
}

type Client struct {
	baseURL string
	http    *http.Client

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
	gens    map[string]uint64
	subs    map[string][]chan struct{}
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		entries: make(map[string]*entry),
		gens:    make(map[string]uint64),
		subs:    make(map[string][]chan struct{}),
	}
}

// Read returns the cached body for key, fetching it first if the key is
// absent or has been invalidated. Concurrent reads of the same key share
// one request.
func (c *Client) Read(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.stale {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.Lock()
		gen := c.gens[key]
		c.mu.Unlock()

		data, err := c.do(ctx, http.MethodGet, key, nil)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		// An invalidation raced this fetch: the body is still returned
		// to the waiting callers, but the key stays stale so the next
		// read fetches the post-mutation state.
		c.entries[key] = &entry{data: data, stale: c.gens[key] != gen}
		c.notifyLocked(key)
		c.mu.Unlock()

		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate marks key stale so the next Read re-fetches it. Repeated
// invalidations without an intervening read are idempotent. Subscribers
// are notified so they can schedule a re-read.
func (c *Client) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[key]++
	if e, ok := c.entries[key]; ok {
		if e.stale {
			return
		}
		e.stale = true
	}
	c.notifyLocked(key)
}

// Write performs a mutating call. The cache is deliberately untouched:
// the caller invalidates the affected resource key on success.
func (c *Client) Write(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, payload)
}

// Subscribe registers interest in key. The returned channel receives a
// tick whenever the key's data is stored or invalidated; the second
// return value unsubscribes.
func (c *Client) Subscribe(key string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	c.mu.Lock()
	c.subs[key] = append(c.subs[key], ch)
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		subs := c.subs[key]
		for i, s := range subs {
			if s == ch {
				c.subs[key] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

func (c *Client) notifyLocked(key string) {
	for _, ch := range c.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, raw),
		}
	}
	return raw, nil
}

// errorMessage prefers the server's {"error": "..."} body; it falls back
// to the raw body, then to the status text.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(status)
}
