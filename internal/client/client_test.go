package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCountingServer(t *testing.T, payload string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestReadCachesByKey(t *testing.T) {
	srv, calls := newCountingServer(t, `[{"id":"1"}]`)
	c := New(srv.URL, srv.Client())
	ctx := context.Background()

	first, err := c.Read(ctx, "/api/programs")
	require.NoError(t, err)
	second, err := c.Read(ctx, "/api/programs")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load(), "second read must be served from cache")
}

func TestConcurrentReadsAreDeduplicated(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, srv.Client())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Read(ctx, "/api/programs")
			assert.NoError(t, err)
		}()
	}

	// Let the goroutines pile up on the in-flight request, then release it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load(), "concurrent reads must share one request")
}

func TestInvalidateForcesSingleRefetch(t *testing.T) {
	srv, calls := newCountingServer(t, `[]`)
	c := New(srv.URL, srv.Client())
	ctx := context.Background()

	_, err := c.Read(ctx, "/api/programs")
	require.NoError(t, err)

	// Duplicate invalidations cost at most one extra fetch.
	c.Invalidate("/api/programs")
	c.Invalidate("/api/programs")

	_, err = c.Read(ctx, "/api/programs")
	require.NoError(t, err)
	_, err = c.Read(ctx, "/api/programs")
	require.NoError(t, err)

	assert.Equal(t, int64(2), calls.Load())
}

func TestInvalidateDuringFetchKeepsKeyStale(t *testing.T) {
	var (
		mu      sync.Mutex
		payload = `[{"id":"old"}]`
		calls   atomic.Int64
	)
	inFlight := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(inFlight)
			<-release
		}
		mu.Lock()
		defer mu.Unlock()
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, srv.Client())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := c.Read(ctx, "/api/programs")
		assert.NoError(t, err)
	}()

	// While the first GET is held open, the data changes server-side
	// and the key is invalidated.
	<-inFlight
	mu.Lock()
	payload = `[{"id":"new"}]`
	mu.Unlock()
	c.Invalidate("/api/programs")
	close(release)
	<-done

	data, err := c.Read(ctx, "/api/programs")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"new"}]`, string(data), "read after invalidate must not serve the pre-mutation body")
	assert.Equal(t, int64(2), calls.Load())
}

func TestKeysAreIndependent(t *testing.T) {
	srv, calls := newCountingServer(t, `[]`)
	c := New(srv.URL, srv.Client())
	ctx := context.Background()

	_, err := c.Read(ctx, "/api/programs")
	require.NoError(t, err)
	_, err = c.Read(ctx, "/api/blog")
	require.NoError(t, err)

	c.Invalidate("/api/programs")

	_, err = c.Read(ctx, "/api/blog")
	require.NoError(t, err)

	assert.Equal(t, int64(2), calls.Load(), "invalidating one key must not evict another")
}

func TestErrorCarriesStatusAndServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"program not found"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, srv.Client())
	_, err := c.Read(context.Background(), "/api/programs/missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "program not found", apiErr.Message)
}

func TestWriteDoesNotTouchCache(t *testing.T) {
	var gets atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets.Add(1)
			w.Write([]byte(`[]`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"new"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, srv.Client())
	ctx := context.Background()

	_, err := c.Read(ctx, "/api/programs")
	require.NoError(t, err)

	_, err = c.Write(ctx, http.MethodPost, "/api/programs", map[string]string{"title": "x"})
	require.NoError(t, err)

	// Without an explicit invalidate the cached list is still served.
	_, err = c.Read(ctx, "/api/programs")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gets.Load())
}

func TestSubscribeNotifiedOnStoreAndInvalidate(t *testing.T) {
	srv, _ := newCountingServer(t, `[]`)
	c := New(srv.URL, srv.Client())

	ch, cancel := c.Subscribe("/api/programs")
	defer cancel()

	_, err := c.Read(context.Background(), "/api/programs")
	require.NoError(t, err)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification after store")
	}

	c.Invalidate("/api/programs")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification after invalidate")
	}
}

func TestProgramByIDNotFound(t *testing.T) {
	srv, _ := newCountingServer(t, `[{"id":"abc","title":"Clean Water"}]`)
	c := New(srv.URL, srv.Client())
	ctx := context.Background()

	p, err := c.ProgramByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Clean Water", p.Title)

	_, err = c.ProgramByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
