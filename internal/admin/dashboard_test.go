package admin

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TechXplorers1/comagend-website/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardServer(t *testing.T, blogFails bool) *client.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/programs", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","title":"Clean Water","category":"Health"},{"id":"p2","title":"Youth Academy","category":"Education"}]`))
	})
	mux.HandleFunc("/api/blog", func(w http.ResponseWriter, r *http.Request) {
		if blogFails {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"database error"}`))
			return
		}
		w.Write([]byte(`[{"id":"b1","title":"Post"}]`))
	})
	mux.HandleFunc("/api/contact-messages", func(w http.ResponseWriter, r *http.Request) {
		// Seven messages; the preview must cap at five.
		w.Write([]byte(`[` +
			`{"id":"m1","name":"A"},{"id":"m2","name":"B"},{"id":"m3","name":"C"},` +
			`{"id":"m4","name":"D"},{"id":"m5","name":"E"},{"id":"m6","name":"F"},` +
			`{"id":"m7","name":"G"}]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return client.New(srv.URL, srv.Client())
}

func TestDashboardCountsAndPreviews(t *testing.T) {
	c := dashboardServer(t, false)

	d := LoadDashboard(context.Background(), c)

	require.NoError(t, d.Programs.Err)
	assert.Equal(t, 2, d.Programs.Count)
	assert.Len(t, d.Programs.Recent, 2)

	require.NoError(t, d.BlogPosts.Err)
	assert.Equal(t, 1, d.BlogPosts.Count)

	require.NoError(t, d.Contacts.Err)
	assert.Equal(t, 7, d.Contacts.Count)
	assert.Len(t, d.Contacts.Recent, 5, "preview capped at five most recent")
}

func TestDashboardPartialFailureIsolation(t *testing.T) {
	c := dashboardServer(t, true)

	d := LoadDashboard(context.Background(), c)

	require.Error(t, d.BlogPosts.Err, "blog section carries its own error")
	assert.Zero(t, d.BlogPosts.Count)

	require.NoError(t, d.Programs.Err, "programs unaffected by the blog failure")
	assert.Equal(t, 2, d.Programs.Count)

	require.NoError(t, d.Contacts.Err, "contacts unaffected by the blog failure")
	assert.Equal(t, 7, d.Contacts.Count)
}

func TestDashboardAllSectionsFailIndependently(t *testing.T) {
	mux := http.NewServeMux()
	for i, path := range []string{"/api/programs", "/api/blog", "/api/contact-messages"} {
		msg := fmt.Sprintf(`{"error":"failure %d"}`, i)
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(msg))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	d := LoadDashboard(context.Background(), client.New(srv.URL, srv.Client()))

	assert.Error(t, d.Programs.Err)
	assert.Error(t, d.BlogPosts.Err)
	assert.Error(t, d.Contacts.Err)
}
