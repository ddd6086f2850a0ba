package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "watch url", url: "https://www.youtube.com/watch?v=abc123", want: "abc123"},
		{name: "watch url with extra params", url: "https://www.youtube.com/watch?v=abc123&t=42", want: "abc123"},
		{name: "short link", url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short link with timestamp", url: "https://youtu.be/dQw4w9WgXcQ?t=5", want: "dQw4w9WgXcQ"},
		{name: "embed url", url: "https://www.youtube.com/embed/xyz987", want: "xyz987"},
		{name: "channel url has no id", url: "https://www.youtube.com/@somecreator", want: ""},
		{name: "plain origin", url: "https://www.youtube.com/", want: ""},
		{name: "empty", url: "", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVideoID(tt.url))
		})
	}
}

func TestClientFetch(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"title":"Never Gonna Give You Up","author_name":"Rick Astley","thumbnail_url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"}`))
		require.NoError(t, err)
	}))
	defer srv.Close()

	client := NewClient(time.Second, time.Hour, zap.L().Sugar()).WithEndpoint(srv.URL)

	webURL := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	got := client.Fetch(context.Background(), webURL)

	assert.Equal(t, "Never Gonna Give You Up", got.Title)
	assert.Equal(t, "A video by Rick Astley on YouTube", got.Description)
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", got.ThumbnailURL)
	assert.Equal(t, webURL, got.CanonicalURL)
}

func TestClientFetchCachesPerVideoID(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"title":"Cached","author_name":"Someone"}`))
	}))
	defer srv.Close()

	client := NewClient(time.Second, time.Hour, zap.L().Sugar()).WithEndpoint(srv.URL)

	webURL := "https://www.youtube.com/watch?v=abc123"
	first := client.Fetch(context.Background(), webURL)
	second := client.Fetch(context.Background(), webURL)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first.Title, second.Title)
}

func TestClientFetchPlaceholderOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(time.Second, time.Hour, zap.L().Sugar()).WithEndpoint(srv.URL)

	webURL := "https://www.youtube.com/watch?v=missing1"
	got := client.Fetch(context.Background(), webURL)

	assert.Equal(t, Placeholder(webURL), got)
}

func TestClientFetchPlaceholderOnMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"title": `))
	}))
	defer srv.Close()

	client := NewClient(time.Second, time.Hour, zap.L().Sugar()).WithEndpoint(srv.URL)

	got := client.Fetch(context.Background(), "https://www.youtube.com/watch?v=broken01")

	assert.Equal(t, "YouTube", got.Title)
	assert.Equal(t, "https://www.youtube.com/img/desktop/yt_1200.png", got.ThumbnailURL)
}

func TestClientFetchPlaceholderWithoutVideoID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no HTTP request expected when no video id is extractable")
	}))
	defer srv.Close()

	client := NewClient(time.Second, time.Hour, zap.L().Sugar()).WithEndpoint(srv.URL)

	webURL := "https://www.youtube.com/@somecreator"
	got := client.Fetch(context.Background(), webURL)

	assert.Equal(t, Placeholder(webURL), got)
}

func TestClientFetchRespectsContextDeadline(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	client := NewClient(time.Minute, time.Hour, zap.L().Sugar()).WithEndpoint(srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	got := client.Fetch(ctx, "https://www.youtube.com/watch?v=slooow12")

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, "YouTube", got.Title)
}
