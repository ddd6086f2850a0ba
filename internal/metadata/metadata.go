// Package metadata looks up crawler-facing video metadata via the YouTube
// oEmbed API. Lookups are total: any failure, timeout or unextractable
// video id degrades to placeholder metadata rather than an error.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/ytlink/applink/internal/metrics"
	"github.com/ytlink/applink/internal/models"
	"github.com/ytlink/applink/internal/platform/cache"
)

const (
	defaultOEmbedEndpoint = "https://www.youtube.com/oembed"

	placeholderTitle       = "YouTube"
	placeholderDescription = "Watch this video on YouTube"
	placeholderThumbnail   = "https://www.youtube.com/img/desktop/yt_1200.png"
)

// Fetcher produces metadata for a canonical web URL. Implementations must
// never block past their configured budget and must never fail.
type Fetcher interface {
	Fetch(ctx context.Context, webURL string) models.VideoMetadata
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([^&?#]+)`),
	regexp.MustCompile(`youtu\.be/([^&?#]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&?#]+)`),
}

// ExtractVideoID pulls the video identifier out of a YouTube URL, or
// returns "" when none of the known URL shapes match.
func ExtractVideoID(rawURL string) string {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// Client fetches oEmbed metadata with a bounded timeout and caches
// results per video id.
type Client struct {
	endpoint string
	http     *http.Client
	cache    *cache.Cache[models.VideoMetadata]
	ttl      time.Duration
	logger   *zap.SugaredLogger
}

// NewClient builds a Client. timeout bounds the whole lookup; ttl controls
// how long a fetched record is reused for repeated crawler hits.
func NewClient(timeout, ttl time.Duration, logger *zap.SugaredLogger) *Client {
	return &Client{
		endpoint: defaultOEmbedEndpoint,
		http:     &http.Client{Timeout: timeout},
		cache:    cache.New[models.VideoMetadata](),
		ttl:      ttl,
		logger:   logger,
	}
}

// WithEndpoint overrides the oEmbed endpoint. Used by tests.
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Fetch implements Fetcher.
func (c *Client) Fetch(ctx context.Context, webURL string) models.VideoMetadata {
	videoID := ExtractVideoID(webURL)
	if videoID == "" {
		metrics.RecordMetadataLookup("fallback")
		return Placeholder(webURL)
	}

	if m, ok := c.cache.Get(videoID); ok {
		metrics.RecordMetadataLookup("hit")
		m.CanonicalURL = webURL
		return m
	}

	m, err := c.lookup(ctx, webURL, videoID)
	if err != nil {
		c.logger.Infow("oembed lookup failed, serving placeholder",
			"video_id", videoID, "error", err)
		metrics.RecordMetadataLookup("fallback")
		return Placeholder(webURL)
	}

	c.cache.Set(videoID, m, c.ttl)
	metrics.RecordMetadataLookup("ok")
	return m
}

func (c *Client) lookup(ctx context.Context, webURL, videoID string) (models.VideoMetadata, error) {
	reqURL := fmt.Sprintf("%s?url=%s&format=json", c.endpoint, url.QueryEscape(webURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.VideoMetadata{}, fmt.Errorf("error building oembed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.VideoMetadata{}, fmt.Errorf("error fetching oembed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.VideoMetadata{}, fmt.Errorf("oembed response status %d", resp.StatusCode)
	}

	var body oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.VideoMetadata{}, fmt.Errorf("error decoding oembed payload: %w", err)
	}

	m := models.VideoMetadata{
		Title:        body.Title,
		Description:  placeholderDescription,
		ThumbnailURL: body.ThumbnailURL,
		CanonicalURL: webURL,
	}
	if m.Title == "" {
		m.Title = placeholderTitle
	}
	if body.AuthorName != "" {
		m.Description = fmt.Sprintf("A video by %s on YouTube", body.AuthorName)
	}
	if m.ThumbnailURL == "" {
		m.ThumbnailURL = fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
	}

	return m, nil
}

// Placeholder is the generic metadata served when lookup is impossible.
func Placeholder(webURL string) models.VideoMetadata {
	return models.VideoMetadata{
		Title:        placeholderTitle,
		Description:  placeholderDescription,
		ThumbnailURL: placeholderThumbnail,
		CanonicalURL: webURL,
	}
}
