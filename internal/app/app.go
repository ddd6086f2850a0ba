package app

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ytlink/applink/internal/config"
	"github.com/ytlink/applink/internal/link"
	"github.com/ytlink/applink/internal/metadata"
	"github.com/ytlink/applink/internal/metrics"
	"github.com/ytlink/applink/internal/models"
	"github.com/ytlink/applink/internal/resolver"
	"github.com/ytlink/applink/internal/useragent"
)

type App struct {
	config  *config.ServerConfig
	fetcher metadata.Fetcher
	logger  *zap.SugaredLogger
}

func NewApp(config *config.ServerConfig, fetcher metadata.Fetcher, logger *zap.SugaredLogger) *App {
	return &App{
		config:  config,
		fetcher: fetcher,
		logger:  logger,
	}
}

// RedirectURL is typed template.URL because the device-appropriate
// target may carry a youtube:// or intent:// scheme, which the
// template engine would otherwise filter out of href attributes. The
// value is always built by the resolver, never taken from user input.
type crawlerPageData struct {
	Meta        models.VideoMetadata
	RedirectURL template.URL
}

type interstitialData struct {
	WebURL    string
	NativeURL string
	IntentURL string
	Platform  models.Device
}

// Redirect is the catch-all entry point: it classifies the request,
// normalizes the link and answers according to the resolved decision.
func (a *App) Redirect(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Header("Allow", "GET, HEAD")
		c.AbortWithStatus(http.StatusMethodNotAllowed)
		return
	}

	userAgent := c.Request.UserAgent()
	device, browserCtx := useragent.Classify(userAgent)
	lnk := link.Normalize(c.Request.URL.Path, c.Request.URL.RawQuery)

	decision := resolver.Resolve(lnk, device, browserCtx)
	metrics.RecordDecision(string(decision.Kind), string(device))

	switch decision.Kind {
	case models.DecisionCrawlerPage:
		a.serveCrawlerPage(c, decision)

	case models.DecisionInterstitial:
		setNoStore(c)
		c.Redirect(http.StatusFound, a.interstitialURL(decision))

	default:
		setNoStore(c)
		c.Redirect(http.StatusFound, decision.Location)
	}
}

func (a *App) serveCrawlerPage(c *gin.Context, decision models.Decision) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), a.config.MetadataTimeout)
	defer cancel()

	meta := a.fetcher.Fetch(ctx, decision.WebURL)

	// Metadata is stable per video, so crawler responses get a short
	// positive cache lifetime.
	c.Header("Cache-Control", "public, max-age=3600")
	c.HTML(http.StatusOK, "crawler.html.tmpl", crawlerPageData{
		Meta:        meta,
		RedirectURL: template.URL(decision.FallbackURL),
	})
}

func (a *App) interstitialURL(decision models.Decision) string {
	params := url.Values{}
	params.Set("url", decision.WebURL)
	params.Set("link", decision.CleanedLink)
	params.Set("platform", string(decision.Platform))

	return strings.TrimSuffix(a.config.BaseURL, "/") + interstitialPath + "?" + params.Encode()
}

// Interstitial renders the deep-link page that drives the timed fallback
// sequence on the client. Missing parameters or a web URL that does not
// point at YouTube redirect to the site root.
func (a *App) Interstitial(c *gin.Context) {
	webURL := c.Query("url")
	cleanedLink := c.Query("link")
	platform := models.Device(c.Query("platform"))

	if webURL == "" || cleanedLink == "" || !isYouTubeURL(webURL) {
		c.Redirect(http.StatusFound, rootPath)
		return
	}

	if platform != models.DeviceIOS {
		platform = models.DeviceAndroid
	}

	setNoStore(c)
	c.HTML(http.StatusOK, "interstitial.html.tmpl", interstitialData{
		WebURL:    webURL,
		NativeURL: "youtube://" + cleanedLink,
		IntentURL: resolver.BuildInAppIntent(cleanedLink, webURL),
		Platform:  platform,
	})
}

func (a *App) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// isYouTubeURL refuses interstitial targets outside the YouTube origins,
// since the page navigates to the value from the query string.
func isYouTubeURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "https" {
		return false
	}

	host := u.Hostname()
	return host == "youtu.be" || host == "youtube.com" || strings.HasSuffix(host, ".youtube.com")
}

// setNoStore defeats intermediary caching of personalized redirects.
// The legacy Pragma/Expires pair still matters for older proxies.
func setNoStore(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}
