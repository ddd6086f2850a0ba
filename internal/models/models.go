package models

// Device is the coarse device category derived from the User-Agent header.
type Device string

const (
	DeviceIOS     Device = "ios"
	DeviceAndroid Device = "android"
	DeviceDesktop Device = "desktop"
)

// BrowserContext carries the User-Agent facets that influence resolution.
// The two flags are not mutually exclusive; the resolver gives crawler
// detection precedence when both are set.
type BrowserContext struct {
	InAppBrowser  bool
	SocialCrawler bool
}

// Link is the normalized form of an inbound path and query string.
// WebURL is always an absolute https URL and is usable as a universal
// fallback on any device. A CleanedPath of "" marks the site-root sentinel
// produced for empty or disallowed input.
type Link struct {
	CleanedPath      string
	HasYouTubeDomain bool
	WebURL           string
}

// IsRoot reports whether the link normalized to the site-root sentinel.
func (l Link) IsRoot() bool {
	return l.CleanedPath == ""
}

// DecisionKind enumerates the possible outcomes of redirect resolution.
type DecisionKind string

const (
	DecisionWeb          DecisionKind = "web"
	DecisionNativeScheme DecisionKind = "native_scheme"
	DecisionIntent       DecisionKind = "intent"
	DecisionCrawlerPage  DecisionKind = "crawler_page"
	DecisionInterstitial DecisionKind = "interstitial"
)

// Decision is the single output of the resolver. Exactly one is produced
// per request and it fully determines the HTTP response shape.
//
//   - DecisionWeb, DecisionNativeScheme, DecisionIntent: 302 to Location.
//   - DecisionCrawlerPage: metadata HTML page; FallbackURL is the
//     device-appropriate target embedded in the page.
//   - DecisionInterstitial: the deep-link-with-fallback page, keyed by
//     WebURL, CleanedLink and Platform.
type Decision struct {
	Kind        DecisionKind
	Location    string
	WebURL      string
	FallbackURL string
	CleanedLink string
	Platform    Device
}

// VideoMetadata is the crawler-facing description of a video. All fields
// are populated; lookups that fail substitute placeholder values.
type VideoMetadata struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	CanonicalURL string `json:"canonical_url"`
}
