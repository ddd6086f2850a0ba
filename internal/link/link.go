// Package link normalizes inbound paths into canonical YouTube web URLs.
package link

import (
	"regexp"
	"strings"

	"github.com/ytlink/applink/internal/models"
)

// YouTubeWeb is the web origin used as the universal fallback target.
const YouTubeWeb = "https://www.youtube.com/"

var (
	schemeRe     = regexp.MustCompile(`^https?:/?/?`)
	slashRunRe   = regexp.MustCompile(`/+`)
	disallowedRe = regexp.MustCompile(`^\.env(\..*)?$`)
)

// Normalize turns a raw path plus query string into a models.Link.
//
// The transform is order-sensitive: concatenate, strip one leading slash,
// reject empty or dotfile-looking input, strip an http(s) scheme (a single
// missing slash after the scheme is tolerated), collapse slash runs, strip
// the leading slash that collapsing may leave behind, then test YouTube
// domain membership and build the canonical web URL. Empty or disallowed
// input maps to the site-root sentinel instead of failing.
//
// Normalize is idempotent on already-cleaned input.
func Normalize(rawPath, rawQuery string) models.Link {
	raw := rawPath
	if rawQuery != "" {
		raw += "?" + rawQuery
	}

	cleaned := strings.TrimPrefix(raw, "/")
	if cleaned == "" || disallowedRe.MatchString(cleaned) {
		return models.Link{WebURL: YouTubeWeb}
	}

	cleaned = schemeRe.ReplaceAllString(cleaned, "")
	cleaned = slashRunRe.ReplaceAllString(cleaned, "/")
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || disallowedRe.MatchString(cleaned) {
		return models.Link{WebURL: YouTubeWeb}
	}

	hasYouTube := strings.Contains(cleaned, "youtube.com") || strings.Contains(cleaned, "youtu.be")

	webURL := YouTubeWeb + cleaned
	if hasYouTube {
		webURL = "https://" + cleaned
	}

	return models.Link{
		CleanedPath:      cleaned,
		HasYouTubeDomain: hasYouTube,
		WebURL:           webURL,
	}
}
