// Package resolver computes the outbound redirect decision for a request.
//
// Resolution is a pure function over the normalized link, the device
// category and the browser context. It cannot fail: every well-formed
// input produces exactly one decision, and parsing ambiguity inside the
// Android intent builder degrades to a plain web target.
package resolver

import (
	"net/url"
	"strings"

	"github.com/ytlink/applink/internal/link"
	"github.com/ytlink/applink/internal/models"
)

const (
	nativeScheme   = "youtube://"
	androidPackage = "com.google.android.youtube"
)

// Resolve applies the precedence order: crawler first, then the device
// branch (iOS native scheme, Android intent or interstitial, desktop web).
func Resolve(lnk models.Link, device models.Device, ctx models.BrowserContext) models.Decision {
	if lnk.IsRoot() {
		return models.Decision{Kind: models.DecisionWeb, Location: link.YouTubeWeb, WebURL: link.YouTubeWeb}
	}

	if ctx.SocialCrawler {
		// The embedded fallback is the device-appropriate target the
		// preview card links to. The in-app flag is ignored here: an
		// interstitial makes no sense inside a preview fetcher.
		fallback := resolveDevice(lnk, device, models.BrowserContext{})
		return models.Decision{
			Kind:        models.DecisionCrawlerPage,
			WebURL:      lnk.WebURL,
			FallbackURL: fallback.Location,
			CleanedLink: lnk.CleanedPath,
			Platform:    device,
		}
	}

	return resolveDevice(lnk, device, ctx)
}

func resolveDevice(lnk models.Link, device models.Device, ctx models.BrowserContext) models.Decision {
	switch device {
	case models.DeviceIOS:
		// The iOS app accepts the same path shape as the web site, so the
		// cleaned path is appended verbatim.
		return models.Decision{
			Kind:     models.DecisionNativeScheme,
			Location: nativeScheme + lnk.CleanedPath,
			WebURL:   lnk.WebURL,
		}

	case models.DeviceAndroid:
		if ctx.InAppBrowser {
			// A direct 302 to an intent URI from inside another app's
			// WebView fails silently on most vendors. The caller renders
			// the interstitial, which runs the timed fallback sequence.
			return models.Decision{
				Kind:        models.DecisionInterstitial,
				WebURL:      lnk.WebURL,
				CleanedLink: lnk.CleanedPath,
				Platform:    models.DeviceAndroid,
			}
		}
		return models.Decision{
			Kind:     models.DecisionIntent,
			Location: BuildAndroidIntent(lnk),
			WebURL:   lnk.WebURL,
		}

	default:
		return models.Decision{
			Kind:     models.DecisionWeb,
			Location: lnk.WebURL,
			WebURL:   lnk.WebURL,
		}
	}
}

// intentTarget classifies the cleaned path for the Android intent builder.
type intentTarget int

const (
	targetGeneric intentTarget = iota
	targetWatch
	targetPlaylist
	targetShortLink
	targetChannel
)

func classifyIntentTarget(lnk models.Link) intentTarget {
	if !lnk.HasYouTubeDomain {
		return targetGeneric
	}

	p := lnk.CleanedPath
	switch {
	case strings.Contains(p, "youtube.com/watch"):
		return targetWatch
	case strings.Contains(p, "youtube.com/playlist"):
		return targetPlaylist
	case strings.Contains(p, "youtu.be/"):
		return targetShortLink
	case strings.Contains(p, "youtube.com/channel/"),
		strings.Contains(p, "youtube.com/c/"),
		strings.Contains(p, "youtube.com/@"):
		return targetChannel
	default:
		return targetGeneric
	}
}

// BuildAndroidIntent produces an intent:// URI that asks Android to open
// the YouTube app, with the canonical web URL declared as the
// browser_fallback_url so absence of the app degrades silently to the
// browser. Watch and playlist links are spliced onto canonical paths with
// their query strings preserved; youtu.be short links are rewritten to
// watch?v=<id>; channel and unrecognized paths pass through. A malformed
// short link yields the plain web URL instead of an invalid intent.
func BuildAndroidIntent(lnk models.Link) string {
	cleaned := lnk.CleanedPath

	switch classifyIntentTarget(lnk) {
	case targetWatch:
		return intentURI("www.youtube.com/watch"+queryFrom(cleaned), lnk.WebURL)

	case targetPlaylist:
		return intentURI("www.youtube.com/playlist"+queryFrom(cleaned), lnk.WebURL)

	case targetShortLink:
		rest := cleaned[strings.Index(cleaned, "youtu.be/")+len("youtu.be/"):]
		videoID, extra, _ := strings.Cut(rest, "?")
		if videoID == "" {
			return lnk.WebURL
		}
		path := "www.youtube.com/watch?v=" + videoID
		if extra != "" {
			path += "&" + extra
		}
		return intentURI(path, lnk.WebURL)

	default:
		// Channel and generic paths share the pass-through shape.
		p := strings.TrimPrefix(cleaned, "www.")
		if !strings.HasPrefix(p, "youtube.com/") {
			p = "youtube.com/" + p
		}
		return intentURI("www."+p, lnk.WebURL)
	}
}

// BuildInAppIntent is the short-form variant used by the interstitial
// script: it targets the youtube scheme directly instead of the https
// deep link, which in-app WebViews accept more reliably.
func BuildInAppIntent(cleanedLink, webURL string) string {
	return "intent://" + cleanedLink +
		"#Intent;scheme=youtube;package=" + androidPackage +
		";S.browser_fallback_url=" + url.QueryEscape(webURL) + ";end"
}

func intentURI(path, fallbackURL string) string {
	return "intent://" + path +
		"#Intent;scheme=https;package=" + androidPackage +
		";action=android.intent.action.VIEW" +
		";S.browser_fallback_url=" + url.QueryEscape(fallbackURL) + ";end"
}

func queryFrom(cleaned string) string {
	if i := strings.Index(cleaned, "?"); i != -1 {
		return cleaned[i:]
	}
	return ""
}
