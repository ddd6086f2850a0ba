// Package useragent classifies inbound User-Agent headers.
//
// Every function here is a pure, total string match: there is no network
// access, no state, and no error path. An empty or unrecognized user agent
// falls through to the desktop category and false facets.
package useragent

import (
	"regexp"

	"github.com/ytlink/applink/internal/models"
)

// deviceRule maps a pattern to a device category. Rules are evaluated
// top-down and the first match wins, so the Apple tokens must stay ahead
// of the android token (iPads advertise neither, iPhones never say
// android, but some vendor builds carry both).
type deviceRule struct {
	device models.Device
	re     *regexp.Regexp
}

var deviceRules = []deviceRule{
	{models.DeviceIOS, regexp.MustCompile(`(?i)iphone|ipad|ipod`)},
	{models.DeviceAndroid, regexp.MustCompile(`(?i)android`)},
}

// ClassifyDevice maps a raw user agent to exactly one device category.
func ClassifyDevice(userAgent string) models.Device {
	for _, r := range deviceRules {
		if r.re.MatchString(userAgent) {
			return r.device
		}
	}

	return models.DeviceDesktop
}

var (
	// Unambiguous wrapper signatures of known social/chat apps. Any match
	// qualifies as in-app immediately.
	vendorInAppRe = regexp.MustCompile(`(?i)FBAN|FBAV|Instagram|KAKAOTALK|Line/`)

	// Generic WebView-shaped markers. These overlap with legitimate
	// browser signatures, so they only count when the agent does not also
	// look like a standard desktop-class browser.
	genericWebViewRe = regexp.MustCompile(`(?i)\bwv\b|Version/[\d.]+.*Mobile.*Safari`)

	// Desktop operating system tokens mark a standard browser and
	// suppress the generic WebView markers above.
	standardBrowserRe = regexp.MustCompile(`(?i)Windows NT|Macintosh|X11; Linux|CrOS`)

	// Known bot/crawler tokens of link-preview fetchers and search bots.
	crawlerRe = regexp.MustCompile(
		`(?i)facebookexternalhit|Twitterbot|LinkedInBot|WhatsApp|TelegramBot|Slackbot|KakaoTalk|discord|Applebot|GoogleBot`)

	mobileRe = regexp.MustCompile(`(?i)iphone|ipad|ipod|android|mobile`)
)

// facetRule pairs a predicate with the verdict an agent matching it
// receives. Like deviceRules, the list is evaluated top-down and the first
// match wins; agents matching no rule get the facet default of false.
type facetRule struct {
	verdict bool
	match   func(userAgent string) bool
}

var inAppRules = []facetRule{
	// Vendor tokens are unambiguous and rank above everything else.
	{true, vendorInAppRe.MatchString},
	// A standard desktop-class browser signature suppresses the generic
	// WebView markers, which overlap with legitimate browsers.
	{false, standardBrowserRe.MatchString},
	{true, genericWebViewRe.MatchString},
}

var crawlerRules = []facetRule{
	// A combined in-app + mobile signature outranks a crawler token: chat
	// apps embed product names that collide with their own crawler tokens
	// (KakaoTalk being the canonical case), and a preview opened from
	// inside the app must resolve as in-app, not as a bot.
	{false, func(userAgent string) bool {
		return vendorInAppRe.MatchString(userAgent) && mobileRe.MatchString(userAgent)
	}},
	{true, crawlerRe.MatchString},
}

func evalFacet(rules []facetRule, userAgent string) bool {
	for _, r := range rules {
		if r.match(userAgent) {
			return r.verdict
		}
	}

	return false
}

// DetectInAppBrowser reports whether the user agent belongs to an embedded
// web view inside a third-party app.
func DetectInAppBrowser(userAgent string) bool {
	return evalFacet(inAppRules, userAgent)
}

// DetectSocialCrawler reports whether the user agent is a link-preview or
// search-engine bot.
func DetectSocialCrawler(userAgent string) bool {
	return evalFacet(crawlerRules, userAgent)
}

// Classify bundles the three detectors into the resolver's inputs.
func Classify(userAgent string) (models.Device, models.BrowserContext) {
	return ClassifyDevice(userAgent), models.BrowserContext{
		InAppBrowser:  DetectInAppBrowser(userAgent),
		SocialCrawler: DetectSocialCrawler(userAgent),
	}
}
