// Package fetch - platform.go detects the site builder behind a brand page
// and tunes content selectors to it.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known site builder.
type Platform string

const (
	// PlatformShopify is a Shopify storefront
	PlatformShopify Platform = "shopify"
	// PlatformWix is a Wix site
	PlatformWix Platform = "wix"
	// PlatformSquarespace is a Squarespace site
	PlatformSquarespace Platform = "squarespace"
	// PlatformWebflow is a Webflow site
	PlatformWebflow Platform = "webflow"
	// PlatformUnknown is an unrecognized builder
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the site builder from the URL host and the page
// markup. The generator meta tag is the most reliable signal; hosted
// subdomains and CDN references cover the rest.
func DetectPlatform(urlStr, html string) Platform {
	if parsed, err := url.Parse(urlStr); err == nil {
		host := strings.ToLower(parsed.Host)
		switch {
		case strings.Contains(host, "myshopify.com"):
			return PlatformShopify
		case strings.Contains(host, "wixsite.com"):
			return PlatformWix
		case strings.Contains(host, "squarespace.com"):
			return PlatformSquarespace
		case strings.Contains(host, "webflow.io"):
			return PlatformWebflow
		}
	}

	lowered := strings.ToLower(html)
	switch {
	case strings.Contains(lowered, "cdn.shopify.com") || strings.Contains(lowered, `content="shopify`):
		return PlatformShopify
	case strings.Contains(lowered, "static.parastorage.com") || strings.Contains(lowered, `content="wix.com`):
		return PlatformWix
	case strings.Contains(lowered, `content="squarespace`):
		return PlatformSquarespace
	case strings.Contains(lowered, `content="webflow`) || strings.Contains(lowered, "assets.website-files.com"):
		return PlatformWebflow
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a site builder.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformShopify:
		return []string{
			"#MainContent",
			".shopify-section",
			"main",
			".content",
		}
	case PlatformWix:
		return []string{
			"#PAGES_CONTAINER",
			"#SITE_CONTAINER",
			"main",
		}
	case PlatformSquarespace:
		return []string{
			"#page",
			"main",
			".content-wrapper",
		}
	case PlatformWebflow:
		return []string{
			"main",
			".main-wrapper",
			".page-wrapper",
		}
	default:
		return BrandPageSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a builder.
// Announcement bars are deliberately left in: they carry pricing and
// shipping signals.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		// Overlays and drawers
		".cart-drawer",
		"#CartDrawer",
		".search-overlay",
		".newsletter-popup",
		".modal",

		// Cookie and GDPR
		".cookie-consent",
		".gdpr-notice",
		"[data-testid='consent-banner']",
	}

	switch platform {
	case PlatformShopify:
		return append(common,
			"#shopify-section-cart-drawer",
			".predictive-search",
			".cart-notification",
		)
	case PlatformSquarespace:
		return append(common,
			".sqs-cookie-banner-v2",
			".sqs-popup-overlay",
		)
	case PlatformWebflow:
		return append(common,
			".w-nav-overlay",
		)
	default:
		return common
	}
}
