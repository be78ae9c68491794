// Package fetch retrieves brand pages over HTTP and exposes the page
// capabilities the analyzer consumes: main text, page metadata, social
// profile links and stylesheet colors. A client downloads each URL once and
// serves every capability from the cached body, so concurrent capability
// calls share one request.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/singleflight"

	"github.com/marcus/brandsmith/internal/patterns"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; BrandsmithBot/1.0)"

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 5 << 20

// maxLinkedStylesheets bounds the extra requests made for external CSS.
const maxLinkedStylesheets = 2

// Error represents an error during URL fetching.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
	Headers     map[string]string
	// RenderJS falls back to a headless browser when the plain HTTP body
	// yields too little text. Requires Chrome on the host.
	RenderJS bool
	Verbose  bool
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// PageMetadata holds the head-level facts of a page.
type PageMetadata struct {
	Title       string
	SiteName    string
	Description string
	Keywords    []string
}

// page is one downloaded document.
type page struct {
	URL        string
	HTML       string
	StatusCode int
}

// Client fetches brand pages and answers capability queries against them.
type Client struct {
	options *Options
	lib     patterns.Library
	client  *http.Client

	group singleflight.Group
	mu    sync.RWMutex
	pages map[string]*page
}

// NewClient returns a client backed by the built-in pattern library.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodySize == 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}
	return &Client{
		options: opts,
		lib:     patterns.Default(),
		client:  &http.Client{Timeout: opts.Timeout},
		pages:   make(map[string]*page),
	}
}

// FetchText downloads the page and returns its cleaned main text, using
// selectors tuned to the detected site builder.
func (c *Client) FetchText(ctx context.Context, urlStr string) (string, error) {
	pg, err := c.page(ctx, urlStr)
	if err != nil {
		return "", err
	}
	platform := DetectPlatform(urlStr, pg.HTML)
	text, err := ExtractMainText(pg.HTML, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to parse HTML", Cause: err}
	}
	return text, nil
}

// FetchMetadata returns the title, site name, description and keywords
// declared in the page head. Missing tags leave fields empty.
func (c *Client) FetchMetadata(ctx context.Context, urlStr string) (*PageMetadata, error) {
	doc, err := c.document(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	meta := &PageMetadata{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		SiteName:    metaContent(doc, `meta[property="og:site_name"]`),
		Description: metaContent(doc, `meta[name="description"]`),
	}
	if meta.Description == "" {
		meta.Description = metaContent(doc, `meta[property="og:description"]`)
	}
	if raw := metaContent(doc, `meta[name="keywords"]`); raw != "" {
		for _, kw := range strings.Split(raw, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				meta.Keywords = append(meta.Keywords, kw)
			}
		}
	}
	return meta, nil
}

// FetchSocialLinks scans anchor hrefs for known social platforms and returns
// at most one profile URL per platform. A page without social anchors yields
// a nil map and no error.
func (c *Client) FetchSocialLinks(ctx context.Context, urlStr string) (map[string]string, error) {
	doc, err := c.document(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})

	links := make(map[string]string)
	for _, platform := range socialPlatformOrder {
		pattern, ok := c.lib.SocialPatterns[platform]
		if !ok {
			continue
		}
		for _, href := range hrefs {
			if match := pattern.FindString(href); match != "" {
				links[platform] = normalizeSocialLink(match)
				break
			}
		}
	}
	if len(links) == 0 {
		return nil, nil
	}
	return links, nil
}

// FetchStylesheetColors collects hex colors from inline style blocks, style
// attributes and up to two linked stylesheets. Stylesheet download failures
// degrade to whatever the inline styles gave us.
func (c *Client) FetchStylesheetColors(ctx context.Context, urlStr string) ([]string, error) {
	doc, err := c.document(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	var css strings.Builder
	doc.Find("style").Each(func(_ int, sel *goquery.Selection) {
		css.WriteString(sel.Text())
		css.WriteString("\n")
	})
	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		if style, ok := sel.Attr("style"); ok {
			css.WriteString(style)
			css.WriteString("\n")
		}
	})

	if base, err := url.Parse(urlStr); err == nil {
		fetched := 0
		doc.Find(`link[rel="stylesheet"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if fetched == maxLinkedStylesheets {
				return false
			}
			href, ok := sel.Attr("href")
			if !ok || strings.TrimSpace(href) == "" {
				return true
			}
			sheetURL, err := base.Parse(href)
			if err != nil {
				return true
			}
			body, err := c.downloadRaw(ctx, sheetURL.String())
			if err != nil {
				return true
			}
			css.WriteString(body)
			css.WriteString("\n")
			fetched++
			return true
		})
	}

	return c.colorsFrom(css.String()), nil
}

// socialPlatformOrder fixes the scan order so repeated runs behave
// identically.
var socialPlatformOrder = []string{
	"facebook", "twitter", "instagram", "linkedin", "youtube", "tiktok",
}

func normalizeSocialLink(link string) string {
	link = strings.TrimRight(link, "/.")
	if !strings.Contains(link, "://") {
		link = "https://" + link
	}
	return link
}

func (c *Client) colorsFrom(css string) []string {
	matches := c.lib.HexColorPattern.FindAllString(css, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var colors []string
	for _, m := range matches {
		color := strings.ToLower(m)
		if seen[color] || c.lib.ExcludedColors[color] {
			continue
		}
		seen[color] = true
		colors = append(colors, color)
		if len(colors) == c.lib.Limits.MaxColors {
			break
		}
	}
	if len(colors) == 0 {
		return nil
	}
	return colors
}

// page returns the downloaded document for a URL, fetching it on first use.
// Concurrent callers for the same URL share one download.
func (c *Client) page(ctx context.Context, urlStr string) (*page, error) {
	c.mu.RLock()
	cached, ok := c.pages[urlStr]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do(urlStr, func() (any, error) {
		pg, err := c.download(ctx, urlStr)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.pages[urlStr] = pg
		c.mu.Unlock()
		return pg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*page), nil
}

func (c *Client) document(ctx context.Context, urlStr string) (*goquery.Document, error) {
	pg, err := c.page(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pg.HTML))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to parse HTML", Cause: err}
	}
	return doc, nil
}

func (c *Client) download(ctx context.Context, urlStr string) (*page, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.options.UserAgent)
	for key, value := range c.options.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.options.MaxBodySize))
	if err != nil {
		return nil, &Error{URL: urlStr, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			URL:        urlStr,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	pg := &page{URL: urlStr, HTML: string(body), StatusCode: resp.StatusCode}

	if c.options.RenderJS {
		text, _ := ExtractMainText(pg.HTML, BrandPageSelectors())
		if ShouldUseBrowser(text) {
			if rendered, err := renderWithBrowser(ctx, urlStr, c.options.Timeout, c.options.Verbose); err == nil && rendered != "" {
				pg.HTML = rendered
			}
		}
	}

	return pg, nil
}

// downloadRaw fetches an auxiliary resource (a stylesheet) without caching.
func (c *Client) downloadRaw(ctx context.Context, urlStr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.options.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.options.MaxBodySize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// ExtractMainText parses HTML and returns the main body text. It removes
// noise elements using noiseSelectors, then finds content using
// contentSelectors, falling back to the body element. Footers are kept
// because brand pages put contact details there.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, header, script, style, noscript, .ad, .advertisement, .ads, .cookie-banner, .popup").Remove()

	if len(noiseSelectors) > 0 {
		if noiseSelector := strings.Join(noiseSelectors, ", "); noiseSelector != "" {
			doc.Find(noiseSelector).Remove()
		}
	}

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}

	text := ""
	if mainContent != nil {
		text = mainContent.Text()
		// The footer usually sits outside the content element but carries
		// contact details, so bring it along.
		if footer := doc.Find("footer").First(); footer.Length() > 0 {
			text += "\n" + footer.Text()
		}
	} else {
		text = doc.Find("body").Text()
	}

	return cleanWhitespace(text), nil
}

// DefaultTextSelectors returns standard selectors for general web content.
func DefaultTextSelectors() []string {
	return []string{
		"main",
		"article",
		".content",
		"#content",
		".main-content",
		"#main-content",
	}
}

// BrandPageSelectors returns selectors for brand sites (home, about, story).
func BrandPageSelectors() []string {
	return []string{
		"main",
		"article",
		".about-content",
		".brand-content",
		".hero-content",
		".content",
		"#content",
	}
}

// cleanWhitespace normalizes whitespace in text.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
