package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brandPageHTML = `
<html>
<head>
	<title>Acme Corp | Premium Widgets</title>
	<meta property="og:site_name" content="Acme Corp">
	<meta name="description" content="Premium widgets for serious workshops.">
	<meta name="keywords" content="widgets, workshop tools , quality">
	<style>.hero { background: #1A2B3C; color: #ffffff; }</style>
</head>
<body>
	<nav>Home About Shop</nav>
	<main>
		<h1>Premium widgets, built to last</h1>
		<p>Acme Corp makes widgets for workshops that refuse to compromise.</p>
	</main>
	<footer>
		<p>Contact us: hello@acmecorp.com</p>
		<a href="https://facebook.com/acmecorp">Facebook</a>
		<a href="https://www.instagram.com/acmecorp/">Instagram</a>
		<a href="/about">About</a>
	</footer>
</body>
</html>`

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestFetchText(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(brandPageHTML))
	})

	client := NewClient(nil)
	text, err := client.FetchText(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "Premium widgets, built to last")
	assert.Contains(t, text, "refuse to compromise")
	assert.NotContains(t, text, "Home About Shop", "Nav should be stripped")
	assert.Contains(t, text, "hello@acmecorp.com", "Footer contact details must survive extraction")
}

func TestFetchMetadata(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(brandPageHTML))
	})

	client := NewClient(nil)
	meta, err := client.FetchMetadata(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp | Premium Widgets", meta.Title)
	assert.Equal(t, "Acme Corp", meta.SiteName)
	assert.Equal(t, "Premium widgets for serious workshops.", meta.Description)
	assert.Equal(t, []string{"widgets", "workshop tools", "quality"}, meta.Keywords)
}

func TestFetchMetadataFallsBackToOpenGraph(t *testing.T) {
	html := `<html><head>
		<meta property="og:description" content="From the social card.">
	</head><body></body></html>`
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(html))
	})

	client := NewClient(nil)
	meta, err := client.FetchMetadata(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "From the social card.", meta.Description)
	assert.Empty(t, meta.Title)
}

func TestFetchSocialLinks(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(brandPageHTML))
	})

	client := NewClient(nil)
	links, err := client.FetchSocialLinks(context.Background(), server.URL)
	require.NoError(t, err)
	require.NotNil(t, links)

	assert.Equal(t, "https://facebook.com/acmecorp", links["facebook"])
	assert.Contains(t, links["instagram"], "instagram.com/acmecorp")
	assert.NotContains(t, links, "twitter", "Only platforms present on the page appear")
}

func TestFetchSocialLinksNoneFound(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a href="/about">About</a></body></html>`))
	})

	client := NewClient(nil)
	links, err := client.FetchSocialLinks(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Nil(t, links)
}

func TestFetchStylesheetColors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/styles.css", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		_, _ = w.Write([]byte(`.btn { background: #FF6600; } .muted { color: #ffffff; }`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
			<link rel="stylesheet" href="/styles.css">
			<style>body { color: #1a2b3c; }</style>
		</head><body><div style="border-color: #00ff88"></div></body></html>`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(nil)
	colors, err := client.FetchStylesheetColors(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, colors, "#1a2b3c", "Inline style block colors should be found")
	assert.Contains(t, colors, "#00ff88", "Style attribute colors should be found")
	assert.Contains(t, colors, "#ff6600", "Linked stylesheet colors should be found, lowercased")
	assert.NotContains(t, colors, "#ffffff", "Near-neutral colors are excluded")
}

func TestClientCachesPage(t *testing.T) {
	var hits int32
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(brandPageHTML))
	})

	client := NewClient(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = client.FetchText(ctx, server.URL)
		}()
	}
	wg.Wait()

	_, err := client.FetchMetadata(ctx, server.URL)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits),
		"All capability calls should share one download")
}

func TestFetchInvalidURL(t *testing.T) {
	client := NewClient(nil)
	_, err := client.FetchText(context.Background(), "not-a-valid-url")
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestFetchHTTPError(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client := NewClient(nil)
	_, err := client.FetchText(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchErrorsAreNotCached(t *testing.T) {
	var hits int32
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(brandPageHTML))
	})

	client := NewClient(nil)
	ctx := context.Background()

	_, err := client.FetchText(ctx, server.URL)
	require.Error(t, err, "First request should surface the 503")

	text, err := client.FetchText(ctx, server.URL)
	require.NoError(t, err, "Second request should retry rather than replay the failure")
	assert.Contains(t, text, "Premium widgets")
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotAgent string
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	})

	client := NewClient(&Options{UserAgent: "custom-agent/2.0"})
	_, err := client.FetchText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "custom-agent/2.0", gotAgent)
}

func TestFetchRespectsMaxBodySize(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "<html><body>%s</body></html>", make([]byte, 1<<20))
	})

	client := NewClient(&Options{MaxBodySize: 256})
	text, err := client.FetchText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(text), 256)
}

func TestExtractMainText(t *testing.T) {
	t.Run("prefers main element", func(t *testing.T) {
		html := `<html><body>
			<nav>Navigation</nav>
			<main><h1>Main Content</h1><p>The important text.</p></main>
		</body></html>`

		text, err := ExtractMainText(html, DefaultTextSelectors())
		require.NoError(t, err)
		assert.Contains(t, text, "Main Content")
		assert.Contains(t, text, "important text")
		assert.NotContains(t, text, "Navigation")
	})

	t.Run("falls back to body", func(t *testing.T) {
		html := `<html><body><div>Some content here.</div></body></html>`

		text, err := ExtractMainText(html, DefaultTextSelectors())
		require.NoError(t, err)
		assert.Contains(t, text, "Some content here")
	})

	t.Run("noise selectors remove matched nodes", func(t *testing.T) {
		html := `<html><body>
			<div class="cart-drawer">Your cart is empty</div>
			<main><p>Real content.</p></main>
		</body></html>`

		text, err := ExtractMainText(html, DefaultTextSelectors(), ".cart-drawer")
		require.NoError(t, err)
		assert.Contains(t, text, "Real content")
		assert.NotContains(t, text, "cart is empty")
	})
}

func TestBrandPageSelectors(t *testing.T) {
	selectors := BrandPageSelectors()
	assert.Contains(t, selectors, "main")
	assert.Contains(t, selectors, ".about-content")
}
