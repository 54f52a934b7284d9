package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSS_Fetch(t *testing.T) {
	t.Run("valid feed", func(t *testing.T) {
		rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Search results</title>
		<link>https://example.com</link>
		<item>
			<title>Climate talks resume</title>
			<link>https://example.com/climate1</link>
			<description>&lt;a href="https://example.com"&gt;Leaders meet&lt;/a&gt; in Bonn</description>
			<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		</item>
		<item>
			<title>Second story</title>
			<link>https://example.com/climate2</link>
		</item>
		<item>
			<title>Third story</title>
			<link>https://example.com/climate3</link>
		</item>
	</channel>
</rss>`

		var query string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query().Get("q")
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(rssContent))
		}))
		defer server.Close()

		rss := NewRSS(server.URL+"/rss?q={query}", 5*time.Second)
		articles, err := rss.Fetch(context.Background(), "climate", 2)
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, "latest news about climate", query)

		assert.Equal(t, "Climate talks resume", articles[0].Title)
		assert.Equal(t, "https://example.com/climate1", articles[0].URL)
		assert.Equal(t, "Leaders meet in Bonn", articles[0].Summary)
		assert.Equal(t, "2006-01-02T22:04:05Z", articles[0].PublishedDate)

		assert.Equal(t, "Second story", articles[1].Title)
		assert.Empty(t, articles[1].Summary)
		assert.Empty(t, articles[1].PublishedDate)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewRSS(server.URL+"?q={query}", time.Second).Fetch(context.Background(), "climate", 5)
		require.Error(t, err)
		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "rss", te.Provider)
	})

	t.Run("not a feed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("plain text"))
		}))
		defer server.Close()

		_, err := NewRSS(server.URL+"?q={query}", time.Second).Fetch(context.Background(), "climate", 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})
}
