package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/newsbrief/pkg/domain"
)

// RSS searches news through an RSS search endpoint, e.g. Google News search feeds
type RSS struct {
	parser      *gofeed.Parser
	urlTemplate string
	timeout     time.Duration
}

// NewRSS creates an RSS search client. urlTemplate must contain a {query} placeholder.
func NewRSS(urlTemplate string, timeout time.Duration) *RSS {
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &RSS{
		parser:      gofeed.NewParser(),
		urlTemplate: urlTemplate,
		timeout:     timeout,
	}
}

// Fetch returns up to count articles from the search feed for topic
func (s *RSS) Fetch(ctx context.Context, topic string, count int) ([]domain.Article, error) {
	count = ClampCount(count)
	feedURL := strings.ReplaceAll(s.urlTemplate, "{query}", url.QueryEscape(Query(topic)))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, &TransportError{Provider: "rss", Err: fmt.Errorf("parse feed for %q: %w", topic, err)}
	}

	items := feed.Items
	if len(items) > count {
		items = items[:count]
	}
	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		article := domain.Article{
			Title:   plainText(item.Title),
			URL:     strings.TrimSpace(item.Link),
			Summary: plainText(item.Description),
		}
		switch {
		case item.PublishedParsed != nil:
			article.PublishedDate = item.PublishedParsed.UTC().Format(time.RFC3339)
		case item.UpdatedParsed != nil:
			article.PublishedDate = item.UpdatedParsed.UTC().Format(time.RFC3339)
		}
		articles = append(articles, article)
	}
	lgr.Printf("[DEBUG] rss returned %d articles for %q", len(articles), topic)
	return articles, nil
}
