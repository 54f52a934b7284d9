package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsbrief/pkg/domain"
	"github.com/umputun/newsbrief/pkg/preference"
)

// respondDeterministic asks the first missing onboarding question, or once all
// preferences are set fetches and summarizes news for every topic
func (o *Orchestrator) respondDeterministic(ctx context.Context, t *turn) string {
	if q, missing := preference.NextMissingQuestion(t.prefs); missing {
		lgr.Printf("[DEBUG] turn %s onboarding, asking %q", t.id, q)
		return q
	}

	topics := t.prefs.Topics.List()
	style := t.prefs.Style()
	sections := make([]string, len(topics))

	// each worker fills its own slot, sections keep topic order
	var g errgroup.Group
	g.SetLimit(o.topicWorkers)
	for i, topic := range topics {
		g.Go(func() error {
			sections[i] = o.topicSection(ctx, t, topic, style)
			return nil
		})
	}
	_ = g.Wait()

	return strings.Join(sections, "\n\n")
}

func (o *Orchestrator) topicSection(ctx context.Context, t *turn, topic string, style domain.Style) string {
	articles, err := o.searcher.Fetch(ctx, topic, o.resultsPerTopic)
	if err != nil {
		lgr.Printf("[WARN] turn %s fetch for %q failed: %v", t.id, topic, err)
		return fmt.Sprintf("Topic: %s\nExa error: %s", topic, err)
	}
	summary := o.summarizer.Summarize(ctx, articles, style)
	if summary.Warning != "" {
		lgr.Printf("[WARN] turn %s summary for %q degraded: %s", t.id, topic, summary.Warning)
	}
	return fmt.Sprintf("Topic: %s\n%s", topic, summary.Text)
}
