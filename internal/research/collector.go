// Package research gathers raw material for a query and composes the
// textual context sent to the summarization endpoint.
package research

import (
	"context"
	"log"

	"github.com/mohammad-safakhou/ferret/internal/telemetry"
	"github.com/mohammad-safakhou/ferret/tools/web_extract"
	extractmodels "github.com/mohammad-safakhou/ferret/tools/web_extract/models"
	"github.com/mohammad-safakhou/ferret/tools/web_search"
	searchmodels "github.com/mohammad-safakhou/ferret/tools/web_search/models"
)

// Bundle aggregates everything collected for one query. It is produced
// once per Gather call and owned by the caller; bundles are never merged.
type Bundle struct {
	SearchResults []searchmodels.Response
	Extracted     []extractmodels.Response
	Sources       []string
}

// Findings renders every collected item in order, search results first,
// one line-block per item. This is also the raw output saved to
// conversation memory.
func (b Bundle) Findings() []string {
	out := make([]string, 0, len(b.SearchResults)+len(b.Extracted))
	for _, r := range b.SearchResults {
		out = append(out, r.Render())
	}
	for _, e := range b.Extracted {
		out = append(out, e.Render())
	}
	return out
}

type Collector struct {
	Searcher  web_search.WebSearcher
	Extractor web_extract.WebExtractor
	Logger    *log.Logger
	Metrics   *telemetry.Telemetry
}

func (c Collector) countCall(provider string, err error) {
	if c.Metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.Metrics.ProviderCalls.WithLabelValues(provider, status).Inc()
}

// Gather issues exactly one search call for the query and, for each URL,
// one extraction call. Provider failures never propagate: a failed search
// becomes an error-shaped search result and a failed extraction becomes a
// failed_results entry, so one bad URL cannot starve the others.
func (c Collector) Gather(ctx context.Context, query string, urls []string) Bundle {
	var b Bundle

	res, err := c.Searcher.Search(ctx, query)
	c.countCall("search", err)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Printf("search failed for %q: %v", query, err)
		}
		res = searchmodels.Response{Query: query, Error: err.Error()}
	}
	b.SearchResults = append(b.SearchResults, res)

	for _, u := range urls {
		ex, err := c.Extractor.Extract(ctx, []string{u})
		c.countCall("extract", err)
		if err != nil {
			if c.Logger != nil {
				c.Logger.Printf("extraction failed for %q: %v", u, err)
			}
			ex = extractmodels.Response{Failed: []extractmodels.Failed{{URL: u, Error: err.Error()}}}
		}
		b.Extracted = append(b.Extracted, ex)
		b.Sources = append(b.Sources, u)
	}

	return b
}
