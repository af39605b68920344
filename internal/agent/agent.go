// Package agent sequences the research pipeline: gather raw results,
// record the turn, compose the bounded context, summarize, and hand back
// the final answer.
package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mohammad-safakhou/ferret/config"
	"github.com/mohammad-safakhou/ferret/internal/research"
	"github.com/mohammad-safakhou/ferret/internal/session"
	"github.com/mohammad-safakhou/ferret/internal/summarize"
	"github.com/mohammad-safakhou/ferret/internal/telemetry"
	"github.com/mohammad-safakhou/ferret/tools/web_extract"
	"github.com/mohammad-safakhou/ferret/tools/web_search"
)

type Mode string

const (
	ModeSearch  Mode = "search"
	ModeExtract Mode = "extract"
)

// Summarizer is the summarization boundary; satisfied by *summarize.Client.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) summarize.Outcome
}

// Result carries the user-facing answer together with the structured
// outcome, so callers and tests can tell success from failure without
// matching on the answer text.
type Result struct {
	Answer  string
	Outcome summarize.Outcome
	Context string
	Bundle  research.Bundle
	IsURL   bool
}

type Agent struct {
	collector  research.Collector
	summarizer Summarizer
	compose    config.ComposeConfig
	logger     *log.Logger
	metrics    *telemetry.Telemetry
}

var agentTracer trace.Tracer = otel.Tracer("ferret/internal/agent")

// New wires the agent from configuration: search and extract providers
// plus the summarization client.
func New(cfg *config.Config, logger *log.Logger, metrics *telemetry.Telemetry) (*Agent, error) {
	searcher, err := newSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create search provider: %w", err)
	}
	extractor, err := newExtractor(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create extract provider: %w", err)
	}
	summarizer := summarize.NewClient(
		cfg.Summarizer.Endpoint,
		cfg.Providers.HuggingFace.APIKey,
		summarize.Params{
			MaxLength: cfg.Summarizer.MaxLength,
			MinLength: cfg.Summarizer.MinLength,
			DoSample:  cfg.Summarizer.DoSample,
		},
		cfg.Summarizer.Timeout,
		telemetry.NewLogger("SUMMARIZE"),
	)
	return NewWithClients(searcher, extractor, summarizer, cfg.Compose, logger, metrics), nil
}

// NewWithClients builds an agent from ready-made collaborators. Tests use
// it to inject stubs.
func NewWithClients(searcher web_search.WebSearcher, extractor web_extract.WebExtractor, summarizer Summarizer, compose config.ComposeConfig, logger *log.Logger, metrics *telemetry.Telemetry) *Agent {
	if logger == nil {
		logger = telemetry.NewLogger("AGENT")
	}
	if compose.MemoryTurns == 0 {
		compose.MemoryTurns = 2
	}
	return &Agent{
		collector:  research.Collector{Searcher: searcher, Extractor: extractor, Logger: logger, Metrics: metrics},
		summarizer: summarizer,
		compose:    compose,
		logger:     logger,
		metrics:    metrics,
	}
}

// RunSearch is search mode: one search call, no URLs, uncapped context.
func (a *Agent) RunSearch(ctx context.Context, sess *session.Session, query string) Result {
	ctx, span := agentTracer.Start(ctx, "agent.run_search")
	defer span.End()
	start := time.Now()

	a.logger.Printf("gathering information for query %q", query)
	bundle := a.collector.Gather(ctx, query, nil)
	sess.Search.Save(query, strings.Join(bundle.Findings(), "\n"))

	composed := research.Compose(bundle, query, sess.Search.Recent(a.compose.MemoryTurns), a.compose.SearchMaxChars)

	a.logger.Printf("synthesizing answer (%d chars of context)", len(composed))
	outcome := a.summarizer.Summarize(ctx, composed)

	a.observe(ModeSearch, outcome, time.Since(start), span)
	return Result{Answer: outcome.Text(), Outcome: outcome, Context: composed, Bundle: bundle}
}

// RunExtract is extract mode: the input, URL or not, goes to the extract
// provider as a single-element URL list, and the context is capped.
// Free text is submitted as-is; the provider treats it best-effort.
func (a *Agent) RunExtract(ctx context.Context, sess *session.Session, input string) Result {
	ctx, span := agentTracer.Start(ctx, "agent.run_extract")
	defer span.End()
	start := time.Now()

	isURL := strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
	if isURL {
		a.logger.Printf("extracting information from URL: %s", input)
	} else {
		a.logger.Printf("extracting information from text input")
	}

	bundle := a.collector.Gather(ctx, input, []string{input})
	sess.Extract.Save(input, strings.Join(bundle.Findings(), "\n"))
	a.index(sess, bundle)

	composed := research.Compose(bundle, input, sess.Extract.Recent(a.compose.MemoryTurns), a.compose.ExtractMaxChars)

	a.logger.Printf("synthesizing answer (%d chars of context)", len(composed))
	outcome := a.summarizer.Summarize(ctx, composed)

	a.observe(ModeExtract, outcome, time.Since(start), span)
	return Result{Answer: outcome.Text(), Outcome: outcome, Context: composed, Bundle: bundle, IsURL: isURL}
}

// index feeds extracted page text into the session recall index.
func (a *Agent) index(sess *session.Session, bundle research.Bundle) {
	for _, resp := range bundle.Extracted {
		for _, res := range resp.Results {
			if _, err := sess.Recall.Add(res.URL, res.Title, res.RawContent); err != nil {
				a.logger.Printf("recall indexing failed for %s: %v", res.URL, err)
			}
		}
	}
}

func (a *Agent) observe(mode Mode, outcome summarize.Outcome, elapsed time.Duration, span trace.Span) {
	span.SetAttributes(
		attribute.String("mode", string(mode)),
		attribute.String("outcome", string(outcome.Kind)),
	)
	if a.metrics == nil {
		return
	}
	a.metrics.Runs.WithLabelValues(string(mode), string(outcome.Kind)).Inc()
	a.metrics.RunDuration.WithLabelValues(string(mode)).Observe(elapsed.Seconds())
}

func newSearcher(cfg *config.Config) (web_search.WebSearcher, error) {
	provider := web_search.Provider(cfg.Search.Provider)
	key := cfg.Providers.Tavily.APIKey
	switch provider {
	case web_search.BraveProvider:
		key = cfg.Providers.Brave.APIKey
	case web_search.SerperProvider:
		key = cfg.Providers.Serper.APIKey
	}
	return web_search.NewWebSearcher(provider, key, cfg.Search.MaxResults, cfg.Search.Topic)
}

func newExtractor(cfg *config.Config) (web_extract.WebExtractor, error) {
	return web_extract.NewWebExtractor(
		web_extract.Provider(cfg.Extract.Provider),
		cfg.Providers.Tavily.APIKey,
		web_extract.Options{
			Depth:         cfg.Extract.Depth,
			IncludeImages: cfg.Extract.IncludeImages,
			TimeoutMS:     time.Duration(cfg.Extract.TimeoutMS),
			MaxChars:      cfg.Extract.MaxChars,
		},
	)
}
