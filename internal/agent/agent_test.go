package agent

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mohammad-safakhou/ferret/config"
	"github.com/mohammad-safakhou/ferret/internal/session"
	"github.com/mohammad-safakhou/ferret/internal/summarize"
	"github.com/mohammad-safakhou/ferret/internal/telemetry"
	extractmodels "github.com/mohammad-safakhou/ferret/tools/web_extract/models"
	searchmodels "github.com/mohammad-safakhou/ferret/tools/web_search/models"
)

type fakeSearcher struct {
	content string
}

func (f fakeSearcher) Search(_ context.Context, q string) (searchmodels.Response, error) {
	return searchmodels.Response{
		Query:   q,
		Results: []searchmodels.Result{{Title: "stub", URL: "https://stub.example.com", Content: f.content}},
	}, nil
}

type fakeExtractor struct {
	text string
}

func (f fakeExtractor) Extract(_ context.Context, urls []string) (extractmodels.Response, error) {
	return extractmodels.Response{
		Results: []extractmodels.Result{{URL: urls[0], RawContent: f.text}},
	}, nil
}

// echoSummarizer returns its prompt, recording it for inspection.
type echoSummarizer struct {
	prompts []string
}

func (e *echoSummarizer) Summarize(_ context.Context, prompt string) summarize.Outcome {
	e.prompts = append(e.prompts, prompt)
	return summarize.Outcome{Kind: summarize.KindSummary, Summary: prompt}
}

func testAgent(searcher fakeSearcher, extractor fakeExtractor, sum Summarizer) *Agent {
	cfg := config.ComposeConfig{SearchMaxChars: 0, ExtractMaxChars: 1000, MemoryTurns: 2}
	metrics := telemetry.New(prometheus.NewRegistry())
	logger := log.New(io.Discard, "", 0)
	return NewWithClients(searcher, extractor, sum, cfg, logger, metrics)
}

func testSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.NewSession("test", time.Hour)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return sess
}

func TestRunSearchScenario(t *testing.T) {
	sum := &echoSummarizer{}
	ag := testAgent(fakeSearcher{content: "sunny, 20C"}, fakeExtractor{}, sum)
	sess := testSession(t)

	res := ag.RunSearch(context.Background(), sess, "weather in Paris")
	if !strings.Contains(res.Answer, "weather in Paris") {
		t.Fatalf("answer missing query: %q", res.Answer)
	}
	if !strings.Contains(res.Answer, "sunny, 20C") {
		t.Fatalf("answer missing search finding: %q", res.Answer)
	}
	if res.Outcome.Kind != summarize.KindSummary {
		t.Fatalf("expected summary outcome, got %+v", res.Outcome)
	}
	if sess.Search.Len() != 1 {
		t.Fatalf("expected one saved turn, got %d", sess.Search.Len())
	}
	if sess.Extract.Len() != 0 {
		t.Fatal("search mode must not touch extract memory")
	}
}

func TestRunSearchSecondRunCarriesPreviousContext(t *testing.T) {
	sum := &echoSummarizer{}
	ag := testAgent(fakeSearcher{content: "sunny, 20C"}, fakeExtractor{}, sum)
	sess := testSession(t)

	ag.RunSearch(context.Background(), sess, "weather in Paris")
	res := ag.RunSearch(context.Background(), sess, "weather in Berlin")
	if !strings.Contains(res.Context, "Previous Context:") {
		t.Fatalf("second run must carry context: %q", res.Context)
	}
	if !strings.Contains(res.Context, "Human: weather in Paris") {
		t.Fatalf("previous turn missing: %q", res.Context)
	}
}

func TestRunExtractScenario(t *testing.T) {
	sum := &echoSummarizer{}
	ag := testAgent(fakeSearcher{content: "about example.com"}, fakeExtractor{text: "lorem ipsum"}, sum)
	sess := testSession(t)

	res := ag.RunExtract(context.Background(), sess, "https://example.com")
	if !res.IsURL {
		t.Fatal("https input must classify as URL")
	}
	if len(res.Context) > 1000+len("...") {
		t.Fatalf("extract context exceeds cap: %d chars", len(res.Context))
	}
	if !strings.Contains(res.Context, "lorem ipsum") {
		t.Fatalf("context missing extracted text: %q", res.Context)
	}
	if res.Answer != res.Outcome.Text() {
		t.Fatal("answer must be the collapsed outcome text")
	}
	if sess.Extract.Len() != 1 {
		t.Fatalf("expected one saved extract turn, got %d", sess.Extract.Len())
	}
	if sess.Search.Len() != 0 {
		t.Fatal("extract mode must not touch search memory")
	}
}

func TestRunExtractFreeTextStillSubmitted(t *testing.T) {
	sum := &echoSummarizer{}
	ag := testAgent(fakeSearcher{}, fakeExtractor{text: "whatever came back"}, sum)
	sess := testSession(t)

	res := ag.RunExtract(context.Background(), sess, "not a url at all")
	if res.IsURL {
		t.Fatal("free text must not classify as URL")
	}
	if len(res.Bundle.Sources) != 1 || res.Bundle.Sources[0] != "not a url at all" {
		t.Fatalf("free text must be passed as the single source: %+v", res.Bundle.Sources)
	}
}

func TestRunExtractCapsLongContext(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor sit amet ", 200)
	sum := &echoSummarizer{}
	ag := testAgent(fakeSearcher{content: "filler"}, fakeExtractor{text: long}, sum)
	sess := testSession(t)

	res := ag.RunExtract(context.Background(), sess, "https://example.com")
	if len(res.Context) != 1000+len("...") {
		t.Fatalf("expected exactly %d chars, got %d", 1000+len("..."), len(res.Context))
	}
}

func TestRunExtractIndexesIntoRecall(t *testing.T) {
	sum := &echoSummarizer{}
	ag := testAgent(fakeSearcher{}, fakeExtractor{text: "reusable article text about gophers"}, sum)
	sess := testSession(t)

	ag.RunExtract(context.Background(), sess, "https://example.com")
	if sess.Recall.Len() == 0 {
		t.Fatal("extracted text must be indexed for recall")
	}
	hits, err := sess.Recall.Search("gophers", 5)
	if err != nil {
		t.Fatalf("recall search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected a recall hit for indexed text")
	}
}

func TestRunSearchUncappedContext(t *testing.T) {
	long := strings.Repeat("finding ", 500)
	sum := &echoSummarizer{}
	ag := testAgent(fakeSearcher{content: long}, fakeExtractor{}, sum)
	sess := testSession(t)

	res := ag.RunSearch(context.Background(), sess, "q")
	if len(res.Context) <= 1000 {
		t.Fatalf("search context should be unbounded, got %d chars", len(res.Context))
	}
	if strings.HasSuffix(res.Context, "...") && len(res.Context) == 1003 {
		t.Fatal("search mode must not apply the extract cap")
	}
}
