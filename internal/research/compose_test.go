package research

import (
	"strings"
	"testing"

	"github.com/mohammad-safakhou/ferret/internal/memory"
	extractmodels "github.com/mohammad-safakhou/ferret/tools/web_extract/models"
	searchmodels "github.com/mohammad-safakhou/ferret/tools/web_search/models"
)

func sampleBundle() Bundle {
	return Bundle{
		SearchResults: []searchmodels.Response{{
			Query: "weather in Paris",
			Results: []searchmodels.Result{
				{Title: "Paris Weather", URL: "https://weather.example.com", Content: "sunny, 20C"},
			},
		}},
		Extracted: []extractmodels.Response{{
			Results: []extractmodels.Result{{URL: "https://example.com", RawContent: "lorem ipsum"}},
		}},
		Sources: []string{"https://example.com"},
	}
}

func TestComposeContainsQueryAndSourcesInOrder(t *testing.T) {
	b := sampleBundle()
	b.Sources = []string{"https://a.example.com", "https://b.example.com"}

	got := Compose(b, "weather in Paris", nil, 0)
	if !strings.Contains(got, "weather in Paris") {
		t.Fatalf("composed context missing query: %q", got)
	}
	ia := strings.Index(got, "https://a.example.com")
	ib := strings.Index(got, "https://b.example.com")
	if ia < 0 || ib < 0 {
		t.Fatalf("composed context missing sources: %q", got)
	}
	if ia > ib {
		t.Fatal("sources out of collection order")
	}
}

func TestComposeSectionOrder(t *testing.T) {
	tail := []memory.Turn{{Input: "earlier question", Output: "earlier answer"}}
	got := Compose(sampleBundle(), "weather in Paris", tail, 0)

	iq := strings.Index(got, "Query:")
	ifind := strings.Index(got, "Research Findings:")
	isrc := strings.Index(got, "Sources:")
	iprev := strings.Index(got, "Previous Context:")
	if iq < 0 || ifind < 0 || isrc < 0 || iprev < 0 {
		t.Fatalf("missing section in: %q", got)
	}
	if !(iq < ifind && ifind < isrc && isrc < iprev) {
		t.Fatalf("sections out of order: %q", got)
	}
}

func TestComposeFindingsListSearchThenExtracted(t *testing.T) {
	got := Compose(sampleBundle(), "weather in Paris", nil, 0)
	isearch := strings.Index(got, "sunny, 20C")
	iextract := strings.Index(got, "lorem ipsum")
	if isearch < 0 || iextract < 0 {
		t.Fatalf("missing findings in: %q", got)
	}
	if isearch > iextract {
		t.Fatal("search results must precede extracted info")
	}
}

func TestComposeOmitsPreviousContextWhenMemoryEmpty(t *testing.T) {
	got := Compose(sampleBundle(), "weather in Paris", nil, 0)
	if strings.Contains(got, "Previous Context:") {
		t.Fatalf("unexpected previous context section: %q", got)
	}
}

func TestComposeIncludesMemoryTail(t *testing.T) {
	tail := []memory.Turn{
		{Input: "first question", Output: "first answer"},
		{Input: "second question", Output: "second answer"},
	}
	got := Compose(sampleBundle(), "weather in Paris", tail, 0)
	for _, want := range []string{"Human: first question", "AI: first answer", "Human: second question", "AI: second answer"} {
		if !strings.Contains(got, want) {
			t.Fatalf("composed context missing %q: %q", want, got)
		}
	}
}

func TestComposeTruncation(t *testing.T) {
	full := Compose(sampleBundle(), "weather in Paris", nil, 0)
	max := 40
	if len(full) <= max {
		t.Fatalf("test bundle too small: %d chars", len(full))
	}

	got := Compose(sampleBundle(), "weather in Paris", nil, max)
	if len(got) != max+len(TruncationMarker) {
		t.Fatalf("expected length %d, got %d", max+len(TruncationMarker), len(got))
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Fatalf("missing truncation marker: %q", got)
	}
	if got[:max] != full[:max] {
		t.Fatal("truncated output is not a prefix of the full composition")
	}
}

func TestComposeNoTruncationUnderLimit(t *testing.T) {
	full := Compose(sampleBundle(), "weather in Paris", nil, 0)
	got := Compose(sampleBundle(), "weather in Paris", nil, len(full)+100)
	if got != full {
		t.Fatal("composition under the cap must be unchanged")
	}
}
