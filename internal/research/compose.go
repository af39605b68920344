package research

import (
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/ferret/internal/memory"
	"github.com/mohammad-safakhou/ferret/utils"
)

// TruncationMarker is appended whenever a composed context is cut to a
// maximum length.
const TruncationMarker = "..."

// Compose builds the prompt sent downstream. The layout is fixed: query
// header, findings (search results then extracted info, in collection
// order), sources in collection order, and previous context only when the
// memory tail is non-empty. Items are never reordered.
//
// When maxLen > 0 and the composition is longer, the text is hard-cut at
// maxLen bytes (backing up to a rune boundary) plus the marker. Whatever
// falls outside the budget is lost, trailing sections included.
func Compose(b Bundle, query string, tail []memory.Turn, maxLen int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Query: %s\n\n", query)
	sb.WriteString("Research Findings:\n")
	for _, item := range b.Findings() {
		fmt.Fprintf(&sb, "- %s\n", item)
	}

	sb.WriteString("\nSources:\n")
	for _, src := range b.Sources {
		fmt.Fprintf(&sb, "- %s\n", src)
	}

	if len(tail) > 0 {
		sb.WriteString("\nPrevious Context:\n")
		for _, t := range tail {
			fmt.Fprintf(&sb, "Human: %s\nAI: %s\n", t.Input, t.Output)
		}
	}

	return utils.Truncate(strings.TrimRight(sb.String(), "\n"), maxLen, TruncationMarker)
}
