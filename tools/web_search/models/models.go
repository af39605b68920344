package models

import (
	"fmt"
	"strings"
)

type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

// Response is the opaque search result carried through the pipeline.
// Error-shaped responses stand in for provider failures so that a failed
// call still renders as text instead of surfacing a fault.
type Response struct {
	Query   string   `json:"query"`
	Answer  string   `json:"answer,omitempty"`
	Results []Result `json:"results"`
	Error   string   `json:"error,omitempty"`
}

// Render is the deterministic textual form embedded into prompts and
// saved to conversation memory.
func (r Response) Render() string {
	if r.Error != "" {
		return fmt.Sprintf("search error: %s", r.Error)
	}
	var sb strings.Builder
	if r.Answer != "" {
		sb.WriteString("Answer: ")
		sb.WriteString(r.Answer)
		sb.WriteString("\n")
	}
	if len(r.Results) == 0 {
		sb.WriteString("No results found for: ")
		sb.WriteString(r.Query)
		return sb.String()
	}
	for i, res := range r.Results {
		fmt.Fprintf(&sb, "%d. %s (%s): %s\n", i+1, res.Title, res.URL, res.Content)
	}
	return strings.TrimRight(sb.String(), "\n")
}
