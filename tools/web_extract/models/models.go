package models

import (
	"fmt"
	"strings"
)

type Result struct {
	URL        string `json:"url"`
	Title      string `json:"title,omitempty"`
	RawContent string `json:"raw_content"`
}

type Failed struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Response mirrors the provider payload: successful extractions plus
// per-URL failures. Transport errors are folded into Failed entries by
// the caller so a bad URL never aborts the rest of a batch.
type Response struct {
	Results []Result `json:"results"`
	Failed  []Failed `json:"failed_results,omitempty"`
}

// Render is the deterministic textual form embedded into prompts and
// saved to conversation memory.
func (r Response) Render() string {
	var sb strings.Builder
	for _, res := range r.Results {
		if res.Title != "" {
			fmt.Fprintf(&sb, "%s (%s): %s\n", res.Title, res.URL, res.RawContent)
		} else {
			fmt.Fprintf(&sb, "%s: %s\n", res.URL, res.RawContent)
		}
	}
	for _, f := range r.Failed {
		fmt.Fprintf(&sb, "extraction failed for %s: %s\n", f.URL, f.Error)
	}
	if sb.Len() == 0 {
		return "no content extracted"
	}
	return strings.TrimRight(sb.String(), "\n")
}
