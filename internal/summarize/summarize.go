// Package summarize sends composed contexts to the external
// summarization endpoint and normalizes its heterogeneous reply shapes
// into a single outcome.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/mohammad-safakhou/ferret/utils"
)

const DefaultEndpoint = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

// Fallback is the fixed user-facing message substituted when the provider
// reports an error.
const Fallback = "Sorry, there was an error processing the content. Please try again with a different input."

type Kind string

const (
	KindSummary       Kind = "summary"
	KindProviderError Kind = "provider_error"
	KindMalformed     Kind = "malformed"
)

// Outcome is the normalized reply, decided once at the boundary.
// Callers that only want the user-facing string use Text; everything else
// can branch on Kind without string matching.
type Outcome struct {
	Kind          Kind
	Summary       string
	ProviderError string
	Warnings      []string
	Raw           string
}

// Text collapses the outcome into the string surfaced to users: the
// summary, the fixed fallback for provider errors, or the reply's own
// textual rendering for anything unexpected.
func (o Outcome) Text() string {
	switch o.Kind {
	case KindSummary:
		return o.Summary
	case KindProviderError:
		return Fallback
	default:
		return o.Raw
	}
}

type Params struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type request struct {
	Inputs     string `json:"inputs"`
	Parameters Params `json:"parameters"`
}

type Client struct {
	Endpoint   string
	APIKey     string
	Params     Params
	HTTPClient *http.Client
	Logger     *log.Logger
}

func NewClient(endpoint, apiKey string, params Params, timeout time.Duration, logger *log.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[SUMMARIZE] ", log.LstdFlags)
	}
	return &Client{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		Params:     params,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

// Summarize posts the prompt and normalizes the reply. It never returns an
// error: transport failures and unexpected shapes degrade to provider_error
// and malformed outcomes so the pipeline always has something to show.
func (c *Client) Summarize(ctx context.Context, prompt string) Outcome {
	body, err := json.Marshal(request{Inputs: prompt, Parameters: c.Params})
	if err != nil {
		return Outcome{Kind: KindMalformed, Raw: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return c.providerError(err.Error(), nil)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return c.providerError(err.Error(), nil)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.providerError(err.Error(), nil)
	}
	return c.normalize(raw)
}

// normalize applies the reply-shape policy in order: sequence, mapping
// with summary_text, error mapping, then best-effort textual rendering.
func (c *Client) normalize(body []byte) Outcome {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Outcome{Kind: KindMalformed, Raw: string(bytes.TrimSpace(body))}
	}

	switch v := decoded.(type) {
	case []any:
		if len(v) > 0 {
			if m, ok := v[0].(map[string]any); ok {
				if s, ok := m["summary_text"].(string); ok {
					return Outcome{Kind: KindSummary, Summary: s}
				}
			}
		}
	case map[string]any:
		if s, ok := v["summary_text"].(string); ok {
			return Outcome{Kind: KindSummary, Summary: s}
		}
		if e, ok := v["error"]; ok {
			var warnings []string
			if ws, ok := v["warnings"].([]any); ok {
				for _, w := range ws {
					warnings = append(warnings, utils.Str(w))
				}
			}
			return c.providerError(utils.Str(e), warnings)
		}
	}

	return Outcome{Kind: KindMalformed, Raw: fmt.Sprintf("%v", decoded)}
}

func (c *Client) providerError(msg string, warnings []string) Outcome {
	c.Logger.Printf("API returned an error: %s", msg)
	for _, w := range warnings {
		c.Logger.Printf("warning: %s", w)
	}
	return Outcome{Kind: KindProviderError, ProviderError: msg, Warnings: warnings}
}
