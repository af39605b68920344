package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mohammad-safakhou/ferret/tools/web_extract/models"
)

const DefaultBaseURL = "https://api.tavily.com"

type Extract struct {
	ApiKey        string
	Depth         string // basic or advanced
	IncludeImages bool
	BaseURL       string // overridable for tests
}

func (e Extract) Extract(ctx context.Context, urls []string) (models.Response, error) {
	// https://docs.tavily.com/api-reference/endpoint/extract
	base := e.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	depth := e.Depth
	if depth == "" {
		depth = "advanced"
	}

	body, _ := json.Marshal(map[string]any{
		"urls":           urls,
		"extract_depth":  depth,
		"include_images": e.IncludeImages,
	})
	req, err := http.NewRequestWithContext(ctx, "POST", base+"/extract", bytes.NewReader(body))
	if err != nil {
		return models.Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.ApiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.Response{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.Response{}, fmt.Errorf("tavily extract: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var raw struct {
		Results []struct {
			URL        string `json:"url"`
			RawContent string `json:"raw_content"`
		} `json:"results"`
		FailedResults []struct {
			URL   string `json:"url"`
			Error string `json:"error"`
		} `json:"failed_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Response{}, err
	}

	var out models.Response
	for _, r := range raw.Results {
		out.Results = append(out.Results, models.Result{URL: r.URL, RawContent: r.RawContent})
	}
	for _, f := range raw.FailedResults {
		out.Failed = append(out.Failed, models.Failed{URL: f.URL, Error: f.Error})
	}
	return out, nil
}
