package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mohammad-safakhou/ferret/tools/web_search/models"
)

const DefaultBaseURL = "https://api.tavily.com"

type Search struct {
	ApiKey     string
	MaxResults int
	Topic      string
	BaseURL    string // overridable for tests
}

func (s Search) Search(ctx context.Context, q string) (models.Response, error) {
	// https://docs.tavily.com/api-reference/endpoint/search
	base := s.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	k := s.MaxResults
	if k <= 0 {
		k = 5
	}
	topic := s.Topic
	if topic == "" {
		topic = "general"
	}

	body, _ := json.Marshal(map[string]any{
		"query":       q,
		"topic":       topic,
		"max_results": k,
	})
	req, err := http.NewRequestWithContext(ctx, "POST", base+"/search", bytes.NewReader(body))
	if err != nil {
		return models.Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.ApiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.Response{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.Response{}, fmt.Errorf("tavily search: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var raw struct {
		Query   string `json:"query"`
		Answer  string `json:"answer"`
		Results []struct {
			Title   string  `json:"title"`
			URL     string  `json:"url"`
			Content string  `json:"content"`
			Score   float64 `json:"score"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Response{}, err
	}

	out := models.Response{Query: q, Answer: raw.Answer}
	for i, r := range raw.Results {
		if i >= k {
			break
		}
		out.Results = append(out.Results, models.Result{Title: r.Title, URL: r.URL, Content: r.Content, Score: r.Score})
	}
	return out, nil
}
