package serper

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mohammad-safakhou/ferret/tools/web_search/models"
	"github.com/mohammad-safakhou/ferret/utils"
)

type Search struct {
	ApiKey     string
	MaxResults int
	BaseURL    string
}

func (s Search) Search(ctx context.Context, q string) (models.Response, error) {
	// https://serper.dev/ docs
	base := s.BaseURL
	if base == "" {
		base = "https://google.serper.dev"
	}
	k := s.MaxResults
	if k <= 0 {
		k = 5
	}
	body, _ := json.Marshal(map[string]any{"q": q, "num": k})
	req, err := http.NewRequestWithContext(ctx, "POST", base+"/search", strings.NewReader(string(body)))
	if err != nil {
		return models.Response{}, err
	}
	req.Header.Set("X-API-KEY", s.ApiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.Response{}, err
	}
	defer resp.Body.Close()
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Response{}, err
	}

	out := models.Response{Query: q}
	if items, ok := raw["organic"].([]any); ok {
		for i, it := range items {
			if i >= k {
				break
			}
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			out.Results = append(out.Results, models.Result{
				Title: utils.Str(m["title"]), URL: utils.Str(m["link"]), Content: utils.Str(m["snippet"]),
			})
		}
	}
	return out, nil
}
