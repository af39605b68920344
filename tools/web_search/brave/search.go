package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mohammad-safakhou/ferret/tools/web_search/models"
	"github.com/mohammad-safakhou/ferret/utils"
)

type Search struct {
	ApiKey     string
	MaxResults int
	BaseURL    string
}

func (s Search) Search(ctx context.Context, q string) (models.Response, error) {
	// https://api.search.brave.com/app/documentation/web-search
	base := s.BaseURL
	if base == "" {
		base = "https://api.search.brave.com"
	}
	k := s.MaxResults
	if k <= 0 {
		k = 5
	}
	url := fmt.Sprintf("%s/res/v1/web/search?q=%s&count=%d", base, utils.UrlQuery(q), k)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return models.Response{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.ApiKey)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.Response{}, err
	}
	defer resp.Body.Close()
	var raw struct {
		Web struct {
			Results []struct {
				Title   string `json:"title"`
				URL     string `json:"url"`
				Snippet string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Response{}, err
	}
	out := models.Response{Query: q}
	for i, r := range raw.Web.Results {
		if i >= k {
			break
		}
		out.Results = append(out.Results, models.Result{Title: r.Title, URL: r.URL, Content: r.Snippet})
	}
	return out, nil
}
