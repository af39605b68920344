package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchDecodesResults(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{
			"query": "weather in Paris",
			"answer": "Sunny and mild.",
			"results": [
				{"title": "Paris Weather", "url": "https://weather.example.com", "content": "sunny, 20C", "score": 0.98}
			]
		}`))
	}))
	defer srv.Close()

	s := Search{ApiKey: "tvly-key", MaxResults: 5, Topic: "general", BaseURL: srv.URL}
	resp, err := s.Search(context.Background(), "weather in Paris")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotAuth != "Bearer tvly-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotBody["query"] != "weather in Paris" || gotBody["topic"] != "general" {
		t.Fatalf("unexpected request body: %v", gotBody)
	}
	if resp.Answer != "Sunny and mild." {
		t.Fatalf("unexpected answer: %q", resp.Answer)
	}
	if len(resp.Results) != 1 || resp.Results[0].Content != "sunny, 20C" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}

func TestSearchCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [
			{"title": "a", "url": "u1", "content": "c1"},
			{"title": "b", "url": "u2", "content": "c2"},
			{"title": "c", "url": "u3", "content": "c3"}
		]}`))
	}))
	defer srv.Close()

	s := Search{ApiKey: "k", MaxResults: 2, BaseURL: srv.URL}
	resp, err := s.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
}

func TestSearchNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := Search{ApiKey: "bad", BaseURL: srv.URL}
	if _, err := s.Search(context.Background(), "q"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
