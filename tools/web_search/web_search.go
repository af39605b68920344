package web_search

import (
	"context"

	"github.com/mohammad-safakhou/ferret/tools/web_search/brave"
	"github.com/mohammad-safakhou/ferret/tools/web_search/models"
	"github.com/mohammad-safakhou/ferret/tools/web_search/serper"
	"github.com/mohammad-safakhou/ferret/tools/web_search/tavily"
)

type WebSearcher interface {
	Search(ctx context.Context, q string) (models.Response, error)
}

type Provider string

const (
	TavilyProvider Provider = "tavily"
	BraveProvider  Provider = "brave"
	SerperProvider Provider = "serper"
)

type Error struct{ Msg string }

func (e *Error) Error() string { return e.Msg }

var ErrUnsupportedProvider = &Error{"unsupported provider"}

func NewWebSearcher(provider Provider, apiKey string, maxResults int, topic string) (WebSearcher, error) {
	switch provider {
	case TavilyProvider:
		return tavily.Search{ApiKey: apiKey, MaxResults: maxResults, Topic: topic}, nil
	case BraveProvider:
		return brave.Search{ApiKey: apiKey, MaxResults: maxResults}, nil
	case SerperProvider:
		return serper.Search{ApiKey: apiKey, MaxResults: maxResults}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
