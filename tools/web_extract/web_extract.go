package web_extract

import (
	"context"
	"time"

	"github.com/mohammad-safakhou/ferret/tools/web_extract/models"
	"github.com/mohammad-safakhou/ferret/tools/web_extract/readability"
	"github.com/mohammad-safakhou/ferret/tools/web_extract/tavily"
)

const (
	DefaultTimeoutMS = 15000
	MaxCharsDefault  = 20000
)

type WebExtractor interface {
	Extract(ctx context.Context, urls []string) (models.Response, error)
}

type Provider string

const (
	TavilyProvider      Provider = "tavily"
	ReadabilityProvider Provider = "readability"
)

type Error struct{ Msg string }

func (e *Error) Error() string { return e.Msg }

var ErrUnsupportedProvider = &Error{"unsupported provider"}

type Options struct {
	Depth         string
	IncludeImages bool
	TimeoutMS     time.Duration
	MaxChars      int
}

func NewWebExtractor(provider Provider, apiKey string, opts Options) (WebExtractor, error) {
	if opts.TimeoutMS <= 0 {
		opts.TimeoutMS = DefaultTimeoutMS
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = MaxCharsDefault
	}

	switch provider {
	case TavilyProvider:
		return tavily.Extract{ApiKey: apiKey, Depth: opts.Depth, IncludeImages: opts.IncludeImages}, nil
	case ReadabilityProvider:
		return &readability.Extract{TimeoutMS: opts.TimeoutMS, MaxChars: opts.MaxChars}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
