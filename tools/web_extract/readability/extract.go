// Package readability is a keyless local fallback for page extraction:
// a headless browser render followed by article extraction.
package readability

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	goreadability "github.com/go-shiori/go-readability"
	"github.com/mohammad-safakhou/ferret/tools/web_extract/models"
	"github.com/mohammad-safakhou/ferret/utils"
)

type Extract struct {
	TimeoutMS time.Duration // timeout per URL, in milliseconds
	MaxChars  int           // maximum characters of article text per URL
}

func (e *Extract) Extract(ctx context.Context, urls []string) (models.Response, error) {
	var out models.Response
	for _, u := range urls {
		res, err := e.one(ctx, u)
		if err != nil {
			out.Failed = append(out.Failed, models.Failed{URL: u, Error: err.Error()})
			continue
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

func (e *Extract) one(ctx context.Context, rawURL string) (models.Result, error) {
	if strings.TrimSpace(rawURL) == "" {
		return models.Result{}, &invalidURLError{rawURL}
	}

	ctx, cancel := context.WithTimeout(ctx, e.TimeoutMS*time.Millisecond)
	defer cancel()

	html, err := fetchHTML(ctx, rawURL)
	if err != nil {
		return models.Result{}, err
	}

	article, err := goreadability.FromReader(strings.NewReader(html), mustParseURL(rawURL))
	if err != nil {
		return models.Result{}, err
	}
	text := utils.Truncate(strings.TrimSpace(article.TextContent), e.MaxChars, "")

	return models.Result{
		URL:        rawURL,
		Title:      strings.TrimSpace(article.Title),
		RawContent: text,
	}, nil
}

func fetchHTML(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent("Ferret/1.0 (+contact@example.com)"),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, err
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}

type invalidURLError struct{ url string }

func (e *invalidURLError) Error() string { return "invalid url: " + e.url }
