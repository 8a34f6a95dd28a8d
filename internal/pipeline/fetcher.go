package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkarpov/rigor/internal/extract"
	"github.com/pkarpov/rigor/internal/model"
	"github.com/pkarpov/rigor/internal/util"
	"github.com/pkarpov/rigor/internal/worker"
)

// Fetcher retrieves document text from URLs: robots.txt aware, rate limited
// per host, HTML stripped down to visible text.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
}

// NewFetcher creates a new Fetcher with the given configuration. A nil robots
// checker disables the robots.txt check.
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 2
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 5
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
		limiter:   worker.NewLimiter(perSecond, burst),
	}
}

// FetchResult contains the fetched document text and metadata
type FetchResult struct {
	Text     string
	Meta     model.FetchMeta
	Subject  string
	FinalURL string
}

// Fetch retrieves document text from the given URL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
		}
		if crawlDelay > 0 {
			select {
			case <-time.After(crawlDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, f.maxBytes)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")

	text := string(body)
	if strings.Contains(contentType, "html") || extract.IsHTML(text) {
		text = extract.VisibleText(text)
	}

	finalURL := resp.Request.URL.String()

	return &FetchResult{
		Text: text,
		Meta: model.FetchMeta{
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			FinalURL:    finalURL,
		},
		Subject:  subjectFromURL(finalURL),
		FinalURL: finalURL,
	}, nil
}

// subjectFromURL derives a short subject label from the URL path.
func subjectFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return parsed.Host
	}

	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")
	return last
}
