package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"imfdata/internal/feeds"
	"imfdata/internal/logging"
)

const (
	defaultTimeout           = 60 * time.Second
	defaultUserAgent         = "Mozilla/5.0 (compatible; imfdata/1.0)"
	defaultRequestsPerSecond = 4
)

// Config captures the runtime settings for publisher requests.
type Config struct {
	UserAgent      string
	TimeoutSeconds int
	// RequestsPerSecond bounds the request rate across all feeds. Zero
	// selects the default; a negative value disables limiting.
	RequestsPerSecond float64
}

// DefaultTimeout returns the default timeout used for publisher requests.
// Archive downloads routinely run tens of seconds.
func DefaultTimeout() time.Duration {
	return defaultTimeout
}

// Payload is one downloaded response body plus the transport metadata the
// parsers need.
type Payload struct {
	Body        []byte
	ContentType string
	// Charset is the charset parameter of the Content-Type header, when the
	// server declared one.
	Charset string
	// FinalURL is the request URL after redirects, for resolving relative
	// links found in the body.
	FinalURL string
}

// Client issues rate-limited HTTP requests against the publisher's site.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request outcome events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a transport client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			UserAgent:         strings.TrimSpace(cfg.UserAgent),
			TimeoutSeconds:    cfg.TimeoutSeconds,
			RequestsPerSecond: cfg.RequestsPerSecond,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.UserAgent == "" {
		client.cfg.UserAgent = defaultUserAgent
	}
	if client.logger == nil {
		client.logger = logging.NewNop()
	}
	client.logger = logging.NewComponentLogger(client.logger, "transport")

	rps := client.cfg.RequestsPerSecond
	if rps == 0 {
		rps = defaultRequestsPerSecond
	}
	if rps > 0 {
		client.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return client
}

// Get downloads rawURL.
func (c *Client) Get(ctx context.Context, rawURL string) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, feeds.Wrap(feeds.ErrConnection, feedName(ctx), "build request", rawURL, err)
	}
	return c.do(ctx, req)
}

// PostForm submits form to rawURL as an urlencoded POST body.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, feeds.Wrap(feeds.ErrConnection, feedName(ctx), "build request", rawURL, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(ctx, req)
}

func (c *Client) do(ctx context.Context, req *http.Request) (*Payload, error) {
	feed := feedName(ctx)
	operation := strings.ToLower(req.Method) + " " + req.URL.String()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, feeds.Wrap(feeds.ErrConnection, feed, operation, "rate limiter wait", err)
		}
	}

	req.Header.Set("User-Agent", c.cfg.UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, feeds.Wrap(feeds.ErrConnection, feed, operation,
			fmt.Sprintf("http error (timeout=%s)", c.timeoutDuration()), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, feeds.Wrap(feeds.ErrConnection, feed, operation, "read body", err)
	}

	c.logger.Debug("request complete",
		logging.String(logging.FieldURL, req.URL.String()),
		logging.Int(logging.FieldStatus, resp.StatusCode),
		logging.Int("bytes", len(body)),
		logging.Duration("elapsed", time.Since(start)))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return nil, feeds.Wrap(feeds.ErrNoData, feed, operation,
			fmt.Sprintf("http %d: not published", resp.StatusCode), nil)
	default:
		return nil, feeds.Wrap(feeds.ErrConnection, feed, operation,
			fmt.Sprintf("http %d: %s", resp.StatusCode, bodySnippet(body)), nil)
	}

	contentType := resp.Header.Get("Content-Type")
	payload := &Payload{
		Body:        body,
		ContentType: contentType,
		FinalURL:    resp.Request.URL.String(),
	}
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		payload.Charset = strings.ToLower(params["charset"])
	}
	return payload, nil
}

func (c *Client) timeoutDuration() time.Duration {
	if c == nil || c.httpClient == nil || c.httpClient.Timeout <= 0 {
		return defaultTimeout
	}
	return c.httpClient.Timeout
}

func feedName(ctx context.Context) string {
	feed, _ := feeds.FeedFromContext(ctx)
	return feed
}

func bodySnippet(body []byte) string {
	clean := strings.Join(strings.Fields(string(body)), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	if clean == "" {
		return "<empty>"
	}
	return clean
}
