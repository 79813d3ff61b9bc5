package feed

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
	"github.com/riskibarqy/nfl-insights/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultMaxBodyBytes = 8 << 20
	defaultUserAgent    = "nfl-insights-sync/1.0"
)

var errTransient = crerr.New("feed transient failure")

// Recorder observes every fetch outcome.
type Recorder interface {
	ObserveFetch(source, outcome string, elapsed time.Duration)
}

type ClientConfig struct {
	HTTPClient   *http.Client
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string
	Logger       *logging.Logger
	Recorder     Recorder
}

// Client fetches provider documents over one shared connection pool. It
// never retries; a failed fetch is reported to the caller once.
type Client struct {
	httpClient   *http.Client
	maxBodyBytes int64
	userAgent    string
	logger       *logging.Logger
	recorder     Recorder
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient:   httpClient,
		maxBodyBytes: maxBody,
		userAgent:    userAgent,
		logger:       logger,
		recorder:     cfg.Recorder,
	}
}

// FetchJSON decodes the response body into target.
func (c *Client) FetchJSON(ctx context.Context, source, rawURL string, target any) error {
	raw, err := c.fetch(ctx, source, rawURL, "application/json")
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode %s payload: %v", usecase.ErrDependencyUnavailable, source, err)
	}
	return nil
}

func (c *Client) FetchHTML(ctx context.Context, source, rawURL string) (string, error) {
	raw, err := c.fetch(ctx, source, rawURL, "text/html")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (c *Client) fetch(ctx context.Context, source, rawURL, accept string) ([]byte, error) {
	started := time.Now()
	raw, err := c.executeRequest(ctx, rawURL, accept)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if stderrors.Is(err, context.Canceled) {
			outcome = "canceled"
		}
	}
	if c.recorder != nil {
		c.recorder.ObserveFetch(source, outcome, time.Since(started))
	}
	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			c.logger.DebugContext(ctx, "feed request canceled", "source", source, "url", redactURL(rawURL))
		} else {
			c.logger.WarnContext(ctx, "feed request failed", "source", source, "url", redactURL(rawURL), "transient", isTransient(err), "error", err)
		}
		return nil, fmt.Errorf("%w: fetch %s: %w", usecase.ErrDependencyUnavailable, source, err)
	}
	c.logger.DebugContext(ctx, "feed request completed", "source", source, "bytes", len(raw), "elapsed", time.Since(started))
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", accept)
	req.Header.Set("user-agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, crerr.Wrapf(errTransient, "send request: %v", err)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := io.Copy(buf, io.LimitReader(resp.Body, c.maxBodyBytes+1)); err != nil {
		return nil, crerr.Wrapf(errTransient, "read response body: %v", err)
	}
	if int64(buf.Len()) > c.maxBodyBytes {
		return nil, crerr.Newf("response body exceeds %d bytes", c.maxBodyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isRetryableStatus(resp.StatusCode) {
			return nil, crerr.Wrapf(errTransient, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
		}
		return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
	}

	// buf goes back to the pool, so the body must be copied out.
	return append([]byte(nil), buf.B...), nil
}

// isTransient reports whether a later run is likely to succeed.
func isTransient(err error) bool {
	return stderrors.Is(err, errTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	for _, key := range []string{"api_token", "apikey", "key", "token"} {
		if query.Has(key) {
			query.Set(key, "REDACTED")
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
