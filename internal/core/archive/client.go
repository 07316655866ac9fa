// Package archive is a small HTTP client for the archive's fragment
// endpoints. It knows how to GET a body-only fragment for a search and how to
// POST a file list for selection-driven content; the fragments themselves are
// opaque to it.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/colonyops/fitsel/internal/core/logging"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "fitsel"
	maxBodyBytes     = 32 << 20
	requestIDHeader  = "X-Request-ID"
)

// Options configures a Client.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables throttling
	UserAgent         string
	HTTPClient        *http.Client // optional; overrides Timeout
}

// Client fetches fragments from an archive server.
type Client struct {
	base      *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	log       zerolog.Logger
}

// New creates a client for the archive at opts.BaseURL.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Client{
		base:      base,
		http:      httpClient,
		limiter:   limiter,
		userAgent: ua,
		log:       logging.Component("archive"),
	}, nil
}

// BaseURL returns the archive base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Get fetches the fragment at path.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

type fileListBody struct {
	FileList []string `json:"filelist"`
}

// PostFileList posts {"filelist": files} to path and returns the fragment.
func (c *Client) PostFileList(ctx context.Context, path string, files []string) ([]byte, error) {
	if files == nil {
		files = []string{}
	}
	body, err := json.Marshal(fileListBody{FileList: files})
	if err != nil {
		return nil, fmt.Errorf("encode file list: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	reqID := logging.GetRequestID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
		ctx = logging.WithRequestID(ctx, reqID)
	}

	target := c.resolve(path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "text/html")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Ctx(ctx).Err(err).Str("method", method).Str("url", target).Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug().
		Ctx(ctx).
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("request complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	return data, nil
}

// resolve joins path onto the base URL without re-escaping it; path is
// expected to be built with EncodeSearchPath.
func (c *Client) resolve(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.base.String() + path
}

// EncodeSearchPath escapes each "/"-separated component of a search path and
// returns it with a leading slash. Empty components are dropped.
func EncodeSearchPath(search string) string {
	var sb strings.Builder
	for _, comp := range strings.Split(search, "/") {
		if comp == "" {
			continue
		}
		sb.WriteString("/")
		sb.WriteString(url.PathEscape(comp))
	}
	return sb.String()
}
