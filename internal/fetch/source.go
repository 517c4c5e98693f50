package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/alnah/go-toolcards/internal/logging"
)

// Defaults for HTTP clients.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// PageSource returns the HTML of a page as UTF-8 text.
type PageSource interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Compile-time interface checks
var (
	_ PageSource = (*HTTPSource)(nil)
	_ PageSource = (*BrowserSource)(nil)
)

// ClientOptions configures the HTTP client shared by HTTPSource and Downloader.
type ClientOptions struct {
	Timeout   time.Duration // per request; zero means DefaultTimeout
	UserAgent string        // empty means DefaultUserAgent
	Logger    *zap.Logger
}

func newClient(opts ClientOptions) *resty.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", ua).
		SetRetryCount(0)
}

// HTTPSource fetches pages with a plain HTTP GET.
type HTTPSource struct {
	client *resty.Client
	logger *zap.Logger
}

// NewHTTPSource creates an HTTPSource.
func NewHTTPSource(opts ClientOptions) *HTTPSource {
	return &HTTPSource{client: newClient(opts), logger: logging.OrNop(opts.Logger)}
}

// Fetch downloads url and decodes the body to UTF-8 using the declared or
// sniffed charset, so GBK directory pages parse correctly.
func (s *HTTPSource) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", ErrEmptyURL
	}

	s.logger.Debug("fetching page", zap.String("url", url))
	res, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRequest, url, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("%w: %s: %s", ErrHTTPStatus, url, res.Status())
	}

	text, err := decodeBody(res.Body(), res.Header().Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("%w: decoding %s: %v", ErrRequest, url, err)
	}
	s.logger.Debug("page fetched", zap.String("url", url), zap.Int("bytes", len(text)))
	return text, nil
}

func decodeBody(body []byte, contentType string) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
