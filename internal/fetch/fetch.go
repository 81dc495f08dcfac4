// Package fetch acquires already-rendered page snapshots without a browser:
// file:// paths are read directly and http(s) URLs are fetched with colly.
// It exists for fixture runs and for sources whose pages render server-side.
package fetch

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/ordersift/ordersift/internal/dom"
	"github.com/ordersift/ordersift/internal/logger"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher retrieves static page snapshots.
type Fetcher struct {
	logger  logger.Interface
	timeout time.Duration
}

// NewFetcher creates a static snapshot fetcher.
func NewFetcher(log logger.Interface, timeout time.Duration) *Fetcher {
	return &Fetcher{logger: log, timeout: timeout}
}

// Snapshot loads the snapshot at rawURL into a queryable document.
func (f *Fetcher) Snapshot(rawURL string) (*dom.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot url: %w", err)
	}

	switch u.Scheme {
	case "file", "":
		return f.snapshotFile(u.Path)
	case "http", "https":
		return f.snapshotHTTP(rawURL)
	default:
		return nil, fmt.Errorf("unsupported snapshot scheme %q", u.Scheme)
	}
}

func (f *Fetcher) snapshotFile(path string) (*dom.Document, error) {
	f.logger.Debug("Reading snapshot file", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return dom.Parse(bytes.NewReader(data))
}

func (f *Fetcher) snapshotHTTP(pageURL string) (*dom.Document, error) {
	f.logger.Debug("Fetching snapshot", "url", pageURL)

	c := colly.NewCollector(colly.UserAgent(defaultUserAgent))
	if f.timeout > 0 {
		c.SetRequestTimeout(f.timeout)
	}

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	c.Wait()

	if len(body) == 0 {
		return nil, fmt.Errorf("empty response from %s", pageURL)
	}
	return dom.Parse(bytes.NewReader(body))
}
