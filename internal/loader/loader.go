// Package loader fetches the JSON resources a schedule site is built from.
// A source is either an http(s) base URL or a local directory.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/schedview/internal/metrics"
)

// maxBodySize caps a single resource; the files are a few kilobytes.
const maxBodySize = 8 << 20

// Loader resolves relative resource paths against its source.
type Loader struct {
	source    string
	base      *url.URL // set for HTTP sources
	dir       fs.FS    // set for directory sources
	client    *http.Client
	cacheBust bool
	now       func() time.Time
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.client = &http.Client{Timeout: d}
		}
	}
}

// WithCacheBust appends a v=<unix millis> query parameter to HTTP requests
// so intermediaries never serve a stale copy.
func WithCacheBust(on bool) Option {
	return func(l *Loader) { l.cacheBust = on }
}

// WithClock overrides the time source used for cache busting.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// New creates a Loader for source.
func New(source string, opts ...Option) (*Loader, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("loader: source is required")
	}

	l := &Loader{
		source: source,
		client: &http.Client{Timeout: 10 * time.Second},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		u, err := url.Parse(source)
		if err != nil {
			return nil, fmt.Errorf("loader: parsing source %q: %w", source, err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		l.base = u
		return l, nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("loader: accessing source %s: %w", source, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("loader: source %s is not a directory", source)
	}
	l.dir = os.DirFS(source)
	return l, nil
}

// Source returns the configured source string.
func (l *Loader) Source() string { return l.source }

// Location returns where p would be read from, for logging.
func (l *Loader) Location(p string) string {
	if l.base != nil {
		return l.resolve(p).String()
	}
	return path.Join(l.source, p)
}

func (l *Loader) resolve(p string) *url.URL {
	ref, err := url.Parse(strings.TrimPrefix(p, "/"))
	if err != nil {
		ref = &url.URL{Path: p}
	}
	u := l.base.ResolveReference(ref)
	if l.cacheBust {
		q := u.Query()
		q.Set("v", strconv.FormatInt(l.now().UnixMilli(), 10))
		u.RawQuery = q.Encode()
	}
	return u
}

// Fetch reads the raw bytes of p.
func (l *Loader) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: l.Location(p), Err: err}
	}
	if l.base != nil {
		return l.fetchHTTP(ctx, p)
	}
	return l.fetchFile(p)
}

func (l *Loader) fetchHTTP(ctx context.Context, p string) ([]byte, error) {
	u := l.resolve(p).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: u, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: u, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

func (l *Loader) fetchFile(p string) ([]byte, error) {
	name := path.Clean(strings.TrimPrefix(p, "/"))
	loc := path.Join(l.source, name)
	if !fs.ValidPath(name) {
		return nil, &FetchError{URL: loc, StatusCode: http.StatusBadRequest}
	}
	data, err := fs.ReadFile(l.dir, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FetchError{URL: loc, StatusCode: http.StatusNotFound}
		}
		return nil, &FetchError{URL: loc, Err: err}
	}
	return data, nil
}

// LoadJSON fetches p and decodes it into v.
func (l *Loader) LoadJSON(ctx context.Context, p string, v any) error {
	start := time.Now()
	resource := path.Base(p)

	data, err := l.Fetch(ctx, p)
	if err != nil {
		metrics.ObserveFetch(resource, metrics.OutcomeFetchError, time.Since(start))
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		metrics.ObserveFetch(resource, metrics.OutcomeParseError, time.Since(start))
		return &ParseError{URL: l.Location(p), Err: err}
	}
	metrics.ObserveFetch(resource, metrics.OutcomeOK, time.Since(start))
	return nil
}

// LoadMany fetches every path concurrently and returns the raw documents
// keyed like paths. It is all-or-nothing: the first failure cancels the
// remaining requests and is returned.
func (l *Loader) LoadMany(ctx context.Context, paths map[string]string) (map[string]json.RawMessage, error) {
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	out := make(map[string]json.RawMessage, len(paths))

	for name, p := range paths {
		g.Go(func() error {
			var raw json.RawMessage
			if err := l.LoadJSON(gctx, p, &raw); err != nil {
				return err
			}
			mu.Lock()
			out[name] = raw
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
