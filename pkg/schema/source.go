package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// SourceKind names where a schema document is read from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies a schema document.
type Source struct {
	Kind     SourceKind
	Location string
}

// FileSource points at a path on disk.
func FileSource(path string) Source {
	return Source{Kind: SourceKindFile, Location: filepath.Clean(path)}
}

// FSSource points at a name inside the Fetcher's fs.FS.
func FSSource(name string) Source {
	return Source{Kind: SourceKindFS, Location: name}
}

// URLSource points at an HTTP endpoint. Invalid URLs are reported when the
// source is fetched.
func URLSource(raw string) Source {
	return Source{Kind: SourceKindURL, Location: raw}
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFS enables FSSource lookups.
func WithFS(filesystem fs.FS) FetcherOption {
	return func(f *Fetcher) {
		f.fs = filesystem
	}
}

// WithHTTPClient enables URLSource lookups through client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.http = client
	}
}

// WithTimeout bounds each HTTP request.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// Fetcher reads raw schema documents. HTTP is disabled unless a client is
// configured.
type Fetcher struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewFetcher constructs a Fetcher.
func NewFetcher(options ...FetcherOption) *Fetcher {
	f := &Fetcher{}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Fetch returns the document bytes for src.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]byte, error) {
	if src.Location == "" {
		return nil, errors.New("schema: source location is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch src.Kind {
	case SourceKindFile:
		return os.ReadFile(src.Location)
	case SourceKindFS:
		if f.fs == nil {
			return nil, errors.New("schema: filesystem is not configured")
		}
		return fs.ReadFile(f.fs, src.Location)
	case SourceKindURL:
		return f.fetchURL(ctx, src.Location)
	default:
		return nil, fmt.Errorf("schema: unsupported source kind %q", src.Kind)
	}
}

func (f *Fetcher) fetchURL(ctx context.Context, raw string) ([]byte, error) {
	if f.http == nil {
		return nil, errors.New("schema: http support disabled")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("schema: invalid url %q: %w", raw, err)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("schema: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
