package browser

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/vidyasagar/navsurf/history"
)

//go:embed site
var siteFS embed.FS

const notFoundPage = "404.html"

// FetchResult holds the raw page served for a location.
type FetchResult struct {
	Path        string
	File        string
	StatusCode  int
	ContentType string
	Body        []byte
	Duration    time.Duration
}

// Fetcher serves pages for application paths from a file system of HTML
// documents.
type Fetcher struct {
	fsys fs.FS
}

// NewFetcher creates a Fetcher over the built-in demo site.
func NewFetcher() *Fetcher {
	sub, err := fs.Sub(siteFS, "site")
	if err != nil {
		panic(fmt.Sprintf("embedded site: %v", err))
	}
	return &Fetcher{fsys: sub}
}

// NewFetcherFS creates a Fetcher over fsys.
func NewFetcherFS(fsys fs.FS) *Fetcher {
	return &Fetcher{fsys: fsys}
}

// Fetch retrieves the page for an application path. A path without a page
// yields the not-found page with status 404.
func (f *Fetcher) Fetch(ctx context.Context, pathname string) (*FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	file := pageFile(pathname)
	status := 200

	body, err := fs.ReadFile(f.fsys, file)
	if errors.Is(err, fs.ErrNotExist) {
		file, status = notFoundPage, 404
		body, err = fs.ReadFile(f.fsys, file)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}

	return &FetchResult{
		Path:        pathname,
		File:        file,
		StatusCode:  status,
		ContentType: "text/html; charset=utf-8",
		Body:        body,
		Duration:    time.Since(start),
	}, nil
}

// pageFile maps "/docs/intro?x#y" to "docs/intro.html" and "/" to
// "index.html".
func pageFile(pathname string) string {
	p := history.StripHash(pathname)
	p = stripQuery(p)
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return "index.html"
	}
	return p + ".html"
}

// IsHTML checks if the content type indicates HTML.
func IsHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
