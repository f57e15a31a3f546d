package browser

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Article holds the readable content of a page.
type Article struct {
	Path        string
	Title       string
	Content     string // body HTML
	TextContent string // plain text
	Excerpt     string
	StatusCode  int
	FetchTime   time.Duration
}

// Link represents a hyperlink found in the page content. URL is already
// resolved to an application path.
type Link struct {
	Index int
	Text  string
	URL   string
}

// Extract builds an Article from a fetched page. Readability supplies the
// title and excerpt; the body is kept whole because the demo pages are
// short enough for readability to discard.
func Extract(result *FetchResult) (*Article, error) {
	if !IsHTML(result.ContentType) {
		return &Article{
			Path:        result.Path,
			Title:       result.Path,
			Content:     "<pre>" + string(result.Body) + "</pre>",
			TextContent: string(result.Body),
			StatusCode:  result.StatusCode,
			FetchTime:   result.Duration,
		}, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(result.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	content, err := doc.Find("body").Html()
	if err != nil {
		return nil, fmt.Errorf("reading page body: %w", err)
	}

	article := &Article{
		Path:        result.Path,
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Content:     "<body>" + content + "</body>",
		TextContent: strings.TrimSpace(doc.Find("body").Text()),
		StatusCode:  result.StatusCode,
		FetchTime:   result.Duration,
	}

	pageURL := &url.URL{Scheme: "navsurf", Host: "local", Path: result.Path}
	if parsed, err := readability.FromReader(bytes.NewReader(result.Body), pageURL); err == nil {
		if parsed.Title != "" {
			article.Title = parsed.Title
		}
		article.Excerpt = parsed.Excerpt
	}

	return article, nil
}
