package browser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"
	"github.com/vidyasagar/navsurf/history"
	"github.com/vidyasagar/navsurf/internal/theme"
)

// Cached glamour renderer to avoid recreation on every render call.
var (
	cachedRenderer    *glamour.TermRenderer
	cachedRendererKey string
	rendererMu        sync.Mutex
)

// RenderedPage holds the final terminal-ready output.
type RenderedPage struct {
	Path    string
	Title   string
	Content string // styled terminal text
	Links   []Link
}

// Render converts an Article into styled terminal text. Link targets are
// resolved against the article's path so they can be pushed as is.
func Render(article *Article, width int) *RenderedPage {
	if width <= 0 {
		width = 80
	}
	contentWidth := min(width-4, 100)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return &RenderedPage{Path: article.Path, Title: article.Title, Content: article.TextContent}
	}

	conv := &mdConverter{base: article.Path}

	var md strings.Builder
	if article.Title != "" {
		md.WriteString("# " + article.Title + "\n\n")
	}
	if article.Excerpt != "" {
		md.WriteString("*" + article.Excerpt + "*\n\n")
	}
	md.WriteString("---\n\n")

	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		md.WriteString(conv.block(s))
	})

	rendered, err := renderWithGlamour(md.String(), contentWidth)
	if err != nil {
		rendered = md.String()
	}

	return &RenderedPage{
		Path:    article.Path,
		Title:   article.Title,
		Content: rendered,
		Links:   conv.links,
	}
}

func renderWithGlamour(markdown string, width int) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	key := fmt.Sprintf("%s/%d", theme.Current.GlamourStyle, width)
	if cachedRenderer == nil || cachedRendererKey != key {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(theme.Current.GlamourStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		cachedRenderer = renderer
		cachedRendererKey = key
	}

	return cachedRenderer.Render(markdown)
}

// mdConverter turns the handful of elements the demo site uses into
// markdown and numbers the links it meets.
type mdConverter struct {
	base  string
	links []Link
}

func (c *mdConverter) block(s *goquery.Selection) string {
	switch tag := goquery.NodeName(s); tag {
	case "h1", "h2", "h3", "h4":
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return ""
		}
		return strings.Repeat("#", int(tag[1]-'0')) + " " + text + "\n\n"
	case "p":
		text := strings.TrimSpace(c.inline(s))
		if text == "" {
			return ""
		}
		return text + "\n\n"
	case "ul", "ol":
		return c.list(s, tag == "ol")
	case "pre":
		return "```\n" + strings.TrimRight(s.Text(), "\n") + "\n```\n\n"
	case "blockquote":
		var sb strings.Builder
		for _, line := range strings.Split(strings.TrimSpace(c.inline(s)), "\n") {
			sb.WriteString("> " + strings.TrimSpace(line) + "\n")
		}
		return sb.String() + "\n"
	case "hr":
		return "---\n\n"
	case "div", "section", "article", "main", "nav", "header", "footer":
		var sb strings.Builder
		s.Children().Each(func(_ int, child *goquery.Selection) {
			sb.WriteString(c.block(child))
		})
		return sb.String()
	default:
		text := strings.TrimSpace(c.inline(s))
		if text == "" {
			return ""
		}
		return text + "\n\n"
	}
}

func (c *mdConverter) inline(s *goquery.Selection) string {
	var sb strings.Builder
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "#text":
			sb.WriteString(child.Text())
		case "a":
			sb.WriteString(c.link(child))
		case "strong", "b":
			sb.WriteString("**" + c.inline(child) + "**")
		case "em", "i":
			sb.WriteString("*" + c.inline(child) + "*")
		case "code":
			sb.WriteString("`" + child.Text() + "`")
		case "br":
			sb.WriteString("  \n")
		default:
			sb.WriteString(c.inline(child))
		}
	})
	return sb.String()
}

func (c *mdConverter) link(s *goquery.Selection) string {
	href, _ := s.Attr("href")
	text := strings.TrimSpace(s.Text())
	if text == "" {
		text = href
	}
	if href == "" {
		return text
	}

	target := ResolveLink(href, c.base)
	c.links = append(c.links, Link{Index: len(c.links) + 1, Text: text, URL: target})
	return fmt.Sprintf("%s **[%d]**", text, len(c.links))
}

func (c *mdConverter) list(s *goquery.Selection, ordered bool) string {
	var sb strings.Builder
	s.Find("> li").Each(func(i int, li *goquery.Selection) {
		prefix := "- "
		if ordered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		sb.WriteString(prefix + strings.TrimSpace(c.inline(li)) + "\n")
	})
	return sb.String() + "\n"
}

// ResolveLink turns an href found on the page at base into an application
// path. Query-only and fragment-only links keep the current pathname.
func ResolveLink(href, base string) string {
	switch {
	case strings.HasPrefix(href, "#"):
		return history.StripHash(base) + href
	case strings.HasPrefix(href, "?"):
		return stripQuery(history.StripHash(base)) + href
	case strings.HasPrefix(href, "/"):
		return href
	default:
		path, rest := splitPathRest(href)
		return history.ResolvePathname(path, stripQuery(history.StripHash(base))) + rest
	}
}

func stripQuery(path string) string {
	before, _, _ := strings.Cut(path, "?")
	return before
}

func splitPathRest(href string) (string, string) {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		return href[:i], href[i:]
	}
	return href, ""
}
