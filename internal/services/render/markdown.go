package render

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/prompts"
)

// LinkKind tags a report link with its action, decided once when the tree is
// rendered rather than re-sniffed by the client.
type LinkKind string

const (
	// LinkNavigate triggers an in-app deep dive on the linked ticker.
	LinkNavigate LinkKind = "navigate"
	// LinkExternal opens the destination in a new tab.
	LinkExternal LinkKind = "external"
)

// Link is a classified report link.
type Link struct {
	Kind   LinkKind
	Symbol string // set for navigate links
	URL    string // set for external links
}

// ClassifyLink decides a link's action from its destination. The model is
// instructed to emit analyze anchors for peer tickers; everything else is an
// external reference.
func ClassifyLink(destination string) Link {
	if sym, ok := strings.CutPrefix(destination, prompts.AnalyzeLinkPrefix); ok {
		return Link{Kind: LinkNavigate, Symbol: strings.ToUpper(strings.TrimSpace(sym))}
	}
	return Link{Kind: LinkExternal, URL: destination}
}

// Markdown renders report bodies to HTML.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown builds a GFM renderer whose link output is routed through the
// ticker-link classifier.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				renderer.WithNodeRenderers(util.Prioritized(&linkRenderer{}, 100)),
			),
		),
	}
}

// Render converts a Markdown report body to HTML.
func (m *Markdown) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// linkRenderer overrides the default link output. Navigate links become
// buttons carrying the ticker in a data attribute so the page script never
// parses hrefs; external links open in a new tab.
type linkRenderer struct{}

func (r *linkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindLink, r.renderLink)
}

func (r *linkRenderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	link := ClassifyLink(string(n.Destination))

	if !entering {
		if link.Kind == LinkNavigate {
			_, _ = w.WriteString("</button>")
		} else {
			_, _ = w.WriteString("</a>")
		}
		return ast.WalkContinue, nil
	}

	if link.Kind == LinkNavigate {
		_, _ = w.WriteString(`<button type="button" class="ticker-link" data-ticker="`)
		_, _ = w.WriteString(html.EscapeString(link.Symbol))
		_, _ = w.WriteString(`">`)
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.WriteString(html.EscapeString(link.URL))
	_, _ = w.WriteString(`" target="_blank" rel="noopener noreferrer">`)
	return ast.WalkContinue, nil
}
