package parsing

import (
	stdhtml "html"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"mvdan.cc/xurls/v2"
)

var (
	REYoutubeLong  = regexp.MustCompile(`^https://www\.youtube\.com/watch?.*v=(?P<vid>[a-zA-Z0-9_-]{11})`)
	REYoutubeShort = regexp.MustCompile(`^https://youtu\.be/(?P<vid>[a-zA-Z0-9_-]{11})`)
	REVimeo        = regexp.MustCompile(`^https://vimeo\.com/(?P<vid>\d+)`)
)

var reBareURL = xurls.Strict()

/*
Returns the HTML used to embed the given url, or false if nothing at the
start of the string looks like a URL at all. Recognized media links become
iframes; any other URL degrades to a plain anchor, so a bad or unsupported
link can never fail the render.

The provided string need only start with the URL; trailing content after the
URL is ignored.
*/
func htmlForURLEmbed(url string) (string, []byte, bool) {
	if match := extract(REYoutubeLong, []byte(url), "vid"); match != nil {
		return makeYoutubeEmbed(string(match)), match, true
	} else if match := extract(REYoutubeShort, []byte(url), "vid"); match != nil {
		return makeYoutubeEmbed(string(match)), match, true
	} else if match := extract(REVimeo, []byte(url), "vid"); match != nil {
		return `
			<div class="aspect-ratio aspect-ratio--16x9">
				<iframe class="aspect-ratio--object" src="https://player.vimeo.com/video/` + string(match) + `" frameborder="0" allow="fullscreen; picture-in-picture" allowfullscreen></iframe>
			</div>
		`, match, true
	}

	if loc := reBareURL.FindStringIndex(url); loc != nil && loc[0] == 0 {
		matched := url[:loc[1]]
		// The URL came straight out of user text, so it gets escaped before
		// being dropped into an attribute.
		escaped := stdhtml.EscapeString(matched)
		return `<a href="` + escaped + `" rel="noopener noreferrer">` + escaped + `</a>`, []byte(matched), true
	}

	return "", nil, false
}

func makeYoutubeEmbed(vid string) string {
	return `
		<div class="aspect-ratio aspect-ratio--16x9">
			<iframe class="aspect-ratio--object" src="https://www.youtube-nocookie.com/embed/` + vid + `" frameborder="0" allowfullscreen></iframe>
		</div>
	`
}

// ----------------------
// Parser and delimiters
// ----------------------

type embedParser struct{}

var _ parser.BlockParser = embedParser{}

func (s embedParser) Trigger() []byte {
	return nil
}

func (s embedParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	restOfLine, _ := reader.PeekLine()

	if html, match, ok := htmlForURLEmbed(string(restOfLine)); ok {
		html = `<div class="mw6">` + html + `</div>`
		reader.Advance(len(match))
		return NewEmbed(html), parser.NoChildren
	} else {
		return nil, parser.NoChildren
	}
}

func (s embedParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (s embedParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (s embedParser) CanInterruptParagraph() bool {
	return true
}

func (s embedParser) CanAcceptIndentedLine() bool {
	return false
}

// ----------------------
// AST node
// ----------------------

type EmbedNode struct {
	ast.BaseBlock
	HTML string
}

func (n *EmbedNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

var KindEmbed = ast.NewNodeKind("Embed")

func (n *EmbedNode) Kind() ast.NodeKind {
	return KindEmbed
}

func NewEmbed(HTML string) ast.Node {
	return &EmbedNode{
		HTML: HTML,
	}
}

// ----------------------
// Renderer
// ----------------------

type EmbedHTMLRenderer struct {
	html.Config
}

func NewEmbedHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &EmbedHTMLRenderer{
		Config: html.NewConfig(),
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *EmbedHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindEmbed, r.renderEmbed)
}

func (r *EmbedHTMLRenderer) renderEmbed(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		w.WriteString(n.(*EmbedNode).HTML)
	}
	return ast.WalkSkipChildren, nil
}

// ----------------------
// Extension
// ----------------------

type EmbedExtension struct{}

func (e EmbedExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(embedParser{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewEmbedHTMLRenderer(), 500),
	))
}
