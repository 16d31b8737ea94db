package parsing

import (
	"bytes"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/util"
)

// Used for generating the final HTML for a post or comment body.
var RealMarkdown = goldmark.New(
	goldmark.WithExtensions(makeGoldmarkExtensions()...),
)

// Used for generating plain-text excerpts of posts.
var PlaintextMarkdown = goldmark.New(
	goldmark.WithExtensions(makeGoldmarkExtensions()...),
	goldmark.WithRenderer(plaintextRenderer{}),
)

// Renders raw user markup with the given pipeline. The stored raw text is
// never modified; both HTML and plaintext are derived views.
func ParseMarkdown(source string, md goldmark.Markdown) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		panic(err)
	}

	return buf.String()
}

func makeGoldmarkExtensions() []goldmark.Extender {
	return []goldmark.Extender{
		extension.GFM,
		highlightExtension,
		EmbedExtension{},
		BBCodeExtension{},
	}
}

var highlightExtension = highlighting.NewHighlighting(
	highlighting.WithFormatOptions(ChromaOptions...),
	highlighting.WithWrapperRenderer(func(w util.BufWriter, context highlighting.CodeBlockContext, entering bool) {
		if entering {
			w.WriteString(`<pre class="carafe-code">`)
		} else {
			w.WriteString(`</pre>`)
		}
	}),
)
