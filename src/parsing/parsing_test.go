package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	t.Run("fenced code blocks", func(t *testing.T) {
		t.Run("multiple lines", func(t *testing.T) {
			html := ParseMarkdown("```\nmultiple lines\n\tof code\n```", RealMarkdown)
			t.Log(html)
			assert.Equal(t, 1, strings.Count(html, "<pre"))
			assert.Contains(t, html, `class="carafe-code"`)
			assert.Contains(t, html, "multiple lines\n\tof code")
		})
		t.Run("multiple lines with language", func(t *testing.T) {
			html := ParseMarkdown("```go\nfunc main() {\n\tfmt.Println(\"Hello, world!\")\n}\n```", RealMarkdown)
			t.Log(html)
			assert.Equal(t, 1, strings.Count(html, "<pre"))
			assert.Contains(t, html, `class="carafe-code"`)
			assert.Contains(t, html, "Println")
			assert.Contains(t, html, "Hello, world!")
		})
	})
	t.Run("raw html is escaped", func(t *testing.T) {
		html := ParseMarkdown("hello <script>alert(1)</script>", RealMarkdown)
		t.Log(html)
		assert.NotContains(t, html, "<script>")
	})
}

func TestBBCode(t *testing.T) {
	t.Run("[code]", func(t *testing.T) {
		t.Run("one line", func(t *testing.T) {
			html := ParseMarkdown("[code]Just some code, you know?[/code]", RealMarkdown)
			t.Log(html)
			assert.Equal(t, 1, strings.Count(html, "<pre"))
			assert.Contains(t, html, `class="carafe-code"`)
			assert.Contains(t, html, "Just some code, you know?")
		})
		t.Run("multiline with language", func(t *testing.T) {
			bbcode := `[code language=go]
func main() {
	fmt.Println("Hello, world!")
}
[/code]`
			html := ParseMarkdown(bbcode, RealMarkdown)
			t.Log(html)
			assert.Equal(t, 1, strings.Count(html, "<pre"))
			assert.Contains(t, html, "Println")
			assert.Contains(t, html, "Hello, world!")
		})
	})
	t.Run("[quote]", func(t *testing.T) {
		html := ParseMarkdown("[quote=somebody]well put[/quote]", RealMarkdown)
		t.Log(html)
		assert.Contains(t, html, "<blockquote")
		assert.Contains(t, html, "somebody")
		assert.Contains(t, html, "well put")
	})
}

func TestEmbeds(t *testing.T) {
	t.Run("youtube", func(t *testing.T) {
		html := ParseMarkdown("https://www.youtube.com/watch?v=dQw4w9WgXcQ", RealMarkdown)
		t.Log(html)
		assert.Contains(t, html, "<iframe")
		assert.Contains(t, html, "youtube-nocookie.com/embed/dQw4w9WgXcQ")
	})
	t.Run("vimeo", func(t *testing.T) {
		html := ParseMarkdown("https://vimeo.com/12345678", RealMarkdown)
		t.Log(html)
		assert.Contains(t, html, "player.vimeo.com/video/12345678")
	})
	t.Run("bare url becomes an anchor", func(t *testing.T) {
		html := ParseMarkdown("https://example.com/some/page", RealMarkdown)
		t.Log(html)
		assert.Contains(t, html, `<a href="https://example.com/some/page"`)
		assert.NotContains(t, html, "<iframe")
	})
}

func TestPlaintext(t *testing.T) {
	t.Run("strips markup", func(t *testing.T) {
		plain := ParseMarkdown("# Heading\n\nSome **bold** text.", PlaintextMarkdown)
		t.Log(plain)
		assert.Contains(t, plain, "Heading")
		assert.Contains(t, plain, "bold")
		assert.NotContains(t, plain, "<")
		assert.NotContains(t, plain, ">")
	})
	t.Run("never leaks angle brackets from the source", func(t *testing.T) {
		inputs := []string{
			"plain text",
			"text with <b>inline html</b>",
			"<script>alert('hi')</script>",
			"markdown *and* <em>html</em> together",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		}
		for _, input := range inputs {
			plain := ParseMarkdown(input, PlaintextMarkdown)
			assert.NotContains(t, plain, "<")
			assert.NotContains(t, plain, ">")
		}
	})
	t.Run("deterministic", func(t *testing.T) {
		input := "Some **content** with a [quote]quote[/quote] and https://example.com/x"
		assert.Equal(t,
			ParseMarkdown(input, PlaintextMarkdown),
			ParseMarkdown(input, PlaintextMarkdown),
		)
	})
}
