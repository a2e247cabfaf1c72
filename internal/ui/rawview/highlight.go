package rawview

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// MaxHighlightBytes caps the input size that gets syntax highlighting.
// Larger documents are shown as plain text.
const MaxHighlightBytes = 1 << 20

// Highlight colors JSON source for a 256-color terminal using the named
// chroma style. Unknown styles fall back to chroma's default. On any
// failure the input is returned unchanged.
func Highlight(src, styleName string) string {
	if src == "" {
		return src
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	lexer := lexers.Get("json")
	if lexer == nil {
		return src
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return src
	}
	return buf.String()
}
