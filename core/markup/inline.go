// Package markup — inline renderer.
// Resolves **bold**, *italic* and `code` spans within a single block payload.
package markup

import (
	"regexp"
	"strings"
)

var (
	boldRegex = regexp.MustCompile(`\*\*(.+?)\*\*`)
	codeRegex = regexp.MustCompile("`([^`]+)`")
)

// Inline rewrites emphasis and code spans using the given wrappers.
// Passes run in a fixed order: bold, italic, code. Each pass sees the
// output of the previous one, so asterisks inside a code span are
// resolved as emphasis before the code span itself is recognized.
type Inline struct {
	Strong   func(string) string
	Emphasis func(string) string
	Code     func(string) string
}

// HTML class sets for the dashboard's brief panel.
const (
	StrongClass   = "font-semibold text-slate-800"
	EmphasisClass = "italic"
	CodeClass     = "bg-slate-100 text-slate-700 px-1 rounded text-[11px] font-mono"
)

// HTMLInline wraps spans in strong/em/code elements. Span content is not
// escaped: input must come from the trusted brief source.
var HTMLInline = Inline{
	Strong:   wrapTag("strong", StrongClass),
	Emphasis: wrapTag("em", EmphasisClass),
	Code:     wrapTag("code", CodeClass),
}

// PlainInline drops the delimiters and keeps the span text.
var PlainInline = Inline{}

// RenderInline resolves inline markup to HTML.
func RenderInline(text string) string {
	return HTMLInline.Render(text)
}

// Render applies the three passes. Unmatched or empty delimiters are left
// as literal characters.
func (in Inline) Render(text string) string {
	text = replaceSubmatch(boldRegex, text, in.Strong)
	text = replaceEmphasis(text, in.Emphasis)
	text = replaceSubmatch(codeRegex, text, in.Code)
	return text
}

// RenderAll renders each item independently.
func (in Inline) RenderAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = in.Render(item)
	}
	return out
}

func replaceSubmatch(re *regexp.Regexp, text string, wrap func(string) string) string {
	return re.ReplaceAllStringFunc(text, func(match string) string {
		inner := re.FindStringSubmatch(match)[1]
		return apply(wrap, inner)
	})
}

// replaceEmphasis matches a lone '*', a run of non-asterisks, and a closing
// lone '*'. A delimiter is lone when neither neighbour is '*'.
func replaceEmphasis(text string, wrap func(string) string) string {
	var b strings.Builder
	last := 0

	for i := 0; i < len(text); i++ {
		if text[i] != '*' || (i > 0 && text[i-1] == '*') {
			continue
		}
		// The run cannot contain '*', so the closer is the next asterisk.
		n := strings.IndexByte(text[i+1:], '*')
		if n <= 0 {
			continue
		}
		j := i + 1 + n
		if j+1 < len(text) && text[j+1] == '*' {
			continue
		}

		b.WriteString(text[last:i])
		b.WriteString(apply(wrap, text[i+1:j]))
		last = j + 1
		i = j
	}

	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

func apply(wrap func(string) string, s string) string {
	if wrap == nil {
		return s
	}
	return wrap(s)
}

func wrapTag(tag, class string) func(string) string {
	open := "<" + tag + ` class="` + class + `">`
	closing := "</" + tag + ">"
	return func(s string) string {
		return open + s + closing
	}
}
