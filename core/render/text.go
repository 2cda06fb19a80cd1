// Package render — terminal renderer.
// Styles blocks for a terminal with lipgloss. Ordered lists are renumbered
// from 1 since the segmenter discards source numbers.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gaurav-prasanna/briefpipe/core"
	"github.com/gaurav-prasanna/briefpipe/core/markup"
)

// Palette colors for terminal output.
const (
	colorTitle   = "#FF6188"
	colorHeading = "#FFD866"
	colorCode    = "#78DCE8"
	colorDim     = "#727072"
	colorBorder  = "#5B595C"
)

const defaultTextWidth = 80

var (
	h2Style     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle))
	h3Style     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorHeading))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBorder))
	badgeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle))
	strongStyle = lipgloss.NewStyle().Bold(true)
	emStyle     = lipgloss.NewStyle().Italic(true)
	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorCode))
)

// terminalInline renders spans with lipgloss styles.
var terminalInline = markup.Inline{
	Strong:   styled(strongStyle),
	Emphasis: styled(emStyle),
	Code:     styled(codeStyle),
}

func styled(style lipgloss.Style) func(string) string {
	return func(s string) string { return style.Render(s) }
}

// TextRenderer renders blocks for a terminal.
type TextRenderer struct {
	Width int
}

// NewTextRenderer creates a TextRenderer wrapping at width columns.
func NewTextRenderer(width int) *TextRenderer {
	if width <= 0 {
		width = defaultTextWidth
	}
	return &TextRenderer{Width: width}
}

// Render converts blocks into styled terminal text.
func (r *TextRenderer) Render(blocks []markup.Block, meta core.BriefMetadata) ([]byte, error) {
	width := r.Width
	if width <= 0 {
		width = defaultTextWidth
	}
	body := lipgloss.NewStyle().Width(width)
	item := lipgloss.NewStyle().Width(width - 4)

	var sections []string
	if header := textHeader(meta); header != "" {
		sections = append(sections, header)
	}

	for _, b := range blocks {
		switch b := b.(type) {
		case markup.Heading:
			style := h2Style
			if b.Level == 3 {
				style = h3Style
			}
			sections = append(sections, style.Render(markup.PlainInline.Render(b.Text)))

		case markup.Rule:
			sections = append(sections, ruleStyle.Render(strings.Repeat("─", width)))

		case markup.List:
			lines := make([]string, len(b.Items))
			for i, it := range b.Items {
				marker := "  • "
				if b.Ordered {
					marker = fmt.Sprintf("%3d. ", i+1)
				}
				lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, marker, item.Render(terminalInline.Render(it)))
			}
			sections = append(sections, strings.Join(lines, "\n"))

		case markup.Paragraph:
			sections = append(sections, body.Render(terminalInline.Render(b.Text)))
		}
	}

	return []byte(strings.Join(sections, "\n\n") + "\n"), nil
}

// Extension returns the file extension for terminal output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

func textHeader(meta core.BriefMetadata) string {
	var parts []string
	if meta.BrandLabel != "" {
		parts = append(parts, badgeStyle.Render(meta.BrandLabel))
	}
	if !meta.GeneratedAt.IsZero() {
		parts = append(parts, dimStyle.Render(generatedLine(meta.GeneratedAt, renderedAt(meta))))
	}
	return strings.Join(parts, "  ")
}
