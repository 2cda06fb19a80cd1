// Package markup — block segmenter.
// Groups document lines into typed blocks in a single forward pass.
package markup

import (
	"regexp"
	"strings"
)

const (
	h2Marker = "## "
	h3Marker = "### "
)

var (
	ruleRegex        = regexp.MustCompile(`^---+$`)
	orderedItemRegex = regexp.MustCompile(`^\d+\. `)
	orderedStrip     = regexp.MustCompile(`^\d+\.\s+`)
)

// Segment splits a document into lines and segments them.
// It never fails: anything unrecognized becomes a Paragraph.
func Segment(document string) []Block {
	document = strings.ReplaceAll(document, "\r\n", "\n")
	return SegmentLines(strings.Split(document, "\n"))
}

// SegmentLines segments pre-split lines. Blank lines separate blocks and
// produce nothing; every other line lands in exactly one block.
func SegmentLines(lines []string) []Block {
	blocks := make([]Block, 0, len(lines)/2+1)

	for i := 0; i < len(lines); {
		line := lines[i]

		switch {
		case strings.HasPrefix(line, h2Marker):
			blocks = append(blocks, Heading{Level: 2, Text: line[len(h2Marker):]})
			i++

		case strings.HasPrefix(line, h3Marker):
			blocks = append(blocks, Heading{Level: 3, Text: line[len(h3Marker):]})
			i++

		case isRule(line):
			blocks = append(blocks, Rule{})
			i++

		case isUnorderedItem(line):
			var items []string
			for i < len(lines) && isUnorderedItem(lines[i]) {
				items = append(items, lines[i][2:])
				i++
			}
			blocks = append(blocks, List{Ordered: false, Items: items})

		case orderedItemRegex.MatchString(line):
			var items []string
			for i < len(lines) && orderedItemRegex.MatchString(lines[i]) {
				items = append(items, orderedStrip.ReplaceAllString(lines[i], ""))
				i++
			}
			blocks = append(blocks, List{Ordered: true, Items: items})

		case strings.TrimSpace(line) == "":
			i++

		default:
			blocks = append(blocks, Paragraph{Text: line})
			i++
		}
	}

	return blocks
}

// isRule reports whether the trimmed line is three or more hyphens.
func isRule(line string) bool {
	return ruleRegex.MatchString(strings.TrimSpace(line))
}

func isUnorderedItem(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")
}
