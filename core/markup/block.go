// Package markup implements the restricted markdown grammar used by briefs.
// A document is segmented line by line into a flat sequence of blocks
// (headings, rules, lists, paragraphs); inline emphasis and code spans are
// resolved per block payload by an Inline renderer.
package markup

// Kind discriminates the four block types.
type Kind int

const (
	KindHeading Kind = iota
	KindRule
	KindList
	KindParagraph
)

// String returns the lowercase name used in JSON output.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindRule:
		return "rule"
	case KindList:
		return "list"
	case KindParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Block is one segmented region of a document. The set of implementations
// is closed: Heading, Rule, List and Paragraph.
type Block interface {
	Kind() Kind
	isBlock()
}

// Heading is a level 2 or level 3 heading.
type Heading struct {
	Level int
	Text  string
}

// Rule is a horizontal divider.
type Rule struct{}

// List is a run of consecutive items sharing one marker family.
type List struct {
	Ordered bool
	Items   []string
}

// Paragraph is a single non-blank line that matched no other rule.
type Paragraph struct {
	Text string
}

func (Heading) Kind() Kind   { return KindHeading }
func (Rule) Kind() Kind      { return KindRule }
func (List) Kind() Kind      { return KindList }
func (Paragraph) Kind() Kind { return KindParagraph }

func (Heading) isBlock()   {}
func (Rule) isBlock()      {}
func (List) isBlock()      {}
func (Paragraph) isBlock() {}
