// Package element defines the typed content units extracted from a content
// document and the extractor that produces them from parsed HTML.
package element

// Type identifies the structural kind of an extracted element. The set is
// closed: the extractor only ever emits these values.
type Type string

const (
	Paragraph      Type = "paragraph"
	Heading        Type = "heading"
	Blockquote     Type = "blockquote"
	ListItem       Type = "list_item"
	Cite           Type = "cite"
	Table          Type = "table"
	DefinitionTerm Type = "definition_term"
	DefinitionDesc Type = "definition_desc"
	Caption        Type = "caption"
)

// Element is one typed, normalized unit of content in document order.
// Text is set for all text-bearing types; Rows only for tables.
type Element struct {
	Type     Type              `json:"type"`
	Text     string            `json:"text,omitempty"`
	Rows     [][]string        `json:"rows,omitempty"`
	Markdown string            `json:"markdown,omitempty"`
	RawHTML  string            `json:"raw_html,omitempty"`
	Role     string            `json:"role,omitempty"`
	Meta     map[string]string `json:"meta,omitempty"`
}

// TextLength returns the number of text characters the element carries,
// summing all cells for tables.
func (e Element) TextLength() int {
	if e.Text != "" {
		return len(e.Text)
	}
	n := 0
	for _, row := range e.Rows {
		for _, cell := range row {
			n += len(cell)
		}
	}
	return n
}

// tagTypes is the closed mapping from content tag name to element type.
// Tags absent here are either headings, structural containers, or unsupported.
var tagTypes = map[string]Type{
	"p":          Paragraph,
	"blockquote": Blockquote,
	"li":         ListItem,
	"dt":         DefinitionTerm,
	"dd":         DefinitionDesc,
	"cite":       Cite,
	"figcaption": Caption,
	"caption":    Caption,
	"table":      Table,
}

// headingTags are emitted as heading elements and feed chapter naming.
var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// cellTags are the table cell tags harvested into rows.
var cellTags = map[string]bool{
	"td": true,
	"th": true,
}

// containerTags are structural pass-throughs: they carry no text of their own
// and traversal descends into them.
var containerTags = map[string]bool{
	"div": true, "section": true, "article": true,
	"header": true, "footer": true, "aside": true, "main": true,
	"figure": true,
	"ul":     true, "ol": true, "dl": true,
	"tbody": true, "thead": true, "tfoot": true, "tr": true,
}

// stripTags are removed wholesale, subtree included, before any extraction
// or classification.
var stripTags = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
}

// StripSelector is the goquery selector matching all stripTags.
const StripSelector = "script, style, nav"

// allowedTextTag reports whether a tag may legitimately contain text.
func allowedTextTag(name string) bool {
	if _, ok := tagTypes[name]; ok {
		return true
	}
	return headingTags[name] || cellTags[name]
}
