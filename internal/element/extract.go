package element

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/bookforge/simplebook/internal/normtext"
)

// UnsupportedStructureError reports meaningful text found outside any
// supported tag. It is the enforcement point of the input contract: content
// that would otherwise be dropped silently aborts extraction instead.
type UnsupportedStructureError struct {
	Doc     string // content document identifier
	Parent  string // tag name of the text's parent node
	Snippet string // offending text, truncated
}

func (e *UnsupportedStructureError) Error() string {
	return fmt.Sprintf("unsupported text outside allowed tags in %s (parent <%s>): %s",
		e.Doc, e.Parent, e.Snippet)
}

// ParseDocument parses a content document and removes non-content subtrees
// (script, style, nav). All extraction and classification operates on the
// returned document.
func ParseDocument(raw []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse content document: %w", err)
	}
	doc.Find(StripSelector).Remove()
	return doc, nil
}

// Extract walks one content document in document order and returns its flat
// element sequence. docID identifies the document in error reports.
//
// It returns an *UnsupportedStructureError when a node outside the supported
// tag set carries meaningful text.
func Extract(doc *goquery.Document, docID string) ([]Element, error) {
	root := contentRoot(doc)
	if root == nil {
		return nil, nil
	}
	if err := checkSupportedText(root, docID); err != nil {
		return nil, err
	}
	var els []Element
	walkBlocks(root, &els)
	return els, nil
}

// contentRoot returns the body node, or the document root when the document
// has no body.
func contentRoot(doc *goquery.Document) *html.Node {
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body.Get(0)
	}
	if len(doc.Nodes) > 0 {
		return doc.Nodes[0]
	}
	return nil
}

// walkBlocks visits element children of n in document order, descending
// through containers and emitting one Element per supported content tag.
func walkBlocks(n *html.Node, els *[]Element) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		name := strings.ToLower(c.Data)
		switch {
		case stripTags[name]:
			continue
		case containerTags[name]:
			walkBlocks(c, els)
		case headingTags[name]:
			if text := normtext.Clean(nodeText(c)); text != "" {
				*els = append(*els, Element{Type: Heading, Text: text})
			}
		case name == "blockquote":
			extractBlockquote(c, els)
		case name == "table":
			extractTable(c, els)
		default:
			if t, ok := tagTypes[name]; ok {
				if text := normtext.Clean(nodeText(c)); text != "" {
					*els = append(*els, Element{Type: t, Text: text})
				}
				continue
			}
			walkBlocks(c, els)
		}
	}
}

// extractBlockquote emits the quote text with citation text excluded,
// followed by one cite element per non-empty nested citation. Citations are
// siblings of the quote, not nested under it.
func extractBlockquote(n *html.Node, els *[]Element) {
	var parts []string
	eachTextNode(n, func(tn *html.Node) {
		if strings.TrimSpace(tn.Data) == "" {
			return
		}
		if hasAncestorTag(tn, n, "cite") {
			return
		}
		parts = append(parts, tn.Data)
	})
	if text := normtext.Clean(strings.Join(parts, "\n")); text != "" {
		*els = append(*els, Element{Type: Blockquote, Text: text})
	}
	eachElement(n, func(en *html.Node) {
		if strings.ToLower(en.Data) != "cite" {
			return
		}
		if text := normtext.Clean(nodeText(en)); text != "" {
			*els = append(*els, Element{Type: Cite, Text: text})
		}
	})
}

// extractTable emits the table's caption (if any) followed by its rows.
// Tables whose rows are all empty produce no table element.
func extractTable(n *html.Node, els *[]Element) {
	if caption := findFirstTag(n, "caption", "figcaption"); caption != nil {
		if text := normtext.Clean(nodeText(caption)); text != "" {
			*els = append(*els, Element{Type: Caption, Text: text})
		}
	}
	var rows [][]string
	eachElement(n, func(tr *html.Node) {
		if strings.ToLower(tr.Data) != "tr" {
			return
		}
		var cells []string
		eachElement(tr, func(cell *html.Node) {
			if cellTags[strings.ToLower(cell.Data)] {
				cells = append(cells, normtext.Clean(nodeText(cell)))
			}
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	if len(rows) > 0 {
		*els = append(*els, Element{Type: Table, Rows: rows})
	}
}

// checkSupportedText scans every text node under root and fails on the first
// one whose ancestry contains no supported text tag.
func checkSupportedText(root *html.Node, docID string) error {
	var unsupported *html.Node
	eachTextNode(root, func(tn *html.Node) {
		if unsupported != nil {
			return
		}
		if strings.TrimSpace(tn.Data) == "" {
			return
		}
		for p := tn.Parent; p != nil && p != root.Parent; p = p.Parent {
			if p.Type == html.ElementNode && allowedTextTag(strings.ToLower(p.Data)) {
				return
			}
		}
		unsupported = tn
	})
	if unsupported == nil {
		return nil
	}
	parent := "unknown"
	if unsupported.Parent != nil && unsupported.Parent.Type == html.ElementNode {
		parent = unsupported.Parent.Data
	}
	return &UnsupportedStructureError{
		Doc:     docID,
		Parent:  parent,
		Snippet: snippet(unsupported.Data),
	}
}

// snippet collapses whitespace and truncates text for error messages.
func snippet(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return s
}

// nodeText concatenates the text nodes under n, newline-separated. Callers
// pass the result through normtext.Clean, which collapses the separators.
func nodeText(n *html.Node) string {
	var parts []string
	eachTextNode(n, func(tn *html.Node) {
		parts = append(parts, tn.Data)
	})
	return strings.Join(parts, "\n")
}

// eachTextNode visits every text node in the subtree of n in document order.
func eachTextNode(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			fn(c)
			continue
		}
		if c.Type == html.ElementNode {
			eachTextNode(c, fn)
		}
	}
}

// eachElement visits every element node in the subtree of n in document order.
func eachElement(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		fn(c)
		eachElement(c, fn)
	}
}

// findFirstTag returns the first descendant of n matching one of the names.
func findFirstTag(n *html.Node, names ...string) *html.Node {
	var found *html.Node
	eachElement(n, func(en *html.Node) {
		if found != nil {
			return
		}
		name := strings.ToLower(en.Data)
		for _, want := range names {
			if name == want {
				found = en
				return
			}
		}
	})
	return found
}

// hasAncestorTag reports whether tn has an ancestor named tag at or below
// stop (exclusive).
func hasAncestorTag(tn *html.Node, stop *html.Node, tag string) bool {
	for p := tn.Parent; p != nil && p != stop; p = p.Parent {
		if p.Type == html.ElementNode && strings.ToLower(p.Data) == tag {
			return true
		}
	}
	return false
}
