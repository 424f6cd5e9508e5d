package element

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/bookforge/simplebook/internal/normtext"
)

// headingClassKeys mark an element as heading-like via its class attribute.
var headingClassKeys = []string{"title", "subtitle", "chapter", "heading"}

// headingTypeKeys mark a paragraph as heading-like via its epub:type attribute.
var headingTypeKeys = []string{"title", "subtitle", "heading"}

// HeadingTexts collects the distinct heading-level text fragments of a
// document: the <title>, then h1-h6 and heading-styled elements from the top
// of the body. Scanning stops at the first plain paragraph, so only the
// document's leading heading block contributes.
func HeadingTexts(doc *goquery.Document) []string {
	var texts []string
	seen := map[string]bool{}
	add := func(raw string) {
		cleaned := normtext.Clean(raw)
		if cleaned != "" && !seen[cleaned] {
			texts = append(texts, cleaned)
			seen[cleaned] = true
		}
	}

	if title := doc.Find("head > title").First(); title.Length() > 0 {
		add(title.Text())
	}

	root := contentRoot(doc)
	if root == nil {
		return texts
	}

	stopped := false
	var scan func(n *html.Node)
	scan = func(n *html.Node) {
		for c := n.FirstChild; c != nil && !stopped; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			name := strings.ToLower(c.Data)

			if name == "p" {
				if normtext.Clean(nodeText(c)) == "" {
					continue
				}
				if attrContainsAny(c, "epub:type", headingTypeKeys) ||
					attrContainsAny(c, "class", headingClassKeys) {
					add(nodeText(c))
					continue
				}
				// First paragraph of body text ends the heading block.
				stopped = true
				return
			}

			if headingTags[name] || name == "subtitle" ||
				attrValue(c, "role") == "heading" ||
				attrContainsAny(c, "class", headingClassKeys) {
				add(nodeText(c))
			}
			scan(c)
		}
	}
	scan(root)

	return texts
}

// HeadingLabel combines the heading fragments of a document into one chapter
// label, joining short fragments ("Chapter" + "IX") with " - " and skipping
// fragments already contained in the label.
func HeadingLabel(doc *goquery.Document) string {
	label := ""
	for _, text := range HeadingTexts(doc) {
		if label == "" {
			label = text
			continue
		}
		if strings.Contains(strings.ToLower(label), strings.ToLower(text)) {
			continue
		}
		label = label + " - " + text
	}
	return label
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// attrContainsAny reports whether the named attribute contains any of the
// keys, case-insensitively.
func attrContainsAny(n *html.Node, key string, keys []string) bool {
	val := strings.ToLower(attrValue(n, key))
	if val == "" {
		return false
	}
	for _, k := range keys {
		if strings.Contains(val, k) {
			return true
		}
	}
	return false
}
