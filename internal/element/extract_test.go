package element

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseTestDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := ParseDocument([]byte(html))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	return doc
}

func extractTest(t *testing.T, html string) []Element {
	t.Helper()
	els, err := Extract(parseTestDocument(t, html), "test.xhtml")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	return els
}

func elementTypes(els []Element) []Type {
	types := make([]Type, len(els))
	for i, el := range els {
		types[i] = el.Type
	}
	return types
}

func TestExtract_BasicChapter(t *testing.T) {
	els := extractTest(t, `<html><body>
		<h1>Chapter 1</h1>
		<p>First paragraph.</p>
		<p>Second paragraph.</p>
	</body></html>`)

	want := []Element{
		{Type: Heading, Text: "Chapter 1"},
		{Type: Paragraph, Text: "First paragraph."},
		{Type: Paragraph, Text: "Second paragraph."},
	}
	if !reflect.DeepEqual(els, want) {
		t.Errorf("Extract = %+v, want %+v", els, want)
	}
}

func TestExtract_DescendsContainers(t *testing.T) {
	els := extractTest(t, `<html><body>
		<div><section><article>
			<p>Nested paragraph.</p>
		</article></section></div>
	</body></html>`)

	if len(els) != 1 || els[0].Type != Paragraph || els[0].Text != "Nested paragraph." {
		t.Errorf("Extract = %+v, want one nested paragraph", els)
	}
}

func TestExtract_ListItems(t *testing.T) {
	els := extractTest(t, `<html><body>
		<ul><li>first</li><li>second</li></ul>
	</body></html>`)

	want := []Type{ListItem, ListItem}
	if !reflect.DeepEqual(elementTypes(els), want) {
		t.Errorf("types = %v, want %v", elementTypes(els), want)
	}
}

func TestExtract_BareListItem(t *testing.T) {
	// An <li> directly under <body> with no list wrapper is still captured.
	els := extractTest(t, `<html><body><li>stray item</li></body></html>`)

	if len(els) != 1 || els[0].Type != ListItem || els[0].Text != "stray item" {
		t.Errorf("Extract = %+v, want one list_item", els)
	}
}

func TestExtract_DefinitionList(t *testing.T) {
	els := extractTest(t, `<html><body>
		<dl><dt>term</dt><dd>description</dd></dl>
	</body></html>`)

	want := []Element{
		{Type: DefinitionTerm, Text: "term"},
		{Type: DefinitionDesc, Text: "description"},
	}
	if !reflect.DeepEqual(els, want) {
		t.Errorf("Extract = %+v, want %+v", els, want)
	}
}

func TestExtract_BlockquoteWithCite(t *testing.T) {
	els := extractTest(t, `<html><body>
		<blockquote>To be or not to be.<cite>Hamlet</cite></blockquote>
	</body></html>`)

	want := []Element{
		{Type: Blockquote, Text: "To be or not to be."},
		{Type: Cite, Text: "Hamlet"},
	}
	if !reflect.DeepEqual(els, want) {
		t.Errorf("Extract = %+v, want %+v", els, want)
	}
}

func TestExtract_BlockquoteWithoutCite(t *testing.T) {
	els := extractTest(t, `<html><body>
		<blockquote><p>Quoted text.</p></blockquote>
	</body></html>`)

	want := []Element{{Type: Blockquote, Text: "Quoted text."}}
	if !reflect.DeepEqual(els, want) {
		t.Errorf("Extract = %+v, want %+v", els, want)
	}
}

func TestExtract_Table(t *testing.T) {
	els := extractTest(t, `<html><body>
		<table>
			<thead><tr><th>Name</th><th>Value</th></tr></thead>
			<tbody>
				<tr><td>alpha</td><td>1</td></tr>
				<tr><td>beta</td><td>2</td></tr>
			</tbody>
		</table>
	</body></html>`)

	want := []Element{{Type: Table, Rows: [][]string{
		{"Name", "Value"},
		{"alpha", "1"},
		{"beta", "2"},
	}}}
	if !reflect.DeepEqual(els, want) {
		t.Errorf("Extract = %+v, want %+v", els, want)
	}
}

func TestExtract_TableWithCaption(t *testing.T) {
	els := extractTest(t, `<html><body>
		<table>
			<caption>Results</caption>
			<tr><td>a</td><td>b</td></tr>
		</table>
	</body></html>`)

	want := []Element{
		{Type: Caption, Text: "Results"},
		{Type: Table, Rows: [][]string{{"a", "b"}}},
	}
	if !reflect.DeepEqual(els, want) {
		t.Errorf("Extract = %+v, want %+v", els, want)
	}
}

func TestExtract_EmptyElementsDropped(t *testing.T) {
	els := extractTest(t, `<html><body>
		<p>  </p>
		<p>real text</p>
		<h2></h2>
	</body></html>`)

	want := []Element{{Type: Paragraph, Text: "real text"}}
	if !reflect.DeepEqual(els, want) {
		t.Errorf("Extract = %+v, want %+v", els, want)
	}
}

func TestExtract_NormalizesText(t *testing.T) {
	els := extractTest(t, "<html><body><p> “Café,”  he   said.</p></body></html>")
	want := []Element{{Type: Paragraph, Text: "<<Cafe,>> he said."}}
	if !reflect.DeepEqual(els, want) {
		t.Errorf("Extract = %+v, want %+v", els, want)
	}
}

func TestExtract_StripsScriptStyleNav(t *testing.T) {
	els := extractTest(t, `<html><body>
		<nav><p>skip me</p></nav>
		<script>var x = 1;</script>
		<style>p { color: red; }</style>
		<p>keep me</p>
	</body></html>`)

	want := []Element{{Type: Paragraph, Text: "keep me"}}
	if !reflect.DeepEqual(els, want) {
		t.Errorf("Extract = %+v, want %+v", els, want)
	}
}

func TestExtract_UnsupportedStructure(t *testing.T) {
	doc := parseTestDocument(t, `<html><body><div><span>meaningful text</span></div></body></html>`)

	_, err := Extract(doc, "broken.xhtml")
	if err == nil {
		t.Fatal("expected UnsupportedStructureError, got nil")
	}
	var use *UnsupportedStructureError
	if !errors.As(err, &use) {
		t.Fatalf("error type = %T, want *UnsupportedStructureError", err)
	}
	if use.Doc != "broken.xhtml" {
		t.Errorf("Doc = %q, want %q", use.Doc, "broken.xhtml")
	}
	if use.Parent != "span" {
		t.Errorf("Parent = %q, want %q", use.Parent, "span")
	}
	if !strings.Contains(use.Snippet, "meaningful text") {
		t.Errorf("Snippet = %q, want it to contain the offending text", use.Snippet)
	}
}

func TestExtract_InlineMarkupInsideParagraphAllowed(t *testing.T) {
	els := extractTest(t, `<html><body>
		<p>text with <em>emphasis</em> and <span>spans</span></p>
	</body></html>`)

	want := []Element{{Type: Paragraph, Text: "text with emphasis and spans"}}
	if !reflect.DeepEqual(els, want) {
		t.Errorf("Extract = %+v, want %+v", els, want)
	}
}

func TestExtract_DocumentOrderPreserved(t *testing.T) {
	els := extractTest(t, `<html><body>
		<h1>Title</h1>
		<p>one</p>
		<blockquote>quote</blockquote>
		<p>two</p>
		<table><tr><td>x</td></tr></table>
		<p>three</p>
	</body></html>`)

	want := []Type{Heading, Paragraph, Blockquote, Paragraph, Table, Paragraph}
	if !reflect.DeepEqual(elementTypes(els), want) {
		t.Errorf("types = %v, want %v", elementTypes(els), want)
	}
}
