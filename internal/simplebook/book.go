// Package simplebook converts an EPUB into its normalized JSON
// representation: package metadata plus the classified chapters, each a flat
// element sequence with chunk boundaries.
package simplebook

import (
	"encoding/json"
	"strings"

	"github.com/bookforge/simplebook/internal/element"
	"github.com/bookforge/simplebook/internal/epub"
)

// Metadata is the book-level output record, built once from the package
// metadata and never mutated afterwards.
type Metadata struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Language string `json:"language"`
	ISBN     string `json:"isbn,omitempty"`
	UUID     string `json:"uuid,omitempty"`
}

// Chapter is one classified chapter: its display name, element sequence in
// document order, and chunk-start indices into that sequence.
type Chapter struct {
	Name     string            `json:"name"`
	Elements []element.Element `json:"elements"`
	Chunks   []int             `json:"chunks"`
}

// Book is the root output artifact.
type Book struct {
	Metadata Metadata  `json:"metadata"`
	Chapters []Chapter `json:"chapters"`
}

// JSON serializes the book deterministically: fixed field order, two-space
// indentation, trailing newline. The same book always yields identical bytes.
func (b *Book) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// PreviewJSON serializes the book's structure only: elements carry just their
// type, with text, rows and attributes omitted.
func (b *Book) PreviewJSON() ([]byte, error) {
	preview := Book{
		Metadata: b.Metadata,
		Chapters: make([]Chapter, 0, len(b.Chapters)),
	}
	for _, ch := range b.Chapters {
		els := make([]element.Element, len(ch.Elements))
		for i, el := range ch.Elements {
			els[i] = element.Element{Type: el.Type}
		}
		preview.Chapters = append(preview.Chapters, Chapter{
			Name:     ch.Name,
			Elements: els,
			Chunks:   ch.Chunks,
		})
	}
	return preview.JSON()
}

// buildMetadata maps package metadata onto the output record. ISBN and UUID
// are scanned from the identifier values; when no identifier names a uuid the
// first identifier stands in for it.
func buildMetadata(md epub.Metadata) Metadata {
	out := Metadata{
		Title:    md.Title,
		Language: md.Language,
	}
	if len(md.Creators) > 0 {
		out.Author = md.Creators[0]
	}

	for _, ident := range md.Identifiers {
		lowered := strings.ToLower(ident)
		if out.ISBN == "" && strings.Contains(lowered, "isbn") {
			parts := strings.Split(ident, ":")
			out.ISBN = parts[len(parts)-1]
		}
		if out.UUID == "" && strings.Contains(lowered, "uuid") {
			out.UUID = ident
		}
	}
	if out.UUID == "" && len(md.Identifiers) > 0 {
		out.UUID = md.Identifiers[0]
	}

	return out
}
