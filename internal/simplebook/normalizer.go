package simplebook

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/bookforge/simplebook/internal/chunk"
	"github.com/bookforge/simplebook/internal/classify"
	"github.com/bookforge/simplebook/internal/element"
	"github.com/bookforge/simplebook/internal/epub"
)

// Malformed-package errors raised by the normalizer itself; the epub package
// raises its own sentinels for container-level problems.
var (
	ErrEmptySpine = errors.New("package has no content documents in its spine")
	ErrNoTitle    = errors.New("package metadata has no title")
)

// Options configures a Normalizer. Zero-valued Limits and Classify fall back
// to the package defaults.
type Options struct {
	InputPath string
	Limits    chunk.Limits
	Classify  classify.Config
}

// Normalizer runs the full extraction pipeline over one EPUB: classify the
// spine, extract and chunk each chapter, and assemble the Book.
type Normalizer struct {
	opts       Options
	classifier *classify.Classifier
}

// New creates a Normalizer for the given options.
func New(opts Options) *Normalizer {
	return &Normalizer{
		opts:       opts,
		classifier: classify.New(opts.Classify),
	}
}

// Normalize processes the EPUB and returns the assembled book. Structural
// violations (element.UnsupportedStructureError) abort the run: the output is
// never partial.
func (n *Normalizer) Normalize() (*Book, error) {
	reader, opf, err := n.openPackage()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	docs := opf.ContentDocuments()
	if len(docs) == 0 {
		return nil, ErrEmptySpine
	}
	if opf.Metadata.Title == "" {
		return nil, ErrNoTitle
	}

	navLabels := n.loadNavLabels(reader, opf)

	book := &Book{
		Metadata: buildMetadata(opf.Metadata),
		Chapters: []Chapter{},
	}

	for _, doc := range docs {
		chapter, err := n.processDocument(reader, doc, navLabels)
		if err != nil {
			return nil, err
		}
		if chapter != nil {
			book.Chapters = append(book.Chapters, *chapter)
		}
	}

	return book, nil
}

// openPackage opens the EPUB container and parses its package document.
func (n *Normalizer) openPackage() (*epub.Reader, *epub.OPF, error) {
	reader, err := epub.Open(n.opts.InputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open EPUB: %w", err)
	}

	opfData, err := reader.ReadFile(reader.OPFPath())
	if err != nil {
		reader.Close()
		return nil, nil, fmt.Errorf("failed to read OPF: %w", err)
	}

	opf, err := epub.ParseOPF(opfData, filepath.Dir(reader.OPFPath()))
	if err != nil {
		reader.Close()
		return nil, nil, fmt.Errorf("failed to parse OPF: %w", err)
	}

	return reader, opf, nil
}

// loadNavLabels loads navigation labels for the chapter-name fallback.
// Navigation problems are not fatal: books without usable navigation still
// normalize, with heading-derived names only.
func (n *Normalizer) loadNavLabels(reader *epub.Reader, opf *epub.OPF) map[string]string {
	ncx, err := epub.LoadNCX(reader, opf)
	if err != nil {
		log.Printf("warning: failed to load navigation: %v", err)
		return nil
	}
	if ncx == nil {
		return nil
	}
	return ncx.Labels()
}

// processDocument classifies one content document and, when it is a chapter,
// extracts and chunks it. Returns nil for documents excluded from output.
func (n *Normalizer) processDocument(reader *epub.Reader, doc epub.Document, navLabels map[string]string) (*Chapter, error) {
	raw, err := reader.ReadFile(doc.Href)
	if err != nil {
		log.Printf("warning: skipping unreadable document %s: %v", doc.Href, err)
		return nil, nil
	}

	parsed, err := element.ParseDocument(raw)
	if err != nil {
		log.Printf("warning: skipping unparsable document %s: %v", doc.Href, err)
		return nil, nil
	}

	els, err := element.Extract(parsed, doc.Href)
	if err != nil {
		return nil, err
	}

	name := element.HeadingLabel(parsed)
	kind := n.classifier.Classify(classify.Facts{
		Label:        name,
		TextElements: countTextElements(els),
	})
	if kind != classify.Chapter {
		return nil, nil
	}

	if name == "" {
		name = navLabels[doc.Href]
	}
	if name == "" {
		log.Printf("warning: skipping unnamed chapter document %s", doc.Href)
		return nil, nil
	}
	if len(els) == 0 {
		log.Printf("warning: skipping empty chapter document %s", doc.Href)
		return nil, nil
	}

	return &Chapter{
		Name:     name,
		Elements: els,
		Chunks:   chunk.Boundaries(els, n.opts.Limits),
	}, nil
}

// countTextElements counts the elements carrying text, the signal the
// element-count classification fallback runs on.
func countTextElements(els []element.Element) int {
	count := 0
	for _, el := range els {
		if el.TextLength() > 0 {
			count++
		}
	}
	return count
}
