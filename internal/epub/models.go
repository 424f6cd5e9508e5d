package epub

// OPF is the parsed package document: metadata, manifest and reading order.
type OPF struct {
	Metadata Metadata
	Manifest map[string]ManifestItem // id -> item
	Spine    []SpineItem
	NCXPath  string
}

// Metadata holds the package-level Dublin Core fields the pipeline consumes.
type Metadata struct {
	Title       string
	Creators    []string
	Language    string
	Identifiers []string // all dc:identifier values, unique-identifier first
}

// ManifestItem is one entry of the package manifest.
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties []string
}

// SpineItem is one itemref of the spine, in declared reading order.
type SpineItem struct {
	IDRef  string
	Linear bool
}

// Document is one spine-ordered content document resolved through the
// manifest.
type Document struct {
	ID   string
	Href string
}

// contentMediaTypes are the manifest media types treated as content documents.
var contentMediaTypes = map[string]bool{
	"application/xhtml+xml": true,
	"text/html":             true,
}

// ContentDocuments resolves the spine against the manifest and returns the
// ordered content documents. Spine entries missing from the manifest or with
// a non-content media type are skipped.
func (opf *OPF) ContentDocuments() []Document {
	var docs []Document
	for _, ref := range opf.Spine {
		item, ok := opf.Manifest[ref.IDRef]
		if !ok {
			continue
		}
		if !contentMediaTypes[item.MediaType] {
			continue
		}
		docs = append(docs, Document{ID: item.ID, Href: item.Href})
	}
	return docs
}
