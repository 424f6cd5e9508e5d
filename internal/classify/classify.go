// Package classify assigns each spine content document a kind: front matter,
// chapter, back matter, or other. Classification is an ordered rule list so
// the precedence (keyword match before chapter-pattern match) is auditable.
package classify

import (
	"strings"
)

// Kind is the classification outcome for one content document.
type Kind int

const (
	Other Kind = iota
	Front
	Chapter
	Back
)

func (k Kind) String() string {
	switch k {
	case Front:
		return "front"
	case Chapter:
		return "chapter"
	case Back:
		return "back"
	default:
		return "other"
	}
}

// Facts are the observations about one document that classification runs on:
// its derived heading label and how many text-bearing elements it contains.
type Facts struct {
	Label        string
	TextElements int
}

// Config holds the keyword sets and thresholds driving classification.
// All matching is case-insensitive substring matching against the label.
type Config struct {
	FrontKeywords []string
	BackKeywords  []string
	TOCKeywords   []string
	// ChapterPatterns are literal prefixes of chapter-like labels.
	ChapterPatterns []string
	// MinChapterElements is the element-count fallback: a document with at
	// least this many text-bearing elements is treated as a chapter even
	// without a chapter-like label.
	MinChapterElements int
}

// DefaultConfig returns the stock keyword sets and thresholds.
func DefaultConfig() Config {
	return Config{
		FrontKeywords: []string{
			"titlepage", "title page", "cover", "copyright", "dedication",
			"epigraph", "preface", "foreword", "introduction", "prologue",
			"illustrations", "frontispiece", "imprint", "half-title",
		},
		BackKeywords: []string{
			"acknowledgment", "acknowledgement", "notes", "endnote",
			"footnote", "epilogue", "afterword", "appendix", "glossary",
			"bibliography", "colophon", "about the author", "also by",
			"index",
		},
		TOCKeywords:        []string{"toc", "contents"},
		ChapterPatterns:    []string{"chapter", "ch.", "book", "part"},
		MinChapterElements: 10,
	}
}

// rule is one (predicate, outcome) pair. Rules are evaluated in order and the
// first match wins.
type rule struct {
	name    string
	outcome Kind
	match   func(Facts) bool
}

// Classifier evaluates the rule list for a fixed Config.
type Classifier struct {
	cfg   Config
	rules []rule
}

// New builds a Classifier from cfg. Zero-valued fields fall back to the
// defaults.
func New(cfg Config) *Classifier {
	def := DefaultConfig()
	if cfg.FrontKeywords == nil {
		cfg.FrontKeywords = def.FrontKeywords
	}
	if cfg.BackKeywords == nil {
		cfg.BackKeywords = def.BackKeywords
	}
	if cfg.TOCKeywords == nil {
		cfg.TOCKeywords = def.TOCKeywords
	}
	if cfg.ChapterPatterns == nil {
		cfg.ChapterPatterns = def.ChapterPatterns
	}
	if cfg.MinChapterElements == 0 {
		cfg.MinChapterElements = def.MinChapterElements
	}

	c := &Classifier{cfg: cfg}
	c.rules = []rule{
		{"front-keyword", Front, func(f Facts) bool {
			return containsAny(label(f), cfg.FrontKeywords)
		}},
		{"back-keyword", Back, func(f Facts) bool {
			return containsAny(label(f), cfg.BackKeywords)
		}},
		{"toc-keyword", Front, func(f Facts) bool {
			return containsAny(label(f), cfg.TOCKeywords)
		}},
		{"chapter-pattern", Chapter, func(f Facts) bool {
			return c.labelLooksChapter(label(f))
		}},
		{"element-count", Chapter, func(f Facts) bool {
			return f.TextElements >= cfg.MinChapterElements
		}},
	}
	return c
}

// Classify returns the kind of a document. Documents matching no rule are
// Other and excluded from chapter output.
func (c *Classifier) Classify(f Facts) Kind {
	for _, r := range c.rules {
		if r.match(f) {
			return r.outcome
		}
	}
	return Other
}

// romanNumerals holds the numeral tokens recognized in chapter labels
// (1 through 40). An explicit set avoids matching ordinary words that happen
// to be spelled in numeral letters ("mix", "did").
var romanNumerals = map[string]bool{}

func init() {
	for _, tok := range []string{
		"i", "ii", "iii", "iv", "v", "vi", "vii", "viii", "ix", "x",
		"xi", "xii", "xiii", "xiv", "xv", "xvi", "xvii", "xviii", "xix", "xx",
		"xxi", "xxii", "xxiii", "xxiv", "xxv", "xxvi", "xxvii", "xxviii", "xxix", "xxx",
		"xxxi", "xxxii", "xxxiii", "xxxiv", "xxxv", "xxxvi", "xxxvii", "xxxviii", "xxxix", "xl",
	} {
		romanNumerals[tok] = true
	}
}

// labelLooksChapter reports whether a label matches the chapter pattern:
// a chapter/part keyword, a roman-numeral token, or any digit.
func (c *Classifier) labelLooksChapter(lowered string) bool {
	if lowered == "" {
		return false
	}
	if containsAny(lowered, c.cfg.ChapterPatterns) {
		return true
	}
	cleaned := strings.NewReplacer(".", " ", "-", " ").Replace(lowered)
	for _, tok := range strings.Fields(cleaned) {
		if romanNumerals[tok] {
			return true
		}
	}
	return strings.ContainsAny(lowered, "0123456789")
}

func label(f Facts) string {
	return strings.ToLower(strings.TrimSpace(f.Label))
}

func containsAny(s string, keys []string) bool {
	if s == "" {
		return false
	}
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
