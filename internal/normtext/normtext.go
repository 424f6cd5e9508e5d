// Package normtext provides the pure text transforms applied to every piece
// of text captured from an ebook: whitespace collapsing, double-quote
// canonicalization and ASCII transliteration.
//
// All transforms are deterministic and idempotent: Clean(Clean(s)) == Clean(s).
package normtext

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// OpenQuote and CloseQuote are the canonical dialogue delimiters that replace
// typographic double-quote glyphs. They are plain ASCII, so transliteration
// never touches them.
const (
	OpenQuote  = "<<"
	CloseQuote = ">>"
)

// doubleQuotes is the set of glyphs treated as double quotation marks.
var doubleQuotes = map[rune]bool{
	'"':      true,
	'“': true, // left double quotation mark
	'”': true, // right double quotation mark
	'„': true, // double low-9 quotation mark
}

// asciiReplacer maps punctuation that NFKD does not decompose to ASCII
// equivalents.
var asciiReplacer = strings.NewReplacer(
	"—", "--", // em dash
	"―", "--", // horizontal bar
	"–", "-", // en dash
	"…", "...", // horizontal ellipsis
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"‚", "'", // single low-9 quotation mark
	" ", " ", // no-break space
)

// decomposer strips diacritics: compatibility-decompose, then drop the
// combining marks.
var decomposer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Clean normalizes raw text to its canonical form: quotes are canonicalized,
// non-ASCII characters are transliterated where an equivalent exists, and
// whitespace runs collapse to single spaces. Characters with no ASCII
// equivalent pass through unchanged rather than failing.
func Clean(raw string) string {
	text := NormalizeQuotes(raw)
	text = ToASCII(text)
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeQuotes replaces double-quote glyphs with the OpenQuote/CloseQuote
// markers, alternating between open and close across the string. The input
// glyphs carry no pairing information of their own (plain '"' is symmetric),
// so alternation is the only deterministic pairing.
func NormalizeQuotes(text string) string {
	if text == "" {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	open := true
	for _, r := range text {
		if doubleQuotes[r] {
			if open {
				b.WriteString(OpenQuote)
			} else {
				b.WriteString(CloseQuote)
			}
			open = !open
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToASCII transliterates text towards ASCII: accented letters lose their
// diacritics, dashes and ellipses become their ASCII spellings. Runes that
// survive both steps as non-ASCII are kept as-is.
func ToASCII(text string) string {
	if text == "" {
		return text
	}
	text = asciiReplacer.Replace(text)
	out, _, err := transform.String(decomposer, text)
	if err != nil {
		return text
	}
	return out
}
