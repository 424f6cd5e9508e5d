// Package chunk partitions a chapter's element sequence into bounded-size
// chunks. A chunk is recorded as the index of its first element; the chunk
// runs to the next boundary (the last one to the end of the sequence).
package chunk

import (
	"github.com/bookforge/simplebook/internal/element"
)

// Limits are the size thresholds applied while accumulating a chunk.
// All counts are characters of normalized text.
type Limits struct {
	// MaxChunkChars is the total size cap of an open chunk.
	MaxChunkChars int
	// MaxAdditionChars caps a single element joining a non-empty chunk.
	MaxAdditionChars int
	// LargeElementChars marks an element that always stands alone at a
	// boundary regardless of the open chunk's size.
	LargeElementChars int
}

// DefaultLimits returns the stock thresholds (~1200 character window).
func DefaultLimits() Limits {
	return Limits{
		MaxChunkChars:     1200,
		MaxAdditionChars:  900,
		LargeElementChars: 2000,
	}
}

// orDefaults fills zero-valued fields from DefaultLimits.
func (l Limits) orDefaults() Limits {
	def := DefaultLimits()
	if l.MaxChunkChars == 0 {
		l.MaxChunkChars = def.MaxChunkChars
	}
	if l.MaxAdditionChars == 0 {
		l.MaxAdditionChars = def.MaxAdditionChars
	}
	if l.LargeElementChars == 0 {
		l.LargeElementChars = def.LargeElementChars
	}
	return l
}

// Boundaries computes the chunk-start indices for an element sequence:
//
//   - tables and blockquotes are chunks of exactly one element;
//   - a heading starts a chunk that following elements may join;
//   - other elements accumulate until a size limit closes the chunk;
//   - an element is never split, even when it alone exceeds every limit.
//
// The result is strictly increasing, begins with 0 for non-empty input, and
// is a pure function of the input and limits.
func Boundaries(els []element.Element, lim Limits) []int {
	if len(els) == 0 {
		return nil
	}
	lim = lim.orDefaults()

	var starts []int
	current := 0  // character count of the open chunk
	solo := false // previous element closed its chunk (table/blockquote)

	for i, el := range els {
		size := el.TextLength()

		switch el.Type {
		case element.Table, element.Blockquote:
			starts = append(starts, i)
			current = 0
			solo = true
			continue
		case element.Heading:
			starts = append(starts, i)
			current = size
			solo = false
			continue
		}

		if len(starts) == 0 || solo {
			starts = append(starts, i)
			current = 0
			solo = false
		} else if current > 0 &&
			(size >= lim.LargeElementChars ||
				current+size > lim.MaxChunkChars ||
				size > lim.MaxAdditionChars) {
			starts = append(starts, i)
			current = 0
		}
		current += size
	}

	return starts
}
