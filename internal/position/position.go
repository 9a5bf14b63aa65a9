package position

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a 1-based line and column. Columns count runes, not bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether p was never set
func (p Position) IsZero() bool {
	return p.Line == 0
}

// Range spans two positions in a source file
type Range struct {
	Start Position
	End   Position
}

// Index converts byte offsets of one source into positions
type Index struct {
	src        string
	lineStarts []int
}

// NewIndex records the line starts of src
func NewIndex(src string) *Index {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{src: src, lineStarts: starts}
}

// Position returns the position of a byte offset. Offsets past the end of
// the source clamp to the end.
func (idx *Index) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(idx.src) {
		offset = len(idx.src)
	}
	line := sort.SearchInts(idx.lineStarts, offset+1) - 1
	start := idx.lineStarts[line]
	return Position{
		Line:   line + 1,
		Column: utf8.RuneCountInString(idx.src[start:offset]) + 1,
	}
}

// Range returns the range covered by the byte span [start, end)
func (idx *Index) Range(start, end int) Range {
	return Range{Start: idx.Position(start), End: idx.Position(end)}
}

// OffsetToPosition is a convenience for a single lookup
func OffsetToPosition(src string, offset int) Position {
	return NewIndex(src).Position(offset)
}
