package natrix

import (
	"os"
	"sort"
	"strconv"
)

// Source is a normalised, byte-oriented source buffer. `\r\n` and lone
// `\r` are rewritten to `\n`, and a trailing `\n` is appended if the
// input doesn't already end with one. Tokens and AST nodes hold
// interior byte offsets into Text and must not outlive the Source that
// produced them.
//
// Grounded on original_source/src/parser/source.c's init_source.
type Source struct {
	Filename string
	Text     []byte

	lineStarts []int // lazily computed, see lineIndex
}

// NewSource normalises raw bytes read from filename into a Source.
func NewSource(filename string, raw []byte) *Source {
	return &Source{Filename: filename, Text: normalize(raw)}
}

// SourceFromFile reads filename and normalises its contents.
func SourceFromFile(filename string) (*Source, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSource(filename, raw), nil
}

// SourceFromString is the in-memory equivalent of SourceFromFile, used
// throughout the test suite.
func SourceFromString(filename, text string) *Source {
	return NewSource(filename, []byte(text))
}

// normalize rewrites line endings to `\n` and ensures the result ends
// with one, matching original_source's init_source byte-for-byte.
func normalize(src []byte) []byte {
	out := make([]byte, 0, len(src)+1)
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\r' {
			c = '\n'
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
		}
		out = append(out, c)
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out
}

// lineStartsTable computes (and caches) the byte offset of the start
// of each line, 0-indexed. Grounded on
// original_source/src/parser/source.c's get_line_starts, generalised
// into a binary-searchable table as in
// clarete-langlang/go/pos.go's LineIndex.
func (s *Source) lineStartsTable() []int {
	if s.lineStarts == nil {
		starts := make([]int, 1, 64)
		starts[0] = 0
		for i, b := range s.Text {
			if b == '\n' && i+1 < len(s.Text) {
				starts = append(starts, i+1)
			}
		}
		s.lineStarts = starts
	}
	return s.lineStarts
}

// Location identifies a single byte cursor by its 1-based line and
// column (column counted in bytes, since the language is ASCII-only).
type Location struct {
	Line   int
	Column int
	Cursor int
}

// LocationAt converts a byte cursor into a Location by binary
// searching the cached line-start table.
func (s *Source) LocationAt(cursor int) Location {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(s.Text) {
		cursor = len(s.Text)
	}
	starts := s.lineStartsTable()
	line := sort.Search(len(starts), func(i int) bool { return starts[i] > cursor }) - 1
	if line < 0 {
		line = 0
	}
	return Location{
		Line:   line + 1,
		Column: cursor - starts[line] + 1,
		Cursor: cursor,
	}
}

// Span is a pair of Locations, used only at the diagnostic boundary —
// the lexer, parser, and evaluator all carry raw [start,end) byte
// offsets per the data model and only convert to a Span when a
// diagnostic must be reported.
type Span struct {
	Start Location
	End   Location
}

// SpanOf builds a Span from a pair of byte offsets into source.
func (s *Source) SpanOf(start, end int) Span {
	return Span{Start: s.LocationAt(start), End: s.LocationAt(end)}
}

func (sp Span) String() string {
	if sp.Start.Line == sp.End.Line {
		if sp.Start.Column == sp.End.Column {
			return strconv.Itoa(sp.Start.Line) + ":" + strconv.Itoa(sp.Start.Column)
		}
		return strconv.Itoa(sp.Start.Line) + ":" + strconv.Itoa(sp.Start.Column) + ".." + strconv.Itoa(sp.End.Column)
	}
	return strconv.Itoa(sp.Start.Line) + ":" + strconv.Itoa(sp.Start.Column) + ".." +
		strconv.Itoa(sp.End.Line) + ":" + strconv.Itoa(sp.End.Column)
}

// lineText returns the line's content, excluding the trailing '\n'.
func (s *Source) lineText(line int) []byte {
	starts := s.lineStartsTable()
	if line < 1 || line > len(starts) {
		return nil
	}
	start := starts[line-1]
	end := len(s.Text)
	if line < len(starts) {
		end = starts[line] - 1
	} else if end > 0 && s.Text[end-1] == '\n' {
		end--
	}
	return s.Text[start:end]
}
