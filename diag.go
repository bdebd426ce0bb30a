package natrix

import (
	"fmt"
	"io"

	"github.com/tethal/natrix/ascii"
)

// DiagKind distinguishes a hard error from a warning. The lexer and
// parser only ever emit DiagError today; DiagWarning exists so a
// handler written against this type doesn't need to change if a
// future pass starts emitting warnings.
type DiagKind int

const (
	DiagError DiagKind = iota
	DiagWarning
)

func (k DiagKind) String() string {
	if k == DiagWarning {
		return "warning"
	}
	return "error"
}

// DiagnosticHandler receives one diagnostic at a time. start and end
// are byte offsets into source.Text. A Go closure plays the role the
// opaque `void *data` parameter plays in the C interface this was
// distilled from: whatever state a handler needs, it captures.
type DiagnosticHandler func(kind DiagKind, source *Source, start, end int, format string, args ...any)

// NewWriterDiagnosticHandler returns the default diagnostic formatter:
// `filename:line:col: kind: message`, followed by the offending source
// line and a caret-underline, colourised with theme.
//
// Grounded on original_source/src/parser/diag.c for the layout
// algorithm; theme plumbing mirrors
// clarete-langlang/go/tree_printer.go's use of an ANSI theme map.
func NewWriterDiagnosticHandler(w io.Writer, theme ascii.Theme) DiagnosticHandler {
	return func(kind DiagKind, source *Source, start, end int, format string, args ...any) {
		loc := source.LocationAt(start)
		message := fmt.Sprintf(format, args...)
		levelColor := theme.Error
		if kind == DiagWarning {
			levelColor = theme.Warning
		}
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			source.Filename, loc.Line, loc.Column, ascii.Paint(levelColor, kind.String()), message)

		line := source.lineText(loc.Line)
		if len(line) == 0 {
			return
		}
		fmt.Fprintf(w, "%s\n", line)

		length := end - start
		lineEnd := start - loc.Column + 1 + len(line)
		if length <= 0 || start+length > lineEnd {
			length = 1
		}
		for i := 1; i < loc.Column; i++ {
			fmt.Fprint(w, " ")
		}
		for i := 0; i < length; i++ {
			fmt.Fprint(w, ascii.Paint(theme.Accent, "^"))
		}
		fmt.Fprintln(w)
	}
}

// Diagnostic is a single recorded call into a DiagnosticHandler,
// captured by RecordingHandler for assertions in tests. Grounded on
// clarete-langlang/go/query_errors_test.go's pattern of collecting
// diagnostics into a slice rather than matching stderr output.
type Diagnostic struct {
	Kind    DiagKind
	Start   int
	End     int
	Message string
}

// RecordingHandler returns a DiagnosticHandler that appends every
// diagnostic it receives to *out, for use in tests.
func RecordingHandler(out *[]Diagnostic) DiagnosticHandler {
	return func(kind DiagKind, source *Source, start, end int, format string, args ...any) {
		*out = append(*out, Diagnostic{
			Kind:    kind,
			Start:   start,
			End:     end,
			Message: fmt.Sprintf(format, args...),
		})
	}
}
