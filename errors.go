package natrix

import "fmt"

// RuntimeError is the error carried by the panic a fatal evaluator,
// object-system, GC, or allocator failure raises. It is always caught
// at the pipeline boundary (see cmd/natrix) and never exposed to the
// guest language, which has no exception handling of its own.
type RuntimeError struct {
	Message string
	Span    Span
}

func (e RuntimeError) Error() string {
	if e.Span == (Span{}) {
		return e.Message
	}
	return fmt.Sprintf("%s @ %s", e.Message, e.Span)
}

// fatal panics with a RuntimeError built from the given format and
// arguments. It has no source span; callers that know where the
// failure happened should use fatalAt instead.
func fatal(format string, args ...any) {
	panic(RuntimeError{Message: fmt.Sprintf(format, args...)})
}

// fatalAt panics with a RuntimeError carrying a source span, used by
// the evaluator where a failing expression's position is known.
func fatalAt(span Span, format string, args ...any) {
	panic(RuntimeError{Message: fmt.Sprintf(format, args...), Span: span})
}
