package natrix

import (
	"os"
	"strconv"
)

// Evaluator walks a parsed File against an Env, allocating heap values
// through a GC. Grounded on spec.md §4.6; original_source has no
// evaluator to port from (it only implements the front end), so this
// is built directly from the rooting protocol in §4.2 and the
// statement/expression semantics spelled out in §4.6.
type Evaluator struct {
	gc     *GC
	source *Source
	env    *Env
	out    *os.File
}

// NewEvaluator creates an evaluator over gc and source, printing to
// out. It wires gc.ExtraRoots so the live environment survives any
// collection triggered mid-evaluation (see gc.go's ExtraRoots doc).
func NewEvaluator(gc *GC, source *Source, out *os.File) *Evaluator {
	e := &Evaluator{gc: gc, source: source, out: out}
	gc.ExtraRoots = func(gc *GC) { e.env.Trace(gc) }
	return e
}

// Bind sets name to value in the evaluator's top-level environment,
// used by the CLI to bind the `arg` variable before running a File.
func (e *Evaluator) Bind(name string, value Object) {
	e.env = e.env.Bind(name, value)
}

// Run executes every statement in f.Body in order.
func (e *Evaluator) Run(f *File) {
	for _, stmt := range f.Body {
		e.execStmt(stmt)
	}
}

func (e *Evaluator) span(expr Expr) Span {
	start, end := expr.Span()
	return e.source.SpanOf(start, end)
}

func (e *Evaluator) fatalAt(expr Expr, format string, args ...any) {
	fatalAt(e.span(expr), format, args...)
}

func (e *Evaluator) execStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *ExprStmt:
		e.eval(s.X)
	case *Assignment:
		e.execAssignment(s)
	case *While:
		for AsBool(e.eval(s.Cond)) {
			for _, body := range s.Body {
				e.execStmt(body)
			}
		}
	case *If:
		if AsBool(e.eval(s.Cond)) {
			for _, body := range s.Then {
				e.execStmt(body)
			}
		} else {
			for _, body := range s.Else {
				e.execStmt(body)
			}
		}
	case *Pass:
		// no-op
	case *Print:
		e.execPrint(s)
	default:
		panic("natrix: unhandled statement node")
	}
}

// execAssignment binds Value to Target. For a Subscript target the
// receiver and index are evaluated once each; evaluating the RHS
// happens exactly once, fixing the double-evaluation bug §9 flags in
// one original_source snapshot.
func (e *Evaluator) execAssignment(s *Assignment) {
	switch target := s.Target.(type) {
	case *Name:
		value := e.eval(s.Value)
		e.gc.Root(value)
		e.env = e.env.Bind(target.Text(e.source), value)
		e.gc.Unroot(value)
	case *Subscript:
		receiver := e.eval(target.Receiver)
		e.gc.Root(receiver)
		index := e.eval(target.Index)
		e.gc.Root(index)
		value := e.eval(s.Value)
		SetElement(e.gc, receiver, index, value)
		e.gc.Unroot(index)
		e.gc.Unroot(receiver)
	default:
		panic("natrix: invalid assignment target reached evaluator")
	}
}

func (e *Evaluator) execPrint(s *Print) {
	value := e.eval(s.X)
	switch v := value.(type) {
	case *Int:
		_, _ = e.out.WriteString(strconv.FormatInt(v.Value, 10) + "\n")
	case *Str:
		_, _ = e.out.WriteString(v.Value + "\n")
	default:
		e.fatalAt(s.X, "cannot print '%s'", value.Type().Name)
	}
}

// Text returns the identifier's source slice, used as the environment
// key. Defined here (not as a Name method) since it needs the
// evaluator's Source.
func (n *Name) Text(source *Source) string {
	start, end := n.Span()
	return string(source.Text[start:end])
}

func (e *Evaluator) eval(expr Expr) Object {
	switch x := expr.(type) {
	case *IntLiteral:
		return e.evalIntLiteral(x)
	case *StrLiteral:
		return e.evalStrLiteral(x)
	case *Name:
		value, ok := e.env.Lookup(x.Text(e.source))
		if !ok {
			e.fatalAt(x, "undefined variable: %s", x.Text(e.source))
		}
		return value
	case *Binary:
		return e.evalBinary(x)
	case *Subscript:
		return e.evalSubscript(x)
	case *ListLiteral:
		return e.evalListLiteral(x)
	default:
		panic("natrix: unhandled expression node")
	}
}

func (e *Evaluator) evalIntLiteral(x *IntLiteral) Object {
	start, end := x.Span()
	text := string(e.source.Text[start:end])
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		e.fatalAt(x, "integer literal too large")
	}
	return NewInt(e.gc, value)
}

func (e *Evaluator) evalStrLiteral(x *StrLiteral) Object {
	start, end := x.Span()
	text := e.source.Text[start+1 : end-1] // strip surrounding quotes
	return NewStr(e.gc, string(text))
}

// evalListLiteral walks the element list once to size the backing
// array, roots the (empty) list, then evaluates and appends each
// element in turn — rooting the freshly evaluated element across the
// append itself, per spec.md §4.6.
func (e *Evaluator) evalListLiteral(x *ListLiteral) Object {
	capacity := len(x.Elements)
	if capacity == 0 {
		capacity = 1
	}
	list := NewList(e.gc, capacity)
	e.gc.Root(list)
	for _, elemExpr := range x.Elements {
		elem := e.eval(elemExpr)
		e.gc.Root(elem)
		AppendList(list, elem)
		e.gc.Unroot(elem)
	}
	e.gc.Unroot(list)
	return list
}

// evalBinary evaluates left then right, rooting left across the
// evaluation of right and the dispatch call that follows (per §4.2's
// rooting protocol: left stays rooted until a value derived from it is
// safely reachable some other way), then dispatches by operand types.
func (e *Evaluator) evalBinary(x *Binary) Object {
	left := e.eval(x.Left)
	e.gc.Root(left)
	right := e.eval(x.Right)

	li, lInt := left.(*Int)
	ri, rInt := right.(*Int)
	if lInt && rInt {
		result := e.evalIntBinary(x, li.Value, ri.Value)
		e.gc.Unroot(left)
		return result
	}

	if x.Op == OpAdd {
		if ls, lStr := left.(*Str); lStr {
			if rs, rStr := right.(*Str); rStr {
				result := ConcatStr(e.gc, ls, rs)
				e.gc.Unroot(left)
				return result
			}
		}
	}
	e.gc.Unroot(left)
	e.fatalAt(x, "operands must be integers")
	panic("unreachable")
}

// evalIntBinary implements every operator over two ints. Comparisons
// produce int 0/1 rather than bool, per §9's resolution of the
// bool-vs-int-truthiness open question.
func (e *Evaluator) evalIntBinary(x *Binary, l, r int64) Object {
	switch x.Op {
	case OpAdd:
		return NewInt(e.gc, l+r)
	case OpSub:
		return NewInt(e.gc, l-r)
	case OpMul:
		return NewInt(e.gc, l*r)
	case OpDiv:
		if r == 0 {
			e.fatalAt(x, "division by zero")
		}
		return NewInt(e.gc, l/r)
	case OpEq:
		return NewInt(e.gc, boolToInt(l == r))
	case OpNe:
		return NewInt(e.gc, boolToInt(l != r))
	case OpLt:
		return NewInt(e.gc, boolToInt(l < r))
	case OpLe:
		return NewInt(e.gc, boolToInt(l <= r))
	case OpGt:
		return NewInt(e.gc, boolToInt(l > r))
	case OpGe:
		return NewInt(e.gc, boolToInt(l >= r))
	default:
		panic("natrix: unhandled binary op")
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// evalSubscript evaluates receiver, roots it across the evaluation of
// index and the GetElement dispatch that follows, checks the index,
// and returns the element.
func (e *Evaluator) evalSubscript(x *Subscript) Object {
	receiver := e.eval(x.Receiver)
	e.gc.Root(receiver)
	index := e.eval(x.Index)
	result := GetElement(e.gc, receiver, index)
	e.gc.Unroot(receiver)
	return result
}
