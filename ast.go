package natrix

// Expr is one of the six expression node kinds named in spec.md §3.
// Every Expr's [Start,End) span identifies its source text; sealing
// the interface (the unexported method) gives the compiler the
// closed-variant guarantee §9's design notes ask for, replacing the
// original's tagged-union discriminant with Go's own type switch.
type Expr interface {
	Span() (start, end int)
	exprNode()
}

type exprBase struct {
	Start, End int
}

func (e exprBase) Span() (int, int) { return e.Start, e.End }
func (exprBase) exprNode()          {}

// IntLiteral is an unparsed digit run; the evaluator parses it lazily
// so a too-large literal fails at evaluation, not at parse time,
// matching spec.md §4.6.
type IntLiteral struct {
	exprBase
}

// StrLiteral's span includes the surrounding quotes, per spec.md §3.
type StrLiteral struct {
	exprBase
}

// Name is a bare identifier reference.
type Name struct {
	exprBase
}

// BinaryOp enumerates the operators Binary can carry.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// Binary is a two-operand operator application. Comparisons are
// non-associative at the grammar level (§4.5), so a Binary carrying a
// comparison op never has another comparison as an operand.
type Binary struct {
	exprBase
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// Subscript is `receiver[index]`; its span runs from the receiver's
// start to the closing bracket.
type Subscript struct {
	exprBase
	Receiver Expr
	Index    Expr
}

// ListLiteral holds its elements as a Go slice rather than the
// original's singly linked `next` chain — arena-allocated nodes don't
// need the chain's O(1)-prepend property here, since the parser builds
// the list in one pass and never mutates it afterward.
type ListLiteral struct {
	exprBase
	Elements []Expr
}

// Stmt is one of the six statement kinds named in spec.md §3.
// Statements form a []Stmt sequence rather than the original's
// singly-linked `next` field, for the same reason ListLiteral uses a
// slice: the parser already builds them in final order.
type Stmt interface {
	stmtNode()
}

type stmtBase struct{}

func (stmtBase) stmtNode() {}

// ExprStmt evaluates an expression and discards the result.
type ExprStmt struct {
	stmtBase
	X Expr
}

// AssignTarget is the subset of Expr valid as an assignment target:
// Name or Subscript. The parser enforces this (spec.md §4.5); Stmt
// dispatch does not need to re-check it once built.
type AssignTarget = Expr

// Assignment binds Value to Target.
type Assignment struct {
	stmtBase
	Target AssignTarget
	Value  Expr
}

// While loops while Cond evaluates truthy.
type While struct {
	stmtBase
	Cond Expr
	Body []Stmt
}

// If's Else branch is never nil: a missing `else` is represented as a
// single-element []Stmt{&Pass{}}, per spec.md §3's invariant.
type If struct {
	stmtBase
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// Pass is a no-op statement.
type Pass struct {
	stmtBase
}

// Print evaluates X and writes its representation followed by a
// newline.
type Print struct {
	stmtBase
	X Expr
}

// File is a parsed program: its top-level statement sequence.
type File struct {
	Body []Stmt
}

// Node constructors. Every Expr/Stmt is allocated through one of
// these, which route the request through the Arena's accounting
// (allocArena) rather than a bare composite literal, so the tree's
// footprint is reflected in Arena.Stats() per spec.md §4.1.

func newIntLiteral(a *Arena, start, end int) *IntLiteral {
	n := allocArena[IntLiteral](a)
	n.exprBase = exprBase{start, end}
	return n
}

func newStrLiteral(a *Arena, start, end int) *StrLiteral {
	n := allocArena[StrLiteral](a)
	n.exprBase = exprBase{start, end}
	return n
}

func newName(a *Arena, start, end int) *Name {
	n := allocArena[Name](a)
	n.exprBase = exprBase{start, end}
	return n
}

func newBinary(a *Arena, left Expr, op BinaryOp, right Expr) *Binary {
	start, _ := left.Span()
	_, end := right.Span()
	n := allocArena[Binary](a)
	n.exprBase = exprBase{start, end}
	n.Left, n.Op, n.Right = left, op, right
	return n
}

func newSubscript(a *Arena, receiver, index Expr, end int) *Subscript {
	start, _ := receiver.Span()
	n := allocArena[Subscript](a)
	n.exprBase = exprBase{start, end}
	n.Receiver, n.Index = receiver, index
	return n
}

func newListLiteral(a *Arena, start, end int, elements []Expr) *ListLiteral {
	n := allocArena[ListLiteral](a)
	n.exprBase = exprBase{start, end}
	n.Elements = elements
	return n
}

func newExprStmt(a *Arena, x Expr) *ExprStmt {
	n := allocArena[ExprStmt](a)
	n.X = x
	return n
}

func newAssignment(a *Arena, target, value Expr) *Assignment {
	n := allocArena[Assignment](a)
	n.Target, n.Value = target, value
	return n
}

func newWhile(a *Arena, cond Expr, body []Stmt) *While {
	n := allocArena[While](a)
	n.Cond, n.Body = cond, body
	return n
}

func newIf(a *Arena, cond Expr, then, els []Stmt) *If {
	n := allocArena[If](a)
	n.Cond, n.Then, n.Else = cond, then, els
	return n
}

func newPass(a *Arena) *Pass { return allocArena[Pass](a) }

func newPrint(a *Arena, x Expr) *Print {
	n := allocArena[Print](a)
	n.X = x
	return n
}
