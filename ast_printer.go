package natrix

import (
	"strconv"
	"strings"

	"github.com/tethal/natrix/ascii"
)

// treePrinter is an indent-tracking string builder: indent/unindent
// push and pop a padding stack, and pwritel pads the current line
// before writing it. Adapted from
// clarete-langlang/go/tree_printer.go's treePrinter[T] — that version
// parameterises over a token type so it can format arbitrary captured
// values; this AST has no such per-token payload to format, so the
// type parameter and FormatFunc plumbing are dropped and padding/
// writing are kept as the reusable part.
type treePrinter struct {
	padStr []string
	output strings.Builder
}

func newTreePrinter() *treePrinter {
	return &treePrinter{}
}

func (tp *treePrinter) indent(s string)   { tp.padStr = append(tp.padStr, s) }
func (tp *treePrinter) unindent()         { tp.padStr = tp.padStr[:len(tp.padStr)-1] }
func (tp *treePrinter) write(s string)    { tp.output.WriteString(s) }
func (tp *treePrinter) writel(s string)   { tp.write(s); tp.output.WriteByte('\n') }
func (tp *treePrinter) pwrite(s string) {
	for _, pad := range tp.padStr {
		tp.write(pad)
	}
	tp.write(s)
}
func (tp *treePrinter) pwritel(s string) { tp.pwrite(s); tp.output.WriteByte('\n') }

var literalSanitizer = strings.NewReplacer(
	`"`, `\"`,
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeLiteral(s string) string {
	return literalSanitizer.Replace(s)
}

// DumpAST renders f as an indented tree, labelling each node with its
// kind, source span, and (for Name and the two literal kinds) its
// source text, for the CLI's -ast flag.
func DumpAST(f *File, source *Source) string {
	tp := newTreePrinter()
	tp.writel(ascii.Paint(ascii.DefaultTheme.Label, "File"))
	tp.indent("  ")
	dumpBlock(tp, source, f.Body)
	tp.unindent()
	return tp.output.String()
}

func label(s string) string { return ascii.Paint(ascii.DefaultTheme.Label, s) }
func span(start, end int) string {
	return ascii.Paint(ascii.DefaultTheme.Span, "["+strconv.Itoa(start)+":"+strconv.Itoa(end)+")")
}

func dumpBlock(tp *treePrinter, source *Source, stmts []Stmt) {
	for _, stmt := range stmts {
		dumpStmt(tp, source, stmt)
	}
}

func dumpStmt(tp *treePrinter, source *Source, stmt Stmt) {
	switch s := stmt.(type) {
	case *ExprStmt:
		tp.pwritel(label("ExprStmt"))
		tp.indent("  ")
		dumpExpr(tp, source, s.X)
		tp.unindent()
	case *Assignment:
		tp.pwritel(label("Assignment"))
		tp.indent("  ")
		dumpExpr(tp, source, s.Target)
		dumpExpr(tp, source, s.Value)
		tp.unindent()
	case *While:
		tp.pwritel(label("While"))
		tp.indent("  ")
		dumpExpr(tp, source, s.Cond)
		dumpBlock(tp, source, s.Body)
		tp.unindent()
	case *If:
		tp.pwritel(label("If"))
		tp.indent("  ")
		dumpExpr(tp, source, s.Cond)
		tp.pwritel("then:")
		tp.indent("  ")
		dumpBlock(tp, source, s.Then)
		tp.unindent()
		tp.pwritel("else:")
		tp.indent("  ")
		dumpBlock(tp, source, s.Else)
		tp.unindent()
		tp.unindent()
	case *Pass:
		tp.pwritel(label("Pass"))
	case *Print:
		tp.pwritel(label("Print"))
		tp.indent("  ")
		dumpExpr(tp, source, s.X)
		tp.unindent()
	}
}

func dumpExpr(tp *treePrinter, source *Source, expr Expr) {
	start, end := expr.Span()
	switch x := expr.(type) {
	case *IntLiteral:
		text := string(source.Text[start:end])
		tp.pwritel(label("IntLiteral") + " " + text + " " + span(start, end))
	case *StrLiteral:
		text := escapeLiteral(string(source.Text[start+1 : end-1])) // strip surrounding quotes
		tp.pwritel(label("StrLiteral") + ` "` + text + `" ` + span(start, end))
	case *Name:
		text := string(source.Text[start:end])
		tp.pwritel(label("Name") + " " + text + " " + span(start, end))
	case *Binary:
		tp.pwritel(label("Binary") + " " + binaryOpName(x.Op) + " " + span(start, end))
		tp.indent("  ")
		dumpExpr(tp, source, x.Left)
		dumpExpr(tp, source, x.Right)
		tp.unindent()
	case *Subscript:
		tp.pwritel(label("Subscript") + " " + span(start, end))
		tp.indent("  ")
		dumpExpr(tp, source, x.Receiver)
		dumpExpr(tp, source, x.Index)
		tp.unindent()
	case *ListLiteral:
		tp.pwritel(label("ListLiteral") + " " + span(start, end))
		tp.indent("  ")
		for _, elem := range x.Elements {
			dumpExpr(tp, source, elem)
		}
		tp.unindent()
	}
}

func binaryOpName(op BinaryOp) string {
	names := map[BinaryOp]string{
		OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
		OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	}
	return names[op]
}
