package natrix

// Parser is a recursive-descent, one-token-lookahead parser producing
// an arena-allocated AST. Grounded function-by-function on
// original_source/src/parser/parser.c; Stmt sequences are built as Go
// slices rather than the original's singly linked `next` field (see
// ast.go), and a failed parse is reported by returning (nil, false)
// up the call stack instead of a NULL Stmt/Expr pointer.
type Parser struct {
	arena   *Arena
	source  *Source
	diag    DiagnosticHandler
	lexer   *Lexer
	current Token
}

// ParseFile parses source into a File, reporting any error through
// diag. ok is false if any statement failed to parse; no error
// recovery is attempted, matching parse_file's all-or-nothing
// contract.
func ParseFile(arena *Arena, source *Source, diag DiagnosticHandler, cfg Config) (*File, bool) {
	p := &Parser{
		arena:  arena,
		source: source,
		diag:   diag,
		lexer:  NewLexer(source, cfg),
	}
	p.current = p.lexer.NextToken()

	stmts, ok := p.statements(TokenEOF)
	if !ok {
		return nil, false
	}
	return &File{Body: stmts}, true
}

func (p *Parser) errorf(format string, args ...any) {
	message := format
	if p.current.Kind == TokenError {
		message = p.lexer.ErrorMessage()
		args = nil
	}
	if args != nil {
		p.diag(DiagError, p.source, p.current.Start, p.current.End, message, args...)
	} else {
		p.diag(DiagError, p.source, p.current.Start, p.current.End, message)
	}
}

func (p *Parser) consume() Token {
	result := p.current
	p.current = p.lexer.NextToken()
	return result
}

func (p *Parser) match(kind TokenKind, message string) bool {
	if p.current.Kind != kind {
		p.errorf(message)
		return false
	}
	p.consume()
	return true
}

func (p *Parser) errorAt(start, end int, format string, args ...any) {
	p.diag(DiagError, p.source, start, end, format, args...)
}

// expressionList parses `expr (COMMA expr)* COMMA?` up to sentinel.
func (p *Parser) expressionList(sentinel TokenKind) ([]Expr, bool) {
	var result []Expr
	for {
		expr, ok := p.expression()
		if !ok {
			return nil, false
		}
		result = append(result, expr)
		if p.current.Kind != TokenComma {
			return result, true
		}
		p.consume()
		if p.current.Kind == sentinel {
			return result, true
		}
	}
}

func (p *Parser) primary() (Expr, bool) {
	switch p.current.Kind {
	case TokenIntLiteral:
		t := p.consume()
		return newIntLiteral(p.arena, t.Start, t.End), true
	case TokenStringLiteral:
		t := p.consume()
		return newStrLiteral(p.arena, t.Start, t.End), true
	case TokenIdentifier:
		t := p.consume()
		return newName(p.arena, t.Start, t.End), true
	case TokenLParen:
		p.consume()
		expr, ok := p.expression()
		if !ok {
			return nil, false
		}
		if !p.match(TokenRParen, "expected closing parenthesis") {
			return nil, false
		}
		return expr, true
	case TokenLBracket:
		start := p.consume().Start
		var elements []Expr
		var end int
		if p.current.Kind == TokenRBracket {
			end = p.consume().End
		} else {
			var ok bool
			elements, ok = p.expressionList(TokenRBracket)
			end = p.current.End
			if !ok || !p.match(TokenRBracket, "expected closing bracket") {
				return nil, false
			}
		}
		return newListLiteral(p.arena, start, end, elements), true
	default:
		p.errorf("expected expression")
		return nil, false
	}
}

func (p *Parser) postfixExpr() (Expr, bool) {
	expr, ok := p.primary()
	if !ok {
		return nil, false
	}
	for p.current.Kind == TokenLBracket {
		p.consume()
		index, ok := p.expression()
		end := p.current.End
		if !ok || !p.match(TokenRBracket, "expected closing bracket") {
			return nil, false
		}
		expr = newSubscript(p.arena, expr, index, end)
	}
	return expr, true
}

func (p *Parser) mulExpr() (Expr, bool) {
	result, ok := p.postfixExpr()
	if !ok {
		return nil, false
	}
	for p.current.Kind == TokenStar || p.current.Kind == TokenSlash {
		op := OpMul
		if p.current.Kind == TokenSlash {
			op = OpDiv
		}
		p.consume()
		right, ok := p.postfixExpr()
		if !ok {
			return nil, false
		}
		result = newBinary(p.arena, result, op, right)
	}
	return result, true
}

func (p *Parser) addExpr() (Expr, bool) {
	result, ok := p.mulExpr()
	if !ok {
		return nil, false
	}
	for p.current.Kind == TokenPlus || p.current.Kind == TokenMinus {
		op := OpAdd
		if p.current.Kind == TokenMinus {
			op = OpSub
		}
		p.consume()
		right, ok := p.mulExpr()
		if !ok {
			return nil, false
		}
		result = newBinary(p.arena, result, op, right)
	}
	return result, true
}

var relOps = map[TokenKind]BinaryOp{
	TokenEq: OpEq, TokenNe: OpNe,
	TokenLt: OpLt, TokenLe: OpLe,
	TokenGt: OpGt, TokenGe: OpGe,
}

// relExpr implements `add ((EQ|NE|LT|LE|GT|GE) add)?`: non-associative,
// at most one comparison per expression.
func (p *Parser) relExpr() (Expr, bool) {
	result, ok := p.addExpr()
	if !ok {
		return nil, false
	}
	op, isRel := relOps[p.current.Kind]
	if !isRel {
		return result, true
	}
	p.consume()
	right, ok := p.addExpr()
	if !ok {
		return nil, false
	}
	return newBinary(p.arena, result, op, right), true
}

func (p *Parser) expression() (Expr, bool) {
	return p.relExpr()
}

// isAssignable reports whether expr may appear on the left of `=`.
func isAssignable(expr Expr) bool {
	switch expr.(type) {
	case *Name, *Subscript:
		return true
	default:
		return false
	}
}

func (p *Parser) simpleStatement() (Stmt, bool) {
	switch p.current.Kind {
	case TokenKwPrint:
		p.consume()
		if !p.match(TokenLParen, "expected '('") {
			return nil, false
		}
		expr, ok := p.expression()
		if !ok {
			return nil, false
		}
		if !p.match(TokenRParen, "expected ')'") {
			return nil, false
		}
		return newPrint(p.arena, expr), true
	case TokenKwPass:
		p.consume()
		return newPass(p.arena), true
	}

	expr, ok := p.expression()
	if !ok {
		return nil, false
	}
	if p.current.Kind != TokenEquals {
		return newExprStmt(p.arena, expr), true
	}
	if !isAssignable(expr) {
		start, end := expr.Span()
		p.errorAt(start, end, "cannot assign to expression here")
		return nil, false
	}
	p.consume()
	right, ok := p.expression()
	if !ok {
		return nil, false
	}
	return newAssignment(p.arena, expr, right), true
}

func (p *Parser) elseBlock() ([]Stmt, bool) {
	p.consume() // KW_ELSE
	if !p.match(TokenColon, "expected ':'") {
		return nil, false
	}
	return p.block()
}

// elifBlock parses `(KW_IF|KW_ELIF) expr COLON block (elif_block |
// else_block)?`, used for both `if` and `elif` — they differ only in
// keyword, matching parser.c's elif_block.
func (p *Parser) elifBlock() (Stmt, bool) {
	p.consume() // KW_IF or KW_ELIF
	cond, ok := p.expression()
	if !ok || !p.match(TokenColon, "expected ':'") {
		return nil, false
	}
	thenBody, ok := p.block()
	if !ok {
		return nil, false
	}
	var elseBody []Stmt
	switch p.current.Kind {
	case TokenKwElse:
		elseBody, ok = p.elseBlock()
	case TokenKwElif:
		var elif Stmt
		elif, ok = p.elifBlock()
		if ok {
			elseBody = []Stmt{elif}
		}
	default:
		elseBody = []Stmt{newPass(p.arena)}
	}
	if !ok {
		return nil, false
	}
	return newIf(p.arena, cond, thenBody, elseBody), true
}

func (p *Parser) statement() (Stmt, bool) {
	switch p.current.Kind {
	case TokenKwWhile:
		p.consume()
		cond, ok := p.expression()
		if !ok || !p.match(TokenColon, "expected ':'") {
			return nil, false
		}
		body, ok := p.block()
		if !ok {
			return nil, false
		}
		return newWhile(p.arena, cond, body), true
	case TokenKwIf:
		return p.elifBlock()
	default:
		stmt, ok := p.simpleStatement()
		if !ok {
			return nil, false
		}
		if !p.match(TokenNewline, "expected end of line") {
			return nil, false
		}
		return stmt, true
	}
}

// statements parses `statement+` up to (not including) sentinel.
func (p *Parser) statements(sentinel TokenKind) ([]Stmt, bool) {
	var result []Stmt
	for {
		stmt, ok := p.statement()
		if !ok {
			return nil, false
		}
		result = append(result, stmt)
		if p.current.Kind == sentinel {
			return result, true
		}
	}
}

// block parses `NEWLINE INDENT statements DEDENT`.
func (p *Parser) block() ([]Stmt, bool) {
	if !p.match(TokenNewline, "newline expected") {
		return nil, false
	}
	if !p.match(TokenIndent, "indent expected") {
		return nil, false
	}
	result, ok := p.statements(TokenDedent)
	if !ok {
		return nil, false
	}
	p.consume() // TOKEN_DEDENT
	return result, true
}
