package natrix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpASTIncludesEveryTopLevelStatement(t *testing.T) {
	src := SourceFromString("<test>", "print(1 + 2)\nwhile a:\n  pass\n")
	arena := NewArena(DefaultConfig())
	var diags []Diagnostic
	file, ok := ParseFile(arena, src, RecordingHandler(&diags), DefaultConfig())
	require.True(t, ok, "parse failed: %v", diags)

	out := DumpAST(file, src)
	assert.Contains(t, out, "File")
	assert.Contains(t, out, "Print")
	assert.Contains(t, out, "Binary")
	assert.Contains(t, out, "While")
	assert.Contains(t, out, "Pass")
	assert.Greater(t, strings.Count(out, "\n"), 3)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestDumpASTEscapesStrLiteralText(t *testing.T) {
	// The lexer has no escape processing (lexer.go scans a string
	// literal up to the next literal '"'), so a source backslash
	// passes straight through to the AST's literal text; the printer
	// must still escape it so the dump stays on one line.
	src := SourceFromString("<test>", "print(\"a\\b\")\n")
	arena := NewArena(DefaultConfig())
	var diags []Diagnostic
	file, ok := ParseFile(arena, src, RecordingHandler(&diags), DefaultConfig())
	require.True(t, ok, "parse failed: %v", diags)

	out := DumpAST(file, src)
	assert.Contains(t, out, "StrLiteral")
	assert.Contains(t, out, `a\\b`)
}
