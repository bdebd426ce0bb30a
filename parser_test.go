package natrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) (*File, []Diagnostic) {
	t.Helper()
	src := SourceFromString("<test>", text)
	var diags []Diagnostic
	arena := NewArena(DefaultConfig())
	file, ok := ParseFile(arena, src, RecordingHandler(&diags), DefaultConfig())
	if !ok {
		return nil, diags
	}
	return file, diags
}

func TestParserAcceptsEndToEndPrograms(t *testing.T) {
	for _, text := range []string{
		"print(1 + 2 * 3)\n",
		"a = 10\nwhile a > 0:\n  print(a)\n  a = a - 3\n",
		"if arg == 0:\n  print(\"zero\")\nelif arg == 1:\n  print(\"one\")\nelse:\n  print(\"many\")\n",
		"xs = [10, 20, 30]\nxs[1] = 99\nprint(xs[0] + xs[1] + xs[2])\n",
		`s = "ab" + "cd"` + "\n" + "print(s)\n",
		"1 / 0\n",
	} {
		file, diags := parse(t, text)
		require.Empty(t, diags, "unexpected diagnostics for %q", text)
		require.NotNil(t, file)
	}
}

func TestParserEmptyListLiteral(t *testing.T) {
	file, diags := parse(t, "xs = []\n")
	require.Empty(t, diags)
	assignment := file.Body[0].(*Assignment)
	list := assignment.Value.(*ListLiteral)
	assert.Empty(t, list.Elements)
}

func TestParserIfElifElseDesugaring(t *testing.T) {
	file, diags := parse(t, "if a:\n  pass\nelif b:\n  pass\n")
	require.Empty(t, diags)
	outer := file.Body[0].(*If)
	require.Len(t, outer.Else, 1)
	inner, ok := outer.Else[0].(*If)
	require.True(t, ok, "elif should desugar into a nested If")
	require.Len(t, inner.Else, 1)
	_, isPass := inner.Else[0].(*Pass)
	assert.True(t, isPass, "a missing else synthesises a Pass body")
}

func TestParserComparisonIsNonAssociative(t *testing.T) {
	_, diags := parse(t, "a = 1 < 2 < 3\n")
	require.NotEmpty(t, diags, "chained comparisons should not parse")
}

func TestParserNegativeScenarios(t *testing.T) {
	for _, test := range []struct {
		Name      string
		Text      string
		Substring string
	}{
		{"AssignToExpression", "a + 3 = 1\n", "cannot assign to expression here"},
		{"UnclosedParen", "(10 - 3\n", "expected closing parenthesis"},
		{"IndentExpected", "while a:\n1\n", "indent expected"},
		{"UnindentMismatch", "1\n  2\n 3\n", "unindent does not match"},
	} {
		t.Run(test.Name, func(t *testing.T) {
			_, diags := parse(t, test.Text)
			require.NotEmpty(t, diags)
			assert.Contains(t, diags[0].Message, test.Substring)
		})
	}
}

func TestParserSubscriptAssignmentTarget(t *testing.T) {
	file, diags := parse(t, "xs[0] = 1\n")
	require.Empty(t, diags)
	assignment := file.Body[0].(*Assignment)
	_, ok := assignment.Target.(*Subscript)
	assert.True(t, ok)
}
