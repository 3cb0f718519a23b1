package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbouchez/rubylex/token"
)

func TestHeredoc_Basic(t *testing.T) {
	l := New("x = <<EOS\nhello\nEOS\n")
	checkTokens(t, l, []expectedToken{
		{token.IDENT, "x"},
		{token.EQUAL, "="},
		{token.STRING_BEGIN, "<<EOS"},
		{token.STRING_CONTENT, "hello\n"},
		{token.STRING_END, "EOS"},
		{token.EOF, ""},
	})
}

func TestHeredoc_EndLine(t *testing.T) {
	toks := lexAll(t, "x = <<EOS\nhello\nEOS\n")
	require.Len(t, toks, 6)
	assert.Equal(t, 1, toks[2].Span.Line)
	assert.Equal(t, 2, toks[3].Span.Line)
	assert.Equal(t, 3, toks[4].Span.Line)
	assert.Equal(t, token.EOF, toks[5].Type)
	assert.Equal(t, 3, toks[5].Span.Line)
}

func TestHeredoc_RestOfLineResumes(t *testing.T) {
	toks := lexAll(t, "foo(<<A, <<B)\na\nA\nb\nB\nbar\n")
	expected := []expectedToken{
		{token.IDENT, "foo"},
		{token.LPAREN, "("},
		{token.STRING_BEGIN, "<<A"},
		{token.STRING_CONTENT, "a\n"},
		{token.STRING_END, "A"},
		{token.COMMA, ","},
		{token.STRING_BEGIN, "<<B"},
		{token.STRING_CONTENT, "b\n"},
		{token.STRING_END, "B"},
		{token.RPAREN, ")"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "bar"},
		{token.EOF, ""},
	}
	require.Len(t, toks, len(expected))
	for i, tt := range expected {
		assert.Equal(t, tt.expectedType, toks[i].Type, "test[%d]", i)
		assert.Equal(t, tt.expectedLiteral, toks[i].Literal, "test[%d]", i)
	}
	assert.Equal(t, 5, toks[8].Span.Line)
	assert.Equal(t, 1, toks[9].Span.Line)
	assert.Equal(t, 1, toks[10].Span.Line)
	assert.Equal(t, 6, toks[11].Span.Line)
}

func TestHeredoc_IndentedTerminator(t *testing.T) {
	checkTokens(t, New("<<-EOS\n  x\n  EOS\n"), []expectedToken{
		{token.STRING_BEGIN, "<<-EOS"},
		{token.STRING_CONTENT, "  x\n"},
		{token.STRING_END, "  EOS"},
		{token.EOF, ""},
	})
}

func TestHeredoc_TerminatorMustMatchWholeLine(t *testing.T) {
	toks := lexAll(t, "<<EOS\nEOSX\n  EOS\nEOS\n")
	assert.Equal(t, []string{"EOSX\n  EOS\n"}, contents(toks))
}

func TestHeredoc_Quoted(t *testing.T) {
	tests := []struct {
		input         string
		expectedBegin token.Type
		expected      []string
	}{
		{"<<'EOS'\na#{b}\\n\nEOS\n", token.STRING_BEGIN, []string{"a#{b}\\n\n"}},
		{"<<\"EOS\"\na\\tb\nEOS\n", token.STRING_BEGIN, []string{"a\tb\n"}},
		{"<<`EOS`\nls\nEOS\n", token.XSTRING_BEGIN, []string{"ls\n"}},
		{"<<\"A B\"\nx\nA B\n", token.STRING_BEGIN, []string{"x\n"}},
	}
	for _, tt := range tests {
		toks := lexAll(t, tt.input)
		assert.Equal(t, tt.expectedBegin, toks[0].Type, tt.input)
		assert.Equal(t, tt.expected, contents(toks), tt.input)
		assert.Equal(t, token.STRING_END, toks[len(toks)-2].Type, tt.input)
	}
}

func TestHeredoc_Interpolation(t *testing.T) {
	toks, err := Tokenize("<<EOS\na#{b}c\nEOS\n")
	require.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.STRING_BEGIN,
		token.STRING_CONTENT,
		token.EMBEXPR_BEGIN,
		token.IDENT,
		token.EMBEXPR_END,
		token.STRING_CONTENT,
		token.STRING_END,
		token.EOF,
	}, types(toks))
	assert.Equal(t, []string{"a", "c\n"}, contents(toks))
}

func TestHeredoc_Squiggly(t *testing.T) {
	toks, err := Tokenize("x = <<~EOS\n  a\n    b\n  EOS\n")
	require.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.IDENT,
		token.EQUAL,
		token.STRING_BEGIN,
		token.STRING_CONTENT,
		token.STRING_CONTENT,
		token.STRING_END,
		token.EOF,
	}, types(toks))
	assert.Equal(t, []string{"a\n", "  b\n"}, contents(toks))
	assert.Equal(t, "  EOS", toks[5].Literal)
}

func TestHeredoc_SquigglyBlankLines(t *testing.T) {
	toks, err := Tokenize("<<~EOS\n    a\n\n  \n    b\nEOS\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a\n", "\n", "\n", "b\n"}, contents(toks))
}

func TestHeredoc_SquigglyTabs(t *testing.T) {
	toks, err := Tokenize("<<~'EOS'\n\tx\n  y\nEOS\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"\tx\n", "y\n"}, contents(toks))
}

func TestHeredoc_SquigglyInterpolation(t *testing.T) {
	toks, err := Tokenize("<<~EOS\n  a#{b}\n  c\nEOS\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "\n", "c\n"}, contents(toks))
	assert.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func TestHeredoc_SquigglyFollowedByCode(t *testing.T) {
	toks, err := Tokenize("foo(<<~EOS)\n  a\nEOS\nbar\n")
	require.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.IDENT,
		token.LPAREN,
		token.STRING_BEGIN,
		token.STRING_CONTENT,
		token.STRING_END,
		token.RPAREN,
		token.NEWLINE,
		token.IDENT,
		token.EOF,
	}, types(toks))
	assert.Equal(t, []string{"a\n"}, contents(toks))
}

func TestHeredoc_Errors(t *testing.T) {
	tests := []struct {
		input    string
		pid      PID
		expected string
		line     int
	}{
		{"<<EOS\nfoo\n", StringMarkerMissing, `can't find string "EOS" anywhere before EOF`, 1},
		{"x\n<<~EOS\n  foo\n", StringMarkerMissing, `can't find string "EOS" anywhere before EOF`, 2},
		{"<<'EOS\nfoo\n", HeredocIdentifierUnterminated, "unterminated here document identifier", 1},
	}
	for _, tt := range tests {
		se := lexError(t, tt.input)
		assert.Equal(t, tt.pid, se.PID, tt.input)
		assert.Equal(t, tt.expected, se.Message, tt.input)
		assert.Equal(t, tt.line, se.Line, tt.input)
	}
}

func TestHeredoc_NotAnIdentifier(t *testing.T) {
	toks := lexAll(t, "foo << 1")
	assert.Equal(t, []token.Type{token.IDENT, token.LESS_LESS, token.INTEGER, token.EOF}, types(toks))
}

func TestHeredocTerm_Accessors(t *testing.T) {
	l := New("<<~EOS\nEOS\n")
	tok, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, token.STRING_BEGIN, tok.Type)
	h, ok := l.StrTerm().(*HeredocTerm)
	require.True(t, ok)
	assert.Equal(t, "EOS", h.Marker())
	assert.True(t, h.Indented())
	assert.Equal(t, 1, h.Line())
}

func TestHeredocDedent(t *testing.T) {
	tests := []struct {
		width    int
		input    string
		expected string
	}{
		{2, "    b\n", "  b\n"},
		{4, "\tx", "\tx"},
		{8, "\tx", "x"},
		{3, "  \n", "\n"},
		{2, "a", "a"},
		{0, "  a", "  a"},
	}
	l := New("")
	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(l.HeredocDedent(tt.width, []byte(tt.input))), "%d %q", tt.width, tt.input)
	}
}
