package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbouchez/rubylex/ast"
	"github.com/alexisbouchez/rubylex/token"
)

func streamTokens(t *testing.T, input string) []token.Token {
	t.Helper()
	toks, err := Tokenize(input, WithHandler(NewCollector()))
	require.NoError(t, err)
	return toks
}

func TestStream_Interpolation(t *testing.T) {
	toks := streamTokens(t, `"a#{b}c"`)
	expected := []expectedToken{
		{token.STRING_BEGIN, `"`},
		{token.STRING_CONTENT, "a"},
		{token.EMBEXPR_BEGIN, "#{"},
		{token.IDENT, "b"},
		{token.EMBEXPR_END, "}"},
		{token.STRING_CONTENT, "c"},
		{token.STRING_END, `"`},
		{token.EOF, ""},
	}
	require.Len(t, toks, len(expected))
	for i, tt := range expected {
		assert.Equal(t, tt.expectedType, toks[i].Type, "test[%d]", i)
		assert.Equal(t, tt.expectedLiteral, toks[i].Literal, "test[%d]", i)
	}
}

func TestStream_NestedInterpolation(t *testing.T) {
	toks := streamTokens(t, `"a#{"b#{c}"}d"`)
	assert.Equal(t, []token.Type{
		token.STRING_BEGIN,
		token.STRING_CONTENT,
		token.EMBEXPR_BEGIN,
		token.STRING_BEGIN,
		token.STRING_CONTENT,
		token.EMBEXPR_BEGIN,
		token.IDENT,
		token.EMBEXPR_END,
		token.STRING_END,
		token.EMBEXPR_END,
		token.STRING_CONTENT,
		token.STRING_END,
		token.EOF,
	}, types(toks))
	assert.Equal(t, []string{"a", "b", "d"}, contents(toks))
}

func TestStream_InterpolationWithBraces(t *testing.T) {
	toks := streamTokens(t, `"#{ {a: 1} }x"`)
	assert.Equal(t, []token.Type{
		token.STRING_BEGIN,
		token.EMBEXPR_BEGIN,
		token.LBRACE,
		token.LABEL,
		token.INTEGER,
		token.RBRACE,
		token.EMBEXPR_END,
		token.STRING_CONTENT,
		token.STRING_END,
		token.EOF,
	}, types(toks))
}

func TestStream_EmbeddedVariables(t *testing.T) {
	toks := streamTokens(t, `"#@foo #$bar #{x}"`)
	expected := []expectedToken{
		{token.STRING_BEGIN, `"`},
		{token.EMBVAR, "#"},
		{token.IVAR, "@foo"},
		{token.STRING_CONTENT, " "},
		{token.EMBVAR, "#"},
		{token.GVAR, "$bar"},
		{token.STRING_CONTENT, " "},
		{token.EMBEXPR_BEGIN, "#{"},
		{token.IDENT, "x"},
		{token.EMBEXPR_END, "}"},
		{token.STRING_END, `"`},
		{token.EOF, ""},
	}
	require.Len(t, toks, len(expected))
	for i, tt := range expected {
		assert.Equal(t, tt.expectedType, toks[i].Type, "test[%d]", i)
		assert.Equal(t, tt.expectedLiteral, toks[i].Literal, "test[%d]", i)
	}
}

func TestStream_AssignmentDeclaresLocal(t *testing.T) {
	toks := streamTokens(t, "a = 1\na -1\nb -1")
	assert.Equal(t, []token.Type{
		token.IDENT, token.EQUAL, token.INTEGER, token.NEWLINE,
		token.IDENT, token.MINUS, token.INTEGER, token.NEWLINE,
		token.IDENT, token.UMINUS_NUM, token.INTEGER,
		token.EOF,
	}, types(toks))
}

func TestStream_AttributeAssignmentDoesNotDeclare(t *testing.T) {
	s := NewStream(NewSource("", []byte("obj.a = 1\nx += 2"), nil), WithHandler(NewCollector()))
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		if tok.Type == token.EOF {
			break
		}
	}
	assert.Equal(t, []string{"x"}, s.Scope().LocalVariableNames())
}

func TestStream_BlockParameters(t *testing.T) {
	toks := streamTokens(t, "foo { |x| x -1 }")
	assert.Equal(t, []token.Type{
		token.IDENT,
		token.LBRACE_BLOCK,
		token.PIPE,
		token.IDENT,
		token.PIPE,
		token.IDENT,
		token.MINUS,
		token.INTEGER,
		token.RBRACE,
		token.EOF,
	}, types(toks))
}

func TestStream_LoopConditions(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Type
	}{
		{"while x do\nend", []token.Type{
			token.KEYWORD_WHILE, token.IDENT, token.KEYWORD_DO_COND, token.KEYWORD_END, token.EOF}},
		{"until x do\nend", []token.Type{
			token.KEYWORD_UNTIL, token.IDENT, token.KEYWORD_DO_COND, token.KEYWORD_END, token.EOF}},
		{"for i in x do\nend", []token.Type{
			token.KEYWORD_FOR, token.IDENT, token.KEYWORD_IN, token.IDENT, token.KEYWORD_DO_COND, token.KEYWORD_END, token.EOF}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, types(streamTokens(t, tt.input)), tt.input)
	}
}

func TestStream_LoopConditionEndsAtNewline(t *testing.T) {
	s := NewStream(NewSource("", []byte("while x\ny\nend"), nil))
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		if tok.Type == token.EOF {
			break
		}
	}
	assert.False(t, s.Lexer().Cond().IsInState())
}

func TestStream_Lambdas(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Type
	}{
		{"-> { }", []token.Type{token.MINUS_GREATER, token.LAMBDA_LBRACE, token.RBRACE, token.EOF}},
		{"-> do end", []token.Type{token.MINUS_GREATER, token.KEYWORD_DO_LAMBDA, token.KEYWORD_END, token.EOF}},
		{"->(x) { x }", []token.Type{
			token.MINUS_GREATER, token.LPAREN, token.IDENT, token.RPAREN,
			token.LAMBDA_LBRACE, token.IDENT, token.RBRACE, token.EOF}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, types(streamTokens(t, tt.input)), tt.input)
	}
}

func TestStream_CommandBlocks(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Type
	}{
		{"foo 1 do end", []token.Type{
			token.IDENT, token.INTEGER, token.KEYWORD_DO_BLOCK, token.KEYWORD_END, token.EOF}},
		{"foo bar do end", []token.Type{
			token.IDENT, token.IDENT, token.KEYWORD_DO_BLOCK, token.KEYWORD_END, token.EOF}},
		{"foo :a, b do end", []token.Type{
			token.IDENT, token.SYMBOL_BEGIN, token.IDENT, token.COMMA, token.IDENT,
			token.KEYWORD_DO_BLOCK, token.KEYWORD_END, token.EOF}},
		{"foo do end", []token.Type{
			token.IDENT, token.KEYWORD_DO, token.KEYWORD_END, token.EOF}},
		{"foo 1\nbar do end", []token.Type{
			token.IDENT, token.INTEGER, token.NEWLINE,
			token.IDENT, token.KEYWORD_DO, token.KEYWORD_END, token.EOF}},
	}
	for _, tt := range tests {
		s := NewStream(NewSource("", []byte(tt.input), nil), WithHandler(NewCollector()))
		var got []token.Type
		for {
			tok, err := s.Next()
			require.NoError(t, err, tt.input)
			got = append(got, tok.Type)
			if tok.Type == token.EOF {
				break
			}
		}
		assert.Equal(t, tt.expected, got, tt.input)
		assert.Equal(t, StackState(0), *s.Lexer().CmdArg(), tt.input)
	}
}

func TestStream_SquigglyHeldUntilTerminator(t *testing.T) {
	s := NewStream(NewSource("", []byte("<<~EOS\n    a\n  b\nEOS\n"), nil))
	first, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, token.STRING_BEGIN, first.Type)

	var got []string
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		if tok.Type == token.STRING_CONTENT {
			got = append(got, string(tok.Value.(*ast.StrNode).Value))
		}
		if tok.Type == token.EOF {
			break
		}
	}
	assert.Equal(t, []string{"  a\n", "b\n"}, got)
	assert.Equal(t, 0, s.Lexer().HeredocIndent())
}

func TestStream_ErrorDropsHeldTokens(t *testing.T) {
	s := NewStream(NewSource("", []byte("<<~EOS\n  a\n"), nil), WithHandler(NewCollector()))
	tok, err := s.Next()
	require.Error(t, err)
	assert.Equal(t, token.ILLEGAL, tok.Type)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StringMarkerMissing, se.PID)
}

func TestTokenize_ReturnsTokensBeforeError(t *testing.T) {
	toks, err := Tokenize(`x = "abc`, WithHandler(NewCollector()))
	require.Error(t, err)
	assert.Equal(t, []token.Type{token.IDENT, token.EQUAL, token.STRING_BEGIN}, types(toks))
}

func TestScope(t *testing.T) {
	s := NewScope("b", "a")
	assert.True(t, s.IsLocalDefined("a"))
	assert.False(t, s.IsLocalDefined("c"))
	s.Declare("c")
	s.Declare("a")
	assert.True(t, s.IsLocalDefined("c"))
	assert.Equal(t, []string{"a", "b", "c"}, s.LocalVariableNames())
}
