package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbouchez/rubylex/ast"
	"github.com/alexisbouchez/rubylex/charset"
	"github.com/alexisbouchez/rubylex/token"
)

// contents returns the decoded value of every STRING_CONTENT token.
func contents(toks []token.Token) []string {
	var out []string
	for _, tok := range toks {
		if tok.Type == token.STRING_CONTENT {
			out = append(out, string(tok.Value.(*ast.StrNode).Value))
		}
	}
	return out
}

func TestStrings_DoubleQuoted(t *testing.T) {
	checkTokens(t, New(`"hello world"`), []expectedToken{
		{token.STRING_BEGIN, `"`},
		{token.STRING_CONTENT, "hello world"},
		{token.STRING_END, `"`},
		{token.EOF, ""},
	})
}

func TestStrings_Empty(t *testing.T) {
	toks := lexAll(t, `""`)
	assert.Equal(t, []token.Type{token.STRING_BEGIN, token.STRING_END, token.EOF}, types(toks))
}

func TestStrings_Escapes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"a\tb\n"`, "a\tb\n"},
		{`"é"`, "é"},
		{`"\u{61 62}"`, "ab"},
		{`"\x41\101"`, "AA"},
		{`"\e\s\0"`, "\x1b \x00"},
		{`"\ca\C-b\c?"`, "\x01\x02\x7f"},
		{`"a\"b"`, `a"b`},
		{`'a\'b\\c\d'`, `a'b\c\d`},
		{`%q(a (b) c)`, "a (b) c"},
		{`%Q[x\ty]`, "x\ty"},
		{`%(z)`, "z"},
	}
	for _, tt := range tests {
		toks := lexAll(t, tt.input)
		assert.Equal(t, []string{tt.expected}, contents(toks), tt.input)
	}
}

func TestStrings_LineContinuationInside(t *testing.T) {
	toks := lexAll(t, "\"a\\\nb\"")
	assert.Equal(t, []string{"ab"}, contents(toks))
}

func TestStrings_UnicodeEscapeSetsEncoding(t *testing.T) {
	toks := lexAll(t, `"\u00e9"`, WithEncoding(charset.USASCII))
	str := toks[1].Value.(*ast.StrNode)
	assert.Equal(t, charset.UTF8, str.Encoding)
}

func TestStrings_BinaryInASCIISource(t *testing.T) {
	toks := lexAll(t, `"\xff"`, WithEncoding(charset.USASCII))
	str := toks[1].Value.(*ast.StrNode)
	assert.Equal(t, charset.Binary, str.Encoding)
}

func TestStrings_FrozenOption(t *testing.T) {
	toks := lexAll(t, `"a"`, WithFrozenStringLiteral(true))
	assert.True(t, toks[1].Value.(*ast.StrNode).Frozen)
}

func TestStrings_Backtick(t *testing.T) {
	checkTokens(t, New("`ls`"), []expectedToken{
		{token.XSTRING_BEGIN, "`"},
		{token.STRING_CONTENT, "ls"},
		{token.STRING_END, "`"},
		{token.EOF, ""},
	})
	checkTokens(t, New("%x(ls)"), []expectedToken{
		{token.XSTRING_BEGIN, "%x("},
		{token.STRING_CONTENT, "ls"},
		{token.STRING_END, ")"},
		{token.EOF, ""},
	})
}

func TestStrings_Regexp(t *testing.T) {
	toks := lexAll(t, `/ab+c/ix`)
	require.Len(t, toks, 4)
	assert.Equal(t, token.REGEXP_BEGIN, toks[0].Type)
	assert.Equal(t, "ab+c", contents(toks)[0])
	assert.Equal(t, token.REGEXP_END, toks[2].Type)
	assert.Equal(t, "/ix", toks[2].Literal)
	assert.Equal(t, &ast.RegexpOptions{IgnoreCase: true, Extended: true}, toks[2].Value)

	toks = lexAll(t, `%r{a}mon`)
	assert.Equal(t, token.REGEXP_BEGIN, toks[0].Type)
	assert.Equal(t, "%r{", toks[0].Literal)
	assert.Equal(t, &ast.RegexpOptions{Multiline: true, Once: true, Kcode: 'n'}, toks[2].Value)
}

func TestStrings_RegexpEscapesKept(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`/a\/b/`, "a/b"},
		{`/a\.b/`, `a\.b`},
		{`/\d+\x41/`, `\d+\x41`},
		{`/\n/`, `\n`},
	}
	for _, tt := range tests {
		assert.Equal(t, []string{tt.expected}, contents(lexAll(t, tt.input)), tt.input)
	}
}

func TestStrings_Words(t *testing.T) {
	checkTokens(t, New("%w(a b)"), []expectedToken{
		{token.QWORDS_BEGIN, "%w("},
		{token.WORDS_SEP, ""},
		{token.STRING_CONTENT, "a"},
		{token.WORDS_SEP, " "},
		{token.STRING_CONTENT, "b"},
		{token.WORDS_SEP, ""},
		{token.STRING_END, ")"},
		{token.EOF, ""},
	})

	toks := lexAll(t, `%w(a\ b c)`)
	assert.Equal(t, []string{"a b", "c"}, contents(toks))

	toks = lexAll(t, "%i[x y]")
	assert.Equal(t, token.QSYMBOLS_BEGIN, toks[0].Type)
	assert.Equal(t, []string{"x", "y"}, contents(toks))

	toks = lexAll(t, "%W[x y]")
	assert.Equal(t, token.WORDS_BEGIN, toks[0].Type)
	toks = lexAll(t, "%I[x y]")
	assert.Equal(t, token.SYMBOLS_BEGIN, toks[0].Type)
}

func TestStrings_SymbolLiteral(t *testing.T) {
	checkTokens(t, New("%s(sym)"), []expectedToken{
		{token.SYMBOL_BEGIN, "%s("},
		{token.STRING_CONTENT, "sym"},
		{token.STRING_END, ")"},
		{token.EOF, ""},
	})
}

func TestStrings_InterpolationTokens(t *testing.T) {
	l := New(`"a#{`)
	checkTokens(t, l, []expectedToken{
		{token.STRING_BEGIN, `"`},
		{token.STRING_CONTENT, "a"},
		{token.EMBEXPR_BEGIN, "#{"},
	})
	_, ok := l.StrTerm().(*StringTerm)
	assert.True(t, ok)

	toks := lexAll(t, `'a#{b}'`)
	assert.Equal(t, []string{"a#{b}"}, contents(toks))

	toks = lexAll(t, `"#a #1"`)
	assert.Equal(t, []string{"#a #1"}, contents(toks))
}

func TestStrings_Errors(t *testing.T) {
	tests := []struct {
		input    string
		pid      PID
		expected string
	}{
		{`"abc`, StringHitsEOF, "unterminated string meets end of file"},
		{`/abc`, StringHitsEOF, "unterminated regexp meets end of file"},
		{`x = %`, StringHitsEOF, "unterminated quoted string meets end of file"},
		{`%z(a)`, StringUnknownType, "unknown type of %string"},
		{`/a/z`, UnknownRegexpOption, "unknown regexp option - z"},
		{`/a/zq`, UnknownRegexpOption, "unknown regexp options - zq"},
		{`"\u{110000}"`, InvalidUnicodeCodepoint, "invalid Unicode codepoint (too large)"},
		{`"\ud800"`, InvalidUnicodeCodepoint, "invalid Unicode codepoint"},
		{`"\u12"`, InvalidUnicodeEscape, "Invalid Unicode escape"},
		{`"\u{61"`, UnterminatedUnicodeEscape, "unterminated Unicode escape"},
		{`"\M"`, InvalidEscapeSyntax, "Invalid escape character syntax"},
	}
	for _, tt := range tests {
		se := lexError(t, tt.input)
		assert.Equal(t, tt.pid, se.PID, tt.input)
		assert.Equal(t, tt.expected, se.Message, tt.input)
	}
}

func TestStrings_ErrorLineIsOpeningLine(t *testing.T) {
	se := lexError(t, "\n\"abc\n\ndef")
	assert.Equal(t, StringHitsEOF, se.PID)
	assert.Equal(t, 2, se.Line)
}
