package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
	}{
		{"if", KEYWORD_IF},
		{"defined?", KEYWORD_DEFINED},
		{"BEGIN", KEYWORD_BEGIN_UPCASE},
		{"foo", IDENT},
		{"Foo", CONSTANT},
		{"_Foo", IDENT},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, LookupIdent(tt.input), tt.input)
	}
}

func TestTypeClasses(t *testing.T) {
	assert.True(t, KEYWORD_IF.IsKeyword())
	assert.False(t, IDENT.IsKeyword())
	assert.True(t, INTEGER.IsLiteral())
	assert.True(t, STRING_CONTENT.IsLiteral())
	assert.False(t, STRING_BEGIN.IsLiteral())
	assert.True(t, UMINUS_NUM.IsOperator())
	assert.False(t, LPAREN.IsOperator())
	assert.True(t, QSYMBOLS_BEGIN.IsStringBegin())
	assert.False(t, STRING_END.IsStringBegin())
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: IDENT, Literal: "foo", Span: Span{Line: 3, Column: 7}}
	assert.Equal(t, "3:7", tok.Position())
	assert.Equal(t, `IDENT "foo"`, tok.String())

	tok = Token{Type: INTEGER, Literal: "0x10", Value: 16}
	assert.Equal(t, `INTEGER "0x10" 16`, tok.String())
	assert.Equal(t, "UNKNOWN", Type(-1).String())
}
