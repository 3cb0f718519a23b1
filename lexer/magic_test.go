package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbouchez/rubylex/ast"
	"github.com/alexisbouchez/rubylex/charset"
	"github.com/alexisbouchez/rubylex/token"
)

func TestMagicComment_FrozenStringLiteral(t *testing.T) {
	l := New("# frozen_string_literal: true\n'a'")
	checkTokens(t, l, []expectedToken{
		{token.STRING_BEGIN, "'"},
	})
	tok, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, token.STRING_CONTENT, tok.Type)
	assert.True(t, tok.Value.(*ast.StrNode).Frozen)
	assert.True(t, l.CompileOptions().FrozenStringLiteral)
}

func TestMagicComment_IgnoredAfterTokens(t *testing.T) {
	c, opts := quiet()
	toks := lexAll(t, "x = 1\n# frozen_string_literal: true\n'a'", opts...)
	for _, tok := range toks {
		if tok.Type == token.STRING_CONTENT {
			assert.False(t, tok.Value.(*ast.StrNode).Frozen)
		}
	}
	assert.Equal(t, []string{"`frozen_string_literal' is ignored after any tokens"}, c.Messages())
}

func TestMagicComment_Encoding(t *testing.T) {
	tests := []struct {
		input    string
		expected *charset.Encoding
	}{
		{"# encoding: Shift_JIS\nx", charset.ShiftJIS},
		{"# coding: utf-8\nx", charset.UTF8},
		{"# -*- coding: euc-jp -*-\nx", charset.EUCJP},
		{"# vim: set fileencoding=euc-jp :\nx", charset.EUCJP},
		{"#!/usr/bin/env ruby\n# encoding: us-ascii\nx", charset.USASCII},
		{"  # encoding: binary\nx", charset.Binary},
		{"# hello world\nx", charset.UTF8},
	}
	for _, tt := range tests {
		l := New(tt.input)
		for {
			tok, err := l.NextToken()
			require.NoError(t, err, tt.input)
			if tok.Type == token.EOF {
				break
			}
		}
		assert.Same(t, tt.expected, l.Encoding(), tt.input)
	}
}

func TestMagicComment_EncodingOnlyAtTop(t *testing.T) {
	l := New("\n\n# encoding: Shift_JIS\nx")
	lexUntilEOF(t, l)
	assert.Same(t, charset.UTF8, l.Encoding())

	c, opts := quiet()
	l = New("x\n# encoding: Shift_JIS\n", opts...)
	lexUntilEOF(t, l)
	assert.Same(t, charset.UTF8, l.Encoding())
	assert.Equal(t, []string{"`encoding' is ignored after any tokens"}, c.Messages())
	assert.True(t, l.EncodingLocked())
}

func TestMagicComment_Emacs(t *testing.T) {
	l := New("# -*- coding: Shift_JIS; frozen_string_literal: true -*-\n'a'")
	lexUntilEOF(t, l)
	assert.Same(t, charset.ShiftJIS, l.Encoding())
	assert.True(t, l.CompileOptions().FrozenStringLiteral)
}

func TestMagicComment_OtherPragmas(t *testing.T) {
	l := New("# primitives: true\n# warn_indent: TRUE\nx")
	lexUntilEOF(t, l)
	assert.Equal(t, CompileOptions{Primitives: true, WarnIndent: true}, l.CompileOptions())

	l = New("# truffleruby_primitives: true\nx")
	lexUntilEOF(t, l)
	assert.True(t, l.CompileOptions().Primitives)

	l = New("# frozen-string-literal: true\nx")
	lexUntilEOF(t, l)
	assert.True(t, l.CompileOptions().FrozenStringLiteral)
}

func TestMagicComment_InvalidValue(t *testing.T) {
	c, opts := quiet()
	l := New("# frozen_string_literal: maybe\nx", opts...)
	lexUntilEOF(t, l)
	assert.False(t, l.CompileOptions().FrozenStringLiteral)
	assert.Equal(t, []string{"invalid value for frozen_string_literal: maybe"}, c.Messages())
}

func TestMagicComment_Errors(t *testing.T) {
	tests := []struct {
		source   *Source
		pid      PID
		expected string
	}{
		{NewSource("", []byte("# encoding: bogus\n"), nil), UnknownEncoding, "unknown encoding name: bogus"},
		{NewSource("", []byte("# encoding: UTF-16LE\n"), nil), IncompatibleEncoding, "UTF-16LE is not ASCII compatible"},
		{NewTextSource("", "# encoding: Shift_JIS\n"), EncodingUnavailable,
			"Shift_JIS cannot be used as an encoding for a text source as it is not UTF-8 or a subset of UTF-8"},
	}
	for _, tt := range tests {
		c := NewCollector()
		l := NewFromSource(tt.source, WithHandler(c))
		_, err := l.NextToken()
		require.Error(t, err)
		se := err.(*SyntaxError)
		assert.Equal(t, tt.pid, se.PID)
		assert.Equal(t, tt.expected, se.Message)
		assert.Equal(t, 1, se.Line)
	}
}

func TestMagicComment_TextSourceUTF8(t *testing.T) {
	l := NewFromSource(NewTextSource("", "# encoding: us-ascii\nx"))
	lexUntilEOF(t, l)
	assert.Same(t, charset.USASCII, l.Encoding())
}

func lexUntilEOF(t *testing.T, l *Lexer) {
	t.Helper()
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		if tok.Type == token.EOF {
			return
		}
	}
}
