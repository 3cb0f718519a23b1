package lexer

import (
	"github.com/alexisbouchez/rubylex/ast"
	"github.com/alexisbouchez/rubylex/charset"
	"github.com/alexisbouchez/rubylex/token"
)

// String function flags.
const (
	strFuncEscape = 0x01
	strFuncExpand = 0x02
	strFuncRegexp = 0x04
	strFuncQwords = 0x08
	strFuncSymbol = 0x10
	strFuncIndent = 0x20
	strFuncLabel  = 0x40
	strFuncList   = 0x4000
	strFuncTerm   = 0x8000
)

// Flag sets for each kind of literal.
const (
	strLabel  = strFuncLabel
	strSquote = 0
	strDquote = strFuncExpand
	strXquote = strFuncExpand
	strRegexp = strFuncRegexp | strFuncEscape | strFuncExpand
	strSword  = strFuncQwords | strFuncList
	strDword  = strFuncQwords | strFuncExpand | strFuncList
	strSsym   = strFuncSymbol
	strDsym   = strFuncSymbol | strFuncExpand
)

// StrTerm is the literal the lexer is in the middle of: a *StringTerm or a
// *HeredocTerm. While one is set, NextToken continues the literal.
type StrTerm interface {
	// Line returns the line the literal was opened on.
	Line() int
	strTerm()
}

// StringTerm continues a quoted string, symbol, regexp or word list.
type StringTerm struct {
	flags int
	paren int
	term  int
	nest  int
	line  int
}

func newStringTerm(flags, paren, term, line int) *StringTerm {
	return &StringTerm{flags: flags, paren: paren, term: term, line: line}
}

func (t *StringTerm) Line() int { return t.line }
func (t *StringTerm) strTerm()  {}

// Expands reports whether the literal interpolates.
func (t *StringTerm) Expands() bool { return t.flags&strFuncExpand != 0 }

func (l *Lexer) advanceTerm() token.Type {
	switch t := l.strTerm.(type) {
	case *HeredocTerm:
		return l.heredocString(t)
	case *StringTerm:
		return l.parseString(t)
	}
	panic("lexer: unknown string term")
}

// mark starts a token at the byte just read, or at the cursor on EOF.
func (l *Lexer) mark(c int) {
	if c == eof {
		l.markAt(l.p)
		return
	}
	l.markToken()
}

func (l *Lexer) parseString(t *StringTerm) token.Type {
	flags := t.flags
	if flags&strFuncTerm != 0 {
		// The terminator was held back to emit the closing separator first.
		l.mark(l.nextc())
		l.setState(EXPR_END)
		l.strTerm = nil
		return token.STRING_END
	}

	c := l.nextc()
	l.mark(c)
	space := false
	if flags&strFuncQwords != 0 && isSpace(c) {
		for isSpace(c) {
			c = l.nextc()
		}
		space = true
	}
	if flags&strFuncList != 0 {
		t.flags &^= strFuncList
		space = true
	}
	if c == t.term && t.nest == 0 {
		if flags&strFuncQwords != 0 {
			t.flags |= strFuncTerm
			l.pushback(c)
			return token.WORDS_SEP
		}
		return l.stringEnd(t)
	}
	if space {
		l.pushback(c)
		return token.WORDS_SEP
	}

	buf := newStrBuf(l.enc)
	if flags&strFuncExpand != 0 && c == '#' {
		if typ := l.peekVariableName(); typ != 0 {
			return typ
		}
		buf.appendByte('#')
		c = l.nextc()
	}
	l.pushback(c)
	if l.tokaddString(flags, t.term, t.paren, &t.nest, buf) == eof {
		if flags&strFuncRegexp != 0 {
			l.compileErrorAt(t.line, StringHitsEOF, "unterminated regexp meets end of file")
		}
		l.compileErrorAt(t.line, StringHitsEOF, "unterminated string meets end of file")
	}
	l.value = l.createStr(buf, flags)
	return token.STRING_CONTENT
}

func (l *Lexer) stringEnd(t *StringTerm) token.Type {
	l.strTerm = nil
	if t.flags&strFuncRegexp != 0 {
		l.value = l.regexpOptions()
		l.setState(EXPR_END)
		return token.REGEXP_END
	}
	if t.flags&strFuncLabel != 0 && l.isLabelSuffix() {
		l.nextc()
		l.setState(EXPR_BEG | EXPR_LABEL)
		return token.LABEL_END
	}
	l.setState(EXPR_END)
	return token.STRING_END
}

func (l *Lexer) regexpOptions() *ast.RegexpOptions {
	opts := &ast.RegexpOptions{}
	var unknown []byte
	c := l.nextc()
	for ; isAlpha(c); c = l.nextc() {
		switch c {
		case 'i':
			opts.IgnoreCase = true
		case 'm':
			opts.Multiline = true
		case 'x':
			opts.Extended = true
		case 'o':
			opts.Once = true
		case 'e', 's', 'u', 'n':
			opts.Kcode = byte(c)
		default:
			unknown = append(unknown, byte(c))
		}
	}
	l.pushback(c)
	if len(unknown) > 0 {
		plural := ""
		if len(unknown) > 1 {
			plural = "s"
		}
		l.compileError(UnknownRegexpOption, "unknown regexp option%s - %s", plural, unknown)
	}
	return opts
}

const globalNamePunct = "~*$?!@/\\;,.=:<>\"&`'+0"

func isGlobalNamePunct(c int) bool {
	for i := 0; i < len(globalNamePunct); i++ {
		if int(globalNamePunct[i]) == c {
			return true
		}
	}
	return false
}

// peekVariableName looks past a '#' inside an interpolating literal. It
// returns EMBEXPR_BEGIN (consuming the '{'), EMBVAR, or 0 when the '#' is
// plain text.
func (l *Lexer) peekVariableName() token.Type {
	p := l.p
	if p >= l.pend {
		return 0
	}
	c := int(l.line[p])
	p++
	switch c {
	case '$':
		if p >= l.pend {
			return 0
		}
		c = int(l.line[p])
		if c == '-' {
			if p++; p >= l.pend {
				return 0
			}
			c = int(l.line[p])
		} else if isGlobalNamePunct(c) || isDigit(c) {
			return token.EMBVAR
		}
	case '@':
		if p >= l.pend {
			return 0
		}
		c = int(l.line[p])
		if c == '@' {
			if p++; p >= l.pend {
				return 0
			}
			c = int(l.line[p])
		}
	case '{':
		l.p = p
		l.commandStart = true
		return token.EMBEXPR_BEGIN
	default:
		return 0
	}
	if !isASCII(c) || c == '_' || isAlpha(c) {
		return token.EMBVAR
	}
	return 0
}

func simpleReMeta(c int) bool {
	switch c {
	case '$', '*', '+', '.', '?', '^', '|', ')', ']', '}', '>':
		return true
	}
	return false
}

// tokaddString scans literal text into buf until the terminator, an
// interpolation or, in a word list, whitespace. The stopping byte is left
// unread and returned; eof means the input ran out.
func (l *Lexer) tokaddString(flags, term, paren int, nest *int, buf *strBuf) int {
	for {
		c := l.nextc()
		if c == eof {
			return eof
		}
		if l.heredocIndent > 0 {
			l.updateHeredocIndent(c)
		}

		switch {
		case paren != 0 && c == paren:
			*nest++

		case c == term:
			if nest == nil || *nest == 0 {
				l.pushback(c)
				return c
			}
			*nest--

		case flags&strFuncExpand != 0 && c == '#' && l.p < l.pend:
			if c2 := l.line[l.p]; c2 == '$' || c2 == '@' || c2 == '{' {
				l.pushback(c)
				return c
			}

		case c == '\\':
			c = l.nextc()
			switch {
			case c == '\n':
				if flags&strFuncQwords != 0 {
					break
				}
				if flags&strFuncExpand != 0 {
					if flags&strFuncIndent == 0 || l.heredocIndent < 0 {
						continue
					}
					if c == term {
						return '\\'
					}
				}
				buf.appendByte('\\')

			case c == '\\':
				if flags&strFuncEscape != 0 {
					buf.appendByte('\\')
				}

			case c == 'u':
				if flags&strFuncExpand == 0 {
					buf.appendByte('\\')
					break
				}
				if flags&strFuncRegexp != 0 {
					l.readUTFEscapeRaw(buf)
				} else {
					l.readUTFEscape(buf)
				}
				continue

			case c == eof:
				return eof

			case !isASCII(c):
				if flags&strFuncExpand == 0 {
					buf.appendByte('\\')
				}
				l.mbcharInto(buf, c)
				continue

			case flags&strFuncRegexp != 0:
				if c == term && !simpleReMeta(c) {
					buf.appendByte(byte(c))
					continue
				}
				l.pushback(c)
				l.tokaddEscape(buf)
				continue

			case flags&strFuncExpand != 0:
				l.pushback(c)
				if flags&strFuncEscape != 0 {
					buf.appendByte('\\')
				}
				c = l.readEscape()

			case flags&strFuncQwords != 0 && isSpace(c):
				// An escaped space belongs to the word.

			case c != term && !(paren != 0 && c == paren):
				buf.appendByte('\\')
				l.pushback(c)
				continue
			}

		case !isASCII(c):
			l.mbcharInto(buf, c)
			continue

		case flags&strFuncQwords != 0 && isSpace(c):
			l.pushback(c)
			return c
		}
		buf.appendByte(byte(c))
	}
}

// createStr wraps a scanned segment. Non-ASCII bytes in a US-ASCII source
// make the segment binary unless an escape already made it UTF-8.
func (l *Lexer) createStr(buf *strBuf, flags int) *ast.StrNode {
	enc := buf.enc
	if flags&strFuncRegexp == 0 && enc.ASCIICompatible() && !isASCIIOnly(buf.b) &&
		l.enc == charset.USASCII && enc != charset.UTF8 {
		enc = charset.Binary
	}
	value := buf.b
	if value == nil {
		value = []byte{}
	}
	return &ast.StrNode{Value: value, Encoding: enc, Frozen: l.frozenStringLiteral}
}

// parseQuote handles a %-literal after the '%'; c is the byte following it.
func (l *Lexer) parseQuote(c int) token.Type {
	var begin int
	if c == eof || !isAlnum(c) {
		begin = c
		c = 'Q'
	} else {
		begin = l.nextc()
		if isAlnum(begin) {
			l.compileError(StringUnknownType, "unknown type of %%string")
		}
	}
	if begin == eof {
		l.compileError(StringHitsEOF, "unterminated quoted string meets end of file")
	}
	if !isASCII(begin) {
		l.compileError(StringUnknownType, "unknown type of %%string")
	}

	paren, term := begin, begin
	switch begin {
	case '(':
		term = ')'
	case '[':
		term = ']'
	case '{':
		term = '}'
	case '<':
		term = '>'
	default:
		paren = 0
	}

	line := l.sourceLine
	switch c {
	case 'Q':
		l.strTerm = newStringTerm(strDquote, paren, term, line)
		return token.STRING_BEGIN
	case 'q':
		l.strTerm = newStringTerm(strSquote, paren, term, line)
		return token.STRING_BEGIN
	case 'W':
		l.strTerm = newStringTerm(strDword, paren, term, line)
		return token.WORDS_BEGIN
	case 'w':
		l.strTerm = newStringTerm(strSword, paren, term, line)
		return token.QWORDS_BEGIN
	case 'I':
		l.strTerm = newStringTerm(strDword, paren, term, line)
		return token.SYMBOLS_BEGIN
	case 'i':
		l.strTerm = newStringTerm(strSword, paren, term, line)
		return token.QSYMBOLS_BEGIN
	case 'x':
		l.strTerm = newStringTerm(strXquote, paren, term, line)
		return token.XSTRING_BEGIN
	case 'r':
		l.strTerm = newStringTerm(strRegexp, paren, term, line)
		return token.REGEXP_BEGIN
	case 's':
		l.strTerm = newStringTerm(strSsym, paren, term, line)
		l.setState(EXPR_FNAME | EXPR_FITEM)
		return token.SYMBOL_BEGIN
	}
	l.compileError(StringUnknownType, "unknown type of %%string")
	return token.ILLEGAL
}
