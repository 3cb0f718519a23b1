package lexer

import (
	"unicode/utf8"

	"github.com/alexisbouchez/rubylex/charset"
)

// strBuf accumulates the decoded bytes of a literal segment together with the
// encoding the segment ends up in.
type strBuf struct {
	b   []byte
	enc *charset.Encoding
}

func newStrBuf(enc *charset.Encoding) *strBuf { return &strBuf{enc: enc} }

func (s *strBuf) appendByte(c byte) { s.b = append(s.b, c) }

func (s *strBuf) append(p []byte) { s.b = append(s.b, p...) }

func (s *strBuf) appendString(str string) { s.b = append(s.b, str...) }

func (s *strBuf) len() int { return len(s.b) }

// mbcharInto appends the character whose first byte c was just read.
func (l *Lexer) mbcharInto(buf *strBuf, c int) {
	if isASCII(c) {
		buf.appendByte(byte(c))
		return
	}
	start := l.p - 1
	l.tokaddMBChar(c)
	buf.append(l.line[start:l.p])
}

// readEscape decodes the escape sequence after a backslash and returns the
// resulting byte value.
func (l *Lexer) readEscape() int {
	c := l.nextc()
	switch c {
	case '\\':
		return c
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'f':
		return '\f'
	case 'v':
		return '\v'
	case 'a':
		return '\a'
	case 'e':
		return 0x1b
	case 'b':
		return '\b'
	case 's':
		return ' '
	case '0', '1', '2', '3', '4', '5', '6', '7':
		l.pushback(c)
		return l.scanOct(3)
	case 'x':
		return l.scanHex(2, false, InvalidEscapeSyntax, "Invalid escape character syntax")
	case 'M':
		if l.nextc() != '-' {
			l.compileError(InvalidEscapeSyntax, "Invalid escape character syntax")
		}
		c = l.nextc()
		switch c {
		case '\\':
			return l.readEscape() | 0x80
		case eof:
			l.compileError(InvalidEscapeSyntax, "Invalid escape character syntax")
		}
		return (c & 0xff) | 0x80
	case 'C', 'c':
		if c == 'C' && l.nextc() != '-' {
			l.compileError(InvalidEscapeSyntax, "Invalid escape character syntax")
		}
		c = l.nextc()
		switch c {
		case '\\':
			c = l.readEscape()
		case '?':
			return 0x7f
		case eof:
			l.compileError(InvalidEscapeSyntax, "Invalid escape character syntax")
		}
		return c & 0x9f
	case eof:
		l.compileError(InvalidEscapeSyntax, "Invalid escape character syntax")
	}
	return c
}

// scanOct reads up to count octal digits.
func (l *Lexer) scanOct(count int) int {
	value := 0
	for i := 0; i < count; i++ {
		c := l.nextc()
		if !isOctalDigit(c) {
			l.pushback(c)
			break
		}
		value = value<<3 | (c - '0')
	}
	return value & 0xff
}

// scanHex reads up to count hex digits. With strict set exactly count digits
// are required; otherwise at least one.
func (l *Lexer) scanHex(count int, strict bool, pid PID, msg string) int {
	value, i := 0, 0
	for ; i < count; i++ {
		c := l.nextc()
		if !isHexDigit(c) {
			l.pushback(c)
			break
		}
		value = value<<4 | hexValue(c)
	}
	if i == 0 || (strict && i != count) {
		l.compileError(pid, "%s", msg)
	}
	return value
}

func hexValue(c int) int {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	}
	return c - '0'
}

// readUTFEscape decodes \uXXXX or \u{X ...} after the 'u' has been read and
// appends the characters to buf. It returns the last codepoint.
func (l *Lexer) readUTFEscape(buf *strBuf) int {
	if !l.peek('{') {
		cp := l.scanHex(4, true, InvalidUnicodeEscape, "Invalid Unicode escape")
		l.appendCodepoint(buf, cp)
		return cp
	}
	l.nextc()
	l.skipBlanks()
	cp, n := 0, 0
	for isHexDigit(l.peekAt(0)) {
		cp = l.scanHex(6, false, InvalidUnicodeEscape, "invalid Unicode escape")
		if isHexDigit(l.peekAt(0)) {
			l.compileError(InvalidUnicodeEscape, "invalid Unicode escape")
		}
		l.appendCodepoint(buf, cp)
		n++
		l.skipBlanks()
	}
	if c := l.nextc(); c != '}' {
		if n == 0 && c != eof && c != '\n' {
			l.compileError(InvalidUnicodeEscape, "invalid Unicode escape")
		}
		l.compileError(UnterminatedUnicodeEscape, "unterminated Unicode escape")
	}
	return cp
}

func (l *Lexer) skipBlanks() {
	for isBlank(l.peekAt(0)) {
		l.nextc()
	}
}

func (l *Lexer) appendCodepoint(buf *strBuf, cp int) {
	switch {
	case cp > utf8.MaxRune:
		l.compileError(InvalidUnicodeCodepoint, "invalid Unicode codepoint (too large)")
	case cp >= 0xd800 && cp <= 0xdfff:
		l.compileError(InvalidUnicodeCodepoint, "invalid Unicode codepoint")
	case cp < 0x80:
		buf.appendByte(byte(cp))
		return
	}
	buf.enc = charset.UTF8
	buf.b = utf8.AppendRune(buf.b, rune(cp))
}

// readUTFEscapeRaw copies a \u escape into a regexp source unchanged,
// validating it on the way.
func (l *Lexer) readUTFEscapeRaw(buf *strBuf) {
	start := l.p - 2
	scratch := newStrBuf(buf.enc)
	l.readUTFEscape(scratch)
	buf.append(l.line[start:l.p])
	if !isASCIIOnly(scratch.b) {
		buf.enc = charset.UTF8
	}
}

// tokaddEscape copies the escape after a backslash into a regexp source
// without decoding it.
func (l *Lexer) tokaddEscape(buf *strBuf) {
	for {
		c := l.nextc()
		switch c {
		case '\n':
			return
		case '0', '1', '2', '3', '4', '5', '6', '7':
			start := l.p - 2
			for i := 0; i < 2 && isOctalDigit(l.peekAt(0)); i++ {
				l.nextc()
			}
			buf.append(l.line[start:l.p])
			return
		case 'x':
			start := l.p - 2
			l.scanHex(2, false, InvalidEscapeSyntax, "invalid hex escape")
			buf.append(l.line[start:l.p])
			return
		case 'M', 'C':
			if l.nextc() != '-' {
				l.compileError(InvalidEscapeSyntax, "Invalid escape character syntax")
			}
			buf.appendByte('\\')
			buf.appendByte(byte(c))
			buf.appendByte('-')
		case 'c':
			buf.appendString("\\c")
		case eof:
			l.compileError(InvalidEscapeSyntax, "Invalid escape character syntax")
		default:
			buf.appendByte('\\')
			l.mbcharInto(buf, c)
			return
		}

		// \M-, \C- and \c take one more character, which may itself be escaped.
		c = l.nextc()
		switch c {
		case '\\':
			continue
		case eof:
			l.compileError(InvalidEscapeSyntax, "Invalid escape character syntax")
		}
		l.mbcharInto(buf, c)
		return
	}
}

func isASCIIOnly(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
