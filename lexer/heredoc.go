package lexer

import (
	"math"

	"github.com/alexisbouchez/rubylex/token"
)

const tabWidth = 8

// HeredocTerm continues a here document. It remembers the rest of the line
// holding the <<MARKER so lexing can resume there once the body is done.
type HeredocTerm struct {
	marker []byte
	flags  int
	line   int

	// The opening line and where to resume in it.
	lastLine      []byte
	lastLineStart int
	pbeg          int
	nth           int
}

func (h *HeredocTerm) Line() int { return h.line }
func (h *HeredocTerm) strTerm()  {}

// Marker returns the terminating identifier.
func (h *HeredocTerm) Marker() string { return string(h.marker) }

// Indented reports whether the terminator may be indented, as with <<- and
// <<~.
func (h *HeredocTerm) Indented() bool { return h.flags&strFuncIndent != 0 }

// hereDocumentIdentifier is called after "<<". It returns 0 without
// consuming anything when no heredoc identifier follows.
func (l *Lexer) hereDocumentIdentifier() token.Type {
	flags, indent, off := 0, 0, 0
	c := l.peekAt(0)
	if c == '-' || c == '~' {
		flags = strFuncIndent
		if c == '~' {
			indent = math.MaxInt
		}
		off = 1
		c = l.peekAt(1)
	}

	var marker []byte
	switch c {
	case '\'', '"', '`':
		switch c {
		case '\'':
			flags |= strSquote
		case '"':
			flags |= strDquote
		default:
			flags |= strXquote
		}
		l.p += off + 1
		start := l.p
		for {
			c2 := l.nextc()
			if c2 == eof || c2 == '\n' {
				l.compileError(HeredocIdentifierUnterminated, "unterminated here document identifier")
			}
			if c2 == c {
				break
			}
			l.tokaddMBChar(c2)
		}
		marker = l.line[start : l.p-1]
	default:
		if !isIdentChar(c) {
			return 0
		}
		flags |= strDquote
		l.p += off
		start := l.p
		l.tokaddIdent(l.nextc())
		marker = l.line[start:l.p]
	}

	l.tokEnd = l.lineStart + l.p
	l.strTerm = &HeredocTerm{
		marker:        marker,
		flags:         flags,
		line:          l.sourceLine,
		lastLine:      l.line,
		lastLineStart: l.lineStart,
		pbeg:          l.pbeg,
		nth:           l.p,
	}
	l.gotoEOL()
	l.heredocIndent = indent
	l.heredocLineIndent = 0
	if c == '`' {
		return token.XSTRING_BEGIN
	}
	return token.STRING_BEGIN
}

// heredocRestore resumes lexing on the line that opened the heredoc.
func (l *Lexer) heredocRestore(h *HeredocTerm) {
	l.line = h.lastLine
	l.lineStart = h.lastLineStart
	l.pbeg = h.pbeg
	l.p = h.nth
	l.pend = len(h.lastLine)
	l.tokp = l.p
	l.pushed = false
	l.heredocEnd = l.sourceLine
	l.sourceLine = h.line
}

func (l *Lexer) heredocMissing(h *HeredocTerm) {
	l.compileErrorAt(h.line, StringMarkerMissing, "can't find string \"%s\" anywhere before EOF", h.marker)
}

// heredocString produces the next piece of a heredoc body. A squiggly
// heredoc yields one STRING_CONTENT per line so the caller can dedent them.
func (l *Lexer) heredocString(h *HeredocTerm) token.Type {
	c := l.nextc()
	l.mark(c)
	if c == eof {
		l.heredocMissing(h)
	}
	indent := h.flags&strFuncIndent != 0
	if l.wasBOL() {
		if p, ok := l.matchMarker(h.marker, indent); ok {
			l.tokEnd = l.lineStart + p + len(h.marker)
			l.heredocRestore(h)
			l.strTerm = nil
			l.setState(EXPR_END)
			return token.STRING_END
		}
	}

	squiggly := l.heredocIndent > 0
	buf := newStrBuf(l.enc)
	if h.flags&strFuncExpand == 0 {
		for {
			end := l.pend
			if end > l.pbeg && l.line[end-1] == '\n' {
				end--
				if end > l.pbeg && l.line[end-1] == '\r' {
					end--
				}
			} else if end > l.pbeg && l.line[end-1] == '\r' {
				end--
			}
			if squiggly {
				for i := l.pbeg; i < end && l.updateHeredocIndent(int(l.line[i])); i++ {
				}
				l.heredocLineIndent = 0
			}
			buf.append(l.line[l.pbeg:end])
			buf.appendByte('\n')
			l.gotoEOL()
			if squiggly {
				l.value = l.createStr(buf, h.flags)
				return token.STRING_CONTENT
			}
			if c = l.nextc(); c == eof {
				l.heredocMissing(h)
			}
			if l.wholeMatch(h.marker, indent) {
				break
			}
		}
		l.pushback(c)
		l.value = l.createStr(buf, h.flags)
		return token.STRING_CONTENT
	}

	if c == '#' {
		if typ := l.peekVariableName(); typ != 0 {
			return typ
		}
		if l.heredocIndent > 0 {
			l.updateHeredocIndent(c)
		}
		buf.appendByte('#')
		c = l.nextc()
	}
	for {
		l.pushback(c)
		c = l.tokaddString(h.flags, '\n', 0, nil, buf)
		if c == eof {
			l.heredocMissing(h)
		}
		if c != '\n' {
			if c == '\\' {
				l.heredocLineIndent = -1
			}
			l.value = l.createStr(buf, h.flags)
			return token.STRING_CONTENT
		}
		buf.appendByte(byte(l.nextc()))
		if squiggly {
			l.heredocLineIndent = 0
			l.gotoEOL()
			l.value = l.createStr(buf, h.flags)
			return token.STRING_CONTENT
		}
		if c = l.nextc(); c == eof {
			l.heredocMissing(h)
		}
		if l.wholeMatch(h.marker, indent) {
			break
		}
	}
	l.pushback(c)
	l.value = l.createStr(buf, h.flags)
	return token.STRING_CONTENT
}

// updateHeredocIndent tracks the leading whitespace of a squiggly heredoc
// line. It reports true while c is still part of that whitespace.
func (l *Lexer) updateHeredocIndent(c int) bool {
	if l.heredocLineIndent == -1 {
		if c == '\n' {
			l.heredocLineIndent = 0
		}
		return false
	}
	switch c {
	case ' ':
		l.heredocLineIndent++
		return true
	case '\t':
		l.heredocLineIndent = (l.heredocLineIndent/tabWidth + 1) * tabWidth
		return true
	case '\n':
		// Blank lines do not count towards the indentation.
		l.heredocLineIndent = 0
		return false
	}
	if l.heredocIndent > l.heredocLineIndent {
		l.heredocIndent = l.heredocLineIndent
	}
	l.heredocLineIndent = -1
	return false
}

// HeredocDedent removes up to width columns of leading whitespace from one
// line of a squiggly heredoc body. Tabs count to the next multiple of eight
// and are not split.
func (l *Lexer) HeredocDedent(width int, content []byte) []byte {
	return dedent(width, content)
}

func dedent(width int, s []byte) []byte {
	col, i := 0, 0
	for ; i < len(s) && col < width; i++ {
		switch s[i] {
		case ' ':
			col++
		case '\t':
			n := tabWidth * (col/tabWidth + 1)
			if n > width {
				return s[i:]
			}
			col = n
		default:
			return s[i:]
		}
	}
	return s[i:]
}
