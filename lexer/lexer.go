// Package lexer implements a context-sensitive Ruby lexer.
//
// The lexer is driven by a parser: each NextToken call returns one token and
// leaves the lexer state set up to classify the next one. The parser owns
// interpolation nesting; see Stream for a driver that does that work.
package lexer

import (
	"log/slog"

	"github.com/alexisbouchez/rubylex/charset"
	"github.com/alexisbouchez/rubylex/token"
)

const eof = -1

// Lexer turns a Source into tokens.
type Lexer struct {
	src     *Source
	file    string
	enc     *charset.Encoding
	scope   ScopeOracle
	handler Handler
	log     *slog.Logger

	// The line being scanned: line[pbeg:pend] is its content, p the cursor.
	line      []byte
	lineStart int
	pbeg      int
	p         int
	pend      int
	tokp      int
	eofp      bool
	pushed    bool

	sourceLine int
	lineCount  int
	heredocEnd int
	lastCRLine int
	hasShebang bool
	dataOffset int

	state          State
	lastState      State
	parenNest      int
	braceNest      int
	leftParenBegin int
	commandStart   bool
	cond           StackState
	cmdArg         StackState
	inKwarg        bool
	tokenSeen      bool

	strTerm           StrTerm
	heredocIndent     int
	heredocLineIndent int

	frozenStringLiteral bool
	primitives          bool
	warnIndent          bool

	value    any
	tokStart int
	tokLine  int
	tokCol   int
	tokEnd   int

	prepared bool
	err      *SyntaxError
}

// New creates a lexer over input, which is taken as raw source bytes.
func New(input string, opts ...Option) *Lexer {
	return NewFromSource(NewSource("", []byte(input), nil), opts...)
}

// NewFromSource creates a lexer reading from src.
func NewFromSource(src *Source, opts ...Option) *Lexer {
	l := &Lexer{
		src:          src,
		file:         src.Name(),
		enc:          src.Encoding(),
		state:        EXPR_BEG,
		commandStart: true,
		lastCRLine:   -1,
		dataOffset:   -1,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.file == "" {
		l.file = "-"
	}
	if l.handler == nil {
		l.handler = SlogHandler{Logger: l.log}
	}
	if l.log == nil {
		l.log = slog.New(slog.DiscardHandler)
	}
	if l.enc != src.Encoding() {
		src.SetEncoding(l.enc)
	}
	return l
}

// NextToken scans and returns the next token. After a fatal error every call
// returns the same *SyntaxError.
func (l *Lexer) NextToken() (tok token.Token, err error) {
	if l.err != nil {
		return l.errorToken(), l.err
	}
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			l.err = se
			l.strTerm = nil
			l.log.Debug("lexing aborted", "file", se.File, "line", se.Line, "pid", se.PID.String())
			l.handler.Fatal(se)
			tok, err = l.errorToken(), se
		}
	}()
	if !l.prepared {
		l.prepared = true
		l.prepare()
	}
	l.value = nil
	l.tokEnd = -1
	typ := l.yylex()
	return l.makeToken(typ), nil
}

func (l *Lexer) makeToken(typ token.Type) token.Token {
	end := l.tokEnd
	if end < 0 {
		end = l.lineStart + l.p
	}
	if end < l.tokStart {
		end = l.tokStart
	}
	return token.Token{
		Type:    typ,
		Literal: string(l.src.slice(l.tokStart, end)),
		Value:   l.value,
		Span:    token.Span{Line: l.tokLine, Column: l.tokCol, Start: l.tokStart, End: end},
	}
}

func (l *Lexer) errorToken() token.Token {
	return token.Token{
		Type: token.ILLEGAL,
		Span: token.Span{Line: l.err.Line, Column: l.tokCol, Start: l.tokStart, End: l.tokStart},
	}
}

// prepare skips a UTF-8 byte order mark and notes a shebang line.
func (l *Lexer) prepare() {
	c := l.nextc()
	switch c {
	case '#':
		if l.peek('!') {
			l.hasShebang = true
		}
	case 0xef:
		if l.pend-l.p >= 2 && l.line[l.p] == 0xbb && l.line[l.p+1] == 0xbf {
			l.switchEncoding(charset.UTF8)
			l.p += 2
			l.pbeg = l.p
			l.tokp = l.p
			return
		}
	case eof:
		return
	}
	l.pushback(c)
}

// nextc returns the next byte, pulling a new line from the source when the
// current one is exhausted. It returns eof at end of input.
func (l *Lexer) nextc() int {
	l.pushed = false
	if l.p == l.pend {
		if l.eofp {
			return eof
		}
		line, start, ok := l.src.NextLine()
		if !ok {
			l.eofp = true
			l.p = l.pend
			if l.heredocEnd > 0 {
				l.sourceLine = l.heredocEnd
				l.heredocEnd = 0
			}
			return eof
		}
		if l.heredocEnd > 0 {
			l.sourceLine = l.heredocEnd
			l.heredocEnd = 0
		}
		l.sourceLine++
		l.lineCount++
		l.line = line
		l.lineStart = start
		l.pbeg, l.p, l.pend = 0, 0, len(line)
		l.tokp = 0
	}
	c := int(l.line[l.p])
	l.p++
	if c == '\r' {
		switch {
		case l.peek('\n'):
			l.p++
			c = '\n'
		case l.p == l.pend && l.src.Offset() == len(l.src.Bytes()):
			// A lone \r closing the input ends the last line.
			c = '\n'
		default:
			if l.sourceLine > l.lastCRLine {
				l.lastCRLine = l.sourceLine
				l.warning("encountered \\r in middle of line, treated as a mere space")
			}
			c = ' '
		}
	}
	return c
}

// pushback unreads c. At most one byte may be pending at a time.
func (l *Lexer) pushback(c int) {
	if c == eof {
		return
	}
	if l.pushed {
		panic("lexer: pushback called twice without an intervening read")
	}
	l.pushed = true
	l.p--
	if l.p > l.pbeg && l.line[l.p] == '\n' && l.line[l.p-1] == '\r' {
		l.p--
	}
}

// peek reports whether the byte at the cursor is c.
func (l *Lexer) peek(c byte) bool { return l.p < l.pend && l.line[l.p] == c }

// peekAt returns the byte n positions past the cursor, or eof.
func (l *Lexer) peekAt(n int) int {
	if l.p+n < l.pend {
		return int(l.line[l.p+n])
	}
	return eof
}

func (l *Lexer) gotoEOL() { l.p = l.pend }

// wasBOL reports whether the last byte read started the line.
func (l *Lexer) wasBOL() bool { return l.p == l.pbeg+1 }

// markToken records the byte just read as the start of the current token.
func (l *Lexer) markToken() { l.markAt(l.p - 1) }

func (l *Lexer) markAt(p int) {
	if p < 0 {
		p = 0
	}
	l.tokp = p
	l.tokStart = l.lineStart + p
	l.tokLine = l.sourceLine
	l.tokCol = p + 1
}

// tokenText returns the bytes from the token start to the cursor.
func (l *Lexer) tokenText() string { return string(l.line[l.tokp:l.p]) }

func (l *Lexer) setState(s State) { l.state = s }

func (l *Lexer) isBEG() bool {
	return l.state.Is(EXPR_BEG_ANY) || l.state.IsAll(EXPR_ARG|EXPR_LABELED)
}

func (l *Lexer) isARG() bool { return l.state.Is(EXPR_ARG_ANY) }

func (l *Lexer) isEND() bool { return l.state.Is(EXPR_END_ANY) }

func (l *Lexer) isSpaceArg(c int, spaceSeen bool) bool {
	return l.isARG() && spaceSeen && !isSpace(c)
}

func (l *Lexer) isAfterOperator() bool { return l.state.Is(EXPR_FNAME | EXPR_DOT) }

func (l *Lexer) isLabelPossible(commandState bool) bool {
	return (l.state.Is(EXPR_LABEL|EXPR_ENDFN) && !commandState) || l.isARG()
}

func (l *Lexer) isLabelSuffix() bool {
	return l.peek(':') && l.peekAt(1) != ':'
}

func (l *Lexer) warn(line int, msg string) { l.handler.Warn(l.file, line, msg) }

func (l *Lexer) warning(msg string) { l.warn(l.sourceLine, msg) }

func (l *Lexer) argAmbiguous() bool {
	l.warning("Ambiguous first argument; make sure.")
	return true
}

func (l *Lexer) warnBalanced(c int, spaceSeen bool, op, syn string) {
	if !l.lastState.Is(EXPR_CLASS|EXPR_DOT|EXPR_FNAME|EXPR_ENDFN|EXPR_ENDARG) && spaceSeen && !isSpace(c) {
		l.warning("`" + op + "' after local variable or literal is interpreted as binary operator")
		l.warning("even though it seems like " + syn)
	}
}

func (l *Lexer) yylex() token.Type {
	if l.strTerm != nil {
		return l.advanceTerm()
	}

	commandState := l.commandStart
	l.commandStart = false
	tokenSeen := l.tokenSeen
	l.tokenSeen = true
	spaceSeen := false

	for {
		l.lastState = l.state
		c := l.nextc()
		if c == eof {
			l.markAt(l.p)
		} else {
			l.markToken()
		}
		switch c {
		case 0, 0x04, 0x1a, eof:
			return token.EOF

		case ' ', '\t', '\f', '\r', '\v':
			spaceSeen = true
			continue

		case '#', '\n':
			l.tokenSeen = tokenSeen
			if c == '#' {
				if !l.magicComment(l.line[l.p:l.pend]) && l.commentAtTop() {
					l.setFileEncoding(l.line[l.p:l.pend])
				}
				l.gotoEOL()
			}
			if typ, ok := l.newline(); ok {
				return typ
			}
			continue

		case '*':
			return l.star(spaceSeen)
		case '!':
			return l.bang()
		case '=':
			if l.wasBOL() && l.embeddedDocument() {
				continue
			}
			return l.equal()
		case '<':
			return l.lessThan(spaceSeen)
		case '>':
			return l.greaterThan()
		case '"':
			return l.doubleQuote(commandState)
		case '`':
			return l.backtick(commandState)
		case '\'':
			return l.singleQuote(commandState)
		case '?':
			return l.questionMark()
		case '&':
			return l.ampersand(spaceSeen)
		case '|':
			return l.pipe()
		case '+':
			return l.plus(spaceSeen)
		case '-':
			return l.minus(spaceSeen)
		case '.':
			return l.dot()
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return l.parseNumber(c)
		case ')':
			return l.rightParen()
		case ']':
			return l.rightBracket()
		case '}':
			return l.rightCurly()
		case ':':
			return l.colon(spaceSeen)
		case '/':
			return l.slash(spaceSeen)
		case '^':
			return l.caret()
		case ';':
			l.commandStart = true
			l.setState(EXPR_BEG)
			return token.SEMICOLON
		case ',':
			l.setState(EXPR_BEG | EXPR_LABEL)
			return token.COMMA
		case '~':
			return l.tilde()
		case '(':
			return l.leftParen(spaceSeen)
		case '[':
			return l.leftBracket(spaceSeen)
		case '{':
			return l.leftCurly()
		case '\\':
			c = l.nextc()
			if c == '\n' {
				spaceSeen = true
				continue
			}
			l.pushback(c)
			return token.BACKSLASH
		case '%':
			return l.percent(spaceSeen)
		case '$':
			return l.dollar()
		case '@':
			return l.at()
		case '_':
			if l.wasBOL() && l.wholeMatch([]byte("__END__"), false) {
				l.dataOffset = l.src.Offset()
				l.eofp = true
				l.gotoEOL()
				l.tokEnd = l.tokStart
				return token.EOF
			}
			return l.identifier(c, commandState)
		default:
			return l.identifier(c, commandState)
		}
	}
}

// newline handles the end of a line. It reports false when the newline is
// insignificant and lexing should carry on with the next token.
func (l *Lexer) newline() (token.Type, bool) {
	normalArg := l.state.Is(EXPR_BEG|EXPR_CLASS|EXPR_FNAME|EXPR_DOT) && !l.state.Is(EXPR_LABELED)
	if normalArg || l.state.IsAll(EXPR_ARG|EXPR_LABELED) {
		if !normalArg && l.inKwarg {
			l.commandStart = true
			l.setState(EXPR_BEG)
			return token.NEWLINE, true
		}
		return 0, false
	}

	nl := l.lineStart + l.p - 1
	if l.p == l.pend && l.p > 0 && l.line[l.p-1] != '\n' {
		nl = l.lineStart + l.p
	}
	line, col := l.sourceLine, l.p

	// A line starting with .foo or &.foo continues the previous expression.
	for {
		c := l.nextc()
		switch c {
		case ' ', '\t', '\f', '\r', '\v':
			continue
		case '#':
			l.pushback(c)
			return 0, false
		case '&', '.':
			if l.peek('.') == (c == '&') {
				l.pushback(c)
				return 0, false
			}
		case eof:
			l.markAt(l.p)
			return token.EOF, true
		}
		l.pushback(c)
		break
	}

	l.tokStart, l.tokLine, l.tokCol = nl, line, col
	l.tokEnd = nl + 1
	if nl >= len(l.src.Bytes()) {
		l.tokEnd = nl
	}
	l.commandStart = true
	l.setState(EXPR_BEG)
	return token.NEWLINE, true
}

// embeddedDocument skips an =begin ... =end block. It reports false when the
// line does not start one.
func (l *Lexer) embeddedDocument() bool {
	if !l.matchAt(l.p, "begin") || !isSpace(l.peekAt(5)) {
		return false
	}
	start := l.sourceLine
	for {
		l.gotoEOL()
		c := l.nextc()
		if c == eof {
			l.compileErrorAt(start, EmbeddedDocumentEOF, "embedded document meets end of file")
		}
		if c != '=' {
			continue
		}
		if l.matchAt(l.p, "end") && (l.p+3 == l.pend || isSpace(l.peekAt(3))) {
			break
		}
	}
	l.gotoEOL()
	return true
}

func (l *Lexer) matchAt(p int, s string) bool {
	return p+len(s) <= l.pend && string(l.line[p:p+len(s)]) == s
}

// wholeMatch reports whether the current line consists of marker alone,
// optionally preceded by whitespace.
func (l *Lexer) wholeMatch(marker []byte, indent bool) bool {
	_, ok := l.matchMarker(marker, indent)
	return ok
}

func (l *Lexer) matchMarker(marker []byte, indent bool) (int, bool) {
	p := l.pbeg
	if indent {
		for p < l.pend && isBlank(int(l.line[p])) {
			p++
		}
	}
	n := l.pend - (p + len(marker))
	if n < 0 {
		return p, false
	}
	if n > 0 && l.line[p+len(marker)] != '\n' {
		if l.line[p+len(marker)] != '\r' {
			return p, false
		}
		if n == 1 || l.line[p+len(marker)+1] != '\n' {
			return p, false
		}
	}
	return p, string(l.line[p:p+len(marker)]) == string(marker)
}

// commentAtTop reports whether the comment being scanned is the first
// non-blank content of the file, allowing for a shebang line.
func (l *Lexer) commentAtTop() bool {
	for i := l.pbeg; i < l.p-1; i++ {
		if !isSpace(int(l.line[i])) {
			return false
		}
	}
	if l.lineCount != 1 && (!l.hasShebang || l.lineCount != 2) {
		return false
	}
	return true
}

// switchEncoding changes the working encoding of the rest of the input.
func (l *Lexer) switchEncoding(enc *charset.Encoding) {
	l.log.Debug("source encoding changed", "file", l.file, "from", l.enc.Name(), "to", enc.Name())
	l.enc = enc
	l.src.SetEncoding(enc)
}

// Accessors used by the parser.

// State returns the current lexer state.
func (l *Lexer) State() State { return l.state }

// SetState replaces the lexer state.
func (l *Lexer) SetState(s State) { l.state = s }

// StrTerm returns the active string term, or nil.
func (l *Lexer) StrTerm() StrTerm { return l.strTerm }

// SetStrTerm installs or clears the active string term. The parser uses it
// to suspend a literal while it lexes an interpolated expression.
func (l *Lexer) SetStrTerm(t StrTerm) { l.strTerm = t }

// ParenNest returns the parenthesis nesting depth.
func (l *Lexer) ParenNest() int { return l.parenNest }

// IncrementParenNest bumps the parenthesis depth and returns the new value.
func (l *Lexer) IncrementParenNest() int {
	l.parenNest++
	return l.parenNest
}

// BraceNest returns the brace nesting depth.
func (l *Lexer) BraceNest() int { return l.braceNest }

// SetBraceNest sets the brace nesting depth.
func (l *Lexer) SetBraceNest(n int) { l.braceNest = n }

// LeftParenBegin returns the paren depth at which a lambda body may open.
func (l *Lexer) LeftParenBegin() int { return l.leftParenBegin }

// SetLeftParenBegin records the paren depth of a pending lambda.
func (l *Lexer) SetLeftParenBegin(n int) { l.leftParenBegin = n }

// Cond returns the loop-condition stack.
func (l *Lexer) Cond() *StackState { return &l.cond }

// CmdArg returns the command-argument stack.
func (l *Lexer) CmdArg() *StackState { return &l.cmdArg }

// SetInKwarg tells the lexer whether it is inside keyword arguments.
func (l *Lexer) SetInKwarg(b bool) { l.inKwarg = b }

// SetCommandStart marks the next token as the start of a command.
func (l *Lexer) SetCommandStart(b bool) { l.commandStart = b }

// HeredocIndent returns the squiggly heredoc indentation seen so far.
func (l *Lexer) HeredocIndent() int { return l.heredocIndent }

// SetHeredocIndent sets the squiggly heredoc indentation.
func (l *Lexer) SetHeredocIndent(n int) { l.heredocIndent = n }

// SetHeredocLineIndent sets the indentation counter of the current line.
func (l *Lexer) SetHeredocLineIndent(n int) { l.heredocLineIndent = n }

// Encoding returns the current source encoding.
func (l *Lexer) Encoding() *charset.Encoding { return l.enc }

// EncodingLocked reports whether a real token has been produced, after which
// magic comments no longer change anything.
func (l *Lexer) EncodingLocked() bool { return l.tokenSeen }

// CompileOptions returns the settings made by magic comments.
func (l *Lexer) CompileOptions() CompileOptions {
	return CompileOptions{
		FrozenStringLiteral: l.frozenStringLiteral,
		Primitives:          l.primitives,
		WarnIndent:          l.warnIndent,
	}
}

// Line returns the current source line number.
func (l *Lexer) Line() int { return l.sourceLine }

// File returns the file name used in diagnostics.
func (l *Lexer) File() string { return l.file }

// DataOffset returns the offset just past an __END__ line, or -1.
func (l *Lexer) DataOffset() int { return l.dataOffset }

// Err returns the fatal error that stopped the lexer, if any.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

func isSpace(c int) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}

func isBlank(c int) bool { return c == ' ' || c == '\t' }

func isDigit(c int) bool { return c >= '0' && c <= '9' }

func isHexDigit(c int) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOctalDigit(c int) bool { return c >= '0' && c <= '7' }

func isAlpha(c int) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isAlnum(c int) bool { return isAlpha(c) || isDigit(c) }

func isASCII(c int) bool { return c >= 0 && c < 0x80 }

// isIdentChar reports whether c can appear in an identifier. Every non-ASCII
// byte counts; multibyte characters are validated separately.
func isIdentChar(c int) bool {
	return c != eof && (isAlnum(c) || c == '_' || !isASCII(c))
}
