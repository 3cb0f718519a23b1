package lexer

import (
	"strconv"

	"github.com/alexisbouchez/rubylex/ast"
	"github.com/alexisbouchez/rubylex/charset"
	"github.com/alexisbouchez/rubylex/token"
)

// maxNthRef is the largest $N that still names a match group.
const maxNthRef = 1<<30 - 1

// opAssign returns an OP_ASGN token whose value is the operator without '='.
func (l *Lexer) opAssign(op string) token.Type {
	l.setState(EXPR_BEG)
	l.value = op
	return token.OP_ASGN
}

func (l *Lexer) afterOperatorState() State {
	if l.isAfterOperator() {
		return EXPR_ARG
	}
	return EXPR_BEG
}

func (l *Lexer) ampersand(spaceSeen bool) token.Type {
	c := l.nextc()
	switch c {
	case '&':
		l.setState(EXPR_BEG)
		if c = l.nextc(); c == '=' {
			return l.opAssign("&&")
		}
		l.pushback(c)
		return token.AMPERSAND_AMPERSAND
	case '=':
		return l.opAssign("&")
	case '.':
		l.setState(EXPR_DOT)
		return token.AMPERSAND_DOT
	}
	l.pushback(c)

	var typ token.Type
	switch {
	case l.isSpaceArg(c, spaceSeen):
		l.warning("`&' interpreted as argument prefix")
		typ = token.UAMPERSAND
	case l.isBEG():
		typ = token.UAMPERSAND
	default:
		l.warnBalanced(c, spaceSeen, "&", "argument prefix")
		typ = token.AMPERSAND
	}
	l.setState(l.afterOperatorState())
	return typ
}

func (l *Lexer) star(spaceSeen bool) token.Type {
	c := l.nextc()
	var typ token.Type
	switch c {
	case '*':
		if c = l.nextc(); c == '=' {
			return l.opAssign("**")
		}
		l.pushback(c)
		switch {
		case l.isSpaceArg(c, spaceSeen):
			l.warning("`**' interpreted as argument prefix")
			typ = token.USTAR_STAR
		case l.isBEG():
			typ = token.USTAR_STAR
		default:
			l.warnBalanced(c, spaceSeen, "**", "argument prefix")
			typ = token.STAR_STAR
		}
	case '=':
		return l.opAssign("*")
	default:
		l.pushback(c)
		switch {
		case l.isSpaceArg(c, spaceSeen):
			l.warning("`*' interpreted as argument prefix")
			typ = token.USTAR
		case l.isBEG():
			typ = token.USTAR
		default:
			l.warnBalanced(c, spaceSeen, "*", "argument prefix")
			typ = token.STAR
		}
	}
	l.setState(l.afterOperatorState())
	return typ
}

func (l *Lexer) bang() token.Type {
	c := l.nextc()
	if l.isAfterOperator() {
		l.setState(EXPR_ARG)
		if c == '@' {
			return token.BANG
		}
	} else {
		l.setState(EXPR_BEG)
	}
	switch c {
	case '=':
		return token.BANG_EQUAL
	case '~':
		return token.BANG_TILDE
	}
	l.pushback(c)
	return token.BANG
}

func (l *Lexer) caret() token.Type {
	c := l.nextc()
	if c == '=' {
		return l.opAssign("^")
	}
	l.setState(l.afterOperatorState())
	l.pushback(c)
	return token.CARET
}

func (l *Lexer) colon(spaceSeen bool) token.Type {
	c := l.nextc()
	if c == ':' {
		if l.isBEG() || l.state.Is(EXPR_CLASS) || (l.isARG() && spaceSeen) {
			l.setState(EXPR_BEG)
			return token.UCOLON_COLON
		}
		l.setState(EXPR_DOT)
		return token.COLON_COLON
	}
	if l.isEND() || isSpace(c) || c == '#' {
		l.pushback(c)
		l.setState(EXPR_BEG)
		l.warnBalanced(c, spaceSeen, ":", "symbol literal")
		return token.COLON
	}
	switch c {
	case '\'':
		l.strTerm = newStringTerm(strSsym, 0, c, l.sourceLine)
	case '"':
		l.strTerm = newStringTerm(strDsym, 0, c, l.sourceLine)
	default:
		l.pushback(c)
	}
	l.setState(EXPR_FNAME)
	return token.SYMBOL_BEGIN
}

func (l *Lexer) dollar() token.Type {
	l.setState(EXPR_END)
	c := l.nextc()
	switch {
	case c == '_' && isIdentChar(l.peekAt(0)):
		l.tokaddIdent(l.nextc())
		l.lastState = l.state
		l.value = l.tokenText()
		return token.GVAR

	case c == '_' || isSpecialGvar(c):
		l.value = l.tokenText()
		return token.GVAR

	case c == '-':
		if !isIdentChar(l.peekAt(0)) {
			l.pushback(c)
			l.value = "$"
			return token.DOLLAR
		}
		l.tokaddMBChar(l.nextc())
		l.value = l.tokenText()
		return token.GVAR

	case c == '&' || c == '`' || c == '\'' || c == '+':
		if l.lastState.Is(EXPR_FNAME) {
			l.value = l.tokenText()
			return token.GVAR
		}
		l.value = &ast.BackRefNode{Kind: byte(c)}
		return token.BACK_REF

	case c >= '1' && c <= '9':
		for isDigit(c) {
			c = l.nextc()
		}
		l.pushback(c)
		text := l.tokenText()
		if l.lastState.Is(EXPR_FNAME) {
			l.value = text
			return token.GVAR
		}
		n, err := strconv.Atoi(text[1:])
		if err != nil || n > maxNthRef {
			l.warning("`" + text + "' is too big for a number variable, always nil")
			n = 0
		}
		l.value = &ast.NthRefNode{N: n}
		return token.NTH_REF

	case c == '0':
		l.value = "$0"
		return l.identifierToken(token.GVAR, "$0")
	}

	if !isIdentChar(c) {
		if c == eof || isSpace(c) {
			l.compileError(GvarBadName, "`$' without identifiers is not allowed as a global variable name")
		}
		l.pushback(c)
		l.compileError(GvarBadName, "`$%c' is not allowed as a global variable name", c)
	}
	l.lastState = l.state
	l.setState(EXPR_END)
	l.tokaddIdent(c)
	name := l.tokenText()
	l.value = name
	return l.identifierToken(token.GVAR, name)
}

func isSpecialGvar(c int) bool {
	switch c {
	case '~', '*', '$', '?', '!', '@', '/', '\\', ';', ',', '.', '=', ':', '<', '>', '"':
		return true
	}
	return false
}

func (l *Lexer) at() token.Type {
	c := l.nextc()
	typ := token.IVAR
	if c == '@' {
		c = l.nextc()
		typ = token.CVAR
	}
	if c == eof || isSpace(c) {
		if typ == token.IVAR {
			l.compileError(IvarBadName, "`@' without identifiers is not allowed as an instance variable name")
		}
		l.compileError(CvarBadName, "`@@' without identifiers is not allowed as a class variable name")
	}
	if isDigit(c) || !isIdentChar(c) {
		l.pushback(c)
		if typ == token.IVAR {
			l.compileError(IvarBadName, "`@%c' is not allowed as an instance variable name", c)
		}
		l.compileError(CvarBadName, "`@@%c' is not allowed as a class variable name", c)
	}
	l.tokaddIdent(c)
	l.lastState = l.state
	l.setState(EXPR_END)
	name := l.tokenText()
	l.value = name
	return l.identifierToken(typ, name)
}

func (l *Lexer) backtick(commandState bool) token.Type {
	if l.state.Is(EXPR_FNAME) {
		l.setState(EXPR_ENDFN)
		return token.BACKTICK
	}
	if l.state.Is(EXPR_DOT) {
		if commandState {
			l.setState(EXPR_CMDARG)
		} else {
			l.setState(EXPR_ARG)
		}
		return token.BACKTICK
	}
	l.strTerm = newStringTerm(strXquote, 0, '`', l.sourceLine)
	return token.XSTRING_BEGIN
}

func (l *Lexer) dot() token.Type {
	isBeg := l.isBEG()
	l.setState(EXPR_BEG)
	c := l.nextc()
	if c == '.' {
		if c = l.nextc(); c == '.' {
			if isBeg {
				return token.BDOT3
			}
			return token.DOT_DOT_DOT
		}
		l.pushback(c)
		if isBeg {
			return token.BDOT2
		}
		return token.DOT_DOT
	}
	l.pushback(c)
	if isDigit(c) {
		l.compileError(FloatMissingZero, "no .<digit> floating literal anymore; put 0 before dot")
	}
	l.setState(EXPR_DOT)
	return token.DOT
}

func (l *Lexer) labelFlag(commandState bool) int {
	if l.isLabelPossible(commandState) {
		return strLabel
	}
	return 0
}

func (l *Lexer) doubleQuote(commandState bool) token.Type {
	l.strTerm = newStringTerm(strDquote|l.labelFlag(commandState), 0, '"', l.sourceLine)
	return token.STRING_BEGIN
}

func (l *Lexer) singleQuote(commandState bool) token.Type {
	l.strTerm = newStringTerm(strSquote|l.labelFlag(commandState), 0, '\'', l.sourceLine)
	return token.STRING_BEGIN
}

func (l *Lexer) equal() token.Type {
	l.setState(l.afterOperatorState())
	c := l.nextc()
	switch c {
	case '=':
		if c = l.nextc(); c == '=' {
			return token.EQUAL_EQUAL_EQUAL
		}
		l.pushback(c)
		return token.EQUAL_EQUAL
	case '~':
		return token.EQUAL_TILDE
	case '>':
		return token.EQUAL_GREATER
	}
	l.pushback(c)
	return token.EQUAL
}

func (l *Lexer) greaterThan() token.Type {
	l.setState(l.afterOperatorState())
	c := l.nextc()
	switch c {
	case '=':
		return token.GREATER_EQUAL
	case '>':
		if c = l.nextc(); c == '=' {
			return l.opAssign(">>")
		}
		l.pushback(c)
		return token.GREATER_GREATER
	}
	l.pushback(c)
	return token.GREATER
}

func (l *Lexer) lessThan(spaceSeen bool) token.Type {
	l.lastState = l.state
	c := l.nextc()
	if c == '<' && !l.state.Is(EXPR_DOT|EXPR_CLASS) && !l.isEND() &&
		(!l.isARG() || l.state.Is(EXPR_LABELED) || spaceSeen) {
		if typ := l.hereDocumentIdentifier(); typ != 0 {
			return typ
		}
	}

	if l.isAfterOperator() {
		l.setState(EXPR_ARG)
	} else {
		if l.state.Is(EXPR_CLASS) {
			l.commandStart = true
		}
		l.setState(EXPR_BEG)
	}

	switch c {
	case '=':
		if c = l.nextc(); c == '>' {
			return token.LESS_EQUAL_GREATER
		}
		l.pushback(c)
		return token.LESS_EQUAL
	case '<':
		if c = l.nextc(); c == '=' {
			return l.opAssign("<<")
		}
		l.pushback(c)
		l.warnBalanced(c, spaceSeen, "<<", "here document")
		return token.LESS_LESS
	}
	l.pushback(c)
	return token.LESS
}

func (l *Lexer) leftBracket(spaceSeen bool) token.Type {
	l.parenNest++
	typ := token.LBRACKET
	if l.isAfterOperator() {
		l.setState(EXPR_ARG)
		c := l.nextc()
		if c == ']' {
			if l.peek('=') {
				l.nextc()
				return token.BRACKET_LEFT_RIGHT_EQUAL
			}
			return token.BRACKET_LEFT_RIGHT
		}
		l.pushback(c)
		l.setState(l.state | EXPR_LABEL)
		return token.LBRACKET
	} else if l.isBEG() || (l.isARG() && (spaceSeen || l.state.Is(EXPR_LABELED))) {
		typ = token.LBRACKET_ARRAY
	}
	l.setState(EXPR_BEG | EXPR_LABEL)
	l.cond.Stop()
	l.cmdArg.Stop()
	return typ
}

func (l *Lexer) leftCurly() token.Type {
	l.braceNest++
	if l.leftParenBegin > 0 && l.leftParenBegin == l.parenNest {
		l.setState(EXPR_BEG)
		l.leftParenBegin = 0
		l.parenNest--
		l.cond.Stop()
		l.cmdArg.Stop()
		return token.LAMBDA_LBRACE
	}

	var typ token.Type
	switch {
	case l.state.Is(EXPR_LABELED):
		typ = token.LBRACE
	case l.state.Is(EXPR_ARG_ANY | EXPR_END | EXPR_ENDFN):
		typ = token.LBRACE_BLOCK
	case l.state.Is(EXPR_ENDARG):
		typ = token.LBRACE_ARG
	default:
		typ = token.LBRACE
	}

	l.cond.Stop()
	l.cmdArg.Stop()
	l.setState(EXPR_BEG)
	if typ != token.LBRACE_ARG {
		l.setState(l.state | EXPR_LABEL)
	}
	if typ != token.LBRACE {
		l.commandStart = true
	}
	return typ
}

func (l *Lexer) leftParen(spaceSeen bool) token.Type {
	var typ token.Type
	switch {
	case l.isBEG():
		typ = token.LPAREN_BEG
	case l.isSpaceArg('(', spaceSeen):
		typ = token.LPAREN_ARG
	default:
		typ = token.LPAREN
	}
	l.parenNest++
	l.cond.Stop()
	l.cmdArg.Stop()
	l.setState(EXPR_BEG | EXPR_LABEL)
	return typ
}

func (l *Lexer) minus(spaceSeen bool) token.Type {
	c := l.nextc()
	if l.isAfterOperator() {
		l.setState(EXPR_ARG)
		if c == '@' {
			return token.UMINUS
		}
		l.pushback(c)
		return token.MINUS
	}
	switch c {
	case '=':
		return l.opAssign("-")
	case '>':
		l.setState(EXPR_ENDFN)
		return token.MINUS_GREATER
	}
	if l.isBEG() || (l.isSpaceArg(c, spaceSeen) && l.argAmbiguous()) {
		l.setState(EXPR_BEG)
		l.pushback(c)
		if isDigit(c) {
			return token.UMINUS_NUM
		}
		return token.UMINUS
	}
	l.setState(EXPR_BEG)
	l.pushback(c)
	l.warnBalanced(c, spaceSeen, "-", "unary operator")
	return token.MINUS
}

func (l *Lexer) plus(spaceSeen bool) token.Type {
	c := l.nextc()
	if l.isAfterOperator() {
		l.setState(EXPR_ARG)
		if c == '@' {
			return token.UPLUS
		}
		l.pushback(c)
		return token.PLUS
	}
	if c == '=' {
		return l.opAssign("+")
	}
	if l.isBEG() || (l.isSpaceArg(c, spaceSeen) && l.argAmbiguous()) {
		l.setState(EXPR_BEG)
		l.pushback(c)
		if isDigit(c) {
			return l.parseNumber('+')
		}
		return token.UPLUS
	}
	l.setState(EXPR_BEG)
	l.pushback(c)
	l.warnBalanced(c, spaceSeen, "+", "unary operator")
	return token.PLUS
}

func (l *Lexer) percent(spaceSeen bool) token.Type {
	if l.isBEG() {
		return l.parseQuote(l.nextc())
	}
	c := l.nextc()
	if c == '=' {
		return l.opAssign("%")
	}
	if l.isSpaceArg(c, spaceSeen) {
		return l.parseQuote(c)
	}
	l.setState(l.afterOperatorState())
	l.pushback(c)
	l.warnBalanced(c, spaceSeen, "%", "string literal")
	return token.PERCENT
}

func (l *Lexer) pipe() token.Type {
	c := l.nextc()
	switch c {
	case '|':
		l.setState(EXPR_BEG)
		if c = l.nextc(); c == '=' {
			return l.opAssign("||")
		}
		l.pushback(c)
		return token.PIPE_PIPE
	case '=':
		return l.opAssign("|")
	}
	if l.isAfterOperator() {
		l.setState(EXPR_ARG)
	} else {
		l.setState(EXPR_BEG | EXPR_LABEL)
	}
	l.pushback(c)
	return token.PIPE
}

var charSyntaxNames = map[int]byte{' ': 's', '\n': 'n', '\t': 't', '\r': 'r', '\f': 'f'}

func (l *Lexer) questionMark() token.Type {
	if l.isEND() {
		l.setState(EXPR_VALUE)
		return token.QUESTION
	}
	c := l.nextc()
	if c == eof {
		l.compileError(IncompleteCharSyntax, "incomplete character syntax")
	}
	if isSpace(c) {
		if !l.isARG() {
			if c2, ok := charSyntaxNames[c]; ok {
				l.warning("invalid character syntax; use ?\\" + string(c2))
			}
		}
		l.pushback(c)
		l.setState(EXPR_VALUE)
		return token.QUESTION
	}

	buf := newStrBuf(l.enc)
	switch {
	case !isASCII(c):
		l.mbcharInto(buf, c)
	case isIdentChar(c) && !l.peek('\n') && isIdentChar(l.peekAt(0)):
		l.pushback(c)
		l.setState(EXPR_VALUE)
		return token.QUESTION
	case c == '\\':
		if l.peek('u') {
			l.nextc()
			l.readUTFEscape(buf)
		} else {
			c = l.readEscape()
			buf.appendByte(byte(c))
			if c >= 0x80 {
				buf.enc = charset.Binary
			}
		}
	default:
		buf.appendByte(byte(c))
	}
	l.setState(EXPR_END)
	l.value = l.createStr(buf, 0)
	return token.CHAR
}

func (l *Lexer) rightBracket() token.Type {
	l.parenNest--
	l.cond.Restart()
	l.cmdArg.Restart()
	l.setState(EXPR_END)
	return token.RBRACKET
}

func (l *Lexer) rightCurly() token.Type {
	l.cond.Restart()
	l.cmdArg.Restart()
	l.setState(EXPR_END)
	typ := token.RBRACE
	if l.braceNest == 0 {
		typ = token.EMBEXPR_END
	}
	l.braceNest--
	return typ
}

func (l *Lexer) rightParen() token.Type {
	l.parenNest--
	l.cond.Restart()
	l.cmdArg.Restart()
	l.setState(EXPR_ENDFN)
	return token.RPAREN
}

func (l *Lexer) slash(spaceSeen bool) token.Type {
	if l.isBEG() {
		l.strTerm = newStringTerm(strRegexp, 0, '/', l.sourceLine)
		return token.REGEXP_BEGIN
	}
	c := l.nextc()
	if c == '=' {
		return l.opAssign("/")
	}
	l.pushback(c)
	if l.isSpaceArg(c, spaceSeen) {
		l.argAmbiguous()
		l.strTerm = newStringTerm(strRegexp, 0, '/', l.sourceLine)
		return token.REGEXP_BEGIN
	}
	l.setState(l.afterOperatorState())
	l.warnBalanced(c, spaceSeen, "/", "regexp literal")
	return token.SLASH
}

func (l *Lexer) tilde() token.Type {
	if l.isAfterOperator() {
		if c := l.nextc(); c != '@' {
			l.pushback(c)
		}
		l.setState(EXPR_ARG)
	} else {
		l.setState(EXPR_BEG)
	}
	return token.TILDE
}
