package lexer

import "github.com/alexisbouchez/rubylex/token"

// tokaddMBChar consumes the rest of the character whose first byte c was
// just read, checking it against the source encoding.
func (l *Lexer) tokaddMBChar(c int) {
	if isASCII(c) {
		return
	}
	n := l.enc.CharLen(l.line[l.p-1 : l.pend])
	if n < 0 {
		l.compileError(InvalidMultibyteChar, "invalid multibyte char (%s)", l.enc.Name())
	}
	l.p += n - 1
}

// tokaddIdent consumes identifier characters starting with c and leaves the
// cursor on the first byte after them.
func (l *Lexer) tokaddIdent(c int) {
	for {
		l.tokaddMBChar(c)
		c = l.nextc()
		if !isIdentChar(c) {
			break
		}
	}
	l.pushback(c)
}

func (l *Lexer) identifier(c int, commandState bool) token.Type {
	if !isIdentChar(c) {
		l.compileError(CharacterBad, "Invalid char `\\%03o' ('%c') in expression", c&0xff, c)
	}

	for {
		l.tokaddMBChar(c)
		c = l.nextc()
		if !isIdentChar(c) {
			break
		}
	}

	// foo! and foo? are method names, but not when followed by '='.
	predicate := false
	if (c == '!' || c == '?') && !l.peek('=') {
		predicate = true
	} else {
		l.pushback(c)
	}

	l.lastState = l.state
	var typ token.Type
	if predicate {
		typ = token.METHOD_NAME
	} else {
		if l.state.Is(EXPR_FNAME) && l.peek('=') {
			// Setter method name such as foo=, but not foo== or foo=~.
			c2 := l.peekAt(1)
			if c2 != '~' && c2 != '>' && (c2 != '=' || l.peekAt(2) == '>') {
				l.nextc()
				typ = token.IDENT
			}
		}
		if typ == 0 {
			if l.enc.IsUpper(l.line[l.tokp:l.p]) {
				typ = token.CONSTANT
			} else {
				typ = token.IDENT
			}
		}
	}
	name := l.tokenText()
	l.value = name

	if l.isLabelPossible(commandState) && l.isLabelSuffix() {
		l.setState(EXPR_ARG | EXPR_LABELED)
		l.nextc()
		return token.LABEL
	}

	if l.state != EXPR_DOT {
		if kw, ok := keywords[name]; ok {
			prev := l.state
			l.setState(kw.state)
			if prev.Is(EXPR_FNAME) {
				return kw.full
			}
			if l.state.Is(EXPR_BEG) {
				l.commandStart = true
			}
			if kw.full == token.KEYWORD_DO {
				return l.doKeyword(prev)
			}
			if prev.Is(EXPR_BEG | EXPR_LABELED) {
				return kw.full
			}
			if kw.full != kw.modifier {
				l.setState(EXPR_BEG | EXPR_LABEL)
			}
			return kw.modifier
		}
	}

	switch {
	case l.state.Is(EXPR_BEG_ANY | EXPR_ARG_ANY | EXPR_DOT):
		if commandState {
			l.setState(EXPR_CMDARG)
		} else {
			l.setState(EXPR_ARG)
		}
	case l.state == EXPR_FNAME:
		l.setState(EXPR_ENDFN)
	default:
		l.setState(EXPR_END)
	}
	return l.identifierToken(typ, name)
}

// identifierToken finishes an identifier-like token. A plain identifier that
// names a known local variable behaves like a value.
func (l *Lexer) identifierToken(typ token.Type, name string) token.Type {
	if typ == token.IDENT && !l.lastState.Is(EXPR_DOT|EXPR_FNAME) &&
		l.scope != nil && l.scope.IsLocalDefined(name) {
		l.setState(EXPR_END | EXPR_LABEL)
	}
	return typ
}

func (l *Lexer) doKeyword(prev State) token.Type {
	if l.leftParenBegin > 0 && l.leftParenBegin == l.parenNest {
		l.leftParenBegin = 0
		l.parenNest--
		return token.KEYWORD_DO_LAMBDA
	}
	if l.cond.IsInState() {
		return token.KEYWORD_DO_COND
	}
	if l.cmdArg.IsInState() && !prev.Is(EXPR_CMDARG) {
		return token.KEYWORD_DO_BLOCK
	}
	if prev.Is(EXPR_BEG | EXPR_ENDARG) {
		return token.KEYWORD_DO_BLOCK
	}
	return token.KEYWORD_DO
}
