package lexer

import (
	"errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/alexisbouchez/rubylex/ast"
	"github.com/alexisbouchez/rubylex/token"
)

// Numeric literal suffixes.
const (
	suffixR   = 1 << 0
	suffixI   = 1 << 1
	suffixAll = suffixR | suffixI
)

// parseNumber scans a numeric literal whose first byte c has been read. A
// leading '+' is dropped from the value but kept in the token literal.
func (l *Lexer) parseNumber(c int) token.Type {
	l.setState(EXPR_END)
	var num strings.Builder
	if c == '+' {
		c = l.nextc()
	}

	if c == '0' {
		c = l.nextc()
		switch c {
		case 'x', 'X':
			return l.radixNumber(16, isHexDigit, EmptyHexNumber, "Hexadecimal number without hex-digits.")
		case 'b', 'B':
			return l.radixNumber(2, func(c int) bool { return c == '0' || c == '1' }, EmptyBinaryNumber, "Binary number without digits.")
		case 'd', 'D':
			return l.radixNumber(10, isDigit, EmptyDecimalNumber, "Decimal number without digits.")
		case 'o', 'O', '_', '0', '1', '2', '3', '4', '5', '6', '7':
			if c == 'o' || c == 'O' {
				c = l.nextc()
			}
			return l.octalNumber(c)
		case '8', '9':
			l.compileError(BadOctalDigit, "Illegal octal digit.")
		case '.', 'e', 'E':
			num.WriteByte('0')
		default:
			l.pushback(c)
			return l.integerToken("0", 10, l.numberLiteralSuffix(suffixAll))
		}
	}

	seenPoint, seenE := false, false
	nondigit := 0
	for ; ; c = l.nextc() {
		switch {
		case isDigit(c):
			nondigit = 0
			num.WriteByte(byte(c))

		case c == '.':
			if nondigit != 0 {
				l.pushback(c)
				l.trailingNondigit(nondigit)
			}
			if seenPoint || seenE || !isDigit(l.peekAt(0)) {
				l.pushback(c)
				return l.numberToken(num.String(), seenE, seenPoint, nondigit)
			}
			num.WriteByte('.')
			num.WriteByte(byte(l.nextc()))
			seenPoint = true

		case c == 'e' || c == 'E':
			if nondigit != 0 {
				l.trailingNondigit(nondigit)
			}
			if seenE {
				l.pushback(c)
				return l.numberToken(num.String(), seenE, seenPoint, nondigit)
			}
			num.WriteByte(byte(c))
			seenE = true
			nondigit = c
			if c = l.nextc(); c == '-' || c == '+' {
				num.WriteByte(byte(c))
				nondigit = c
			} else {
				l.pushback(c)
			}

		case c == '_':
			if nondigit != 0 {
				l.trailingNondigit(nondigit)
			}
			nondigit = c

		default:
			l.pushback(c)
			return l.numberToken(num.String(), seenE, seenPoint, nondigit)
		}
	}
}

// radixNumber scans the digits of a 0x, 0b or 0d literal.
func (l *Lexer) radixNumber(base int, valid func(int) bool, emptyPID PID, emptyMsg string) token.Type {
	var digits strings.Builder
	nondigit := 0
	c := l.nextc()
	if valid(c) {
		for ; ; c = l.nextc() {
			if c == '_' {
				if nondigit != 0 {
					break
				}
				nondigit = c
			} else if valid(c) {
				nondigit = 0
				digits.WriteByte(byte(c))
			} else {
				break
			}
		}
	}
	l.pushback(c)
	if digits.Len() == 0 {
		l.compileError(emptyPID, "%s", emptyMsg)
	}
	if nondigit != 0 {
		l.compileError(TrailingUnderscoreInNumber, "Trailing '_' in number.")
	}
	return l.integerToken(digits.String(), base, l.numberLiteralSuffix(suffixAll))
}

func (l *Lexer) octalNumber(c int) token.Type {
	var digits strings.Builder
	nondigit := 0
	for ; ; c = l.nextc() {
		if c == '_' {
			if nondigit != 0 {
				break
			}
			nondigit = c
			continue
		}
		if !isDigit(c) {
			break
		}
		if !isOctalDigit(c) {
			l.compileError(BadOctalDigit, "Illegal octal digit.")
		}
		nondigit = 0
		digits.WriteByte(byte(c))
	}
	l.pushback(c)
	if nondigit != 0 {
		l.compileError(TrailingUnderscoreInNumber, "Trailing '_' in number.")
	}
	if digits.Len() == 0 {
		l.compileError(EmptyOctalNumber, "Octal number without digits.")
	}
	return l.integerToken(digits.String(), 8, l.numberLiteralSuffix(suffixAll))
}

func (l *Lexer) trailingNondigit(nondigit int) {
	if nondigit == '_' {
		l.compileError(TrailingUnderscoreInNumber, "Trailing '_' in number.")
	}
	l.compileError(TrailingUnderscoreInNumber, "trailing '%c' in number", nondigit)
}

func (l *Lexer) numberToken(num string, seenE, seenPoint bool, nondigit int) token.Type {
	if nondigit != 0 {
		l.trailingNondigit(nondigit)
	}
	if seenE || seenPoint {
		mask := suffixAll
		if seenE {
			mask = suffixI
		}
		return l.floatToken(num, l.numberLiteralSuffix(mask))
	}
	return l.integerToken(num, 10, l.numberLiteralSuffix(suffixAll))
}

// numberLiteralSuffix consumes the r and i suffixes allowed by mask. When the
// literal runs straight into a word, nothing is consumed and 0 is returned.
func (l *Lexer) numberLiteralSuffix(mask int) int {
	result := 0
	lastp := l.p
	for {
		c := l.nextc()
		if c == eof {
			break
		}
		if mask&suffixI != 0 && c == 'i' {
			result |= suffixI
			mask &^= suffixI | suffixR
			continue
		}
		if mask&suffixR != 0 && c == 'r' {
			result |= suffixR
			mask &^= suffixR
			continue
		}
		if !isASCII(c) || isAlpha(c) || c == '_' {
			l.p = lastp
			return 0
		}
		if c == '.' && isDigit(l.peekAt(0)) {
			l.compileError(FractionAfterNumeric, "unexpected fraction part after numeric literal")
		}
		l.pushback(c)
		break
	}
	return result
}

func (l *Lexer) integerToken(digits string, base int, suffix int) token.Type {
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		n = new(big.Int)
	}
	var node ast.Node = &ast.IntegerNode{Value: n}
	typ := token.INTEGER
	if suffix&suffixR != 0 {
		node = &ast.RationalNode{Value: new(big.Rat).SetInt(n)}
		typ = token.RATIONAL
	}
	return l.numericValue(typ, node, suffix)
}

func (l *Lexer) floatToken(num string, suffix int) token.Type {
	if suffix&suffixR != 0 {
		r, ok := new(big.Rat).SetString(num)
		if !ok {
			r = new(big.Rat)
		}
		return l.numericValue(token.RATIONAL, &ast.RationalNode{Value: r}, suffix)
	}
	f, err := strconv.ParseFloat(num, 64)
	if errors.Is(err, strconv.ErrRange) {
		// ParseFloat has already clamped to ±Inf.
		l.warning("Float " + num + " out of range.")
	}
	return l.numericValue(token.FLOAT, &ast.FloatNode{Value: f}, suffix)
}

func (l *Lexer) numericValue(typ token.Type, node ast.Node, suffix int) token.Type {
	if suffix&suffixI != 0 {
		l.value = &ast.ComplexNode{Imaginary: node}
		return token.IMAGINARY
	}
	l.value = node
	return typ
}
