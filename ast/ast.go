// Package ast defines the literal nodes the lexer attaches to tokens as
// semantic values. A parser builds its tree around these.
package ast

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/alexisbouchez/rubylex/charset"
)

// Node represents a literal value carried by a token.
type Node interface {
	String() string
	literalNode()
}

// StrNode is the content of a string-like literal segment.
type StrNode struct {
	Value    []byte
	Encoding *charset.Encoding
	Frozen   bool
}

func (s *StrNode) literalNode() {}
func (s *StrNode) String() string {
	return strconv.Quote(string(s.Value))
}

// IntegerNode is an integer literal of arbitrary size.
type IntegerNode struct {
	Value *big.Int
}

func (i *IntegerNode) literalNode()   {}
func (i *IntegerNode) String() string { return i.Value.String() }

// IsFixnum reports whether the value fits in a signed 64-bit word.
func (i *IntegerNode) IsFixnum() bool { return i.Value.IsInt64() }

// FloatNode is a floating point literal.
type FloatNode struct {
	Value float64
}

func (f *FloatNode) literalNode() {}
func (f *FloatNode) String() string {
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

// RationalNode is a literal with the r suffix.
type RationalNode struct {
	Value *big.Rat
}

func (r *RationalNode) literalNode()   {}
func (r *RationalNode) String() string { return "(" + r.Value.String() + ")" }

// ComplexNode is an imaginary literal; Imaginary holds the numeric part
// before the i suffix.
type ComplexNode struct {
	Imaginary Node
}

func (c *ComplexNode) literalNode()   {}
func (c *ComplexNode) String() string { return "(0+" + c.Imaginary.String() + "i)" }

// NthRefNode is a numbered match reference such as $1.
type NthRefNode struct {
	N int
}

func (n *NthRefNode) literalNode()   {}
func (n *NthRefNode) String() string { return "$" + strconv.Itoa(n.N) }

// BackRefNode is a special match reference: $&, $`, $' or $+.
type BackRefNode struct {
	Kind byte
}

func (b *BackRefNode) literalNode()   {}
func (b *BackRefNode) String() string { return "$" + string(b.Kind) }

// RegexpOptions holds the flags that follow a regexp terminator.
type RegexpOptions struct {
	IgnoreCase bool // i
	Multiline  bool // m
	Extended   bool // x
	Once       bool // o
	// Kcode is the fixed encoding letter (e, s, u or n), or 0.
	Kcode byte
}

func (o *RegexpOptions) literalNode() {}
func (o *RegexpOptions) String() string {
	var out strings.Builder
	if o.IgnoreCase {
		out.WriteByte('i')
	}
	if o.Multiline {
		out.WriteByte('m')
	}
	if o.Extended {
		out.WriteByte('x')
	}
	if o.Once {
		out.WriteByte('o')
	}
	if o.Kcode != 0 {
		out.WriteByte(o.Kcode)
	}
	return out.String()
}
