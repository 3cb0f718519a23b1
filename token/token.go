// Package token defines the terminal symbols produced by the Ruby lexer.
package token

import "fmt"

// Type identifies the grammar terminal a token represents.
type Type int

const (
	// Special tokens
	ILLEGAL Type = iota
	EOF
	NEWLINE

	// Identifiers and literals
	IDENT       // foo, bar
	CONSTANT    // Foo, BAR
	IVAR        // @foo
	CVAR        // @@foo
	GVAR        // $foo, $-w, $0
	NTH_REF     // $1, $2, etc.
	BACK_REF    // $&, $`, $', $+
	BACKTICK    // ` used as a method name
	LABEL       // foo:
	METHOD_NAME // foo?, foo!
	INTEGER     // 42, 0x2A, 0o52, 0b101010, 1_000
	FLOAT       // 3.14, 1.0e10
	RATIONAL    // 1r, 3.14r
	IMAGINARY   // 1i, 3.14i, 2ri
	CHAR        // ?a, ?\n

	// Keywords
	keyword_beg
	KEYWORD___ENCODING__
	KEYWORD___FILE__
	KEYWORD___LINE__
	KEYWORD_ALIAS
	KEYWORD_AND
	KEYWORD_BEGIN
	KEYWORD_BEGIN_UPCASE // BEGIN { }
	KEYWORD_BREAK
	KEYWORD_CASE
	KEYWORD_CLASS
	KEYWORD_DEF
	KEYWORD_DEFINED
	KEYWORD_DO
	KEYWORD_DO_BLOCK  // do in block context
	KEYWORD_DO_COND   // do in condition context
	KEYWORD_DO_LAMBDA // do for lambda
	KEYWORD_ELSE
	KEYWORD_ELSIF
	KEYWORD_END
	KEYWORD_END_UPCASE // END { }
	KEYWORD_ENSURE
	KEYWORD_FALSE
	KEYWORD_FOR
	KEYWORD_IF
	KEYWORD_IF_MODIFIER
	KEYWORD_IN
	KEYWORD_MODULE
	KEYWORD_NEXT
	KEYWORD_NIL
	KEYWORD_NOT
	KEYWORD_OR
	KEYWORD_REDO
	KEYWORD_RESCUE
	KEYWORD_RESCUE_MODIFIER
	KEYWORD_RETRY
	KEYWORD_RETURN
	KEYWORD_SELF
	KEYWORD_SUPER
	KEYWORD_THEN
	KEYWORD_TRUE
	KEYWORD_UNDEF
	KEYWORD_UNLESS
	KEYWORD_UNLESS_MODIFIER
	KEYWORD_UNTIL
	KEYWORD_UNTIL_MODIFIER
	KEYWORD_WHEN
	KEYWORD_WHILE
	KEYWORD_WHILE_MODIFIER
	KEYWORD_YIELD
	keyword_end

	// Operators
	AMPERSAND           // & (binary)
	AMPERSAND_AMPERSAND // &&
	AMPERSAND_DOT       // &.
	BANG                // !
	BANG_EQUAL          // !=
	BANG_TILDE          // !~
	CARET               // ^
	COLON               // :
	COLON_COLON         // :: (scope)
	COMMA               // ,
	DOT                 // .
	DOT_DOT             // ..
	DOT_DOT_DOT         // ...
	EQUAL               // =
	EQUAL_EQUAL         // ==
	EQUAL_EQUAL_EQUAL   // ===
	EQUAL_GREATER       // =>
	EQUAL_TILDE         // =~
	GREATER             // >
	GREATER_EQUAL       // >=
	GREATER_GREATER     // >>
	LESS                // <
	LESS_EQUAL          // <=
	LESS_EQUAL_GREATER  // <=>
	LESS_LESS           // <<
	MINUS               // -
	MINUS_GREATER       // ->
	PERCENT             // %
	PIPE                // |
	PIPE_PIPE           // ||
	PLUS                // +
	QUESTION            // ?
	SEMICOLON           // ;
	SLASH               // /
	STAR                // *
	STAR_STAR           // **
	TILDE               // ~
	BACKSLASH           // \
	DOLLAR              // $ with nothing usable after it
	OP_ASGN             // +=, ||=, <<= ... (Value holds the operator)

	// Unary operators (prefix)
	UPLUS        // unary +
	UMINUS       // unary -
	UMINUS_NUM   // unary - directly before a numeric literal
	USTAR        // unary * (splat)
	USTAR_STAR   // unary ** (double splat)
	UAMPERSAND   // unary & (block argument)
	UCOLON_COLON // :: at expression beginning

	// Brackets and delimiters
	LPAREN                   // ( after a method name
	LPAREN_ARG               // ( in argument context
	LPAREN_BEG               // ( at expression beginning
	RPAREN                   // )
	LBRACKET                 // [ index
	LBRACKET_ARRAY           // [ for array literal
	RBRACKET                 // ]
	LBRACE                   // { hash
	LBRACE_ARG               // { in argument context
	LBRACE_BLOCK             // { for block
	RBRACE                   // }
	BRACKET_LEFT_RIGHT       // []
	BRACKET_LEFT_RIGHT_EQUAL // []=

	// String-related tokens
	STRING_BEGIN   // ', ", %q, %Q, %, <<EOS
	STRING_CONTENT // string content
	STRING_END     // closing quote or heredoc terminator
	XSTRING_BEGIN  // ` or %x
	SYMBOL_BEGIN   // :, :", %s
	REGEXP_BEGIN   // / or %r
	REGEXP_END     // / with flags
	LABEL_END      // closing quote of a "label":
	WORDS_BEGIN    // %W
	QWORDS_BEGIN   // %w
	SYMBOLS_BEGIN  // %I
	QSYMBOLS_BEGIN // %i
	WORDS_SEP      // whitespace separator in word arrays

	// Interpolation
	EMBEXPR_BEGIN // #{
	EMBEXPR_END   // } closing interpolation
	EMBVAR        // #@ or #$

	// Lambda
	LAMBDA_LBRACE // { after ->

	// Range operators in special contexts
	BDOT2 // (.. at expression beginning
	BDOT3 // (... at expression beginning
)

// Span locates a token in its source unit. Line and Column are 1-based;
// Start and End are absolute byte offsets.
type Span struct {
	Line   int
	Column int
	Start  int
	End    int
}

// Token represents a lexical token with its type, source text, semantic value and position.
type Token struct {
	Type    Type
	Literal string
	Value   any
	Span    Span
}

// Position returns a human-readable position string.
func (t Token) Position() string {
	return fmt.Sprintf("%d:%d", t.Span.Line, t.Span.Column)
}

func (t Token) String() string {
	if t.Value == nil {
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	}
	return fmt.Sprintf("%s %q %v", t.Type, t.Literal, t.Value)
}

var tokenNames = map[Type]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	NEWLINE: "NEWLINE",

	IDENT:       "IDENT",
	CONSTANT:    "CONSTANT",
	IVAR:        "IVAR",
	CVAR:        "CVAR",
	GVAR:        "GVAR",
	NTH_REF:     "NTH_REF",
	BACK_REF:    "BACK_REF",
	BACKTICK:    "BACKTICK",
	LABEL:       "LABEL",
	METHOD_NAME: "METHOD_NAME",
	INTEGER:     "INTEGER",
	FLOAT:       "FLOAT",
	RATIONAL:    "RATIONAL",
	IMAGINARY:   "IMAGINARY",
	CHAR:        "CHAR",

	KEYWORD___ENCODING__:    "__ENCODING__",
	KEYWORD___FILE__:        "__FILE__",
	KEYWORD___LINE__:        "__LINE__",
	KEYWORD_ALIAS:           "alias",
	KEYWORD_AND:             "and",
	KEYWORD_BEGIN:           "begin",
	KEYWORD_BEGIN_UPCASE:    "BEGIN",
	KEYWORD_BREAK:           "break",
	KEYWORD_CASE:            "case",
	KEYWORD_CLASS:           "class",
	KEYWORD_DEF:             "def",
	KEYWORD_DEFINED:         "defined?",
	KEYWORD_DO:              "do",
	KEYWORD_DO_BLOCK:        "do (block)",
	KEYWORD_DO_COND:         "do (cond)",
	KEYWORD_DO_LAMBDA:       "do (lambda)",
	KEYWORD_ELSE:            "else",
	KEYWORD_ELSIF:           "elsif",
	KEYWORD_END:             "end",
	KEYWORD_END_UPCASE:      "END",
	KEYWORD_ENSURE:          "ensure",
	KEYWORD_FALSE:           "false",
	KEYWORD_FOR:             "for",
	KEYWORD_IF:              "if",
	KEYWORD_IF_MODIFIER:     "if (modifier)",
	KEYWORD_IN:              "in",
	KEYWORD_MODULE:          "module",
	KEYWORD_NEXT:            "next",
	KEYWORD_NIL:             "nil",
	KEYWORD_NOT:             "not",
	KEYWORD_OR:              "or",
	KEYWORD_REDO:            "redo",
	KEYWORD_RESCUE:          "rescue",
	KEYWORD_RESCUE_MODIFIER: "rescue (modifier)",
	KEYWORD_RETRY:           "retry",
	KEYWORD_RETURN:          "return",
	KEYWORD_SELF:            "self",
	KEYWORD_SUPER:           "super",
	KEYWORD_THEN:            "then",
	KEYWORD_TRUE:            "true",
	KEYWORD_UNDEF:           "undef",
	KEYWORD_UNLESS:          "unless",
	KEYWORD_UNLESS_MODIFIER: "unless (modifier)",
	KEYWORD_UNTIL:           "until",
	KEYWORD_UNTIL_MODIFIER:  "until (modifier)",
	KEYWORD_WHEN:            "when",
	KEYWORD_WHILE:           "while",
	KEYWORD_WHILE_MODIFIER:  "while (modifier)",
	KEYWORD_YIELD:           "yield",

	AMPERSAND:           "&",
	AMPERSAND_AMPERSAND: "&&",
	AMPERSAND_DOT:       "&.",
	BANG:                "!",
	BANG_EQUAL:          "!=",
	BANG_TILDE:          "!~",
	CARET:               "^",
	COLON:               ":",
	COLON_COLON:         "::",
	COMMA:               ",",
	DOT:                 ".",
	DOT_DOT:             "..",
	DOT_DOT_DOT:         "...",
	EQUAL:               "=",
	EQUAL_EQUAL:         "==",
	EQUAL_EQUAL_EQUAL:   "===",
	EQUAL_GREATER:       "=>",
	EQUAL_TILDE:         "=~",
	GREATER:             ">",
	GREATER_EQUAL:       ">=",
	GREATER_GREATER:     ">>",
	LESS:                "<",
	LESS_EQUAL:          "<=",
	LESS_EQUAL_GREATER:  "<=>",
	LESS_LESS:           "<<",
	MINUS:               "-",
	MINUS_GREATER:       "->",
	PERCENT:             "%",
	PIPE:                "|",
	PIPE_PIPE:           "||",
	PLUS:                "+",
	QUESTION:            "?",
	SEMICOLON:           ";",
	SLASH:               "/",
	STAR:                "*",
	STAR_STAR:           "**",
	TILDE:               "~",
	BACKSLASH:           "\\",
	DOLLAR:              "$",
	OP_ASGN:             "OP_ASGN",

	UPLUS:        "+@",
	UMINUS:       "-@",
	UMINUS_NUM:   "UMINUS_NUM",
	USTAR:        "*(splat)",
	USTAR_STAR:   "**(splat)",
	UAMPERSAND:   "&(block)",
	UCOLON_COLON: "::(top)",

	LPAREN:                   "(",
	LPAREN_ARG:               "(arg",
	LPAREN_BEG:               "(beg",
	RPAREN:                   ")",
	LBRACKET:                 "[",
	LBRACKET_ARRAY:           "[array",
	RBRACKET:                 "]",
	LBRACE:                   "{",
	LBRACE_ARG:               "{arg",
	LBRACE_BLOCK:             "{block",
	RBRACE:                   "}",
	BRACKET_LEFT_RIGHT:       "[]",
	BRACKET_LEFT_RIGHT_EQUAL: "[]=",

	STRING_BEGIN:   "STRING_BEGIN",
	STRING_CONTENT: "STRING_CONTENT",
	STRING_END:     "STRING_END",
	XSTRING_BEGIN:  "XSTRING_BEGIN",
	SYMBOL_BEGIN:   "SYMBOL_BEGIN",
	REGEXP_BEGIN:   "REGEXP_BEGIN",
	REGEXP_END:     "REGEXP_END",
	LABEL_END:      "LABEL_END",
	WORDS_BEGIN:    "WORDS_BEGIN",
	QWORDS_BEGIN:   "QWORDS_BEGIN",
	SYMBOLS_BEGIN:  "SYMBOLS_BEGIN",
	QSYMBOLS_BEGIN: "QSYMBOLS_BEGIN",
	WORDS_SEP:      "WORDS_SEP",

	EMBEXPR_BEGIN: "EMBEXPR_BEGIN",
	EMBEXPR_END:   "EMBEXPR_END",
	EMBVAR:        "EMBVAR",

	LAMBDA_LBRACE: "LAMBDA_LBRACE",

	BDOT2: "BDOT2",
	BDOT3: "BDOT3",
}

// String returns the string representation of the token type.
func (t Type) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keywords maps reserved words to their full (non-modifier) token types.
var Keywords = map[string]Type{
	"__ENCODING__": KEYWORD___ENCODING__,
	"__FILE__":     KEYWORD___FILE__,
	"__LINE__":     KEYWORD___LINE__,
	"alias":        KEYWORD_ALIAS,
	"and":          KEYWORD_AND,
	"begin":        KEYWORD_BEGIN,
	"BEGIN":        KEYWORD_BEGIN_UPCASE,
	"break":        KEYWORD_BREAK,
	"case":         KEYWORD_CASE,
	"class":        KEYWORD_CLASS,
	"def":          KEYWORD_DEF,
	"defined?":     KEYWORD_DEFINED,
	"do":           KEYWORD_DO,
	"else":         KEYWORD_ELSE,
	"elsif":        KEYWORD_ELSIF,
	"end":          KEYWORD_END,
	"END":          KEYWORD_END_UPCASE,
	"ensure":       KEYWORD_ENSURE,
	"false":        KEYWORD_FALSE,
	"for":          KEYWORD_FOR,
	"if":           KEYWORD_IF,
	"in":           KEYWORD_IN,
	"module":       KEYWORD_MODULE,
	"next":         KEYWORD_NEXT,
	"nil":          KEYWORD_NIL,
	"not":          KEYWORD_NOT,
	"or":           KEYWORD_OR,
	"redo":         KEYWORD_REDO,
	"rescue":       KEYWORD_RESCUE,
	"retry":        KEYWORD_RETRY,
	"return":       KEYWORD_RETURN,
	"self":         KEYWORD_SELF,
	"super":        KEYWORD_SUPER,
	"then":         KEYWORD_THEN,
	"true":         KEYWORD_TRUE,
	"undef":        KEYWORD_UNDEF,
	"unless":       KEYWORD_UNLESS,
	"until":        KEYWORD_UNTIL,
	"when":         KEYWORD_WHEN,
	"while":        KEYWORD_WHILE,
	"yield":        KEYWORD_YIELD,
}

// LookupIdent returns the keyword type for ident, or IDENT/CONSTANT by its
// first ASCII letter. The lexer itself uses an encoding-aware check.
func LookupIdent(ident string) Type {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	if len(ident) > 0 && ident[0] >= 'A' && ident[0] <= 'Z' {
		return CONSTANT
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func (t Type) IsKeyword() bool {
	return t > keyword_beg && t < keyword_end
}

// IsLiteral returns true if the token type is a literal.
func (t Type) IsLiteral() bool {
	switch t {
	case INTEGER, FLOAT, RATIONAL, IMAGINARY, CHAR, STRING_CONTENT:
		return true
	}
	return false
}

// IsOperator returns true if the token type is an operator.
func (t Type) IsOperator() bool {
	switch t {
	case AMPERSAND, AMPERSAND_AMPERSAND, AMPERSAND_DOT, BANG, BANG_EQUAL, BANG_TILDE,
		CARET, DOT, DOT_DOT, DOT_DOT_DOT, BDOT2, BDOT3,
		EQUAL, EQUAL_EQUAL, EQUAL_EQUAL_EQUAL, EQUAL_GREATER, EQUAL_TILDE,
		GREATER, GREATER_EQUAL, GREATER_GREATER,
		LESS, LESS_EQUAL, LESS_EQUAL_GREATER, LESS_LESS,
		MINUS, MINUS_GREATER, PERCENT, PIPE, PIPE_PIPE, PLUS, SLASH,
		STAR, STAR_STAR, TILDE, OP_ASGN,
		UPLUS, UMINUS, UMINUS_NUM, USTAR, USTAR_STAR, UAMPERSAND:
		return true
	}
	return false
}

// IsStringBegin reports whether t opens a string-like literal.
func (t Type) IsStringBegin() bool {
	switch t {
	case STRING_BEGIN, XSTRING_BEGIN, SYMBOL_BEGIN, REGEXP_BEGIN,
		WORDS_BEGIN, QWORDS_BEGIN, SYMBOLS_BEGIN, QSYMBOLS_BEGIN:
		return true
	}
	return false
}
