package lexer

import "fmt"

// PID names the kind of problem behind a fatal lexing error.
type PID int

const (
	CharacterBad PID = iota + 1
	CvarBadName
	IvarBadName
	GvarBadName
	EmptyHexNumber
	EmptyBinaryNumber
	EmptyOctalNumber
	EmptyDecimalNumber
	BadOctalDigit
	TrailingUnderscoreInNumber
	FractionAfterNumeric
	FloatMissingZero
	IncompleteCharSyntax
	InvalidEscapeSyntax
	InvalidUnicodeEscape
	InvalidUnicodeCodepoint
	UnterminatedUnicodeEscape
	InvalidMultibyteChar
	StringHitsEOF
	StringUnknownType
	StringMarkerMissing
	HeredocIdentifierUnterminated
	EmbeddedDocumentEOF
	UnknownRegexpOption
	UnknownEncoding
	IncompatibleEncoding
	EncodingUnavailable
)

var pidNames = map[PID]string{
	CharacterBad:                  "CHARACTER_BAD",
	CvarBadName:                   "CVAR_BAD_NAME",
	IvarBadName:                   "IVAR_BAD_NAME",
	GvarBadName:                   "GVAR_BAD_NAME",
	EmptyHexNumber:                "BAD_HEX_NUMBER",
	EmptyBinaryNumber:             "EMPTY_BINARY_NUMBER",
	EmptyOctalNumber:              "EMPTY_OCTAL_NUMBER",
	EmptyDecimalNumber:            "EMPTY_DECIMAL_NUMBER",
	BadOctalDigit:                 "BAD_OCTAL_DIGIT",
	TrailingUnderscoreInNumber:    "TRAILING_UNDERSCORE_IN_NUMBER",
	FractionAfterNumeric:          "FRACTION_AFTER_NUMERIC",
	FloatMissingZero:              "FLOAT_MISSING_ZERO",
	IncompleteCharSyntax:          "INCOMPLETE_CHAR_SYNTAX",
	InvalidEscapeSyntax:           "INVALID_ESCAPE_SYNTAX",
	InvalidUnicodeEscape:          "INVALID_UNICODE_ESCAPE",
	InvalidUnicodeCodepoint:       "INVALID_UNICODE_CODEPOINT",
	UnterminatedUnicodeEscape:     "UNTERMINATED_UNICODE_ESCAPE",
	InvalidMultibyteChar:          "INVALID_MULTIBYTE_CHAR",
	StringHitsEOF:                 "STRING_HITS_EOF",
	StringUnknownType:             "STRING_UNKNOWN_TYPE",
	StringMarkerMissing:           "STRING_MARKER_MISSING",
	HeredocIdentifierUnterminated: "HEREDOC_IDENTIFIER_UNTERMINATED",
	EmbeddedDocumentEOF:           "EMBEDDED_DOCUMENT_EOF",
	UnknownRegexpOption:           "UNKNOWN_REGEXP_OPTION",
	UnknownEncoding:               "UNKNOWN_ENCODING",
	IncompatibleEncoding:          "INCOMPATIBLE_ENCODING",
	EncodingUnavailable:           "ENCODING_UNAVAILABLE",
}

func (p PID) String() string {
	if name, ok := pidNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PID(%d)", int(p))
}

// SyntaxError is a fatal lexing error. Lexing does not continue past one.
type SyntaxError struct {
	PID     PID
	File    string
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// compileError aborts the current NextToken call; the error surfaces as its
// return value.
func (l *Lexer) compileError(pid PID, format string, args ...any) {
	panic(&SyntaxError{
		PID:     pid,
		File:    l.file,
		Line:    l.sourceLine,
		Message: fmt.Sprintf(format, args...),
	})
}

// compileErrorAt is compileError reported against an earlier line, such as
// the line that opened an unterminated literal.
func (l *Lexer) compileErrorAt(line int, pid PID, format string, args ...any) {
	panic(&SyntaxError{
		PID:     pid,
		File:    l.file,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}
