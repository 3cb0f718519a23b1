package lexer

import (
	"log/slog"

	"github.com/alexisbouchez/rubylex/charset"
)

// ScopeOracle answers the one question the lexer needs from the parser:
// whether a name is a local variable in the enclosing scope.
type ScopeOracle interface {
	IsLocalDefined(name string) bool
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithFile sets the file name used in diagnostics.
func WithFile(name string) Option {
	return func(l *Lexer) { l.file = name }
}

// WithScope injects the local variable oracle.
func WithScope(scope ScopeOracle) Option {
	return func(l *Lexer) { l.scope = scope }
}

// WithHandler sets the diagnostics handler. The default logs through slog.
func WithHandler(h Handler) Option {
	return func(l *Lexer) { l.handler = h }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lexer) { l.log = logger }
}

// WithEncoding sets the initial source encoding.
func WithEncoding(enc *charset.Encoding) Option {
	return func(l *Lexer) { l.enc = enc }
}

// WithFrozenStringLiteral sets the initial frozen_string_literal option.
func WithFrozenStringLiteral(frozen bool) Option {
	return func(l *Lexer) { l.frozenStringLiteral = frozen }
}

// WithLine sets the line number of the first line, for code evaluated at an
// offset inside another file.
func WithLine(line int) Option {
	return func(l *Lexer) { l.sourceLine = line - 1 }
}

// CompileOptions are the settings magic comments can change.
type CompileOptions struct {
	FrozenStringLiteral bool
	Primitives          bool
	WarnIndent          bool
}
