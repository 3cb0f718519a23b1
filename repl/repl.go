// Package repl implements an interactive token dumper for Ruby source.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexisbouchez/rubylex/lexer"
	"github.com/alexisbouchez/rubylex/token"
)

const (
	PROMPT       = "rubylex> "
	CONT_PROMPT  = "...      "
	sessionInput = "(repl)"
)

// Session keeps what one entry teaches the next: the local variables
// assigned so far.
type Session struct {
	Printer  *Printer
	Options  []lexer.Option
	Warnings bool
	locals   *lexer.Scope
}

// NewSession creates a session that prints with p.
func NewSession(p *Printer, opts ...lexer.Option) *Session {
	return &Session{Printer: p, Options: opts, Warnings: true, locals: lexer.NewScope()}
}

// Start reads entries from in until EOF or "exit" and dumps their tokens.
func Start(in io.Reader, out io.Writer, s *Session) {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "Ruby token dumper (rubylex)")
	fmt.Fprintln(out, "Type 'exit' to quit")
	fmt.Fprintln(out)

	var pending strings.Builder
	for {
		if pending.Len() > 0 {
			fmt.Fprint(out, CONT_PROMPT)
		} else {
			fmt.Fprint(out, PROMPT)
		}
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()

		if pending.Len() == 0 {
			switch strings.TrimSpace(line) {
			case "exit", "quit":
				fmt.Fprintln(out, "Goodbye!")
				return
			case "":
				continue
			}
		}

		pending.WriteString(line)
		pending.WriteByte('\n')

		toks, warnings, err := s.Lex(pending.String())
		if err != nil && Incomplete(err) {
			continue
		}
		pending.Reset()

		if s.Warnings {
			for _, w := range warnings {
				fmt.Fprintf(out, "warning: %d: %s\n", w.Line, w.Message)
			}
		}
		if err != nil {
			s.Printer.Error(out, err)
			continue
		}
		if err := s.Printer.Print(out, toks); err != nil {
			s.Printer.Error(out, err)
		}
	}
}

// Lex tokenizes one entry. Locals assigned by earlier entries are known to
// the lexer, and locals assigned by this one are remembered when it lexes
// cleanly.
func (s *Session) Lex(input string) ([]token.Token, []lexer.Warning, error) {
	diags := lexer.NewCollector()
	opts := append([]lexer.Option{lexer.WithFile(sessionInput)}, s.Options...)
	opts = append(opts, lexer.WithHandler(diags))

	stream := lexer.NewStream(lexer.NewSource(sessionInput, []byte(input), nil), opts...)
	for _, name := range s.locals.LocalVariableNames() {
		stream.Scope().Declare(name)
	}

	var toks []token.Token
	for {
		tok, err := stream.Next()
		if err != nil {
			return toks, diags.Warnings(), err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	for _, name := range stream.Scope().LocalVariableNames() {
		s.locals.Declare(name)
	}
	return toks, diags.Warnings(), nil
}

// Declare makes name a known local for later entries.
func (s *Session) Declare(name string) {
	s.locals.Declare(name)
}

// Locals returns the local variables the session has seen assigned.
func (s *Session) Locals() []string {
	return s.locals.LocalVariableNames()
}

// Incomplete reports whether err only means the input stopped inside a
// literal or embedded document, so more lines may complete it.
func Incomplete(err error) bool {
	var se *lexer.SyntaxError
	if !errors.As(err, &se) {
		return false
	}
	switch se.PID {
	case lexer.StringHitsEOF, lexer.StringMarkerMissing, lexer.EmbeddedDocumentEOF:
		return true
	}
	return false
}
