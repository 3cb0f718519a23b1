package repl

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/alexisbouchez/rubylex/config"
	"github.com/alexisbouchez/rubylex/token"
)

const (
	colorReset   = "\x1b[0m"
	colorKeyword = "\x1b[35m"
	colorLiteral = "\x1b[32m"
	colorOther   = "\x1b[36m"
	colorError   = "\x1b[31m"
)

// Printer writes token dumps.
type Printer struct {
	Format string
	Color  bool
}

type record struct {
	Type    string `yaml:"type"`
	Literal string `yaml:"literal"`
	Value   string `yaml:"value,omitempty"`
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
	Start   int    `yaml:"start"`
	End     int    `yaml:"end"`
}

// Print writes toks to w in the printer's format.
func (p *Printer) Print(w io.Writer, toks []token.Token) error {
	if p.Format == config.FormatYAML {
		return p.printYAML(w, toks)
	}
	for _, tok := range toks {
		if err := p.printLine(w, tok); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printLine(w io.Writer, tok token.Token) error {
	name := fmt.Sprintf("%-18s", tok.Type)
	if p.Color {
		name = colorFor(tok.Type) + name + colorReset
	}
	line := fmt.Sprintf("%-8s%s%q", tok.Position(), name, tok.Literal)
	if v := valueString(tok); v != "" {
		line += " => " + v
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func (p *Printer) printYAML(w io.Writer, toks []token.Token) error {
	records := make([]record, len(toks))
	for i, tok := range toks {
		records[i] = record{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Value:   valueString(tok),
			Line:    tok.Span.Line,
			Column:  tok.Span.Column,
			Start:   tok.Span.Start,
			End:     tok.Span.End,
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding tokens: %w", err)
	}
	return enc.Close()
}

// Error writes a lexing error line.
func (p *Printer) Error(w io.Writer, err error) {
	msg := "SyntaxError: " + err.Error()
	if p.Color {
		msg = colorError + msg + colorReset
	}
	fmt.Fprintln(w, msg)
}

// valueString renders the semantic value, or "" when it adds nothing to the
// literal.
func valueString(tok token.Token) string {
	var s string
	switch v := tok.Value.(type) {
	case nil:
		return ""
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprint(v)
	}
	if s == tok.Literal {
		return ""
	}
	return s
}

func colorFor(t token.Type) string {
	switch {
	case t.IsKeyword():
		return colorKeyword
	case t.IsLiteral():
		return colorLiteral
	}
	return colorOther
}
