// Package main provides the rubylex command, a token dumper for Ruby source.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/alexisbouchez/rubylex/charset"
	"github.com/alexisbouchez/rubylex/config"
	"github.com/alexisbouchez/rubylex/lexer"
	"github.com/alexisbouchez/rubylex/repl"
	"github.com/alexisbouchez/rubylex/token"
)

var version = "dev"

func main() {
	settings := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Settings file (default: nearest " + config.FileName + ")",
			Sources: cli.EnvVars("RUBYLEX_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "encoding",
			Aliases: []string{"E"},
			Usage:   "Initial source encoding",
			Sources: cli.EnvVars("RUBYLEX_ENCODING"),
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text or yaml",
			Sources: cli.EnvVars("RUBYLEX_FORMAT"),
		},
		&cli.BoolFlag{
			Name:  "frozen-string-literal",
			Usage: "Treat string literals as frozen",
		},
		&cli.StringSliceFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "Declare a local variable before lexing",
		},
		&cli.BoolFlag{
			Name:    "no-warnings",
			Aliases: []string{"W"},
			Usage:   "Suppress lexer warnings",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: debug, info, warn or error",
			Value:   "warn",
			Sources: cli.EnvVars("RUBYLEX_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:    "no-color",
			Aliases: []string{"C"},
			Usage:   "Disable ANSI color output",
		},
	}

	cmd := &cli.Command{
		Name:    "rubylex",
		Usage:   "Tokenize Ruby source the way the Ruby parser sees it",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "tokens",
				Usage:     "Print the tokens of files, or of stdin",
				ArgsUsage: "[file.rb...]",
				Flags:     settings,
				Action:    tokensAction,
			},
			{
				Name:   "repl",
				Usage:  "Tokenize lines interactively",
				Flags:  settings,
				Action: replAction,
			},
			{
				Name:   "encodings",
				Usage:  "List the encoding names accepted in magic comments",
				Action: encodingsAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run is the resolved configuration shared by the commands.
type run struct {
	cfg     *config.Config
	printer *repl.Printer
	logger  *slog.Logger
	opts    []lexer.Option
}

func setup(cmd *cli.Command) (*run, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Find(".")
	}
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("encoding") {
		cfg.Encoding = cmd.String("encoding")
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.IsSet("frozen-string-literal") {
		cfg.FrozenStringLiteral = cmd.Bool("frozen-string-literal")
	}
	if cmd.Bool("no-warnings") {
		cfg.Warnings = false
	}
	cfg.Locals = append(cfg.Locals, cmd.StringSlice("local")...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts, err := cfg.LexerOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, lexer.WithLogger(logger))

	return &run{
		cfg:     cfg,
		printer: &repl.Printer{Format: cfg.Format, Color: useColor(cmd)},
		logger:  logger,
		opts:    opts,
	}, nil
}

func useColor(cmd *cli.Command) bool {
	if cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func tokensAction(ctx context.Context, cmd *cli.Command) error {
	r, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		return r.dump("-", data)
	}
	failed := 0
	for _, path := range cmd.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("could not open file: %w", err)
		}
		if cmd.NArg() > 1 {
			fmt.Printf("==> %s <==\n", filepath.ToSlash(path))
		}
		if err := r.dump(path, data); err != nil {
			r.printer.Error(os.Stderr, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to lex", failed, cmd.NArg())
	}
	return nil
}

func (r *run) dump(name string, data []byte) error {
	handler := r.handler()
	opts := append(r.opts[:len(r.opts):len(r.opts)], lexer.WithFile(name), lexer.WithHandler(handler))
	stream := lexer.NewStream(lexer.NewSource(name, data, nil), opts...)
	for _, local := range r.cfg.Locals {
		stream.Scope().Declare(local)
	}

	var toks []token.Token
	for {
		tok, err := stream.Next()
		if err != nil {
			if printErr := r.printer.Print(os.Stdout, toks); printErr != nil {
				return printErr
			}
			return err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	r.logger.Debug("lexed", "file", name, "tokens", len(toks), "encoding", stream.Lexer().Encoding().Name())
	return r.printer.Print(os.Stdout, toks)
}

// handler reports warnings through the logger unless they are disabled.
// Fatal errors are printed by the caller.
func (r *run) handler() lexer.Handler {
	if !r.cfg.Warnings {
		return lexer.NewCollector()
	}
	return warnOnly{lexer.SlogHandler{Logger: r.logger}}
}

type warnOnly struct {
	lexer.SlogHandler
}

func (warnOnly) Fatal(*lexer.SyntaxError) {}

func replAction(ctx context.Context, cmd *cli.Command) error {
	r, err := setup(cmd)
	if err != nil {
		return err
	}
	s := repl.NewSession(r.printer, r.opts...)
	s.Warnings = r.cfg.Warnings
	for _, local := range r.cfg.Locals {
		s.Declare(local)
	}
	repl.Start(os.Stdin, os.Stdout, s)
	return nil
}

func encodingsAction(ctx context.Context, cmd *cli.Command) error {
	fmt.Println(strings.Join(charset.Names(), "\n"))
	return nil
}
