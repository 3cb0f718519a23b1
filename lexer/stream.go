package lexer

import (
	"github.com/alexisbouchez/rubylex/ast"
	"github.com/alexisbouchez/rubylex/token"
)

// Stream pulls tokens from a Lexer and does the bookkeeping a Ruby parser
// would do between calls: it suspends literals around interpolation, tracks
// loop conditions and lambdas, declares assigned locals and dedents squiggly
// heredocs. The tokens it returns are the ones a parser would consume.
type Stream struct {
	lex   *Lexer
	scope *Scope

	frames   []frame
	dvarTerm StrTerm
	inDvar   bool
	conds    []condFrame
	forSeen  bool
	cmdArgs  []condFrame

	heredocs []heredocFrame
	held     []heldToken
	ready    []token.Token

	prev, prev2 token.Type
	prevLiteral string
	prevState   State
	blockParams bool
}

// frame is the lexer state saved while an interpolated expression is lexed.
type frame struct {
	term          StrTerm
	braceNest     int
	heredocIndent int
	cond          StackState
	cmdArg        StackState
}

type condFrame struct {
	depth     int
	parenNest int
}

type heredocFrame struct {
	start int
	depth int
}

type heldToken struct {
	tok   token.Token
	depth int
}

// NewStream creates a stream over src. The stream owns the scope the lexer
// consults for local variables.
func NewStream(src *Source, opts ...Option) *Stream {
	scope := NewScope()
	opts = append(opts[:len(opts):len(opts)], WithScope(scope))
	return &Stream{lex: NewFromSource(src, opts...), scope: scope}
}

// Lexer returns the underlying lexer.
func (s *Stream) Lexer() *Lexer { return s.lex }

// Scope returns the local variable scope.
func (s *Stream) Scope() *Scope { return s.scope }

// Next returns the next token. Tokens of a squiggly heredoc are held back
// until its terminator has been seen and the body dedented.
func (s *Stream) Next() (token.Token, error) {
	for len(s.ready) == 0 {
		tok, err := s.lex.NextToken()
		if err != nil {
			s.held, s.heredocs = nil, nil
			return tok, err
		}
		depth := len(s.frames)
		s.observe(tok)
		if tok.Type == token.STRING_END {
			s.closeHeredoc(depth)
		}
		s.held = append(s.held, heldToken{tok: tok, depth: depth})
		if (tok.Type == token.STRING_BEGIN || tok.Type == token.XSTRING_BEGIN) && s.squigglyOpened() {
			s.heredocs = append(s.heredocs, heredocFrame{start: len(s.held), depth: depth})
		}
		if len(s.heredocs) == 0 {
			for _, h := range s.held {
				s.ready = append(s.ready, h.tok)
			}
			s.held = s.held[:0]
		}
	}
	tok := s.ready[0]
	s.ready = s.ready[1:]
	return tok, nil
}

func (s *Stream) squigglyOpened() bool {
	_, ok := s.lex.StrTerm().(*HeredocTerm)
	return ok && s.lex.HeredocIndent() > 0
}

// closeHeredoc dedents the body of the innermost squiggly heredoc when its
// terminator arrives at the same interpolation depth.
func (s *Stream) closeHeredoc(depth int) {
	n := len(s.heredocs)
	if n == 0 || s.heredocs[n-1].depth != depth {
		return
	}
	h := s.heredocs[n-1]
	s.heredocs = s.heredocs[:n-1]
	width := s.lex.HeredocIndent()
	s.lex.SetHeredocIndent(0)
	if width <= 0 {
		return
	}
	for i := h.start; i < len(s.held); i++ {
		held := &s.held[i]
		if held.depth != depth || held.tok.Type != token.STRING_CONTENT || held.tok.Span.Column != 1 {
			continue
		}
		if str, ok := held.tok.Value.(*ast.StrNode); ok {
			str.Value = s.lex.HeredocDedent(width, str.Value)
		}
	}
}

func (s *Stream) observe(tok token.Token) {
	lex := s.lex
	if s.inDvar {
		lex.SetStrTerm(s.dvarTerm)
		s.dvarTerm, s.inDvar = nil, false
	}

	s.closeCommand(tok)
	if s.commandArgStart(tok.Type) {
		nest := lex.ParenNest()
		if tok.Type == token.LPAREN_ARG || tok.Type == token.LBRACKET_ARRAY {
			nest--
		}
		s.cmdArgs = append(s.cmdArgs, condFrame{depth: len(s.frames), parenNest: nest})
		lex.CmdArg().Push(true)
	}

	switch tok.Type {
	case token.EMBEXPR_BEGIN:
		s.frames = append(s.frames, frame{
			term:          lex.StrTerm(),
			braceNest:     lex.BraceNest(),
			heredocIndent: lex.HeredocIndent(),
			cond:          *lex.Cond(),
			cmdArg:        *lex.CmdArg(),
		})
		lex.SetStrTerm(nil)
		lex.SetState(EXPR_BEG)
		lex.SetBraceNest(0)
		lex.SetHeredocIndent(0)
		lex.Cond().Reset()
		lex.CmdArg().Reset()

	case token.EMBEXPR_END:
		n := len(s.frames)
		if n == 0 {
			break
		}
		f := s.frames[n-1]
		s.frames = s.frames[:n-1]
		lex.SetStrTerm(f.term)
		lex.SetBraceNest(f.braceNest)
		lex.SetHeredocIndent(f.heredocIndent)
		lex.SetHeredocLineIndent(-1)
		*lex.Cond() = f.cond
		*lex.CmdArg() = f.cmdArg

	case token.EMBVAR:
		s.dvarTerm, s.inDvar = lex.StrTerm(), true
		lex.SetStrTerm(nil)
		lex.SetState(EXPR_BEG)

	case token.MINUS_GREATER:
		lex.SetLeftParenBegin(lex.IncrementParenNest())

	case token.KEYWORD_WHILE, token.KEYWORD_UNTIL:
		s.pushCond()

	case token.KEYWORD_FOR:
		s.forSeen = true

	case token.KEYWORD_IN:
		if s.forSeen {
			s.forSeen = false
			s.pushCond()
		}

	case token.KEYWORD_DO_COND, token.NEWLINE, token.SEMICOLON:
		if n := len(s.conds); n > 0 {
			top := s.conds[n-1]
			if top.depth == len(s.frames) && top.parenNest == lex.ParenNest() {
				s.conds = s.conds[:n-1]
				lex.Cond().Pop()
			}
		}

	case token.EQUAL, token.OP_ASGN:
		if s.prev == token.IDENT && s.prev2 != token.DOT && s.prev2 != token.AMPERSAND_DOT && s.prev2 != token.COLON_COLON {
			s.scope.Declare(s.prevLiteral)
		}

	case token.PIPE:
		switch {
		case s.blockParams:
			s.blockParams = false
		case s.prev == token.LBRACE_BLOCK || s.prev == token.KEYWORD_DO_BLOCK || s.prev == token.KEYWORD_DO:
			s.blockParams = true
		}

	case token.IDENT:
		if s.blockParams {
			s.scope.Declare(tok.Literal)
		}
	}

	s.prev2, s.prev = s.prev, tok.Type
	s.prevLiteral = tok.Literal
	s.prevState = lex.State()
}

// commandArgStart reports whether t begins the arguments of a command call,
// an identifier left in EXPR_CMDARG followed by an argument without parens.
func (s *Stream) commandArgStart(t token.Type) bool {
	switch s.prev {
	case token.IDENT, token.CONSTANT, token.METHOD_NAME:
	default:
		return false
	}
	if !s.prevState.Is(EXPR_CMDARG) {
		return false
	}
	if t.IsLiteral() || t.IsStringBegin() {
		return true
	}
	switch t {
	case token.IDENT, token.CONSTANT, token.METHOD_NAME, token.LABEL,
		token.IVAR, token.CVAR, token.GVAR, token.NTH_REF, token.BACK_REF,
		token.UMINUS, token.UMINUS_NUM, token.UPLUS, token.USTAR, token.USTAR_STAR,
		token.UAMPERSAND, token.UCOLON_COLON, token.BANG, token.TILDE, token.MINUS_GREATER,
		token.LPAREN_ARG, token.LBRACKET_ARRAY, token.BDOT2, token.BDOT3,
		token.KEYWORD_NIL, token.KEYWORD_TRUE, token.KEYWORD_FALSE, token.KEYWORD_SELF,
		token.KEYWORD_NOT, token.KEYWORD_DEFINED, token.KEYWORD___FILE__,
		token.KEYWORD___LINE__, token.KEYWORD___ENCODING__:
		return true
	}
	return false
}

// closeCommand pops the command argument state once tok ends the innermost
// command: a statement break, its block, a modifier, or a bracket that
// closes around it.
func (s *Stream) closeCommand(tok token.Token) {
	for n := len(s.cmdArgs); n > 0; n = len(s.cmdArgs) {
		top := s.cmdArgs[n-1]
		switch {
		case top.depth > len(s.frames):
			// The interpolation frame restored the stack wholesale.
			s.cmdArgs = s.cmdArgs[:n-1]
			continue
		case top.depth < len(s.frames):
			return
		case s.lex.ParenNest() < top.parenNest:
		case top.parenNest == s.lex.ParenNest() && endsCommand(tok.Type):
		default:
			return
		}
		s.cmdArgs = s.cmdArgs[:n-1]
		cmdArg := s.lex.CmdArg()
		if tok.Type == token.LBRACE_BLOCK || tok.Type == token.LBRACE_ARG {
			// The brace already stopped the stack; drop the bit beneath it.
			block := cmdArg.IsInState()
			cmdArg.Pop()
			cmdArg.Pop()
			cmdArg.Push(block)
			continue
		}
		cmdArg.Pop()
	}
}

func endsCommand(t token.Type) bool {
	switch t {
	case token.NEWLINE, token.SEMICOLON, token.EOF,
		token.KEYWORD_DO_BLOCK, token.KEYWORD_DO, token.LBRACE_BLOCK, token.LBRACE_ARG,
		token.KEYWORD_IF_MODIFIER, token.KEYWORD_UNLESS_MODIFIER, token.KEYWORD_WHILE_MODIFIER,
		token.KEYWORD_UNTIL_MODIFIER, token.KEYWORD_RESCUE_MODIFIER,
		token.KEYWORD_AND, token.KEYWORD_OR, token.KEYWORD_THEN, token.KEYWORD_END:
		return true
	}
	return false
}

func (s *Stream) pushCond() {
	s.conds = append(s.conds, condFrame{depth: len(s.frames), parenNest: s.lex.ParenNest()})
	s.lex.Cond().Push(true)
}

// Tokenize lexes input through a Stream and returns every token up to and
// including EOF.
func Tokenize(input string, opts ...Option) ([]token.Token, error) {
	s := NewStream(NewSource("", []byte(input), nil), opts...)
	var toks []token.Token
	for {
		tok, err := s.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}
