package lexer

import "github.com/alexisbouchez/rubylex/token"

// keyword pairs the full token type of a reserved word with its statement
// modifier form and the state the lexer moves to after it.
type keyword struct {
	name     string
	full     token.Type
	modifier token.Type
	state    State
}

var keywords = map[string]keyword{}

func init() {
	for _, kw := range []keyword{
		{"end", token.KEYWORD_END, token.KEYWORD_END, EXPR_END},
		{"else", token.KEYWORD_ELSE, token.KEYWORD_ELSE, EXPR_BEG},
		{"case", token.KEYWORD_CASE, token.KEYWORD_CASE, EXPR_BEG},
		{"ensure", token.KEYWORD_ENSURE, token.KEYWORD_ENSURE, EXPR_BEG},
		{"module", token.KEYWORD_MODULE, token.KEYWORD_MODULE, EXPR_BEG},
		{"elsif", token.KEYWORD_ELSIF, token.KEYWORD_ELSIF, EXPR_BEG},
		{"def", token.KEYWORD_DEF, token.KEYWORD_DEF, EXPR_FNAME},
		{"rescue", token.KEYWORD_RESCUE, token.KEYWORD_RESCUE_MODIFIER, EXPR_MID},
		{"not", token.KEYWORD_NOT, token.KEYWORD_NOT, EXPR_ARG},
		{"then", token.KEYWORD_THEN, token.KEYWORD_THEN, EXPR_BEG},
		{"yield", token.KEYWORD_YIELD, token.KEYWORD_YIELD, EXPR_ARG},
		{"for", token.KEYWORD_FOR, token.KEYWORD_FOR, EXPR_BEG},
		{"self", token.KEYWORD_SELF, token.KEYWORD_SELF, EXPR_END},
		{"false", token.KEYWORD_FALSE, token.KEYWORD_FALSE, EXPR_END},
		{"retry", token.KEYWORD_RETRY, token.KEYWORD_RETRY, EXPR_END},
		{"return", token.KEYWORD_RETURN, token.KEYWORD_RETURN, EXPR_MID},
		{"true", token.KEYWORD_TRUE, token.KEYWORD_TRUE, EXPR_END},
		{"if", token.KEYWORD_IF, token.KEYWORD_IF_MODIFIER, EXPR_BEG},
		{"defined?", token.KEYWORD_DEFINED, token.KEYWORD_DEFINED, EXPR_ARG},
		{"super", token.KEYWORD_SUPER, token.KEYWORD_SUPER, EXPR_ARG},
		{"undef", token.KEYWORD_UNDEF, token.KEYWORD_UNDEF, EXPR_FNAME | EXPR_FITEM},
		{"break", token.KEYWORD_BREAK, token.KEYWORD_BREAK, EXPR_MID},
		{"in", token.KEYWORD_IN, token.KEYWORD_IN, EXPR_BEG},
		{"do", token.KEYWORD_DO, token.KEYWORD_DO, EXPR_BEG},
		{"nil", token.KEYWORD_NIL, token.KEYWORD_NIL, EXPR_END},
		{"until", token.KEYWORD_UNTIL, token.KEYWORD_UNTIL_MODIFIER, EXPR_BEG},
		{"unless", token.KEYWORD_UNLESS, token.KEYWORD_UNLESS_MODIFIER, EXPR_BEG},
		{"or", token.KEYWORD_OR, token.KEYWORD_OR, EXPR_BEG},
		{"next", token.KEYWORD_NEXT, token.KEYWORD_NEXT, EXPR_MID},
		{"when", token.KEYWORD_WHEN, token.KEYWORD_WHEN, EXPR_BEG},
		{"redo", token.KEYWORD_REDO, token.KEYWORD_REDO, EXPR_END},
		{"and", token.KEYWORD_AND, token.KEYWORD_AND, EXPR_BEG},
		{"begin", token.KEYWORD_BEGIN, token.KEYWORD_BEGIN, EXPR_BEG},
		{"__LINE__", token.KEYWORD___LINE__, token.KEYWORD___LINE__, EXPR_END},
		{"class", token.KEYWORD_CLASS, token.KEYWORD_CLASS, EXPR_CLASS},
		{"__FILE__", token.KEYWORD___FILE__, token.KEYWORD___FILE__, EXPR_END},
		{"END", token.KEYWORD_END_UPCASE, token.KEYWORD_END_UPCASE, EXPR_END},
		{"BEGIN", token.KEYWORD_BEGIN_UPCASE, token.KEYWORD_BEGIN_UPCASE, EXPR_END},
		{"while", token.KEYWORD_WHILE, token.KEYWORD_WHILE_MODIFIER, EXPR_BEG},
		{"alias", token.KEYWORD_ALIAS, token.KEYWORD_ALIAS, EXPR_FNAME | EXPR_FITEM},
		{"__ENCODING__", token.KEYWORD___ENCODING__, token.KEYWORD___ENCODING__, EXPR_END},
	} {
		keywords[kw.name] = kw
	}
}
