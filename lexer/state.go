package lexer

import "strings"

// State is the lexer's grammatical context, a set of flags.
type State int

const (
	EXPR_BEG     State = 1 << iota // ignore newline, +/- is a sign
	EXPR_END                       // newline significant, +/- is an operator
	EXPR_ENDARG                    // ditto, and unbound braces
	EXPR_ENDFN                     // ditto, and closing paren of def arguments
	EXPR_ARG                       // newline significant, +/- is an operator
	EXPR_CMDARG                    // newline significant, +/- is an operator
	EXPR_MID                       // newline significant, +/- is a sign
	EXPR_FNAME                     // ignore newline, no reserved words
	EXPR_DOT                       // right after . or ::, no reserved words
	EXPR_CLASS                     // immediately after class, no here document
	EXPR_LABEL                     // a label is allowed
	EXPR_LABELED                   // just after a label
	EXPR_FITEM                     // symbol literal as FNAME

	EXPR_VALUE   = EXPR_BEG
	EXPR_BEG_ANY = EXPR_BEG | EXPR_MID | EXPR_CLASS
	EXPR_ARG_ANY = EXPR_ARG | EXPR_CMDARG
	EXPR_END_ANY = EXPR_END | EXPR_ENDARG | EXPR_ENDFN
)

var stateNames = []string{
	"BEG", "END", "ENDARG", "ENDFN", "ARG", "CMDARG", "MID",
	"FNAME", "DOT", "CLASS", "LABEL", "LABELED", "FITEM",
}

func (s State) String() string {
	if s == 0 {
		return "NONE"
	}
	var parts []string
	for i, name := range stateNames {
		if s&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Is reports whether s shares any flag with mask.
func (s State) Is(mask State) bool { return s&mask != 0 }

// IsAll reports whether s has every flag in mask.
func (s State) IsAll(mask State) bool { return s&mask == mask }
