package lexer

// StackState is a stack of booleans packed into a word. The lexer keeps two:
// one for loop conditions and one for command arguments, both consulted when
// deciding what kind of `do` it has seen.
type StackState uint64

// Push pushes b onto the stack.
func (s *StackState) Push(b bool) {
	*s <<= 1
	if b {
		*s |= 1
	}
}

// Pop drops the top entry.
func (s *StackState) Pop() { *s >>= 1 }

// LexPop drops the top entry but keeps it set if either of the top two was set.
func (s *StackState) LexPop() { *s = (*s >> 1) | (*s & 1) }

// Stop pushes a false entry, masking the state inside parentheses.
func (s *StackState) Stop() { s.Push(false) }

// Restart undoes Stop.
func (s *StackState) Restart() { s.LexPop() }

// IsInState reports whether the top entry is set.
func (s StackState) IsInState() bool { return s&1 != 0 }

// Reset clears the stack.
func (s *StackState) Reset() { *s = 0 }
