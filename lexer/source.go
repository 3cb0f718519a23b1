package lexer

import (
	"bytes"

	"github.com/alexisbouchez/rubylex/charset"
)

// Source hands the lexer its input one line at a time. Lines are sub-slices
// of the original buffer; the bytes are never modified.
type Source struct {
	name      string
	data      []byte
	pos       int
	enc       *charset.Encoding
	fromBytes bool
}

// NewSource creates a byte-addressable source. A nil enc means UTF-8.
func NewSource(name string, data []byte, enc *charset.Encoding) *Source {
	if enc == nil {
		enc = charset.UTF8
	}
	return &Source{name: name, data: data, enc: enc, fromBytes: true}
}

// NewTextSource creates a source over text that has already been decoded to
// UTF-8. Its encoding can only be switched within the UTF-8 family.
func NewTextSource(name string, text string) *Source {
	return &Source{name: name, data: []byte(text), enc: charset.UTF8}
}

// NextLine returns the next line including its terminating newline, and the
// absolute offset at which it starts. The last line may be unterminated.
func (s *Source) NextLine() (line []byte, start int, ok bool) {
	if s.pos >= len(s.data) {
		return nil, s.pos, false
	}
	start = s.pos
	if i := bytes.IndexByte(s.data[start:], '\n'); i >= 0 {
		s.pos = start + i + 1
	} else {
		s.pos = len(s.data)
	}
	return s.data[start:s.pos], start, true
}

// SetEncoding reinterprets the remaining input under enc.
func (s *Source) SetEncoding(enc *charset.Encoding) { s.enc = enc }

// Encoding returns the current encoding.
func (s *Source) Encoding() *charset.Encoding { return s.enc }

// Offset returns the byte cursor: the offset of the next unread line.
func (s *Source) Offset() int { return s.pos }

// Name returns the file name the source was created with.
func (s *Source) Name() string { return s.name }

// Bytes returns the whole underlying buffer.
func (s *Source) Bytes() []byte { return s.data }

// FromBytes reports whether the source is the raw file bytes rather than
// already-decoded text.
func (s *Source) FromBytes() bool { return s.fromBytes }

// slice returns data[start:end] clamped to the buffer.
func (s *Source) slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(s.data) {
		end = len(s.data)
	}
	if end < start {
		return nil
	}
	return s.data[start:end]
}
