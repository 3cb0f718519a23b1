package lexer

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/alexisbouchez/rubylex/charset"
)

var emacsMarker = []byte("-*-")

// vimCoding matches the looser "coding: name" / "fileencoding=name" forms
// accepted in the first comment of a file.
var vimCoding = regexp.MustCompile(`(?i)coding[ \t]*[:=][ \t]*([-\w.]+)`)

func isMagicIgnored(c byte) bool {
	return c == '\'' || c == '"' || c == ':' || c == ';'
}

func isMagicSpace(c byte) bool { return isSpace(int(c)) }

// magicComment parses comment, the text after '#', as pragma pairs and
// applies them. It reports false when the comment is not a pragma line.
func (l *Lexer) magicComment(comment []byte) bool {
	if len(comment) <= 7 {
		return false
	}

	emacs := false
	body := comment
	if i := bytes.Index(comment, emacsMarker); i >= 0 {
		rest := comment[i+len(emacsMarker):]
		j := bytes.Index(rest, emacsMarker)
		if j < 0 {
			return false
		}
		body = rest[:j]
		emacs = true
	}

	i, end := 0, len(body)
	for i < end {
		for i < end && (isMagicIgnored(body[i]) || isMagicSpace(body[i])) {
			i++
		}
		nameBegin := i
		for i < end && !isMagicIgnored(body[i]) && !isMagicSpace(body[i]) {
			i++
		}
		nameEnd := i
		for i < end && isMagicSpace(body[i]) {
			i++
		}
		if i == end {
			break
		}
		if body[i] != ':' {
			if !emacs {
				return false
			}
			continue
		}
		i++
		for i < end && isMagicSpace(body[i]) {
			i++
		}
		if i == end {
			break
		}

		var valueBegin, valueEnd int
		if body[i] == '"' {
			i++
			valueBegin = i
			for i < end && body[i] != '"' {
				if body[i] == '\\' {
					i++
				}
				i++
			}
			if i > end {
				i = end
			}
			valueEnd = i
			if i < end {
				i++
			}
		} else {
			valueBegin = i
			for i < end && body[i] != '"' && body[i] != ';' && !isMagicSpace(body[i]) {
				i++
			}
			valueEnd = i
		}

		if emacs {
			for i < end && (body[i] == ';' || isMagicSpace(body[i])) {
				i++
			}
		} else {
			for i < end && isMagicSpace(body[i]) {
				i++
			}
			if i < end {
				return false
			}
		}

		name := strings.ReplaceAll(string(body[nameBegin:nameEnd]), "-", "_")
		if !l.applyPragma(name, string(body[valueBegin:valueEnd])) {
			return false
		}
	}
	return true
}

// applyPragma handles one name/value pair. It reports whether the name is
// a known pragma.
func (l *Lexer) applyPragma(name, value string) bool {
	l.log.Debug("magic comment", "file", l.file, "line", l.sourceLine, "name", name, "value", value)
	switch strings.ToLower(name) {
	case "coding", "encoding":
		if l.tokenSeen {
			l.warning("`" + name + "' is ignored after any tokens")
			return true
		}
		if l.commentAtTop() {
			l.setEncoding(value)
		}
	case "frozen_string_literal":
		l.setCompileOptionFlag("frozen_string_literal", value)
	case "primitives", "truffleruby_primitives":
		l.setCompileOptionFlag("primitives", value)
	case "warn_indent":
		if b, ok := l.asTruth(name, value); ok {
			l.warnIndent = b
		}
	default:
		return false
	}
	return true
}

func (l *Lexer) setCompileOptionFlag(name, value string) {
	if l.tokenSeen {
		l.warning("`" + name + "' is ignored after any tokens")
		return
	}
	b, ok := l.asTruth(name, value)
	if !ok {
		return
	}
	switch name {
	case "frozen_string_literal":
		l.frozenStringLiteral = b
	case "primitives":
		l.primitives = b
	}
}

func (l *Lexer) asTruth(name, value string) (bool, bool) {
	switch {
	case strings.EqualFold(value, "true"):
		return true, true
	case strings.EqualFold(value, "false"):
		return false, true
	}
	l.warning("invalid value for " + name + ": " + value)
	return false, false
}

// setFileEncoding looks for a vim or plain "coding" declaration in the
// first comment of the file.
func (l *Lexer) setFileEncoding(comment []byte) {
	if l.tokenSeen {
		return
	}
	m := vimCoding.FindSubmatch(comment)
	if m == nil {
		return
	}
	l.setEncoding(string(m[1]))
}

// setEncoding switches the source encoding named by a pragma.
func (l *Lexer) setEncoding(name string) {
	enc, err := charset.Lookup(name)
	if err != nil {
		l.compileError(UnknownEncoding, "unknown encoding name: %s", name)
	}
	if !enc.ASCIICompatible() {
		l.compileError(IncompatibleEncoding, "%s is not ASCII compatible", name)
	}
	if !l.src.FromBytes() && !enc.IsUTF8() && enc != charset.USASCII {
		l.compileError(EncodingUnavailable,
			"%s cannot be used as an encoding for a text source as it is not UTF-8 or a subset of UTF-8", name)
	}
	l.switchEncoding(enc)
}
