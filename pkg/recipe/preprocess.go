package recipe

import "strings"

// kwPrefix marks string literals that were written as :keywords.
const kwPrefix = "__kw_"

// preprocessSource rewrites recipe source into something zygomys reads:
//
//   - :keyword becomes the string "__kw_keyword", so keywords never clash
//     with user variables.
//   - kebab-case identifiers become snake_case (skip-header ->
//     skip_header), since zygomys reads a hyphen as subtraction.
//   - ; and ;; line comments become // comments.
//
// String literals, in double quotes or backticks, pass through untouched.
func preprocessSource(source string) string {
	s := &rewriter{src: source}
	s.out.Grow(len(source) + len(source)/4)
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '"':
			s.quoted('"', true)
		case c == '`':
			s.quoted('`', false)
		case c == ';':
			s.comment()
		case c == ':' && s.peek() == '=':
			s.copy(2)
		case c == ':' && isLetter(s.peek()):
			s.keyword()
		case c == '-' && s.pos > 0 && isIdentChar(s.src[s.pos-1]) && isLetter(s.peek()):
			s.out.WriteByte('_')
			s.pos++
		default:
			s.copy(1)
		}
	}
	return s.out.String()
}

type rewriter struct {
	src string
	pos int
	out strings.Builder
}

func (s *rewriter) peek() byte {
	if s.pos+1 < len(s.src) {
		return s.src[s.pos+1]
	}
	return 0
}

func (s *rewriter) copy(n int) {
	end := min(s.pos+n, len(s.src))
	s.out.WriteString(s.src[s.pos:end])
	s.pos = end
}

// quoted copies a literal including both delimiters.
func (s *rewriter) quoted(delim byte, escapes bool) {
	s.copy(1)
	for s.pos < len(s.src) && s.src[s.pos] != delim {
		if escapes && s.src[s.pos] == '\\' {
			s.copy(2)
			continue
		}
		s.copy(1)
	}
	s.copy(1)
}

func (s *rewriter) comment() {
	for s.pos < len(s.src) && s.src[s.pos] == ';' {
		s.pos++
	}
	s.out.WriteString("//")
	end := strings.IndexByte(s.src[s.pos:], '\n')
	if end < 0 {
		end = len(s.src) - s.pos
	}
	s.copy(end)
}

func (s *rewriter) keyword() {
	start := s.pos + 1
	end := start
	for end < len(s.src) && isKWChar(s.src[end]) {
		end++
	}
	s.out.WriteByte('"')
	s.out.WriteString(kwPrefix)
	s.out.WriteString(s.src[start:end])
	s.out.WriteByte('"')
	s.pos = end
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
