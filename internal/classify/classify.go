// Package classify counts total, blank, and comment lines in raw file
// content using comment-family-specific lexical scanners.
package classify

// Family identifies a comment-syntax profile shared by a group of languages.
type Family int

const (
	// FamilyNone recognizes no comment markers at all.
	FamilyNone Family = iota
	// FamilyC uses // line comments and /* */ block comments.
	FamilyC
	// FamilyHash uses # line comments.
	FamilyHash
	// FamilyDash uses -- line comments.
	FamilyDash
	// FamilySemicolon uses ; line comments.
	FamilySemicolon
	// FamilyPercent uses % line comments.
	FamilyPercent
	// FamilyXML uses <!-- --> block comments and no string escaping.
	FamilyXML
)

// String returns the family name used in reports.
func (f Family) String() string {
	switch f {
	case FamilyC:
		return "c-style"
	case FamilyHash:
		return "hash"
	case FamilyDash:
		return "double-dash"
	case FamilySemicolon:
		return "semicolon"
	case FamilyPercent:
		return "percent"
	case FamilyXML:
		return "xml"
	default:
		return "none"
	}
}

// Syntax describes the lexical profile of one comment family.
type Syntax struct {
	// Line holds line-comment prefixes. Empty means none recognized.
	Line []string
	// BlockOpen and BlockClose delimit block comments. Empty means no
	// block comments. Nesting is not recognized.
	BlockOpen  string
	BlockClose string
	// Strings enables "..." and '...' literal recognition with backslash
	// escapes. Markup families leave this off.
	Strings bool
}

// SyntaxFor returns the lexical profile for a family.
func SyntaxFor(f Family) Syntax {
	switch f {
	case FamilyC:
		return Syntax{Line: []string{"//"}, BlockOpen: "/*", BlockClose: "*/", Strings: true}
	case FamilyHash:
		return Syntax{Line: []string{"#"}, Strings: true}
	case FamilyDash:
		return Syntax{Line: []string{"--"}, Strings: true}
	case FamilySemicolon:
		return Syntax{Line: []string{";"}, Strings: true}
	case FamilyPercent:
		return Syntax{Line: []string{"%"}, Strings: true}
	case FamilyXML:
		return Syntax{BlockOpen: "<!--", BlockClose: "-->"}
	default:
		// The no-comments family reuses the generic scanner with the
		// comment markers disabled, not a dedicated no-op path.
		return Syntax{Strings: true}
	}
}

// Stats is the per-file line tally produced by Count.
type Stats struct {
	Total   uint64 `json:"total"`
	Blank   uint64 `json:"blank"`
	Comment uint64 `json:"comment"`
}

// Code returns the derived code-line count.
func (s Stats) Code() uint64 {
	return s.Total - s.Blank - s.Comment
}

// Add accumulates another tally into s.
func (s *Stats) Add(o Stats) {
	s.Total += o.Total
	s.Blank += o.Blank
	s.Comment += o.Comment
}

// scanner is the streaming line-classification state machine. One logical
// line ends at CR, LF, or CRLF (counted once). Classification rules, applied
// at each terminator:
//
//   - blank: no non-whitespace byte seen and not inside an open block comment
//   - comment: no code token seen, and a comment marker was seen or the line
//     ends inside an open block comment
//   - code: otherwise; any code token wins even if comment text also appears
type scanner struct {
	syn   Syntax
	stats Stats

	inBlock bool

	// per-line state, reset at each terminator
	sawNonWS      bool
	sawComment    bool
	sawCode       bool
	inString      bool
	quote         byte
	escaped       bool
	inLineComment bool
}

// Count tallies the lines of data under the given syntax profile. A file
// without a trailing terminator still has its final line classified when any
// non-whitespace, comment, or open-block state was observed on it.
func Count(data []byte, syn Syntax) Stats {
	s := scanner{syn: syn}
	i := 0
	for i < len(data) {
		b := data[i]

		// Line terminators are handled ahead of the lexical state
		// machine, so a backslash escape inside a string consumes the
		// newline as string content without suppressing the line
		// break. Changing this ordering would alter counts for files
		// containing line-continuation escapes.
		if b == '\n' || b == '\r' {
			if b == '\r' && i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			s.endLine()
			i++
			continue
		}

		i += s.consume(data[i:], b)
	}
	if s.sawNonWS || s.sawComment || s.sawCode || s.inBlock {
		s.endLine()
	}
	return s.stats
}

// consume processes one token starting at rest[0] and returns the number of
// bytes consumed.
func (s *scanner) consume(rest []byte, b byte) int {
	if s.inLineComment {
		return 1
	}

	if s.inString {
		s.sawCode = true
		if s.escaped {
			s.escaped = false
			return 1
		}
		switch b {
		case '\\':
			s.escaped = true
		case s.quote:
			s.inString = false
		}
		s.sawNonWS = true
		return 1
	}

	if s.inBlock {
		s.sawComment = true
		s.sawNonWS = true
		if s.syn.BlockClose != "" && hasPrefix(rest, s.syn.BlockClose) {
			s.inBlock = false
			return len(s.syn.BlockClose)
		}
		return 1
	}

	if s.syn.BlockOpen != "" && hasPrefix(rest, s.syn.BlockOpen) {
		s.inBlock = true
		s.sawComment = true
		s.sawNonWS = true
		return len(s.syn.BlockOpen)
	}

	for _, prefix := range s.syn.Line {
		if hasPrefix(rest, prefix) {
			s.inLineComment = true
			s.sawComment = true
			s.sawNonWS = true
			return len(prefix)
		}
	}

	if s.syn.Strings && (b == '"' || b == '\'') {
		s.inString = true
		s.quote = b
		s.sawCode = true
		s.sawNonWS = true
		return 1
	}

	if isSpace(b) {
		return 1
	}

	s.sawCode = true
	s.sawNonWS = true
	return 1
}

// endLine classifies the finished line and resets per-line state. Block
// comment state carries across lines; string state does as well since the
// scanners never treat a bare terminator as closing a literal.
func (s *scanner) endLine() {
	s.stats.Total++
	switch {
	case !s.sawNonWS && !s.inBlock:
		s.stats.Blank++
	case !s.sawCode && (s.sawComment || s.inBlock):
		s.stats.Comment++
	}

	s.sawNonWS = false
	s.sawComment = false
	s.sawCode = false
	s.inLineComment = false
	s.escaped = false
}

func hasPrefix(data []byte, prefix string) bool {
	if len(data) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if data[i] != prefix[i] {
			return false
		}
	}
	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}
