package model

import "strings"

const (
	// StatementSeparator separates statements within one batch
	StatementSeparator = ';'
	// RedirectMarker separates a statement from its output target
	RedirectMarker = ">>"
	// SuppressMarker as a redirect target discards the result
	SuppressMarker = "!"
)

// OutputMode tells the renderer what to do with a statement result.
type OutputMode int

const (
	// OutputScreen renders the result as a table on standard output
	OutputScreen OutputMode = iota
	// OutputSuppress discards the result
	OutputSuppress
	// OutputRedirect writes the result as delimited text to Directive.Target
	OutputRedirect
)

// String returns the name of the output mode.
func (m OutputMode) String() string {
	switch m {
	case OutputScreen:
		return "screen"
	case OutputSuppress:
		return "suppress"
	case OutputRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Directive is a parsed pass-through statement.
type Directive struct {
	// Query is the text handed to the relational engine
	Query string
	// Mode is the output directive
	Mode OutputMode
	// Target is the redirect path. Empty means standard output.
	Target string
}

// ToStdout reports whether a redirect writes to standard output.
func (d Directive) ToStdout() bool {
	return d.Mode == OutputRedirect && d.Target == ""
}

// scanner tracks quoting and comment state while walking statement text.
// Separators inside string literals, quoted identifiers or comments are not
// significant.
type scanner struct {
	quote   byte
	comment byte // '-' inside a line comment, '*' inside a block comment
	skip    bool
}

// step consumes text[i] and reports whether it was outside any quoted or
// commented region.
func (s *scanner) step(text string, i int) bool {
	c := text[i]
	next := byte(0)
	if i+1 < len(text) {
		next = text[i+1]
	}

	switch {
	case s.skip:
		s.skip = false
		return false
	case s.comment == '-':
		if c == '\n' {
			s.comment = 0
		}
		return false
	case s.comment == '*':
		if c == '*' && next == '/' {
			s.comment = 0
			s.skip = true
		}
		return false
	case s.quote != 0:
		if c == s.quote {
			s.quote = 0
		}
		return false
	}

	switch c {
	case '\'', '"', '`':
		s.quote = c
		return false
	case '[':
		s.quote = ']'
		return false
	case '-':
		if next == '-' {
			s.comment = '-'
			return false
		}
	case '/':
		if next == '*' {
			s.comment = '*'
			s.skip = true
			return false
		}
	}
	return true
}

// SplitStatements splits a batch on the statement separator and returns the
// trimmed, non-empty statements in order. Leading comments are dropped from
// each statement. An unterminated quote or block comment extends to the end of
// the batch.
func SplitStatements(batch string) []string {
	var (
		statements []string
		sc         scanner
		start      int
	)
	for i := 0; i < len(batch); i++ {
		if sc.step(batch, i) && batch[i] == StatementSeparator {
			statements = appendStatement(statements, batch[start:i])
			start = i + 1
		}
	}
	return appendStatement(statements, batch[start:])
}

func appendStatement(statements []string, raw string) []string {
	if stmt := TrimLeadingComments(raw); stmt != "" {
		return append(statements, stmt)
	}
	return statements
}

// TrimLeadingComments drops surrounding whitespace plus any "--" line
// comments and "/* */" block comments that precede the first token.
func TrimLeadingComments(text string) string {
	for {
		text = strings.TrimSpace(text)
		switch {
		case strings.HasPrefix(text, "--"):
			i := strings.IndexByte(text, '\n')
			if i < 0 {
				return ""
			}
			text = text[i+1:]
		case strings.HasPrefix(text, "/*"):
			i := strings.Index(text[2:], "*/")
			if i < 0 {
				return ""
			}
			text = text[i+4:]
		default:
			return text
		}
	}
}

// ContainsKeyword reports whether keyword appears in stmt as a whole word
// outside quotes and comments. The match ignores case.
func ContainsKeyword(stmt, keyword string) bool {
	var sc scanner
	for i := 0; i < len(stmt); i++ {
		if !sc.step(stmt, i) || (i > 0 && isWordByte(stmt[i-1])) {
			continue
		}
		end := i + len(keyword)
		if end <= len(stmt) && strings.EqualFold(stmt[i:end], keyword) &&
			(end == len(stmt) || !isWordByte(stmt[end])) {
			return true
		}
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// ParseDirective splits a statement once on the first redirect marker found
// outside quotes and comments.
func ParseDirective(stmt string) Directive {
	var sc scanner
	for i := 0; i < len(stmt); i++ {
		if !sc.step(stmt, i) {
			continue
		}
		if strings.HasPrefix(stmt[i:], RedirectMarker) {
			return newDirective(stmt[:i], stmt[i+len(RedirectMarker):])
		}
	}
	return Directive{Query: strings.TrimSpace(stmt), Mode: OutputScreen}
}

func newDirective(query, target string) Directive {
	target = strings.TrimSpace(target)
	if target == SuppressMarker {
		return Directive{Query: strings.TrimSpace(query), Mode: OutputSuppress}
	}
	return Directive{Query: strings.TrimSpace(query), Mode: OutputRedirect, Target: target}
}
