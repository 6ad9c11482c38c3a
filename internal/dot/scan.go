// Package dot scans the DOT-style export of the code property graph into raw
// declaration spans. The scanner never reconstructs text: every declaration
// keeps the exact byte span it occupied in the input, which is what makes the
// downstream round-trip and integrity guarantees possible.
package dot

import (
	"fmt"
	"strings"
)

// DeclKind tags a scanned declaration.
type DeclKind int

const (
	DeclNode DeclKind = iota
	DeclEdge
)

// Decl is one declaration span recovered from the graph text.
type Decl struct {
	Kind DeclKind

	// ID is the node id, or the edge source id, without surrounding quotes.
	ID string

	// Target is the edge target id. Empty for node declarations.
	Target string

	// AttrText is the text between the opening '[' and the terminating ']',
	// trimmed of trailing whitespace. May contain literal newlines.
	AttrText string

	// Raw is the exact original span of the declaration, from the opening
	// quote of the id through the terminating ';'. Continuation lines of a
	// multi-line node declaration are preserved byte-for-byte.
	Raw string
}

// Result holds scanned declarations plus recovery diagnostics. A malformed
// declaration never aborts the scan; it is reported and skipped.
type Result struct {
	Decls       []Decl
	Diagnostics []string
}

func (r *Result) diag(format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, fmt.Sprintf(format, args...))
}

// Block-consuming states. A node's attribute block may span many physical
// lines, and a quoted value may contain real newlines, so quote state has to
// persist across line boundaries.
type blockState int

const (
	stateBlock        blockState = iota // inside the block, outside any quoted string
	stateQuoted                         // inside a quoted string
	stateQuotedEscape                   // inside a quoted string, previous byte was a backslash
)

type quoteTracker struct {
	state blockState
}

// feed advances the tracker by one byte and reports whether that byte is an
// unquoted ']'. Backslash runs are handled by the escape state: after an odd
// number of consecutive backslashes a '"' does not close the string.
func (q *quoteTracker) feed(c byte) bool {
	switch q.state {
	case stateQuoted:
		switch c {
		case '\\':
			q.state = stateQuotedEscape
		case '"':
			q.state = stateBlock
		}
	case stateQuotedEscape:
		q.state = stateQuoted
	default:
		switch c {
		case '"':
			q.state = stateQuoted
		case ']':
			return true
		}
	}
	return false
}

// Scan tokenizes the complete text of one graph into node and edge
// declarations. Lines whose first non-whitespace byte is not '"' (the digraph
// header, comments, the closing brace) are outside any declaration and are
// ignored.
func Scan(text string) *Result {
	res := &Result{}
	lines := strings.Split(text, "\n")

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimLeft(lines[i], " \t")
		if !strings.HasPrefix(trimmed, `"`) {
			continue
		}

		arrow, bracket := firstUnquoted(trimmed)
		if arrow >= 0 && (bracket < 0 || arrow < bracket) {
			// Edge declarations are always fully contained in one line.
			if d, ok := scanEdgeLine(trimmed, i+1, res); ok {
				res.Decls = append(res.Decls, d)
			}
			continue
		}

		if bracket < 0 {
			res.diag("line %d: declaration without attribute block", i+1)
			continue
		}

		d, next, ok := scanNodeBlock(lines, i, trimmed, bracket, res)
		i = next
		if ok {
			res.Decls = append(res.Decls, d)
		}
	}
	return res
}

// firstUnquoted returns the index of the first "->" and the first '[' that
// occur outside quoted strings in s, or -1 for each if absent.
func firstUnquoted(s string) (arrow, bracket int) {
	arrow, bracket = -1, -1
	inQuote := false
	backslashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '\\' {
				backslashes++
			} else if c == '"' && backslashes%2 == 0 {
				inQuote = false
				backslashes = 0
			} else {
				backslashes = 0
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
			backslashes = 0
		case '[':
			if bracket < 0 {
				bracket = i
			}
		case '-':
			if arrow < 0 && i+1 < len(s) && s[i+1] == '>' {
				arrow = i
			}
		}
		if arrow >= 0 && bracket >= 0 {
			return
		}
	}
	return
}

// readQuoted reads the quoted string starting at s[start] (which must be '"')
// and returns the content between the quotes without unescaping, plus the
// index just past the closing quote.
func readQuoted(s string, start int) (content string, end int, ok bool) {
	backslashes := 0
	for i := start + 1; i < len(s); i++ {
		switch {
		case s[i] == '\\':
			backslashes++
		case s[i] == '"' && backslashes%2 == 0:
			return s[start+1 : i], i + 1, true
		default:
			backslashes = 0
		}
	}
	return "", len(s), false
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// findTerminator scans s[from:] through the tracker looking for an unquoted
// ']' that is followed, after optional spaces or tabs, by ';'. A bare ']'
// without the trailing ';' stays part of the block.
func findTerminator(s string, from int, q *quoteTracker) (closeAt, semiAt int, ok bool) {
	for i := from; i < len(s); i++ {
		if q.feed(s[i]) {
			j := skipSpaces(s, i+1)
			if j < len(s) && s[j] == ';' {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// scanEdgeLine parses a single-line edge declaration:
//
//	"source" -> "target" [attrs];
func scanEdgeLine(line string, lineNo int, res *Result) (Decl, bool) {
	source, pos, ok := readQuoted(line, 0)
	if !ok {
		res.diag("line %d: unterminated edge source id", lineNo)
		return Decl{}, false
	}
	pos = skipSpaces(line, pos)
	if !strings.HasPrefix(line[pos:], "->") {
		res.diag("line %d: malformed edge operator", lineNo)
		return Decl{}, false
	}
	pos = skipSpaces(line, pos+2)
	if pos >= len(line) || line[pos] != '"' {
		res.diag("line %d: missing edge target id", lineNo)
		return Decl{}, false
	}
	target, pos, ok := readQuoted(line, pos)
	if !ok {
		res.diag("line %d: unterminated edge target id", lineNo)
		return Decl{}, false
	}
	pos = skipSpaces(line, pos)
	if pos >= len(line) || line[pos] != '[' {
		res.diag("line %d: edge without attribute block", lineNo)
		return Decl{}, false
	}

	q := &quoteTracker{}
	closeAt, semiAt, ok := findTerminator(line, pos+1, q)
	if !ok {
		res.diag("line %d: unterminated edge declaration", lineNo)
		return Decl{}, false
	}

	return Decl{
		Kind:     DeclEdge,
		ID:       source,
		Target:   target,
		AttrText: strings.TrimRight(line[pos+1:closeAt], " \t\r\n"),
		Raw:      line[:semiAt+1],
	}, true
}

// scanNodeBlock consumes a node declaration starting on lines[start]. The
// attribute block opens at trimmed[bracket] and runs, possibly across many
// lines, until an unquoted ']' followed by ';'. Returns the line index the
// outer scan should resume from.
func scanNodeBlock(lines []string, start int, trimmed string, bracket int, res *Result) (Decl, int, bool) {
	id, _, ok := readQuoted(trimmed, 0)
	if !ok {
		res.diag("line %d: unterminated node id", start+1)
		return Decl{}, start, false
	}

	q := &quoteTracker{}

	// Single-line declaration.
	if closeAt, semiAt, ok := findTerminator(trimmed, bracket+1, q); ok {
		return Decl{
			Kind:     DeclNode,
			ID:       id,
			AttrText: strings.TrimRight(trimmed[bracket+1:closeAt], " \t\r\n"),
			Raw:      trimmed[:semiAt+1],
		}, start, true
	}

	var attr, raw strings.Builder
	attr.WriteString(trimmed[bracket+1:])
	raw.WriteString(trimmed)

	for i := start + 1; i < len(lines); i++ {
		line := lines[i]
		if closeAt, semiAt, ok := findTerminator(line, 0, q); ok {
			attr.WriteByte('\n')
			attr.WriteString(line[:closeAt])
			raw.WriteByte('\n')
			raw.WriteString(line[:semiAt+1])
			return Decl{
				Kind:     DeclNode,
				ID:       id,
				AttrText: strings.TrimRight(attr.String(), " \t\r\n"),
				Raw:      raw.String(),
			}, i, true
		}
		attr.WriteByte('\n')
		attr.WriteString(line)
		raw.WriteByte('\n')
		raw.WriteString(line)
	}

	res.diag("node %q: unterminated attribute block at end of input", id)
	return Decl{}, len(lines), false
}
