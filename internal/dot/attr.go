package dot

import "strings"

// DecodeAttrs parses the text between '[' and ']' of a declaration into a
// key→value map. Pairs are separated by whitespace and/or commas. Values are
// either double-quoted strings or bare tokens. Fragments that do not form a
// key=value pair are skipped. If a key appears twice, the later occurrence
// wins.
func DecodeAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	i := 0
	for i < len(s) {
		if isSep(s[i]) {
			i++
			continue
		}
		if !isIdentStart(s[i]) {
			i = skipFragment(s, i)
			continue
		}

		keyStart := i
		for i < len(s) && isIdentPart(s[i]) {
			i++
		}
		key := s[keyStart:i]

		j := skipSpaces(s, i)
		if j >= len(s) || s[j] != '=' {
			// Key with no '=' is an unrecognized fragment, not an error.
			i = skipFragment(s, i)
			continue
		}
		i = skipSpaces(s, j+1)

		var val string
		if i < len(s) && s[i] == '"' {
			val, i = decodeQuoted(s, i)
		} else {
			valStart := i
			for i < len(s) && !isSep(s[i]) && s[i] != ']' {
				i++
			}
			val = s[valStart:i]
		}
		attrs[key] = val
	}
	return attrs
}

// decodeQuoted decodes the quoted value starting at s[start] (a '"') and
// returns the decoded content plus the index just past the closing quote.
// Recognized escapes are \" \\ \n \t; any other escaped character is passed
// through with its backslash intact. An unterminated value consumes the rest
// of the input.
func decodeQuoted(s string, start int) (string, int) {
	var b strings.Builder
	i := start + 1
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i+1])
			}
			i += 2
			continue
		}
		if c == '"' {
			return b.String(), i + 1
		}
		b.WriteByte(c)
		i++
	}
	return b.String(), i
}

// skipFragment advances past an unrecognized fragment, treating quoted runs
// as opaque so separators inside them do not split the fragment.
func skipFragment(s string, i int) int {
	for i < len(s) && !isSep(s[i]) {
		if s[i] == '"' {
			_, i = decodeQuoted(s, i)
			continue
		}
		i++
	}
	return i
}

func isSep(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ','
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
