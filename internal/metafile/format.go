package metafile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"timemark/internal/timepoint"
)

// ErrMalformed reports content that is not a record sequence of the expected
// shape. Callers treat it exactly like a missing file.
var ErrMalformed = errors.New("malformed metadata")

// Encode renders the store as the textual record collection. The output is a
// value literal preceded by a return marker, one record per line:
//
//	return {
//	  { time = 10000000, label = "Point0001", formatted = "00:00:10.000", remark = "" },
//	}
func Encode(points []timepoint.Timepoint) []byte {
	var b strings.Builder
	b.WriteString("return {\n")
	for _, p := range points {
		fmt.Fprintf(&b, "  { time = %d, label = %s, formatted = %s, remark = %s },\n",
			p.Time, quote(p.Label), quote(p.Formatted), quote(p.Remark))
	}
	b.WriteString("}\n")
	return []byte(b.String())
}

func quote(s string) string {
	return strconv.Quote(s)
}

// Parse reads the record collection back. It is a dedicated parser for the
// fixed format; file content is never evaluated as code. Any deviation from
// the expected shape yields ErrMalformed.
func Parse(data []byte) ([]timepoint.Timepoint, error) {
	s := &scanner{input: string(data)}
	s.skipSpace()
	if !s.consumeWord("return") {
		return nil, fmt.Errorf("%w: missing return marker", ErrMalformed)
	}
	s.skipSpace()
	if !s.consume('{') {
		return nil, fmt.Errorf("%w: missing collection opener", ErrMalformed)
	}

	var points []timepoint.Timepoint
	for {
		s.skipSpace()
		if s.consume('}') {
			break
		}
		record, err := s.parseRecord()
		if err != nil {
			return nil, err
		}
		points = append(points, record)
		s.skipSpace()
		s.consume(',')
	}
	s.skipSpace()
	if !s.done() {
		return nil, fmt.Errorf("%w: trailing content", ErrMalformed)
	}
	return points, nil
}

type scanner struct {
	input string
	pos   int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.input) && unicode.IsSpace(rune(s.input[s.pos])) {
		s.pos++
	}
}

func (s *scanner) consume(ch byte) bool {
	if s.pos < len(s.input) && s.input[s.pos] == ch {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) consumeWord(word string) bool {
	if strings.HasPrefix(s.input[s.pos:], word) {
		end := s.pos + len(word)
		if end < len(s.input) && isIdentByte(s.input[end]) {
			return false
		}
		s.pos = end
		return true
	}
	return false
}

func (s *scanner) parseRecord() (timepoint.Timepoint, error) {
	var tp timepoint.Timepoint
	if !s.consume('{') {
		return tp, fmt.Errorf("%w: expected record opener at offset %d", ErrMalformed, s.pos)
	}
	seen := map[string]bool{}
	for {
		s.skipSpace()
		if s.consume('}') {
			break
		}
		key := s.parseIdent()
		if key == "" {
			return tp, fmt.Errorf("%w: expected field name at offset %d", ErrMalformed, s.pos)
		}
		s.skipSpace()
		if !s.consume('=') {
			return tp, fmt.Errorf("%w: expected '=' after %q", ErrMalformed, key)
		}
		s.skipSpace()
		switch key {
		case "time":
			value, err := s.parseInt()
			if err != nil {
				return tp, err
			}
			tp.Time = value
		case "label", "formatted", "remark":
			value, err := s.parseString()
			if err != nil {
				return tp, err
			}
			switch key {
			case "label":
				tp.Label = value
			case "formatted":
				tp.Formatted = value
			case "remark":
				tp.Remark = value
			}
		default:
			return tp, fmt.Errorf("%w: unknown field %q", ErrMalformed, key)
		}
		seen[key] = true
		s.skipSpace()
		s.consume(',')
	}
	for _, required := range []string{"time", "label", "formatted", "remark"} {
		if !seen[required] {
			return tp, fmt.Errorf("%w: record missing field %q", ErrMalformed, required)
		}
	}
	return tp, nil
}

func (s *scanner) parseIdent() string {
	start := s.pos
	for s.pos < len(s.input) && isIdentByte(s.input[s.pos]) {
		s.pos++
	}
	return s.input[start:s.pos]
}

func (s *scanner) parseInt() (int64, error) {
	start := s.pos
	if s.pos < len(s.input) && s.input[s.pos] == '-' {
		s.pos++
	}
	for s.pos < len(s.input) && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start {
		return 0, fmt.Errorf("%w: expected integer at offset %d", ErrMalformed, start)
	}
	value, err := strconv.ParseInt(s.input[start:s.pos], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad integer %q", ErrMalformed, s.input[start:s.pos])
	}
	return value, nil
}

func (s *scanner) parseString() (string, error) {
	if s.pos >= len(s.input) || s.input[s.pos] != '"' {
		return "", fmt.Errorf("%w: expected string at offset %d", ErrMalformed, s.pos)
	}
	end := s.pos + 1
	for end < len(s.input) {
		if s.input[end] == '\\' {
			end += 2
			continue
		}
		if s.input[end] == '"' {
			break
		}
		end++
	}
	if end >= len(s.input) {
		return "", fmt.Errorf("%w: unterminated string at offset %d", ErrMalformed, s.pos)
	}
	value, err := strconv.Unquote(s.input[s.pos : end+1])
	if err != nil {
		return "", fmt.Errorf("%w: bad string literal at offset %d", ErrMalformed, s.pos)
	}
	s.pos = end + 1
	return value, nil
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
