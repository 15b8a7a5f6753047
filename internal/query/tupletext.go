package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/portsight/vendor-intel/internal/models"
	srvErrors "github.com/portsight/vendor-intel/pkg/errors"
)

// ParseTupleText decodes the textual rendering of a collection of tuples
// that some driver paths return in place of native rows, e.g.
//
//	[('Acme Marine BV', 'rotterdam', 12), ('Bolt & Co', 'antwerp', 7)]
//
// Strings may be single- or double-quoted with backslash escapes; numbers
// decode to int64 when integral and float64 otherwise; None decodes to nil.
// Every tuple must match the expected column count or the whole parse fails
// with MalformedResultError. An empty string or "[]" is a valid empty
// result.
func ParseTupleText(text string, columns int) ([]models.Row, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "[]" {
		return nil, nil
	}

	sc := &tupleScanner{src: []rune(trimmed)}
	rows, err := sc.parseList(columns)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type tupleScanner struct {
	src []rune
	pos int
}

func (s *tupleScanner) parseList(columns int) ([]models.Row, error) {
	if err := s.expect('['); err != nil {
		return nil, err
	}

	var rows []models.Row
	s.skipSpace()
	if s.peek() == ']' {
		s.pos++
		return rows, s.expectEnd()
	}

	for {
		row, err := s.parseTuple(columns)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)

		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
		case ']':
			s.pos++
			return rows, s.expectEnd()
		default:
			return nil, s.syntaxError(columns, "expected ',' or ']' after tuple")
		}
	}
}

func (s *tupleScanner) parseTuple(columns int) (models.Row, error) {
	if err := s.expect('('); err != nil {
		return nil, err
	}

	var row models.Row
	for {
		s.skipSpace()
		// a trailing comma before ')' is legal in one-element tuples
		if s.peek() == ')' {
			s.pos++
			break
		}

		value, err := s.parseValue(columns)
		if err != nil {
			return nil, err
		}
		row = append(row, value)

		s.skipSpace()
		if s.peek() == ',' {
			s.pos++
			continue
		}
		if s.peek() == ')' {
			s.pos++
			break
		}
		return nil, s.syntaxError(columns, "expected ',' or ')' inside tuple")
	}

	if len(row) != columns {
		return nil, srvErrors.NewMalformedResultError(columns, len(row), "tuple arity mismatch")
	}
	return row, nil
}

func (s *tupleScanner) parseValue(columns int) (any, error) {
	s.skipSpace()
	r := s.peek()
	switch {
	case r == '\'' || r == '"':
		v, err := s.parseString(columns)
		if err != nil {
			return nil, err
		}
		return v, nil
	case unicode.IsLetter(r):
		return s.parseWord(columns)
	case r == '-' || r == '+' || unicode.IsDigit(r):
		return s.parseNumber(columns)
	default:
		return nil, s.syntaxError(columns, fmt.Sprintf("unexpected character %q", r))
	}
}

func (s *tupleScanner) parseString(columns int) (string, error) {
	quote := s.src[s.pos]
	s.pos++

	var b strings.Builder
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch r {
		case '\\':
			s.pos++
			if s.pos >= len(s.src) {
				return "", s.syntaxError(columns, "unterminated escape")
			}
			switch s.src[s.pos] {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(s.src[s.pos])
			}
			s.pos++
		case quote:
			s.pos++
			return b.String(), nil
		default:
			b.WriteRune(r)
			s.pos++
		}
	}
	return "", s.syntaxError(columns, "unterminated string")
}

func (s *tupleScanner) parseWord(columns int) (any, error) {
	start := s.pos
	for s.pos < len(s.src) && (unicode.IsLetter(s.src[s.pos]) || unicode.IsDigit(s.src[s.pos])) {
		s.pos++
	}
	switch word := string(s.src[start:s.pos]); word {
	case "None", "NULL":
		return nil, nil
	case "True":
		return true, nil
	case "False":
		return false, nil
	default:
		return nil, s.syntaxError(columns, fmt.Sprintf("unexpected token %q", word))
	}
}

func (s *tupleScanner) parseNumber(columns int) (any, error) {
	start := s.pos
	if r := s.peek(); r == '-' || r == '+' {
		s.pos++
	}
	isFloat := false
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		if unicode.IsDigit(r) {
			s.pos++
			continue
		}
		if r == '.' || r == 'e' || r == 'E' || r == '-' && isFloat || r == '+' && isFloat {
			isFloat = true
			s.pos++
			continue
		}
		break
	}

	token := string(s.src[start:s.pos])
	if !isFloat {
		if n, err := strconv.ParseInt(token, 10, 64); err == nil {
			return n, nil
		}
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, s.syntaxError(columns, fmt.Sprintf("invalid number %q", token))
	}
	return f, nil
}

func (s *tupleScanner) expect(r rune) error {
	s.skipSpace()
	if s.peek() != r {
		return srvErrors.NewMalformedResultError(0, 0,
			fmt.Sprintf("tuple text: expected %q at offset %d", r, s.pos))
	}
	s.pos++
	return nil
}

func (s *tupleScanner) expectEnd() error {
	s.skipSpace()
	if s.pos != len(s.src) {
		return srvErrors.NewMalformedResultError(0, 0,
			fmt.Sprintf("tuple text: trailing data at offset %d", s.pos))
	}
	return nil
}

func (s *tupleScanner) peek() rune {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *tupleScanner) skipSpace() {
	for s.pos < len(s.src) && unicode.IsSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *tupleScanner) syntaxError(columns int, detail string) error {
	return srvErrors.NewMalformedResultError(columns, 0,
		fmt.Sprintf("tuple text: %s at offset %d", detail, s.pos))
}
