package props

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/graphbench/graphbench-go/internal/errors"
)

// Decode parses the textual literal held in a CSV properties cell into a Map.
// The accepted grammar is the JSON object grammar; Python-repr cells (single
// quotes, True/False/None) are normalized first, since upstream exports often
// carry them. Anything else, including a non-object top level, is a fatal
// decode error.
func Decode(text string) (Map, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, errors.DecodeError("empty properties literal")
	}

	if !gjson.Valid(t) {
		norm, ok := normalizePythonLiteral(t)
		if !ok || !gjson.Valid(norm) {
			return nil, errors.DecodeErrorf("invalid properties literal: %q", text)
		}
		t = norm
	}

	r := gjson.Parse(t)
	if !r.IsObject() {
		return nil, errors.DecodeErrorf("properties literal is not a mapping: %q", text)
	}
	return toMap(r), nil
}

func toMap(r gjson.Result) Map {
	m := make(Map)
	r.ForEach(func(key, value gjson.Result) bool {
		m[key.String()] = toValue(value)
		return true
	})
	return m
}

func toValue(r gjson.Result) Value {
	switch r.Type {
	case gjson.String:
		return String(r.Str)
	case gjson.Number:
		return Number(r.Num)
	case gjson.True:
		return Bool(true)
	case gjson.False:
		return Bool(false)
	case gjson.Null:
		return Null()
	case gjson.JSON:
		if r.IsArray() {
			var elems []Value
			r.ForEach(func(_, value gjson.Result) bool {
				elems = append(elems, toValue(value))
				return true
			})
			return List(elems...)
		}
		return FromMap(toMap(r))
	}
	return Null()
}

// normalizePythonLiteral rewrites a Python-repr mapping literal into JSON:
// single-quoted strings become double-quoted and the bare constants True,
// False and None become their JSON spellings. Returns false when the text
// contains an unterminated string.
func normalizePythonLiteral(s string) (string, bool) {
	var sb strings.Builder
	sb.Grow(len(s))

	i := 0
	for i < len(s) {
		c := s[i]
		switch c {
		case '\'', '"':
			body, rest, ok := scanString(s[i:], c)
			if !ok {
				return "", false
			}
			sb.WriteByte('"')
			writeEscaped(&sb, body)
			sb.WriteByte('"')
			i += rest
		default:
			if isIdentStart(c) {
				j := i
				for j < len(s) && isIdentPart(s[j]) {
					j++
				}
				switch s[i:j] {
				case "True":
					sb.WriteString("true")
				case "False":
					sb.WriteString("false")
				case "None":
					sb.WriteString("null")
				default:
					sb.WriteString(s[i:j])
				}
				i = j
				continue
			}
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), true
}

// scanString consumes a quoted string starting at s[0] (the opening quote),
// returning the unescaped body and the number of bytes consumed.
func scanString(s string, quote byte) (string, int, bool) {
	var body strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			next := s[i+1]
			switch next {
			case '\'', '"', '\\':
				body.WriteByte(next)
			case 'n':
				body.WriteByte('\n')
			case 't':
				body.WriteByte('\t')
			case 'r':
				body.WriteByte('\r')
			default:
				body.WriteByte('\\')
				body.WriteByte(next)
			}
			i += 2
			continue
		}
		if c == quote {
			return body.String(), i + 1, true
		}
		body.WriteByte(c)
		i++
	}
	return "", 0, false
}

func writeEscaped(sb *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
