package jsonschema

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Render serializes s as pretty-printed JSON (two-space indent, trailing
// newline). It performs no I/O, and the same tree always renders to the same
// bytes. '<', '>' and '&' are written as is.
func Render(s *Schema) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("jsonschema: nil schema")
	}
	raw, err := json.MarshalNoEscape(s)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, unescapeHTML(raw), "", "  "); err != nil {
		return nil, fmt.Errorf("jsonschema: indent: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// unescapeHTML turns the \u003c, \u003e and \u0026 escapes back into
// '<', '>' and '&'. The ordered property map encodes its values with
// encoding/json, which escapes them regardless of the outer encoder. Other
// escapes, including an escaped backslash followed by "u003c", are copied
// untouched.
func unescapeHTML(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u00`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '\\' || i+1 >= len(b) {
			out = append(out, c)
			continue
		}
		if b[i+1] == 'u' && i+5 < len(b) {
			switch string(b[i+2 : i+6]) {
			case "003c":
				out = append(out, '<')
				i += 5
				continue
			case "003e":
				out = append(out, '>')
				i += 5
				continue
			case "0026":
				out = append(out, '&')
				i += 5
				continue
			}
		}
		out = append(out, c, b[i+1])
		i++
	}
	return out
}
