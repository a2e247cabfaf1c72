package document

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Marshal renders v back to JSON, members in source order. A non-empty
// indent produces multi-line output. Undefined is written as null.
func Marshal(v Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, indent, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v Value, indent string, depth int) error {
	switch v.Kind() {
	case KindNull, KindUndefined:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.Bool()))
	case KindNumber:
		if lit := v.Literal(); lit != "" {
			buf.WriteString(lit)
		} else {
			buf.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
		}
	case KindString:
		return writeString(buf, v.Text())
	case KindArray:
		if v.Len() == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			if err := encode(buf, v.Index(i), indent, depth+1); err != nil {
				return err
			}
		}
		newline(buf, indent, depth)
		buf.WriteByte(']')
	case KindObject:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			if err := writeString(buf, v.Key(i)); err != nil {
				return err
			}
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			if err := encode(buf, v.Index(i), indent, depth+1); err != nil {
				return err
			}
		}
		newline(buf, indent, depth)
		buf.WriteByte('}')
	case KindInvalid:
		return fmt.Errorf("cannot encode %s value", v.Kind())
	default:
		return fmt.Errorf("cannot encode %s value", v.Kind())
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	quoted, err := json.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	buf.Write(quoted)
	return nil
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}
