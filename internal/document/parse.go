package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

// SyntaxError reports input that is not a single well-formed JSON value.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return e.Err.Error() }
func (e *SyntaxError) Unwrap() error { return e.Err }

// Parse decodes data into a Document, keeping object members in source
// order. Any syntax problem is returned as a *SyntaxError carrying the
// parser's own description.
func Parse(data []byte) (*Document, error) {
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, &SyntaxError{Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	p := &parser{dec: dec, b: NewBuilder()}

	tok, err := dec.Token()
	if err != nil {
		return nil, &SyntaxError{Err: err}
	}
	root, err := p.value(tok)
	if err != nil {
		return nil, &SyntaxError{Err: err}
	}
	if extra, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected %v after top-level value", extra)
		}
		return nil, &SyntaxError{Err: err}
	}
	return p.b.Build(root), nil
}

type parser struct {
	dec *json.Decoder
	b   *Builder
}

func (p *parser) next() (json.Token, error) {
	tok, err := p.dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (p *parser) value(tok json.Token) (Index, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '[':
			return p.array()
		case '{':
			return p.object()
		default:
			return 0, fmt.Errorf("unexpected delimiter %q", rune(v))
		}
	case string:
		return p.b.String(v), nil
	case bool:
		return p.b.Bool(v), nil
	case json.Number:
		return p.b.NumberLiteral(string(v))
	case float64:
		return p.b.Number(v), nil
	case nil:
		return p.b.Null(), nil
	default:
		return 0, fmt.Errorf("unexpected token %T", tok)
	}
}

func (p *parser) array() (Index, error) {
	var elems []Index
	for {
		tok, err := p.next()
		if err != nil {
			return 0, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return p.b.Array(elems...), nil
		}
		idx, err := p.value(tok)
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", len(elems), err)
		}
		elems = append(elems, idx)
	}
}

func (p *parser) object() (Index, error) {
	var members []Member
	for {
		tok, err := p.next()
		if err != nil {
			return 0, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return p.b.Object(members...), nil
		}
		key, ok := tok.(string)
		if !ok {
			return 0, fmt.Errorf("expected object key, got %v", tok)
		}
		tok, err = p.next()
		if err != nil {
			return 0, err
		}
		idx, err := p.value(tok)
		if err != nil {
			return 0, fmt.Errorf("member %s: %w", strconv.Quote(key), err)
		}
		members = append(members, Member{Key: key, Value: idx})
	}
}
