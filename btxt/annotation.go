package btxt

import (
	"bytes"
	"fmt"
)

// DelimPair is an open/close delimiter pair an AnnotationParser will try, in
// the order given.
type DelimPair struct {
	Open  string
	Close string
}

// AnnotationParser recognises an annotation block: an opening delimiter,
// an optional "+lang" language qualifier, a key=value property body, and a
// closing delimiter. An annotation that sets code= is an inline-code
// annotation: its code comes from that property's value directly, rather
// than from a following fenced code block.
type AnnotationParser struct {
	Delims []DelimPair
}

// AnnotationResult is the outcome of AnnotationParser.Parse.
type AnnotationResult struct {
	Kind    MatchKind
	Lang    []byte
	Props   Properties
	HasCode bool
}

// Parse attempts to recognise an annotation block at the start of input,
// trying each configured delimiter pair in order.
func (ap AnnotationParser) Parse(input []byte) AnnotationResult {
	for _, delim := range ap.Delims {
		open := []byte(delim.Open)
		if !bytes.HasPrefix(input, open) {
			continue
		}
		return ap.parseWith(input, delim)
	}
	return AnnotationResult{Kind: NoMatch}
}

func (ap AnnotationParser) parseWith(input []byte, delim DelimPair) AnnotationResult {
	open := []byte(delim.Open)
	closer := []byte(delim.Close)
	rest := input[len(open):]

	// a language qualifier is introduced by a leading '+', e.g. "+python";
	// without it there is no language tag at all.
	var lang []byte
	if len(rest) > 0 && rest[0] == '+' {
		i := 1
		for i < len(rest) && isAlnum(rest[i]) {
			i++
		}
		lang = rest[1:i]
		rest = rest[i:]
	}

	closeAt := bytes.Index(rest, closer)
	if closeAt < 0 {
		return AnnotationResult{Kind: PartialMatch}
	}
	body := rest[:closeAt]

	props, ok, err := parseProperties(body)
	if err != nil {
		return AnnotationResult{Kind: Invalid}
	}
	if !ok {
		return AnnotationResult{Kind: NoMatch}
	}

	var langCopy []byte
	if len(lang) > 0 {
		langCopy = lang
	}

	// an inline-code annotation is one that carries a code= property; its
	// contents come from that property, not from a following fence.
	return AnnotationResult{
		Kind:    Matched,
		Lang:    langCopy,
		Props:   props,
		HasCode: props.Code.Present,
	}
}

// parseProperties parses an annotation body of whitespace-separated
// key=value pairs; spaces, tabs and newlines between pairs are all
// insignificant. A body that is empty or all whitespace is valid and
// resolves to the zero Properties. Any body that does not parse (text that
// is not key=value at all, unknown key, duplicate key, bad quoting,
// trailing garbage) yields a non-nil err with ok false; ok is true
// whenever err is nil.
func parseProperties(body []byte) (props Properties, ok bool, err error) {
	isSpace := func(c byte) bool { return isHSpace(c) || c == '\n' }

	seen := make(map[string]bool)
	i := 0
	for {
		for i < len(body) && isSpace(body[i]) {
			i++
		}
		if i >= len(body) {
			break
		}

		keyStart := i
		for i < len(body) && isAlnum(body[i]) {
			i++
		}
		if i == keyStart {
			return Properties{}, false, fmt.Errorf("btxt: malformed property at %q", body[i:])
		}
		key := string(body[keyStart:i])

		if i >= len(body) || body[i] != '=' {
			return Properties{}, false, fmt.Errorf("btxt: expected '=' after %q", key)
		}
		i++

		var value []byte
		value, i, err = parsePropertyValue(body, i)
		if err != nil {
			return Properties{}, false, err
		}

		if seen[key] {
			return Properties{}, false, fmt.Errorf("btxt: duplicate property %q", key)
		}
		seen[key] = true

		if err := props.set(key, value); err != nil {
			return Properties{}, false, err
		}
	}
	return props, true, nil
}

// parsePropertyValue parses one property value starting at body[i], which
// is either a bare word (letters/digits only, e.g. true/false or a mode
// name such as overwrite; insert[...] has to be quoted) or a quoted string using ', ", or the ||| delimiter, with no escaping.
func parsePropertyValue(body []byte, i int) (value []byte, next int, err error) {
	if i >= len(body) {
		return nil, i, fmt.Errorf("btxt: missing property value")
	}

	if bytes.HasPrefix(body[i:], []byte("|||")) {
		end := bytes.Index(body[i+3:], []byte("|||"))
		if end < 0 {
			return nil, i, fmt.Errorf("btxt: unterminated ||| value")
		}
		value = body[i+3 : i+3+end]
		return value, i + 3 + end + 3, nil
	}

	if body[i] == '\'' || body[i] == '"' {
		q := body[i]
		end := bytes.IndexByte(body[i+1:], q)
		if end < 0 {
			return nil, i, fmt.Errorf("btxt: unterminated %q value", string(q))
		}
		value = body[i+1 : i+1+end]
		return value, i + 1 + end + 1, nil
	}

	start := i
	for i < len(body) && isAlnum(body[i]) {
		i++
	}
	if i == start {
		return nil, i, fmt.Errorf("btxt: malformed property value at %q", body[i:])
	}
	return body[start:i], i, nil
}

// set applies one parsed key/value pair onto the receiver.
func (p *Properties) set(key string, value []byte) error {
	switch key {
	case "filename":
		p.Filename = OptionalBytes{Bytes: value, Present: true}
	case "tag":
		p.Tag = OptionalBytes{Bytes: value, Present: true}
	case "pre":
		p.Prefix = OptionalBytes{Bytes: value, Present: true}
	case "post":
		p.Postfix = OptionalBytes{Bytes: value, Present: true}
	case "code":
		p.Code = OptionalBytes{Bytes: value, Present: true}
	case "mode":
		m, err := ParseTangleMode(value)
		if err != nil {
			return err
		}
		p.Mode = &m
	case "ignore":
		switch {
		case bytes.Equal(value, []byte("true")):
			p.Ignore = True
		case bytes.Equal(value, []byte("false")):
			p.Ignore = False
		default:
			return fmt.Errorf("btxt: invalid ignore value %q", value)
		}
	default:
		return fmt.Errorf("btxt: unknown property %q", key)
	}
	return nil
}
