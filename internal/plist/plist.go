// Package plist decodes XML property lists, the format TextMate themes,
// grammars, snippets and preferences are stored in.
package plist

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Decode reads an XML property list and returns its top-level value.
//
// Values map to Go types as follows: dict to map[string]any, array to
// []any, string, data and date to string, integer to int64, real to
// float64, true and false to bool.
func Decode(r io.Reader) (any, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing plist: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parsing plist: empty document")
	}

	// A bare value without the <plist> wrapper is accepted too.
	if root.Tag != "plist" {
		return decodeValue(root)
	}

	children := root.ChildElements()
	if len(children) != 1 {
		return nil, fmt.Errorf("plist: expected one top-level value, found %d", len(children))
	}
	return decodeValue(children[0])
}

// DecodeDict decodes a property list whose top-level value is a dict.
func DecodeDict(r io.Reader) (map[string]any, error) {
	v, err := Decode(r)
	if err != nil {
		return nil, err
	}
	dict, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("plist: top-level value is %T, want dict", v)
	}
	return dict, nil
}

func decodeValue(e *etree.Element) (any, error) {
	switch e.Tag {
	case "dict":
		return decodeDict(e)
	case "array":
		children := e.ChildElements()
		out := make([]any, 0, len(children))
		for _, child := range children {
			v, err := decodeValue(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case "string", "date":
		return e.Text(), nil
	case "data":
		return strings.Join(strings.Fields(e.Text()), ""), nil
	case "integer":
		n, err := strconv.ParseInt(strings.TrimSpace(e.Text()), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("plist: invalid integer %q: %w", e.Text(), err)
		}
		return n, nil
	case "real":
		f, err := strconv.ParseFloat(strings.TrimSpace(e.Text()), 64)
		if err != nil {
			return nil, fmt.Errorf("plist: invalid real %q: %w", e.Text(), err)
		}
		return f, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return nil, fmt.Errorf("plist: unsupported element <%s>", e.Tag)
	}
}

// decodeDict pairs each <key> with the value element after it.
func decodeDict(e *etree.Element) (map[string]any, error) {
	out := make(map[string]any)
	children := e.ChildElements()

	for i := 0; i < len(children); i++ {
		key := children[i]
		if key.Tag != "key" {
			return nil, fmt.Errorf("plist: expected <key> in dict, found <%s>", key.Tag)
		}
		if i+1 >= len(children) {
			return nil, fmt.Errorf("plist: key %q has no value", key.Text())
		}
		i++
		v, err := decodeValue(children[i])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key.Text(), err)
		}
		out[key.Text()] = v
	}

	return out, nil
}
