package parser

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const tagKey = "deref"

// ErrBadTag reports a deref tag that could not be parsed.
var ErrBadTag = errors.New("malformed deref tag")

type derefTag struct {
	Marked  bool
	Mutable bool
}

// parseDerefTag reads the deref key from a raw (unquoted) struct tag.
// A deref key that does not parse as a conventional key:"value" pair is
// rejected rather than silently ignored.
func parseDerefTag(raw string) (derefTag, error) {
	value, ok := reflect.StructTag(raw).Lookup(tagKey)
	if !ok {
		if malformedDerefKey(raw) {
			return derefTag{}, fmt.Errorf("%w: %q", ErrBadTag, raw)
		}
		return derefTag{}, nil
	}

	tag := derefTag{Marked: true}
	if value == "" {
		return tag, nil
	}
	for _, opt := range strings.Split(value, ",") {
		switch strings.TrimSpace(opt) {
		case "mutable":
			tag.Mutable = true
		case "":
		default:
			return derefTag{}, fmt.Errorf("%w: unknown option %q", ErrBadTag, opt)
		}
	}
	return tag, nil
}

// malformedDerefKey walks key:"value" pairs the way reflect.StructTag
// does and reports whether a deref key itself fails to parse. A deref
// substring inside another key's quoted value is not an error.
func malformedDerefKey(tag string) bool {
	for tag != "" {
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}
		tag = tag[i:]
		if tag == "" {
			return false
		}

		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}
		if i == 0 {
			return false
		}
		name := tag[:i]
		if i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			return name == tagKey
		}
		tag = tag[i+1:]

		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(tag) {
			return name == tagKey
		}
		qvalue := tag[:i+1]
		tag = tag[i+1:]

		if name == tagKey {
			_, err := strconv.Unquote(qvalue)
			return err != nil
		}
	}
	return false
}
