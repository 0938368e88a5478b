package signature

import (
	"fmt"
	"strings"
)

// TermKind classifies a parsed signature term.
type TermKind int

const (
	KindInvalid TermKind = iota
	KindBasic            // single-character basic type code
	KindVariant          // 'v'
	KindArray            // 'a' followed by the element type
	KindStruct           // '(' ... ')'
	KindDict             // '{' key value '}'
)

// Term is one parsed node of the signature grammar. Raw always holds the
// exact substring of the input that produced the term, so top-level
// comparison can treat nested containers as indivisible tokens.
type Term struct {
	Kind   TermKind
	Code   byte   // basic type code, only for KindBasic
	Elem   *Term  // array element, only for KindArray
	Fields []Term // struct members, only for KindStruct
	Key    *Term  // dict-entry key, only for KindDict
	Value  *Term  // dict-entry value, only for KindDict
	Raw    string
}

// basicCodes are the D-Bus basic type codes: byte, bool, int16, uint16,
// int32, uint32, int64, uint64, double, string, object path, signature,
// unix fd.
const basicCodes = "ybnqiuxtdsogh"

func isBasic(c byte) bool {
	return strings.IndexByte(basicCodes, c) >= 0
}

// ParseError reports an invalid signature string.
type ParseError struct {
	Signature string
	Offset    int
	Reason    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid signature %q at offset %d: %s", e.Signature, e.Offset, e.Reason)
}

// Parse parses a complete signature string into its top-level term sequence.
// The empty string parses to an empty sequence, matching a signal or method
// that carries no arguments.
func Parse(s string) ([]Term, error) {
	var terms []Term
	i := 0
	for i < len(s) {
		t, next, err := parseTerm(s, i)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
		i = next
	}
	return terms, nil
}

// parseTerm parses a single term starting at offset i and returns the term
// plus the offset just past it.
func parseTerm(s string, i int) (Term, int, error) {
	if i >= len(s) {
		return Term{}, i, &ParseError{Signature: s, Offset: i, Reason: "unexpected end of signature"}
	}

	switch c := s[i]; {
	case c == 'v':
		return Term{Kind: KindVariant, Code: 'v', Raw: s[i : i+1]}, i + 1, nil

	case isBasic(c):
		return Term{Kind: KindBasic, Code: c, Raw: s[i : i+1]}, i + 1, nil

	case c == 'a':
		elem, next, err := parseTerm(s, i+1)
		if err != nil {
			return Term{}, i, err
		}
		return Term{Kind: KindArray, Elem: &elem, Raw: s[i:next]}, next, nil

	case c == '(':
		var fields []Term
		j := i + 1
		for {
			if j >= len(s) {
				return Term{}, i, &ParseError{Signature: s, Offset: i, Reason: "unclosed struct"}
			}
			if s[j] == ')' {
				break
			}
			f, next, err := parseTerm(s, j)
			if err != nil {
				return Term{}, i, err
			}
			fields = append(fields, f)
			j = next
		}
		if len(fields) == 0 {
			return Term{}, i, &ParseError{Signature: s, Offset: i, Reason: "empty struct"}
		}
		return Term{Kind: KindStruct, Fields: fields, Raw: s[i : j+1]}, j + 1, nil

	case c == '{':
		// Dict entries carry exactly two members and the key must be basic.
		key, next, err := parseTerm(s, i+1)
		if err != nil {
			return Term{}, i, err
		}
		if key.Kind != KindBasic {
			return Term{}, i, &ParseError{Signature: s, Offset: i + 1, Reason: "dict-entry key must be a basic type"}
		}
		val, next, err := parseTerm(s, next)
		if err != nil {
			return Term{}, i, err
		}
		if next >= len(s) || s[next] != '}' {
			return Term{}, i, &ParseError{Signature: s, Offset: i, Reason: "unclosed dict entry"}
		}
		return Term{Kind: KindDict, Key: &key, Value: &val, Raw: s[i : next+1]}, next + 1, nil

	default:
		return Term{}, i, &ParseError{Signature: s, Offset: i, Reason: fmt.Sprintf("unknown type code %q", string(s[i]))}
	}
}

// Tokenize splits a signature into its top-level tokens: the raw string form
// of each top-level term, with nested container contents kept opaque.
func Tokenize(s string) ([]string, error) {
	terms, err := Parse(s)
	if err != nil {
		return nil, err
	}
	tokens := make([]string, len(terms))
	for i, t := range terms {
		tokens[i] = t.Raw
	}
	return tokens, nil
}

// Valid reports whether s is a well-formed signature string.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}
