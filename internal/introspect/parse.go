package introspect

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ParseError reports a malformed introspection document.
type ParseError struct {
	Identity string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse introspection document %s: %v", e.Identity, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads one introspection document. identity names the source for
// error reporting and resolution results.
func Parse(r io.Reader, identity string) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &ParseError{Identity: identity, Err: err}
	}
	doc.Identity = identity
	return &doc, nil
}

// ParseString parses an introspection document held in memory.
func ParseString(xmlText, identity string) (*Document, error) {
	return Parse(strings.NewReader(xmlText), identity)
}
