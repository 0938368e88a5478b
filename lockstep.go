// Package lockstep verifies that in-memory record types stay in lockstep
// with the D-Bus interfaces they model: it retrieves type signatures from
// introspection XML and compares them with the signatures the types report
// for themselves, tolerating the flattened-versus-wrapped difference between
// a message body and a struct type.
//
// The typical use is a test:
//
//	func TestRemoveNodeSignal(t *testing.T) {
//		lockstep.Validate(t, RemoveNodeSignal{}, lockstep.Options{})
//	}
//
// which locates the introspection XML (the xml/ or XML/ directory, an
// explicit Options.XMLPath, or the LOCKSTEP_XML_PATH environment variable),
// finds the one signal whose name is contained in "RemoveNodeSignal",
// extracts its body signature, and fails the test with a diff if the
// struct's signature does not match.
package lockstep

import (
	"io"

	"lockstep/internal/checker"
	"lockstep/internal/extractor"
	"lockstep/internal/introspect"
	"lockstep/internal/signature"
)

// ObjectPath is a D-Bus object path; its signature code is 'o'.
type ObjectPath = signature.ObjectPath

// Signature is a D-Bus signature value; its signature code is 'g'.
type Signature = signature.Sig

// Signer lets a record type report its own wire signature instead of the
// reflection-derived one.
type Signer = signature.Signer

// Options steers Validate; see checker.Options.
type Options = checker.Options

// TestingT is the slice of *testing.T this package needs.
type TestingT = checker.TestingT

// Validate checks that v's wire signature matches its declaration in the
// introspection XML, failing t with both signatures and a token diff
// otherwise.
func Validate(t TestingT, v any, opts Options) {
	t.Helper()
	checker.Validate(t, v, opts)
}

// SignatureOf derives the D-Bus type signature of v. If v implements
// Signer, its own answer wins.
func SignatureOf(v any) (string, error) {
	return signature.Of(v)
}

// Equal reports whether two signature strings denote the same wire shape.
// Exactly one top-level struct wrapper on either operand is transparent:
// "ii" and "(ii)" are equal, "ii" and "(i)(i)" are not.
func Equal(a, b string) bool {
	return signature.Equal(a, b)
}

// AssertEqual fails t unless declared and reported are equivalent
// signatures, printing both operands verbatim.
func AssertEqual(t TestingT, declared, reported string) {
	t.Helper()
	if !signature.Equal(declared, reported) {
		t.Errorf("lockstep: %s", signature.Explain(declared, reported))
		t.FailNow()
	}
}

// GetSignalBodyType reads one introspection document and returns the body
// signature of the named signal: the concatenation of its argument types,
// or the single argument named by arg when arg is non-empty.
func GetSignalBodyType(xml io.Reader, ifaceName, member, arg string) (string, error) {
	return extractFrom(xml, ifaceName, extractor.Query{Kind: extractor.SignalBody, Member: member, Arg: arg})
}

// GetMethodArgsType reads one introspection document and returns the
// signature of the named method's "in" arguments, or of the single argument
// named by arg regardless of direction.
func GetMethodArgsType(xml io.Reader, ifaceName, member, arg string) (string, error) {
	return extractFrom(xml, ifaceName, extractor.Query{Kind: extractor.MethodArgs, Member: member, Arg: arg})
}

// GetMethodReturnType reads one introspection document and returns the
// signature of the named method's "out" arguments, or of the single
// argument named by arg regardless of direction.
func GetMethodReturnType(xml io.Reader, ifaceName, member, arg string) (string, error) {
	return extractFrom(xml, ifaceName, extractor.Query{Kind: extractor.MethodReturn, Member: member, Arg: arg})
}

// GetPropertyType reads one introspection document and returns the declared
// type of the named property.
func GetPropertyType(xml io.Reader, ifaceName, property string) (string, error) {
	return extractFrom(xml, ifaceName, extractor.Query{Kind: extractor.Property, Member: property})
}

// InterfaceNotFoundError reports an interface absent from a document.
type InterfaceNotFoundError struct {
	Interface string
}

func (e *InterfaceNotFoundError) Error() string {
	return "no interface named " + e.Interface + " in document"
}

func extractFrom(xml io.Reader, ifaceName string, q extractor.Query) (string, error) {
	doc, err := introspect.Parse(xml, "<reader>")
	if err != nil {
		return "", err
	}
	for i := range doc.Interfaces {
		if doc.Interfaces[i].Name == ifaceName {
			return extractor.Extract(&doc.Interfaces[i], q)
		}
	}
	return "", &InterfaceNotFoundError{Interface: ifaceName}
}
