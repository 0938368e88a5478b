package signature

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Equal reports whether two signature strings denote the same wire shape.
//
// A D-Bus message body is the flat concatenation of its argument type codes,
// while a record type that models the whole body as one struct reports its
// signature wrapped in parentheses. Equal therefore tolerates exactly one
// enclosing struct wrapper on either operand: "ii" and "(ii)" are equal,
// "s" and "(s)" are equal. It never tolerates regrouping, reordering, or
// differing codes: "ii" vs "(i)(i)" and "(ii)" vs "(i)(i)" are not equal.
func Equal(a, b string) bool {
	if a == b {
		return true
	}

	ta, err := Tokenize(a)
	if err != nil {
		return false
	}
	tb, err := Tokenize(b)
	if err != nil {
		return false
	}

	if inner, ok := unwrap(ta); ok && tokensEqual(inner, tb) {
		return true
	}
	if inner, ok := unwrap(tb); ok && tokensEqual(inner, ta) {
		return true
	}

	return tokensEqual(ta, tb)
}

// unwrap strips a sole top-level struct wrapper, returning the raw tokens of
// its members. It fails unless the sequence is exactly one struct term.
func unwrap(tokens []string) ([]string, bool) {
	if len(tokens) != 1 {
		return nil, false
	}
	terms, err := Parse(tokens[0])
	if err != nil || len(terms) != 1 || terms[0].Kind != KindStruct {
		return nil, false
	}
	inner := make([]string, len(terms[0].Fields))
	for i, f := range terms[0].Fields {
		inner[i] = f.Raw
	}
	return inner, true
}

func tokensEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Explain describes why two signatures differ. Both operands are included
// verbatim, followed by a unified diff of their top-level token sequences so
// a failing check is diagnosable without rerunning anything.
func Explain(a, b string) string {
	if Equal(a, b) {
		return fmt.Sprintf("signatures %q and %q are equivalent", a, b)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "signature mismatch:\n  declared: %q\n  reported: %q\n", a, b)

	ta, errA := Tokenize(a)
	tb, errB := Tokenize(b)
	if errA != nil {
		fmt.Fprintf(&sb, "  declared side is malformed: %v\n", errA)
		return sb.String()
	}
	if errB != nil {
		fmt.Fprintf(&sb, "  reported side is malformed: %v\n", errB)
		return sb.String()
	}

	// Diff the effective token sequences with single wrappers stripped, one
	// token per line.
	if inner, ok := unwrap(ta); ok {
		ta = inner
	}
	if inner, ok := unwrap(tb); ok {
		tb = inner
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(ta, "\n") + "\n"),
		B:        difflib.SplitLines(strings.Join(tb, "\n") + "\n"),
		FromFile: "declared",
		ToFile:   "reported",
		Context:  3,
	})
	if err == nil && diff != "" {
		sb.WriteString(diff)
	}
	return sb.String()
}
