package resolver

import (
	"fmt"
	"strings"

	"lockstep/internal/introspect"
)

// DeclKind selects which declaration list of an interface is searched.
type DeclKind int

const (
	DeclSignal DeclKind = iota
	DeclMethod
	DeclProperty
)

func (k DeclKind) String() string {
	switch k {
	case DeclSignal:
		return "signal"
	case DeclMethod:
		return "method"
	case DeclProperty:
		return "property"
	default:
		return "unknown"
	}
}

// Key identifies the record type being resolved. Interface and Member are
// optional caller-supplied hints; a Member hint replaces heuristic matching
// outright.
type Key struct {
	TypeName  string
	Interface string
	Member    string
}

// searchKey is what error messages name: the member hint when given,
// otherwise the record type name.
func (k Key) searchKey() string {
	if k.Member != "" {
		return k.Member
	}
	return k.TypeName
}

// Match is one successful resolution: a single (interface, member) pair and
// the identity of the document declaring it.
type Match struct {
	Interface string
	Member    string
	Document  string
}

// NotFoundError reports that no declaration matched the search key.
type NotFoundError struct {
	Kind      DeclKind
	SearchKey string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s matching %q found in any introspection document", e.Kind, e.SearchKey)
}

// AmbiguousError reports that two or more declarations matched and the
// supplied hints do not disambiguate. It carries every competing match so
// the caller can pick an interface or member hint.
type AmbiguousError struct {
	Kind       DeclKind
	SearchKey  string
	Candidates []Match
}

func (e *AmbiguousError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = fmt.Sprintf("%s.%s (%s)", c.Interface, c.Member, c.Document)
	}
	return fmt.Sprintf("multiple %ss match %q: %s; supply an interface or member hint to disambiguate",
		e.Kind, e.SearchKey, strings.Join(names, ", "))
}

// Resolver finds the one declaration a record type corresponds to.
type Resolver struct {
	matcher Matcher
}

// New creates a resolver with the given matching strategy.
func New(m Matcher) *Resolver {
	return &Resolver{matcher: m}
}

// NewDefault creates a resolver with the substring strategy, the behavior a
// record type named after its member expects.
func NewDefault() *Resolver {
	return New(NewSubstringMatcher())
}

// Resolve scans every interface of every document, in order, for the single
// declaration of the requested kind matching the key. An interface hint
// restricts the scan; a member hint replaces heuristic matching with exact
// name equality but does not excuse ambiguity across admissible interfaces.
// Zero matches yield a NotFoundError naming the search key, two or more an
// AmbiguousError carrying every candidate. The scan is a pure function of
// its inputs.
func (r *Resolver) Resolve(set *introspect.Set, kind DeclKind, key Key) (Match, error) {
	var matches []Match

	for _, doc := range set.Documents() {
		for ii := range doc.Interfaces {
			iface := &doc.Interfaces[ii]
			if key.Interface != "" && iface.Name != key.Interface {
				continue
			}
			for _, member := range membersOf(iface, kind) {
				if !r.accepts(member, key) {
					continue
				}
				matches = append(matches, Match{
					Interface: iface.Name,
					Member:    member,
					Document:  doc.Identity,
				})
			}
		}
	}

	switch len(matches) {
	case 0:
		return Match{}, &NotFoundError{Kind: kind, SearchKey: key.searchKey()}
	case 1:
		return matches[0], nil
	default:
		return Match{}, &AmbiguousError{Kind: kind, SearchKey: key.searchKey(), Candidates: matches}
	}
}

func (r *Resolver) accepts(memberName string, key Key) bool {
	if key.Member != "" {
		return memberName == key.Member
	}
	return r.matcher.Match(memberName, key.TypeName)
}

func membersOf(iface *introspect.Interface, kind DeclKind) []string {
	var names []string
	switch kind {
	case DeclSignal:
		for _, s := range iface.Signals {
			names = append(names, s.Name)
		}
	case DeclMethod:
		for _, m := range iface.Methods {
			names = append(names, m.Name)
		}
	case DeclProperty:
		for _, p := range iface.Properties {
			names = append(names, p.Name)
		}
	}
	return names
}
