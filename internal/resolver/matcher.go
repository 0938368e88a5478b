package resolver

import "strings"

// Matcher decides whether a declared member name corresponds to a record
// type name. Strategies are pluggable so the ambiguity handling can be
// tested independently of any one heuristic.
type Matcher interface {
	Name() string
	Match(memberName, typeName string) bool
}

// ExactMatcher accepts only a member whose name equals the type name.
type ExactMatcher struct{}

func NewExactMatcher() *ExactMatcher {
	return &ExactMatcher{}
}

func (m *ExactMatcher) Name() string {
	return "exact"
}

func (m *ExactMatcher) Match(memberName, typeName string) bool {
	return memberName != "" && memberName == typeName
}

// SubstringMatcher accepts a member whose name is contained in the type
// name, so a record named RemoveNodeSignal matches a signal named
// RemoveNode.
type SubstringMatcher struct{}

func NewSubstringMatcher() *SubstringMatcher {
	return &SubstringMatcher{}
}

func (m *SubstringMatcher) Name() string {
	return "substring"
}

func (m *SubstringMatcher) Match(memberName, typeName string) bool {
	return memberName != "" && strings.Contains(typeName, memberName)
}
