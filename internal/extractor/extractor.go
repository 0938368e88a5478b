package extractor

import (
	"fmt"
	"strings"

	"lockstep/internal/introspect"
)

// Kind selects which signature of a declaration is extracted.
type Kind int

const (
	// SignalBody is the concatenation of a signal's argument types.
	SignalBody Kind = iota
	// MethodArgs is the concatenation of a method's "in" argument types.
	MethodArgs
	// MethodReturn is the concatenation of a method's "out" argument types.
	MethodReturn
	// Property is a property's single declared type.
	Property
)

func (k Kind) String() string {
	switch k {
	case SignalBody:
		return "signal body"
	case MethodArgs:
		return "method args"
	case MethodReturn:
		return "method return"
	case Property:
		return "property"
	default:
		return "unknown"
	}
}

// Query names the declaration and, optionally, the single argument whose
// signature is wanted. A non-empty Arg overrides direction filtering on
// methods: an explicit name request means that argument's shape, whichever
// way it travels.
type Query struct {
	Kind   Kind
	Member string
	Arg    string
}

// MemberNotFoundError reports a member absent from the interface.
type MemberNotFoundError struct {
	Interface string
	Kind      Kind
	Member    string
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("interface %s declares no %s member %q", e.Interface, e.Kind, e.Member)
}

// ArgNotFoundError reports an argument absent from an otherwise-located
// member.
type ArgNotFoundError struct {
	Interface string
	Member    string
	Arg       string
}

func (e *ArgNotFoundError) Error() string {
	return fmt.Sprintf("member %s.%s has no argument named %q", e.Interface, e.Member, e.Arg)
}

// Extract returns the raw signature string the query names. It validates
// member and argument existence itself; it does not assume a resolver ran
// first.
func Extract(iface *introspect.Interface, q Query) (string, error) {
	switch q.Kind {
	case SignalBody:
		sig := iface.SignalByName(q.Member)
		if sig == nil {
			return "", &MemberNotFoundError{Interface: iface.Name, Kind: q.Kind, Member: q.Member}
		}
		return argsSignature(iface.Name, q.Member, sig.Args, q.Arg, "")

	case MethodArgs:
		return methodSignature(iface, q, "in")

	case MethodReturn:
		return methodSignature(iface, q, "out")

	case Property:
		// A property has no arguments; q.Arg is ignored.
		p := iface.PropertyByName(q.Member)
		if p == nil {
			return "", &MemberNotFoundError{Interface: iface.Name, Kind: q.Kind, Member: q.Member}
		}
		return p.Type, nil

	default:
		return "", fmt.Errorf("unknown extraction kind %d", q.Kind)
	}
}

func methodSignature(iface *introspect.Interface, q Query, direction string) (string, error) {
	m := iface.MethodByName(q.Member)
	if m == nil {
		return "", &MemberNotFoundError{Interface: iface.Name, Kind: q.Kind, Member: q.Member}
	}
	return argsSignature(iface.Name, q.Member, m.Args, q.Arg, direction)
}

// argsSignature concatenates the matching args' types in declared order.
// With argName set, the single named arg's type is returned regardless of
// direction. Method args with no direction attribute count as "in".
func argsSignature(ifaceName, member string, args []introspect.Arg, argName, direction string) (string, error) {
	if argName != "" {
		for _, a := range args {
			if a.Name == argName {
				return a.Type, nil
			}
		}
		return "", &ArgNotFoundError{Interface: ifaceName, Member: member, Arg: argName}
	}

	var sb strings.Builder
	for _, a := range args {
		if direction != "" && effectiveDirection(a) != direction {
			continue
		}
		sb.WriteString(a.Type)
	}
	return sb.String(), nil
}

func effectiveDirection(a introspect.Arg) string {
	if a.Direction == "" {
		return "in"
	}
	return a.Direction
}
