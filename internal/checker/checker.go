package checker

import (
	"fmt"

	"lockstep/internal/extractor"
	"lockstep/internal/introspect"
	"lockstep/internal/manifest"
	"lockstep/internal/resolver"
	"lockstep/internal/signature"
)

// Status is the outcome of one rule.
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"  // signatures differ
	StatusError Status = "error" // resolution or extraction failed
)

// Result records the outcome of checking one record type against the
// introspection data.
type Result struct {
	Type      string `json:"type"`
	Kind      string `json:"kind"`
	Interface string `json:"interface,omitempty"`
	Member    string `json:"member,omitempty"`
	Document  string `json:"document,omitempty"`
	Declared  string `json:"declared,omitempty"` // signature from the XML
	Reported  string `json:"reported,omitempty"` // the record type's own
	Status    Status `json:"status"`
	Detail    string `json:"detail,omitempty"`
}

// Summary aggregates a whole run.
type Summary struct {
	Results []Result
	Total   int
	Passed  int
	Failed  int
	Errors  int
}

// Ok reports whether every rule passed.
func (s *Summary) Ok() bool {
	return s.Failed == 0 && s.Errors == 0
}

// Checker runs resolve → extract → compare over one document set.
type Checker struct {
	set      *introspect.Set
	resolver *resolver.Resolver
}

// New creates a checker with the default substring resolution strategy.
func New(set *introspect.Set) *Checker {
	return NewWithResolver(set, resolver.NewDefault())
}

// NewWithResolver creates a checker with an explicit resolution strategy.
func NewWithResolver(set *introspect.Set, r *resolver.Resolver) *Checker {
	return &Checker{set: set, resolver: r}
}

// Check runs one rule. Resolution and extraction failures surface as
// StatusError results rather than aborting the run, so one bad rule does not
// hide the rest.
func (c *Checker) Check(rule manifest.Rule) Result {
	res := Result{
		Type:     rule.Type,
		Kind:     rule.Kind,
		Reported: rule.Expect,
	}

	declKind, extKind, err := kinds(rule.Kind)
	if err != nil {
		res.Status = StatusError
		res.Detail = err.Error()
		return res
	}

	match, err := c.resolver.Resolve(c.set, declKind, resolver.Key{
		TypeName:  rule.Type,
		Interface: rule.Interface,
		Member:    rule.Member,
	})
	if err != nil {
		res.Status = StatusError
		res.Detail = err.Error()
		return res
	}
	res.Interface = match.Interface
	res.Member = match.Member
	res.Document = match.Document

	iface := c.interfaceIn(match)
	if iface == nil {
		res.Status = StatusError
		res.Detail = fmt.Sprintf("interface %s vanished from %s between resolution and extraction", match.Interface, match.Document)
		return res
	}

	declared, err := extractor.Extract(iface, extractor.Query{
		Kind:   extKind,
		Member: match.Member,
		Arg:    rule.Arg,
	})
	if err != nil {
		res.Status = StatusError
		res.Detail = err.Error()
		return res
	}
	res.Declared = declared

	if signature.Equal(declared, rule.Expect) {
		res.Status = StatusPass
		return res
	}
	res.Status = StatusFail
	res.Detail = signature.Explain(declared, rule.Expect)
	return res
}

// CheckAll runs every rule in order.
func (c *Checker) CheckAll(rules []manifest.Rule) *Summary {
	s := &Summary{}
	for _, rule := range rules {
		r := c.Check(rule)
		s.Results = append(s.Results, r)
		s.Total++
		switch r.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		default:
			s.Errors++
		}
	}
	return s
}

// interfaceIn picks the resolved interface out of the resolved document.
func (c *Checker) interfaceIn(match resolver.Match) *introspect.Interface {
	for _, located := range c.set.Lookup(match.Interface) {
		if located.Document == match.Document {
			return located.Interface
		}
	}
	return nil
}

// kinds maps a manifest rule kind to the resolver and extractor kinds.
func kinds(kind string) (resolver.DeclKind, extractor.Kind, error) {
	switch kind {
	case "signal":
		return resolver.DeclSignal, extractor.SignalBody, nil
	case "method_args":
		return resolver.DeclMethod, extractor.MethodArgs, nil
	case "method_return":
		return resolver.DeclMethod, extractor.MethodReturn, nil
	case "property":
		return resolver.DeclProperty, extractor.Property, nil
	default:
		return 0, 0, fmt.Errorf("unknown check kind %q", kind)
	}
}
