package analysis

import (
	"lockstep/internal/introspect"
	"lockstep/internal/manifest"
	"lockstep/internal/resolver"
)

// Declaration identifies one declared member in the introspection data.
type Declaration struct {
	Interface string
	Member    string
	Kind      string // signal, method, property
	Document  string
}

// CoverageReport summarizes which declared members the manifest checks and
// which it leaves unverified.
type CoverageReport struct {
	Covered   []Declaration
	Uncovered []Declaration
}

// Analyzer computes check coverage over a document set.
type Analyzer struct {
	set      *introspect.Set
	resolver *resolver.Resolver
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(set *introspect.Set) *Analyzer {
	return &Analyzer{set: set, resolver: resolver.NewDefault()}
}

// Coverage resolves every rule the way the checker would and marks the
// declarations it lands on as covered. Rules that fail to resolve cover
// nothing; ambiguity and not-found are the checker's problem to report.
func (a *Analyzer) Coverage(rules []manifest.Rule) *CoverageReport {
	covered := make(map[Declaration]bool)

	for _, rule := range rules {
		kind, ok := declKind(rule.Kind)
		if !ok {
			continue
		}
		match, err := a.resolver.Resolve(a.set, kind, resolver.Key{
			TypeName:  rule.Type,
			Interface: rule.Interface,
			Member:    rule.Member,
		})
		if err != nil {
			continue
		}
		covered[Declaration{
			Interface: match.Interface,
			Member:    match.Member,
			Kind:      kind.String(),
			Document:  match.Document,
		}] = true
	}

	report := &CoverageReport{}
	for _, decl := range a.declarations() {
		if covered[decl] {
			report.Covered = append(report.Covered, decl)
		} else {
			report.Uncovered = append(report.Uncovered, decl)
		}
	}
	return report
}

// declarations lists every declared member in document order.
func (a *Analyzer) declarations() []Declaration {
	var out []Declaration
	for _, doc := range a.set.Documents() {
		for _, iface := range doc.Interfaces {
			for _, s := range iface.Signals {
				out = append(out, Declaration{iface.Name, s.Name, "signal", doc.Identity})
			}
			for _, m := range iface.Methods {
				out = append(out, Declaration{iface.Name, m.Name, "method", doc.Identity})
			}
			for _, p := range iface.Properties {
				out = append(out, Declaration{iface.Name, p.Name, "property", doc.Identity})
			}
		}
	}
	return out
}

func declKind(kind string) (resolver.DeclKind, bool) {
	switch kind {
	case "signal":
		return resolver.DeclSignal, true
	case "method_args", "method_return":
		return resolver.DeclMethod, true
	case "property":
		return resolver.DeclProperty, true
	default:
		return 0, false
	}
}
