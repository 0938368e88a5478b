package checker

import (
	"os"
	"reflect"

	"lockstep/internal/config"
	"lockstep/internal/manifest"
	"lockstep/internal/signature"
	"lockstep/internal/source"
)

// TestingT is the slice of *testing.T the validation glue needs.
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
}

// Options steer Validate. Zero values mean: derive the type name via
// reflection, search every interface, match members by the substring
// heuristic, and locate the XML directory by convention.
type Options struct {
	// XMLPath is the introspection directory. When empty the xml/ or XML/
	// convention under the working directory applies. The LOCKSTEP_XML_PATH
	// environment variable overrides both.
	XMLPath string

	// Kind is the declaration kind: signal (default), method_args,
	// method_return, or property.
	Kind string

	// Interface, Member, and Arg are the usual disambiguation hints.
	Interface string
	Member    string
	Arg       string
}

// Validate checks that v's wire signature matches its declaration in the
// introspection XML, failing t with a full explanation otherwise. It is the
// test-time entry point: resolution, extraction, and comparison in one call.
func Validate(t TestingT, v any, opts Options) {
	t.Helper()

	reported, err := signature.Of(v)
	if err != nil {
		t.Errorf("lockstep: %v", err)
		t.FailNow()
	}

	typeName := reflect.Indirect(reflect.ValueOf(v)).Type().Name()

	// The environment override is read here, at the outermost layer, and
	// threaded down as an explicit value.
	dir, err := source.Locate(".", opts.XMLPath, os.Getenv(config.EnvXMLPath))
	if err != nil {
		t.Errorf("lockstep: %v", err)
		t.FailNow()
	}
	set, err := source.LoadDir(dir)
	if err != nil {
		t.Errorf("lockstep: %v", err)
		t.FailNow()
	}

	kind := opts.Kind
	if kind == "" {
		kind = "signal"
	}

	result := New(set).Check(manifest.Rule{
		Type:      typeName,
		Kind:      kind,
		Interface: opts.Interface,
		Member:    opts.Member,
		Arg:       opts.Arg,
		Expect:    reported,
	})
	if result.Status != StatusPass {
		t.Errorf("lockstep: %s %s: %s", result.Status, typeName, result.Detail)
		t.FailNow()
	}
}
