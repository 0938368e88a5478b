package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule is one declared lockstep check: a record type name, the declaration
// kind it corresponds to, optional disambiguating hints, and the signature
// the record type reports for itself.
type Rule struct {
	// Type is the record type's declared name, matched against member names.
	Type string `yaml:"type" json:"type"`

	// Kind is one of signal, method_args, method_return, property.
	Kind string `yaml:"kind" json:"kind"`

	// Interface restricts the search to one interface name.
	Interface string `yaml:"interface,omitempty" json:"interface,omitempty"`

	// Member names the declaration directly, replacing heuristic matching.
	Member string `yaml:"member,omitempty" json:"member,omitempty"`

	// Arg selects a single named argument instead of the whole list.
	Arg string `yaml:"arg,omitempty" json:"arg,omitempty"`

	// Expect is the record type's self-reported signature.
	Expect string `yaml:"expect" json:"expect"`
}

// Manifest is a declarative set of lockstep checks, usually lockstep.yaml.
type Manifest struct {
	Version int    `yaml:"version" json:"version"`
	XMLPath string `yaml:"xml_path,omitempty" json:"xml_path,omitempty"`
	Checks  []Rule `yaml:"checks" json:"checks"`
}

// Load reads and structurally validates a manifest file.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(raw, path)
}

// Parse decodes manifest YAML, validating it against the embedded schema
// before unmarshalling into typed form.
func Parse(raw []byte, identity string) (*Manifest, error) {
	var untyped any
	if err := yaml.Unmarshal(raw, &untyped); err != nil {
		return nil, fmt.Errorf("manifest %s is not valid YAML: %w", identity, err)
	}

	// The schema validator wants JSON-decoded values, so round-trip the
	// untyped tree through encoding/json first.
	jsonRaw, err := json.Marshal(untyped)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", identity, err)
	}
	var doc any
	if err := json.Unmarshal(jsonRaw, &doc); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", identity, err)
	}

	if err := validateAgainstSchema(doc); err != nil {
		return nil, fmt.Errorf("manifest %s failed validation: %w", identity, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", identity, err)
	}
	return &m, nil
}
