package introspect

import "encoding/xml"

// Document is one parsed D-Bus introspection document (a <node> tree).
// Identity names the source it was parsed from, typically a file path.
type Document struct {
	XMLName    xml.Name    `xml:"node"`
	Identity   string      `xml:"-"`
	Name       string      `xml:"name,attr"`
	Interfaces []Interface `xml:"interface"`
}

// Interface is a named D-Bus interface with its declared members, in
// document order. Name uniqueness within a document is assumed, not
// enforced here.
type Interface struct {
	Name       string     `xml:"name,attr"`
	Signals    []Signal   `xml:"signal"`
	Methods    []Method   `xml:"method"`
	Properties []Property `xml:"property"`
}

// Signal is a broadcast member. All of its args form the body; signals have
// no direction distinction.
type Signal struct {
	Name string `xml:"name,attr"`
	Args []Arg  `xml:"arg"`
}

// Method is a callable member whose args are tagged "in" or "out".
type Method struct {
	Name string `xml:"name,attr"`
	Args []Arg  `xml:"arg"`
}

// Property carries a single type signature and an access mode.
type Property struct {
	Name   string `xml:"name,attr"`
	Type   string `xml:"type,attr"`
	Access string `xml:"access,attr"`
}

// Arg is one argument declaration. Name may be empty; Type is a single
// signature grammar fragment. Direction is only meaningful on method args
// and defaults to "in" when absent.
type Arg struct {
	Name      string `xml:"name,attr"`
	Type      string `xml:"type,attr"`
	Direction string `xml:"direction,attr"`
}

// SignalByName returns the named signal, or nil.
func (i *Interface) SignalByName(name string) *Signal {
	for idx := range i.Signals {
		if i.Signals[idx].Name == name {
			return &i.Signals[idx]
		}
	}
	return nil
}

// MethodByName returns the named method, or nil.
func (i *Interface) MethodByName(name string) *Method {
	for idx := range i.Methods {
		if i.Methods[idx].Name == name {
			return &i.Methods[idx]
		}
	}
	return nil
}

// PropertyByName returns the named property, or nil.
func (i *Interface) PropertyByName(name string) *Property {
	for idx := range i.Properties {
		if i.Properties[idx].Name == name {
			return &i.Properties[idx]
		}
	}
	return nil
}
