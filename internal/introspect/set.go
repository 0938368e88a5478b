package introspect

// Set is an ordered collection of parsed documents. Iteration order is the
// insertion order, so resolution passes over a Set are deterministic.
type Set struct {
	docs []*Document

	// Index for faster lookup: interface name -> positions.
	// An interface name may legitimately appear in more than one document.
	nameIndex map[string][]ifaceRef
}

type ifaceRef struct {
	doc   int
	iface int
}

// NewSet creates an empty document set.
func NewSet() *Set {
	return &Set{nameIndex: make(map[string][]ifaceRef)}
}

// Add appends a document and indexes its interfaces.
func (s *Set) Add(d *Document) {
	if d == nil {
		return
	}
	s.docs = append(s.docs, d)
	di := len(s.docs) - 1
	for ii := range d.Interfaces {
		name := d.Interfaces[ii].Name
		s.nameIndex[name] = append(s.nameIndex[name], ifaceRef{doc: di, iface: ii})
	}
}

// Documents returns the documents in insertion order.
func (s *Set) Documents() []*Document {
	return s.docs
}

// Len returns the number of documents.
func (s *Set) Len() int {
	return len(s.docs)
}

// Lookup returns every interface declared under the given name, in document
// order, paired with the identity of its source document.
func (s *Set) Lookup(name string) []Located {
	refs := s.nameIndex[name]
	out := make([]Located, 0, len(refs))
	for _, ref := range refs {
		d := s.docs[ref.doc]
		out = append(out, Located{Interface: &d.Interfaces[ref.iface], Document: d.Identity})
	}
	return out
}

// Located pairs an interface with the identity of the document declaring it.
type Located struct {
	Interface *Interface
	Document  string
}
