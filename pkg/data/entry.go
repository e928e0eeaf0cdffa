package data

// Kind distinguishes simple from compound entries.
type Kind uint8

const (
	// KindNone is the zero value: an entry that was never initialised.
	KindNone Kind = iota
	KindSimple
	KindCompound
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindCompound:
		return "compound"
	default:
		return "none"
	}
}

// Meta attribute names.
const (
	MetaHandle    = "HANDLE"
	MetaPartition = "partition"
	MetaMetricID  = "metric-id"
	MetaUnitCode  = "unit-code"
	MetaUnit      = "unit"
	MetaPersonID  = "person-id"
)

// Value type tags of simple entries.
const (
	TypeUint8  = "intu8"
	TypeUint16 = "intu16"
	TypeUint32 = "intu32"
	TypeFloat  = "float"
	TypeString = "string"
	TypeOctets = "octets"
)

// MetaAttribute is one name/value annotation of an entry.
type MetaAttribute struct {
	Name  string `cbor:"1,keyasint" json:"name" xml:"name,attr"`
	Value string `cbor:"2,keyasint" json:"value" xml:",chardata"`
}

// Entry is one node of a data tree.
type Entry struct {
	Meta []MetaAttribute
	Kind Kind
	Name string

	// Simple entries.
	Type  string
	Value string

	// Compound entries.
	Children []*Entry
}

// NewSimple creates a simple entry.
func NewSimple(name, typ, value string) *Entry {
	return &Entry{Kind: KindSimple, Name: name, Type: typ, Value: value}
}

// NewCompound creates a compound entry holding children.
func NewCompound(name string, children ...*Entry) *Entry {
	e := &Entry{Kind: KindCompound, Name: name}
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// Add appends a child to a compound entry. Nil children and non-compound
// receivers are ignored.
func (e *Entry) Add(child *Entry) *Entry {
	if e.Kind == KindCompound && child != nil {
		e.Children = append(e.Children, child)
	}
	return e
}

// SetMeta appends a meta attribute and returns e for chaining.
func (e *Entry) SetMeta(name, value string) *Entry {
	e.Meta = append(e.Meta, MetaAttribute{Name: name, Value: value})
	return e
}

// MetaValue returns the value of the first meta attribute called name.
func (e *Entry) MetaValue(name string) (string, bool) {
	for _, m := range e.Meta {
		if m.Name == name {
			return m.Value, true
		}
	}
	return "", false
}

// Child returns the first child called name.
func (e *Entry) Child(name string) *Entry {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk calls fn for e and every descendant, depth first.
func (e *Entry) Walk(fn func(*Entry)) {
	if e == nil {
		return
	}
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Clear resets e and all descendants to the zero entry. It is safe on a
// partially constructed tree and on a nil entry.
func (e *Entry) Clear() {
	if e == nil {
		return
	}
	for _, c := range e.Children {
		c.Clear()
	}
	*e = Entry{}
}

// Stats counts the nodes of a tree.
type Stats struct {
	Entries int
	Meta    int
}

// Count returns the node and meta attribute counts of e and its
// descendants.
func (e *Entry) Count() Stats {
	var s Stats
	e.Walk(func(n *Entry) {
		s.Entries++
		s.Meta += len(n.Meta)
	})
	return s
}

// List is the flat list of top-level entries for one event.
type List []*Entry

// Count sums the counts of every entry.
func (l List) Count() Stats {
	var s Stats
	for _, e := range l {
		c := e.Count()
		s.Entries += c.Entries
		s.Meta += c.Meta
	}
	return s
}

// Clear releases every entry of the list.
func (l List) Clear() {
	for _, e := range l {
		e.Clear()
	}
}
