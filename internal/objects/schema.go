package objects

import (
	"fmt"
	"sort"
	"strings"
)

// Descriptor declares one field of a remote object.
type Descriptor struct {
	Doc      string
	Kind     Kind
	ReadOnly bool
	ID       bool
	Values   map[int64]string
}

// Schema is the static field table of one remote object type.
type Schema struct {
	Type    string
	idField string
	label   string
	fields  map[string]Descriptor
}

// newSchema panics unless exactly one field is the identity field and every
// enumerated field declares its values.
func newSchema(typ, label string, fields map[string]Descriptor) *Schema {
	s := &Schema{Type: typ, label: label, fields: fields}
	for name, d := range fields {
		if d.ID {
			if s.idField != "" {
				panic(fmt.Sprintf("%s: both %s and %s are identity fields", typ, s.idField, name))
			}
			s.idField = name
		}
		if d.Kind == Enum && len(d.Values) == 0 {
			panic(fmt.Sprintf("%s: enumerated field %s has no values", typ, name))
		}
	}
	if s.idField == "" {
		panic(fmt.Sprintf("%s: no identity field", typ))
	}
	return s
}

func (s *Schema) Field(name string) (Descriptor, bool) {
	d, ok := s.fields[name]
	return d, ok
}

func (s *Schema) IDField() string {
	return s.idField
}

// Fields returns the declared field names in sorted order.
func (s *Schema) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Schema) method(verb string) string {
	return strings.ToLower(s.Type) + "." + verb
}

// available is shared by the agent availability fields of a host.
var available = map[int64]string{
	0: "unknown (default)",
	1: "available",
	2: "unavailable",
}
