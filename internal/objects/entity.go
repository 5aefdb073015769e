package objects

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/mimiro-io/zabbix-objects/internal/api"
)

// Caller performs remote method calls. *api.Session satisfies it.
type Caller interface {
	Call(ctx context.Context, method string, params api.Params) (json.RawMessage, error)
}

// resolver fills the relationship maps of a concrete type from the nested
// collections of its reply row.
type resolver func(e *Entity, row api.Row) error

// Entity is the shared part of every remote object: one Property per recognised
// field of the reply row it was built from.
type Entity struct {
	caller Caller
	schema *Schema
	id     string
	hasID  bool
	props  map[string]*Property
}

// newEntity builds the properties of row that the schema declares, ignoring
// unknown fields, and then hands row to resolve.
func newEntity(caller Caller, schema *Schema, row api.Row, resolve resolver) (*Entity, error) {
	e := &Entity{
		caller: caller,
		schema: schema,
		props:  make(map[string]*Property),
	}

	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		d, ok := schema.Field(name)
		if !ok {
			continue
		}
		val := row[name]
		if d.ID && val != nil {
			e.id = fmt.Sprint(val)
			e.hasID = true
		}
		prop, err := NewProperty(name, d, val)
		if err != nil {
			return nil, err
		}
		e.props[name] = prop
	}

	if resolve != nil {
		if err := resolve(e, row); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// ID is the identity assigned by the server, or "" when the row carried none.
func (e *Entity) ID() string {
	return e.id
}

func (e *Entity) HasID() bool {
	return e.hasID
}

func (e *Entity) Schema() *Schema {
	return e.schema
}

func (e *Entity) Property(name string) (*Property, bool) {
	p, ok := e.props[name]
	return p, ok
}

// Properties returns the properties sorted by name.
func (e *Entity) Properties() []*Property {
	props := make([]*Property, 0, len(e.props))
	for _, p := range e.props {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i].name < props[j].name })
	return props
}

// Get returns the value of the named property, or nil when it is absent.
func (e *Entity) Get(name string) any {
	if p, ok := e.props[name]; ok {
		return p.val
	}
	return nil
}

// Set assigns a property that was present in the reply row.
func (e *Entity) Set(name string, val any) error {
	p, ok := e.props[name]
	if !ok {
		return api.InvalidValue("%s has no property %s", e.schema.Type, name)
	}
	return p.Set(val)
}

func (e *Entity) Text(name string) string {
	s, _ := e.Get(name).(string)
	return s
}

func (e *Entity) Int(name string) int64 {
	n, _ := e.Get(name).(int64)
	return n
}

func (e *Entity) Time(name string) time.Time {
	t, _ := e.Get(name).(time.Time)
	return t
}

// JSON returns all properties as plain values suitable for encoding.
func (e *Entity) JSON() map[string]any {
	d := make(map[string]any, len(e.props))
	for name, p := range e.props {
		d[name] = p.Plain()
	}
	return d
}

func (e *Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.JSON())
}

func (e *Entity) MarshalYAML() (any, error) {
	return e.JSON(), nil
}

// Changes returns the values of the dirty properties.
func (e *Entity) Changes() map[string]any {
	dirty := make(map[string]any)
	for name, p := range e.props {
		if p.dirty {
			dirty[name] = p.val
		}
	}
	return dirty
}

// Save sends nothing and leaves the dirty flags set. Changes is the change set a
// write-back through <type>.update would publish, keyed by property name, with the
// identity field added by the caller.
func (e *Entity) Save(ctx context.Context) error {
	return nil
}

func (e *Entity) String() string {
	label := e.id
	if e.schema.label != "" {
		label = e.Text(e.schema.label)
	}
	return fmt.Sprintf("%s[%s]", e.schema.Type, label)
}

// first fetches the first row of a <type>.get call, or nil when nothing matched.
func first(ctx context.Context, caller Caller, schema *Schema, params api.Params) (api.Row, error) {
	rows, err := list(ctx, caller, schema, params)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func list(ctx context.Context, caller Caller, schema *Schema, params api.Params) ([]api.Row, error) {
	raw, err := caller.Call(ctx, schema.method("get"), params)
	if err != nil {
		return nil, err
	}
	return api.DecodeRows(raw)
}

// nested returns the embedded records under key. Anything that is not a list of
// objects yields no records.
func nested(row api.Row, key string) []api.Row {
	items, ok := row[key].([]any)
	if !ok {
		return nil
	}
	rows := make([]api.Row, 0, len(items))
	for _, item := range items {
		switch r := item.(type) {
		case map[string]any:
			rows = append(rows, r)
		case api.Row:
			rows = append(rows, r)
		}
	}
	return rows
}
