package objects

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/mimiro-io/zabbix-objects/internal/api"
)

// Property wraps one typed, validated and dirty-tracked field value.
type Property struct {
	name     string
	doc      string
	kind     Kind
	readOnly bool
	values   map[int64]string
	xforms   []transform
	val      any
	dirty    bool
}

// NewProperty validates val exactly as Set does. A new property is never dirty.
func NewProperty(name string, d Descriptor, val any) (*Property, error) {
	p := &Property{
		name:     name,
		doc:      d.Doc,
		kind:     d.Kind,
		readOnly: d.ReadOnly,
		values:   d.Values,
		xforms:   d.Kind.transforms(),
	}
	if err := p.Set(val); err != nil {
		return nil, err
	}
	p.dirty = false
	return p, nil
}

func (p *Property) Name() string    { return p.name }
func (p *Property) Doc() string     { return p.doc }
func (p *Property) Kind() Kind      { return p.kind }
func (p *Property) ReadOnly() bool  { return p.readOnly }
func (p *Property) Value() any      { return p.val }
func (p *Property) Dirty() bool     { return p.dirty }
func (p *Property) IsDefined() bool { return p.val != nil }

// Set coerces and validates val, and marks the property dirty when the value changes.
// A value equal to the current one after coercion is a no-op, also when read-only.
func (p *Property) Set(val any) error {
	v, err := p.coerce(val)
	if sameValue(val, p.val) || (err == nil && sameValue(v, p.val)) {
		return nil
	}
	if p.readOnly && p.val != nil {
		return api.ReadOnly(p.val)
	}
	if err != nil {
		return err
	}

	p.val = v
	p.dirty = true
	return nil
}

// coerce runs the transform chain and the type and enumeration checks.
func (p *Property) coerce(val any) (any, error) {
	v := val
	for _, xform := range p.xforms {
		out, err := xform(v)
		if err != nil {
			return nil, api.InvalidValue("%s: %v: %v", p.name, val, err)
		}
		v = out
	}
	if !p.kind.accepts(v) {
		return nil, api.InvalidType(p.name, v, p.kind)
	}
	if p.values != nil {
		n, ok := v.(int64)
		if _, member := p.values[n]; !ok || !member {
			return nil, api.InvalidValue("%s: %v not in %v", p.name, v, p.Keys())
		}
	}
	return v, nil
}

// Keys returns the enumerated values in ascending order, or nil.
func (p *Property) Keys() []int64 {
	if p.values == nil {
		return nil
	}
	keys := make([]int64, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Label returns the enumeration label of the current value.
func (p *Property) Label() (string, bool) {
	n, ok := p.val.(int64)
	if !ok || p.values == nil {
		return "", false
	}
	label, ok := p.values[n]
	return label, ok
}

// Plain is the value as rendered in JSON: timestamps as ISO-8601, the rest as is.
func (p *Property) Plain() any {
	if t, ok := p.val.(time.Time); ok {
		return t.Format(isoFormat)
	}
	return p.val
}

func (p *Property) String() string {
	return fmt.Sprintf("%v [dirty=%t, readonly=%t]", p.val, p.dirty, p.readOnly)
}

const isoFormat = "2006-01-02T15:04:05"

func sameValue(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}
