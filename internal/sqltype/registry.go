package sqltype

import (
	"errors"
	"fmt"
)

// ErrUnregistered is returned when wire metadata is requested for a kind
// that was never registered. It indicates a missing initialization step,
// not bad input.
var ErrUnregistered = errors.New("kind not registered")

// WireType describes how a kind is represented on the wire.
type WireType struct {
	Name     string `json:"name"`
	OID      uint32 `json:"oid"`
	ArrayOID uint32 `json:"array_oid"`
	NotNull  bool   `json:"not_null"`
}

// UnregisteredError reports a lookup of an unknown kind.
type UnregisteredError struct {
	Name string
}

func (e *UnregisteredError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnregistered.Error(), e.Name)
}

func (e *UnregisteredError) Unwrap() error {
	return ErrUnregistered
}

// Builder collects registrations before the table is frozen.
// A Builder is not safe for concurrent use; build the registry during
// initialization and share only the result.
type Builder struct {
	entries map[string]WireType
	order   []string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]WireType)}
}

// Register adds the wire type for a kind. Each kind may be registered
// exactly once.
func (b *Builder) Register(name string, wt WireType) error {
	if name == "" {
		return fmt.Errorf("register: empty kind name")
	}
	if _, exists := b.entries[name]; exists {
		return fmt.Errorf("register %q: already registered", name)
	}
	if wt.Name == "" {
		wt.Name = name
	}
	b.entries[name] = wt
	b.order = append(b.order, name)
	return nil
}

// Build freezes the collected entries into an immutable Registry.
// The Builder may keep being used; later registrations do not affect
// registries already built.
func (b *Builder) Build() *Registry {
	entries := make(map[string]WireType, len(b.entries))
	for k, v := range b.entries {
		entries[k] = v
	}
	order := make([]string, len(b.order))
	copy(order, b.order)
	return &Registry{entries: entries, order: order}
}

// Registry is a read-only table from kind name to WireType.
type Registry struct {
	entries map[string]WireType
	order   []string
}

// Lookup returns the wire type registered under name.
func (r *Registry) Lookup(name string) (WireType, error) {
	wt, ok := r.entries[name]
	if !ok {
		return WireType{}, &UnregisteredError{Name: name}
	}
	return wt, nil
}

// Entries returns the registered wire types in registration order.
func (r *Registry) Entries() []WireType {
	out := make([]WireType, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Lookup returns the wire type of kind K in r.
func Lookup[K Kind](r *Registry) (WireType, error) {
	return r.Lookup(NameOf[K]())
}

// MustLookup is like Lookup but panics if K is not registered.
func MustLookup[K Kind](r *Registry) WireType {
	wt, err := Lookup[K](r)
	if err != nil {
		panic(err)
	}
	return wt
}

// Default holds the wire types of every kind in this package.
var Default = mustDefault()

func mustDefault() *Registry {
	wireTypes := map[string]WireType{
		NameOf[TSVector](): {OID: 3614, ArrayOID: 3643, NotNull: true},
		NameOf[TSQuery]():  {OID: 3615, ArrayOID: 3645, NotNull: true},
		NameOf[Bool]():     {OID: 16, ArrayOID: 1000, NotNull: true},
		NameOf[Integer]():  {OID: 23, ArrayOID: 1007, NotNull: true},
		NameOf[Float]():    {OID: 700, ArrayOID: 1021, NotNull: true},
		NameOf[Text]():     {OID: 25, ArrayOID: 1009, NotNull: true},
	}

	// Every declared kind is registered, in declaration order.
	b := NewBuilder()
	for _, name := range kindNames() {
		wt, ok := wireTypes[name]
		if !ok {
			panic(fmt.Sprintf("sqltype: no wire type for kind %q", name))
		}
		if err := b.Register(name, wt); err != nil {
			panic(err)
		}
	}
	return b.Build()
}
