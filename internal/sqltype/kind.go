package sqltype

// Kind is the constraint satisfied by every kind marker.
//
// The unexported method seals the set to this package; the catalog of
// kinds is closed at build time.
type Kind interface {
	TypeName() string
	kind()
}

// TSVector is the document-vector kind (PostgreSQL tsvector).
type TSVector struct{}

// TSQuery is the search-query kind (PostgreSQL tsquery).
type TSQuery struct{}

// Bool is the boolean kind produced by predicates such as @@.
type Bool struct{}

// Integer is a 4-byte integer (int4).
type Integer struct{}

// Float is a 4-byte float (float4), the result of ranking and distances.
type Float struct{}

// Text is the text kind.
type Text struct{}

func (TSVector) TypeName() string { return "tsvector" }
func (TSQuery) TypeName() string  { return "tsquery" }
func (Bool) TypeName() string     { return "bool" }
func (Integer) TypeName() string  { return "int4" }
func (Float) TypeName() string    { return "float4" }
func (Text) TypeName() string     { return "text" }

func (TSVector) kind() {}
func (TSQuery) kind()  {}
func (Bool) kind()     {}
func (Integer) kind()  {}
func (Float) kind()    {}
func (Text) kind()     {}

// NameOf returns the type name of kind K without a value in hand.
func NameOf[K Kind]() string {
	var k K
	return k.TypeName()
}

// kindNames lists every kind name in declaration order.
func kindNames() []string {
	return []string{
		NameOf[TSVector](),
		NameOf[TSQuery](),
		NameOf[Bool](),
		NameOf[Integer](),
		NameOf[Float](),
		NameOf[Text](),
	}
}
