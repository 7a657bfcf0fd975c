package schema

// Props is the typed property bag of a schema or field.
type Props struct {
	// Doc holds documentation entries; each may span several lines.
	Doc []string
	// Default is the decoded default value of a field, or nil.
	Default any
	// JSONLDPredicate is the linked-data binding of a field.
	JSONLDPredicate JSONLDPredicate
	// DocumentRoot marks a schema that may appear at the top of a document.
	DocumentRoot bool
	// Abstract marks a schema that is only inherited from and never emitted.
	Abstract bool
}

// HasDefault reports whether a non-null default value is set.
func (p Props) HasDefault() bool {
	return p.Default != nil
}

//go:generate go tool stringer -type=PredicateKind -trimprefix=Predicate -output=predicate_kind_string.go

// PredicateKind is the shape of a jsonldPredicate property.
type PredicateKind int

const (
	// PredicateNone means no binding that affects code generation.
	PredicateNone PredicateKind = iota
	// PredicateID means the field is the document identifier ("@id").
	PredicateID
	// PredicateMap means the field is a map-style predicate object.
	PredicateMap
)

// JSONLDPredicate is a decoded jsonldPredicate property.
type JSONLDPredicate struct {
	Kind         PredicateKind
	MapSubject   string
	MapPredicate string
	Subscope     string
}
