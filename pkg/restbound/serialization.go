// Package restbound provides the public runtime consumed by generated clients:
// the Requester capability, the RequestInfo builder record, pluggable
// serializers, and path template handling.
package restbound

// PathSerializationMethod selects how a path value is turned into the text
// substituted for its placeholder.
type PathSerializationMethod int

const (
	// PathSerializationDefault defers to the next level of the
	// resolution chain (method, then type, then framework default).
	PathSerializationDefault PathSerializationMethod = iota

	// PathSerializationToString uses the value's canonical textual form.
	PathSerializationToString

	// PathSerializationSerialized delegates to the configured PathParamSerializer.
	PathSerializationSerialized
)

// String returns the string representation of the path serialization method
func (m PathSerializationMethod) String() string {
	switch m {
	case PathSerializationToString:
		return "ToString"
	case PathSerializationSerialized:
		return "Serialized"
	default:
		return "Default"
	}
}

// QuerySerializationMethod selects how a query value is rendered.
type QuerySerializationMethod int

const (
	QuerySerializationDefault QuerySerializationMethod = iota
	QuerySerializationToString
	QuerySerializationSerialized
)

// String returns the string representation of the query serialization method
func (m QuerySerializationMethod) String() string {
	switch m {
	case QuerySerializationToString:
		return "ToString"
	case QuerySerializationSerialized:
		return "Serialized"
	default:
		return "Default"
	}
}

// BodySerializationMethod selects how a body value is rendered.
type BodySerializationMethod int

const (
	BodySerializationDefault BodySerializationMethod = iota

	// BodySerializationSerialized delegates to the configured BodySerializer.
	BodySerializationSerialized

	// BodySerializationUrlEncoded renders the body as
	// application/x-www-form-urlencoded key/value pairs.
	BodySerializationUrlEncoded
)

// String returns the string representation of the body serialization method
func (m BodySerializationMethod) String() string {
	switch m {
	case BodySerializationSerialized:
		return "Serialized"
	case BodySerializationUrlEncoded:
		return "UrlEncoded"
	default:
		return "Default"
	}
}
