package models

import "github.com/restbound/restbound/pkg/restbound"

// HeaderAttribute represents a [Header(...)] annotation at any level.
// DeclaredOn carries the interface the attribute was declared on, so rules
// about leaf-only attributes and inherited headers can be checked.
type HeaderAttribute struct {
	Name       string
	Value      string
	HasValue   bool // distinguishes an empty value from no value
	DeclaredOn string
	Location   SourceLocation
}

// BasePathAttribute represents a [BasePath("...")] annotation
type BasePathAttribute struct {
	Template   string
	DeclaredOn string
	Location   SourceLocation
}

// AllowAnyStatusCodeAttribute represents an [AllowAnyStatusCode] annotation
type AllowAnyStatusCodeAttribute struct {
	Allow      bool
	DeclaredOn string
	Location   SourceLocation
}

// SerializationMethodsAttribute represents a [SerializationMethods(...)]
// annotation, supplying defaults for the level it is declared on
type SerializationMethodsAttribute struct {
	Path       restbound.PathSerializationMethod
	Query      restbound.QuerySerializationMethod
	Body       restbound.BodySerializationMethod
	DeclaredOn string
	Location   SourceLocation
}

// RequestAttribute represents a verb annotation such as [Get("/users/{id}")]
type RequestAttribute struct {
	Method   string // HTTP verb
	Path     string // relative path template, may be empty
	Location SourceLocation
}

// PathAttribute represents a [Path(...)] annotation on a property or parameter
type PathAttribute struct {
	Name                string // placeholder key override; empty means the declared name
	SerializationMethod restbound.PathSerializationMethod
	Location            SourceLocation
}

// QueryAttribute represents a [Query(...)] annotation on a property or parameter
type QueryAttribute struct {
	Name                string // query key override; empty means the declared name
	SerializationMethod restbound.QuerySerializationMethod
	Location            SourceLocation
}

// QueryMapAttribute represents a [QueryMap] annotation on a parameter
type QueryMapAttribute struct {
	SerializationMethod restbound.QuerySerializationMethod
	Location            SourceLocation
}

// RawQueryStringAttribute represents a [RawQueryString] annotation on a parameter
type RawQueryStringAttribute struct {
	Location SourceLocation
}

// BodyAttribute represents a [Body] annotation on a parameter
type BodyAttribute struct {
	SerializationMethod restbound.BodySerializationMethod
	Location            SourceLocation
}

// RequestPropertyAttribute represents an [HttpRequestMessageProperty(...)]
// annotation on a property or parameter
type RequestPropertyAttribute struct {
	Key      string // property key override; empty means the declared name
	Location SourceLocation
}
