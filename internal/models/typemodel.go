package models

// TypeModel is the immutable description of one annotated interface the
// generator consumes. It is produced by a collaborator (the descriptor
// parser, or a hand-built model in tests) and carries every attribute
// visible on the interface, including inherited ones.
type TypeModel struct {
	Name string // leaf interface being generated

	Headers              []HeaderAttribute
	BasePath             *BasePathAttribute
	AllowAnyStatusCode   *AllowAnyStatusCodeAttribute
	SerializationMethods *SerializationMethodsAttribute

	Properties []PropertyModel
	Methods    []MethodModel
	Events     []EventModel

	// Ancestors lists the inherited interfaces, nearest first. Attributes
	// declared on them carry the ancestor's name in DeclaredOn.
	Ancestors []string

	Location SourceLocation
}

// PropertyModel represents one property of the interface
type PropertyModel struct {
	Name string
	Type TypeRef

	HasGetter bool
	HasSetter bool

	// IsRequester is true if the declared type is the injected Requester
	// capability
	IsRequester bool

	Header          *HeaderAttribute
	Path            *PathAttribute
	Query           *QueryAttribute
	RequestProperty *RequestPropertyAttribute

	Location SourceLocation
}

// AttributeCount returns the number of relevant annotations on the property
func (p *PropertyModel) AttributeCount() int {
	count := 0
	if p.Header != nil {
		count++
	}
	if p.Path != nil {
		count++
	}
	if p.Query != nil {
		count++
	}
	if p.RequestProperty != nil {
		count++
	}
	return count
}

// PathKey returns the placeholder key the property binds to
func (p *PropertyModel) PathKey() string {
	if p.Path != nil && p.Path.Name != "" {
		return p.Path.Name
	}
	return p.Name
}

// QueryKey returns the query key the property binds to
func (p *PropertyModel) QueryKey() string {
	if p.Query != nil && p.Query.Name != "" {
		return p.Query.Name
	}
	return p.Name
}

// PropertyKey returns the message-property key the property binds to
func (p *PropertyModel) PropertyKey() string {
	if p.RequestProperty != nil && p.RequestProperty.Key != "" {
		return p.RequestProperty.Key
	}
	return p.Name
}

// MethodModel represents one method of the interface
type MethodModel struct {
	Name       string
	Parameters []ParameterModel
	Returns    ReturnTypeInfo

	// IsDisposeMethod is true if the method corresponds to releasing the
	// Requester
	IsDisposeMethod bool

	Request              *RequestAttribute
	AllowAnyStatusCode   *AllowAnyStatusCodeAttribute
	SerializationMethods *SerializationMethodsAttribute
	Headers              []HeaderAttribute

	Location SourceLocation
}

// ParameterModel represents one parameter of a method
type ParameterModel struct {
	Name string
	Type TypeRef

	// IsCancellationToken is true if the declared type is the cooperative
	// cancellation capability
	IsCancellationToken bool

	Header          *HeaderAttribute
	Path            *PathAttribute
	Query           *QueryAttribute
	QueryMap        *QueryMapAttribute
	RawQueryString  *RawQueryStringAttribute
	Body            *BodyAttribute
	RequestProperty *RequestPropertyAttribute

	Location SourceLocation
}

// AttributeCount returns the number of request annotations on the parameter
func (p *ParameterModel) AttributeCount() int {
	count := 0
	if p.Header != nil {
		count++
	}
	if p.Path != nil {
		count++
	}
	if p.Query != nil {
		count++
	}
	if p.QueryMap != nil {
		count++
	}
	if p.RawQueryString != nil {
		count++
	}
	if p.Body != nil {
		count++
	}
	if p.RequestProperty != nil {
		count++
	}
	return count
}

// Role returns the request role the parameter plays. Multiplicity violations
// are a validation concern; when several annotations are present the first in
// role order wins so emission can continue past the diagnostic.
func (p *ParameterModel) Role() ParameterRole {
	switch {
	case p.IsCancellationToken:
		return RoleCancellationToken
	case p.Header != nil:
		return RoleHeader
	case p.Path != nil:
		return RolePath
	case p.Query != nil:
		return RoleQuery
	case p.QueryMap != nil:
		return RoleQueryMap
	case p.RawQueryString != nil:
		return RoleRawQueryString
	case p.Body != nil:
		return RoleBody
	case p.RequestProperty != nil:
		return RoleRequestProperty
	default:
		return RoleImplicit
	}
}

// PathKey returns the placeholder key the parameter binds to
func (p *ParameterModel) PathKey() string {
	if p.Path != nil && p.Path.Name != "" {
		return p.Path.Name
	}
	return p.Name
}

// QueryKey returns the query key the parameter binds to
func (p *ParameterModel) QueryKey() string {
	if p.Query != nil && p.Query.Name != "" {
		return p.Query.Name
	}
	return p.Name
}

// PropertyKey returns the message-property key the parameter binds to
func (p *ParameterModel) PropertyKey() string {
	if p.RequestProperty != nil && p.RequestProperty.Key != "" {
		return p.RequestProperty.Key
	}
	return p.Name
}

// EventModel represents an event declaration. Events are never generated;
// they exist so the validator can reject them with a location.
type EventModel struct {
	Name     string
	Location SourceLocation
}

// RequesterProperty returns the first Requester property, if any
func (t *TypeModel) RequesterProperty() *PropertyModel {
	for i := range t.Properties {
		if t.Properties[i].IsRequester {
			return &t.Properties[i]
		}
	}
	return nil
}

// PathProperties returns the properties annotated with [Path], in declaration
// order
func (t *TypeModel) PathProperties() []*PropertyModel {
	var props []*PropertyModel
	for i := range t.Properties {
		if !t.Properties[i].IsRequester && t.Properties[i].Path != nil {
			props = append(props, &t.Properties[i])
		}
	}
	return props
}
