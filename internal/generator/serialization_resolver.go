package generator

import (
	"github.com/restbound/restbound/internal/models"
	"github.com/restbound/restbound/pkg/restbound"
)

// SerializationResolver resolves effective serialization methods by
// precedence: explicit override at the call site, then the method-level
// default, then the type-level default, then the framework default.
type SerializationResolver struct {
	typeDefaults   *models.SerializationMethodsAttribute
	methodDefaults *models.SerializationMethodsAttribute
}

// NewSerializationResolver creates a resolver from the optional type-level
// and method-level SerializationMethods attributes
func NewSerializationResolver(typeDefaults, methodDefaults *models.SerializationMethodsAttribute) *SerializationResolver {
	return &SerializationResolver{
		typeDefaults:   typeDefaults,
		methodDefaults: methodDefaults,
	}
}

// ResolvePath resolves the effective path serialization method for a call site
func (r *SerializationResolver) ResolvePath(override restbound.PathSerializationMethod) restbound.PathSerializationMethod {
	if override != restbound.PathSerializationDefault {
		return override
	}
	if r.methodDefaults != nil && r.methodDefaults.Path != restbound.PathSerializationDefault {
		return r.methodDefaults.Path
	}
	if r.typeDefaults != nil && r.typeDefaults.Path != restbound.PathSerializationDefault {
		return r.typeDefaults.Path
	}
	return restbound.PathSerializationToString
}

// ResolveQuery resolves the effective query serialization method for a call site
func (r *SerializationResolver) ResolveQuery(override restbound.QuerySerializationMethod) restbound.QuerySerializationMethod {
	if override != restbound.QuerySerializationDefault {
		return override
	}
	if r.methodDefaults != nil && r.methodDefaults.Query != restbound.QuerySerializationDefault {
		return r.methodDefaults.Query
	}
	if r.typeDefaults != nil && r.typeDefaults.Query != restbound.QuerySerializationDefault {
		return r.typeDefaults.Query
	}
	return restbound.QuerySerializationToString
}

// ResolveBody resolves the effective body serialization method for a call site
func (r *SerializationResolver) ResolveBody(override restbound.BodySerializationMethod) restbound.BodySerializationMethod {
	if override != restbound.BodySerializationDefault {
		return override
	}
	if r.methodDefaults != nil && r.methodDefaults.Body != restbound.BodySerializationDefault {
		return r.methodDefaults.Body
	}
	if r.typeDefaults != nil && r.typeDefaults.Body != restbound.BodySerializationDefault {
		return r.typeDefaults.Body
	}
	return restbound.BodySerializationSerialized
}
