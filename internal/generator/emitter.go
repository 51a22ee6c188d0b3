// Package generator implements the interface-analysis-and-emission pipeline:
// serialization resolution, structural validation, and the orchestration that
// turns a TypeModel into an emitted artifact through a pluggable Emitter.
package generator

import (
	"github.com/restbound/restbound/internal/models"
	"github.com/restbound/restbound/pkg/restbound"
)

// Artifact is the product of a generation run: a runtime-executable plan or a
// source text, depending on the backend
type Artifact interface {
	// Kind identifies the backend that produced the artifact
	Kind() string
}

// EmittedProperty is the handle returned when a property is emitted; method
// emitters replay it into every request
type EmittedProperty struct {
	Property *models.PropertyModel

	// Role is the request role the property contributes as (header, path,
	// query or request property)
	Role models.ParameterRole
}

// Emitter is the pluggable backend of the pipeline
type Emitter interface {
	// EmitType starts emission for one interface
	EmitType(model *models.TypeModel) TypeEmitter
}

// TypeEmitter emits the per-type pieces of a client implementation
type TypeEmitter interface {
	// EmitRequesterProperty emits the property exposing the injected Requester
	EmitRequesterProperty(property *models.PropertyModel)

	// EmitProperty emits a non-Requester property and returns the handle the
	// method emitters reuse
	EmitProperty(property *models.PropertyModel, role models.ParameterRole) EmittedProperty

	// EmitMethod starts emission for one request method
	EmitMethod(method *models.MethodModel) MethodEmitter

	// EmitDisposeMethod emits the method delegating to the Requester's
	// release capability
	EmitDisposeMethod(method *models.MethodModel)

	// Generate finalizes emission and returns the artifact
	Generate() (Artifact, error)
}

// MethodEmitter emits the ordered request-construction operations of one
// method. Calls arrive in the contract order: request-info creation,
// type-level setup, property contributions in property declaration order,
// method headers, parameter contributions in parameter declaration order,
// and finally the request dispatch.
type MethodEmitter interface {
	EmitRequestInfoCreation(verb string, pathTemplate string)
	EmitSetAllowAnyStatusCode()
	EmitSetBasePath(template string)

	// EmitAddTypeHeader replays an interface-level header into the request;
	// type-level headers precede every other header contribution
	EmitAddTypeHeader(header models.HeaderAttribute)

	EmitAddHeaderProperty(property EmittedProperty)
	EmitAddPathProperty(property EmittedProperty, method restbound.PathSerializationMethod)
	EmitAddQueryProperty(property EmittedProperty, method restbound.QuerySerializationMethod)
	EmitAddHttpRequestMessagePropertyProperty(property EmittedProperty)

	EmitAddMethodHeader(header models.HeaderAttribute)

	EmitSetCancellationToken(parameter *models.ParameterModel)
	EmitAddHeaderParameter(parameter *models.ParameterModel)
	EmitAddPathParameter(parameter *models.ParameterModel, method restbound.PathSerializationMethod)
	EmitAddQueryParameter(parameter *models.ParameterModel, method restbound.QuerySerializationMethod)
	EmitAddHttpRequestMessagePropertyParameter(parameter *models.ParameterModel)
	EmitAddRawQueryStringParameter(parameter *models.ParameterModel)

	// TryEmitAddQueryMapParameter emits a query-map contribution; it returns
	// false when the parameter type is not a key-value mapping
	TryEmitAddQueryMapParameter(parameter *models.ParameterModel, method restbound.QuerySerializationMethod) bool

	EmitSetBodyParameter(parameter *models.ParameterModel, method restbound.BodySerializationMethod)

	// TryEmitRequestMethodInvocation emits the dispatch against the
	// Requester; it returns false when the method's return type is not one of
	// the recognized request shapes
	TryEmitRequestMethodInvocation() bool
}
