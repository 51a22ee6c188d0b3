package generator

import (
	"strings"

	"github.com/restbound/restbound/internal/diagnostics"
	"github.com/restbound/restbound/internal/models"
	"github.com/restbound/restbound/pkg/restbound"
)

// Generator orchestrates the pipeline: validation interleaved with emission,
// so every reachable diagnostic surfaces in one pass and a valid model yields
// a complete artifact.
type Generator struct {
	reporter diagnostics.Reporter
}

// NewGenerator creates a Generator reporting through the given sink
func NewGenerator(reporter diagnostics.Reporter) *Generator {
	return &Generator{reporter: reporter}
}

// Generate runs the pipeline for one TypeModel against the given backend and
// returns the emitted artifact. Validation findings are written to the
// reporter; the caller decides whether to discard the artifact on errors.
func (g *Generator) Generate(model *models.TypeModel, emitter Emitter) (Artifact, error) {
	validator := NewValidator(model, g.reporter)

	validator.ValidateTypeHeaders()
	validator.ValidateAllowAnyStatusCode()
	validator.ValidateEvents()

	typeEmitter := emitter.EmitType(model)

	pathPropertyKeys := validator.ValidatePathProperties()

	emittedProperties := g.emitProperties(model, typeEmitter)

	for i := range model.Methods {
		method := &model.Methods[i]
		if method.IsDisposeMethod {
			typeEmitter.EmitDisposeMethod(method)
			continue
		}
		if method.Request == nil {
			g.reporter.ReportMethodMustHaveRequestAttribute(method)
			continue
		}
		g.emitMethod(model, method, typeEmitter, validator, pathPropertyKeys, emittedProperties)
	}

	return typeEmitter.Generate()
}

// emitProperties validates and emits every property, returning the handles
// method emission replays, in property declaration order
func (g *Generator) emitProperties(model *models.TypeModel, typeEmitter TypeEmitter) []EmittedProperty {
	var emitted []EmittedProperty
	requesterSeen := false

	for i := range model.Properties {
		property := &model.Properties[i]

		if property.IsRequester {
			if requesterSeen {
				g.reporter.ReportMultipleRequesterProperties(property)
				continue
			}
			requesterSeen = true
			if property.AttributeCount() > 0 {
				g.reporter.ReportRequesterPropertyMustHaveZeroAttributes(property)
			}
			if property.HasSetter || !property.HasGetter {
				g.reporter.ReportPropertyMustBeReadOnly(property)
			}
			typeEmitter.EmitRequesterProperty(property)
			continue
		}

		if !property.HasGetter || !property.HasSetter {
			g.reporter.ReportPropertyMustBeReadWrite(property)
		}
		if property.AttributeCount() != 1 {
			g.reporter.ReportPropertyMustHaveOneAttribute(property)
		}

		role, ok := propertyRole(property)
		if !ok {
			// Nothing to contribute to requests
			continue
		}

		if role == models.RoleHeader {
			g.validateHeaderProperty(property)
		}

		emitted = append(emitted, typeEmitter.EmitProperty(property, role))
	}

	return emitted
}

// propertyRole returns the request role of a property, picking the first
// annotation in role order when multiplicity is violated so emission can
// continue past the diagnostic
func propertyRole(property *models.PropertyModel) (models.ParameterRole, bool) {
	switch {
	case property.Header != nil:
		return models.RoleHeader, true
	case property.Path != nil:
		return models.RolePath, true
	case property.Query != nil:
		return models.RoleQuery, true
	case property.RequestProperty != nil:
		return models.RoleRequestProperty, true
	default:
		return models.RoleImplicit, false
	}
}

// validateHeaderProperty checks the property-level header rules: the name
// carries the default after a colon, and a default demands a nullable type
func (g *Generator) validateHeaderProperty(property *models.PropertyModel) {
	if !strings.Contains(property.Header.Name, ":") {
		g.reporter.ReportHeaderPropertyNameMustContainColon(property)
	}
	_, defaultValue := SplitPropertyHeader(property.Header.Name)
	hasDefault := defaultValue != "" || property.Header.HasValue
	if hasDefault && !property.Type.Nullable {
		g.reporter.ReportHeaderPropertyWithValueMustBeNullable(property)
	}
}

// emitMethod runs the method-emission algorithm for one request method
func (g *Generator) emitMethod(
	model *models.TypeModel,
	method *models.MethodModel,
	typeEmitter TypeEmitter,
	validator *Validator,
	pathPropertyKeys map[string]bool,
	emittedProperties []EmittedProperty,
) {
	validator.ValidateMethodPath(method, pathPropertyKeys)
	validator.ValidateRequestPropertyKeys(method)

	resolver := NewSerializationResolver(model.SerializationMethods, method.SerializationMethods)
	methodEmitter := typeEmitter.EmitMethod(method)

	methodEmitter.EmitRequestInfoCreation(method.Request.Method, method.Request.Path)

	if allowAnyStatusCode(model, method) {
		methodEmitter.EmitSetAllowAnyStatusCode()
	}
	if model.BasePath != nil {
		methodEmitter.EmitSetBasePath(model.BasePath.Template)
	}
	for _, header := range model.Headers {
		methodEmitter.EmitAddTypeHeader(header)
	}

	for _, emitted := range emittedProperties {
		switch emitted.Role {
		case models.RoleHeader:
			methodEmitter.EmitAddHeaderProperty(emitted)
		case models.RolePath:
			methodEmitter.EmitAddPathProperty(emitted, resolver.ResolvePath(emitted.Property.Path.SerializationMethod))
		case models.RoleQuery:
			methodEmitter.EmitAddQueryProperty(emitted, resolver.ResolveQuery(emitted.Property.Query.SerializationMethod))
		case models.RoleRequestProperty:
			methodEmitter.EmitAddHttpRequestMessagePropertyProperty(emitted)
		}
	}

	validator.ValidateMethodHeaders(method)
	for _, header := range method.Headers {
		methodEmitter.EmitAddMethodHeader(header)
	}

	g.emitParameters(method, methodEmitter, resolver)

	if !methodEmitter.TryEmitRequestMethodInvocation() {
		g.reporter.ReportMethodMustHaveValidReturnType(method)
	}
}

// emitParameters walks the parameters in declaration order, enforcing the
// per-parameter rules and emitting exactly one contribution each
func (g *Generator) emitParameters(method *models.MethodModel, methodEmitter MethodEmitter, resolver *SerializationResolver) {
	cancellationSeen := false
	bodySeen := false

	for i := range method.Parameters {
		parameter := &method.Parameters[i]

		if !parameter.IsCancellationToken && parameter.AttributeCount() > 1 {
			g.reporter.ReportParameterMustHaveZeroOrOneAttributes(method, parameter)
		}

		switch parameter.Role() {
		case models.RoleCancellationToken:
			if parameter.AttributeCount() > 0 {
				g.reporter.ReportCancellationTokenMustHaveZeroAttributes(method, parameter)
			}
			if cancellationSeen {
				g.reporter.ReportMultipleCancellationTokenParameters(method, parameter)
				continue
			}
			cancellationSeen = true
			methodEmitter.EmitSetCancellationToken(parameter)

		case models.RoleHeader:
			if strings.Contains(parameter.Header.Name, ":") {
				g.reporter.ReportHeaderOnInterfaceMustNotHaveColonInName(*parameter.Header)
			}
			if parameter.Header.HasValue {
				g.reporter.ReportHeaderParameterMustNotHaveValue(method, parameter)
			}
			methodEmitter.EmitAddHeaderParameter(parameter)

		case models.RolePath:
			methodEmitter.EmitAddPathParameter(parameter, resolver.ResolvePath(parameter.Path.SerializationMethod))

		case models.RoleQuery:
			methodEmitter.EmitAddQueryParameter(parameter, resolver.ResolveQuery(parameter.Query.SerializationMethod))

		case models.RoleQueryMap:
			if !methodEmitter.TryEmitAddQueryMapParameter(parameter, resolver.ResolveQuery(parameter.QueryMap.SerializationMethod)) {
				g.reporter.ReportQueryMapParameterIsNotADictionary(method, parameter)
			}

		case models.RoleRawQueryString:
			methodEmitter.EmitAddRawQueryStringParameter(parameter)

		case models.RoleBody:
			if bodySeen {
				g.reporter.ReportMultipleBodyParameters(method, parameter)
				continue
			}
			bodySeen = true
			methodEmitter.EmitSetBodyParameter(parameter, resolver.ResolveBody(parameter.Body.SerializationMethod))

		case models.RoleRequestProperty:
			methodEmitter.EmitAddHttpRequestMessagePropertyParameter(parameter)

		default:
			// No annotation: an implicit query parameter with the framework
			// default serialization
			methodEmitter.EmitAddQueryParameter(parameter, restbound.QuerySerializationToString)
		}
	}
}

// allowAnyStatusCode resolves the effective flag, method over type
func allowAnyStatusCode(model *models.TypeModel, method *models.MethodModel) bool {
	if method.AllowAnyStatusCode != nil {
		return method.AllowAnyStatusCode.Allow
	}
	if model.AllowAnyStatusCode != nil {
		return model.AllowAnyStatusCode.Allow
	}
	return false
}

// SplitPropertyHeader splits a property-level header name of the form
// "Name: Default" into its name and default value. A missing colon yields the
// whole text as the name.
func SplitPropertyHeader(name string) (string, string) {
	idx := strings.Index(name, ":")
	if idx < 0 {
		return strings.TrimSpace(name), ""
	}
	return strings.TrimSpace(name[:idx]), strings.TrimSpace(name[idx+1:])
}
