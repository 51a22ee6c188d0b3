package runtimeplan

import (
	"github.com/restbound/restbound/internal/generator"
	"github.com/restbound/restbound/internal/models"
	"github.com/restbound/restbound/pkg/restbound"
)

// Emitter implements generator.Emitter by recording tagged op lists
type Emitter struct{}

// NewEmitter creates a runtime plan backend
func NewEmitter() *Emitter {
	return &Emitter{}
}

// EmitType implements generator.Emitter
func (e *Emitter) EmitType(model *models.TypeModel) generator.TypeEmitter {
	return &typeEmitter{
		plan: &Plan{TypeName: model.Name},
	}
}

type typeEmitter struct {
	plan *Plan
}

// EmitRequesterProperty implements generator.TypeEmitter
func (t *typeEmitter) EmitRequesterProperty(property *models.PropertyModel) {
	t.plan.Properties = append(t.plan.Properties, PlanProperty{
		Name:        property.Name,
		IsRequester: true,
	})
}

// EmitProperty implements generator.TypeEmitter
func (t *typeEmitter) EmitProperty(property *models.PropertyModel, role models.ParameterRole) generator.EmittedProperty {
	t.plan.Properties = append(t.plan.Properties, PlanProperty{
		Name: property.Name,
		Role: role,
	})
	return generator.EmittedProperty{Property: property, Role: role}
}

// EmitMethod implements generator.TypeEmitter
func (t *typeEmitter) EmitMethod(method *models.MethodModel) generator.MethodEmitter {
	planned := &PlanMethod{
		Name:  method.Name,
		Shape: method.Returns.Shape,
	}
	t.plan.Methods = append(t.plan.Methods, planned)
	return &methodEmitter{
		method:  method,
		planned: planned,
	}
}

// EmitDisposeMethod implements generator.TypeEmitter
func (t *typeEmitter) EmitDisposeMethod(method *models.MethodModel) {
	t.plan.Methods = append(t.plan.Methods, &PlanMethod{
		Name:      method.Name,
		IsDispose: true,
	})
}

// Generate implements generator.TypeEmitter
func (t *typeEmitter) Generate() (generator.Artifact, error) {
	return t.plan, nil
}

type methodEmitter struct {
	method  *models.MethodModel
	planned *PlanMethod
}

func (m *methodEmitter) append(op Op) {
	m.planned.Ops = append(m.planned.Ops, op)
}

// paramIndex locates a parameter in its method's declaration order
func (m *methodEmitter) paramIndex(parameter *models.ParameterModel) int {
	for i := range m.method.Parameters {
		if &m.method.Parameters[i] == parameter {
			return i
		}
	}
	for i := range m.method.Parameters {
		if m.method.Parameters[i].Name == parameter.Name {
			return i
		}
	}
	return -1
}

// EmitRequestInfoCreation implements generator.MethodEmitter
func (m *methodEmitter) EmitRequestInfoCreation(verb string, pathTemplate string) {
	m.append(Op{Kind: OpRequestInfoCreation, Verb: verb, PathTemplate: pathTemplate})
}

// EmitSetAllowAnyStatusCode implements generator.MethodEmitter
func (m *methodEmitter) EmitSetAllowAnyStatusCode() {
	m.append(Op{Kind: OpSetAllowAnyStatusCode})
}

// EmitSetBasePath implements generator.MethodEmitter
func (m *methodEmitter) EmitSetBasePath(template string) {
	m.append(Op{Kind: OpSetBasePath, PathTemplate: template})
}

// EmitAddTypeHeader implements generator.MethodEmitter
func (m *methodEmitter) EmitAddTypeHeader(header models.HeaderAttribute) {
	m.append(Op{Kind: OpAddTypeHeader, Key: header.Name, Default: header.Value})
}

// EmitAddHeaderProperty implements generator.MethodEmitter
func (m *methodEmitter) EmitAddHeaderProperty(property generator.EmittedProperty) {
	name, defaultValue := generator.SplitPropertyHeader(property.Property.Header.Name)
	m.append(Op{
		Kind:         OpAddHeaderProperty,
		Key:          name,
		Default:      defaultValue,
		PropertyName: property.Property.Name,
	})
}

// EmitAddPathProperty implements generator.MethodEmitter
func (m *methodEmitter) EmitAddPathProperty(property generator.EmittedProperty, method restbound.PathSerializationMethod) {
	m.append(Op{
		Kind:         OpAddPathProperty,
		Key:          property.Property.PathKey(),
		PropertyName: property.Property.Name,
		PathMethod:   method,
	})
}

// EmitAddQueryProperty implements generator.MethodEmitter
func (m *methodEmitter) EmitAddQueryProperty(property generator.EmittedProperty, method restbound.QuerySerializationMethod) {
	m.append(Op{
		Kind:         OpAddQueryProperty,
		Key:          property.Property.QueryKey(),
		PropertyName: property.Property.Name,
		QueryMethod:  method,
	})
}

// EmitAddHttpRequestMessagePropertyProperty implements generator.MethodEmitter
func (m *methodEmitter) EmitAddHttpRequestMessagePropertyProperty(property generator.EmittedProperty) {
	m.append(Op{
		Kind:         OpAddRequestPropertyProperty,
		Key:          property.Property.PropertyKey(),
		PropertyName: property.Property.Name,
	})
}

// EmitAddMethodHeader implements generator.MethodEmitter
func (m *methodEmitter) EmitAddMethodHeader(header models.HeaderAttribute) {
	m.append(Op{Kind: OpAddMethodHeader, Key: header.Name, Default: header.Value})
}

// EmitSetCancellationToken implements generator.MethodEmitter
func (m *methodEmitter) EmitSetCancellationToken(parameter *models.ParameterModel) {
	m.append(Op{Kind: OpSetCancellationToken, ParamIndex: m.paramIndex(parameter)})
}

// EmitAddHeaderParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitAddHeaderParameter(parameter *models.ParameterModel) {
	m.append(Op{
		Kind:       OpAddHeaderParameter,
		Key:        parameter.Header.Name,
		ParamIndex: m.paramIndex(parameter),
	})
}

// EmitAddPathParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitAddPathParameter(parameter *models.ParameterModel, method restbound.PathSerializationMethod) {
	m.append(Op{
		Kind:       OpAddPathParameter,
		Key:        parameter.PathKey(),
		ParamIndex: m.paramIndex(parameter),
		PathMethod: method,
	})
}

// EmitAddQueryParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitAddQueryParameter(parameter *models.ParameterModel, method restbound.QuerySerializationMethod) {
	m.append(Op{
		Kind:        OpAddQueryParameter,
		Key:         parameter.QueryKey(),
		ParamIndex:  m.paramIndex(parameter),
		QueryMethod: method,
	})
}

// EmitAddHttpRequestMessagePropertyParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitAddHttpRequestMessagePropertyParameter(parameter *models.ParameterModel) {
	m.append(Op{
		Kind:       OpAddRequestPropertyParameter,
		Key:        parameter.PropertyKey(),
		ParamIndex: m.paramIndex(parameter),
	})
}

// EmitAddRawQueryStringParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitAddRawQueryStringParameter(parameter *models.ParameterModel) {
	m.append(Op{Kind: OpAddRawQueryStringParameter, ParamIndex: m.paramIndex(parameter)})
}

// TryEmitAddQueryMapParameter implements generator.MethodEmitter
func (m *methodEmitter) TryEmitAddQueryMapParameter(parameter *models.ParameterModel, method restbound.QuerySerializationMethod) bool {
	if !parameter.Type.IsMap {
		return false
	}
	m.append(Op{
		Kind:        OpAddQueryMapParameter,
		ParamIndex:  m.paramIndex(parameter),
		QueryMethod: method,
	})
	return true
}

// EmitSetBodyParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitSetBodyParameter(parameter *models.ParameterModel, method restbound.BodySerializationMethod) {
	m.append(Op{
		Kind:       OpSetBodyParameter,
		ParamIndex: m.paramIndex(parameter),
		BodyMethod: method,
	})
}

// TryEmitRequestMethodInvocation implements generator.MethodEmitter
func (m *methodEmitter) TryEmitRequestMethodInvocation() bool {
	if m.method.Returns.Shape == models.ReturnInvalid {
		return false
	}
	m.append(Op{Kind: OpDispatch, ReturnShape: m.method.Returns.Shape})
	return true
}

var _ generator.Emitter = (*Emitter)(nil)
var _ generator.TypeEmitter = (*typeEmitter)(nil)
var _ generator.MethodEmitter = (*methodEmitter)(nil)
