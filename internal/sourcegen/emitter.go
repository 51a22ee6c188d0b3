// Package sourcegen is the source-text emission backend: every emission
// operation appends a Go fragment in contract order, and Generate renders a
// compilable client implementation for downstream compilation.
package sourcegen

import (
	"fmt"
	"strings"

	"github.com/restbound/restbound/internal/generator"
	"github.com/restbound/restbound/internal/models"
	"github.com/restbound/restbound/pkg/restbound"
)

// SourceFile is the artifact produced by this backend
type SourceFile struct {
	PackageName string
	TypeName    string
	FileName    string
	Content     string
}

// Kind implements generator.Artifact
func (s *SourceFile) Kind() string {
	return "source"
}

// Emitter implements generator.Emitter by rendering Go source text
type Emitter struct {
	packageName string
}

// NewEmitter creates a source backend emitting into the given package
func NewEmitter(packageName string) *Emitter {
	return &Emitter{packageName: packageName}
}

// EmitType implements generator.Emitter
func (e *Emitter) EmitType(model *models.TypeModel) generator.TypeEmitter {
	return &typeEmitter{
		packageName: e.packageName,
		model:       model,
		clientName:  exportName(model.Name) + "Client",
	}
}

type fieldData struct {
	Property  *models.PropertyModel
	FieldName string
	Type      string
}

type methodData struct {
	Method    *models.MethodModel
	Name      string
	IsDispose bool
	Invalid   bool
	CtxName   string // cancellation-token parameter, "" when none
	Body      []string
}

type typeEmitter struct {
	packageName string
	model       *models.TypeModel
	clientName  string

	requesterGetter string
	fields          []fieldData
	methods         []*methodData
}

// EmitRequesterProperty implements generator.TypeEmitter
func (t *typeEmitter) EmitRequesterProperty(property *models.PropertyModel) {
	t.requesterGetter = exportName(property.Name)
}

// EmitProperty implements generator.TypeEmitter
func (t *typeEmitter) EmitProperty(property *models.PropertyModel, role models.ParameterRole) generator.EmittedProperty {
	t.fields = append(t.fields, fieldData{
		Property:  property,
		FieldName: unexportName(property.Name),
		Type:      property.Type.Name,
	})
	return generator.EmittedProperty{Property: property, Role: role}
}

// EmitMethod implements generator.TypeEmitter
func (t *typeEmitter) EmitMethod(method *models.MethodModel) generator.MethodEmitter {
	data := &methodData{
		Method: method,
		Name:   exportName(method.Name),
	}
	t.methods = append(t.methods, data)
	return &methodEmitter{typeEmitter: t, data: data}
}

// EmitDisposeMethod implements generator.TypeEmitter
func (t *typeEmitter) EmitDisposeMethod(method *models.MethodModel) {
	t.methods = append(t.methods, &methodData{
		Method:    method,
		Name:      exportName(method.Name),
		IsDispose: true,
	})
}

// Generate implements generator.TypeEmitter
func (t *typeEmitter) Generate() (generator.Artifact, error) {
	content, err := render(t)
	if err != nil {
		return nil, err
	}
	return &SourceFile{
		PackageName: t.packageName,
		TypeName:    t.model.Name,
		FileName:    strings.ToLower(t.model.Name) + "_client.go",
		Content:     content,
	}, nil
}

// fieldFor returns the rendered field name of an emitted property
func (t *typeEmitter) fieldFor(property *models.PropertyModel) string {
	for _, f := range t.fields {
		if f.Property == property {
			return f.FieldName
		}
	}
	return unexportName(property.Name)
}

type methodEmitter struct {
	typeEmitter *typeEmitter
	data        *methodData
}

func (m *methodEmitter) addf(format string, args ...interface{}) {
	m.data.Body = append(m.data.Body, fmt.Sprintf(format, args...))
}

// EmitRequestInfoCreation implements generator.MethodEmitter
func (m *methodEmitter) EmitRequestInfoCreation(verb string, pathTemplate string) {
	m.addf("info := restbound.NewRequestInfo(%q, %q)", verb, pathTemplate)
	m.addf("info.MethodName = %q", m.data.Method.Name)
}

// EmitSetAllowAnyStatusCode implements generator.MethodEmitter
func (m *methodEmitter) EmitSetAllowAnyStatusCode() {
	m.addf("info.AllowAnyStatusCode = true")
}

// EmitSetBasePath implements generator.MethodEmitter
func (m *methodEmitter) EmitSetBasePath(template string) {
	m.addf("info.BasePath = restbound.TemplatePath(%q)", template)
}

// EmitAddTypeHeader implements generator.MethodEmitter
func (m *methodEmitter) EmitAddTypeHeader(header models.HeaderAttribute) {
	m.addf("info.AddHeader(%q, %q)", header.Name, header.Value)
}

// EmitAddHeaderProperty implements generator.MethodEmitter
func (m *methodEmitter) EmitAddHeaderProperty(property generator.EmittedProperty) {
	name, defaultValue := generator.SplitPropertyHeader(property.Property.Header.Name)
	field := "c." + m.typeEmitter.fieldFor(property.Property)
	if nullableType(property.Property.Type) {
		m.addf("if %s != nil {", field)
		m.addf("\tinfo.AddHeader(%q, restbound.Stringify(*%s))", name, field)
		if defaultValue != "" {
			m.addf("} else {")
			m.addf("\tinfo.AddHeader(%q, %q)", name, defaultValue)
		}
		m.addf("}")
		return
	}
	m.addf("info.AddHeader(%q, restbound.Stringify(%s))", name, field)
}

// EmitAddPathProperty implements generator.MethodEmitter
func (m *methodEmitter) EmitAddPathProperty(property generator.EmittedProperty, method restbound.PathSerializationMethod) {
	m.addf("info.AddPathParam(%q, c.%s, %s)",
		property.Property.PathKey(), m.typeEmitter.fieldFor(property.Property), pathMethodExpr(method))
}

// EmitAddQueryProperty implements generator.MethodEmitter
func (m *methodEmitter) EmitAddQueryProperty(property generator.EmittedProperty, method restbound.QuerySerializationMethod) {
	m.addf("info.AddQuery(%q, c.%s, %s)",
		property.Property.QueryKey(), m.typeEmitter.fieldFor(property.Property), queryMethodExpr(method))
}

// EmitAddHttpRequestMessagePropertyProperty implements generator.MethodEmitter
func (m *methodEmitter) EmitAddHttpRequestMessagePropertyProperty(property generator.EmittedProperty) {
	m.addf("info.SetProperty(%q, c.%s)",
		property.Property.PropertyKey(), m.typeEmitter.fieldFor(property.Property))
}

// EmitAddMethodHeader implements generator.MethodEmitter
func (m *methodEmitter) EmitAddMethodHeader(header models.HeaderAttribute) {
	m.addf("info.AddHeader(%q, %q)", header.Name, header.Value)
}

// EmitSetCancellationToken implements generator.MethodEmitter
func (m *methodEmitter) EmitSetCancellationToken(parameter *models.ParameterModel) {
	// The binding is hoisted to the top of the rendered body; a context has
	// no position on the wire
	m.data.CtxName = paramName(parameter)
}

// EmitAddHeaderParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitAddHeaderParameter(parameter *models.ParameterModel) {
	name := paramName(parameter)
	if nullableType(parameter.Type) {
		m.addf("if %s != nil {", name)
		m.addf("\tinfo.AddHeader(%q, restbound.Stringify(*%s))", parameter.Header.Name, name)
		m.addf("}")
		return
	}
	m.addf("info.AddHeader(%q, restbound.Stringify(%s))", parameter.Header.Name, name)
}

// EmitAddPathParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitAddPathParameter(parameter *models.ParameterModel, method restbound.PathSerializationMethod) {
	m.addf("info.AddPathParam(%q, %s, %s)", parameter.PathKey(), paramName(parameter), pathMethodExpr(method))
}

// EmitAddQueryParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitAddQueryParameter(parameter *models.ParameterModel, method restbound.QuerySerializationMethod) {
	m.addf("info.AddQuery(%q, %s, %s)", parameter.QueryKey(), paramName(parameter), queryMethodExpr(method))
}

// EmitAddHttpRequestMessagePropertyParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitAddHttpRequestMessagePropertyParameter(parameter *models.ParameterModel) {
	m.addf("info.SetProperty(%q, %s)", parameter.PropertyKey(), paramName(parameter))
}

// EmitAddRawQueryStringParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitAddRawQueryStringParameter(parameter *models.ParameterModel) {
	m.addf("info.AddRawQuery(restbound.Stringify(%s))", paramName(parameter))
}

// TryEmitAddQueryMapParameter implements generator.MethodEmitter
func (m *methodEmitter) TryEmitAddQueryMapParameter(parameter *models.ParameterModel, method restbound.QuerySerializationMethod) bool {
	if !parameter.Type.IsMap {
		return false
	}
	m.addf("info.AddQueryMap(%s, %s)", paramName(parameter), queryMethodExpr(method))
	return true
}

// EmitSetBodyParameter implements generator.MethodEmitter
func (m *methodEmitter) EmitSetBodyParameter(parameter *models.ParameterModel, method restbound.BodySerializationMethod) {
	m.addf("info.SetBody(%s, %s)", paramName(parameter), bodyMethodExpr(method))
}

// TryEmitRequestMethodInvocation implements generator.MethodEmitter
func (m *methodEmitter) TryEmitRequestMethodInvocation() bool {
	returns := m.data.Method.Returns
	switch returns.Shape {
	case models.ReturnVoid:
		m.addf("return c.requester.RequestVoid(ctx, info)")

	case models.ReturnJson:
		m.addf("var result %s", returns.DataType)
		m.addf("err := c.requester.RequestJSON(ctx, info, &result)")
		m.addf("return result, err")

	case models.ReturnResponseMessage:
		m.addf("return c.requester.RequestResponseMessage(ctx, info)")

	case models.ReturnResponse:
		m.addf("resp, err := c.requester.RequestResponseMessage(ctx, info)")
		m.addf("if err != nil {")
		m.addf("\treturn nil, err")
		m.addf("}")
		m.addf("defer resp.Body.Close()")
		m.addf("var value %s", returns.DataType)
		m.addf("if err := json.NewDecoder(resp.Body).Decode(&value); err != nil {")
		m.addf("\treturn nil, err")
		m.addf("}")
		m.addf("return restbound.NewResponse(value, resp), nil")

	case models.ReturnBytes:
		m.addf("return c.requester.RequestBytes(ctx, info)")

	case models.ReturnString:
		m.addf("return c.requester.RequestString(ctx, info)")

	case models.ReturnStream:
		m.addf("return c.requester.RequestStream(ctx, info)")

	default:
		m.data.Invalid = true
		return false
	}
	return true
}

// paramName returns the rendered parameter name
func paramName(parameter *models.ParameterModel) string {
	return unexportName(parameter.Name)
}

// nullableType reports whether a declared type renders as a pointer
func nullableType(t models.TypeRef) bool {
	return t.Nullable && strings.HasPrefix(t.Name, "*")
}

func pathMethodExpr(method restbound.PathSerializationMethod) string {
	if method == restbound.PathSerializationSerialized {
		return "restbound.PathSerializationSerialized"
	}
	return "restbound.PathSerializationToString"
}

func queryMethodExpr(method restbound.QuerySerializationMethod) string {
	if method == restbound.QuerySerializationSerialized {
		return "restbound.QuerySerializationSerialized"
	}
	return "restbound.QuerySerializationToString"
}

func bodyMethodExpr(method restbound.BodySerializationMethod) string {
	if method == restbound.BodySerializationUrlEncoded {
		return "restbound.BodySerializationUrlEncoded"
	}
	return "restbound.BodySerializationSerialized"
}

// exportName upper-cases the first rune of a name
func exportName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// unexportName lower-cases the first rune of a name
func unexportName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

var _ generator.Emitter = (*Emitter)(nil)
var _ generator.TypeEmitter = (*typeEmitter)(nil)
var _ generator.MethodEmitter = (*methodEmitter)(nil)
