package diagnostics

import (
	"fmt"

	"github.com/restbound/restbound/internal/models"
)

// Diagnostic is one recorded validation finding
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Location models.SourceLocation

	// Entity names the offending declaration (attribute name, property,
	// method.parameter, placeholder key)
	Entity string
}

// String formats the diagnostic the way the console printer renders it
func (d Diagnostic) String() string {
	if d.Location.File != "" {
		return fmt.Sprintf("%s:%d: %s: %s [%s]", d.Location.File, d.Location.Line, d.Severity, d.Message, d.Code)
	}
	return fmt.Sprintf("%s: %s [%s]", d.Severity, d.Message, d.Code)
}

// Collector is the reference Reporter: it records diagnostics in call order
// and never aborts
type Collector struct {
	diagnostics []Diagnostic
}

// NewCollector creates an empty Collector
func NewCollector() *Collector {
	return &Collector{}
}

// Diagnostics returns the recorded findings in report order
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// HasErrors returns true if any recorded diagnostic has error severity
func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ByCode returns the recorded diagnostics carrying the given code
func (c *Collector) ByCode(code Code) []Diagnostic {
	var matched []Diagnostic
	for _, d := range c.diagnostics {
		if d.Code == code {
			matched = append(matched, d)
		}
	}
	return matched
}

// HasCode returns true if any diagnostic with the given code was recorded
func (c *Collector) HasCode(code Code) bool {
	return len(c.ByCode(code)) > 0
}

func (c *Collector) add(code Code, loc models.SourceLocation, entity, format string, args ...interface{}) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
		Entity:   entity,
	})
}

// ReportHeaderOnInterfaceMustHaveValue implements Reporter
func (c *Collector) ReportHeaderOnInterfaceMustHaveValue(header models.HeaderAttribute) {
	c.add(HeaderOnInterfaceMustHaveValue, header.Location, header.Name,
		"header %q on the interface must have a value", header.Name)
}

// ReportHeaderOnInterfaceMustNotHaveColonInName implements Reporter
func (c *Collector) ReportHeaderOnInterfaceMustNotHaveColonInName(header models.HeaderAttribute) {
	c.add(HeaderOnInterfaceMustNotHaveColonInName, header.Location, header.Name,
		"header name %q must not contain a colon", header.Name)
}

// ReportHeaderPropertyNameMustContainColon implements Reporter
func (c *Collector) ReportHeaderPropertyNameMustContainColon(property *models.PropertyModel) {
	c.add(HeaderPropertyNameMustContainColon, property.Location, property.Name,
		"header on property %q must have a name of the form \"Name: Default Value\"", property.Name)
}

// ReportHeaderPropertyWithValueMustBeNullable implements Reporter
func (c *Collector) ReportHeaderPropertyWithValueMustBeNullable(property *models.PropertyModel) {
	c.add(HeaderPropertyWithValueMustBeNullable, property.Location, property.Name,
		"property %q has a header default value, so its type %q must be nullable", property.Name, property.Type.Name)
}

// ReportHeaderParameterMustNotHaveValue implements Reporter
func (c *Collector) ReportHeaderParameterMustNotHaveValue(method *models.MethodModel, parameter *models.ParameterModel) {
	c.add(HeaderParameterMustNotHaveValue, parameter.Location, method.Name+"."+parameter.Name,
		"header on parameter %q of method %q must not have a value", parameter.Name, method.Name)
}

// ReportAllowAnyStatusCodeNotAllowedOnParent implements Reporter
func (c *Collector) ReportAllowAnyStatusCodeNotAllowedOnParent(model *models.TypeModel, attr models.AllowAnyStatusCodeAttribute) {
	c.add(AllowAnyStatusCodeNotAllowedOnParent, attr.Location, attr.DeclaredOn,
		"AllowAnyStatusCode is declared on %q; it may only be declared on the interface being generated (%q)", attr.DeclaredOn, model.Name)
}

// ReportEventNotAllowed implements Reporter
func (c *Collector) ReportEventNotAllowed(event models.EventModel) {
	c.add(EventNotAllowed, event.Location, event.Name,
		"event %q is not allowed on a client interface", event.Name)
}

// ReportMethodMustHaveRequestAttribute implements Reporter
func (c *Collector) ReportMethodMustHaveRequestAttribute(method *models.MethodModel) {
	c.add(MethodMustHaveRequestAttribute, method.Location, method.Name,
		"method %q must have a request annotation carrying its verb and path", method.Name)
}

// ReportMethodMustHaveValidReturnType implements Reporter
func (c *Collector) ReportMethodMustHaveValidReturnType(method *models.MethodModel) {
	c.add(MethodMustHaveValidReturnType, method.Location, method.Name,
		"method %q has return type %q, which is not a recognized request shape", method.Name, method.Returns.Raw)
}

// ReportMultipleRequesterProperties implements Reporter
func (c *Collector) ReportMultipleRequesterProperties(property *models.PropertyModel) {
	c.add(MultipleRequesterProperties, property.Location, property.Name,
		"property %q is a second Requester property; only one is allowed", property.Name)
}

// ReportRequesterPropertyMustHaveZeroAttributes implements Reporter
func (c *Collector) ReportRequesterPropertyMustHaveZeroAttributes(property *models.PropertyModel) {
	c.add(RequesterPropertyMustHaveZeroAttributes, property.Location, property.Name,
		"Requester property %q must not carry request annotations", property.Name)
}

// ReportPropertyMustBeReadOnly implements Reporter
func (c *Collector) ReportPropertyMustBeReadOnly(property *models.PropertyModel) {
	c.add(PropertyMustBeReadOnly, property.Location, property.Name,
		"property %q must have a getter and no setter", property.Name)
}

// ReportPropertyMustBeReadWrite implements Reporter
func (c *Collector) ReportPropertyMustBeReadWrite(property *models.PropertyModel) {
	c.add(PropertyMustBeReadWrite, property.Location, property.Name,
		"property %q must have both a getter and a setter", property.Name)
}

// ReportPropertyMustHaveOneAttribute implements Reporter
func (c *Collector) ReportPropertyMustHaveOneAttribute(property *models.PropertyModel) {
	c.add(PropertyMustHaveOneAttribute, property.Location, property.Name,
		"property %q must have exactly one request annotation, found %d", property.Name, property.AttributeCount())
}

// ReportMultiplePathPropertiesForKey implements Reporter
func (c *Collector) ReportMultiplePathPropertiesForKey(key string, property *models.PropertyModel) {
	c.add(MultiplePathPropertiesForKey, property.Location, key,
		"multiple path properties for key %q; property %q duplicates it", key, property.Name)
}

// ReportMissingPathPropertyForBasePathPlaceholder implements Reporter
func (c *Collector) ReportMissingPathPropertyForBasePathPlaceholder(basePath models.BasePathAttribute, placeholder string) {
	c.add(MissingPathPropertyForBasePathPlaceholder, basePath.Location, placeholder,
		"base path %q contains placeholder {%s} with no matching path property", basePath.Template, placeholder)
}

// ReportMultiplePathParametersForKey implements Reporter
func (c *Collector) ReportMultiplePathParametersForKey(method *models.MethodModel, key string, parameter *models.ParameterModel) {
	c.add(MultiplePathParametersForKey, parameter.Location, key,
		"method %q has multiple path parameters for key %q; parameter %q duplicates it", method.Name, key, parameter.Name)
}

// ReportMissingPathPropertyOrParameterForPlaceholder implements Reporter
func (c *Collector) ReportMissingPathPropertyOrParameterForPlaceholder(method *models.MethodModel, placeholder string) {
	c.add(MissingPathPropertyOrParameterForPlaceholder, method.Location, placeholder,
		"path of method %q contains placeholder {%s} with no matching path parameter or property", method.Name, placeholder)
}

// ReportMissingPlaceholderForPathParameter implements Reporter
func (c *Collector) ReportMissingPlaceholderForPathParameter(method *models.MethodModel, parameter *models.ParameterModel) {
	c.add(MissingPlaceholderForPathParameter, parameter.Location, method.Name+"."+parameter.Name,
		"path parameter %q of method %q has no matching {%s} placeholder", parameter.Name, method.Name, parameter.PathKey())
}

// ReportMultipleBodyParameters implements Reporter
func (c *Collector) ReportMultipleBodyParameters(method *models.MethodModel, parameter *models.ParameterModel) {
	c.add(MultipleBodyParameters, parameter.Location, method.Name+"."+parameter.Name,
		"method %q has multiple body parameters; %q duplicates it", method.Name, parameter.Name)
}

// ReportMultipleCancellationTokenParameters implements Reporter
func (c *Collector) ReportMultipleCancellationTokenParameters(method *models.MethodModel, parameter *models.ParameterModel) {
	c.add(MultipleCancellationTokenParameters, parameter.Location, method.Name+"."+parameter.Name,
		"method %q has multiple cancellation token parameters; %q duplicates it", method.Name, parameter.Name)
}

// ReportCancellationTokenMustHaveZeroAttributes implements Reporter
func (c *Collector) ReportCancellationTokenMustHaveZeroAttributes(method *models.MethodModel, parameter *models.ParameterModel) {
	c.add(CancellationTokenMustHaveZeroAttributes, parameter.Location, method.Name+"."+parameter.Name,
		"cancellation token parameter %q of method %q must not carry request annotations", parameter.Name, method.Name)
}

// ReportParameterMustHaveZeroOrOneAttributes implements Reporter
func (c *Collector) ReportParameterMustHaveZeroOrOneAttributes(method *models.MethodModel, parameter *models.ParameterModel) {
	c.add(ParameterMustHaveZeroOrOneAttributes, parameter.Location, method.Name+"."+parameter.Name,
		"parameter %q of method %q must have at most one request annotation, found %d", parameter.Name, method.Name, parameter.AttributeCount())
}

// ReportQueryMapParameterIsNotADictionary implements Reporter
func (c *Collector) ReportQueryMapParameterIsNotADictionary(method *models.MethodModel, parameter *models.ParameterModel) {
	c.add(QueryMapParameterIsNotADictionary, parameter.Location, method.Name+"."+parameter.Name,
		"query map parameter %q of method %q has type %q, which is not a key-value mapping", parameter.Name, method.Name, parameter.Type.Name)
}

// ReportDuplicateHttpRequestMessagePropertyKey implements Reporter
func (c *Collector) ReportDuplicateHttpRequestMessagePropertyKey(method *models.MethodModel, key string, parameter *models.ParameterModel) {
	c.add(DuplicateHttpRequestMessagePropertyKey, parameter.Location, key,
		"method %q has multiple request message properties for key %q; parameter %q duplicates it", method.Name, key, parameter.Name)
}

var _ Reporter = (*Collector)(nil)
