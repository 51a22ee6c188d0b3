package generator

import (
	"strings"

	"github.com/restbound/restbound/internal/diagnostics"
	"github.com/restbound/restbound/internal/models"
	"github.com/restbound/restbound/pkg/restbound"
)

// Validator enforces the structural rules over a TypeModel. It is pure: it
// reads the model and writes findings to the reporter, never aborting.
type Validator struct {
	model    *models.TypeModel
	reporter diagnostics.Reporter
}

// NewValidator creates a Validator for the given model
func NewValidator(model *models.TypeModel, reporter diagnostics.Reporter) *Validator {
	return &Validator{model: model, reporter: reporter}
}

// ValidateTypeHeaders checks interface-level header well-formedness
func (v *Validator) ValidateTypeHeaders() {
	for _, header := range v.model.Headers {
		if strings.Contains(header.Name, ":") {
			v.reporter.ReportHeaderOnInterfaceMustNotHaveColonInName(header)
		}
		if !header.HasValue {
			v.reporter.ReportHeaderOnInterfaceMustHaveValue(header)
		}
	}
}

// ValidateAllowAnyStatusCode checks that the attribute is declared on the
// interface being generated, not an ancestor
func (v *Validator) ValidateAllowAnyStatusCode() {
	attr := v.model.AllowAnyStatusCode
	if attr == nil {
		return
	}
	if attr.DeclaredOn != "" && attr.DeclaredOn != v.model.Name {
		v.reporter.ReportAllowAnyStatusCodeNotAllowedOnParent(v.model, *attr)
	}
}

// ValidateEvents rejects every declared event
func (v *Validator) ValidateEvents() {
	for _, event := range v.model.Events {
		v.reporter.ReportEventNotAllowed(event)
	}
}

// ValidatePathProperties checks path-property key uniqueness and base-path
// placeholder matching. It returns the set of valid path property keys for
// the per-method checks.
func (v *Validator) ValidatePathProperties() map[string]bool {
	keys := make(map[string]bool)
	for _, property := range v.model.PathProperties() {
		key := property.PathKey()
		if keys[key] {
			v.reporter.ReportMultiplePathPropertiesForKey(key, property)
			continue
		}
		keys[key] = true
	}

	if v.model.BasePath != nil {
		reported := make(map[string]bool)
		for _, placeholder := range restbound.TemplatePath(v.model.BasePath.Template).Placeholders() {
			if !keys[placeholder] && !reported[placeholder] {
				v.reporter.ReportMissingPathPropertyForBasePathPlaceholder(*v.model.BasePath, placeholder)
				reported[placeholder] = true
			}
		}
	}

	return keys
}

// ValidateMethodPath checks placeholder matching for one method: every
// placeholder must be matched by a path parameter or path property, path
// parameter keys must be unique, and every path parameter must be used by the
// template
func (v *Validator) ValidateMethodPath(method *models.MethodModel, pathPropertyKeys map[string]bool) {
	if method.Request == nil {
		return
	}

	paramKeys := make(map[string]bool)
	for i := range method.Parameters {
		parameter := &method.Parameters[i]
		if parameter.Role() != models.RolePath {
			continue
		}
		key := parameter.PathKey()
		if paramKeys[key] {
			v.reporter.ReportMultiplePathParametersForKey(method, key, parameter)
			continue
		}
		paramKeys[key] = true
	}

	placeholders := make(map[string]bool)
	for _, placeholder := range restbound.TemplatePath(method.Request.Path).Placeholders() {
		placeholders[placeholder] = true
	}

	reported := make(map[string]bool)
	for _, placeholder := range restbound.TemplatePath(method.Request.Path).Placeholders() {
		if !paramKeys[placeholder] && !pathPropertyKeys[placeholder] && !reported[placeholder] {
			v.reporter.ReportMissingPathPropertyOrParameterForPlaceholder(method, placeholder)
			reported[placeholder] = true
		}
	}

	for i := range method.Parameters {
		parameter := &method.Parameters[i]
		if parameter.Role() != models.RolePath {
			continue
		}
		if !placeholders[parameter.PathKey()] {
			v.reporter.ReportMissingPlaceholderForPathParameter(method, parameter)
		}
	}
}

// ValidateMethodHeaders checks method-level header names
func (v *Validator) ValidateMethodHeaders(method *models.MethodModel) {
	for _, header := range method.Headers {
		if strings.Contains(header.Name, ":") {
			v.reporter.ReportHeaderOnInterfaceMustNotHaveColonInName(header)
		}
	}
}

// ValidateRequestPropertyKeys checks that HTTP-request-message property keys
// are unique across a method's parameters. Keys are case-sensitive.
func (v *Validator) ValidateRequestPropertyKeys(method *models.MethodModel) {
	keys := make(map[string]bool)
	for i := range method.Parameters {
		parameter := &method.Parameters[i]
		if parameter.Role() != models.RoleRequestProperty {
			continue
		}
		key := parameter.PropertyKey()
		if keys[key] {
			v.reporter.ReportDuplicateHttpRequestMessagePropertyKey(method, key, parameter)
			continue
		}
		keys[key] = true
	}
}
