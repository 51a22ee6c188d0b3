package diagnostics

import "github.com/restbound/restbound/internal/models"

// Reporter is the sink validation findings are raised through: one method per
// diagnostic code, each capturing the offending entity. Implementations must
// not abort; generation continues past every finding so all reachable
// diagnostics surface in one pass.
type Reporter interface {
	ReportHeaderOnInterfaceMustHaveValue(header models.HeaderAttribute)
	ReportHeaderOnInterfaceMustNotHaveColonInName(header models.HeaderAttribute)
	ReportHeaderPropertyNameMustContainColon(property *models.PropertyModel)
	ReportHeaderPropertyWithValueMustBeNullable(property *models.PropertyModel)
	ReportHeaderParameterMustNotHaveValue(method *models.MethodModel, parameter *models.ParameterModel)
	ReportAllowAnyStatusCodeNotAllowedOnParent(model *models.TypeModel, attr models.AllowAnyStatusCodeAttribute)
	ReportEventNotAllowed(event models.EventModel)
	ReportMethodMustHaveRequestAttribute(method *models.MethodModel)
	ReportMethodMustHaveValidReturnType(method *models.MethodModel)
	ReportMultipleRequesterProperties(property *models.PropertyModel)
	ReportRequesterPropertyMustHaveZeroAttributes(property *models.PropertyModel)
	ReportPropertyMustBeReadOnly(property *models.PropertyModel)
	ReportPropertyMustBeReadWrite(property *models.PropertyModel)
	ReportPropertyMustHaveOneAttribute(property *models.PropertyModel)
	ReportMultiplePathPropertiesForKey(key string, property *models.PropertyModel)
	ReportMissingPathPropertyForBasePathPlaceholder(basePath models.BasePathAttribute, placeholder string)
	ReportMultiplePathParametersForKey(method *models.MethodModel, key string, parameter *models.ParameterModel)
	ReportMissingPathPropertyOrParameterForPlaceholder(method *models.MethodModel, placeholder string)
	ReportMissingPlaceholderForPathParameter(method *models.MethodModel, parameter *models.ParameterModel)
	ReportMultipleBodyParameters(method *models.MethodModel, parameter *models.ParameterModel)
	ReportMultipleCancellationTokenParameters(method *models.MethodModel, parameter *models.ParameterModel)
	ReportCancellationTokenMustHaveZeroAttributes(method *models.MethodModel, parameter *models.ParameterModel)
	ReportParameterMustHaveZeroOrOneAttributes(method *models.MethodModel, parameter *models.ParameterModel)
	ReportQueryMapParameterIsNotADictionary(method *models.MethodModel, parameter *models.ParameterModel)
	ReportDuplicateHttpRequestMessagePropertyKey(method *models.MethodModel, key string, parameter *models.ParameterModel)
}
