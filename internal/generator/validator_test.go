package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restbound/restbound/internal/diagnostics"
	"github.com/restbound/restbound/internal/models"
)

func pathProperty(name, key string) models.PropertyModel {
	return models.PropertyModel{
		Name: name, Type: models.TypeRef{Name: "string"},
		HasGetter: true, HasSetter: true,
		Path: &models.PathAttribute{Name: key},
	}
}

func TestValidator_PathPlaceholderViaProperty(t *testing.T) {
	model := &models.TypeModel{
		Name:       "IAccounts",
		Properties: []models.PropertyModel{pathProperty("accountId", "")},
		Methods: []models.MethodModel{
			{
				Name:    "ListUsers",
				Request: &models.RequestAttribute{Method: "GET", Path: "/accounts/{accountId}/users"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnVoid},
			},
		},
	}

	collector, _ := generate(t, model)
	assert.False(t, collector.HasErrors(), "diagnostics: %v", collector.Diagnostics())
}

func TestValidator_MissingPlaceholderMatcher(t *testing.T) {
	model := &models.TypeModel{
		Name: "IAccounts",
		Methods: []models.MethodModel{
			{
				Name:    "ListUsers",
				Request: &models.RequestAttribute{Method: "GET", Path: "/accounts/{accountId}/users"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnVoid},
			},
		},
	}

	collector, _ := generate(t, model)

	found := collector.ByCode(diagnostics.MissingPathPropertyOrParameterForPlaceholder)
	require.Len(t, found, 1)
	assert.Equal(t, "accountId", found[0].Entity)
	assert.Len(t, collector.Diagnostics(), 1, "exactly one diagnostic expected")
}

func TestValidator_DuplicatePathProperties(t *testing.T) {
	model := &models.TypeModel{
		Name: "IDup",
		Properties: []models.PropertyModel{
			pathProperty("first", "key"),
			pathProperty("second", "key"),
		},
	}

	collector, _ := generate(t, model)

	found := collector.ByCode(diagnostics.MultiplePathPropertiesForKey)
	require.Len(t, found, 1)
	assert.Equal(t, "key", found[0].Entity)
}

func TestValidator_BasePathPlaceholderMatching(t *testing.T) {
	model := &models.TypeModel{
		Name:       "IBase",
		BasePath:   &models.BasePathAttribute{Template: "/v{version}/t/{tenant}"},
		Properties: []models.PropertyModel{pathProperty("version", "")},
	}

	collector, _ := generate(t, model)

	found := collector.ByCode(diagnostics.MissingPathPropertyForBasePathPlaceholder)
	require.Len(t, found, 1)
	assert.Equal(t, "tenant", found[0].Entity)
}

func TestValidator_DuplicatePathParameters(t *testing.T) {
	model := &models.TypeModel{
		Name: "IDupParams",
		Methods: []models.MethodModel{
			{
				Name:    "Get",
				Request: &models.RequestAttribute{Method: "GET", Path: "/items/{id}"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnVoid},
				Parameters: []models.ParameterModel{
					{Name: "id", Type: models.TypeRef{Name: "string"}, Path: &models.PathAttribute{}},
					{Name: "other", Type: models.TypeRef{Name: "string"}, Path: &models.PathAttribute{Name: "id"}},
				},
			},
		},
	}

	collector, _ := generate(t, model)

	found := collector.ByCode(diagnostics.MultiplePathParametersForKey)
	require.Len(t, found, 1)
	assert.Equal(t, "id", found[0].Entity)
}

func TestValidator_MissingPlaceholderForPathParameter(t *testing.T) {
	model := &models.TypeModel{
		Name: "IUnused",
		Methods: []models.MethodModel{
			{
				Name:    "Get",
				Request: &models.RequestAttribute{Method: "GET", Path: "/items"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnVoid},
				Parameters: []models.ParameterModel{
					{Name: "id", Type: models.TypeRef{Name: "string"}, Path: &models.PathAttribute{}},
				},
			},
		},
	}

	collector, _ := generate(t, model)
	assert.True(t, collector.HasCode(diagnostics.MissingPlaceholderForPathParameter))
}

func TestValidator_PathPropertiesAreOptionalPerMethod(t *testing.T) {
	// A path property with no placeholder in a method's template is legal
	model := &models.TypeModel{
		Name:       "IOptional",
		Properties: []models.PropertyModel{pathProperty("accountId", "")},
		Methods: []models.MethodModel{
			{
				Name:    "Ping",
				Request: &models.RequestAttribute{Method: "GET", Path: "/ping"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnVoid},
			},
		},
	}

	collector, _ := generate(t, model)
	assert.False(t, collector.HasErrors(), "diagnostics: %v", collector.Diagnostics())
}

func TestValidator_DuplicateRequestPropertyKeys(t *testing.T) {
	model := &models.TypeModel{
		Name: "IProps",
		Methods: []models.MethodModel{
			{
				Name:    "Get",
				Request: &models.RequestAttribute{Method: "GET", Path: "/x"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnVoid},
				Parameters: []models.ParameterModel{
					{Name: "a", Type: models.TypeRef{Name: "string"}, RequestProperty: &models.RequestPropertyAttribute{Key: "k"}},
					{Name: "b", Type: models.TypeRef{Name: "string"}, RequestProperty: &models.RequestPropertyAttribute{Key: "k"}},
					// Case differs: keys are case-sensitive, no diagnostic
					{Name: "c", Type: models.TypeRef{Name: "string"}, RequestProperty: &models.RequestPropertyAttribute{Key: "K"}},
				},
			},
		},
	}

	collector, _ := generate(t, model)

	found := collector.ByCode(diagnostics.DuplicateHttpRequestMessagePropertyKey)
	require.Len(t, found, 1)
	assert.Equal(t, "k", found[0].Entity)
}

func TestValidator_MethodHeaderColon(t *testing.T) {
	model := &models.TypeModel{
		Name: "IHeaders",
		Methods: []models.MethodModel{
			{
				Name:    "Get",
				Request: &models.RequestAttribute{Method: "GET", Path: "/x"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnVoid},
				Headers: []models.HeaderAttribute{{Name: "X-Bad: v", Value: "v", HasValue: true}},
			},
		},
	}

	collector, _ := generate(t, model)
	assert.True(t, collector.HasCode(diagnostics.HeaderOnInterfaceMustNotHaveColonInName))
}
