package sourcegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restbound/restbound/internal/diagnostics"
	"github.com/restbound/restbound/internal/generator"
	"github.com/restbound/restbound/internal/models"
)

func generateSource(t *testing.T, model *models.TypeModel) *SourceFile {
	t.Helper()
	collector := diagnostics.NewCollector()
	artifact, err := generator.NewGenerator(collector).Generate(model, NewEmitter("client"))
	require.NoError(t, err)
	require.False(t, collector.HasErrors(), "diagnostics: %v", collector.Diagnostics())
	file, ok := artifact.(*SourceFile)
	require.True(t, ok, "expected *SourceFile, got %T", artifact)
	return file
}

func sampleModel() *models.TypeModel {
	return &models.TypeModel{
		Name:     "UsersApi",
		BasePath: &models.BasePathAttribute{Template: "/api"},
		Headers:  []models.HeaderAttribute{{Name: "User-Agent", Value: "restbound", HasValue: true, DeclaredOn: "UsersApi"}},
		Properties: []models.PropertyModel{
			{Name: "requesterProp", Type: models.TypeRef{Name: "restbound.Requester"}, IsRequester: true, HasGetter: true},
			{Name: "auth", Type: models.TypeRef{Name: "*string", Nullable: true},
				HasGetter: true, HasSetter: true,
				Header: &models.HeaderAttribute{Name: "Authorization: anonymous"}},
		},
		Methods: []models.MethodModel{
			{
				Name:    "GetUser",
				Request: &models.RequestAttribute{Method: "GET", Path: "/users/{id}"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnJson, DataType: "User"},
				Parameters: []models.ParameterModel{
					{Name: "ctx", Type: models.TypeRef{Name: "context.Context"}, IsCancellationToken: true},
					{Name: "id", Type: models.TypeRef{Name: "string"}, Path: &models.PathAttribute{}},
					{Name: "expand", Type: models.TypeRef{Name: "string"}},
				},
			},
			{
				Name:    "DeleteUser",
				Request: &models.RequestAttribute{Method: "DELETE", Path: "/users/{id}"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnVoid},
				Parameters: []models.ParameterModel{
					{Name: "id", Type: models.TypeRef{Name: "string"}, Path: &models.PathAttribute{}},
				},
			},
			{Name: "Close", IsDisposeMethod: true},
		},
	}
}

func TestSourceEmitter_GeneratesClient(t *testing.T) {
	file := generateSource(t, sampleModel())

	assert.Equal(t, "client", file.PackageName)
	assert.Equal(t, "usersapi_client.go", file.FileName)

	content := file.Content
	assert.Contains(t, content, "package client")
	assert.Contains(t, content, "type UsersApiClient struct {")
	assert.Contains(t, content, "func NewUsersApiClient(requester restbound.Requester) *UsersApiClient {")

	// Requester property getter
	assert.Contains(t, content, "func (c *UsersApiClient) RequesterProp() restbound.Requester {")

	// Header property accessors
	assert.Contains(t, content, "func (c *UsersApiClient) Auth() *string {")
	assert.Contains(t, content, "func (c *UsersApiClient) SetAuth(value *string) {")

	// Method signatures
	assert.Contains(t, content, "func (c *UsersApiClient) GetUser(ctx context.Context, id string, expand string) (User, error) {")
	assert.Contains(t, content, "func (c *UsersApiClient) DeleteUser(id string) error {")
	assert.Contains(t, content, "func (c *UsersApiClient) Close() error {")
	assert.Contains(t, content, "return c.requester.Close()")

	// Request assembly fragments
	assert.Contains(t, content, `restbound.NewRequestInfo("GET", "/users/{id}")`)
	assert.Contains(t, content, `info.BasePath = restbound.TemplatePath("/api")`)
	assert.Contains(t, content, `info.AddHeader("User-Agent", "restbound")`)
	assert.Contains(t, content, `info.AddPathParam("id", id, restbound.PathSerializationToString)`)
	assert.Contains(t, content, `info.AddQuery("expand", expand, restbound.QuerySerializationToString)`)
	assert.Contains(t, content, "c.requester.RequestJSON(ctx, info, &result)")
	assert.Contains(t, content, "return result, err")
}

func TestSourceEmitter_HeaderOrderInBody(t *testing.T) {
	content := generateSource(t, sampleModel()).Content

	typeHeader := strings.Index(content, `info.AddHeader("User-Agent", "restbound")`)
	propertyHeader := strings.Index(content, `info.AddHeader("Authorization", restbound.Stringify(*c.auth))`)
	require.GreaterOrEqual(t, typeHeader, 0)
	require.GreaterOrEqual(t, propertyHeader, 0)
	assert.Less(t, typeHeader, propertyHeader, "type-level header must precede the property header")
}

func TestSourceEmitter_Deterministic(t *testing.T) {
	first := generateSource(t, sampleModel()).Content
	second := generateSource(t, sampleModel()).Content
	assert.Equal(t, first, second)
}

func TestSourceEmitter_ReturnShapes(t *testing.T) {
	model := &models.TypeModel{
		Name: "Shapes",
		Methods: []models.MethodModel{
			{Name: "Message", Request: &models.RequestAttribute{Method: "GET", Path: "/m"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnResponseMessage}},
			{Name: "Wrapped", Request: &models.RequestAttribute{Method: "GET", Path: "/w"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnResponse, DataType: "User"}},
			{Name: "Raw", Request: &models.RequestAttribute{Method: "GET", Path: "/b"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnBytes}},
			{Name: "Text", Request: &models.RequestAttribute{Method: "GET", Path: "/t"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnString}},
			{Name: "Stream", Request: &models.RequestAttribute{Method: "GET", Path: "/s"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnStream}},
		},
	}

	content := generateSource(t, model).Content

	assert.Contains(t, content, "func (c *ShapesClient) Message() (*http.Response, error) {")
	assert.Contains(t, content, "func (c *ShapesClient) Wrapped() (*restbound.Response[User], error) {")
	assert.Contains(t, content, "return restbound.NewResponse(value, resp), nil")
	assert.Contains(t, content, "func (c *ShapesClient) Raw() ([]byte, error) {")
	assert.Contains(t, content, "func (c *ShapesClient) Text() (string, error) {")
	assert.Contains(t, content, "func (c *ShapesClient) Stream() (io.ReadCloser, error) {")
}

func TestSourceEmitter_BodyAndQueryMap(t *testing.T) {
	model := &models.TypeModel{
		Name: "Writer",
		Methods: []models.MethodModel{
			{
				Name:    "Create",
				Request: &models.RequestAttribute{Method: "POST", Path: "/items"},
				Returns: models.ReturnTypeInfo{Shape: models.ReturnVoid},
				Parameters: []models.ParameterModel{
					{Name: "item", Type: models.TypeRef{Name: "Item"}, Body: &models.BodyAttribute{}},
					{Name: "extras", Type: models.TypeRef{Name: "map[string]string", IsMap: true}, QueryMap: &models.QueryMapAttribute{}},
				},
			},
		},
	}

	content := generateSource(t, model).Content

	assert.Contains(t, content, "func (c *WriterClient) Create(item Item, extras map[string]string) error {")
	assert.Contains(t, content, "info.SetBody(item, restbound.BodySerializationSerialized)")
	assert.Contains(t, content, "info.AddQueryMap(extras, restbound.QuerySerializationToString)")
}
