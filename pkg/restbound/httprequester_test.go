package restbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestServer runs an echo server capturing the last request seen
func startTestServer(t *testing.T) (*httptest.Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	e := echo.New()
	e.Any("/*", func(c echo.Context) error {
		captured.Method = c.Request().Method
		captured.Path = c.Request().URL.Path
		captured.RawQuery = c.Request().URL.RawQuery
		captured.Header = c.Request().Header.Clone()
		captured.ContentType = c.Request().Header.Get("Content-Type")
		body := make(map[string]any)
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err == nil {
			captured.Body = body
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/fail", func(c echo.Context) error {
		return c.String(http.StatusTeapot, "short and stout")
	})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server, captured
}

type capturedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	Header      http.Header
	ContentType string
	Body        map[string]any
}

func TestHttpRequester_BuildRequest(t *testing.T) {
	requester := NewHttpRequester("http://api.example.com")

	info := NewRequestInfo("GET", "/accounts/{accountId}/users")
	info.AddPathParam("accountId", "A1", PathSerializationToString)
	info.AddQuery("q", "rust", QuerySerializationToString)
	info.AddQuery("limit", 10, QuerySerializationToString)
	info.AddHeader("X-Api-Key", "secret")

	req, err := requester.BuildRequest(context.Background(), info)
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/accounts/A1/users", req.URL.Path)
	assert.Equal(t, "q=rust&limit=10", req.URL.RawQuery)
	assert.Equal(t, "secret", req.Header.Get("X-Api-Key"))
	assert.NotEmpty(t, req.Header.Get(RequestIDHeader))
}

func TestHttpRequester_BuildRequestRawQuery(t *testing.T) {
	requester := NewHttpRequester("http://api.example.com", WithoutRequestIDs())

	info := NewRequestInfo("GET", "/search")
	info.AddQuery("a", "1", QuerySerializationToString)
	info.AddRawQuery("b=2&c=3")

	req, err := requester.BuildRequest(context.Background(), info)
	require.NoError(t, err)

	assert.Equal(t, "a=1&b=2&c=3", req.URL.RawQuery)
	assert.Empty(t, req.Header.Get(RequestIDHeader))
}

func TestHttpRequester_BuildRequestSerializedQuery(t *testing.T) {
	requester := NewHttpRequester("http://api.example.com")

	info := NewRequestInfo("GET", "/search")
	info.AddQuery("filter", map[string]string{"tag": "go"}, QuerySerializationSerialized)

	req, err := requester.BuildRequest(context.Background(), info)
	require.NoError(t, err)

	assert.Equal(t, "filter="+`%7B%22tag%22%3A%22go%22%7D`, req.URL.RawQuery)
}

func TestHttpRequester_RequestJSON(t *testing.T) {
	server, captured := startTestServer(t)
	requester := NewHttpRequester(server.URL)
	defer requester.Close()

	info := NewRequestInfo("POST", "/users")
	info.AddHeader("X-Tenant", "t1")
	info.SetBody(map[string]string{"name": "ada"}, BodySerializationSerialized)

	var result map[string]string
	err := requester.RequestJSON(context.Background(), info, &result)
	require.NoError(t, err)

	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, "POST", captured.Method)
	assert.Equal(t, "/users", captured.Path)
	assert.Equal(t, "t1", captured.Header.Get("X-Tenant"))
	assert.Equal(t, "application/json", captured.ContentType)
	assert.Equal(t, "ada", captured.Body["name"])
}

func TestHttpRequester_RequestVoidQueryOrder(t *testing.T) {
	server, captured := startTestServer(t)
	requester := NewHttpRequester(server.URL)
	defer requester.Close()

	info := NewRequestInfo("GET", "/search")
	info.AddQuery("q", "rust", QuerySerializationToString)
	info.AddQuery("page", 2, QuerySerializationToString)

	require.NoError(t, requester.RequestVoid(context.Background(), info))
	assert.Equal(t, "q=rust&page=2", captured.RawQuery)
}

func TestHttpRequester_UrlEncodedBody(t *testing.T) {
	server, captured := startTestServer(t)
	requester := NewHttpRequester(server.URL)
	defer requester.Close()

	info := NewRequestInfo("POST", "/form")
	info.SetBody(map[string]string{"a": "1"}, BodySerializationUrlEncoded)

	require.NoError(t, requester.RequestVoid(context.Background(), info))
	assert.Equal(t, "application/x-www-form-urlencoded", captured.ContentType)
}

func TestHttpRequester_StatusCodeError(t *testing.T) {
	server, _ := startTestServer(t)
	requester := NewHttpRequester(server.URL)
	defer requester.Close()

	info := NewRequestInfo("GET", "/fail")
	err := requester.RequestVoid(context.Background(), info)
	require.Error(t, err)

	apiErr, ok := err.(*ApiError)
	require.True(t, ok, "expected *ApiError, got %T", err)
	assert.Equal(t, http.StatusTeapot, apiErr.StatusCode)
	assert.Equal(t, "short and stout", apiErr.BodyString())
}

func TestHttpRequester_AllowAnyStatusCode(t *testing.T) {
	server, _ := startTestServer(t)
	requester := NewHttpRequester(server.URL)
	defer requester.Close()

	info := NewRequestInfo("GET", "/fail")
	info.AllowAnyStatusCode = true

	resp, err := requester.RequestResponseMessage(context.Background(), info)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}

func TestHttpRequester_CancelledContext(t *testing.T) {
	server, _ := startTestServer(t)
	requester := NewHttpRequester(server.URL)
	defer requester.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	info := NewRequestInfo("GET", "/users")
	err := requester.RequestVoid(ctx, info)
	assert.Error(t, err)
}

func TestHttpRequester_RequestString(t *testing.T) {
	server, _ := startTestServer(t)
	requester := NewHttpRequester(server.URL)
	defer requester.Close()

	info := NewRequestInfo("GET", "/fail")
	info.AllowAnyStatusCode = true

	body, err := requester.RequestString(context.Background(), info)
	require.NoError(t, err)
	assert.Equal(t, "short and stout", body)
}
