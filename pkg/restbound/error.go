package restbound

import (
	"fmt"
	"net/http"
)

// ApiError represents a response with a status code outside the 2xx range,
// returned by Requesters when the request did not allow any status code
type ApiError struct {
	StatusCode int    `json:"status_code"`
	Method     string `json:"method"`
	URL        string `json:"url"`

	// Body is a snapshot of the response body, captured so callers can
	// inspect error payloads after the response is closed
	Body []byte `json:"-"`

	// Response is the underlying response message. Its body has been
	// consumed into Body.
	Response *http.Response `json:"-"`
}

// Error implements the error interface
func (e *ApiError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// BodyString returns the captured response body as text
func (e *ApiError) BodyString() string {
	return string(e.Body)
}

// NewApiError creates an ApiError from a consumed response
func NewApiError(resp *http.Response, body []byte) *ApiError {
	e := &ApiError{
		StatusCode: resp.StatusCode,
		Body:       body,
		Response:   resp,
	}
	if resp.Request != nil {
		e.Method = resp.Request.Method
		if resp.Request.URL != nil {
			e.URL = resp.Request.URL.String()
		}
	}
	return e
}
