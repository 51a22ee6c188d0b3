package restbound

import (
	"context"
	"io"
	"net/http"
)

// Requester is the injected capability that executes a RequestInfo. Generated
// clients hold exactly one Requester and delegate every call to it; the
// variant invoked is selected by the method's declared return shape.
//
// Implementations must honor ctx cancellation and the AllowAnyStatusCode flag
// of the request.
type Requester interface {
	// RequestVoid executes the request and discards the response body
	RequestVoid(ctx context.Context, info *RequestInfo) error

	// RequestJSON executes the request and deserializes the response body
	// into target, which must be a non-nil pointer
	RequestJSON(ctx context.Context, info *RequestInfo, target any) error

	// RequestResponseMessage executes the request and returns the raw
	// response. The caller owns the response body.
	RequestResponseMessage(ctx context.Context, info *RequestInfo) (*http.Response, error)

	// RequestBytes executes the request and returns the response body bytes
	RequestBytes(ctx context.Context, info *RequestInfo) ([]byte, error)

	// RequestString executes the request and returns the response body text
	RequestString(ctx context.Context, info *RequestInfo) (string, error)

	// RequestStream executes the request and returns the response body
	// stream. The caller owns the stream.
	RequestStream(ctx context.Context, info *RequestInfo) (io.ReadCloser, error)

	// Close releases resources held by the Requester
	Close() error
}

// Response pairs a deserialized value with the response message it was read
// from, for methods that want both.
type Response[T any] struct {
	// Value is the deserialized response body
	Value T

	// Message is the underlying HTTP response. Its body has already been
	// consumed.
	Message *http.Response
}

// NewResponse creates a Response wrapping the given value and message
func NewResponse[T any](value T, message *http.Response) *Response[T] {
	return &Response[T]{Value: value, Message: message}
}

// StatusCode returns the status code of the underlying response message, or 0
// if no message was captured
func (r *Response[T]) StatusCode() int {
	if r.Message == nil {
		return 0
	}
	return r.Message.StatusCode
}
