package restbound

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// RequestIDHeader is the correlation header stamped on every outgoing request
const RequestIDHeader = "X-Request-ID"

// HttpRequester is the default Requester implementation backed by net/http
type HttpRequester struct {
	baseURL         string
	client          *http.Client
	bodySerializer  BodySerializer
	querySerializer QueryParamSerializer
	pathSerializer  PathParamSerializer
	requestIDs      bool
}

// HttpRequesterOption configures an HttpRequester
type HttpRequesterOption func(*HttpRequester)

// WithClient sets the underlying http.Client
func WithClient(client *http.Client) HttpRequesterOption {
	return func(r *HttpRequester) {
		r.client = client
	}
}

// WithBodySerializer sets the serializer used for Serialized bodies
func WithBodySerializer(s BodySerializer) HttpRequesterOption {
	return func(r *HttpRequester) {
		r.bodySerializer = s
	}
}

// WithQueryParamSerializer sets the serializer used for Serialized query values
func WithQueryParamSerializer(s QueryParamSerializer) HttpRequesterOption {
	return func(r *HttpRequester) {
		r.querySerializer = s
	}
}

// WithPathParamSerializer sets the serializer used for Serialized path values
func WithPathParamSerializer(s PathParamSerializer) HttpRequesterOption {
	return func(r *HttpRequester) {
		r.pathSerializer = s
	}
}

// WithoutRequestIDs disables X-Request-ID stamping
func WithoutRequestIDs() HttpRequesterOption {
	return func(r *HttpRequester) {
		r.requestIDs = false
	}
}

// NewHttpRequester creates an HttpRequester rooted at the given base URL
func NewHttpRequester(baseURL string, opts ...HttpRequesterOption) *HttpRequester {
	r := &HttpRequester{
		baseURL:         strings.TrimRight(baseURL, "/"),
		client:          &http.Client{},
		bodySerializer:  JsonBodySerializer{},
		querySerializer: JsonQueryParamSerializer{},
		pathSerializer:  StringPathParamSerializer{},
		requestIDs:      true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BuildRequest assembles an http.Request from a RequestInfo. Exposed so wire
// assembly can be tested without a live server.
func (r *HttpRequester) BuildRequest(ctx context.Context, info *RequestInfo) (*http.Request, error) {
	path, err := info.ResolvePath(r.pathSerializer)
	if err != nil {
		return nil, err
	}

	query, err := r.buildQuery(info)
	if err != nil {
		return nil, err
	}

	target := r.baseURL + path
	if query != "" {
		target += "?" + query
	}

	body, contentType, err := r.buildBody(info)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, info.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", info.MethodName, err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, h := range info.Headers {
		req.Header.Add(h.Name, h.Value)
	}
	if r.requestIDs && req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}

	return req, nil
}

// buildQuery renders the recorded query entries in order
func (r *HttpRequester) buildQuery(info *RequestInfo) (string, error) {
	var parts []string
	for _, q := range info.Queries {
		if q.Raw != "" {
			parts = append(parts, strings.TrimPrefix(q.Raw, "?"))
			continue
		}
		if q.Method == QuerySerializationSerialized {
			pairs, err := r.querySerializer.SerializeQueryParam(q.Name, q.Value)
			if err != nil {
				return "", err
			}
			for _, p := range pairs {
				parts = append(parts, url.QueryEscape(p.Name)+"="+url.QueryEscape(p.Value))
			}
			continue
		}
		parts = append(parts, url.QueryEscape(q.Name)+"="+url.QueryEscape(Stringify(q.Value)))
	}
	return strings.Join(parts, "&"), nil
}

// buildBody renders the body per its serialization method
func (r *HttpRequester) buildBody(info *RequestInfo) ([]byte, string, error) {
	if info.Body == nil {
		return nil, "", nil
	}
	switch info.Body.Method {
	case BodySerializationUrlEncoded:
		return UrlEncodeBody(info.Body.Value)
	default:
		return r.bodySerializer.SerializeBody(info.Body.Value)
	}
}

// execute runs the request and enforces status-code checking
func (r *HttpRequester) execute(ctx context.Context, info *RequestInfo) (*http.Response, error) {
	req, err := r.BuildRequest(ctx, info)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", info.MethodName, err)
	}

	if !info.AllowAnyStatusCode && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, NewApiError(resp, body)
	}

	return resp, nil
}

// RequestVoid implements Requester
func (r *HttpRequester) RequestVoid(ctx context.Context, info *RequestInfo) error {
	resp, err := r.execute(ctx, info)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, err = io.Copy(io.Discard, resp.Body)
	return err
}

// RequestJSON implements Requester
func (r *HttpRequester) RequestJSON(ctx context.Context, info *RequestInfo, target any) error {
	resp, err := r.execute(ctx, info)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to deserialize response for %s: %w", info.MethodName, err)
	}
	return nil
}

// RequestResponseMessage implements Requester
func (r *HttpRequester) RequestResponseMessage(ctx context.Context, info *RequestInfo) (*http.Response, error) {
	return r.execute(ctx, info)
}

// RequestBytes implements Requester
func (r *HttpRequester) RequestBytes(ctx context.Context, info *RequestInfo) ([]byte, error) {
	resp, err := r.execute(ctx, info)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// RequestString implements Requester
func (r *HttpRequester) RequestString(ctx context.Context, info *RequestInfo) (string, error) {
	body, err := r.RequestBytes(ctx, info)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// RequestStream implements Requester
func (r *HttpRequester) RequestStream(ctx context.Context, info *RequestInfo) (io.ReadCloser, error) {
	resp, err := r.execute(ctx, info)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Close implements Requester
func (r *HttpRequester) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
