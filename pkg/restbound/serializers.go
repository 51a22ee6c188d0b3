package restbound

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// BodySerializer renders a request body when its serialization method is
// Serialized
type BodySerializer interface {
	// SerializeBody renders the body value and reports the content type to
	// send with it
	SerializeBody(body any) (payload []byte, contentType string, err error)
}

// QueryPair is a rendered query parameter produced by a QueryParamSerializer
type QueryPair struct {
	Name  string
	Value string
}

// QueryParamSerializer renders a query value when its serialization method is
// Serialized
type QueryParamSerializer interface {
	// SerializeQueryParam renders a single query parameter into zero or more
	// key=value pairs
	SerializeQueryParam(name string, value any) ([]QueryPair, error)
}

// PathParamSerializer renders a path value when its serialization method is
// Serialized
type PathParamSerializer interface {
	SerializePathParam(name string, value any) (string, error)
}

// JsonBodySerializer is the default BodySerializer; it renders the body as JSON
type JsonBodySerializer struct{}

// SerializeBody implements BodySerializer
func (JsonBodySerializer) SerializeBody(body any) ([]byte, string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize request body: %w", err)
	}
	return payload, "application/json", nil
}

// JsonQueryParamSerializer is the default QueryParamSerializer; it renders
// each value as its JSON form
type JsonQueryParamSerializer struct{}

// SerializeQueryParam implements QueryParamSerializer
func (JsonQueryParamSerializer) SerializeQueryParam(name string, value any) ([]QueryPair, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize query parameter %q: %w", name, err)
	}
	return []QueryPair{{Name: name, Value: string(encoded)}}, nil
}

// StringPathParamSerializer is the default PathParamSerializer; it renders the
// value via its canonical textual form
type StringPathParamSerializer struct{}

// SerializePathParam implements PathParamSerializer
func (StringPathParamSerializer) SerializePathParam(name string, value any) (string, error) {
	return Stringify(value), nil
}

// Stringify returns the canonical textual form of a value, used by the
// ToString serialization methods. A nil value renders as the empty string.
func Stringify(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", value)
}

// UrlEncodeBody renders a body value as application/x-www-form-urlencoded.
// Maps of string to string or to string slices are supported.
func UrlEncodeBody(body any) ([]byte, string, error) {
	values := url.Values{}
	switch m := body.(type) {
	case map[string]string:
		for k, v := range m {
			values.Set(k, v)
		}
	case map[string][]string:
		for k, vs := range m {
			for _, v := range vs {
				values.Add(k, v)
			}
		}
	case url.Values:
		values = m
	default:
		return nil, "", fmt.Errorf("cannot url-encode body of type %T", body)
	}
	return []byte(values.Encode()), "application/x-www-form-urlencoded", nil
}
