package restbound

import (
	"reflect"
	"sort"
)

// HeaderEntry is a single header contribution, recorded in the order it was
// added
type HeaderEntry struct {
	Name  string
	Value string
}

// QueryEntry is a single query-string contribution, recorded in the order it
// was added. Raw entries carry a pre-encoded fragment and no name or value.
type QueryEntry struct {
	Name   string
	Value  any
	Method QuerySerializationMethod
	Raw    string
}

// PathSubstitution is a value for a single path placeholder together with the
// serialization method resolved for it
type PathSubstitution struct {
	Name   string
	Value  any
	Method PathSerializationMethod
}

// BodyContent carries the body value of a request together with the
// serialization method resolved for it
type BodyContent struct {
	Value  any
	Method BodySerializationMethod
}

// RequestInfo describes a single HTTP request to be executed by a Requester.
// It is assembled by a generated client (or an executed plan) and is mutable
// only during assembly. Values are carried raw; serializers held by the
// Requester render them at execution time.
type RequestInfo struct {
	Method             string       // HTTP verb (GET, POST, etc.)
	Path               TemplatePath // relative path template
	BasePath           TemplatePath // base path template, empty if none
	Headers            []HeaderEntry
	Queries            []QueryEntry
	PathParams         []PathSubstitution
	Properties         map[string]any // HTTP-request-message properties, case-sensitive keys
	Body               *BodyContent   // nil when the method has no body parameter
	AllowAnyStatusCode bool
	MethodName         string // name of the interface method being invoked
}

// NewRequestInfo creates a RequestInfo for the given verb and path template
func NewRequestInfo(method string, path string) *RequestInfo {
	return &RequestInfo{
		Method:     method,
		Path:       TemplatePath(path),
		Properties: make(map[string]any),
	}
}

// AddHeader appends a header entry
func (r *RequestInfo) AddHeader(name, value string) {
	r.Headers = append(r.Headers, HeaderEntry{Name: name, Value: value})
}

// AddQuery appends a name/value query entry
func (r *RequestInfo) AddQuery(name string, value any, method QuerySerializationMethod) {
	r.Queries = append(r.Queries, QueryEntry{Name: name, Value: value, Method: method})
}

// AddRawQuery appends a raw query-string fragment
func (r *RequestInfo) AddRawQuery(raw string) {
	r.Queries = append(r.Queries, QueryEntry{Raw: raw})
}

// AddPathParam records a substitution for a path placeholder
func (r *RequestInfo) AddPathParam(name string, value any, method PathSerializationMethod) {
	r.PathParams = append(r.PathParams, PathSubstitution{Name: name, Value: value, Method: method})
}

// AddQueryMap appends one query entry per key of a map value, in sorted key
// order so assembly is deterministic. Non-map values are ignored; the
// generator only plans query maps for key-value mapping types.
func (r *RequestInfo) AddQueryMap(value any, method QuerySerializationMethod) {
	if value == nil {
		return
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return
	}
	keys := make([]string, 0, rv.Len())
	byKey := make(map[string]any, rv.Len())
	for _, k := range rv.MapKeys() {
		key := Stringify(k.Interface())
		keys = append(keys, key)
		byKey[key] = rv.MapIndex(k).Interface()
	}
	sort.Strings(keys)
	for _, key := range keys {
		r.AddQuery(key, byKey[key], method)
	}
}

// SetProperty records an HTTP-request-message property. Keys are
// case-sensitive and later writes win.
func (r *RequestInfo) SetProperty(key string, value any) {
	if r.Properties == nil {
		r.Properties = make(map[string]any)
	}
	r.Properties[key] = value
}

// SetBody records the body value and its serialization method
func (r *RequestInfo) SetBody(value any, method BodySerializationMethod) {
	r.Body = &BodyContent{Value: value, Method: method}
}

// Substitutions renders the recorded path substitutions into a lookup map,
// delegating Serialized values to the given serializer
func (r *RequestInfo) Substitutions(serializer PathParamSerializer) (map[string]string, error) {
	subs := make(map[string]string, len(r.PathParams))
	for _, p := range r.PathParams {
		if p.Method == PathSerializationSerialized {
			rendered, err := serializer.SerializePathParam(p.Name, p.Value)
			if err != nil {
				return nil, err
			}
			subs[p.Name] = rendered
			continue
		}
		subs[p.Name] = Stringify(p.Value)
	}
	return subs, nil
}

// ResolvePath expands the base path and relative path templates with the
// recorded substitutions and joins them
func (r *RequestInfo) ResolvePath(serializer PathParamSerializer) (string, error) {
	subs, err := r.Substitutions(serializer)
	if err != nil {
		return "", err
	}
	path := r.Path.Expand(subs)
	if r.BasePath == "" {
		return path, nil
	}
	base := r.BasePath.Expand(subs)
	switch {
	case base == "":
		return path, nil
	case path == "":
		return base, nil
	}
	if base[len(base)-1] == '/' && path[0] == '/' {
		return base + path[1:], nil
	}
	if base[len(base)-1] != '/' && path[0] != '/' {
		return base + "/" + path, nil
	}
	return base + path, nil
}
