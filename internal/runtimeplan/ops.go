// Package runtimeplan is the reference emission backend: every emission
// operation appends a tagged record to an ordered list, and Generate wraps
// the list in an immutable Plan that assembles a RequestInfo and dispatches
// it against a Requester when invoked.
package runtimeplan

import (
	"github.com/restbound/restbound/internal/models"
	"github.com/restbound/restbound/pkg/restbound"
)

// OpKind tags an emission operation record
type OpKind int

const (
	OpRequestInfoCreation OpKind = iota
	OpSetAllowAnyStatusCode
	OpSetBasePath
	OpAddTypeHeader
	OpAddHeaderProperty
	OpAddPathProperty
	OpAddQueryProperty
	OpAddRequestPropertyProperty
	OpAddMethodHeader
	OpSetCancellationToken
	OpAddHeaderParameter
	OpAddPathParameter
	OpAddQueryParameter
	OpAddRequestPropertyParameter
	OpAddRawQueryStringParameter
	OpAddQueryMapParameter
	OpSetBodyParameter
	OpDispatch
)

// String returns the op kind name
func (k OpKind) String() string {
	switch k {
	case OpRequestInfoCreation:
		return "request_info_creation"
	case OpSetAllowAnyStatusCode:
		return "set_allow_any_status_code"
	case OpSetBasePath:
		return "set_base_path"
	case OpAddTypeHeader:
		return "add_type_header"
	case OpAddHeaderProperty:
		return "add_header_property"
	case OpAddPathProperty:
		return "add_path_property"
	case OpAddQueryProperty:
		return "add_query_property"
	case OpAddRequestPropertyProperty:
		return "add_request_property_property"
	case OpAddMethodHeader:
		return "add_method_header"
	case OpSetCancellationToken:
		return "set_cancellation_token"
	case OpAddHeaderParameter:
		return "add_header_parameter"
	case OpAddPathParameter:
		return "add_path_parameter"
	case OpAddQueryParameter:
		return "add_query_parameter"
	case OpAddRequestPropertyParameter:
		return "add_request_property_parameter"
	case OpAddRawQueryStringParameter:
		return "add_raw_query_string_parameter"
	case OpAddQueryMapParameter:
		return "add_query_map_parameter"
	case OpSetBodyParameter:
		return "set_body_parameter"
	case OpDispatch:
		return "dispatch"
	default:
		return "unknown"
	}
}

// Op is one tagged emission record. Only the fields relevant to its kind are
// populated.
type Op struct {
	Kind OpKind

	Verb         string // request verb for request_info_creation
	PathTemplate string // path template for request_info_creation / set_base_path

	Key     string // header/query/path/property key
	Default string // header value for type/method headers; default value for header properties

	PropertyName string // source property for property-sourced ops
	ParamIndex   int    // source argument for parameter-sourced ops

	PathMethod  restbound.PathSerializationMethod
	QueryMethod restbound.QuerySerializationMethod
	BodyMethod  restbound.BodySerializationMethod

	ReturnShape models.ReturnShape // dispatch variant for dispatch ops
}
