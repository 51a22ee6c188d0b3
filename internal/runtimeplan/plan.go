package runtimeplan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/restbound/restbound/internal/models"
	"github.com/restbound/restbound/pkg/restbound"
)

// PlanProperty is a state slot of the plan, one per emitted property
type PlanProperty struct {
	Name        string
	IsRequester bool
	Role        models.ParameterRole
}

// PlanMethod is the ordered op list for one method
type PlanMethod struct {
	Name      string
	Shape     models.ReturnShape
	IsDispose bool
	Ops       []Op
}

// Plan is the runtime-executable artifact: an immutable op list per method.
// A Plan may be shared freely across goroutines; each invocation assembles
// its own RequestInfo.
type Plan struct {
	TypeName   string
	Properties []PlanProperty
	Methods    []*PlanMethod
}

// Kind implements generator.Artifact
func (p *Plan) Kind() string {
	return "plan"
}

// Method returns the planned method with the given name
func (p *Plan) Method(name string) (*PlanMethod, bool) {
	for _, m := range p.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Invoke executes one method of the plan: it walks the op list, assembles a
// RequestInfo from the property values and arguments, and dispatches the
// method's return shape against the Requester.
//
// Arguments are passed in parameter declaration order; a cancellation-token
// parameter is a context.Context. For the json and response shapes, out must
// be a pointer the response body is deserialized into; the response shape
// additionally returns a *restbound.Response wrapping it.
func (p *Plan) Invoke(requester restbound.Requester, properties map[string]any, methodName string, args []any, out any) (any, error) {
	method, ok := p.Method(methodName)
	if !ok {
		return nil, models.NewGeneratorError(models.ErrorTypeGeneration, "plan for %q has no method %q", p.TypeName, methodName)
	}

	if method.IsDispose {
		return nil, requester.Close()
	}

	info, ctx, err := method.BuildRequest(properties, args)
	if err != nil {
		return nil, err
	}

	return dispatch(ctx, requester, info, method.Shape, out)
}

// BuildRequest walks the op list and assembles the RequestInfo for one
// invocation, returning the context a cancellation-token argument supplied
func (m *PlanMethod) BuildRequest(properties map[string]any, args []any) (*restbound.RequestInfo, context.Context, error) {
	ctx := context.Background()
	var info *restbound.RequestInfo

	arg := func(op Op) (any, error) {
		if op.ParamIndex < 0 || op.ParamIndex >= len(args) {
			return nil, models.NewGeneratorError(models.ErrorTypeGeneration,
				"method %q: op %s references argument %d, got %d arguments", m.Name, op.Kind, op.ParamIndex, len(args))
		}
		return args[op.ParamIndex], nil
	}

	for _, op := range m.Ops {
		if info == nil && op.Kind != OpRequestInfoCreation {
			return nil, nil, models.NewGeneratorError(models.ErrorTypeGeneration,
				"method %q: op %s before request info creation", m.Name, op.Kind)
		}

		switch op.Kind {
		case OpRequestInfoCreation:
			info = restbound.NewRequestInfo(op.Verb, op.PathTemplate)
			info.MethodName = m.Name

		case OpSetAllowAnyStatusCode:
			info.AllowAnyStatusCode = true

		case OpSetBasePath:
			info.BasePath = restbound.TemplatePath(op.PathTemplate)

		case OpAddTypeHeader:
			info.AddHeader(op.Key, op.Default)

		case OpAddHeaderProperty:
			value := properties[op.PropertyName]
			if value == nil {
				if op.Default != "" {
					info.AddHeader(op.Key, op.Default)
				}
				continue
			}
			info.AddHeader(op.Key, restbound.Stringify(value))

		case OpAddPathProperty:
			info.AddPathParam(op.Key, properties[op.PropertyName], op.PathMethod)

		case OpAddQueryProperty:
			info.AddQuery(op.Key, properties[op.PropertyName], op.QueryMethod)

		case OpAddRequestPropertyProperty:
			info.SetProperty(op.Key, properties[op.PropertyName])

		case OpAddMethodHeader:
			info.AddHeader(op.Key, op.Default)

		case OpSetCancellationToken:
			value, err := arg(op)
			if err != nil {
				return nil, nil, err
			}
			if tokenCtx, ok := value.(context.Context); ok && tokenCtx != nil {
				ctx = tokenCtx
			}

		case OpAddHeaderParameter:
			value, err := arg(op)
			if err != nil {
				return nil, nil, err
			}
			if value != nil {
				info.AddHeader(op.Key, restbound.Stringify(value))
			}

		case OpAddPathParameter:
			value, err := arg(op)
			if err != nil {
				return nil, nil, err
			}
			info.AddPathParam(op.Key, value, op.PathMethod)

		case OpAddQueryParameter:
			value, err := arg(op)
			if err != nil {
				return nil, nil, err
			}
			info.AddQuery(op.Key, value, op.QueryMethod)

		case OpAddRequestPropertyParameter:
			value, err := arg(op)
			if err != nil {
				return nil, nil, err
			}
			info.SetProperty(op.Key, value)

		case OpAddRawQueryStringParameter:
			value, err := arg(op)
			if err != nil {
				return nil, nil, err
			}
			if value != nil {
				info.AddRawQuery(restbound.Stringify(value))
			}

		case OpAddQueryMapParameter:
			value, err := arg(op)
			if err != nil {
				return nil, nil, err
			}
			info.AddQueryMap(value, op.QueryMethod)

		case OpSetBodyParameter:
			value, err := arg(op)
			if err != nil {
				return nil, nil, err
			}
			info.SetBody(value, op.BodyMethod)

		case OpDispatch:
			// Dispatch is handled by the invoker after assembly
		}
	}

	if info == nil {
		return nil, nil, models.NewGeneratorError(models.ErrorTypeGeneration, "method %q has an empty op list", m.Name)
	}

	return info, ctx, nil
}

// dispatch invokes the Requester variant selected by the return shape
func dispatch(ctx context.Context, requester restbound.Requester, info *restbound.RequestInfo, shape models.ReturnShape, out any) (any, error) {
	switch shape {
	case models.ReturnVoid:
		return nil, requester.RequestVoid(ctx, info)

	case models.ReturnJson:
		if out == nil {
			out = &map[string]any{}
		}
		if err := requester.RequestJSON(ctx, info, out); err != nil {
			return nil, err
		}
		return out, nil

	case models.ReturnResponseMessage:
		return requester.RequestResponseMessage(ctx, info)

	case models.ReturnResponse:
		resp, err := requester.RequestResponseMessage(ctx, info)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if out == nil {
			out = &map[string]any{}
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to deserialize response for %s: %w", info.MethodName, err)
		}
		return restbound.NewResponse(out, resp), nil

	case models.ReturnBytes:
		return requester.RequestBytes(ctx, info)

	case models.ReturnString:
		return requester.RequestString(ctx, info)

	case models.ReturnStream:
		return requester.RequestStream(ctx, info)

	default:
		return nil, models.NewGeneratorError(models.ErrorTypeGeneration,
			"method %q has unrecognized return shape", info.MethodName)
	}
}
