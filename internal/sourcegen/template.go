package sourcegen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/tools/imports"

	"github.com/restbound/restbound/internal/models"
)

const clientTemplate = `// Code generated by restbound. DO NOT EDIT.

package {{ .PackageName }}

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/restbound/restbound/pkg/restbound"
)

// {{ .ClientName }} is the generated client for {{ .TypeName }}
type {{ .ClientName }} struct {
	requester restbound.Requester
{{- range .Fields }}
	{{ .FieldName }} {{ .Type }}
{{- end }}
}

// New{{ .ClientName }} creates a {{ .ClientName }} backed by the given Requester
func New{{ .ClientName }}(requester restbound.Requester) *{{ .ClientName }} {
	return &{{ .ClientName }}{requester: requester}
}
{{- if .RequesterGetter }}

// {{ .RequesterGetter }} returns the Requester the client delegates to
func (c *{{ .ClientName }}) {{ .RequesterGetter }}() restbound.Requester {
	return c.requester
}
{{- end }}
{{- range .Fields }}

// {{ .Getter }} returns the {{ .Getter | untitle }} property
func (c *{{ $.ClientName }}) {{ .Getter }}() {{ .Type }} {
	return c.{{ .FieldName }}
}

// {{ .Setter }} sets the {{ .Getter | untitle }} property
func (c *{{ $.ClientName }}) {{ .Setter }}(value {{ .Type }}) {
	c.{{ .FieldName }} = value
}
{{- end }}
{{- range .Methods }}

func (c *{{ $.ClientName }}) {{ .Name }}({{ .ParamList }}) {{ .ReturnDecl }} {
{{ .BodyText }}
}
{{- end }}
`

type renderField struct {
	FieldName string
	Type      string
	Getter    string
	Setter    string
}

type renderMethod struct {
	Name       string
	ParamList  string
	ReturnDecl string
	BodyText   string
}

type renderData struct {
	PackageName     string
	TypeName        string
	ClientName      string
	RequesterGetter string
	Fields          []renderField
	Methods         []renderMethod
}

// render produces the formatted source text for a finished type emission
func render(t *typeEmitter) (string, error) {
	data := renderData{
		PackageName:     t.packageName,
		TypeName:        t.model.Name,
		ClientName:      t.clientName,
		RequesterGetter: t.requesterGetter,
	}

	for _, f := range t.fields {
		data.Fields = append(data.Fields, renderField{
			FieldName: f.FieldName,
			Type:      f.Type,
			Getter:    exportName(f.Property.Name),
			Setter:    "Set" + exportName(f.Property.Name),
		})
	}

	for _, m := range t.methods {
		if m.Invalid {
			continue
		}
		if m.IsDispose {
			data.Methods = append(data.Methods, renderMethod{
				Name:       m.Name,
				ReturnDecl: "error",
				BodyText:   "\treturn c.requester.Close()",
			})
			continue
		}
		body := m.Body
		switch m.CtxName {
		case "":
			body = append([]string{"ctx := context.Background()"}, body...)
		case "ctx":
			// The parameter already provides ctx
		default:
			body = append([]string{"ctx := " + m.CtxName}, body...)
		}
		data.Methods = append(data.Methods, renderMethod{
			Name:       m.Name,
			ParamList:  paramList(m.Method),
			ReturnDecl: returnDecl(m.Method.Returns),
			BodyText:   indent(body),
		})
	}

	tmpl, err := template.New("client").Funcs(sprig.FuncMap()).Parse(clientTemplate)
	if err != nil {
		return "", models.NewGeneratorError(models.ErrorTypeGeneration, "invalid client template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", models.NewGeneratorError(models.ErrorTypeGeneration,
			"failed to render client for %q", t.model.Name).WithCause(err)
	}

	fileName := strings.ToLower(t.model.Name) + "_client.go"
	formatted, err := imports.Process(fileName, buf.Bytes(), nil)
	if err != nil {
		return "", models.NewGeneratorError(models.ErrorTypeGeneration,
			"generated client for %q does not format", t.model.Name).WithCause(err)
	}

	return string(formatted), nil
}

// paramList renders the parameter declarations of a method
func paramList(method *models.MethodModel) string {
	var parts []string
	for i := range method.Parameters {
		parameter := &method.Parameters[i]
		typeText := parameter.Type.Name
		if parameter.IsCancellationToken {
			typeText = "context.Context"
		}
		parts = append(parts, fmt.Sprintf("%s %s", paramName(parameter), typeText))
	}
	return strings.Join(parts, ", ")
}

// returnDecl renders the return declaration for a recognized shape
func returnDecl(returns models.ReturnTypeInfo) string {
	switch returns.Shape {
	case models.ReturnVoid:
		return "error"
	case models.ReturnJson:
		return fmt.Sprintf("(%s, error)", returns.DataType)
	case models.ReturnResponseMessage:
		return "(*http.Response, error)"
	case models.ReturnResponse:
		return fmt.Sprintf("(*restbound.Response[%s], error)", returns.DataType)
	case models.ReturnBytes:
		return "([]byte, error)"
	case models.ReturnString:
		return "(string, error)"
	case models.ReturnStream:
		return "(io.ReadCloser, error)"
	default:
		return "error"
	}
}

// indent renders body statements one tab in
func indent(statements []string) string {
	var b strings.Builder
	for i, s := range statements {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("\t")
		b.WriteString(s)
	}
	return b.String()
}
