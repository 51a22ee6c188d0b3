package descriptor

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/restbound/restbound/internal/models"
	"github.com/restbound/restbound/pkg/restbound"
)

// rawInterface is an interface with its own declarations only, before
// inheritance is resolved
type rawInterface struct {
	decl  *InterfaceDecl
	model models.TypeModel
}

// buildModels converts a parsed file into TypeModels with inheritance
// resolved, in declaration order
func buildModels(fileName string, file *File) ([]*models.TypeModel, error) {
	raw := make(map[string]*rawInterface, len(file.Interfaces))
	var order []string

	for _, decl := range file.Interfaces {
		model, err := buildInterface(fileName, decl)
		if err != nil {
			return nil, err
		}
		raw[decl.Name] = &rawInterface{decl: decl, model: *model}
		order = append(order, decl.Name)
	}

	var built []*models.TypeModel
	for _, name := range order {
		model, err := resolveInheritance(fileName, raw, name, nil)
		if err != nil {
			return nil, err
		}
		built = append(built, model)
	}
	return built, nil
}

// resolveInheritance merges ancestor declarations into a leaf model
func resolveInheritance(fileName string, raw map[string]*rawInterface, name string, seen []string) (*models.TypeModel, error) {
	for _, s := range seen {
		if s == name {
			return nil, models.NewGeneratorError(models.ErrorTypeDescriptorSyntax,
				"interface %q inherits itself through %s", name, strings.Join(seen, " -> "))
		}
	}

	entry, ok := raw[name]
	if !ok {
		return nil, models.NewGeneratorError(models.ErrorTypeDescriptorSyntax,
			"unknown parent interface %q", name)
	}

	model := entry.model
	for _, parent := range entry.decl.Parents {
		parentModel, err := resolveInheritance(fileName, raw, parent, append(seen, name))
		if err != nil {
			return nil, err
		}

		model.Ancestors = append(model.Ancestors, parent)
		model.Ancestors = append(model.Ancestors, parentModel.Ancestors...)
		model.Headers = append(model.Headers, parentModel.Headers...)
		model.Properties = append(model.Properties, parentModel.Properties...)
		model.Methods = append(model.Methods, parentModel.Methods...)
		model.Events = append(model.Events, parentModel.Events...)
		if model.BasePath == nil {
			model.BasePath = parentModel.BasePath
		}
		if model.AllowAnyStatusCode == nil {
			model.AllowAnyStatusCode = parentModel.AllowAnyStatusCode
		}
		if model.SerializationMethods == nil {
			model.SerializationMethods = parentModel.SerializationMethods
		}
	}

	return &model, nil
}

// buildInterface converts one declaration, own members only
func buildInterface(fileName string, decl *InterfaceDecl) (*models.TypeModel, error) {
	model := &models.TypeModel{
		Name:     decl.Name,
		Location: location(fileName, decl.Pos),
	}

	for _, annotation := range decl.Annotations {
		if err := applyInterfaceAnnotation(fileName, decl.Name, model, annotation); err != nil {
			return nil, err
		}
	}

	for _, member := range decl.Members {
		switch {
		case member.Requester != nil:
			property := models.PropertyModel{
				Name:        member.Requester.Name,
				Type:        models.TypeRef{Name: "restbound.Requester"},
				HasGetter:   true,
				IsRequester: true,
				Location:    location(fileName, member.Pos),
			}
			if err := applyPropertyAnnotations(fileName, &property, member.Annotations); err != nil {
				return nil, err
			}
			model.Properties = append(model.Properties, property)

		case member.Event != nil:
			model.Events = append(model.Events, models.EventModel{
				Name:     member.Event.Name,
				Location: location(fileName, member.Pos),
			})

		case member.Dispose != nil:
			model.Methods = append(model.Methods, models.MethodModel{
				Name:            member.Dispose.Name,
				IsDisposeMethod: true,
				Location:        location(fileName, member.Pos),
			})

		case member.Property != nil:
			property, err := buildProperty(fileName, member)
			if err != nil {
				return nil, err
			}
			model.Properties = append(model.Properties, *property)

		case member.Method != nil:
			method, err := buildMethod(fileName, member)
			if err != nil {
				return nil, err
			}
			model.Methods = append(model.Methods, *method)
		}
	}

	return model, nil
}

// buildProperty converts a property member
func buildProperty(fileName string, member *Member) (*models.PropertyModel, error) {
	decl := member.Property
	property := &models.PropertyModel{
		Name:     decl.Name,
		Type:     typeRef(decl.Type),
		Location: location(fileName, member.Pos),
	}

	// Omitted accessor block means read-write
	if len(decl.Accessors) == 0 {
		property.HasGetter = true
		property.HasSetter = true
	} else {
		property.HasGetter = decl.HasAccessor("get")
		property.HasSetter = decl.HasAccessor("set")
	}

	if err := applyPropertyAnnotations(fileName, property, member.Annotations); err != nil {
		return nil, err
	}
	return property, nil
}

// buildMethod converts a method member
func buildMethod(fileName string, member *Member) (*models.MethodModel, error) {
	decl := member.Method
	method := &models.MethodModel{
		Name:     decl.Name,
		Returns:  returnInfo(decl.Return),
		Location: location(fileName, member.Pos),
	}

	for _, annotation := range member.Annotations {
		if err := applyMethodAnnotation(fileName, method, annotation); err != nil {
			return nil, err
		}
	}

	for _, param := range decl.Params {
		parameter, err := buildParameter(fileName, param)
		if err != nil {
			return nil, err
		}
		method.Parameters = append(method.Parameters, *parameter)
	}

	return method, nil
}

// buildParameter converts a parameter declaration
func buildParameter(fileName string, decl *ParamDecl) (*models.ParameterModel, error) {
	parameter := &models.ParameterModel{
		Name:                decl.Name,
		Type:                typeRef(decl.Type),
		IsCancellationToken: decl.Type.Text() == "context.Context",
		Location:            location(fileName, decl.Pos),
	}

	for _, annotation := range decl.Annotations {
		loc := location(fileName, annotation.Pos)
		switch annotation.Name {
		case "Header":
			header := &models.HeaderAttribute{Name: argText(annotation, 0), Location: loc}
			if len(annotation.Args) > 1 {
				header.Value = argText(annotation, 1)
				header.HasValue = true
			}
			parameter.Header = header
		case "Path":
			parameter.Path = pathAttribute(annotation, loc)
		case "Query":
			parameter.Query = queryAttribute(annotation, loc)
		case "QueryMap":
			attr := &models.QueryMapAttribute{Location: loc}
			if len(annotation.Args) > 0 {
				attr.SerializationMethod = queryMethod(argText(annotation, 0))
			}
			parameter.QueryMap = attr
		case "RawQueryString":
			parameter.RawQueryString = &models.RawQueryStringAttribute{Location: loc}
		case "Body":
			attr := &models.BodyAttribute{Location: loc}
			if len(annotation.Args) > 0 {
				attr.SerializationMethod = bodyMethod(argText(annotation, 0))
			}
			parameter.Body = attr
		case "HttpRequestMessageProperty":
			parameter.RequestProperty = &models.RequestPropertyAttribute{Key: argText(annotation, 0), Location: loc}
		default:
			return nil, unknownAnnotation(fileName, annotation, "parameter", decl.Name)
		}
	}

	return parameter, nil
}

// applyInterfaceAnnotation maps one interface-level annotation onto the model
func applyInterfaceAnnotation(fileName, declaredOn string, model *models.TypeModel, annotation *Annotation) error {
	loc := location(fileName, annotation.Pos)
	switch annotation.Name {
	case "Header":
		header := models.HeaderAttribute{Name: argText(annotation, 0), DeclaredOn: declaredOn, Location: loc}
		if len(annotation.Args) > 1 {
			header.Value = argText(annotation, 1)
			header.HasValue = true
		}
		model.Headers = append(model.Headers, header)
	case "BasePath":
		model.BasePath = &models.BasePathAttribute{Template: argText(annotation, 0), DeclaredOn: declaredOn, Location: loc}
	case "AllowAnyStatusCode":
		model.AllowAnyStatusCode = &models.AllowAnyStatusCodeAttribute{
			Allow:      boolArg(annotation, true),
			DeclaredOn: declaredOn,
			Location:   loc,
		}
	case "SerializationMethods":
		attr, err := serializationMethods(fileName, annotation, declaredOn)
		if err != nil {
			return err
		}
		model.SerializationMethods = attr
	default:
		return unknownAnnotation(fileName, annotation, "interface", declaredOn)
	}
	return nil
}

// applyMethodAnnotation maps one method-level annotation onto the method
func applyMethodAnnotation(fileName string, method *models.MethodModel, annotation *Annotation) error {
	loc := location(fileName, annotation.Pos)
	switch annotation.Name {
	case "Get", "Post", "Put", "Delete", "Patch", "Head", "Options", "Trace":
		method.Request = &models.RequestAttribute{
			Method:   strings.ToUpper(annotation.Name),
			Path:     argText(annotation, 0),
			Location: loc,
		}
	case "Header":
		header := models.HeaderAttribute{Name: argText(annotation, 0), Location: loc}
		if len(annotation.Args) > 1 {
			header.Value = argText(annotation, 1)
			header.HasValue = true
		}
		method.Headers = append(method.Headers, header)
	case "AllowAnyStatusCode":
		method.AllowAnyStatusCode = &models.AllowAnyStatusCodeAttribute{
			Allow:    boolArg(annotation, true),
			Location: loc,
		}
	case "SerializationMethods":
		attr, err := serializationMethods(fileName, annotation, "")
		if err != nil {
			return err
		}
		method.SerializationMethods = attr
	default:
		return unknownAnnotation(fileName, annotation, "method", method.Name)
	}
	return nil
}

// applyPropertyAnnotations maps property-level annotations
func applyPropertyAnnotations(fileName string, property *models.PropertyModel, annotations []*Annotation) error {
	for _, annotation := range annotations {
		loc := location(fileName, annotation.Pos)
		switch annotation.Name {
		case "Header":
			header := &models.HeaderAttribute{Name: argText(annotation, 0), Location: loc}
			if len(annotation.Args) > 1 {
				header.Value = argText(annotation, 1)
				header.HasValue = true
			}
			property.Header = header
		case "Path":
			property.Path = pathAttribute(annotation, loc)
		case "Query":
			property.Query = queryAttribute(annotation, loc)
		case "HttpRequestMessageProperty":
			property.RequestProperty = &models.RequestPropertyAttribute{Key: argText(annotation, 0), Location: loc}
		default:
			return unknownAnnotation(fileName, annotation, "property", property.Name)
		}
	}
	return nil
}

// pathAttribute builds a [Path] attribute from its positional args: an
// optional quoted key and an optional serialization method identifier
func pathAttribute(annotation *Annotation, loc models.SourceLocation) *models.PathAttribute {
	attr := &models.PathAttribute{Location: loc}
	for _, arg := range annotation.Args {
		if arg.IsString() {
			attr.Name = arg.Text()
		} else {
			attr.SerializationMethod = pathMethod(arg.Text())
		}
	}
	return attr
}

// queryAttribute builds a [Query] attribute, same argument convention
func queryAttribute(annotation *Annotation, loc models.SourceLocation) *models.QueryAttribute {
	attr := &models.QueryAttribute{Location: loc}
	for _, arg := range annotation.Args {
		if arg.IsString() {
			attr.Name = arg.Text()
		} else {
			attr.SerializationMethod = queryMethod(arg.Text())
		}
	}
	return attr
}

// serializationMethods builds a [SerializationMethods(Key = Value, ...)] attribute
func serializationMethods(fileName string, annotation *Annotation, declaredOn string) (*models.SerializationMethodsAttribute, error) {
	attr := &models.SerializationMethodsAttribute{
		DeclaredOn: declaredOn,
		Location:   location(fileName, annotation.Pos),
	}
	for _, arg := range annotation.Args {
		switch arg.Key {
		case "Path":
			attr.Path = pathMethod(arg.Text())
		case "Query":
			attr.Query = queryMethod(arg.Text())
		case "Body":
			attr.Body = bodyMethod(arg.Text())
		default:
			return nil, models.NewGeneratorError(models.ErrorTypeDescriptorSyntax,
				"unknown serialization target %q; expected Path, Query or Body", arg.Key).
				WithLocation(location(fileName, annotation.Pos))
		}
	}
	return attr, nil
}

func pathMethod(name string) restbound.PathSerializationMethod {
	switch name {
	case "ToString":
		return restbound.PathSerializationToString
	case "Serialized":
		return restbound.PathSerializationSerialized
	default:
		return restbound.PathSerializationDefault
	}
}

func queryMethod(name string) restbound.QuerySerializationMethod {
	switch name {
	case "ToString":
		return restbound.QuerySerializationToString
	case "Serialized":
		return restbound.QuerySerializationSerialized
	default:
		return restbound.QuerySerializationDefault
	}
}

func bodyMethod(name string) restbound.BodySerializationMethod {
	switch name {
	case "Serialized":
		return restbound.BodySerializationSerialized
	case "UrlEncoded":
		return restbound.BodySerializationUrlEncoded
	default:
		return restbound.BodySerializationDefault
	}
}

// returnInfo maps a return declaration to its recognized shape
func returnInfo(decl *ReturnDecl) models.ReturnTypeInfo {
	if decl == nil {
		return models.ReturnTypeInfo{Shape: models.ReturnVoid}
	}

	raw := decl.Kind
	dataType := ""
	if decl.Type != nil {
		dataType = decl.Type.Text()
		raw += " " + dataType
	}

	info := models.ReturnTypeInfo{DataType: dataType, Raw: raw}
	switch decl.Kind {
	case "void":
		info.Shape = models.ReturnVoid
	case "json":
		info.Shape = models.ReturnJson
	case "message":
		info.Shape = models.ReturnResponseMessage
	case "response":
		info.Shape = models.ReturnResponse
	case "bytes":
		info.Shape = models.ReturnBytes
	case "string":
		info.Shape = models.ReturnString
	case "stream":
		info.Shape = models.ReturnStream
	default:
		info.Shape = models.ReturnInvalid
	}

	// json and response shapes need a data type to deserialize into
	if (info.Shape == models.ReturnJson || info.Shape == models.ReturnResponse) && dataType == "" {
		info.Shape = models.ReturnInvalid
	}

	return info
}

// typeRef converts a type expression
func typeRef(t *TypeExpr) models.TypeRef {
	return models.TypeRef{
		Name:     t.Text(),
		Nullable: t.Pointer,
		IsMap:    t.IsMap(),
	}
}

// argText returns the text of the i-th annotation argument, or ""
func argText(annotation *Annotation, i int) string {
	if i >= len(annotation.Args) {
		return ""
	}
	return annotation.Args[i].Text()
}

// boolArg reads an optional true/false argument
func boolArg(annotation *Annotation, missing bool) bool {
	if len(annotation.Args) == 0 {
		return missing
	}
	return annotation.Args[0].Text() != "false"
}

func unknownAnnotation(fileName string, annotation *Annotation, level, target string) error {
	return models.NewGeneratorError(models.ErrorTypeDescriptorSyntax,
		"unknown %s annotation [%s] on %q", level, annotation.Name, target).
		WithLocation(location(fileName, annotation.Pos))
}

// location converts a lexer position
func location(fileName string, pos lexer.Position) models.SourceLocation {
	if pos.Filename != "" {
		fileName = pos.Filename
	}
	return models.SourceLocation{File: fileName, Line: pos.Line, Column: pos.Column}
}
