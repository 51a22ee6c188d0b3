// Package descriptor parses the restbound interface descriptor format into
// TypeModels the core pipeline consumes. The descriptor is one of the
// supported discovery surfaces; it carries annotations only, all semantic
// validation stays in the generator.
package descriptor

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is the root of a parsed descriptor
type File struct {
	Interfaces []*InterfaceDecl `parser:"@@*"`
}

// InterfaceDecl is one interface declaration
type InterfaceDecl struct {
	Pos lexer.Position

	Annotations []*Annotation `parser:"@@*"`
	Name        string        `parser:"'interface' @Ident"`
	Parents     []string      `parser:"(':' @Ident (',' @Ident)*)?"`
	Members     []*Member     `parser:"'{' @@* '}'"`
}

// Member is one declaration inside an interface body
type Member struct {
	Pos lexer.Position

	Annotations []*Annotation  `parser:"@@*"`
	Requester   *RequesterDecl `parser:"( @@"`
	Event       *EventDecl     `parser:"| @@"`
	Dispose     *DisposeDecl   `parser:"| @@"`
	Property    *PropertyDecl  `parser:"| @@"`
	Method      *MethodDecl    `parser:"| @@ )"`
}

// RequesterDecl declares the property exposing the injected Requester
type RequesterDecl struct {
	Name string `parser:"'requester' 'property' @Ident"`
}

// EventDecl declares an event (always rejected by validation)
type EventDecl struct {
	Name string `parser:"'event' @Ident"`
}

// DisposeDecl declares the method releasing the Requester
type DisposeDecl struct {
	Name string `parser:"'dispose' 'method' @Ident"`
}

// PropertyDecl declares an annotated property
type PropertyDecl struct {
	Name      string    `parser:"'property' @Ident"`
	Type      *TypeExpr `parser:"':' @@"`
	Accessors []string  `parser:"('{' @('get' | 'set')* '}')?"`
}

// HasAccessor reports whether the accessor list names the given accessor
func (p *PropertyDecl) HasAccessor(name string) bool {
	for _, a := range p.Accessors {
		if a == name {
			return true
		}
	}
	return false
}

// MethodDecl declares a request method
type MethodDecl struct {
	Name   string       `parser:"'method' @Ident"`
	Params []*ParamDecl `parser:"'(' (@@ (',' @@)*)? ')'"`
	Return *ReturnDecl  `parser:"(Arrow @@)?"`
}

// ParamDecl declares one method parameter
type ParamDecl struct {
	Pos lexer.Position

	Annotations []*Annotation `parser:"@@*"`
	Name        string        `parser:"@Ident"`
	Type        *TypeExpr     `parser:"':' @@"`
}

// ReturnDecl declares the return shape of a method
type ReturnDecl struct {
	Pos lexer.Position

	Kind string    `parser:"@Ident"`
	Type *TypeExpr `parser:"@@?"`
}

// Annotation is a bracketed attribute such as [Get("/users/{id}")]
type Annotation struct {
	Pos lexer.Position

	Name string           `parser:"'[' @Ident"`
	Args []*AnnotationArg `parser:"('(' (@@ (',' @@)*)? ')')? ']'"`
}

// AnnotationArg is one positional or Key = Value annotation argument
type AnnotationArg struct {
	Key   string  `parser:"(@Ident '=')?"`
	Str   *string `parser:"( @String"`
	Ident *string `parser:"| @Ident )"`
}

// Text returns the argument value: the unquoted string or the identifier
func (a *AnnotationArg) Text() string {
	if a.Str != nil {
		return unquote(*a.Str)
	}
	if a.Ident != nil {
		return *a.Ident
	}
	return ""
}

// IsString reports whether the argument was written as a quoted string
func (a *AnnotationArg) IsString() bool {
	return a.Str != nil
}

// TypeExpr is a declared type: an optional pointer over a map or named type
type TypeExpr struct {
	Pointer bool       `parser:"@'*'?"`
	Map     *MapType   `parser:"( @@"`
	Named   *NamedType `parser:"| @@ )"`
}

// MapType is a key-value mapping type
type MapType struct {
	Key   *TypeExpr `parser:"'map' '[' @@ ']'"`
	Value *TypeExpr `parser:"@@"`
}

// NamedType is a plain (possibly qualified) type name
type NamedType struct {
	Name string `parser:"@Ident"`
}

// Text renders the type back to Go type syntax
func (t *TypeExpr) Text() string {
	var b strings.Builder
	if t.Pointer {
		b.WriteString("*")
	}
	if t.Map != nil {
		b.WriteString("map[")
		b.WriteString(t.Map.Key.Text())
		b.WriteString("]")
		b.WriteString(t.Map.Value.Text())
	} else if t.Named != nil {
		b.WriteString(t.Named.Name)
	}
	return b.String()
}

// IsMap reports whether the type is a key-value mapping
func (t *TypeExpr) IsMap() bool {
	return t.Map != nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `\"`, `"`)
}
