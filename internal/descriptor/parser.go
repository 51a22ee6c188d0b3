package descriptor

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/restbound/restbound/internal/models"
)

// Parser parses descriptor text into TypeModels
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser builds the descriptor parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Arrow", Pattern: `->`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
		{Name: "Punct", Pattern: `[\[\](){}:,=*]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[File](
		participle.Lexer(lex),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)

	return &Parser{parser: parser}
}

// Parse parses one descriptor source and builds the TypeModels it declares,
// inheritance resolved. The file name is carried into source locations.
func (p *Parser) Parse(fileName, source string) ([]*models.TypeModel, error) {
	file, err := p.parser.ParseString(fileName, source)
	if err != nil {
		return nil, syntaxError(fileName, err)
	}
	return buildModels(fileName, file)
}

// syntaxError wraps a participle error as a GeneratorError with its location
func syntaxError(fileName string, err error) error {
	genErr := models.NewGeneratorError(models.ErrorTypeDescriptorSyntax,
		"failed to parse descriptor: %v", err).WithCause(err)
	if perr, ok := err.(participle.Error); ok {
		genErr.File = perr.Position().Filename
		genErr.Line = perr.Position().Line
	} else {
		genErr.File = fileName
	}
	return genErr
}
