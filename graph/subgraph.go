package graph

import (
	"fmt"
	"strings"

	"github.com/n9te9/graphql-parser/ast"
	"github.com/n9te9/graphql-parser/lexer"
	"github.com/n9te9/graphql-parser/parser"
)

// SubGraph is the schema fragment contributed by one upstream service:
// its type definitions plus the Query and Mutation fields it serves.
type SubGraph struct {
	Name      string
	TypeDefs  string
	Queries   string
	Mutations string
	Document  *ast.Document
}

// NewSubGraph parses the type definitions of a fragment and checks that every
// "XInput" input mirrors its "X" output type minus the identifier field.
func NewSubGraph(name, typeDefs, queries, mutations string) (*SubGraph, error) {
	p := parser.New(lexer.New(typeDefs))
	doc := p.ParseDocument()
	if len(p.Errors()) > 0 {
		return nil, fmt.Errorf("failed to parse type definitions of %q: %v", name, p.Errors())
	}

	if err := checkInputMirrors(doc); err != nil {
		return nil, fmt.Errorf("subgraph %q: %w", name, err)
	}

	return &SubGraph{
		Name:      name,
		TypeDefs:  typeDefs,
		Queries:   queries,
		Mutations: mutations,
		Document:  doc,
	}, nil
}

func checkInputMirrors(doc *ast.Document) error {
	inputs := make(map[string][]string)
	var types []*ast.ObjectTypeDefinition
	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case *ast.InputObjectTypeDefinition:
			fields := make([]string, 0, len(d.Fields))
			for _, f := range d.Fields {
				fields = append(fields, f.Name.String())
			}
			inputs[d.Name.String()] = fields
		case *ast.ObjectTypeDefinition:
			types = append(types, d)
		}
	}

	for _, typ := range types {
		inputName := typ.Name.String() + "Input"
		inputFields, ok := inputs[inputName]
		if !ok || len(typ.Fields) == 0 {
			continue
		}

		// The first field of an entity type is its identifier.
		want := make([]string, 0, len(typ.Fields)-1)
		for _, f := range typ.Fields[1:] {
			want = append(want, f.Name.String())
		}

		if strings.Join(want, ",") != strings.Join(inputFields, ",") {
			return fmt.Errorf("input %s does not mirror %s: want fields [%s], got [%s]",
				inputName, typ.Name.String(), strings.Join(want, " "), strings.Join(inputFields, " "))
		}
	}

	return nil
}
