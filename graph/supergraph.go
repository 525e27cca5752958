package graph

import (
	"fmt"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/n9te9/graphql-parser/ast"
	"github.com/n9te9/graphql-parser/lexer"
	"github.com/n9te9/graphql-parser/parser"
	"github.com/samber/lo"
)

const (
	jsonScalarDefinition = "scalar JSON"

	defaultMaxParallelism = 20
)

// SuperGraph is the stitched schema of all subgraphs.
type SuperGraph struct {
	SubGraphs []*SubGraph
	SDL       string
}

// Merge concatenates the fragments into one SDL document. Field names are
// neither namespaced nor checked for collisions here.
func Merge(typeDefs, queries, mutations []string) string {
	return fmt.Sprintf("%s\ntype Query { %s }\ntype Mutation { %s }",
		strings.Join(typeDefs, "\n"),
		strings.Join(queries, "\n"),
		strings.Join(mutations, "\n"),
	)
}

// NewSuperGraph stitches subGraphs in the given order, preceded by the JSON scalar.
func NewSuperGraph(subGraphs ...*SubGraph) *SuperGraph {
	typeDefs := append([]string{jsonScalarDefinition}, lo.Map(subGraphs, func(sg *SubGraph, _ int) string {
		return sg.TypeDefs
	})...)
	queries := lo.Map(subGraphs, func(sg *SubGraph, _ int) string {
		return sg.Queries
	})
	mutations := lo.Map(subGraphs, func(sg *SubGraph, _ int) string {
		return sg.Mutations
	})

	return &SuperGraph{
		SubGraphs: subGraphs,
		SDL:       Merge(typeDefs, queries, mutations),
	}
}

// Compile turns the stitched SDL into an executable schema bound to resolver.
// It fails on colliding definitions and on schema fields the resolver does
// not implement.
func (sg *SuperGraph) Compile(resolver any, opts ...graphql.SchemaOpt) (*graphql.Schema, error) {
	if err := sg.checkDefinitions(); err != nil {
		return nil, err
	}

	opts = append([]graphql.SchemaOpt{
		graphql.UseFieldResolvers(),
		graphql.MaxParallelism(defaultMaxParallelism),
	}, opts...)

	s, err := graphql.ParseSchema(sg.SDL, resolver, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return s, nil
}

// RootFields returns the field names of the Query or Mutation type in
// declaration order.
func (sg *SuperGraph) RootFields(typeName string) ([]string, error) {
	doc, err := sg.parse()
	if err != nil {
		return nil, err
	}

	var fields []string
	for _, def := range doc.Definitions {
		if objDef, ok := def.(*ast.ObjectTypeDefinition); ok && objDef.Name.String() == typeName {
			for _, f := range objDef.Fields {
				fields = append(fields, f.Name.String())
			}
		}
	}

	return fields, nil
}

func (sg *SuperGraph) parse() (*ast.Document, error) {
	l := lexer.New(sg.SDL)
	p := parser.New(l)
	doc := p.ParseDocument()
	if len(p.Errors()) > 0 {
		return nil, fmt.Errorf("parse error: %v", p.Errors())
	}

	return doc, nil
}

func (sg *SuperGraph) checkDefinitions() error {
	doc, err := sg.parse()
	if err != nil {
		return err
	}

	types := make(map[string]struct{})
	for _, def := range doc.Definitions {
		objDef, ok := def.(*ast.ObjectTypeDefinition)
		if !ok {
			continue
		}

		typeName := objDef.Name.String()
		if _, exists := types[typeName]; exists {
			return fmt.Errorf("type %q is defined more than once", typeName)
		}
		types[typeName] = struct{}{}

		fields := make(map[string]struct{}, len(objDef.Fields))
		for _, f := range objDef.Fields {
			name := f.Name.String()
			if _, exists := fields[name]; exists {
				return fmt.Errorf("field %s.%s is defined more than once", typeName, name)
			}
			fields[name] = struct{}{}
		}
	}

	return nil
}
