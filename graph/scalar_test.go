package graph_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/n9te9/go-graphql-rest-gateway/graph"
)

type echoResolver struct{}

func (r *echoResolver) Echo(args struct{ Value *graph.JSON }) *graph.JSON {
	return args.Value
}

func (r *echoResolver) Noop() *int32 {
	return nil
}

func TestJSON_Passthrough(t *testing.T) {
	sg := graph.NewSuperGraph(mustSubGraph(t, "echo", `
type Echo {
    id: Int!
}`, `
    echo(value: JSON): JSON
`, `
    noop: Int
`))

	s, err := sg.Compile(&echoResolver{})
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}

	value := map[string]any{
		"name":  "cabin",
		"tags":  []any{"lake", float64(3)},
		"owner": nil,
	}
	resp := s.Exec(context.Background(), `query($v: JSON) { echo(value: $v) }`, "", map[string]any{"v": value})
	if len(resp.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", resp.Errors)
	}

	want := map[string]any{"echo": value}
	if diff := cmp.Diff(want, decode(t, resp.Data)); diff != "" {
		t.Errorf("echo mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_MarshalJSON(t *testing.T) {
	var j graph.JSON
	if err := j.UnmarshalGraphQL([]any{"a", true}); err != nil {
		t.Fatalf("UnmarshalGraphQL() failed: %v", err)
	}

	b, err := j.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	if string(b) != `["a",true]` {
		t.Errorf("MarshalJSON() = %s", b)
	}
	if !j.ImplementsGraphQLType("JSON") || j.ImplementsGraphQLType("String") {
		t.Error("ImplementsGraphQLType() mismatch")
	}
}
