package graph

import "github.com/goccy/go-json"

// JSON is the passthrough scalar: values are accepted and emitted unchanged.
type JSON struct {
	Value any
}

func (JSON) ImplementsGraphQLType(name string) bool {
	return name == "JSON"
}

func (j *JSON) UnmarshalGraphQL(input any) error {
	j.Value = input
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Value)
}
