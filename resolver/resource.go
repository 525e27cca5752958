package resolver

import (
	"context"
	"net/http"

	"github.com/n9te9/go-graphql-rest-gateway/executor"
)

// resource maps the five GraphQL operations of one entity onto its REST
// collection at base: T is the output shape, I the input shape.
type resource[T, I any] struct {
	entity string
	base   string
	exec   *executor.Executor
}

func newResource[T, I any](exec *executor.Executor, entity, base string) *resource[T, I] {
	return &resource[T, I]{
		entity: entity,
		base:   base,
		exec:   exec,
	}
}

// all issues GET <base>/ and expects an array.
func (r *resource[T, I]) all(ctx context.Context) ([]*T, error) {
	var out []*T
	if err := r.exec.Get(ctx, r.entity, "all", executor.JoinPath(r.base, ""), nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// byID issues GET <base>/<id> without a query string.
func (r *resource[T, I]) byID(ctx context.Context, id int32) (*T, error) {
	return r.one(ctx, &executor.Request{
		Entity:    r.entity,
		Operation: "byId",
		Method:    http.MethodGet,
		URL:       executor.JoinPath(r.base, id),
	})
}

// create issues POST <base> with input as the body.
func (r *resource[T, I]) create(ctx context.Context, input I) (*T, error) {
	return r.one(ctx, &executor.Request{
		Entity:    r.entity,
		Operation: "create",
		Method:    http.MethodPost,
		URL:       r.base,
		Body:      input,
	})
}

// update issues PUT <base>/<id> with input as the body.
func (r *resource[T, I]) update(ctx context.Context, id int32, input I) (*T, error) {
	return r.one(ctx, &executor.Request{
		Entity:    r.entity,
		Operation: "update",
		Method:    http.MethodPut,
		URL:       executor.JoinPath(r.base, id),
		Body:      input,
	})
}

// one sends req and expects a single entity. A null or empty body is an
// error, never a zero-valued entity.
func (r *resource[T, I]) one(ctx context.Context, req *executor.Request) (*T, error) {
	var out *T
	if err := r.exec.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, executor.NewEmptyResponseError(req)
	}

	return out, nil
}

// remove issues DELETE <base>/<id> and expects the affected row count or nothing.
func (r *resource[T, I]) remove(ctx context.Context, id int32) (*int32, error) {
	var out *int32
	if err := r.exec.Do(ctx, &executor.Request{
		Entity:    r.entity,
		Operation: "delete",
		Method:    http.MethodDelete,
		URL:       executor.JoinPath(r.base, id),
	}, &out); err != nil {
		return nil, err
	}

	return out, nil
}
