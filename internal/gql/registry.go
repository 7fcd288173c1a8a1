// Package gql builds the GraphQL schema from fields registered by each domain handler.
package gql

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// Registrar is implemented by every domain handler that exposes GraphQL fields.
type Registrar interface {
	Register(r *Registry)
}

// Registry maps operation names to fields. Problems found while registering are
// collected and reported by Schema so startup fails on the first build.
type Registry struct {
	queries     graphql.Fields
	mutations   graphql.Fields
	errs        []error
	logger      logger.ZapLogger
	development bool
}

func NewRegistry(log logger.ZapLogger, development bool) *Registry {
	return &Registry{
		queries:     graphql.Fields{},
		mutations:   graphql.Fields{},
		logger:      log,
		development: development,
	}
}

func (r *Registry) Query(name string, field *graphql.Field) {
	r.add(r.queries, "query", name, field)
}

func (r *Registry) Mutation(name string, field *graphql.Field) {
	r.add(r.mutations, "mutation", name, field)
}

func (r *Registry) add(fields graphql.Fields, kind, name string, field *graphql.Field) {
	switch {
	case name == "":
		r.errs = append(r.errs, fmt.Errorf("%s registered without a name", kind))
	case field == nil || field.Resolve == nil:
		r.errs = append(r.errs, fmt.Errorf("%s %q has no resolver", kind, name))
	case fields[name] != nil:
		r.errs = append(r.errs, fmt.Errorf("%s %q registered twice", kind, name))
	default:
		field.Resolve = r.present(name, field.Resolve)
		fields[name] = field
	}
}

// Names lists registered operations, sorted, for startup logging.
func (r *Registry) Names() (queries, mutations []string) {
	for name := range r.queries {
		queries = append(queries, name)
	}
	for name := range r.mutations {
		mutations = append(mutations, name)
	}
	sort.Strings(queries)
	sort.Strings(mutations)
	return queries, mutations
}

func (r *Registry) Schema() (graphql.Schema, error) {
	if len(r.errs) > 0 {
		return graphql.Schema{}, errors.Join(r.errs...)
	}
	if len(r.queries) == 0 {
		return graphql.Schema{}, errors.New("schema has no queries")
	}

	cfg := graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: r.queries}),
	}
	if len(r.mutations) > 0 {
		cfg.Mutation = graphql.NewObject(graphql.ObjectConfig{Name: "Mutation", Fields: r.mutations})
	}
	return graphql.NewSchema(cfg)
}

// present keeps business errors as they are, their Extensions become the GraphQL
// error extensions. Anything else is logged and masked.
func (r *Registry) present(name string, resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := resolve(p)
		if err == nil {
			return out, nil
		}
		if appErr, ok := apperror.As(err); ok {
			return nil, appErr
		}

		r.logger.Error("graphql resolver failed", zap.String("field", name), zap.Error(err))
		msg := "internal server error"
		if r.development {
			msg += ": " + err.Error()
		}
		return nil, apperror.Internal(msg)
	}
}
