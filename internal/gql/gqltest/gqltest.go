// Package gqltest runs GraphQL documents against handlers in tests.
package gqltest

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/gql"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"
)

// Execute builds a schema from the registrars and runs query as userID (0 is anonymous).
func Execute(t *testing.T, userID int64, query string, vars map[string]interface{}, registrars ...gql.Registrar) *graphql.Result {
	t.Helper()

	r := gql.NewRegistry(logger.NewNop(), false)
	for _, reg := range registrars {
		reg.Register(r)
	}
	schema, err := r.Schema()
	require.NoError(t, err)

	ctx := context.Background()
	if userID > 0 {
		ctx = auth.WithIdentity(ctx, auth.Identity{UserID: userID})
	}
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

// Code returns the extensions code of the first error, or "".
func Code(result *graphql.Result) string {
	if len(result.Errors) == 0 {
		return ""
	}
	code, _ := result.Errors[0].Extensions["code"].(string)
	return code
}
