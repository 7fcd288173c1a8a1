package handler

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/gql/gqltest"
	"github.com/fekuna/omnipos-warehouse-service/internal/testutil"
	"github.com/fekuna/omnipos-warehouse-service/internal/user/usecase"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterLoginMe(t *testing.T) {
	st := testutil.NewStore(t)
	tokens := auth.NewTokenManager("test-secret", 3*time.Hour)
	h := NewUserHandler(usecase.NewUserUseCase(st, tokens, logger.NewNop(), bcrypt.MinCost), logger.NewNop())

	registered := gqltest.Execute(t, 0, `mutation {
		registerUser(firstname: "Jane", lastname: "Doe", email: " Jane@Example.com ", password: "s3cret") { id email role }
	}`, nil, h)
	require.Empty(t, registered.Errors)
	u := registered.Data.(map[string]interface{})["registerUser"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", u["email"])
	assert.Equal(t, "Pending", u["role"])

	duplicate := gqltest.Execute(t, 0, `mutation {
		registerUser(firstname: "J", lastname: "D", email: "jane@example.com", password: "x") { id }
	}`, nil, h)
	assert.Equal(t, "DUPLICATE_USER", gqltest.Code(duplicate))

	wrong := gqltest.Execute(t, 0, `mutation { loginUser(loginemail: "jane@example.com", loginpassword: "nope") { token } }`, nil, h)
	assert.Equal(t, "INVALID_CREDENTIALS", gqltest.Code(wrong))
	assert.Equal(t, "invalid email or password", wrong.Errors[0].Message)

	login := gqltest.Execute(t, 0, `mutation { loginUser(loginemail: "JANE@example.com", loginpassword: "s3cret") { id token firstName } }`, nil, h)
	require.Empty(t, login.Errors)
	payload := login.Data.(map[string]interface{})["loginUser"].(map[string]interface{})
	assert.Equal(t, "Jane", payload["firstName"])

	id, err := tokens.Parse(payload["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, int64(u["id"].(int)), id.UserID)

	me := gqltest.Execute(t, id.UserID, `{ me { firstName lastName } }`, nil, h)
	require.Empty(t, me.Errors)
	assert.Equal(t, map[string]interface{}{"me": map[string]interface{}{"firstName": "Jane", "lastName": "Doe"}}, me.Data)

	anonymous := gqltest.Execute(t, 0, `{ me { id } }`, nil, h)
	assert.Equal(t, "UNAUTHENTICATED", gqltest.Code(anonymous))
}
