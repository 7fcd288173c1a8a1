package handler

import (
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/gql"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/user"
	"github.com/fekuna/omnipos-warehouse-service/internal/user/dto"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/graphql-go/graphql"
)

var _ gql.Registrar = (*UserHandler)(nil)

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger

	userType  *graphql.Object
	loginType *graphql.Object
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	h := &UserHandler{uc: uc, logger: log}

	h.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "UserPayload",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"firstName": &graphql.Field{Type: graphql.String},
			"lastName":  &graphql.Field{Type: graphql.String},
			"email":     &graphql.Field{Type: graphql.String},
			"role":      &graphql.Field{Type: graphql.String},
		},
	})
	h.loginType = graphql.NewObject(graphql.ObjectConfig{
		Name: "LoginPayload",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"firstName": &graphql.Field{Type: graphql.String},
			"lastName":  &graphql.Field{Type: graphql.String},
			"email":     &graphql.Field{Type: graphql.String},
			"role":      &graphql.Field{Type: graphql.String},
			"token":     &graphql.Field{Type: graphql.String},
			"expiresAt": &graphql.Field{Type: graphql.DateTime},
		},
	})
	return h
}

func (h *UserHandler) Register(r *gql.Registry) {
	str := graphql.NewNonNull(graphql.String)

	r.Query("me", &graphql.Field{Type: h.userType, Resolve: h.me})

	r.Mutation("registerUser", &graphql.Field{
		Type: h.userType,
		Args: graphql.FieldConfigArgument{
			"firstname": &graphql.ArgumentConfig{Type: str},
			"lastname":  &graphql.ArgumentConfig{Type: str},
			"email":     &graphql.ArgumentConfig{Type: str},
			"password":  &graphql.ArgumentConfig{Type: str},
		},
		Resolve: h.registerUser,
	})
	r.Mutation("loginUser", &graphql.Field{
		Type: h.loginType,
		Args: graphql.FieldConfigArgument{
			"loginemail":    &graphql.ArgumentConfig{Type: str},
			"loginpassword": &graphql.ArgumentConfig{Type: str},
		},
		Resolve: h.loginUser,
	})
}

func (h *UserHandler) registerUser(p graphql.ResolveParams) (interface{}, error) {
	password, _ := p.Args["password"].(string)
	u, err := h.uc.Register(p.Context, &dto.RegisterInput{
		FirstName: gql.StringArg(p.Args, "firstname"),
		LastName:  gql.StringArg(p.Args, "lastname"),
		Email:     gql.StringArg(p.Args, "email"),
		Password:  password,
	})
	if err != nil {
		return nil, err
	}
	return mapUser(u), nil
}

func (h *UserHandler) loginUser(p graphql.ResolveParams) (interface{}, error) {
	password, _ := p.Args["loginpassword"].(string)
	res, err := h.uc.Login(p.Context, &dto.LoginInput{
		Email:    gql.StringArg(p.Args, "loginemail"),
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	return loginPayload{
		ID:        res.UserID,
		FirstName: res.FirstName,
		LastName:  res.LastName,
		Email:     res.Email,
		Role:      res.Role,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	}, nil
}

func (h *UserHandler) me(p graphql.ResolveParams) (interface{}, error) {
	u, err := h.uc.Me(p.Context, auth.GetUserID(p.Context))
	if err != nil {
		return nil, err
	}
	return mapUser(u), nil
}

type userPayload struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type loginPayload struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func mapUser(u *model.User) userPayload {
	return userPayload{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: u.Role}
}
