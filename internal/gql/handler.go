package gql

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/fekuna/omnipos-warehouse-service/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type Handler struct {
	schema graphql.Schema
	logger logger.ZapLogger
}

func NewHandler(schema graphql.Schema, log logger.ZapLogger) *Handler {
	return &Handler{schema: schema, logger: log}
}

// Serve executes POST bodies and GET query strings. Mutations are POST only.
func (h *Handler) Serve(c *gin.Context) {
	var req Request
	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				badRequest(c, "variables must be a JSON object")
				return
			}
		}
		if strings.HasPrefix(strings.TrimSpace(req.Query), "mutation") {
			c.Header("Allow", http.MethodPost)
			c.JSON(http.StatusMethodNotAllowed, errorBody("mutations must use POST"))
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request body must be a JSON object")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		badRequest(c, "query is required")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request.Context(),
	})
	if result.HasErrors() {
		h.logger.Debug("graphql request returned errors",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("operation", req.OperationName),
			zap.Int("errors", len(result.Errors)),
		)
	}
	c.JSON(http.StatusOK, result)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorBody(message))
}

func errorBody(message string) gin.H {
	return gin.H{"errors": []gin.H{{"message": message}}}
}
