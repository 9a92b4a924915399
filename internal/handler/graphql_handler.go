package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
)

// GraphQLRequest 標準的 GraphQL over HTTP 請求
type GraphQLRequest struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type GraphQLHandler struct {
	schema *graphql.Schema
}

func NewGraphQLHandler(schema *graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

func (h *GraphQLHandler) RegisterRoutes(r *gin.Engine, authenticate gin.HandlerFunc) {
	r.POST("/graphql", authenticate, h.Serve)
}

// Serve 業務錯誤放在回應的 errors 內，HTTP 狀態碼一律為 200
func (h *GraphQLHandler) Serve(c *gin.Context) {
	var req GraphQLRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	response := h.schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)
	c.JSON(http.StatusOK, response)
}
