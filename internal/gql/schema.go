// Package gql 提供 /graphql 的 schema 與 resolver。
package gql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/mars1-events-planning/eventool-backend/internal/service"
	"github.com/mars1-events-planning/eventool-backend/pkg/logger"

	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

const maxQueryDepth = 10

// NewSchema 解析 schema 並綁定 resolver，resolver 與 schema 不符時 panic
func NewSchema(events service.EventService, organizers service.OrganizerService) *graphql.Schema {
	return graphql.MustParseSchema(schemaSDL, NewResolver(events, organizers),
		graphql.UseStringDescriptions(),
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(&panicLogger{}),
	)
}

// panicLogger resolver panic 時寫入 zap
type panicLogger struct{}

func (l *panicLogger) LogPanic(_ context.Context, value interface{}) {
	logger.WithComponent("graphql").Error("Resolver panicked", zap.String("panic", fmt.Sprint(value)))
}
