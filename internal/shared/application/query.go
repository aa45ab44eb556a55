package application

import "context"

// Query is a read-only ranking request, such as asking for the top suggestions.
// QueryName follows the same "context.action" form as CommandName.
type Query interface {
	QueryName() string
}

// QueryHandler answers one query type. Suggestion queries delegate scoring to the
// analyze command handler.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
