package application

import "context"

// Command is a ranking request that produces a result and may emit domain events,
// such as analyzing a task list. CommandName is the dotted "context.action" label
// used in logs and metrics.
type Command interface {
	CommandName() string
}

// CommandHandler runs one command type. Handlers validate their input and return
// validation failures as errors rather than partial results.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}
