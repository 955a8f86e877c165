// Package rollback accumulates compensating actions for side effects that
// cannot ride inside a database transaction, such as objects uploaded to a
// media store or rows created before a later step failed. Handlers push a
// compensation after each completed side effect and clear the stack once the
// whole operation commits; if the operation fails, Run executes the recorded
// compensations in reverse order on a best-effort basis.
package rollback

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var logger = otelslog.NewLogger("pkg/rollback")

type action struct {
	label string
	fn    func(ctx context.Context) error
}

// Stack is a LIFO list of compensating actions. It is intended for a single
// operation on a single goroutine and is not safe for concurrent use.
type Stack struct {
	actions []action
}

func NewStack() *Stack {
	return &Stack{}
}

// Add records a compensation for a side effect that just succeeded.
// The label names the effect being undone, for logging.
func (s *Stack) Add(label string, fn func(ctx context.Context) error) {
	if fn == nil {
		return
	}
	s.actions = append(s.actions, action{label: label, fn: fn})
}

// Clear drops all recorded compensations. Call it once the operation has
// fully succeeded so a deferred Run becomes a no-op.
func (s *Stack) Clear() {
	s.actions = nil
}

func (s *Stack) Len() int {
	return len(s.actions)
}

// Run executes the recorded compensations in reverse order. A failing
// compensation is logged and skipped; the remaining ones still run. The
// original operation error is the caller's to return, so Run never
// escalates.
func (s *Stack) Run(ctx context.Context) {
	for i := len(s.actions) - 1; i >= 0; i-- {
		act := s.actions[i]
		if err := act.fn(ctx); err != nil {
			logger.ErrorContext(ctx, "rollback action failed",
				slog.String("action", act.label),
				slog.String("error", err.Error()),
			)
		}
	}
	s.actions = nil
}
