package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-membership/login"
)

type LoginHandler interface {
	OnLogin(ctx context.Context, user login.User) (login.Decision, error)
}

type ApplyLoginMembershipCommand struct {
	handler LoginHandler
}

func NewApplyLoginMembershipCommand(handler LoginHandler) *ApplyLoginMembershipCommand {
	return &ApplyLoginMembershipCommand{handler: handler}
}

// Execute runs the login hook for msg.User. The decision is stored in the
// context result collector even when the hook fails, so callers can tell an
// untouched user apart from a revoked one.
func (c *ApplyLoginMembershipCommand) Execute(ctx context.Context, msg ApplyLoginMembershipMessage) error {
	if c == nil || c.handler == nil {
		return commandDependencyError("command: login handler is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	decision, err := c.handler.OnLogin(ctx, msg.User)
	storeResult(ctx, decision)
	return err
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
