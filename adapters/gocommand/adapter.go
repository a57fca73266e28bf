package gocommand

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	membership "github.com/goliatone/go-membership"
	membershipcommand "github.com/goliatone/go-membership/command"
	membershipquery "github.com/goliatone/go-membership/query"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) Register(handler any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(handler)
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.Initialize()
}

// Subscriptions groups the dispatcher subscriptions created for a facade.
type Subscriptions []commanddispatcher.Subscription

func (s Subscriptions) Unsubscribe() {
	for _, subscription := range s {
		if subscription != nil {
			subscription.Unsubscribe()
		}
	}
}

// RegisterFacade subscribes the facade handlers on the go-command dispatcher
// and records them in the registry. Subscriptions are global to the
// dispatcher; callers unsubscribe when the facade goes away.
func RegisterFacade(
	adapter *RegistryAdapter,
	facade *membership.Facade,
	runnerOpts ...runner.Option,
) (Subscriptions, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if facade == nil {
		return nil, fmt.Errorf("gocommand: facade is required")
	}
	cmd := facade.Commands().ApplyLoginMembership
	qry := facade.Queries().HasActiveMembership

	subscriptions := Subscriptions{
		commanddispatcher.SubscribeCommand(cmd, runnerOpts...),
		commanddispatcher.SubscribeQuery(qry, runnerOpts...),
	}
	for _, handler := range []any{cmd, qry} {
		if err := adapter.Register(handler); err != nil {
			subscriptions.Unsubscribe()
			return nil, err
		}
	}
	return subscriptions, nil
}

// ApplyLoginMembership dispatches the login command and returns the decision
// the handler stored.
func ApplyLoginMembership(ctx context.Context, user membership.User) (membership.Decision, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	collector := command.NewResult[membership.Decision]()
	err := commanddispatcher.Dispatch(
		command.ContextWithResult(ctx, collector),
		membershipcommand.ApplyLoginMembershipMessage{User: user},
	)
	decision, ok := collector.Load()
	if !ok {
		decision = membership.DecisionUnchanged
	}
	return decision, err
}

func HasActiveMembership(ctx context.Context, email string) (bool, error) {
	return commanddispatcher.Query[membershipquery.HasActiveMembershipMessage, bool](
		ctx,
		membershipquery.HasActiveMembershipMessage{Email: email},
	)
}
