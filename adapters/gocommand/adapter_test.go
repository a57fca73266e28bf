package gocommand

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/goliatone/go-command"

	membership "github.com/goliatone/go-membership"
	"github.com/goliatone/go-membership/devkit"
	"github.com/goliatone/go-membership/login"
)

type okMessage struct{}

func (okMessage) Type() string { return "membership.command.ok" }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "" }

type failingMessage struct{}

func (failingMessage) Type() string { return "membership.command.fail" }

func (failingMessage) Validate() error { return errors.New("invalid payload") }

func TestValidateMessageContract(t *testing.T) {
	if err := ValidateMessageContract(okMessage{}); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
	if err := ValidateMessageContract(invalidMessage{}); err == nil {
		t.Fatalf("expected empty type to fail contract validation")
	}
	if err := ValidateMessageContract(failingMessage{}); err == nil {
		t.Fatalf("expected Validate() failure to bubble")
	}
}

func TestRegisterFacadeDispatchWiring(t *testing.T) {
	adapter := devkit.NewFakeTransportAdapter(
		devkit.JSONResponse(http.StatusOK, `{"results":[{"value":{"active_memberships":["m1"]}}]}`),
		devkit.JSONResponse(http.StatusOK, `{"results":[{"value":{"active_memberships":["m1"]}}]}`),
	)
	roles := login.NewMemoryRoleStore()
	facade, err := membership.New(context.Background(), membership.Config{
		Flock:     "acme",
		APIKey:    "k",
		GrantRole: "member",
	}, membership.WithTransport(adapter), membership.WithRoleAssigner(roles))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	registry := NewRegistryAdapter(command.NewRegistry())
	subscriptions, err := RegisterFacade(registry, facade)
	if err != nil {
		t.Fatalf("register facade: %v", err)
	}
	defer subscriptions.Unsubscribe()
	if err := registry.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}

	decision, err := ApplyLoginMembership(context.Background(), membership.User{ID: "u1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("dispatch login command: %v", err)
	}
	if decision != membership.DecisionGranted {
		t.Fatalf("expected granted decision, got %q", decision)
	}
	if !roles.HasRole("u1", "member") {
		t.Fatalf("expected grant role to be assigned")
	}

	member, err := HasActiveMembership(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("dispatch membership query: %v", err)
	}
	if !member {
		t.Fatalf("expected active membership")
	}
}

func TestRegisterFacadeRequiresDependencies(t *testing.T) {
	if _, err := RegisterFacade(nil, nil); err == nil {
		t.Fatalf("expected registry error")
	}
	if _, err := RegisterFacade(NewRegistryAdapter(nil), nil); err == nil {
		t.Fatalf("expected facade error")
	}
}
