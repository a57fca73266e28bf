package membership

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	gocmd "github.com/goliatone/go-command"
	membershipcommand "github.com/goliatone/go-membership/command"
	"github.com/goliatone/go-membership/core"
	"github.com/goliatone/go-membership/devkit"
	"github.com/goliatone/go-membership/login"
	membershipquery "github.com/goliatone/go-membership/query"
)

func TestNew_ResolvesConfigLayers(t *testing.T) {
	provider := core.NewCfgxConfigProvider(core.StaticRawConfigLoader{Values: map[string]any{
		"flock":      " Acme ",
		"api_key":    "from-config",
		"grant_role": "member",
		"timeout":    2,
	}})

	facade, err := New(context.Background(), Config{APIKey: " runtime-key "}, WithConfigProvider(provider))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	cfg := facade.Config()
	if cfg.Flock != "acme" {
		t.Fatalf("expected normalized flock, got %q", cfg.Flock)
	}
	if cfg.APIKey != "runtime-key" {
		t.Fatalf("expected runtime api key to win, got %q", cfg.APIKey)
	}
	if cfg.GrantRole != "member" {
		t.Fatalf("expected grant role from config, got %q", cfg.GrantRole)
	}
	if cfg.Timeout != core.MinTimeoutSeconds {
		t.Fatalf("expected timeout clamped to %d, got %d", core.MinTimeoutSeconds, cfg.Timeout)
	}
	if cfg.APIURL != core.DefaultAPIURL {
		t.Fatalf("expected default api url, got %q", cfg.APIURL)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	if _, err := New(context.Background(), Config{APIURL: "not a url"}); err == nil {
		t.Fatalf("expected invalid api url to be rejected")
	}
}

func TestFacade_CommandsAndQueriesShareWiring(t *testing.T) {
	adapter := devkit.NewFakeTransportAdapter(
		devkit.JSONResponse(http.StatusOK, `{"results":[{"value":{"active_memberships":["m1"]}}]}`),
		devkit.JSONResponse(http.StatusOK, `{"results":[]}`),
	)
	roles := login.NewMemoryRoleStore()
	roles.Seed("u1", "no_access")
	logger := devkit.NewCaptureLogger()

	facade, err := New(context.Background(), Config{
		Flock:      "acme",
		APIKey:     "k",
		GrantRole:  "member",
		RevokeRole: "no_access",
		Timeout:    5,
	}, WithTransport(adapter), WithRoleAssigner(roles), WithLogger(logger))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	collector := gocmd.NewResult[login.Decision]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)
	err = facade.Commands().ApplyLoginMembership.Execute(ctx, membershipcommand.ApplyLoginMembershipMessage{
		User: User{ID: "u1", Email: "a@b.com"},
	})
	if err != nil {
		t.Fatalf("apply login membership: %v", err)
	}
	if decision, ok := collector.Load(); !ok || decision != DecisionGranted {
		t.Fatalf("expected granted decision, got %q %v", decision, ok)
	}
	if !roles.HasRole("u1", "member") || roles.HasRole("u1", "no_access") {
		t.Fatalf("expected member role swap")
	}

	member, err := facade.Queries().HasActiveMembership.Query(context.Background(), membershipquery.HasActiveMembershipMessage{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("query membership: %v", err)
	}
	if member {
		t.Fatalf("expected second scripted response to report no membership")
	}
	if adapter.Calls() != 2 {
		t.Fatalf("expected two transport calls, got %d", adapter.Calls())
	}
}

func TestFacade_MissingConnectionDetails(t *testing.T) {
	adapter := devkit.NewFakeTransportAdapter()
	logger := devkit.NewCaptureLogger()
	facade, err := New(context.Background(), Config{}, WithTransport(adapter), WithLogger(logger))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	if !logger.Has("warn", "membership checks will fail") {
		t.Fatalf("expected startup warning")
	}

	decision, err := facade.OnLogin(context.Background(), User{ID: "u1", Email: "a@b.com"})
	if core.ErrorKindOf(err) != core.ErrorKindConfigurationMissing {
		t.Fatalf("expected configuration missing, got %v", err)
	}
	if decision != DecisionUnchanged {
		t.Fatalf("expected unchanged decision, got %q", decision)
	}
	if adapter.Calls() != 0 {
		t.Fatalf("expected no transport calls, got %d", adapter.Calls())
	}
}

func TestSystemErrorMessage(t *testing.T) {
	msg := SystemErrorMessage(core.ValidationFailureError(core.ErrorQueryByEmailInvalid, nil))
	if !strings.Contains(msg, "(code VQE)") {
		t.Fatalf("expected VQE code in message, got %q", msg)
	}
	msg = SystemErrorMessage(errors.New("boom"))
	if !strings.Contains(msg, core.ErrorInternal) {
		t.Fatalf("expected internal code fallback, got %q", msg)
	}
}

func TestNilFacade(t *testing.T) {
	var facade *Facade
	if _, err := facade.HasActiveMembership(context.Background(), "a@b.com"); err == nil {
		t.Fatalf("expected error from nil facade")
	}
	if facade.Commands().ApplyLoginMembership != nil || facade.Queries().HasActiveMembership != nil {
		t.Fatalf("expected empty handlers from nil facade")
	}
}
