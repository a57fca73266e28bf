package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newCRMServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer k" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func setCRMEnv(t *testing.T, server *httptest.Server) {
	t.Helper()
	t.Setenv("SHEEP_FLOCK", "Acme")
	t.Setenv("SHEEP_API_KEY", "k")
	t.Setenv("SHEEP_GRANT_ROLE", "member")
	t.Setenv("SHEEP_REVOKE_ROLE", "no_access")
	t.Setenv("SHEEP_TIMEOUT", "5")
	t.Setenv("SHEEP_DEBUG", "no")
	t.Setenv("SHEEP_API_URL", server.URL+"/api/v1/")
	t.Setenv("SHEEP_ROLE_DB_DRIVER", "")
	t.Setenv("SHEEP_ROLE_DB_DSN", "")
}

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	cmd.SetContext(context.Background())
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_GrantsMember(t *testing.T) {
	setCRMEnv(t, newCRMServer(t, `{"results":[{"value":{"active_memberships":["m1"]}}]}`))

	stdout, _, err := execute("u1", "a@b.com", "--role", "no_access")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, "user u1: granted") {
		t.Fatalf("expected granted decision, got %q", stdout)
	}
	if !strings.Contains(stdout, "roles: member\n") {
		t.Fatalf("expected revoke role swapped for grant role, got %q", stdout)
	}
}

func TestRootCommand_SkipsAdministrators(t *testing.T) {
	setCRMEnv(t, newCRMServer(t, `{"results":[]}`))

	stdout, _, err := execute("admin", "a@b.com", "--role", "administrator")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, "user admin: skipped") {
		t.Fatalf("expected skipped decision, got %q", stdout)
	}
}

func TestRootCommand_ReportsSystemErrorCode(t *testing.T) {
	setCRMEnv(t, newCRMServer(t, `{"results":[{"name":"no value"}]}`))

	stdout, stderr, err := execute("u1", "a@b.com", "--role", "member")
	if err == nil {
		t.Fatalf("expected error exit")
	}
	if !strings.Contains(stdout, "user u1: unchanged") {
		t.Fatalf("expected unchanged decision, got %q", stdout)
	}
	if !strings.Contains(stderr, "(code VQE)") {
		t.Fatalf("expected user-safe VQE message, got %q", stderr)
	}
}

func TestRootCommand_UsesSQLRoleStore(t *testing.T) {
	setCRMEnv(t, newCRMServer(t, `{"results":[]}`))
	t.Setenv("SHEEP_ROLE_DB_DRIVER", "sqlite3")
	t.Setenv("SHEEP_ROLE_DB_DSN", fmt.Sprintf("file:membership-cmd-%d?mode=memory&cache=shared", time.Now().UnixNano()))

	stdout, _, err := execute("u1", "a@b.com")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, "user u1: revoked") || !strings.Contains(stdout, "roles: no_access\n") {
		t.Fatalf("expected revoke role persisted, got %q", stdout)
	}
}

func TestRootCommand_CheckOnlyLeavesRolesUntouched(t *testing.T) {
	setCRMEnv(t, newCRMServer(t, `{"results":[{"value":{"active_memberships":["m1"]}}]}`))

	stdout, _, err := execute("u1", "a@b.com", "--check-only", "--role", "no_access")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, "a@b.com active membership: true") {
		t.Fatalf("expected membership status, got %q", stdout)
	}
	if strings.Contains(stdout, "roles:") {
		t.Fatalf("expected no role changes in check-only mode, got %q", stdout)
	}
}

func TestRootCommand_RequiresTwoArgs(t *testing.T) {
	if _, _, err := execute("u1"); err == nil {
		t.Fatalf("expected argument error")
	}
}

func TestEnvConfig_DebugFlag(t *testing.T) {
	for value, want := range map[string]bool{"yes": true, "YES": true, "true": true, "no": false, "": false} {
		if got := (envConfig{Debug: value}).debugEnabled(); got != want {
			t.Fatalf("debug %q: expected %v, got %v", value, want, got)
		}
	}
}

func TestEnvConfig_LoadRawOmitsUnset(t *testing.T) {
	raw, err := envConfig{Flock: "acme", Timeout: 9, Debug: "yes"}.LoadRaw(context.Background())
	if err != nil {
		t.Fatalf("load raw: %v", err)
	}
	if raw["flock"] != "acme" || raw["timeout"] != 9 || raw["debug"] != true {
		t.Fatalf("unexpected raw config %#v", raw)
	}
	if _, ok := raw["api_key"]; ok {
		t.Fatalf("expected unset api key to be omitted")
	}
}
