package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-membership/core"
)

func TestRESTAdapter_SendsHeadersAndKeepsRawQuery(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("X-Sheepcrm-Session-Expiry", "2026-10-18T10:00:00Z")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	res, err := adapter.Do(context.Background(), core.TransportRequest{
		URL:     server.URL + "/acme/contact/mapreduce/?email__startswithi=a%2Bb%40c.com",
		Headers: map[string]string{"Authorization": "Bearer k"},
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "Bearer k" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotQuery != "email__startswithi=a%2Bb%40c.com" {
		t.Fatalf("expected raw query to be preserved, got %q", gotQuery)
	}
	if res.StatusCode != http.StatusOK || string(res.Body) != `{"results":[]}` {
		t.Fatalf("unexpected response: %d %q", res.StatusCode, res.Body)
	}
	if value, ok := HeaderValue(res.Headers, "x-sheepcrm-session-expiry"); !ok || value != "2026-10-18T10:00:00Z" {
		t.Fatalf("expected case-insensitive header lookup, got %q %v", value, ok)
	}
}

func TestRESTAdapter_ResponseLimitReturnsRichError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("12345"))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	adapter.MaxResponseBodyBytes = 4

	_, err := adapter.Do(context.Background(), core.TransportRequest{Method: http.MethodGet, URL: server.URL})
	if err == nil {
		t.Fatalf("expected response body limit error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %q", rich.Category)
	}
	if rich.TextCode != core.ErrorTransportFailure {
		t.Fatalf("expected %q text code, got %q", core.ErrorTransportFailure, rich.TextCode)
	}
	if rich.Code != http.StatusBadGateway {
		t.Fatalf("expected %d code, got %d", http.StatusBadGateway, rich.Code)
	}
}

func TestRESTAdapter_TimeoutIsTransportFailure(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	adapter := NewRESTAdapter(server.Client())
	_, err := adapter.Do(context.Background(), core.TransportRequest{URL: server.URL, Timeout: 50 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if kind := core.ErrorKindOf(err); kind != core.ErrorKindTransportFailure {
		t.Fatalf("expected transport failure kind, got %q", kind)
	}
}

func TestRESTAdapter_NilReturnsRichError(t *testing.T) {
	var adapter *RESTAdapter
	_, err := adapter.Do(context.Background(), core.TransportRequest{})
	if err == nil {
		t.Fatalf("expected nil adapter error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.TextCode != core.ErrorInternal {
		t.Fatalf("expected %q text code, got %q", core.ErrorInternal, rich.TextCode)
	}
}

func TestRESTAdapter_RequiresURL(t *testing.T) {
	_, err := NewRESTAdapter(nil).Do(context.Background(), core.TransportRequest{URL: "  "})
	if err == nil {
		t.Fatalf("expected missing url error")
	}
}
