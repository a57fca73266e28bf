package sheep

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/goliatone/go-membership/core"
	"github.com/goliatone/go-membership/transport"
)

const (
	// DefaultRequestTimeout applies when a request carries no timeout. It is a
	// transport safety net, unrelated to core.MinTimeoutSeconds.
	DefaultRequestTimeout = 15 * time.Second

	SessionExpiryHeader = "x-sheepcrm-session-expiry"
)

// AuthorizationHeader returns the bearer authorization header value for token.
// The token shape is not validated.
func AuthorizationHeader(token string) string {
	return "Bearer " + token
}

// RequestHeader returns the full "Authorization: Bearer <token>" header line.
func RequestHeader(token string) string {
	return "Authorization: " + AuthorizationHeader(token)
}

// BaseURL joins the API root and the flock. The flock is not escaped.
func BaseURL(apiURL string, flock string) string {
	if strings.TrimSpace(apiURL) == "" {
		apiURL = core.DefaultAPIURL
	}
	return apiURL + flock
}

type RequestArgs struct {
	Method  string
	Headers map[string]string
	Timeout time.Duration
}

// Outcome is the result of a single CRM call. A new Outcome is produced per
// request and never shared.
type Outcome struct {
	StatusCode    int
	Payload       Payload
	SessionExpiry string
	Headers       map[string]string
}

// HasSessionExpiry reports whether the CRM sent a session expiry signal.
func (o Outcome) HasSessionExpiry() bool {
	return o.SessionExpiry != ""
}

func (o Outcome) dump() map[string]any {
	return map[string]any{
		"status_code":    o.StatusCode,
		"session_expiry": o.SessionExpiry,
		"headers":        core.RedactHeaders(o.Headers),
		"payload":        o.Payload.Raw(),
	}
}

type Client struct {
	transport core.TransportAdapter
	logger    core.Logger
	debug     bool
}

func NewClient(adapter core.TransportAdapter, logger core.Logger, debug bool) *Client {
	if adapter == nil {
		adapter = transport.NewRESTAdapter(nil)
	}
	return &Client{
		transport: adapter,
		logger:    core.EnsureLogger(logger),
		debug:     debug,
	}
}

// Execute performs one request against url. Transport failures are returned
// as is; a body that is not JSON yields the SBR error.
func (c *Client) Execute(ctx context.Context, url string, args RequestArgs) (Outcome, error) {
	if c == nil || c.transport == nil {
		return Outcome{}, core.InternalError("sheep: client transport is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if args.Timeout <= 0 {
		args.Timeout = DefaultRequestTimeout
	}
	method := strings.ToUpper(strings.TrimSpace(args.Method))
	if method == "" {
		method = http.MethodGet
	}

	res, err := c.transport.Do(ctx, core.TransportRequest{
		Method:  method,
		URL:     url,
		Headers: cloneHeaders(args.Headers),
		Timeout: args.Timeout,
	})

	if c.debug {
		c.traceRequest(ctx, url, method, args, res, err)
	}
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{
		StatusCode: res.StatusCode,
		Headers:    cloneHeaders(res.Headers),
	}
	if expiry, ok := transport.HeaderValue(res.Headers, SessionExpiryHeader); ok {
		outcome.SessionExpiry = strings.TrimSpace(expiry)
	}

	payload, ok := ParsePayload(res.Body)
	if !ok || payload.result.Type == gjson.Null {
		return Outcome{}, core.BadResponseError(nil, map[string]any{
			"status_code": res.StatusCode,
			"body_bytes":  len(res.Body),
		})
	}
	outcome.Payload = payload
	return outcome, nil
}

func (c *Client) traceRequest(
	ctx context.Context,
	url string,
	method string,
	args RequestArgs,
	res core.TransportResponse,
	err error,
) {
	fields := map[string]any{
		"url":        url,
		"method":     method,
		"headers":    core.RedactHeaders(args.Headers),
		"timeout_ms": args.Timeout.Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
	} else {
		fields["status_code"] = res.StatusCode
		fields["response_headers"] = core.RedactHeaders(res.Headers)
		fields["response_body"] = string(res.Body)
	}
	core.LogWithLevel(ctx, c.logger, "debug", "sheep: api call", fields)
}

func cloneHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for key, value := range headers {
		out[key] = value
	}
	return out
}
