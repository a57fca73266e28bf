package sheep

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-membership/core"
)

const queryByEmailPath = "/contact/mapreduce/?email__startswithi="

const (
	metricQueryByEmailTotal    = "membership.query_by_email.total"
	metricQueryByEmailDuration = "membership.query_by_email.duration_ms"
)

type flockOptions struct {
	transport      core.TransportAdapter
	logger         core.Logger
	loggerProvider core.LoggerProvider
	metrics        core.MetricsRecorder
}

type FlockOption func(*flockOptions)

func WithTransport(adapter core.TransportAdapter) FlockOption {
	return func(o *flockOptions) {
		o.transport = adapter
	}
}

func WithLogger(logger core.Logger) FlockOption {
	return func(o *flockOptions) {
		o.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) FlockOption {
	return func(o *flockOptions) {
		o.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) FlockOption {
	return func(o *flockOptions) {
		o.metrics = recorder
	}
}

// FlockAPI talks to the CRM at flock level using the system API key. The
// configuration is captured by value and never changes afterwards, so a
// FlockAPI is safe for concurrent use.
type FlockAPI struct {
	cfg       core.Config
	client    *Client
	validator *Validator
	uris      *URIParser
	logger    core.Logger
	metrics   core.MetricsRecorder
}

func NewFlockAPI(cfg core.Config, opts ...FlockOption) *FlockAPI {
	options := flockOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}
	logger := options.logger
	if logger == nil && options.loggerProvider != nil {
		logger = options.loggerProvider.GetLogger("membership.sheep")
	}
	logger = core.EnsureLogger(logger)
	metrics := options.metrics
	if metrics == nil {
		metrics = core.NopMetricsRecorder{}
	}
	return &FlockAPI{
		cfg:       cfg,
		client:    NewClient(options.transport, logger, cfg.Debug),
		validator: NewValidator(logger),
		uris:      NewURIParser(logger),
		logger:    logger,
		metrics:   metrics,
	}
}

func (f *FlockAPI) Config() core.Config {
	return f.cfg
}

func (f *FlockAPI) GrantRole() string {
	return f.cfg.GrantRole
}

func (f *FlockAPI) RevokeRole() string {
	return f.cfg.RevokeRole
}

// Timeout returns the configured request timeout in seconds.
func (f *FlockAPI) Timeout() int {
	return f.cfg.Timeout
}

// URIPart extracts a segment of a CRM resource URI.
func (f *FlockAPI) URIPart(uri string, part URIPart) (string, bool) {
	return f.uris.Part(uri, part)
}

// HasConnectionDetails reports whether flock and API key are set. It does not
// test that they work.
func (f *FlockAPI) HasConnectionDetails() bool {
	if f.cfg.HasConnectionDetails() {
		return true
	}
	core.LogWithLevel(context.Background(), f.logger, "error", "sheep: flock and/or API key not set", map[string]any{
		"flock_set":   f.cfg.Flock != "",
		"api_key_set": f.cfg.APIKey != "",
	})
	return false
}

// HasActiveMembership queries the CRM for contacts whose email starts with
// email (case-insensitive) and reports whether any of them holds an active
// membership. Errors are returned unchanged and no retry is attempted.
func (f *FlockAPI) HasActiveMembership(ctx context.Context, email string) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !f.HasConnectionDetails() {
		return false, core.ConfigurationMissingError(map[string]any{"flock": f.cfg.Flock})
	}
	// An empty prefix matches every contact in the flock.
	email = strings.TrimSpace(email)
	if email == "" {
		core.LogWithLevel(ctx, f.logger, "error", "sheep: email is required for query by email", map[string]any{
			"flock": f.cfg.Flock,
		})
		return false, core.BadInputError("email", "email is required")
	}

	startedAt := time.Now()
	outcome, err := f.queryByEmail(ctx, email)
	f.observe(ctx, startedAt, err)
	if err != nil {
		core.LogWithLevel(ctx, f.logger, "error", "sheep: query by email returned an error", map[string]any{
			"flock":      f.cfg.Flock,
			"error":      err.Error(),
			"error_code": core.ErrorTextCode(err),
		})
		return false, err
	}

	// Non-200 payloads pass validation and read as "no membership", which
	// revokes on login. Surface them so a bad key is visible to operators.
	if outcome.StatusCode != http.StatusOK {
		core.LogWithLevel(ctx, f.logger, "warn", "sheep: query by email returned a non-200 status, treating as no membership", map[string]any{
			"flock":       f.cfg.Flock,
			"status_code": outcome.StatusCode,
		})
	}
	for _, result := range outcome.Payload.Get("results").Array() {
		memberships := result.Get("value.active_memberships")
		if memberships.IsArray() && memberships.Len() > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (f *FlockAPI) queryByEmail(ctx context.Context, email string) (Outcome, error) {
	target := f.FlockURL() + queryByEmailPath + url.QueryEscape(email)
	outcome, err := f.client.Execute(ctx, target, RequestArgs{
		Method: http.MethodGet,
		Headers: map[string]string{
			"Authorization": AuthorizationHeader(f.cfg.APIKey),
		},
		Timeout: f.cfg.RequestTimeout(),
	})
	if err != nil {
		return Outcome{}, err
	}
	return f.validator.ValidateQueryResponse(outcome)
}

// FlockURL is the API root for the configured flock.
func (f *FlockAPI) FlockURL() string {
	return BaseURL(f.cfg.APIURL, f.cfg.Flock)
}

func (f *FlockAPI) observe(ctx context.Context, startedAt time.Time, err error) {
	status := "success"
	if err != nil {
		status = string(core.ErrorKindOf(err))
	}
	tags := map[string]string{"status": status, "flock": f.cfg.Flock}
	f.metrics.IncCounter(ctx, metricQueryByEmailTotal, 1, core.CloneTags(tags))
	f.metrics.ObserveHistogram(ctx, metricQueryByEmailDuration, float64(time.Since(startedAt).Milliseconds()), core.CloneTags(tags))
}

var _ core.MembershipChecker = (*FlockAPI)(nil)
