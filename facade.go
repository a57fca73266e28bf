package membership

import (
	"context"
	"fmt"

	"github.com/goliatone/go-membership/adapters/gologger"
	membershipcommand "github.com/goliatone/go-membership/command"
	"github.com/goliatone/go-membership/core"
	"github.com/goliatone/go-membership/login"
	membershipquery "github.com/goliatone/go-membership/query"
	"github.com/goliatone/go-membership/sheep"
)

type Commands struct {
	ApplyLoginMembership *membershipcommand.ApplyLoginMembershipCommand
}

type Queries struct {
	HasActiveMembership *membershipquery.HasActiveMembershipQuery
}

type Facade struct {
	cfg      core.Config
	flock    *sheep.FlockAPI
	login    *login.Handler
	roles    core.RoleAssigner
	logger   core.Logger
	commands Commands
	queries  Queries
}

type Option func(*facadeOptions)

type facadeOptions struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	transport       core.TransportAdapter
	roles           core.RoleAssigner
	metrics         core.MetricsRecorder
}

func WithLogger(logger core.Logger) Option {
	return func(o *facadeOptions) {
		o.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(o *facadeOptions) {
		o.loggerProvider = provider
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(o *facadeOptions) {
		o.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(o *facadeOptions) {
		o.optionsResolver = resolver
	}
}

func WithTransport(adapter core.TransportAdapter) Option {
	return func(o *facadeOptions) {
		o.transport = adapter
	}
}

// WithRoleAssigner sets where the login hook writes roles. Defaults to an
// in-memory store.
func WithRoleAssigner(roles core.RoleAssigner) Option {
	return func(o *facadeOptions) {
		o.roles = roles
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(o *facadeOptions) {
		o.metrics = recorder
	}
}

// New resolves configuration (defaults < config provider < runtime) and wires
// the flock client, the login hook and its command/query handlers.
func New(ctx context.Context, runtime Config, opts ...Option) (*Facade, error) {
	options := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}

	cfg, err := core.ResolveConfig(ctx, runtime, options.configProvider, options.optionsResolver)
	if err != nil {
		return nil, fmt.Errorf("membership: resolve config: %w", err)
	}

	provider, logger := gologger.Resolve(gologger.RootLoggerName, options.loggerProvider, options.logger)
	roles := options.roles
	if roles == nil {
		roles = login.NewMemoryRoleStore()
	}

	flock := sheep.NewFlockAPI(cfg,
		sheep.WithTransport(options.transport),
		sheep.WithLogger(gologger.Component(provider, "sheep")),
		sheep.WithMetricsRecorder(options.metrics),
	)
	handler := login.NewHandler(flock, roles,
		login.WithRoles(cfg.GrantRole, cfg.RevokeRole),
		login.WithLogger(gologger.Component(provider, "login")),
	)

	facade := &Facade{
		cfg:    cfg,
		flock:  flock,
		login:  handler,
		roles:  roles,
		logger: core.EnsureLogger(logger),
	}
	facade.commands = Commands{
		ApplyLoginMembership: membershipcommand.NewApplyLoginMembershipCommand(handler),
	}
	facade.queries = Queries{
		HasActiveMembership: membershipquery.NewHasActiveMembershipQuery(flock),
	}

	if !cfg.HasConnectionDetails() {
		core.LogWithLevel(ctx, facade.logger, "warn", "membership: flock and/or API key not set, membership checks will fail", nil)
	}
	return facade, nil
}

func (f *Facade) Config() Config {
	if f == nil {
		return Config{}
	}
	return f.cfg
}

func (f *Facade) Flock() *sheep.FlockAPI {
	if f == nil {
		return nil
	}
	return f.flock
}

func (f *Facade) LoginHandler() *login.Handler {
	if f == nil {
		return nil
	}
	return f.login
}

func (f *Facade) Roles() core.RoleAssigner {
	if f == nil {
		return nil
	}
	return f.roles
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) HasActiveMembership(ctx context.Context, email string) (bool, error) {
	if f == nil || f.flock == nil {
		return false, core.InternalError("membership: facade is not initialized")
	}
	return f.flock.HasActiveMembership(ctx, email)
}

func (f *Facade) OnLogin(ctx context.Context, user User) (Decision, error) {
	if f == nil || f.login == nil {
		return DecisionUnchanged, core.InternalError("membership: facade is not initialized")
	}
	return f.login.OnLogin(ctx, user)
}
