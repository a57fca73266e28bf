package login

import (
	"context"
	"slices"
	"strings"

	"github.com/goliatone/go-membership/core"
)

// AdministratorRole users are never touched by the login hook.
const AdministratorRole = "administrator"

type User struct {
	ID    string
	Email string
	Roles []string
}

func (u User) HasRole(role string) bool {
	role = strings.TrimSpace(role)
	if role == "" {
		return false
	}
	return slices.Contains(u.Roles, role)
}

type Decision string

const (
	// DecisionSkipped means the user is exempt from membership checks.
	DecisionSkipped Decision = "skipped"
	// DecisionUnchanged means the membership check failed and no role was touched.
	DecisionUnchanged Decision = "unchanged"
	DecisionGranted   Decision = "granted"
	DecisionRevoked   Decision = "revoked"
)

type Option func(*Handler)

func WithLogger(logger core.Logger) Option {
	return func(h *Handler) {
		h.logger = core.EnsureLogger(logger)
	}
}

func WithRoles(grantRole string, revokeRole string) Option {
	return func(h *Handler) {
		h.grantRole = strings.TrimSpace(grantRole)
		h.revokeRole = strings.TrimSpace(revokeRole)
	}
}

type Handler struct {
	checker    core.MembershipChecker
	roles      core.RoleAssigner
	grantRole  string
	revokeRole string
	logger     core.Logger
}

func NewHandler(checker core.MembershipChecker, roles core.RoleAssigner, opts ...Option) *Handler {
	handler := &Handler{
		checker: checker,
		roles:   roles,
		logger:  core.EnsureLogger(nil),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(handler)
	}
	return handler
}

// OnLogin runs after a successful authentication. Members get the grant role
// and lose the revoke role; everybody else gets the opposite. When the CRM
// cannot answer the user keeps whatever roles they had.
func (h *Handler) OnLogin(ctx context.Context, user User) (Decision, error) {
	if h == nil || h.checker == nil || h.roles == nil {
		return DecisionUnchanged, core.InternalError("login: handler requires a membership checker and role assigner")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if user.HasRole(AdministratorRole) {
		return DecisionSkipped, nil
	}

	member, err := h.checker.HasActiveMembership(ctx, strings.TrimSpace(user.Email))
	if err != nil {
		core.LogWithLevel(ctx, h.logger, "warn", "login: membership check failed, roles left unchanged", map[string]any{
			"user_id":    user.ID,
			"error_code": core.ErrorTextCode(err),
		})
		return DecisionUnchanged, err
	}

	decision := DecisionRevoked
	add, remove := h.revokeRole, h.grantRole
	if member {
		decision = DecisionGranted
		add, remove = h.grantRole, h.revokeRole
	}
	if add != "" {
		if err := h.roles.AddRole(ctx, user.ID, add); err != nil {
			return decision, err
		}
	}
	if remove != "" {
		if err := h.roles.RemoveRole(ctx, user.ID, remove); err != nil {
			return decision, err
		}
	}
	core.LogWithLevel(ctx, h.logger, "info", "login: membership roles applied", map[string]any{
		"user_id":  user.ID,
		"decision": string(decision),
	})
	return decision, nil
}
