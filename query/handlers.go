package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-membership/core"
)

type HasActiveMembershipQuery struct {
	checker core.MembershipChecker
}

func NewHasActiveMembershipQuery(checker core.MembershipChecker) *HasActiveMembershipQuery {
	return &HasActiveMembershipQuery{checker: checker}
}

// Query validates msg and asks the checker. Checker errors are returned as is.
func (q *HasActiveMembershipQuery) Query(ctx context.Context, msg HasActiveMembershipMessage) (bool, error) {
	if q == nil || q.checker == nil {
		return false, queryDependencyError("query: membership checker is required")
	}
	if err := msg.Validate(); err != nil {
		return false, err
	}
	return q.checker.HasActiveMembership(ctx, strings.TrimSpace(msg.Email))
}
