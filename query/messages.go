package query

import (
	"strings"
)

const TypeHasActiveMembership = "membership.query.active"

type HasActiveMembershipMessage struct {
	Email string
}

func (HasActiveMembershipMessage) Type() string { return TypeHasActiveMembership }

func (m HasActiveMembershipMessage) Validate() error {
	if strings.TrimSpace(m.Email) == "" {
		return queryValidationError("email", "email is required")
	}
	return nil
}
