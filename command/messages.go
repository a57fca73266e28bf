package command

import (
	"strings"

	"github.com/goliatone/go-membership/login"
)

const TypeApplyLoginMembership = "membership.command.login.apply"

type ApplyLoginMembershipMessage struct {
	User login.User
}

func (ApplyLoginMembershipMessage) Type() string { return TypeApplyLoginMembership }

func (m ApplyLoginMembershipMessage) Validate() error {
	if strings.TrimSpace(m.User.ID) == "" {
		return commandValidationError("user_id", "user id is required")
	}
	return nil
}
