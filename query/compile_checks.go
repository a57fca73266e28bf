package query

import (
	gocmd "github.com/goliatone/go-command"
)

var _ gocmd.Querier[HasActiveMembershipMessage, bool] = (*HasActiveMembershipQuery)(nil)
