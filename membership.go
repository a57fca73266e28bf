package membership

import (
	"github.com/goliatone/go-membership/core"
	"github.com/goliatone/go-membership/login"
)

type Config = core.Config

type User = login.User

type Decision = login.Decision

type RoleAssigner = core.RoleAssigner

type TransportAdapter = core.TransportAdapter

type MetricsRecorder = core.MetricsRecorder

type ConfigProvider = core.ConfigProvider

type OptionsResolver = core.OptionsResolver

const (
	DecisionSkipped   = login.DecisionSkipped
	DecisionUnchanged = login.DecisionUnchanged
	DecisionGranted   = login.DecisionGranted
	DecisionRevoked   = login.DecisionRevoked
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// SystemErrorMessage is the message to show end users for a failed CRM call.
func SystemErrorMessage(err error) string {
	code := core.ErrorTextCode(err)
	if code == "" {
		code = core.ErrorInternal
	}
	return core.SystemErrorMessage(code)
}
