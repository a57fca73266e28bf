package sheep

import (
	"context"
	"net/http"

	"github.com/goliatone/go-membership/core"
)

// Finding is one structural complaint about a response. Fatal findings make
// the response unusable; others are only logged.
type Finding struct {
	Message string
	Fatal   bool
}

// ResponseCheck inspects an outcome and reports every anomaly it sees.
type ResponseCheck func(outcome Outcome) []Finding

type Validator struct {
	logger core.Logger
}

func NewValidator(logger core.Logger) *Validator {
	return &Validator{logger: core.EnsureLogger(logger)}
}

// Validate runs every check against outcome. All findings are collected before
// deciding; when any is fatal the diagnostics are logged under heading and the
// error for textCode is returned. Otherwise outcome is returned unchanged.
func (v *Validator) Validate(heading string, textCode string, outcome Outcome, checks ...ResponseCheck) (Outcome, error) {
	findings := []Finding{}
	for _, check := range checks {
		if check == nil {
			continue
		}
		findings = append(findings, check(outcome)...)
	}
	if len(findings) == 0 {
		return outcome, nil
	}

	fatal := false
	messages := make([]string, 0, len(findings))
	for _, finding := range findings {
		messages = append(messages, finding.Message)
		if finding.Fatal {
			fatal = true
		}
	}

	level := "warn"
	if fatal {
		level = "error"
	}
	var logger core.Logger
	if v != nil {
		logger = v.logger
	}
	core.LogWithLevel(context.Background(), logger, level, "=== Sheep response validator: "+heading+" ===", map[string]any{
		"messages": messages,
		"response": outcome.dump(),
		"code":     textCode,
	})

	if fatal {
		return Outcome{}, core.ValidationFailureError(textCode, map[string]any{
			"status_code": outcome.StatusCode,
			"findings":    len(findings),
		})
	}
	return outcome, nil
}

// ValidateQueryResponse validates the query by email response (code VQE).
func (v *Validator) ValidateQueryResponse(outcome Outcome) (Outcome, error) {
	return v.Validate("Login response", core.ErrorQueryByEmailInvalid, outcome, QueryByEmailChecks()...)
}

// QueryByEmailChecks only inspects 200 responses: "results" must be an array
// and each element must carry "value". Error payloads are not modelled.
func QueryByEmailChecks() []ResponseCheck {
	return []ResponseCheck{checkQueryResults}
}

func checkQueryResults(outcome Outcome) []Finding {
	if outcome.StatusCode != http.StatusOK {
		return nil
	}
	results := outcome.Payload.Get("results")
	if !results.IsArray() {
		return []Finding{{Message: "Results array not present", Fatal: true}}
	}
	findings := []Finding{}
	for _, result := range results.Array() {
		if !result.Has("value") {
			findings = append(findings, Finding{Message: "Value array not present in result data", Fatal: true})
		}
	}
	return findings
}
