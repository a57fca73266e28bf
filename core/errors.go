package core

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorConfigurationMissing = "MEMBERSHIP_CONFIGURATION_MISSING"
	ErrorTransportFailure     = "MEMBERSHIP_TRANSPORT_FAILURE"
	ErrorInternal             = "MEMBERSHIP_INTERNAL_ERROR"
	ErrorBadInput             = "MEMBERSHIP_BAD_INPUT"

	// ErrorBadResponse marks a CRM response body that could not be decoded.
	ErrorBadResponse = "SBR"
	// ErrorQueryByEmailInvalid marks a structurally invalid query by email response.
	ErrorQueryByEmailInvalid = "VQE"
)

type ErrorKind string

const (
	ErrorKindUnknown              ErrorKind = "unknown"
	ErrorKindConfigurationMissing ErrorKind = "configuration_missing"
	ErrorKindTransportFailure     ErrorKind = "transport_failure"
	ErrorKindValidationFailure    ErrorKind = "validation_failure"
	ErrorKindBadInput             ErrorKind = "bad_input"
	ErrorKindInternal             ErrorKind = "internal"
)

// SystemErrorMessage is the user-safe message shown for CRM failures. Only the
// stable code is exposed.
func SystemErrorMessage(code string) string {
	return fmt.Sprintf(
		"There is a temporary problem with our systems (code %s). Please try again later. Sorry for any inconvenience.",
		strings.TrimSpace(code),
	)
}

func ConfigurationMissingError(metadata map[string]any) error {
	err := goerrors.New("membership: flock and/or API key not set", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorConfigurationMissing)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func BadResponseError(source error, metadata map[string]any) error {
	var err *goerrors.Error
	if source != nil {
		err = goerrors.Wrap(source, goerrors.CategoryExternal, SystemErrorMessage(ErrorBadResponse))
	} else {
		err = goerrors.New(SystemErrorMessage(ErrorBadResponse), goerrors.CategoryExternal)
	}
	err = err.WithCode(http.StatusBadGateway).WithTextCode(ErrorBadResponse)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func ValidationFailureError(code string, metadata map[string]any) error {
	err := goerrors.New(SystemErrorMessage(code), goerrors.CategoryExternal).
		WithCode(http.StatusBadGateway).
		WithTextCode(code)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// BadInputError rejects a caller-supplied value before any request is made.
func BadInputError(field string, message string) error {
	return goerrors.NewValidation("membership: invalid input", goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}

func InternalError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorInternal)
}

// ErrorKindOf classifies an error returned by the membership core.
func ErrorKindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return ErrorKindUnknown
	}
	switch rich.TextCode {
	case ErrorConfigurationMissing:
		return ErrorKindConfigurationMissing
	case ErrorTransportFailure, ErrorBadResponse:
		return ErrorKindTransportFailure
	case ErrorQueryByEmailInvalid:
		return ErrorKindValidationFailure
	case ErrorInternal:
		return ErrorKindInternal
	case ErrorBadInput:
		return ErrorKindBadInput
	}
	if rich.Category == goerrors.CategoryExternal {
		return ErrorKindTransportFailure
	}
	return ErrorKindUnknown
}

// ErrorTextCode returns the stable text code of a rich error, or "".
func ErrorTextCode(err error) string {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return ""
	}
	return rich.TextCode
}
