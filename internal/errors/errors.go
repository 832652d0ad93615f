package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a category of job harness error.
type ErrorCode string

const (
	// ErrCodeConfigLoad indicates a configuration source could not be read or parsed.
	ErrCodeConfigLoad ErrorCode = "config_load"
	// ErrCodeValidation indicates the resolved configuration failed the sanity check.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodePolicyAbort indicates the exit-on policy stopped the run on purpose.
	ErrCodePolicyAbort ErrorCode = "policy_abort"
	// ErrCodeTaskCrash indicates the task failed outside of the diagnostics API.
	ErrCodeTaskCrash ErrorCode = "task_crash"
	// ErrCodeReportDelivery indicates the report could not be rendered or sent.
	ErrCodeReportDelivery ErrorCode = "report_delivery"
	// ErrCodeInternal indicates a programming error inside the harness.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the configuration key that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		if strings.HasPrefix(e.Message, e.Cause.Error()) {
			return e.Message
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ConfigLoad creates a new ConfigLoad error.
func ConfigLoad(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConfigLoad,
		Message: message,
	}
}

// ConfigLoadf creates a new ConfigLoad error with formatted message.
func ConfigLoadf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeConfigLoad,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a new Validation error for a specific configuration key.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// PolicyAbort creates a new PolicyAbort error.
func PolicyAbort(message string) *AppError {
	return &AppError{
		Code:    ErrCodePolicyAbort,
		Message: message,
	}
}

// TaskCrash wraps a task failure. The message is the recorded crash trace,
// which already starts with the failure itself.
func TaskCrash(err error, trace string) *AppError {
	if trace == "" {
		trace = "task crashed"
	}
	return Wrap(err, ErrCodeTaskCrash, trace)
}

// ReportDelivery wraps a report rendering or delivery failure.
func ReportDelivery(err error, message string) *AppError {
	return Wrap(err, ErrCodeReportDelivery, message)
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// MessageTemplate describes a lazily formatted error message used with Wrapf.
type MessageTemplate struct {
	format string
	args   []any
}

// Messagef creates a lazily formatted message template for Wrapf.
func Messagef(format string, args ...any) MessageTemplate {
	return MessageTemplate{
		format: format,
		args:   args,
	}
}

func (mt MessageTemplate) String() string {
	if len(mt.args) == 0 {
		return mt.format
	}
	return fmt.Sprintf(mt.format, mt.args...)
}

// WrapTemplate wraps an existing error with an AppError using a preconstructed message template.
func WrapTemplate(err error, code ErrorCode, template MessageTemplate) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: template.String(),
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return WrapTemplate(err, code, Messagef(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsConfigLoad checks if an error is a ConfigLoad error.
func IsConfigLoad(err error) bool {
	return isCode(err, ErrCodeConfigLoad)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsPolicyAbort checks if an error is a PolicyAbort error.
func IsPolicyAbort(err error) bool {
	return isCode(err, ErrCodePolicyAbort)
}

// IsTaskCrash checks if an error is a TaskCrash error.
func IsTaskCrash(err error) bool {
	return isCode(err, ErrCodeTaskCrash)
}

// IsReportDelivery checks if an error is a ReportDelivery error.
func IsReportDelivery(err error) bool {
	return isCode(err, ErrCodeReportDelivery)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
