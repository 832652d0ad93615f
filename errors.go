package rubycron

import apperrors "github.com/dometto/rubycron/internal/errors"

// IsConfigLoad reports whether err means a configuration file or URL could
// not be read or parsed.
func IsConfigLoad(err error) bool { return apperrors.IsConfigLoad(err) }

// IsValidation reports whether err means the resolved configuration failed
// the sanity check.
func IsValidation(err error) bool { return apperrors.IsValidation(err) }

// IsPolicyAbort reports whether err means the exit-on policy stopped the run.
func IsPolicyAbort(err error) bool { return apperrors.IsPolicyAbort(err) }

// IsTaskCrash reports whether err means the task failed outside of the
// diagnostics API under an exit-on policy that covers errors.
func IsTaskCrash(err error) bool { return apperrors.IsTaskCrash(err) }

// IsReportDelivery reports whether err means the report could not be
// rendered or mailed.
func IsReportDelivery(err error) bool { return apperrors.IsReportDelivery(err) }

// ErrorField returns the configuration key a validation error refers to, or
// "" when err names none.
func ErrorField(err error) string { return apperrors.GetField(err) }
