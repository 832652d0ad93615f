package job

import "github.com/dometto/rubycron/internal/domain/model"

// AbortsOn reports whether the exit-on policy stops the run when a diagnostic
// of the given kind is captured. Messages never abort.
func AbortsOn(exitOn model.Policy, kind model.DiagnosticKind) bool {
	switch kind {
	case model.DiagnosticWarning:
		return exitOn == model.PolicyWarning || exitOn == model.PolicyAll
	case model.DiagnosticError:
		return exitOn == model.PolicyError || exitOn == model.PolicyAll
	default:
		return false
	}
}

// ShouldReport decides whether a run's report is sent. A report goes out
// unless mail-on is none, or nothing went wrong and mail-on is not all.
// Both warning and error thresholds therefore send as soon as either count
// is non-zero.
func ShouldReport(mailOn model.Policy, counts model.DiagnosticCounts) bool {
	if mailOn == model.PolicyNone {
		return false
	}
	if mailOn == model.PolicyAll {
		return true
	}
	return !counts.Empty()
}
