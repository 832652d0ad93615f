package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeValidation,
				Message: "This job has no name.",
			},
			want: "This job has no name.",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeConfigLoad,
				Message: "read config file",
				Cause:   errors.New("permission denied"),
			},
			want: "read config file: permission denied",
		},
		{
			name: "message already carries the cause",
			err: &AppError{
				Code:    ErrCodeTaskCrash,
				Message: "disk full\n\tcaused by *fs.PathError: open /tmp/x: no space left on device",
				Cause:   errors.New("disk full"),
			},
			want: "disk full\n\tcaused by *fs.PathError: open /tmp/x: no space left on device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeReportDelivery,
		Message: "send report",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name    string
		err     *AppError
		code    ErrorCode
		message string
	}{
		{"ConfigLoad", ConfigLoad("bad yaml"), ErrCodeConfigLoad, "bad yaml"},
		{"ConfigLoadf", ConfigLoadf("bad %s", "yaml"), ErrCodeConfigLoad, "bad yaml"},
		{"ValidationField", ValidationField("name", "no name"), ErrCodeValidation, "no name"},
		{"PolicyAbort", PolicyAbort("Configured to exit on error."), ErrCodePolicyAbort, "Configured to exit on error."},
		{"TaskCrash", TaskCrash(cause, "boom\n\tat main.run"), ErrCodeTaskCrash, "boom\n\tat main.run"},
		{"TaskCrash without trace", TaskCrash(cause, ""), ErrCodeTaskCrash, "task crashed"},
		{"ReportDelivery", ReportDelivery(cause, "deliver report"), ErrCodeReportDelivery, "deliver report"},
		{"Internal", Internal("executed twice"), ErrCodeInternal, "executed twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("%s().Code = %v, want %v", tt.name, tt.err.Code, tt.code)
			}
			if tt.err.Message != tt.message {
				t.Errorf("%s().Message = %v, want %v", tt.name, tt.err.Message, tt.message)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("mailto", "No To: header was set.")
	if err.Code != ErrCodeValidation {
		t.Errorf("ValidationField().Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if err.Field != "mailto" {
		t.Errorf("ValidationField().Field = %v, want %v", err.Field, "mailto")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeConfigLoad, "wrapped error")

	if err.Code != ErrCodeConfigLoad {
		t.Errorf("Wrap().Code = %v, want %v", err.Code, ErrCodeConfigLoad)
	}
	if err.Message != "wrapped error" {
		t.Errorf("Wrap().Message = %v, want %v", err.Message, "wrapped error")
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Wrap().Cause = %v, want %v", err.Cause, cause)
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "wrapped error"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := TaskCrash(nil, "trace"); err != nil {
		t.Errorf("TaskCrash(nil) = %v, want nil", err)
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("no such host")
	err := Wrapf(cause, ErrCodeConfigLoad, "fetch %s", "https://cfg.example/job.yml")
	if err.Message != "fetch https://cfg.example/job.yml" {
		t.Errorf("Wrapf().Message = %v", err.Message)
	}
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", PolicyAbort("Configured to exit on warning."))

	tests := []struct {
		name string
		fn   func(error) bool
		err  error
		want bool
	}{
		{"config load", IsConfigLoad, ConfigLoad("x"), true},
		{"config load mismatch", IsConfigLoad, ValidationField("name", "x"), false},
		{"validation", IsValidation, ValidationField("name", "x"), true},
		{"policy abort wrapped", IsPolicyAbort, wrapped, true},
		{"policy abort vs crash", IsPolicyAbort, TaskCrash(errors.New("x"), "x"), false},
		{"task crash", IsTaskCrash, TaskCrash(errors.New("x"), "x"), true},
		{"report delivery", IsReportDelivery, ReportDelivery(errors.New("x"), "send"), true},
		{"standard error", IsValidation, errors.New("standard error"), false},
		{"nil error", IsTaskCrash, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("predicate(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{
			name: "app error",
			err:  ValidationField("author", "no author"),
			want: ErrCodeValidation,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: "",
		},
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetField(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation field error",
			err:  ValidationField("author", "This job has no author."),
			want: "author",
		},
		{
			name: "error without field",
			err:  ConfigLoad("not a mapping"),
			want: "",
		},
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetField(tt.err); got != tt.want {
				t.Errorf("GetField() = %v, want %v", got, tt.want)
			}
		})
	}
}
