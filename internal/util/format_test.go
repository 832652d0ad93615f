package util

import (
	"testing"
	"time"
)

func TestFormatRunDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "—"},
		{-time.Second, "—"},
		{500 * time.Microsecond, "500µs"},
		{1234567 * time.Microsecond, "1.234s"},
		{90*time.Second + 450*time.Millisecond, "1m30s"},
	}
	for _, tt := range tests {
		if got := FormatRunDuration(tt.in); got != tt.want {
			t.Errorf("FormatRunDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2014, 3, 9, 4, 5, 6, 0, loc)
	if got := FormatTimestamp(ts); got != "2014-03-09 04:05:06 +0100" {
		t.Fatalf("FormatTimestamp() = %q", got)
	}
	if got := FormatTimestamp(time.Time{}); got != "—" {
		t.Fatalf("FormatTimestamp(zero) = %q", got)
	}
}
