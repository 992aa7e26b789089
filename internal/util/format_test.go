package util

import (
	"testing"
	"time"
)

func TestFormatTimestamp_FixedWidth(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))
	got := FormatTimestamp(at)
	if got != "2026-01-02T02:04:05.000Z" {
		t.Errorf("FormatTimestamp() = %q", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 0, "abc"},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := TruncateRunes(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int]string{500: "500", 1500: "1.5K", 1500000: "1.5M"}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ts   string
		want string
	}{
		{"2026-10-17T11:59:30.000Z", "just now"},
		{"2026-10-17T11:45:00.000Z", "15m ago"},
		{"2026-10-17T09:00:00.000Z", "3h ago"},
		{"2026-10-15T12:00:00.000Z", "2d ago"},
		{"garbage", "-"},
	}
	for _, tt := range tests {
		if got := FormatAgo(tt.ts, now); got != tt.want {
			t.Errorf("FormatAgo(%q) = %q, want %q", tt.ts, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("session-aaa-bbb"); got != "session-" {
		t.Errorf("ShortID() = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID() = %q", got)
	}
}
