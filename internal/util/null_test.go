package util

import (
	"database/sql"
	"testing"
)

func TestNullString(t *testing.T) {
	if NullString("").Valid {
		t.Error("empty string should be null")
	}
	if ns := NullString("x"); !ns.Valid || ns.String != "x" {
		t.Errorf("NullString(x) = %+v", ns)
	}
}

func TestNullStringPtrRoundTrip(t *testing.T) {
	if NullStringToPtr(NullStringPtr(nil)) != nil {
		t.Error("nil should round-trip to nil")
	}
	s := ""
	p := NullStringToPtr(NullStringPtr(&s))
	if p == nil || *p != "" {
		t.Errorf("empty non-nil string lost: %v", p)
	}
	if NullStringToPtr(sql.NullString{String: "ignored"}) != nil {
		t.Error("invalid value should be nil")
	}
}

func TestBoolToInt64(t *testing.T) {
	if BoolToInt64(true) != 1 || BoolToInt64(false) != 0 {
		t.Error("unexpected conversion")
	}
}
