package util

import "database/sql"

// NullString stores "" as NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringPtr stores a nil pointer as NULL and keeps "" as "".
func NullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullStringToPtr is the inverse of NullStringPtr.
func NullStringToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// BoolToInt64 encodes a flag for SQLite INTEGER columns.
func BoolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
