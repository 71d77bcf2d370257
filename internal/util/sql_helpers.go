package util

import (
	"database/sql"
	"strconv"
	"strings"
)

// StringToNullString converts a string to sql.NullString.
// An empty string is treated as NULL.
func StringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// IntToNullInt64 treats zero as NULL.
func IntToNullInt64(i int) sql.NullInt64 {
	if i == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(i), Valid: true}
}

// OracleBinds returns n positional placeholders starting at :start, joined by
// commas, for building IN lists.
func OracleBinds(start, n int) string {
	binds := make([]string, n)
	for i := range binds {
		binds[i] = ":" + strconv.Itoa(start+i)
	}
	return strings.Join(binds, ", ")
}
