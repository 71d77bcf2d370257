package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Python", "python"},
		{"  React Hooks  ", "react-hooks"},
		{"C++ / C#", "c-c"},
		{"Node.js & Express!!", "node-js-express"},
		{"--already-a-slug--", "already-a-slug"},
		{"Python Decorators Quiz", "python-decorators-quiz"},
		{"Ünïcode Tëst", "n-code-t-st"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"Explain Python decorators", "  --Web   Development--  ", "ASP.NET Core 8", "a_b_c", "日本語 quiz", "x", "-",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}

func TestNewULID(t *testing.T) {
	a, b := NewULID(), NewULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, IsULID(a))
	assert.False(t, IsULID("not-a-ulid"))
}

func TestSQLHelpers(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)
	assert.Equal(t, "x", StringToNullString("x").String)
	assert.False(t, IntToNullInt64(0).Valid)
	assert.Equal(t, int64(3), IntToNullInt64(3).Int64)
	assert.Equal(t, ":2, :3, :4", OracleBinds(2, 3))
	assert.Equal(t, "", OracleBinds(1, 0))
}
