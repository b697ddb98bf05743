package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFilter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare word gets delimiters", "error", "/error/"},
		{"already delimited unchanged", "/error/", "/error/"},
		{"delimited with flags unchanged", "/error/i", "/error/i"},
		{"single char unchanged", "x", "x"},
		{"single slash unchanged", "/", "/"},
		{"ip token substituted", "$ip$ timeout", `/\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3} timeout/`},
		{"ip token in delimited text", "/$ip$/", `/\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}/`},
		{"empty unchanged", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFilter(tt.in))
		})
	}
}

func TestCompile(t *testing.T) {
	t.Run("bare pattern matches unanchored", func(t *testing.T) {
		rule, err := Compile("ERROR")
		require.NoError(t, err)
		assert.Equal(t, "ERROR", rule.Text)
		assert.Equal(t, "/ERROR/", rule.Source)
		assert.True(t, rule.Match([]byte("2024-01-01 ERROR something broke")))
		assert.False(t, rule.Match([]byte("2024-01-01 INFO all good")))
	})

	t.Run("case-insensitive flag", func(t *testing.T) {
		rule, err := Compile("/error/i")
		require.NoError(t, err)
		assert.True(t, rule.Match([]byte("ERROR here")))
		assert.True(t, rule.Match([]byte("error here")))
	})

	t.Run("ip token matches dotted quads", func(t *testing.T) {
		rule, err := Compile("$ip$ timeout")
		require.NoError(t, err)
		assert.True(t, rule.Match([]byte("peer 10.0.200.1 timeout")))
		assert.False(t, rule.Match([]byte("peer host-a timeout")))
	})

	t.Run("invalid pattern fails", func(t *testing.T) {
		_, err := Compile("[unclosed")
		require.ErrorIs(t, err, ErrBadPattern)
	})

	t.Run("unknown flag fails", func(t *testing.T) {
		_, err := Compile("/error/z")
		require.ErrorIs(t, err, ErrBadPattern)
	})
}

func TestCompileAllFailsFast(t *testing.T) {
	rules, err := CompileAll([]string{"good", "[bad"})
	require.ErrorIs(t, err, ErrBadPattern)
	assert.Nil(t, rules)

	rules, err = CompileAll([]string{"one", "two"})
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}
