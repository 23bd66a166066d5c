package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"asha@x.com",
		"asha.rao@example.co.in",
		"a+b@sub.domain.org",
	}
	for _, email := range valid {
		require.True(t, ValidateEmail(email), "expected valid: %s", email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"a@b",
		"@b.com",
		"a b@c.com",
		"a@b c.com",
		"a@.com",
	}
	for _, email := range invalid {
		require.False(t, ValidateEmail(email), "expected invalid: %s", email)
	}
}

func TestMinLen(t *testing.T) {
	require.True(t, MinLen("ab", 2))
	require.True(t, MinLen("  abc  ", 2))
	require.False(t, MinLen("a", 2))
	// 纯空白不算有效输入
	require.False(t, MinLen("   ", 1))
}
