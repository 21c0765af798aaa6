package color

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForAccount_Deterministic(t *testing.T) {
	first := ForAccount("acct-abc123")
	second := ForAccount("acct-abc123")

	assert.Equal(t, first, second)
}

func TestForAccount_HexFormat(t *testing.T) {
	hexColor := regexp.MustCompile(`^#[0-9A-F]{6}$`)

	for _, id := range []string{"acct-abc123", "acct-xyz789", "", "a"} {
		assert.Regexp(t, hexColor, ForAccount(id))
	}
}

func TestForAccount_VariesByAccount(t *testing.T) {
	// Different IDs should usually land on different hues.
	a := ForAccount("acct-alice")
	b := ForAccount("acct-bob")

	assert.NotEqual(t, a, b)
}
