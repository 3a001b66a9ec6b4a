package policy_test

import (
	"testing"

	"hubb-assist/internal/shared/policy"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Run("accepts letters and digits", func(t *testing.T) {
		assert.NoError(t, policy.ValidatePassword("abc123"))
	})

	t.Run("rejects too short", func(t *testing.T) {
		assert.ErrorIs(t, policy.ValidatePassword("a1b2c"), policy.ErrWeakPassword)
	})

	t.Run("rejects letters only", func(t *testing.T) {
		assert.ErrorIs(t, policy.ValidatePassword("abcdef"), policy.ErrWeakPassword)
	})

	t.Run("rejects digits only", func(t *testing.T) {
		assert.ErrorIs(t, policy.ValidatePassword("123456"), policy.ErrWeakPassword)
	})
}
