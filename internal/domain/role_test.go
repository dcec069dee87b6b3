package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("producer")
	assert.NoError(t, err)
	assert.Equal(t, RoleProducer, role)

	role, err = ParseRole("buyer")
	assert.NoError(t, err)
	assert.Equal(t, RoleBuyer, role)

	for _, raw := range []string{"", "admin", "Producer", "BUYER", "seller"} {
		_, err := ParseRole(raw)
		assert.ErrorIs(t, err, ErrInvalidRole, "raw %q", raw)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleProducer.Valid())
	assert.True(t, RoleBuyer.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}
