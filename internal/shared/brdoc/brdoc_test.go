package brdoc_test

import (
	"testing"

	"hubb-assist/internal/shared/brdoc"

	"github.com/stretchr/testify/assert"
)

func TestValidCPF(t *testing.T) {
	assert.True(t, brdoc.ValidCPF("529.982.247-25"))
	assert.True(t, brdoc.ValidCPF("52998224725"))

	assert.False(t, brdoc.ValidCPF("529.982.247-26"), "wrong check digit")
	assert.False(t, brdoc.ValidCPF("111.111.111-11"), "repeated digits")
	assert.False(t, brdoc.ValidCPF("1234567890"), "too short")
}

func TestValidCNPJ(t *testing.T) {
	assert.True(t, brdoc.ValidCNPJ("11.222.333/0001-81"))
	assert.True(t, brdoc.ValidCNPJ("11222333000181"))

	assert.False(t, brdoc.ValidCNPJ("11.222.333/0001-82"), "wrong check digit")
	assert.False(t, brdoc.ValidCNPJ("00.000.000/0000-00"), "repeated digits")
	assert.False(t, brdoc.ValidCNPJ("1122233300018"), "too short")
}
