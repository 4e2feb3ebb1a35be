package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "ABC1234", NormalizePlate("abc1234 "))
	assert.Equal(t, "ABC1D23", NormalizePlate(" abc1d23"))
	assert.Equal(t, "ABC1234", NormalizePlate("ABC1234"))
	assert.Equal(t, "", NormalizePlate("   "))
}

func TestNormalizeCategoryName(t *testing.T) {
	assert.Equal(t, "Carro", NormalizeCategoryName("  Carro "))
	assert.Equal(t, "Moto Grande", NormalizeCategoryName("Moto Grande"))
	assert.Equal(t, "", NormalizeCategoryName(" "))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Maria Souza", "maria"))
	assert.True(t, ContainsFold("maria@example.com", "EXAMPLE"))
	assert.True(t, ContainsFold("ABC1234", "c12"))
	assert.False(t, ContainsFold("Maria", "jose"))
	assert.True(t, ContainsFold("anything", ""))
}

func TestNewNullString(t *testing.T) {
	assert.Nil(t, NewNullString(""))
	value := NewNullString("x")
	assert.NotNil(t, value)
	assert.Equal(t, "x", *value)
}
