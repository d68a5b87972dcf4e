package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactShape struct {
	Phone        string `validate:"phone"`
	Subscription string `validate:"subscription"`
}

func TestValidator_CustomTags(t *testing.T) {
	v := InitValidator()
	require.NotNil(t, v)

	assert.NoError(t, v.Struct(contactShape{Phone: "(555) 123-4567", Subscription: "pro"}))
	assert.NoError(t, v.Struct(contactShape{Phone: "+40 721 000 000", Subscription: "starter"}))
	assert.Error(t, v.Struct(contactShape{Phone: "call me", Subscription: "starter"}))
	assert.Error(t, v.Struct(contactShape{Phone: "(555) 123-4567", Subscription: "gold"}))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@b.com"))
	assert.False(t, IsValidEmail("a-b.com"))
	assert.False(t, IsValidEmail(""))
}
