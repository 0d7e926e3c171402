// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string   `json:"name" validate:"required"`
	Colors []string `json:"colors,omitempty" validate:"dive,oneof=red green"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "x", Colors: []string{"red", "green"}}))
}

func TestFirst_NamesJSONField(t *testing.T) {
	err := Struct(sample{Colors: []string{"red"}})
	fe, ok := First(err)
	require.True(t, ok)
	assert.Equal(t, "name", fe.Field())
	assert.Equal(t, "required", fe.Tag())
}

func TestFirst_DiveElement(t *testing.T) {
	err := Struct(sample{Name: "x", Colors: []string{"red", "blue"}})
	fe, ok := First(err)
	require.True(t, ok)
	assert.Equal(t, "colors[1]", fe.Field())
	assert.Equal(t, "colors", Param(fe))
	assert.Equal(t, "blue", fe.Value())
	assert.Equal(t, "oneof", fe.Tag())
	assert.Equal(t, "red green", fe.Param())
}

func TestFirst_NoFieldErrors(t *testing.T) {
	_, ok := First(errors.New("plain"))
	assert.False(t, ok)
	_, ok = First(nil)
	assert.False(t, ok)
}
