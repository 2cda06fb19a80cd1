package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupBrand(t *testing.T) {
	b, ok := LookupBrand("man_matters")
	require.True(t, ok)
	assert.Equal(t, "Man Matters", b.Label)
	assert.Contains(t, b.Themes, "hair_loss")

	_, ok = LookupBrand("acme")
	assert.False(t, ok)
}

func TestBrands_ReturnsCopy(t *testing.T) {
	list := Brands()
	require.Len(t, list, 3)
	assert.Equal(t, "bebodywise", list[0].Key)

	list[0].Key = "changed"
	assert.Equal(t, "bebodywise", Brands()[0].Key)
}

func TestGenerationError(t *testing.T) {
	var err error = fmt.Errorf("wrapped: %w", &GenerationError{Brand: "little_joys", Status: 500, Detail: "ANTHROPIC_API_KEY is not set"})

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, 500, genErr.Status)
	assert.Equal(t, "generating brief for little_joys: ANTHROPIC_API_KEY is not set", genErr.Error())

	bare := &GenerationError{Brand: "bebodywise", Status: 502}
	assert.Equal(t, "generating brief for bebodywise: status 502", bare.Error())
}
