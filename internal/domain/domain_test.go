package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSuggestions(t *testing.T) {
	suggestions := DefaultSuggestions()
	require.Len(t, suggestions, len(AllMoods)*4)

	seen := make(map[string]bool)
	perMood := make(map[string]int)
	for _, s := range suggestions {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		assert.Equal(t, perMood[s.Mood], s.Position)
		perMood[s.Mood]++
		assert.NotEmpty(t, s.TagList())
	}
	for _, mood := range AllMoods {
		assert.Equal(t, 4, perMood[string(mood)], "mood %s", mood)
	}

	first := suggestions[0]
	assert.Equal(t, "happy-ice-cream-sundae", first.ID)
	assert.Equal(t, "Ice Cream Sundae", first.Name)
	assert.Equal(t, []string{"sweet", "cold", "dessert"}, first.TagList())
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Ice Cream Sundae":     "ice-cream-sundae",
		"Wood-fired Pizza":     "wood-fired-pizza",
		"Mac and Cheese":       "mac-and-cheese",
		"  Odd -- spacing!  ":  "odd-spacing",
		"Oatmeal with Berries": "oatmeal-with-berries",
	}
	for in, want := range tests {
		assert.Equal(t, want, slugify(in), in)
	}
}

func TestNormalizeMood(t *testing.T) {
	assert.Equal(t, "happy", NormalizeMood("  HaPpY "))
	assert.Equal(t, "", NormalizeMood("   "))
}

func TestTagList_Malformed(t *testing.T) {
	assert.Nil(t, (&FoodSuggestion{}).TagList())
	assert.Nil(t, (&FoodSuggestion{Tags: []byte(`{"not":"a list"}`)}).TagList())
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewValidationError("Mood is required"))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "Mood is required", validation.Message)
}
