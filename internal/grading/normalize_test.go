package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "PARIS", want: "paris"},
		{name: "punctuation stripped", input: "Paris!", want: "paris"},
		{name: "diacritics stripped", input: "parís", want: "paris"},
		{name: "mixed", input: "  ¿Año   Nuevo?  ", want: "ano nuevo"},
		{name: "whitespace collapsed", input: "new\t york\n city", want: "new york city"},
		{name: "digits kept", input: "42", want: "42"},
		{name: "hyphenated", input: "twenty - one", want: "twenty one"},
		{name: "empty", input: "", want: ""},
		{name: "punctuation only", input: "?!...", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Paris!", "  São  Paulo  ", "a - b", "QUESTION 3: True",
		"½ + ½", "crème brûlée", "",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeEquivalence(t *testing.T) {
	assert.Equal(t, Normalize("PARIS"), Normalize("Paris!"))
	assert.Equal(t, Normalize("parís"), Normalize("Paris!"))
	assert.Equal(t, "paris", Normalize("parís"))
}
