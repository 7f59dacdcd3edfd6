package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Go Basics", "go-basics"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Crème Brûlée Recipes", "creme-brulee-recipes"},
		{"C++ for C# developers", "c-for-c-developers"},
		{"one two three four five six seven", "one-two-three-four-five"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}
