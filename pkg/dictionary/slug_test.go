package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "pathological character table",
			input: "-a.b:c/d$e*f%g&h&amp;i+jklmnéóōo',?()pqrstá@uvwxyz½1234567890",
			want:  "a-bcdsefpercentgandhandiandjklmneooopqrstaatuvwxyzhalf1234567890",
		},
		{name: "plain headword", input: "proper", want: "proper"},
		{name: "spaces become hyphens", input: "Main Source", want: "main-source"},
		{name: "surrounding whitespace stripped", input: "  Kurtis Blow  ", want: "kurtis-blow"},
		{name: "leading apostrophe stripped once", input: "'bout it", want: "bout-it"},
		{name: "leading hyphen stripped once", input: "-ish", want: "ish"},
		{name: "apostrophes dropped", input: "Lookin' At The Front Door", want: "lookin-at-the-front-door"},
		{name: "periods become hyphens", input: "O.P.P", want: "o-p-p"},
		{name: "hash spelled out", input: "#1", want: "number1"},
		{name: "trailing hyphen stripped", input: "word.", want: "word"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}
