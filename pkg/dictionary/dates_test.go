package dictionary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2001", "2001-12-31"},
		{"2012-10", "2012-10-31"},
		{"1979-02", "1979-02-28"},
		{"1992-04", "1992-04-30"},
		{"1992-06", "1992-06-30"},
		{"1992-09", "1992-09-30"},
		{"1992-11", "1992-11-30"},
		{"1991-07-23", "1991-07-23"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CompleteDate(tt.input))
		})
	}
}

func TestCompleteDateLeapYearStillTwentyEight(t *testing.T) {
	// The completion policy is deliberately not leap-year aware.
	assert.Equal(t, "2000-02-28", CompleteDate("2000-02"))
}

func TestParseReleaseDate(t *testing.T) {
	got, err := ParseReleaseDate("1991-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1991, time.July, 31, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseReleaseDate("not a date")
	assert.Error(t, err)
}
