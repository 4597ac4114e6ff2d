package dictionary

import (
	"time"
)

// releaseDateLayout is the wire format for full release dates.
const releaseDateLayout = "2006-01-02"

// CompleteDate pads a partial release date string out to a full date.
// A year-only string gets "-12-31"; a year-month string gets the last day of
// the month, with February always treated as 28 days. Anything else is
// returned unchanged. Seeded records were completed with this exact policy,
// so the February-28 simplification is kept for compatibility.
func CompleteDate(partial string) string {
	switch len(partial) {
	case 4:
		return partial + "-12-31"
	case 7:
		switch partial[5:7] {
		case "02":
			return partial + "-28"
		case "04", "06", "09", "11":
			return partial + "-30"
		default:
			return partial + "-31"
		}
	default:
		return partial
	}
}

// ParseReleaseDate completes a possibly partial release date string and
// parses it into a calendar date.
func ParseReleaseDate(s string) (time.Time, error) {
	return time.Parse(releaseDateLayout, CompleteDate(s))
}
