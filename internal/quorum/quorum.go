// Package quorum turns an event's participant counts into a fill percentage
// and a coarse level used to pick badge text and colour.
package quorum

// DefaultMinimum is substituted for a missing minimum quorum.
const DefaultMinimum = 2

// Level is the coarse bucket of a fill percentage.
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
	Full   Level = "full"
)

// Level thresholds, exclusive upper bounds.
const (
	lowBelow    = 50
	mediumBelow = 80
	highBelow   = 100
)

// Percentage interpolates current between the quorum floor (0%) and the
// capacity ceiling (100%), rounding half up.
//
// Out-of-range inputs are clamped: negative counts count as zero and a
// minimum above capacity counts as capacity. When min == max there is no
// interpolation range, so the result is 0 until current reaches max.
func Percentage(current, max, min int) int {
	if max <= 0 {
		return 0
	}
	if current < 0 {
		current = 0
	}
	if min < 0 {
		min = 0
	}
	if min > max {
		min = max
	}

	if current >= max {
		return 100
	}
	if current <= min {
		return 0
	}

	span := max - min
	// floor(100*(current-min)/span + 0.5) in integers.
	return (200*(current-min) + span) / (2 * span)
}

// LevelOf buckets a percentage. Values outside [0,100] land in the nearest
// end bucket.
func LevelOf(percentage int) Level {
	switch {
	case percentage < lowBelow:
		return Low
	case percentage < mediumBelow:
		return Medium
	case percentage < highBelow:
		return High
	default:
		return Full
	}
}

// Reached reports whether current satisfies the minimum quorum.
func Reached(current, min int) bool {
	return current >= min
}
