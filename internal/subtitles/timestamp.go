package subtitles

import (
	"fmt"
	"math"
)

type clockParts struct {
	hours, minutes, seconds int
	fraction                float64
}

// splitClock breaks seconds into clock fields with floored division. Negative
// values clamp to zero.
func splitClock(seconds float64) clockParts {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	hourRem := math.Mod(seconds, 3600)
	minuteRem := math.Mod(hourRem, 60)
	return clockParts{
		hours:    int((seconds - hourRem) / 3600),
		minutes:  int((hourRem - minuteRem) / 60),
		seconds:  int(math.Mod(seconds, 60)),
		fraction: math.Mod(seconds, 1),
	}
}

// TimestampSRT renders HH:MM:SS,mmm with the fraction truncated.
func TimestampSRT(seconds float64) string {
	p := splitClock(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", p.hours, p.minutes, p.seconds, int(p.fraction*1000))
}

// TimestampVTT renders HH:MM:SS.mmm with the fraction truncated.
func TimestampVTT(seconds float64) string {
	p := splitClock(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", p.hours, p.minutes, p.seconds, int(p.fraction*1000))
}

// TimestampASS renders H:MM:SS.cc with unpadded hours and truncated centiseconds.
func TimestampASS(seconds float64) string {
	p := splitClock(seconds)
	return fmt.Sprintf("%d:%02d:%02d.%02d", p.hours, p.minutes, p.seconds, int(p.fraction*100))
}
