package app

import "time"

// TimeLayout renders DD.MM.YYYY HH:MM:SS on a 24 hour clock.
const TimeLayout = "02.01.2006 15:04:05"

// FormatTime formats t for the clock label.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// Clock returns the current time. Tests substitute a deterministic one.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
