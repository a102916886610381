package discord

import (
	"time"

	"transbot/pkg/tz"
)

const timestampLayout = "2006/01/02 15:04"

// FormatTimestamp renders t in Taipei time; the zero time renders as "".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(tz.Taipei).Format(timestampLayout)
}
