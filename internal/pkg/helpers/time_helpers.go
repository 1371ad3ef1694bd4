package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Use the global logger here, assuming logger might not be configured when this is called.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// MillisToTime converts a millisecond epoch value, the representation exams
// exchange at the API boundary, to a UTC time.Time.
func MillisToTime(millis int64) time.Time {
	return time.UnixMilli(millis).UTC()
}

// TimeToMillis converts a time.Time to a millisecond epoch value.
func TimeToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// TimePtrToMillis converts a nullable time to a nullable millisecond epoch value.
func TimePtrToMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	millis := t.UnixMilli()
	return &millis
}
