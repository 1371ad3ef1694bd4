package helpers

import (
	"testing"
	"time"
)

func TestMillisRoundTrip(t *testing.T) {
	millis := int64(1767225600000)
	if got := TimeToMillis(MillisToTime(millis)); got != millis {
		t.Fatalf("round trip = %d, want %d", got, millis)
	}
}

func TestMillisToTimeIsUTC(t *testing.T) {
	tm := MillisToTime(0)
	if tm.Location() != time.UTC {
		t.Fatalf("location = %v, want UTC", tm.Location())
	}
	if !tm.Equal(time.Unix(0, 0)) {
		t.Fatalf("MillisToTime(0) = %v, want epoch", tm)
	}
}

func TestTimePtrToMillis(t *testing.T) {
	if got := TimePtrToMillis(nil); got != nil {
		t.Fatalf("nil input produced %v", got)
	}

	tm := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	got := TimePtrToMillis(&tm)
	if got == nil || *got != tm.UnixMilli() {
		t.Fatalf("got %v, want %d", got, tm.UnixMilli())
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90m", time.Hour); got != 90*time.Minute {
		t.Fatalf("got %v, want 90m", got)
	}
	if got := ParseDuration("not-a-duration", time.Hour); got != time.Hour {
		t.Fatalf("got %v, want the default", got)
	}
}
