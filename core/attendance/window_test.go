package attendance

import (
	"testing"
	"time"
)

func newTestSession(date, startTime string, duration int, isActive bool) Session {
	return Session{
		ID:        "s1",
		ClassID:   "c1",
		Date:      date,
		StartTime: startTime,
		Duration:  duration,
		IsActive:  isActive,
	}
}

func localTime(t *testing.T, value string) time.Time {
	t.Helper()
	tm, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local)
	if err != nil {
		t.Fatalf("localTime() failed: %v", err)
	}
	return tm
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		s    Session
		now  string
		want Bucket
	}{
		{name: "active mid-window", s: newTestSession("2024-01-15", "09:00", 90, true), now: "2024-01-15T09:30", want: BucketActive},
		{name: "active at start", s: newTestSession("2024-01-15", "09:00", 90, true), now: "2024-01-15T09:00", want: BucketActive},
		{name: "active at end (inclusive)", s: newTestSession("2024-01-15", "09:00", 90, true), now: "2024-01-15T10:30", want: BucketActive},
		{name: "upcoming same day", s: newTestSession("2024-01-15", "09:00", 90, true), now: "2024-01-15T08:00", want: BucketUpcoming},
		{name: "past after end", s: newTestSession("2024-01-15", "09:00", 90, true), now: "2024-01-15T10:31", want: BucketPast},
		{name: "past when deactivated mid-window", s: newTestSession("2024-01-15", "09:00", 90, false), now: "2024-01-15T09:30", want: BucketPast},
		{name: "past on a later day", s: newTestSession("2024-01-15", "09:00", 90, true), now: "2024-01-17T09:30", want: BucketPast},
		// a still-active session dated tomorrow matches no bucket today
		{name: "none for future-dated active", s: newTestSession("2024-01-16", "09:00", 90, true), now: "2024-01-15T09:30", want: BucketNone},
		{name: "past for future-dated inactive", s: newTestSession("2024-01-16", "09:00", 90, false), now: "2024-01-15T09:30", want: BucketPast},
		{name: "none for unparsable date, active", s: newTestSession("not-a-date", "09:00", 90, true), now: "2024-01-15T09:30", want: BucketNone},
		{name: "past for unparsable date, inactive", s: newTestSession("not-a-date", "09:00", 90, false), now: "2024-01-15T09:30", want: BucketPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.s, localTime(t, tt.now)); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_exclusivity(t *testing.T) {
	// any (session, instant) pair lands in exactly one bucket
	sessions := []Session{
		newTestSession("2024-01-15", "09:00", 90, true),
		newTestSession("2024-01-15", "09:00", 90, false),
		newTestSession("2024-01-16", "09:00", 90, true),
	}
	instants := []string{"2024-01-15T08:00", "2024-01-15T09:30", "2024-01-15T11:00", "2024-01-16T09:30"}

	for _, s := range sessions {
		for _, now := range instants {
			b := Classify(s, localTime(t, now))
			switch b {
			case BucketNone, BucketActive, BucketUpcoming, BucketPast: // pass
			default:
				t.Errorf("Classify(%v, %v) = %v; not a known bucket", s.Date, now, b)
			}
		}
	}
}

func TestTimeRemaining(t *testing.T) {
	s := newTestSession("2024-01-15", "09:00", 90, true)

	tests := []struct {
		name string
		s    Session
		now  string
		want string
	}{
		{name: "hours and minutes", s: s, now: "2024-01-15T09:05", want: "1h 25m remaining"},
		{name: "minutes only", s: s, now: "2024-01-15T09:50", want: "40m remaining"},
		{name: "one minute", s: s, now: "2024-01-15T10:29", want: "1m remaining"},
		{name: "expired at end", s: s, now: "2024-01-15T10:30", want: "Expired"},
		{name: "expired after end", s: s, now: "2024-01-15T11:00", want: "Expired"},
		{name: "expired on unparsable date", s: newTestSession("oops", "09:00", 90, true), now: "2024-01-15T09:30", want: "Expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeRemaining(tt.s, localTime(t, tt.now)); got != tt.want {
				t.Errorf("TimeRemaining() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionStartEnd(t *testing.T) {
	s := newTestSession("2024-01-15", "09:00", 90, true)

	start, err := SessionStart(s)
	if err != nil {
		t.Fatalf("SessionStart() error = %v", err)
	}
	if want := localTime(t, "2024-01-15T09:00"); !start.Equal(want) {
		t.Errorf("SessionStart() = %v, want %v", start, want)
	}

	end, err := SessionEnd(s)
	if err != nil {
		t.Fatalf("SessionEnd() error = %v", err)
	}
	if want := localTime(t, "2024-01-15T10:30"); !end.Equal(want) {
		t.Errorf("SessionEnd() = %v, want %v", end, want)
	}

	if _, err = SessionStart(newTestSession("2024-01-15", "junk", 90, true)); err == nil {
		t.Error("SessionStart() expected an error for an unparsable start time")
	}
}
