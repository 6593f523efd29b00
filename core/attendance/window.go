package attendance

import (
	"fmt"
	"time"
)

// Bucket is a session's classification relative to a reference instant.
type Bucket int

const (
	// BucketNone covers the gap in the classification rule: a session dated on
	// another calendar day that is still flagged active and has not ended yet
	// belongs to no bucket. Callers treat it as its own state, never as Past
	// or Upcoming.
	BucketNone Bucket = iota
	BucketActive
	BucketUpcoming
	BucketPast
)

func (b Bucket) String() string {
	switch b {
	case BucketActive:
		return "active"
	case BucketUpcoming:
		return "upcoming"
	case BucketPast:
		return "past"
	}
	return "none"
}

// SessionStart composes the session's calendar date and wall-clock start time
// in the local timezone. No timezone conversion is applied.
func SessionStart(s Session) (time.Time, error) {
	return time.ParseInLocation(DateLayout+"T"+TimeLayout, s.Date+"T"+s.StartTime, time.Local)
}

// SessionEnd is SessionStart plus the session's duration.
func SessionEnd(s Session) (time.Time, error) {
	start, err := SessionStart(s)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(s.Duration) * time.Minute), nil
}

// Classify buckets a session relative to now:
//   - Active: flagged active, dated today, start <= now <= end
//   - Upcoming: flagged active, dated today, now < start
//   - Past: now > end, or no longer flagged active
//
// Exactly one bucket (or BucketNone) holds for any session and instant.
func Classify(s Session, now time.Time) Bucket {
	start, err := SessionStart(s)
	if err != nil {
		if !s.IsActive {
			return BucketPast
		}
		return BucketNone
	}
	end := start.Add(time.Duration(s.Duration) * time.Minute)

	if now.After(end) || !s.IsActive {
		return BucketPast
	}

	y1, m1, d1 := start.Date()
	y2, m2, d2 := now.Date()
	sameDay := y1 == y2 && m1 == m2 && d1 == d2
	if !sameDay {
		return BucketNone
	}

	if now.Before(start) {
		return BucketUpcoming
	}
	return BucketActive
}

// TimeRemaining formats the time left until the session ends, e.g.
// "1h 25m remaining" or "40m remaining". Zero or negative yields "Expired".
func TimeRemaining(s Session, now time.Time) string {
	end, err := SessionEnd(s)
	if err != nil {
		return "Expired"
	}
	remaining := end.Sub(now)
	if remaining <= 0 {
		return "Expired"
	}

	minutes := int(remaining / time.Minute)
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm remaining", hours, minutes%60)
	}
	return fmt.Sprintf("%dm remaining", minutes)
}
