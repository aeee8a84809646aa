package clock

import "time"

// Clock supplies the current time to everything that depends on "today":
// KEPA expiry buckets, request days-open, overdue checks, therapy start
// dates. Production code uses System(); tests freeze time with Fixed.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func System() Clock { return systemClock{} }

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time { return f.t }

func Fixed(t time.Time) Clock { return fixedClock{t: t} }

// Today truncates the clock's current time to a date in UTC.
func Today(c Clock) time.Time {
	now := c.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
