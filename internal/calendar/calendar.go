// Package calendar provides working-time arithmetic over a fixed weekly
// pattern: converting wall-clock instants to elapsed working hours and back,
// skipping nights, weekends and the lunch break.
package calendar

import (
	"math"
	"time"
)

// Calendar holds a weekly working-time pattern. The working window and the
// lunch break are half-open intervals: [DayStart, DayEnd) minus
// [LunchStart, LunchEnd). All fields are minutes from midnight.
type Calendar struct {
	workDays   [7]bool // indexed by time.Weekday
	dayStart   int
	dayEnd     int
	lunchStart int
	lunchEnd   int
}

// Default returns the standard business calendar: Monday through Friday,
// 08:00-17:00 with lunch 12:00-13:00, i.e. 8 working hours per day.
func Default() *Calendar {
	c := &Calendar{
		dayStart:   8 * 60,
		dayEnd:     17 * 60,
		lunchStart: 12 * 60,
		lunchEnd:   13 * 60,
	}
	for d := time.Monday; d <= time.Friday; d++ {
		c.workDays[d] = true
	}
	return c
}

// HoursPerDay returns the number of effective working hours in one working day.
func (c *Calendar) HoursPerDay() float64 {
	return float64((c.dayEnd-c.dayStart)-(c.lunchEnd-c.lunchStart)) / 60
}

// IsWorkingTime reports whether t falls inside a working block. Granularity is
// one minute; seconds are ignored.
func (c *Calendar) IsWorkingTime(t time.Time) bool {
	if !c.workDays[t.Weekday()] {
		return false
	}
	m := minuteOf(t)
	if m < c.dayStart || m >= c.dayEnd {
		return false
	}
	if m >= c.lunchStart && m < c.lunchEnd {
		return false
	}
	return true
}

// NextWorkingTime returns the smallest working instant >= t. A t that is
// already working is returned unchanged (minus sub-minute precision).
func (c *Calendar) NextWorkingTime(t time.Time) time.Time {
	t = truncateMinute(t)
	for {
		if !c.workDays[t.Weekday()] {
			t = atMinute(t.AddDate(0, 0, 1), c.dayStart)
			continue
		}
		m := minuteOf(t)
		switch {
		case m < c.dayStart:
			return atMinute(t, c.dayStart)
		case m >= c.dayEnd:
			t = atMinute(t.AddDate(0, 0, 1), c.dayStart)
		case m >= c.lunchStart && m < c.lunchEnd:
			return atMinute(t, c.lunchEnd)
		default:
			return t
		}
	}
}

// PrevWorkingTime returns the position of the end of the working block at or
// before t: the largest instant t' <= t such that the minute just before t'
// is working time. It is the backward-walking mirror of NextWorkingTime and
// models "roll back to the end of the previous working block".
func (c *Calendar) PrevWorkingTime(t time.Time) time.Time {
	t = truncateMinute(t)
	for {
		if !c.workDays[t.Weekday()] {
			t = atMinute(t.AddDate(0, 0, -1), c.dayEnd)
			continue
		}
		m := minuteOf(t)
		switch {
		case m > c.dayEnd:
			return atMinute(t, c.dayEnd)
		case m > c.lunchEnd:
			return t
		case m > c.lunchStart:
			return atMinute(t, c.lunchStart)
		case m > c.dayStart:
			return t
		default:
			t = atMinute(t.AddDate(0, 0, -1), c.dayEnd)
		}
	}
}

// AddHours advances start by the given number of working hours, skipping
// non-working time. The start is normalized onto a working instant first.
// Negative hours walk backward via SubHours. The result may land exactly on a
// block boundary (a finish at 17:00 is legitimate); callers that need a start
// instant normalize through NextWorkingTime themselves.
func (c *Calendar) AddHours(start time.Time, hours float64) time.Time {
	if hours < 0 {
		return c.SubHours(start, -hours)
	}
	// Whole minutes internally, so long chains of additions cannot drift.
	remaining := int(math.Round(hours * 60))
	cur := c.NextWorkingTime(start)
	for remaining > 0 {
		m := minuteOf(cur)
		blockEnd := c.dayEnd
		if m < c.lunchStart {
			blockEnd = c.lunchStart
		}
		avail := blockEnd - m
		if remaining <= avail {
			return cur.Add(time.Duration(remaining) * time.Minute)
		}
		remaining -= avail
		cur = c.NextWorkingTime(atMinute(cur, blockEnd))
	}
	return cur
}

// SubHours walks backward from end by the given number of working hours.
// Negative hours delegate to AddHours, so signed durations are symmetric.
func (c *Calendar) SubHours(end time.Time, hours float64) time.Time {
	if hours < 0 {
		return c.AddHours(end, -hours)
	}
	remaining := int(math.Round(hours * 60))
	cur := c.PrevWorkingTime(end)
	for remaining > 0 {
		m := minuteOf(cur)
		blockStart := c.dayStart
		if m > c.lunchEnd {
			blockStart = c.lunchEnd
		}
		avail := m - blockStart
		if remaining <= avail {
			return cur.Add(-time.Duration(remaining) * time.Minute)
		}
		remaining -= avail
		cur = c.PrevWorkingTime(atMinute(cur, blockStart))
	}
	return cur
}

// HoursBetween returns the number of working hours contained in [start, end).
// Returns 0 when start >= end.
func (c *Calendar) HoursBetween(start, end time.Time) float64 {
	start = truncateMinute(start)
	end = truncateMinute(end)
	if !start.Before(end) {
		return 0
	}
	total := 0
	cur := c.NextWorkingTime(start)
	for cur.Before(end) {
		m := minuteOf(cur)
		blockEnd := c.dayEnd
		if m < c.lunchStart {
			blockEnd = c.lunchStart
		}
		stop := atMinute(cur, blockEnd)
		if end.Before(stop) {
			stop = end
		}
		total += int(stop.Sub(cur) / time.Minute)
		cur = c.NextWorkingTime(stop)
	}
	return float64(total) / 60
}

func minuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func atMinute(t time.Time, m int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), m/60, m%60, 0, 0, t.Location())
}

func truncateMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}
