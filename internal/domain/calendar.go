package domain

import "time"

// CalendarEvent is an imported external event. The scheduling core reads
// these only as an additional conflict source.
type CalendarEvent struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

func (e *CalendarEvent) Range() TimeRange {
	return TimeRange{Start: e.StartTime, End: e.EndTime}
}
