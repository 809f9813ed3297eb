package utils

import (
	"time"

	"github.com/scmhub/calendar"
)

// BusinessCalendar counts business days using scmhub/calendar.
type BusinessCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// GetBusinessCalendar returns the exchange calendar for an ISO 10383 MIC
// (see scmhub/calendar for the supported codes). Unknown codes fall back to
// xnys, then to a plain Monday-Friday week.
func GetBusinessCalendar(mic string) *BusinessCalendar {
	if mic == "" {
		mic = DefaultCalendarMIC
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar(DefaultCalendarMIC)
	}
	if cal == nil {
		return &BusinessCalendar{Fallback: true, Timezone: time.UTC}
	}

	return &BusinessCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (bc *BusinessCalendar) IsBusinessDay(date time.Time) bool {
	if bc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return bc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// BusinessDaysInMonth counts the business days of one calendar month. Days
// are taken at noon in the calendar's timezone so no date shifts across
// midnight.
func (bc *BusinessCalendar) BusinessDaysInMonth(year int, month time.Month) int {
	loc := bc.Timezone
	if loc == nil {
		loc = time.UTC
	}

	count := 0
	day := time.Date(year, month, 1, 12, 0, 0, 0, loc)
	for day.Month() == month {
		if bc.IsBusinessDay(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}
