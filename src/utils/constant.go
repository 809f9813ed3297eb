package utils

// -----------------------------------------------------------------------------

const (
	// DefaultCalendarMIC is the New York Stock Exchange calendar.
	DefaultCalendarMIC = "xnys"

	MonthsPerYear = 12
	HoursPerDay   = 24
)
