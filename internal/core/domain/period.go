package domain

import (
	"regexp"
	"time"
)

// Period is a reporting window token: a named preset or an exact month "YYYY-MM".
type Period string

const (
	PeriodCurrentMonth   Period = "current-month"
	PeriodLastMonth      Period = "last-month"
	PeriodCurrentQuarter Period = "current-quarter"
	PeriodCurrentYear    Period = "current-year"
	PeriodLastYear       Period = "last-year"
	PeriodAll            Period = "all"
)

var monthToken = regexp.MustCompile(`^\d{4}-\d{2}$`)

// DateRange is an inclusive range of calendar days. A zero Start or End leaves that side open.
type DateRange struct {
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

// Unbounded reports whether neither side is set.
func (r DateRange) Unbounded() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether the calendar day of t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	day := DateOnly(t)
	if !r.Start.IsZero() && day.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && day.After(r.End) {
		return false
	}
	return true
}

// Through keeps only the upper bound, giving "as of End" semantics.
func (r DateRange) Through() DateRange {
	return DateRange{End: r.End}
}

// Resolve turns the period into a date range relative to now.
// Unknown tokens, including malformed months, resolve to the current month.
func (p Period) Resolve(now time.Time) DateRange {
	today := DateOnly(now)
	if monthToken.MatchString(string(p)) {
		if m, err := time.Parse("2006-01", string(p)); err == nil {
			return monthRange(m)
		}
		return monthRange(today)
	}
	switch p {
	case PeriodAll:
		return DateRange{}
	case PeriodLastMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return monthRange(first.AddDate(0, -1, 0))
	case PeriodCurrentQuarter:
		startMonth := time.Month((int(today.Month())-1)/3*3 + 1)
		start := time.Date(today.Year(), startMonth, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: start, End: start.AddDate(0, 3, -1)}
	case PeriodCurrentYear:
		return yearRange(today.Year())
	case PeriodLastYear:
		return yearRange(today.Year() - 1)
	default:
		return monthRange(today)
	}
}

func monthRange(t time.Time) DateRange {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}

func yearRange(year int) DateRange {
	return DateRange{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}
