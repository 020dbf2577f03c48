package finance

import "time"

// ContributionStartDate returns the first day of the calendar month
// following goal creation. Contributions are modeled as starting there
// regardless of which day of the month the goal was actually created; it
// anchors all period counting.
func ContributionStartDate(createdAt time.Time) time.Time {
	u := createdAt.UTC()
	return time.Date(u.Year(), u.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// ContributionPeriods counts the discrete monthly contribution slots between
// the start date and the target date. The target month itself always counts
// as a period, since a contribution can land in it before the target date,
// so the month difference gets one added. A goal always has at least one
// period, even when the target date is very near.
func ContributionPeriods(start, target time.Time) int {
	s, e := start.UTC(), target.UTC()
	months := (e.Year()-s.Year())*monthsPerYear + int(e.Month()) - int(s.Month())
	periods := months + 1
	if periods < 1 {
		return 1
	}
	return periods
}

// MonthsBetween returns the continuous month duration between two dates:
// the whole-month difference plus a fractional day-of-month adjustment,
// floored at zero. This is the compounding duration for growing a balance
// across real calendar gaps.
//
// It is deliberately distinct from ContributionPeriods, which is the
// user-facing schedule count. The two must not be conflated: one answers
// "how many payments", the other "how long did this money actually sit".
func MonthsBetween(start, end time.Time) float64 {
	s, e := start.UTC(), end.UTC()
	months := (e.Year()-s.Year())*monthsPerYear + int(e.Month()) - int(s.Month())
	dayDiff := e.Day() - s.Day()
	total := float64(months) + float64(dayDiff)/float64(daysInMonth(e))
	if total < 0 {
		return 0
	}
	return total
}

// ElapsedPeriods counts how many contribution slots have opened by asOf,
// counting the start month as the first. Zero before the start date.
func ElapsedPeriods(start, asOf time.Time) int {
	if asOf.Before(start) {
		return 0
	}
	return int(MonthsBetween(start, asOf)) + 1
}

func daysInMonth(t time.Time) int {
	u := t.UTC()
	return time.Date(u.Year(), u.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
