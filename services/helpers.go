package services

import "time"

// stamp sets a status timestamp only if it was never set.
func stamp(field **time.Time, at time.Time) {
	if *field == nil {
		v := at
		*field = &v
	}
}

// ageInMonths counts completed months between dob and at.
func ageInMonths(dob, at time.Time) int {
	months := (at.Year()-dob.Year())*12 + int(at.Month()) - int(dob.Month())
	if at.Day() < dob.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func transitionDetail(from, to string) string {
	return from + " -> " + to
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
