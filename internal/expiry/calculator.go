package expiry

import "time"

// DateFormat is the storage format for expiry dates. Dates are kept as
// strings so a computed calendar date can never drift when read back in a
// different timezone.
const DateFormat = "2006-01-02"

// ComputeDate derives the expiry date for a pick entry:
//
//	expiry = run date, in the company timezone, plus (shelfLifeDays - 1) days
//
// scheduledFor carries a date-only value (midnight UTC), so its UTC calendar
// date is materialized at midnight in the company zone and the offset is
// added with calendar arithmetic. Adding a duration instead would shift the
// date by an hour across DST transitions and land on the wrong day.
//
// Returns nil when scheduledFor is nil or shelfLifeDays is not positive;
// "no expiry tracking" is a valid state, not an error. An unknown timezone
// falls back to UTC.
func ComputeDate(scheduledFor *time.Time, timezone string, shelfLifeDays int) *string {
	if scheduledFor == nil || shelfLifeDays <= 0 {
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}
	d := scheduledFor.UTC()
	local := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	s := local.AddDate(0, 0, shelfLifeDays-1).Format(DateFormat)
	return &s
}
