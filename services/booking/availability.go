package booking

import (
	"time"

	"panditseva/models"
)

const (
	defaultDateWindow = 30
	maxDateWindow     = 90
)

// ResolveSlots returns the slot labels the pandit lists for the weekday of
// date. An empty or unparseable date, a nil pandit, or a day with no slots
// all yield an empty slice. Existing bookings are not consulted.
func ResolveSlots(pandit *models.PanditProfile, date string) []string {
	if pandit == nil {
		return []string{}
	}
	day, ok := models.ParseDate(date)
	if !ok {
		return []string{}
	}
	return pandit.Availability.SlotsOn(day.Weekday())
}

func slotOffered(pandit *models.PanditProfile, date, slot string) bool {
	for _, s := range ResolveSlots(pandit, date) {
		if s == slot {
			return true
		}
	}
	return false
}

// AvailableDates lists the dates in [from, from+days) on which the pandit has
// at least one slot. days <= 0 uses a 30 day window; it is capped at 90.
func AvailableDates(pandit *models.PanditProfile, from time.Time, days int) []string {
	out := []string{}
	if pandit == nil {
		return out
	}
	if days <= 0 {
		days = defaultDateWindow
	}
	if days > maxDateWindow {
		days = maxDateWindow
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		if len(pandit.Availability.SlotsOn(day.Weekday())) > 0 {
			out = append(out, day.Format(models.DateLayout))
		}
	}
	return out
}

// today is the calendar date of now, as written in now's own zone.
func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
