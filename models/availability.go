package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// WeeklyAvailability maps a lowercase English weekday name ("monday") to the
// ordered slot labels a pandit accepts bookings for on that day.
//
// Decoding is lenient: a weekday whose value is not a list, or list entries
// that are not strings, decode as "no slots" instead of failing the record.
type WeeklyAvailability map[string][]string

// WeekdayKey returns the availability key for a weekday.
func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// ParseDate parses a calendar date. The result is midnight UTC, so Weekday()
// reflects the date as written, independent of the server's zone.
func ParseDate(date string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SlotsOn returns a copy of the slots listed for the weekday.
func (w WeeklyAvailability) SlotsOn(d time.Weekday) []string {
	slots := w[WeekdayKey(d)]
	if len(slots) == 0 {
		return []string{}
	}
	out := make([]string, len(slots))
	copy(out, slots)
	return out
}

func (w *WeeklyAvailability) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// null, a string, a number... none of them describe any slots.
		*w = WeeklyAvailability{}
		return nil
	}
	out := make(WeeklyAvailability, len(raw))
	for day, value := range raw {
		var entries []json.RawMessage
		if err := json.Unmarshal(value, &entries); err != nil {
			out[strings.ToLower(day)] = []string{}
			continue
		}
		slots := make([]string, 0, len(entries))
		for _, e := range entries {
			var s string
			if err := json.Unmarshal(e, &s); err == nil {
				slots = append(slots, s)
			}
		}
		out[strings.ToLower(day)] = slots
	}
	*w = out
	return nil
}

func (w *WeeklyAvailability) UnmarshalBSON(data []byte) error {
	doc := bson.Raw(data)
	if err := doc.Validate(); err != nil {
		*w = WeeklyAvailability{}
		return nil
	}
	elems, err := doc.Elements()
	if err != nil {
		*w = WeeklyAvailability{}
		return nil
	}
	out := make(WeeklyAvailability, len(elems))
	for _, e := range elems {
		day := strings.ToLower(e.Key())
		arr, ok := e.Value().ArrayOK()
		if !ok {
			out[day] = []string{}
			continue
		}
		values, err := arr.Values()
		if err != nil {
			out[day] = []string{}
			continue
		}
		slots := make([]string, 0, len(values))
		for _, v := range values {
			if s, ok := v.StringValueOK(); ok {
				slots = append(slots, s)
			}
		}
		out[day] = slots
	}
	*w = out
	return nil
}
