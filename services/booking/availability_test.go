package booking

import (
	"fmt"
	"testing"

	"panditseva/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveSlots(t *testing.T) {
	p := rajesh()

	cases := []struct {
		name string
		date string
		want []string
	}{
		{"monday", nextMonday, []string{morningSlot}},
		{"wednesday keeps order", "2030-01-09", []string{morningSlot, "4:00 PM - 7:00 PM"}},
		{"empty weekday", nextTuesday, []string{}},
		{"missing weekday", "2030-01-10", []string{}},
		{"undefined date", "", []string{}},
		{"unparseable date", "07/01/2030", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveSlots(&p, tc.date))
		})
	}

	assert.Equal(t, []string{}, ResolveSlots(nil, nextMonday))
}

func TestResolveSlots_ReturnsCopy(t *testing.T) {
	p := rajesh()
	slots := ResolveSlots(&p, nextMonday)
	slots[0] = "mutated"
	assert.Equal(t, []string{morningSlot}, p.Availability["monday"])
}

func TestResolveSlots_EveryWeekday(t *testing.T) {
	p := models.PanditProfile{Availability: models.WeeklyAvailability{}}
	days := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	for _, day := range days {
		p.Availability[day] = []string{day + "-slot"}
	}
	// 2030-01-06 is a Sunday.
	for i, day := range days {
		date := fmt.Sprintf("2030-01-%02d", 6+i)
		assert.Equal(t, []string{day + "-slot"}, ResolveSlots(&p, date), date)
	}
}

func TestAvailableDates(t *testing.T) {
	p := rajesh()

	got := AvailableDates(&p, fixedNow, 14)
	assert.Equal(t, []string{"2030-01-02", "2030-01-07", "2030-01-09", "2030-01-14"}, got)

	assert.Len(t, AvailableDates(&p, fixedNow, 1000), 25, "window is capped at 90 days")
	assert.Empty(t, AvailableDates(nil, fixedNow, 7))
}
