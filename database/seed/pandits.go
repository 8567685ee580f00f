// Package seed loads the demo pandit directory used for local runs.
package seed

import (
	"context"
	"fmt"
	"time"

	"panditseva/models"
)

// Upserter stores a pandit profile.
type Upserter interface {
	Upsert(ctx context.Context, p *models.PanditProfile) error
}

func week(weekday, sunday []string, overrides map[string][]string) models.WeeklyAvailability {
	w := models.WeeklyAvailability{}
	for d := time.Monday; d <= time.Saturday; d++ {
		w[models.WeekdayKey(d)] = weekday
	}
	w[models.WeekdayKey(time.Sunday)] = sunday
	for day, slots := range overrides {
		w[day] = slots
	}
	return w
}

func rating(v float64) *float64 { return &v }

// Pandits returns the demo directory. Each call builds fresh values.
func Pandits() []models.PanditProfile {
	return []models.PanditProfile{
		{
			ID:              "pandit-1",
			FullName:        "Pandit Rajesh Sharma",
			City:            "Delhi",
			State:           "Delhi",
			Languages:       []string{"Hindi", "Sanskrit", "English"},
			RitualsOffered:  []string{"griha-pravesh", "satyanarayan-puja", "ganesh-puja", "vastu-shanti", "navgraha-shanti"},
			Specializations: []string{"Griha Pravesh ceremonies", "Vastu consultations", "Marriage ceremonies", "Navgraha Shanti"},
			Availability: week(
				[]string{"9:00 AM - 12:00 PM", "4:00 PM - 7:00 PM"},
				[]string{"9:00 AM - 12:00 PM"}, nil),
			RitualPrices:    map[string]float64{"griha-pravesh": 5500, "vastu-shanti": 6100},
			ExperienceYears: 25,
			Rating:          rating(4.8),
			ReviewCount:     124,
			Bio:             "With over 25 years of experience in performing Hindu rituals, brings deep knowledge and authentic practice to every ceremony.",
			Featured:        true,
		},
		{
			ID:              "pandit-2",
			FullName:        "Pandit Mukesh Shastri",
			City:            "Mumbai",
			State:           "Maharashtra",
			Languages:       []string{"Hindi", "Sanskrit", "Marathi", "English"},
			RitualsOffered:  []string{"lakshmi-puja", "ganesh-puja", "satyanarayan-puja", "griha-pravesh", "vivah-havan"},
			Specializations: []string{"Wedding ceremonies", "Griha Pravesh", "Ganesh and Lakshmi Puja", "Corporate events and ceremonies"},
			Availability: week(
				[]string{"10:00 AM - 1:00 PM", "5:00 PM - 8:00 PM"},
				[]string{"10:00 AM - 1:00 PM", "5:00 PM - 8:00 PM"},
				map[string][]string{"wednesday": {"10:00 AM - 1:00 PM"}}),
			RitualPrices:    map[string]float64{"vivah-havan": 15000},
			ExperienceYears: 20,
			Rating:          rating(4.9),
			ReviewCount:     98,
			Bio:             "A well-respected pandit with 20 years of experience in traditional Vedic ceremonies, known for marriage ceremonies and Griha Pravesh.",
			Featured:        true,
		},
		{
			ID:              "pandit-3",
			FullName:        "Acharya Suresh Trivedi",
			City:            "Varanasi",
			State:           "Uttar Pradesh",
			Languages:       []string{"Hindi", "Sanskrit", "English"},
			RitualsOffered:  []string{"rudra-abhishek", "navgraha-shanti", "kali-puja", "durga-puja", "vastu-shanti"},
			Specializations: []string{"Shiva puja and abhishekam", "Astrological remedies", "Kaal Sarp Dosha nivaran", "Sacred fire ceremonies"},
			Availability: week(
				[]string{"7:00 AM - 10:00 AM", "4:00 PM - 7:00 PM"},
				[]string{"7:00 AM - 10:00 AM"}, nil),
			ExperienceYears: 30,
			Rating:          rating(4.7),
			ReviewCount:     156,
			Bio:             "Born and raised in Varanasi, has spent 30 years studying and performing Vedic rituals, with a focus on Shiva ceremonies and astrological remedies.",
		},
		{
			ID:              "pandit-4",
			FullName:        "Pandit Venkatesh Iyer",
			City:            "Bangalore",
			State:           "Karnataka",
			Languages:       []string{"Kannada", "Sanskrit", "Tamil", "English"},
			RitualsOffered:  []string{"ganesh-puja", "saraswati-puja", "lakshmi-puja", "griha-pravesh", "satyanarayan-puja"},
			Specializations: []string{"South Indian style pujas", "Educational ceremonies", "Home and office blessings", "Auspicious beginnings"},
			Availability: week(
				[]string{"8:00 AM - 11:00 AM", "5:00 PM - 8:00 PM"},
				[]string{"8:00 AM - 11:00 AM", "5:00 PM - 8:00 PM"},
				map[string][]string{"thursday": {}}),
			ExperienceYears: 15,
			Rating:          rating(4.6),
			ReviewCount:     85,
			Bio:             "Performs South Indian style pujas blended with Vedic tradition, having served in temples across South India.",
		},
		{
			ID:              "pandit-5",
			FullName:        "Pandit Devendra Pathak",
			City:            "Jaipur",
			State:           "Rajasthan",
			Languages:       []string{"Hindi", "Sanskrit", "Rajasthani", "English"},
			RitualsOffered:  []string{"vivah-havan", "griha-pravesh", "ganesh-puja", "navgraha-shanti", "hanuman-puja"},
			Specializations: []string{"Rajasthani wedding ceremonies", "Traditional havans", "Planetary remedies", "Home blessings"},
			Availability: week(
				[]string{"9:00 AM - 12:00 PM", "4:00 PM - 7:00 PM"},
				[]string{"9:00 AM - 12:00 PM"},
				map[string][]string{"friday": {}}),
			ExperienceYears: 18,
			Rating:          rating(4.5),
			ReviewCount:     72,
			Bio:             "From a traditional family of priests in Rajasthan, has performed rituals for 18 years with a focus on wedding ceremonies and home blessings.",
		},
	}
}

// Load upserts every demo pandit.
func Load(ctx context.Context, repo Upserter, now time.Time) (int, error) {
	pandits := Pandits()
	for i := range pandits {
		p := &pandits[i]
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := repo.Upsert(ctx, p); err != nil {
			return i, fmt.Errorf("failed to seed pandit %s: %w", p.ID, err)
		}
	}
	return len(pandits), nil
}
