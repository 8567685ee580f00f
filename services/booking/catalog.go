package booking

import (
	"sort"

	"panditseva/models"
)

// Base prices are in the default currency (INR).
var ritualCatalog = map[string]models.RitualDefinition{
	"griha-pravesh": {
		ID:              "griha-pravesh",
		Name:            "Griha Pravesh",
		Description:     "House warming ceremony performed before moving into a new home.",
		DurationMinutes: 180,
		Icon:            "🏠",
		BasePrice:       5100,
	},
	"satyanarayan-puja": {
		ID:              "satyanarayan-puja",
		Name:            "Satyanarayan Puja",
		Description:     "Worship of Lord Vishnu for prosperity, usually on Purnima or after a milestone.",
		DurationMinutes: 120,
		Icon:            "🪔",
		BasePrice:       3100,
	},
	"ganesh-puja": {
		ID:              "ganesh-puja",
		Name:            "Ganesh Puja",
		Description:     "Invocation of Lord Ganesha to remove obstacles before a new beginning.",
		DurationMinutes: 90,
		Icon:            "🐘",
		BasePrice:       2100,
	},
	"vastu-shanti": {
		ID:              "vastu-shanti",
		Name:            "Vastu Shanti",
		Description:     "Ritual to correct Vastu defects and bring harmony to a home or office.",
		DurationMinutes: 180,
		Icon:            "🧭",
		BasePrice:       5100,
	},
	"navgraha-shanti": {
		ID:              "navgraha-shanti",
		Name:            "Navgraha Shanti",
		Description:     "Pacification of the nine planets to reduce malefic astrological influences.",
		DurationMinutes: 150,
		Icon:            "🪐",
		BasePrice:       4100,
	},
	"lakshmi-puja": {
		ID:              "lakshmi-puja",
		Name:            "Lakshmi Puja",
		Description:     "Worship of Goddess Lakshmi for wealth and well-being, traditionally on Diwali.",
		DurationMinutes: 90,
		Icon:            "🌸",
		BasePrice:       2500,
	},
	"vivah-havan": {
		ID:              "vivah-havan",
		Name:            "Vivah Havan",
		Description:     "Sacred fire ceremony at the heart of a Hindu wedding.",
		DurationMinutes: 240,
		Icon:            "🔥",
		BasePrice:       11000,
	},
	"rudra-abhishek": {
		ID:              "rudra-abhishek",
		Name:            "Rudra Abhishek",
		Description:     "Ritual bathing of the Shiva lingam with Vedic chanting of the Rudram.",
		DurationMinutes: 120,
		Icon:            "🔱",
		BasePrice:       3500,
	},
	"kali-puja": {
		ID:              "kali-puja",
		Name:            "Kali Puja",
		Description:     "Worship of Goddess Kali for protection, performed at night.",
		DurationMinutes: 120,
		Icon:            "🌑",
		BasePrice:       3100,
	},
	"durga-puja": {
		ID:              "durga-puja",
		Name:            "Durga Puja",
		Description:     "Worship of Goddess Durga, central to Navratri celebrations.",
		DurationMinutes: 150,
		Icon:            "🦁",
		BasePrice:       4100,
	},
	"saraswati-puja": {
		ID:              "saraswati-puja",
		Name:            "Saraswati Puja",
		Description:     "Worship of Goddess Saraswati for learning, often before exams.",
		DurationMinutes: 90,
		Icon:            "📜",
		BasePrice:       2100,
	},
	"hanuman-puja": {
		ID:              "hanuman-puja",
		Name:            "Hanuman Puja",
		Description:     "Worship of Lord Hanuman for strength and courage.",
		DurationMinutes: 60,
		Icon:            "🙏",
		BasePrice:       1500,
	},
}

// GetRitual looks up a catalog entry.
func GetRitual(id string) (models.RitualDefinition, bool) {
	r, ok := ritualCatalog[id]
	return r, ok
}

// KnownRitual reports whether id is in the catalog.
func KnownRitual(id string) bool {
	_, ok := ritualCatalog[id]
	return ok
}

// ListRituals returns the catalog sorted by name.
func ListRituals() []models.RitualDefinition {
	out := make([]models.RitualDefinition, 0, len(ritualCatalog))
	for _, r := range ritualCatalog {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// OfferingFor prices a ritual for one pandit. The pandit's own price wins
// over the catalog base price. ok is false when the pandit does not offer it.
func OfferingFor(p *models.PanditProfile, ritualID, currency string) (models.RitualOffering, bool) {
	if p == nil || !p.Offers(ritualID) {
		return models.RitualOffering{}, false
	}
	def, ok := ritualCatalog[ritualID]
	if !ok {
		return models.RitualOffering{}, false
	}
	price := def.BasePrice
	if custom, ok := p.RitualPrices[ritualID]; ok && custom > 0 {
		price = custom
	}
	return models.RitualOffering{RitualDefinition: def, Price: price, Currency: currency}, true
}

// Offerings lists what a pandit offers, in the pandit's own order. Ids
// missing from the catalog are skipped.
func Offerings(p *models.PanditProfile, currency string) []models.RitualOffering {
	out := []models.RitualOffering{}
	if p == nil {
		return out
	}
	for _, id := range p.RitualsOffered {
		if o, ok := OfferingFor(p, id, currency); ok {
			out = append(out, o)
		}
	}
	return out
}
