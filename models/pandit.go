package models

import (
	"fmt"
	"strings"
	"time"
)

// PanditProfile is a ritual officiant listed in the directory.
type PanditProfile struct {
	ID              string             `bson:"id" json:"id"`
	FullName        string             `bson:"fullName" json:"fullName"`
	City            string             `bson:"city" json:"city"`
	State           string             `bson:"state" json:"state"`
	Languages       []string           `bson:"languages" json:"languages"`
	RitualsOffered  []string           `bson:"ritualsOffered" json:"ritualsOffered"`                 // Ritual catalog ids.
	Specializations []string           `bson:"specializations" json:"specializations"`               // Free-text specialities shown on the profile.
	Availability    WeeklyAvailability `bson:"availability" json:"availability"`                     // Weekday name -> ordered slot labels.
	RitualPrices    map[string]float64 `bson:"ritualPrices,omitempty" json:"ritualPrices,omitempty"` // Per-ritual price set by the pandit.
	ExperienceYears int                `bson:"experienceYears" json:"experienceYears"`
	Rating          *float64           `bson:"rating,omitempty" json:"rating,omitempty"` // 0-5, nil when unrated.
	ReviewCount     int                `bson:"reviewCount" json:"reviewCount"`
	Bio             string             `bson:"bio" json:"bio"`
	Featured        bool               `bson:"featured" json:"featured"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the invariants a directory record must satisfy before the
// booking workflow will use it. knownRitual reports whether a ritual id exists
// in the catalog; nil skips that check.
func (p *PanditProfile) Validate(knownRitual func(id string) bool) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("pandit: missing id")
	}
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("pandit %s: missing full name", p.ID)
	}
	if p.ExperienceYears < 0 {
		return fmt.Errorf("pandit %s: negative experience %d", p.ID, p.ExperienceYears)
	}
	if p.ReviewCount < 0 {
		return fmt.Errorf("pandit %s: negative review count %d", p.ID, p.ReviewCount)
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return fmt.Errorf("pandit %s: rating %.2f out of range", p.ID, *p.Rating)
	}
	if knownRitual != nil {
		for _, r := range p.RitualsOffered {
			if !knownRitual(r) {
				return fmt.Errorf("pandit %s: unknown ritual %q", p.ID, r)
			}
		}
	}
	for ritual, price := range p.RitualPrices {
		if price <= 0 {
			return fmt.Errorf("pandit %s: non-positive price for %q", p.ID, ritual)
		}
	}
	return nil
}

// Offers reports whether the pandit performs the given ritual.
func (p *PanditProfile) Offers(ritualID string) bool {
	for _, r := range p.RitualsOffered {
		if r == ritualID {
			return true
		}
	}
	return false
}

// PanditFilter narrows a directory listing. Zero values match everything.
type PanditFilter struct {
	City           string `form:"city" json:"city,omitempty"`                     // Matches city or state.
	Specialization string `form:"specialization" json:"specialization,omitempty"` // Matches a specialization or an offered ritual id.
	Search         string `form:"q" json:"q,omitempty"`                           // Matches name or bio.
	Language       string `form:"language" json:"language,omitempty"`
	FeaturedOnly   bool   `form:"featured" json:"featured,omitempty"`
}

// Key renders the filter as a stable cache key fragment.
func (f PanditFilter) Key() string {
	return strings.ToLower(fmt.Sprintf("city=%s|spec=%s|q=%s|lang=%s|featured=%t",
		strings.TrimSpace(f.City), strings.TrimSpace(f.Specialization),
		strings.TrimSpace(f.Search), strings.TrimSpace(f.Language), f.FeaturedOnly))
}

// Matches applies the filter to a single profile. Stores that cannot push the
// filter down to the database use this directly.
func (f PanditFilter) Matches(p *PanditProfile) bool {
	if f.FeaturedOnly && !p.Featured {
		return false
	}
	if city := strings.TrimSpace(f.City); city != "" {
		if !containsFold(p.City, city) && !containsFold(p.State, city) {
			return false
		}
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		if !containsFold(p.FullName, q) && !containsFold(p.Bio, q) {
			return false
		}
	}
	if lang := strings.TrimSpace(f.Language); lang != "" && !anyEqualFold(p.Languages, lang) {
		return false
	}
	if spec := strings.TrimSpace(f.Specialization); spec != "" {
		if !anyContainsFold(p.Specializations, spec) && !anyEqualFold(p.RitualsOffered, spec) {
			return false
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func anyContainsFold(values []string, sub string) bool {
	for _, v := range values {
		if containsFold(v, sub) {
			return true
		}
	}
	return false
}

func anyEqualFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
