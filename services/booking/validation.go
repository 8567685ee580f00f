package booking

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"panditseva/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so clients can attach messages inline.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type detailForm struct {
	RitualID string `json:"ritualId" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"timeSlot" validate:"required"`
	Address  string `json:"address" validate:"required,min=5"`
}

var fieldMessages = map[string]map[string]string{
	"ritualId": {"required": "Please select a ritual"},
	"date": {
		"required": "Please select a date",
		"datetime": "Date must be in YYYY-MM-DD format",
	},
	"timeSlot": {"required": "Please select a time slot"},
	"address": {
		"required": "Please enter the address for the ceremony",
		"min":      "Address must be at least 5 characters",
	},
}

// validateDetail checks everything a draft needs before it may enter review.
// Single-field rules run through the validator; rules that depend on the
// pandit or on the clock run afterwards and only for fields that passed.
func validateDetail(d *models.BookingDraft, pandit *models.PanditProfile, now time.Time) *ValidationError {
	form := detailForm{
		RitualID: strings.TrimSpace(d.RitualID),
		Date:     strings.TrimSpace(d.Date),
		TimeSlot: strings.TrimSpace(d.TimeSlot),
		Address:  strings.TrimSpace(d.Address),
	}

	fields := map[string]string{}
	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			fields["form"] = err.Error()
			return &ValidationError{Fields: fields}
		}
		for _, fe := range verrs {
			msg, ok := fieldMessages[fe.Field()][fe.Tag()]
			if !ok {
				msg = "Invalid value"
			}
			fields[fe.Field()] = msg
		}
	}

	if _, bad := fields["ritualId"]; !bad {
		if !KnownRitual(form.RitualID) || !pandit.Offers(form.RitualID) {
			fields["ritualId"] = "This pandit does not offer the selected ritual"
		}
	}

	dateOK := false
	if _, bad := fields["date"]; !bad {
		day, _ := models.ParseDate(form.Date)
		if day.Before(today(now)) {
			fields["date"] = "Date cannot be in the past"
		} else {
			dateOK = true
		}
	}

	if dateOK {
		slots := ResolveSlots(pandit, form.Date)
		switch {
		case len(slots) == 0:
			fields["timeSlot"] = "The pandit is not available on this date"
		case fields["timeSlot"] == "" && !contains(slots, form.TimeSlot):
			fields["timeSlot"] = "Selected time is not available on this date"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
