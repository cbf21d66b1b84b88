// Package validation checks raw tenant and room field input before anything
// is submitted upstream. It is a pure layer: given input it produces either an
// accepted normalized record or a field-to-message mapping, with no side
// effects.
package validation

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/jovz/residence-hub/internal/domain/room"
	"github.com/jovz/residence-hub/internal/domain/tenant"
)

// FieldErrors maps a field name to a human-readable violation, suitable for
// rendering inline next to the offending input.
type FieldErrors map[string]string

// TenantInput carries raw tenant form fields.
type TenantInput struct {
	Name    string `json:"name" validate:"required"`
	Room    string `json:"room" validate:"required,roomnumber"`
	Contact string `json:"contact" validate:"required,contactdigits"`
}

// RoomInput carries raw room form fields.
type RoomInput struct {
	RoomNumber string  `json:"roomNumber" validate:"required,roomnumber"`
	Floor      int     `json:"floor" validate:"min=1,max=3"`
	Rate       float64 `json:"rate" validate:"gte=0"`
}

// Checker validates raw field input. Construct once and share; the underlying
// validator caches struct metadata.
type Checker struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewChecker builds a checker with the room-number and contact rules
// registered and English translations installed for the standard tags.
func NewChecker() (*Checker, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}

	// Non-digit keystrokes in the room field are rejected outright rather
	// than stripped; stripping would silently change which room the tenant
	// joins to.
	if err := v.RegisterValidation("roomnumber", func(fl validator.FieldLevel) bool {
		return room.ValidNumber(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	if err := v.RegisterValidation("contactdigits", func(fl validator.FieldLevel) bool {
		return tenant.ValidContact(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	return &Checker{validate: v, trans: trans}, nil
}

// Tenant validates raw tenant fields and, when they pass, returns the
// normalized record. Exactly one of the return values is non-nil.
func (c *Checker) Tenant(in TenantInput) (*tenant.Tenant, FieldErrors) {
	if ferrs := c.check(in); ferrs != nil {
		return nil, ferrs
	}
	t, err := tenant.New(in.Name, in.Room, in.Contact)
	if err != nil {
		// Normalization saw something the tag rules accepted; report it on
		// the field it belongs to rather than dropping it.
		return nil, FieldErrors{"name": err.Error()}
	}
	return t, nil
}

// Room validates raw room fields and, when they pass, returns the normalized
// record.
func (c *Checker) Room(in RoomInput) (*room.Room, FieldErrors) {
	if ferrs := c.check(in); ferrs != nil {
		return nil, ferrs
	}
	r, err := room.New(in.RoomNumber, in.Floor, in.Rate)
	if err != nil {
		return nil, FieldErrors{"roomNumber": err.Error()}
	}
	return r, nil
}

func (c *Checker) check(in any) FieldErrors {
	err := c.validate.Struct(in)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"_": err.Error()}
	}

	ferrs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fieldName(fe)
		if msg, ok := messages[field][fe.Tag()]; ok {
			ferrs[field] = msg
			continue
		}
		ferrs[field] = fe.Translate(c.trans)
	}
	return ferrs
}

// messages pins the user-facing wording for the rules the forms rely on; the
// translator covers everything else.
var messages = map[string]map[string]string{
	"name": {
		"required": "Full name is required.",
	},
	"room": {
		"required":   "Room number is required.",
		"roomnumber": "Room number must contain digits only.",
	},
	"contact": {
		"required":      "Contact number is required.",
		"contactdigits": "Enter a valid phone number (10-15 digits).",
	},
	"roomNumber": {
		"required":   "Room number is required.",
		"roomnumber": "Room number must contain digits only.",
	},
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "name"
	case "Room":
		return "room"
	case "Contact":
		return "contact"
	case "RoomNumber":
		return "roomNumber"
	case "Floor":
		return "floor"
	case "Rate":
		return "rate"
	default:
		return fe.Field()
	}
}
