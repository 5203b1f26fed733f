package wizard

import (
	"strings"

	"github.com/volatiletech/strmangle"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindTel      FieldKind = "tel"
	KindPassword FieldKind = "password"
	KindNumber   FieldKind = "number"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
)

type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`

	// RequiredMessage replaces the "<label> is required" message.
	RequiredMessage string `json:"-"`
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}

	return fieldLabel(f.Name)
}

type Step struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

type Schema struct {
	Provider ProviderType
	Steps    []Step
}

// fieldLabel turns a field name such as "phone-number" into "Phone Number".
func fieldLabel(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	if len(words) == 0 {
		return "This field"
	}

	for i, w := range words {
		words[i] = strmangle.TitleCase(w)
	}

	return strings.Join(words, " ")
}

const termsMessage = "Please agree to the Terms of Service and Privacy Policy to continue."

func text(name, label string, required bool) Field {
	return Field{Name: name, Label: label, Kind: KindText, Required: required}
}

func sel(name, label string, required bool) Field {
	return Field{Name: name, Label: label, Kind: KindSelect, Required: required}
}

func number(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindNumber}
}

func checkbox(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindCheckbox}
}

func terms() Field {
	return Field{Name: "terms", Label: "Terms of Service", Kind: KindCheckbox, Required: true, RequiredMessage: termsMessage}
}

func accountStep(legacyNames bool) Step {
	if legacyNames {
		return Step{Title: "Account", Fields: []Field{
			text("full-name", "Full Name", true),
			{Name: "email-address", Label: "Email Address", Kind: KindEmail, Required: true},
			{Name: "phone-number", Label: "Phone Number", Kind: KindTel, Required: true},
			{Name: "password", Label: "Password", Kind: KindPassword, Required: true},
		}}
	}

	return Step{Title: "Account", Fields: []Field{
		text("first_name", "First Name", true),
		text("last_name", "Last Name", true),
		{Name: "email", Label: "Email Address", Kind: KindEmail, Required: true},
		{Name: "mobile_number", Label: "Phone Number", Kind: KindTel, Required: true},
		{Name: "password", Label: "Password", Kind: KindPassword, Required: true},
	}}
}

var (
	AvailabilityDays    = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
	AvailabilityPeriods = []string{"morning", "afternoon", "evening"}
)

func availabilityFields() []Field {
	fields := make([]Field, 0, len(AvailabilityDays)*len(AvailabilityPeriods))
	for _, day := range AvailabilityDays {
		for _, period := range AvailabilityPeriods {
			fields = append(fields, checkbox(day+"_"+period, ""))
		}
	}

	return fields
}

var schemas = map[ProviderType]Schema{
	ProviderVet: {Provider: ProviderVet, Steps: []Step{
		accountStep(false),
		{Title: "Professional Details", Fields: []Field{
			text("license_number", "Medical License Number", true),
			sel("specialization", "Specialization", true),
			number("years_experience", "Years of Experience"),
			text("affiliated_clinic", "Affiliated Clinic", false),
		}},
		{Title: "Availability", Fields: append([]Field{
			text("city", "City", true),
		}, availabilityFields()...)},
		{Title: "Emergency Services", Fields: []Field{
			checkbox("emergency_available", "Emergency Services Available"),
			sel("emergency_hours_type", "Emergency Hours", false),
			text("custom_emergency_hours", "Custom Emergency Hours", false),
			{Name: "emergency_contact", Label: "Emergency Contact", Kind: KindTel},
			sel("emergency_response_time", "Response Time", false),
			terms(),
		}},
	}},
	ProviderGroomer: {Provider: ProviderGroomer, Steps: []Step{
		accountStep(true),
		{Title: "Services", Fields: []Field{
			text("business_name", "Business Name", false),
			sel("service_type", "Service Type", true),
			checkbox("services", "Services Offered"),
			number("experience", "Years of Experience"),
		}},
		{Title: "Location", Fields: []Field{
			text("city", "City", true),
			terms(),
		}},
	}},
	ProviderBoarding: {Provider: ProviderBoarding, Steps: []Step{
		accountStep(false),
		{Title: "Facility", Fields: []Field{
			text("business_name", "Facility Name", true),
			sel("facility_type", "Facility Type", true),
			{Name: "capacity", Label: "Capacity", Kind: KindNumber, Required: true},
		}},
		{Title: "Location", Fields: []Field{
			text("city", "City", true),
			terms(),
		}},
	}},
	ProviderTrainer: {Provider: ProviderTrainer, Steps: []Step{
		accountStep(true),
		{Title: "Qualifications", Fields: []Field{
			text("certification", "Certification", true),
			checkbox("training_methods", "Training Methods"),
			number("years_experience", "Years of Experience"),
		}},
		{Title: "Business", Fields: []Field{
			text("business_name", "Business Name", false),
			text("city", "City", true),
		}},
		{Title: "Confirm", Fields: []Field{
			terms(),
		}},
	}},
	ProviderSitter: {Provider: ProviderSitter, Steps: []Step{
		accountStep(false),
		{Title: "Experience", Fields: []Field{
			sel("experience_level", "Experience Level", true),
			text("emergency_contact_name", "Emergency Contact Name", true),
			{Name: "emergency_contact_phone", Label: "Emergency Contact Phone", Kind: KindTel, Required: true},
		}},
		{Title: "Location", Fields: []Field{
			text("city", "City", true),
			terms(),
		}},
	}},
	ProviderTransport: {Provider: ProviderTransport, Steps: []Step{
		accountStep(true),
		{Title: "Vehicle", Fields: []Field{
			text("drivers_license", "Driver's License", true),
			sel("vehicle_type", "Vehicle Type", true),
		}},
		{Title: "Insurance", Fields: []Field{
			text("insurance_info", "Insurance Information", true),
		}},
		{Title: "Business", Fields: []Field{
			text("business_name", "Business Name", false),
			text("city", "City", true),
		}},
		{Title: "Confirm", Fields: []Field{
			terms(),
		}},
	}},
	ProviderLab: {Provider: ProviderLab, Steps: []Step{
		accountStep(false),
		{Title: "Laboratory", Fields: []Field{
			text("business_name", "Laboratory Name", true),
			sel("accreditation_type", "Accreditation Type", true),
			text("license_number", "License Number", false),
		}},
		{Title: "Location", Fields: []Field{
			text("city", "City", true),
		}},
		{Title: "Confirm", Fields: []Field{
			terms(),
		}},
	}},
}

func SchemaFor(p ProviderType) (Schema, bool) {
	s, ok := schemas[p]
	return s, ok
}
