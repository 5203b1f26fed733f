package wizard

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ataboo/go-furglo-web/pkg/constants"
	"github.com/ataboo/go-furglo-web/pkg/validation"
)

// Payload is the JSON body sent to the registration endpoint.
type Payload map[string]interface{}

const FieldProfessionType = "profession_type"

// aliasTable maps each canonical field to the names older forms used for it,
// highest precedence first.
var aliasTable = map[string][]string{
	"email":             {"email", "email-address", "email_address"},
	"full_name":         {"full_name", "full-name"},
	"license_number":    {"license_number", "medical-license-number"},
	"mobile_number":     {"mobile_number", "phone", "phone-number"},
	"years_experience":  {"years_experience", "experience"},
	"business_name":     {"business_name", "affiliated_clinic"},
	"affiliated_clinic": {"affiliated_clinic", "business_name"},
}

// Canonicalize resolves aliases once. Canonical names hold the first
// non-empty alias value; names outside the alias table pass through.
func Canonicalize(values url.Values) url.Values {
	out := url.Values{}

	for name, vals := range values {
		key := strings.ToLower(strings.TrimSpace(name))
		if nonEmpty(vals) {
			out[key] = append([]string(nil), vals...)
		}
	}

	for canonical, aliases := range aliasTable {
		delete(out, canonical)

		for _, alias := range aliases {
			if vals := lookup(values, alias); nonEmpty(vals) {
				out[canonical] = append([]string(nil), vals...)
				break
			}
		}
	}

	return out
}

func lookup(values url.Values, name string) []string {
	if vals, ok := values[name]; ok {
		return vals
	}

	for key, vals := range values {
		if strings.EqualFold(strings.TrimSpace(key), name) {
			return vals
		}
	}

	return nil
}

func nonEmpty(vals []string) bool {
	for _, v := range vals {
		if v != "" {
			return true
		}
	}

	return false
}

func scalar(c url.Values, name string) string {
	for _, v := range c[name] {
		if v != "" {
			return v
		}
	}

	return ""
}

func list(c url.Values, name string) []string {
	out := []string{}
	for _, v := range c[name] {
		if v != "" {
			out = append(out, v)
		}
	}

	return out
}

func intOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}

	return n
}

// SplitFullName takes the first whitespace-delimited token as the first name
// and the rest as the last name.
func SplitFullName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}

	return parts[0], strings.Join(parts[1:], " ")
}

// BuildPayload assembles the registration body for provider from every field
// of the form. Empty values are dropped; lists and numbers are always sent.
func BuildPayload(provider ProviderType, values url.Values) (Payload, error) {
	if provider.ProfessionType() == "" {
		return nil, ErrNoProfession
	}

	c := Canonicalize(values)

	firstName, lastName := scalar(c, "first_name"), scalar(c, "last_name")
	splitFirst, splitLast := SplitFullName(scalar(c, "full_name"))
	if firstName == "" {
		firstName = splitFirst
	}
	if lastName == "" {
		lastName = splitLast
	}

	professionType := scalar(c, FieldProfessionType)
	if professionType == "" {
		professionType = provider.ProfessionType()
	}

	p := Payload{
		"email":            scalar(c, "email"),
		"first_name":       firstName,
		"last_name":        lastName,
		"profession_type":  professionType,
		"license_number":   scalar(c, "license_number"),
		"mobile_number":    scalar(c, "mobile_number"),
		"years_experience": intOrZero(scalar(c, "years_experience")),
		"city":             scalar(c, "city"),
		"password":         scalar(c, "password"),
		"business_name":    scalar(c, "business_name"),
	}

	if err := mapProfessionFields(provider, c, p); err != nil {
		return nil, err
	}

	p.dropEmpty()

	return p, nil
}

// mapProfessionFields must handle every ProviderType.
func mapProfessionFields(provider ProviderType, c url.Values, p Payload) error {
	switch provider {
	case ProviderVet:
		p["specialization"] = scalar(c, "specialization")
		p["affiliated_clinic"] = scalar(c, "affiliated_clinic")
		p["availability"] = availability(c)
		p["emergency_services"] = emergencyServices(c)
	case ProviderGroomer:
		p["services_offered"] = list(c, "services")
		p["service_type"] = scalar(c, "service_type")
	case ProviderBoarding:
		p["facility_type"] = scalar(c, "facility_type")
		p["capacity"] = intOrZero(scalar(c, "capacity"))
	case ProviderTrainer:
		p["certification"] = scalar(c, "certification")
		p["training_methods"] = list(c, "training_methods")
	case ProviderTransport:
		p["drivers_license"] = scalar(c, "drivers_license")
		p["vehicle_type"] = scalar(c, "vehicle_type")
		p["insurance_info"] = scalar(c, "insurance_info")
	case ProviderSitter:
		p["experience_level"] = scalar(c, "experience_level")
		p["emergency_contact_name"] = scalar(c, "emergency_contact_name")
		p["emergency_contact_phone"] = scalar(c, "emergency_contact_phone")
	case ProviderLab:
		p["accreditation_type"] = scalar(c, "accreditation_type")
	default:
		return ErrUnknownProvider
	}

	return nil
}

// availability lists the checked periods of each day of the weekly grid.
func availability(c url.Values) map[string][]string {
	out := make(map[string][]string, len(AvailabilityDays))
	for _, day := range AvailabilityDays {
		out[day] = []string{}
		for _, period := range AvailabilityPeriods {
			if scalar(c, day+"_"+period) != "" {
				out[day] = append(out[day], period)
			}
		}
	}

	return out
}

func emergencyServices(c url.Values) Payload {
	if scalar(c, "emergency_available") == "" {
		return Payload{"available": false}
	}

	es := Payload{
		"available":      true,
		"hours_type":     scalar(c, "emergency_hours_type"),
		"custom_hours":   scalar(c, "custom_emergency_hours"),
		"contact_number": scalar(c, "emergency_contact"),
		"response_time":  scalar(c, "emergency_response_time"),
	}
	es.dropEmpty()

	return es
}

func (p Payload) dropEmpty() {
	for key, val := range p {
		switch v := val.(type) {
		case nil:
			delete(p, key)
		case string:
			if v == "" {
				delete(p, key)
			}
		}
	}
}

func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// ValidatePayload checks the mandatory fields of an assembled payload in the
// order they are reported to the user.
func ValidatePayload(p Payload) error {
	if p.String(FieldProfessionType) == "" {
		return &validation.Error{Field: FieldProfessionType, Message: constants.ErrMsgSelectProvider}
	}

	bag := validation.NewBag()

	email := p.String("email")
	switch {
	case email == "":
		bag.Add("email", constants.ErrMsgEmailRequired)
	case !validation.ValidateEmail(email):
		bag.Add("email", constants.ErrMsgEmailInvalid)
	}

	if p.String("first_name") == "" {
		bag.Add("first_name", "First name is required.")
	}

	if p.String("last_name") == "" {
		bag.Add("last_name", "Last name is required.")
	}

	phone := p.String("mobile_number")
	switch {
	case phone == "":
		bag.Add("mobile_number", "Phone number is required.")
	case !validation.ValidatePhone(phone):
		bag.Add("mobile_number", constants.ErrMsgPhoneInvalid)
	}

	if license := p.String("license_number"); license != "" && !validation.ValidateLicense(license) {
		bag.Add("license_number", constants.ErrMsgLicenseInvalid)
	}

	password := p.String("password")
	if password == "" {
		bag.Add("password", constants.ErrMsgPasswordRequired)
	} else {
		bag.Add("password", validation.ValidatePassword(password))
	}

	if p.String("city") == "" {
		bag.Add("city", "City is required.")
	}

	if first := bag.First(); first != nil {
		return first
	}

	return nil
}
