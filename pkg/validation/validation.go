package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/ataboo/go-furglo-web/pkg/constants"
)

// Response is empty when valid, otherwise the user-facing message.
type Response string

func (r Response) Valid() bool {
	return r == ""
}

// Bag keeps field responses in the order they were added.
type Bag struct {
	fields    []string
	Responses map[string]Response
}

func NewBag() *Bag {
	return &Bag{
		Responses: make(map[string]Response),
	}
}

func (b *Bag) Add(field string, response Response) {
	if _, ok := b.Responses[field]; !ok {
		b.fields = append(b.fields, field)
	}

	b.Responses[field] = response
}

func (b *Bag) Valid() bool {
	for _, r := range b.Responses {
		if !r.Valid() {
			return false
		}
	}

	return true
}

// First returns the earliest failing field, or nil if the bag is valid.
func (b *Bag) First() *Error {
	for _, field := range b.fields {
		if r := b.Responses[field]; !r.Valid() {
			return &Error{Field: field, Message: string(r)}
		}
	}

	return nil
}

type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func ValidateEmail(email string) bool {
	return constants.EmailPattern.MatchString(email)
}

// ValidatePassword applies the strength policy. Both the length and the
// pattern clause report the same message.
func ValidatePassword(password string) Response {
	if utf8.RuneCountInString(password) < constants.PasswordMinLength {
		return constants.ErrMsgPasswordWeak
	}

	if !constants.PasswordPattern.MatchString(password) {
		return constants.ErrMsgPasswordWeak
	}

	for _, req := range constants.PasswordRequirements {
		if !req.MatchString(password) {
			return constants.ErrMsgPasswordWeak
		}
	}

	return ""
}

func ValidatePhone(phone string) bool {
	return constants.PhonePattern.MatchString(phone)
}

func ValidateLicense(license string) bool {
	return constants.LicensePattern.MatchString(license)
}

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}
