package server

import (
	"strings"

	"github.com/ataboo/go-furglo-web/pkg/constants"
	"github.com/ataboo/go-furglo-web/pkg/session"
	"github.com/ataboo/go-furglo-web/pkg/validation"
)

// parseActorKind defaults to professional, the only actor the pages sign in.
func parseActorKind(raw string) (session.ActorKind, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return session.ActorProfessional, nil
	}

	kind := session.ActorKind(raw)
	if !kind.Valid() {
		return "", &validation.Error{Field: "actor_kind", Message: "Unknown account type."}
	}

	return kind, nil
}

func validateEmailField(bag *validation.Bag, email string, requiredMsg string) {
	switch {
	case !validation.Required(email):
		bag.Add("email", validation.Response(requiredMsg))
	case !validation.ValidateEmail(email):
		bag.Add("email", constants.ErrMsgEmailInvalid)
	}
}

func validateLogin(data *LoginData) error {
	data.Email = strings.TrimSpace(data.Email)

	bag := validation.NewBag()
	validateEmailField(bag, data.Email, constants.ErrMsgEmailRequired)

	if data.Password == "" {
		bag.Add("password", constants.ErrMsgPasswordRequired)
	}

	if first := bag.First(); first != nil {
		return first
	}

	return nil
}

func validateEmailRequest(data *EmailData) error {
	data.Email = strings.TrimSpace(data.Email)

	bag := validation.NewBag()
	validateEmailField(bag, data.Email, constants.ErrMsgEmailFirst)

	if first := bag.First(); first != nil {
		return first
	}

	return nil
}

func validateResetPassword(data *ResetPasswordData) error {
	bag := validation.NewBag()

	if !validation.Required(data.Token) {
		bag.Add("token", "Reset token is required.")
	}

	if data.Password == "" {
		bag.Add("password", constants.ErrMsgPasswordRequired)
	} else {
		bag.Add("password", validation.ValidatePassword(data.Password))
	}

	if first := bag.First(); first != nil {
		return first
	}

	return nil
}
