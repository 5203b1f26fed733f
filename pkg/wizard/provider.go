package wizard

import (
	"strings"

	"github.com/ataboo/go-furglo-web/pkg/constants"
	"github.com/friendsofgo/errors"
)

// ProviderType identifies one registration form (the provider card a
// professional picked).
type ProviderType string

const (
	ProviderVet       ProviderType = "vet"
	ProviderGroomer   ProviderType = "groomer"
	ProviderBoarding  ProviderType = "boarding"
	ProviderTrainer   ProviderType = "trainer"
	ProviderSitter    ProviderType = "sitter"
	ProviderTransport ProviderType = "transport"
	ProviderLab       ProviderType = "lab"
)

var AllProviders = []ProviderType{
	ProviderVet,
	ProviderGroomer,
	ProviderBoarding,
	ProviderTrainer,
	ProviderSitter,
	ProviderTransport,
	ProviderLab,
}

var ErrUnknownProvider = errors.New("unknown provider type")

func ParseProviderType(s string) (ProviderType, error) {
	p := ProviderType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllProviders {
		if p == known {
			return p, nil
		}
	}

	return "", errors.Wrapf(ErrUnknownProvider, "%q", s)
}

// ProfessionType is the backend profession the payload assembly maps to.
func (p ProviderType) ProfessionType() string {
	switch p {
	case ProviderVet:
		return constants.ProfessionVeterinarian
	case ProviderGroomer:
		return constants.ProfessionGroomer
	case ProviderBoarding:
		return constants.ProfessionBoarding
	case ProviderTrainer:
		return constants.ProfessionTrainer
	case ProviderSitter:
		return constants.ProfessionPetSitter
	case ProviderTransport:
		return constants.ProfessionTransporter
	case ProviderLab:
		return constants.ProfessionDiagnosticLab
	}

	return ""
}

// LegacyProfessionType is the coarser mapping written to the hidden
// profession_type field when a provider card is selected. Boarding,
// transport and sitter all collapse to pet_sitter here while
// ProfessionType keeps them apart. Both are kept as the backend sees them.
func (p ProviderType) LegacyProfessionType() string {
	switch p {
	case ProviderVet:
		return "veterinarian"
	case ProviderGroomer:
		return "pet_groomer"
	case ProviderBoarding, ProviderTransport, ProviderSitter:
		return "pet_sitter"
	case ProviderTrainer:
		return "pet_trainer"
	case ProviderLab:
		return "veterinary_technician"
	}

	return ""
}
