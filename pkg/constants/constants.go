// Package constants holds the static endpoint paths, storage keys, profession
// types and message catalogs shared by the rest of the client.
package constants

import "regexp"

type Endpoints struct {
	Register       string
	Login          string
	GoogleAuth     string
	AppleAuth      string
	ForgotPassword string
	ResetPassword  string
	VerifyEmail    string
	RefreshToken   string
	Logout         string
	Profile        string
}

func endpointsFor(group string) Endpoints {
	prefix := "/auth/" + group

	return Endpoints{
		Register:       prefix + "/register",
		Login:          prefix + "/login",
		GoogleAuth:     prefix + "/google",
		AppleAuth:      prefix + "/apple",
		ForgotPassword: prefix + "/forgot-password",
		ResetPassword:  prefix + "/reset-password",
		VerifyEmail:    prefix + "/verify-email",
		RefreshToken:   prefix + "/refresh-token",
		Logout:         prefix + "/logout",
		Profile:        prefix + "/profile",
	}
}

var (
	UserEndpoints         = endpointsFor("users")
	ProfessionalEndpoints = endpointsFor("professionals")
)

const (
	StorageKeyAccessToken  = "ecostat_access_token"
	StorageKeyRefreshToken = "ecostat_refresh_token"
	StorageKeyUserType     = "ecostat_user_type"
	StorageKeyUserData     = "ecostat_user_data"
)

// StorageKeys lists every persisted session key.
var StorageKeys = []string{
	StorageKeyAccessToken,
	StorageKeyRefreshToken,
	StorageKeyUserType,
	StorageKeyUserData,
}

// Profession types as the backend defines them.
const (
	ProfessionVeterinarian  = "veterinarian"
	ProfessionGroomer       = "groomer"
	ProfessionBoarding      = "boarding"
	ProfessionTrainer       = "trainer"
	ProfessionPetSitter     = "pet_sitter"
	ProfessionTransporter   = "transporter"
	ProfessionDiagnosticLab = "diagnostic_lab"
)

const PasswordMinLength = 8

var (
	// Whitespace here is every Unicode space separator plus \v and BOM,
	// not just RE2's ASCII \s.
	EmailPattern   = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	PhonePattern   = regexp.MustCompile(`^\+?[\d\s\v\p{Z}\x{FEFF}\-\(\)]+$`)
	LicensePattern = regexp.MustCompile(`(?i)^[A-Z0-9\-]+$`)

	// RE2 has no lookahead, so the password policy is a leading-character
	// pattern plus one pattern per required character class.
	PasswordPattern      = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]`)
	PasswordRequirements = []*regexp.Regexp{
		regexp.MustCompile(`[a-z]`),
		regexp.MustCompile(`[A-Z]`),
		regexp.MustCompile(`\d`),
		regexp.MustCompile(`[@$!%*?&]`),
	}
)

const (
	ErrMsgNetwork            = "Network error. Please check your connection and try again."
	ErrMsgTimeout            = "Request timeout"
	ErrMsgInvalidCredentials = "Invalid email or password. Please try again."
	ErrMsgEmailRequired      = "Email address is required."
	ErrMsgPasswordRequired   = "Password is required."
	ErrMsgPasswordWeak       = "Password must be at least 8 characters with uppercase, lowercase, number and special character."
	ErrMsgEmailInvalid       = "Please enter a valid email address."
	ErrMsgPhoneInvalid       = "Please enter a valid phone number."
	ErrMsgLicenseInvalid     = "Please enter a valid license number."
	ErrMsgRegistrationFailed = "Registration failed. Please try again."
	ErrMsgLoginFailed        = "Login failed. Please check your credentials."
	ErrMsgSessionExpired     = "Your session has expired. Please log in again."
	ErrMsgUnauthorized       = "You are not authorized to perform this action."
	ErrMsgServer             = "Server error. Please try again later."
	ErrMsgEmailExists        = "Email already exists"
	ErrMsgSelectProvider     = "Please select a provider type from the cards above first."
	ErrMsgLocationFailed     = "Could not determine city from coordinates. Please enter manually."
	ErrMsgAppleUnavailable   = "Apple login is not yet implemented"
	ErrMsgEmailFirst         = "Please enter your email address first"
	ErrMsgResetEmailFailed   = "Failed to send password reset email"
)

const (
	MsgRegistrationSuccess  = "Registration successful! Please check your email to verify your account."
	MsgLoginSuccess         = "Login successful! Redirecting to dashboard..."
	MsgLogoutSuccess        = "Logged out successfully."
	MsgPasswordResetSent    = "Password reset link sent to your email."
	MsgPasswordResetSuccess = "Password reset successfully."
	MsgEmailVerified        = "Email verified successfully."
	MsgProfileUpdated       = "Profile updated successfully."
	MsgLocationDetected     = "Location detected successfully!"
)

const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusUnprocessableEntity = 422
	StatusInternalServerError = 500
	StatusBadGateway          = 502
)
