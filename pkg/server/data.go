package server

import (
	"encoding/json"
	"time"

	"github.com/ataboo/go-furglo-web/pkg/session"
	"github.com/ataboo/go-furglo-web/pkg/wizard"
)

type LoginData struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	ActorKind string `json:"actor_kind"`
}

type EmailData struct {
	Email     string `json:"email"`
	ActorKind string `json:"actor_kind"`
}

type ResetPasswordData struct {
	Token     string `json:"token"`
	Password  string `json:"password"`
	ActorKind string `json:"actor_kind"`
}

type ProfessionData struct {
	Provider string `json:"provider" form:"provider"`
}

type LocateData struct {
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lon"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type LoginResponse struct {
	Message   string            `json:"message"`
	Redirect  string            `json:"redirect"`
	ActorKind session.ActorKind `json:"actor_kind"`
	Profile   json.RawMessage   `json:"profile,omitempty"`
}

type SessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	ActorKind     session.ActorKind `json:"actor_kind,omitempty"`
	Profile       json.RawMessage   `json:"profile,omitempty"`
	ExpiresAt     int64             `json:"expires_at,omitempty"`
}

type RegistrationResponse struct {
	Message string      `json:"message"`
	View    wizard.View `json:"view"`
}

type LocateResponse struct {
	City    string      `json:"city"`
	Country string      `json:"country"`
	Label   string      `json:"label"`
	View    wizard.View `json:"view"`
}

type UploadPreview struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	Kind        string `json:"kind"`
}

type NotificationData struct {
	ID        string    `json:"id"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Critical  bool      `json:"critical,omitempty"`
	DismissMs int64     `json:"dismiss_ms"`
	CreatedAt time.Time `json:"created_at"`
}
