// Package notify keeps the queue of transient on-screen messages.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

var DefaultDurations = map[Severity]time.Duration{
	Error:   5 * time.Second,
	Success: 4 * time.Second,
	Info:    3 * time.Second,
	Warning: 4 * time.Second,
}

type Notification struct {
	ID               string        `json:"id"`
	Severity         Severity      `json:"severity"`
	Message          string        `json:"message"`
	Critical         bool          `json:"critical,omitempty"`
	AutoDismissAfter time.Duration `json:"auto_dismiss_after"`
	CreatedAt        time.Time     `json:"created_at"`
}

type entry struct {
	Notification
	timer *time.Timer
}

// Presenter holds the outstanding notifications in insertion order. Dismiss
// timers run independently of each other.
type Presenter struct {
	mu        sync.Mutex
	entries   []*entry
	durations map[Severity]time.Duration
}

func New() *Presenter {
	durations := make(map[Severity]time.Duration, len(DefaultDurations))
	for sev, d := range DefaultDurations {
		durations[sev] = d
	}

	return &Presenter{durations: durations}
}

// Show uses the severity's default auto-dismiss duration.
func (p *Presenter) Show(message string, severity Severity) string {
	return p.show(message, severity, p.durationFor(severity), false)
}

// ShowFor overrides the auto-dismiss duration. d <= 0 keeps the notification until hidden.
func (p *Presenter) ShowFor(message string, severity Severity, d time.Duration) string {
	return p.show(message, severity, d, false)
}

func (p *Presenter) Error(message string) string {
	return p.Show(message, Error)
}

// Critical is an error flagged for emphasis.
func (p *Presenter) Critical(message string) string {
	return p.show(message, Error, p.durationFor(Error), true)
}

func (p *Presenter) Success(message string) string {
	return p.Show(message, Success)
}

func (p *Presenter) Warning(message string) string {
	return p.Show(message, Warning)
}

func (p *Presenter) Info(message string) string {
	return p.Show(message, Info)
}

func (p *Presenter) durationFor(severity Severity) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if d, ok := p.durations[severity]; ok {
		return d
	}

	return p.durations[Info]
}

func (p *Presenter) show(message string, severity Severity, d time.Duration, critical bool) string {
	if d < 0 {
		d = 0
	}

	e := &entry{
		Notification: Notification{
			ID:               "notification_" + uuid.NewString(),
			Severity:         severity,
			Message:          message,
			Critical:         critical,
			AutoDismissAfter: d,
			CreatedAt:        time.Now(),
		},
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.entries = append(p.entries, e)

	if d > 0 {
		id := e.ID
		e.timer = time.AfterFunc(d, func() {
			p.Hide(id)
		})
	}

	return e.ID
}

// Hide removes the notification and stops its timer. Unknown ids are ignored.
func (p *Presenter) Hide(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, e := range p.entries {
		if e.ID != id {
			continue
		}

		if e.timer != nil {
			e.timer.Stop()
		}

		p.entries = append(p.entries[:i], p.entries[i+1:]...)
		return
	}
}

func (p *Presenter) HideAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, e := range p.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}

	p.entries = nil
}

// List returns a snapshot in display order.
func (p *Presenter) List() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Notification, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Notification
	}

	return out
}

func (p *Presenter) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.entries)
}
