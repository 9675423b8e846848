// Package notify delivers the transient notifications triggered by the
// dashboard's call-to-action buttons.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind selects the notification color.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
)

// Valid reports whether k is a known notification kind.
func (k Kind) Valid() bool {
	switch k {
	case KindInfo, KindSuccess:
		return true
	}
	return false
}

var (
	// ErrInvalid is returned for notifications that cannot be shown.
	ErrInvalid = errors.New("invalid notification")
	// ErrClosed is returned by a Hub after Close.
	ErrClosed = errors.New("notifier closed")
)

// Notification is a message shown for Duration and then dismissed.
type Notification struct {
	ID        string
	Message   string
	Kind      Kind
	Duration  time.Duration
	CreatedAt time.Time
}

// New returns a Notification with a fresh ID.
func New(message string, kind Kind, d time.Duration) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		Duration:  d,
		CreatedAt: time.Now(),
	}
}

// ExpiresAt is the moment the notification is dismissed.
func (n Notification) ExpiresAt() time.Time {
	return n.CreatedAt.Add(n.Duration)
}

// Validate checks that n can be shown.
func (n Notification) Validate() error {
	if n.Message == "" {
		return fmt.Errorf("notify: empty message: %w", ErrInvalid)
	}
	if !n.Kind.Valid() {
		return fmt.Errorf("notify: unknown kind %q: %w", n.Kind, ErrInvalid)
	}
	if n.Duration <= 0 {
		return fmt.Errorf("notify: non-positive duration %s: %w", n.Duration, ErrInvalid)
	}
	return nil
}

type notificationJSON struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Kind       Kind      `json:"kind"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// MarshalJSON encodes the duration in milliseconds for the browser.
func (n Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(notificationJSON{
		ID:         n.ID,
		Message:    n.Message,
		Kind:       n.Kind,
		DurationMS: n.Duration.Milliseconds(),
		CreatedAt:  n.CreatedAt,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (n *Notification) UnmarshalJSON(data []byte) error {
	var v notificationJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Notification{
		ID:        v.ID,
		Message:   v.Message,
		Kind:      v.Kind,
		Duration:  time.Duration(v.DurationMS) * time.Millisecond,
		CreatedAt: v.CreatedAt,
	}
	return nil
}

// Notifier shows notifications.
type Notifier interface {
	Show(ctx context.Context, n Notification) error
}

// Multi fans a notification out to every notifier, stopping at the first error.
func Multi(ns ...Notifier) Notifier {
	return multi(ns)
}

type multi []Notifier

func (m multi) Show(ctx context.Context, n Notification) error {
	for _, x := range m {
		if err := x.Show(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
