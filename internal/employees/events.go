package employees

import (
	"context"
	"time"

	"employee-directory/internal/models"
)

// Event actions
const (
	ActionRegistered = "registered"
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDeleted    = "deleted"
)

// Event describes a committed change to an employee record.
type Event struct {
	Action         string      `json:"action"`
	DocumentNumber int64       `json:"document_number"`
	Email          string      `json:"email"`
	Role           models.Role `json:"role"`
	OccurredAt     time.Time   `json:"occurred_at"`
}

// Notifier receives events after the change is committed.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Event) error { return nil }

func (s *Service) notify(ctx context.Context, action string, e *models.Employee) {
	event := Event{
		Action:         action,
		DocumentNumber: e.DocumentNumber,
		Email:          e.Email,
		Role:           e.Role,
		OccurredAt:     s.clock.Now(),
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("publish employee event", "action", action, "document_number", e.DocumentNumber, "err", err)
	}
}
