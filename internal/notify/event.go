package notify

import (
	"context"
	"errors"
	"time"
)

const (
	EventImport      = "IMPORT"
	EventImportError = "IMPORT_ERROR"
)

// Event is a change notification sent to live subscribers.
type Event struct {
	Type      string      `json:"type"`
	Action    string      `json:"action"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewEvent(eventType, action string, data interface{}) Event {
	return Event{
		Type:      eventType,
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher delivers events on a best effort basis.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Publishers sends each event to every publisher and joins their errors.
type Publishers []Publisher

func (p Publishers) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, publisher := range p {
		if err := publisher.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
