package events

import (
	"github.com/sirupsen/logrus"
)

// Publisher delivers events emitted by applied transactions.
type Publisher interface {
	Publish(e Event)
}

// LogPublisher writes every event as a structured log line.
type LogPublisher struct {
	log *logrus.Logger
}

// NewLogPublisher returns a Publisher that logs events through log.
func NewLogPublisher(log *logrus.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(e Event) {
	p.log.WithField("event", e.EventType()).WithFields(e.Fields()).Info("event")
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

// Buffer accumulates events in memory. The engine publishes into a Buffer
// while a transaction is being applied and flushes it only on success, so
// failed transactions never emit notifications.
type Buffer struct {
	events []Event
}

func (b *Buffer) Publish(e Event) {
	b.events = append(b.events, e)
}

// FlushTo republishes all buffered events to out and empties the buffer.
func (b *Buffer) FlushTo(out Publisher) {
	for _, e := range b.events {
		out.Publish(e)
	}
	b.events = nil
}

// Events returns the buffered events.
func (b *Buffer) Events() []Event {
	return b.events
}
