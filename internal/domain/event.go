package domain

import (
	"strconv"
	"time"
)

// BookingEventType identifies the kind of booking event
type BookingEventType string

const (
	// BookingEventCreated is emitted after a booking is committed
	BookingEventCreated BookingEventType = "booking.created"
)

// BookingEventTopic is the Kafka topic booking events are published to
const BookingEventTopic = "booking-events"

// BookingEvent is the envelope published for booking lifecycle changes
type BookingEvent struct {
	EventID   string           `json:"eventId"`
	EventType BookingEventType `json:"eventType"`
	Version   int              `json:"version"`
	Timestamp time.Time        `json:"timestamp"`

	Booking      *Booking      `json:"booking"`
	Availability *Availability `json:"availability,omitempty"`
}

// NewBookingEvent creates an event envelope for the booking. The
// availability snapshot reflects the ledger immediately after the change.
func NewBookingEvent(eventType BookingEventType, booking *Booking, availability *Availability, eventID string) *BookingEvent {
	return &BookingEvent{
		EventID:      eventID,
		EventType:    eventType,
		Version:      1,
		Timestamp:    time.Now(),
		Booking:      booking,
		Availability: availability,
	}
}

// Topic returns the Kafka topic for the event
func (e *BookingEvent) Topic() string {
	return BookingEventTopic
}

// Key returns the partition key. Keying by tour keeps events for one tour
// ordered.
func (e *BookingEvent) Key() string {
	if e.Booking == nil {
		return ""
	}
	return strconv.FormatInt(e.Booking.TourID, 10)
}
