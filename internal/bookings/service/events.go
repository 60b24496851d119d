package service

import (
	"context"

	"lamsa/pkg/kafka"
	"lamsa/pkg/model"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"

	eventSchemaVersion = "1"
	eventSource        = "lamsa-bookings"
)

// Publisher abstracts the Kafka producer for testing.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// BookingEvent is the payload of booking lifecycle messages. Keyed by
// provider id so one provider's events stay ordered on one partition.
type BookingEvent struct {
	BookingID  string              `json:"booking_id"`
	ProviderID string              `json:"provider_id"`
	CustomerID string              `json:"customer_id"`
	ServiceID  string              `json:"service_id,omitempty"`
	Date       string              `json:"date"`
	StartTime  string              `json:"start_time"`
	EndTime    string              `json:"end_time"`
	Status     model.BookingStatus `json:"status"`
}

func bookingEventMessage(eventType string, b *model.Booking) kafka.Message {
	return kafka.NewMessage().
		WithKey(b.ProviderID).
		WithValue(BookingEvent{
			BookingID:  b.ID,
			ProviderID: b.ProviderID,
			CustomerID: b.CustomerID,
			ServiceID:  b.ServiceID,
			Date:       b.Date,
			StartTime:  b.StartTime,
			EndTime:    b.EndTime,
			Status:     b.Status,
		}).
		WithEventType(eventType).
		WithSource(eventSource).
		WithSchemaVersion(eventSchemaVersion).
		Build()
}
