package email

import (
	"context"
)

// Service delivers clinic-facing notifications about booking activity.
type Service interface {
	SendBookingCreated(ctx context.Context, patientName, doctorName, specialty, date, timeOfDay string) error
	SendBookingCanceled(ctx context.Context, patientName, specialty, date string) error
}
