package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/booking-actions/internal/model"
)

// All booking repository methods here

func (r *bookingRepository) CreateBooking(ctx context.Context, booking *model.Booking) (*model.Appointment, error) {
	var appointment *model.Appointment

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		patientID, err := insertPatient(ctx, tx, booking)
		if err != nil {
			return err
		}
		if err := insertExtraInfo(ctx, tx, patientID, booking); err != nil {
			return err
		}
		doctorID, err := upsertDoctor(ctx, tx, booking.DoctorName)
		if err != nil {
			return err
		}
		specialtyID, err := upsertSpecialty(ctx, tx, booking.Specialty)
		if err != nil {
			return err
		}

		appointment, err = insertAppointment(ctx, tx, patientID, doctorID, specialtyID, booking)
		if err != nil {
			return err
		}

		return insertBookingEvent(ctx, tx, model.EventBookingCreated, &model.BookingEventPayload{
			AppointmentID: appointment.ID,
			PatientName:   booking.FirstName + " " + booking.LastName,
			DoctorName:    booking.DoctorName,
			Specialty:     booking.Specialty,
			Date:          booking.Date,
			Time:          booking.Time,
		})
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *bookingRepository) CancelBooking(ctx context.Context, cancellation *model.Cancellation) (int64, error) {
	var affected int64

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE appointments a
			SET status = $1, updated_at = $2
			FROM patients p, medical_specialties s
			WHERE a.patient_id = p.id
			  AND a.specialty_id = s.id
			  AND p.first_name = $3
			  AND p.last_name = $4
			  AND a.date = $5
			  AND s.specialty = $6
			  AND a.status = $7
		`
		result, err := tx.ExecContext(ctx, query,
			model.AppointmentStatusCanceled,
			time.Now(),
			cancellation.FirstName,
			cancellation.LastName,
			cancellation.Date,
			cancellation.Specialty,
			model.AppointmentStatusActive,
		)
		if err != nil {
			return fmt.Errorf("failed to cancel appointment: %w", err)
		}

		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return nil
		}

		return insertBookingEvent(ctx, tx, model.EventBookingCanceled, &model.BookingEventPayload{
			PatientName: cancellation.FirstName + " " + cancellation.LastName,
			Specialty:   cancellation.Specialty,
			Date:        cancellation.Date,
		})
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func insertPatient(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) (uuid.UUID, error) {
	query := `
		INSERT INTO patients (id, first_name, last_name, created_at)
		VALUES ($1, $2, $3, $4)
	`
	id := uuid.New()
	_, err := tx.ExecContext(ctx, query, id, booking.FirstName, booking.LastName, time.Now())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return id, nil
}

func insertExtraInfo(ctx context.Context, tx *sqlx.Tx, patientID uuid.UUID, booking *model.Booking) error {
	query := `
		INSERT INTO patients_extra_info (
			id, patient_id, gender, age,
			weight_risk, hypertension, smoker, recent_surgeries
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.ExecContext(ctx, query,
		uuid.New(),
		patientID,
		booking.Gender,
		booking.Age,
		booking.WeightRisk,
		booking.Hypertension,
		booking.Smoker,
		booking.RecentSurgeries,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient extra info: %w", err)
	}
	return nil
}

// upsertDoctor deduplicates doctors by name. The no-op update makes
// RETURNING yield the existing id on conflict, so concurrent sessions racing
// on the same name both get the same row.
func upsertDoctor(ctx context.Context, tx *sqlx.Tx, name string) (uuid.UUID, error) {
	query := `
		INSERT INTO doctors (id, doctor_name)
		VALUES ($1, $2)
		ON CONFLICT (doctor_name) DO UPDATE SET doctor_name = EXCLUDED.doctor_name
		RETURNING id
	`
	var id uuid.UUID
	if err := tx.GetContext(ctx, &id, query, uuid.New(), name); err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert doctor: %w", err)
	}
	return id, nil
}

func upsertSpecialty(ctx context.Context, tx *sqlx.Tx, name string) (uuid.UUID, error) {
	query := `
		INSERT INTO medical_specialties (id, specialty)
		VALUES ($1, $2)
		ON CONFLICT (specialty) DO UPDATE SET specialty = EXCLUDED.specialty
		RETURNING id
	`
	var id uuid.UUID
	if err := tx.GetContext(ctx, &id, query, uuid.New(), name); err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert specialty: %w", err)
	}
	return id, nil
}

func insertAppointment(ctx context.Context, tx *sqlx.Tx, patientID, doctorID, specialtyID uuid.UUID, booking *model.Booking) (*model.Appointment, error) {
	query := `
		INSERT INTO appointments (
			id, patient_id, date, time,
			doctor_id, specialty_id, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	appointment := &model.Appointment{
		ID:          uuid.New(),
		PatientID:   patientID,
		Date:        booking.Date,
		Time:        booking.Time,
		DoctorID:    doctorID,
		SpecialtyID: specialtyID,
		Status:      model.AppointmentStatusActive,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	_, err := tx.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.Date,
		appointment.Time,
		appointment.DoctorID,
		appointment.SpecialtyID,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

func insertBookingEvent(ctx context.Context, tx *sqlx.Tx, eventType string, payload *model.BookingEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `
		INSERT INTO outbox_events (
			id, event_type, payload, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, query,
		uuid.New(),
		eventType,
		body,
		model.OutboxStatusPending,
		time.Now(),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}
