package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-actions/internal/model"
	"github.com/jwalitptl/booking-actions/pkg/errors"
)

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentDetail, error) {
	query := `
		SELECT a.id, p.first_name, p.last_name, a.date, a.time,
			   d.doctor_name, s.specialty, a.status, a.created_at
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN doctors d ON d.id = a.doctor_id
		JOIN medical_specialties s ON s.id = a.specialty_id
		WHERE a.id = $1
	`
	var detail model.AppointmentDetail
	err := r.db.GetContext(ctx, &detail, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &detail, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	query := `
		SELECT a.id, p.first_name, p.last_name, a.date, a.time,
			   d.doctor_name, s.specialty, a.status, a.created_at
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN doctors d ON d.id = a.doctor_id
		JOIN medical_specialties s ON s.id = a.specialty_id
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil && filters.Status != "" {
		query += fmt.Sprintf(" AND a.status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	if filters != nil && filters.Date != "" {
		query += fmt.Sprintf(" AND a.date = $%d", argCount)
		args = append(args, filters.Date)
		argCount++
	}

	if filters != nil && filters.Specialty != "" {
		query += fmt.Sprintf(" AND s.specialty = $%d", argCount)
		args = append(args, filters.Specialty)
		argCount++
	}

	query += " ORDER BY a.date ASC, a.time ASC"

	var appointments []*model.AppointmentDetail
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
