package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusActive   AppointmentStatus = "active"
	AppointmentStatusCanceled AppointmentStatus = "canceled"
)

type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PatientExtraInfo carries the answers to the medical screening form,
// keyed to the patient created in the same transaction.
type PatientExtraInfo struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	Gender          string    `db:"gender" json:"gender"`
	Age             int       `db:"age" json:"age"`
	WeightRisk      bool      `db:"weight_risk" json:"weight_risk"`
	Hypertension    bool      `db:"hypertension" json:"hypertension"`
	Smoker          bool      `db:"smoker" json:"smoker"`
	RecentSurgeries bool      `db:"recent_surgeries" json:"recent_surgeries"`
}

// Doctor and Specialty are reference entities deduplicated by natural key
// before an appointment references them.
type Doctor struct {
	ID         uuid.UUID `db:"id" json:"id"`
	DoctorName string    `db:"doctor_name" json:"doctor_name"`
}

type Specialty struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Specialty string    `db:"specialty" json:"specialty"`
}

type Appointment struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	PatientID   uuid.UUID         `db:"patient_id" json:"patient_id"`
	Date        string            `db:"date" json:"date"`
	Time        string            `db:"time" json:"time"`
	DoctorID    uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	SpecialtyID uuid.UUID         `db:"specialty_id" json:"specialty_id"`
	Status      AppointmentStatus `db:"status" json:"status"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// AppointmentDetail is the admin read model, joined across the reference
// entities.
type AppointmentDetail struct {
	ID         uuid.UUID         `db:"id" json:"id"`
	FirstName  string            `db:"first_name" json:"first_name"`
	LastName   string            `db:"last_name" json:"last_name"`
	Date       string            `db:"date" json:"date"`
	Time       string            `db:"time" json:"time"`
	DoctorName string            `db:"doctor_name" json:"doctor_name"`
	Specialty  string            `db:"specialty" json:"specialty"`
	Status     AppointmentStatus `db:"status" json:"status"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
}

// Booking is a fully validated slot set mapped to relational form, the unit
// the persistence layer writes in one transaction.
type Booking struct {
	FirstName       string
	LastName        string
	Gender          string
	Age             int
	WeightRisk      bool
	Hypertension    bool
	Smoker          bool
	RecentSurgeries bool
	Date            string
	Time            string
	DoctorName      string
	Specialty       string
}

// Cancellation identifies an active appointment by the natural attributes
// collected in the cancellation form.
type Cancellation struct {
	FirstName string
	LastName  string
	Date      string
	Specialty string
}

type AppointmentFilters struct {
	Status    AppointmentStatus
	Date      string
	Specialty string
}
