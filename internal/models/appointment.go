package models

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusActive    AppointmentStatus = "active"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	return s == StatusActive || s == StatusCancelled
}

// Appointment is a student's booking of a professor's time on a given date.
// Date is stored as YYYY-MM-DD and the times as HH:mm.
type Appointment struct {
	BaseModel
	ProfessorID string            `gorm:"size:36;not null;index:idx_appointments_slot,priority:1" json:"professorId"`
	StudentID   string            `gorm:"size:36;not null;index" json:"studentId"`
	Date        string            `gorm:"size:10;not null;index:idx_appointments_slot,priority:2" json:"date"`
	StartTime   string            `gorm:"size:5;not null" json:"startTime"`
	EndTime     string            `gorm:"size:5;not null" json:"endTime"`
	Status      AppointmentStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
	CancelledAt *time.Time        `json:"cancelledAt,omitempty"`
}

// IsActive reports whether the appointment still holds its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusActive
}
