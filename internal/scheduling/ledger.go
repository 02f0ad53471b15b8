package scheduling

import (
	"context"

	"office-hours-server/internal/models"
)

// WindowFilter narrows ListWindows. Empty fields match everything.
type WindowFilter struct {
	ProfessorID string
	Date        string
}

// AppointmentFilter narrows ListAppointments. Empty fields match everything.
type AppointmentFilter struct {
	ProfessorID string
	StudentID   string
	Date        string
	Status      models.AppointmentStatus
}

// Ledger stores availability windows and appointments. Results are returned in
// insertion order. Only the Engine is meant to write through it.
type Ledger interface {
	InsertWindow(ctx context.Context, w *models.AvailabilityWindow) error
	ListWindows(ctx context.Context, filter WindowFilter) ([]models.AvailabilityWindow, error)
	ListAppointments(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)

	// GetAppointment returns ErrNotFound when id does not exist.
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	// WithinSlot runs fn with exclusive access to the appointments of one
	// professor on one date. Writes made through the SlotTx are committed only
	// if fn returns nil. Errors returned by fn are passed through unchanged.
	WithinSlot(ctx context.Context, professorID, date string, fn func(tx SlotTx) error) error
}

// SlotTx is the view of a single (professor, date) slot inside WithinSlot.
type SlotTx interface {
	Windows(ctx context.Context) ([]models.AvailabilityWindow, error)
	ActiveAppointments(ctx context.Context) ([]models.Appointment, error)
	// Appointment returns ErrNotFound when id is not part of this slot.
	Appointment(ctx context.Context, id string) (*models.Appointment, error)
	InsertAppointment(ctx context.Context, a *models.Appointment) error
	SaveAppointment(ctx context.Context, a *models.Appointment) error
}
