// Package scheduling owns the rules for professor availability and student
// appointments: who may do what, which slots can be booked, and how bookings
// are cancelled.
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"office-hours-server/internal/models"
)

// WindowRequest is the input of PublishAvailability.
type WindowRequest struct {
	Date      string
	StartTime string
	EndTime   string
}

// BookingRequest is the input of BookAppointment.
type BookingRequest struct {
	ProfessorID string
	Date        string
	StartTime   string
	EndTime     string
}

// AvailabilityQuery narrows ListAvailability and ListOpenSlots.
type AvailabilityQuery struct {
	ProfessorID string
	Date        string
}

// OpenSlot is the part of a window not covered by an active appointment.
type OpenSlot struct {
	WindowID    string `json:"windowId"`
	ProfessorID string `json:"professorId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the zone that stored dates and times are read in.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

type Engine struct {
	ledger Ledger
	logger *zap.Logger
	now    func() time.Time
	loc    *time.Location
}

func NewEngine(ledger Ledger, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		ledger: ledger,
		logger: logger,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PublishAvailability records a window in which the calling professor accepts
// appointments. Windows may overlap each other.
func (e *Engine) PublishAvailability(ctx context.Context, p Principal, req WindowRequest) (*models.AvailabilityWindow, error) {
	if err := Authorize(p, OpPublishAvailability); err != nil {
		return nil, err
	}

	ve := &ValidationError{}
	validateDate(ve, "date", req.Date)
	validateRange(ve, req.StartTime, req.EndTime)
	if err := ve.Err(); err != nil {
		return nil, err
	}

	w := &models.AvailabilityWindow{
		ProfessorID: p.ID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := e.ledger.InsertWindow(ctx, w); err != nil {
		return nil, fmt.Errorf("insert availability window: %w", err)
	}

	e.logger.Info("availability published",
		zap.String("windowId", w.ID),
		zap.String("professorId", p.ID),
		zap.String("date", w.Date),
		zap.String("startTime", w.StartTime),
		zap.String("endTime", w.EndTime),
	)
	return w, nil
}

// ListAvailability returns published windows in insertion order. It does not
// subtract booked time; see ListOpenSlots for that.
func (e *Engine) ListAvailability(ctx context.Context, p Principal, q AvailabilityQuery) ([]models.AvailabilityWindow, error) {
	if err := Authorize(p, OpListAvailability); err != nil {
		return nil, err
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	windows, err := e.ledger.ListWindows(ctx, WindowFilter{ProfessorID: q.ProfessorID, Date: q.Date})
	if err != nil {
		return nil, fmt.Errorf("list availability windows: %w", err)
	}
	return windows, nil
}

// ListOpenSlots returns, for every matching window, the pieces of it that no
// active appointment covers.
func (e *Engine) ListOpenSlots(ctx context.Context, p Principal, q AvailabilityQuery) ([]OpenSlot, error) {
	windows, err := e.ListAvailability(ctx, p, q)
	if err != nil {
		return nil, err
	}

	booked, err := e.ledger.ListAppointments(ctx, AppointmentFilter{
		ProfessorID: q.ProfessorID,
		Date:        q.Date,
		Status:      models.StatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("list active appointments: %w", err)
	}

	taken := make(map[string][]Interval)
	for _, a := range booked {
		iv, err := NewInterval(a.StartTime, a.EndTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %s: %w", a.ID, err)
		}
		key := slotKey(a.ProfessorID, a.Date)
		taken[key] = append(taken[key], iv)
	}

	slots := make([]OpenSlot, 0, len(windows))
	for _, w := range windows {
		iv, err := NewInterval(w.StartTime, w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", w.ID, err)
		}
		for _, free := range iv.Subtract(taken[slotKey(w.ProfessorID, w.Date)]) {
			slots = append(slots, OpenSlot{
				WindowID:    w.ID,
				ProfessorID: w.ProfessorID,
				Date:        w.Date,
				StartTime:   FormatClock(free.Start),
				EndTime:     FormatClock(free.End),
			})
		}
	}
	return slots, nil
}

// BookAppointment reserves a slot for the calling student. The slot must sit
// inside one published window and must not overlap an active appointment of
// the same professor on that date. The check and the insert are atomic.
func (e *Engine) BookAppointment(ctx context.Context, p Principal, req BookingRequest) (*models.Appointment, error) {
	if err := Authorize(p, OpBookAppointment); err != nil {
		return nil, err
	}

	ve := &ValidationError{}
	validateProfessorID(ve, req.ProfessorID, true)
	validateDate(ve, "date", req.Date)
	candidate, ok := validateRange(ve, req.StartTime, req.EndTime)
	if ok && len(ve.Fields) == 0 {
		start, err := StartsAt(req.Date, req.StartTime, e.loc)
		if err == nil && start.Before(e.now()) {
			ve.Add("startTime", "appointment must start in the future")
		}
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	var booked *models.Appointment
	err := e.ledger.WithinSlot(ctx, req.ProfessorID, req.Date, func(tx SlotTx) error {
		windows, err := tx.Windows(ctx)
		if err != nil {
			return err
		}
		if !coveredByWindow(candidate, windows) {
			return ErrNotAvailable
		}

		active, err := tx.ActiveAppointments(ctx)
		if err != nil {
			return err
		}
		for _, a := range active {
			iv, err := NewInterval(a.StartTime, a.EndTime)
			if err != nil {
				return fmt.Errorf("appointment %s: %w", a.ID, err)
			}
			if iv.Overlaps(candidate) {
				return ErrConflict
			}
		}

		appt := &models.Appointment{
			ProfessorID: req.ProfessorID,
			StudentID:   p.ID,
			Date:        req.Date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Status:      models.StatusActive,
		}
		if err := tx.InsertAppointment(ctx, appt); err != nil {
			return err
		}
		booked = appt
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			e.logger.Debug("booking rejected",
				zap.String("studentId", p.ID),
				zap.String("professorId", req.ProfessorID),
				zap.String("date", req.Date),
				zap.Error(err),
			)
			return nil, err
		}
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	e.logger.Info("appointment booked",
		zap.String("appointmentId", booked.ID),
		zap.String("studentId", p.ID),
		zap.String("professorId", booked.ProfessorID),
		zap.String("date", booked.Date),
		zap.String("startTime", booked.StartTime),
		zap.String("endTime", booked.EndTime),
	)
	return booked, nil
}

// CancelAppointment marks one of the calling professor's future appointments
// as cancelled. Appointments of other professors are reported as not found.
// Cancelling an already cancelled future appointment returns it unchanged.
func (e *Engine) CancelAppointment(ctx context.Context, p Principal, appointmentID string) (*models.Appointment, error) {
	if err := Authorize(p, OpCancelAppointment); err != nil {
		return nil, err
	}
	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" {
		ve := &ValidationError{}
		ve.Add("appointmentId", "appointmentId is required")
		return nil, ve
	}

	appt, err := e.ledger.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if appt.ProfessorID != p.ID {
		return nil, ErrNotFound
	}

	var cancelled *models.Appointment
	err = e.ledger.WithinSlot(ctx, appt.ProfessorID, appt.Date, func(tx SlotTx) error {
		current, err := tx.Appointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		start, err := StartsAt(current.Date, current.StartTime, e.loc)
		if err != nil {
			return fmt.Errorf("appointment %s: %w", current.ID, err)
		}
		now := e.now()
		if start.Before(now) {
			return ErrPastAppointment
		}
		if current.Status == models.StatusCancelled {
			cancelled = current
			return nil
		}

		current.Status = models.StatusCancelled
		current.CancelledAt = &now
		if err := tx.SaveAppointment(ctx, current); err != nil {
			return err
		}
		cancelled = current
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	e.logger.Info("appointment cancelled",
		zap.String("appointmentId", cancelled.ID),
		zap.String("professorId", p.ID),
		zap.String("studentId", cancelled.StudentID),
	)
	return cancelled, nil
}

// ListMyAppointments returns the calling student's appointments in booking
// order, optionally narrowed by status.
func (e *Engine) ListMyAppointments(ctx context.Context, p Principal, status string) ([]models.Appointment, error) {
	if err := Authorize(p, OpListMyAppointments); err != nil {
		return nil, err
	}
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	appts, err := e.ledger.ListAppointments(ctx, AppointmentFilter{StudentID: p.ID, Status: st})
	if err != nil {
		return nil, fmt.Errorf("list student appointments: %w", err)
	}
	return appts, nil
}

// ListProfessorAppointments returns the calling professor's appointments
// ordered by date and start time.
func (e *Engine) ListProfessorAppointments(ctx context.Context, p Principal, status string) ([]models.Appointment, error) {
	if err := Authorize(p, OpListProfessorAppointments); err != nil {
		return nil, err
	}
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	appts, err := e.ledger.ListAppointments(ctx, AppointmentFilter{ProfessorID: p.ID, Status: st})
	if err != nil {
		return nil, fmt.Errorf("list professor appointments: %w", err)
	}
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].StartTime < appts[j].StartTime
	})
	return appts, nil
}

func isDomainError(err error) bool {
	if _, ok := IsValidation(err); ok {
		return true
	}
	for _, target := range []error{ErrNotFound, ErrConflict, ErrNotAvailable, ErrPastAppointment, ErrForbidden} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func coveredByWindow(candidate Interval, windows []models.AvailabilityWindow) bool {
	for _, w := range windows {
		iv, err := NewInterval(w.StartTime, w.EndTime)
		if err != nil {
			continue
		}
		if iv.Contains(candidate) {
			return true
		}
	}
	return false
}

func slotKey(professorID, date string) string {
	return professorID + "|" + date
}

func validateDate(ve *ValidationError, field, value string) {
	if value == "" {
		ve.Add(field, field+" is required")
		return
	}
	if _, err := ParseDate(value); err != nil {
		ve.Add(field, err.Error())
	}
}

func validateProfessorID(ve *ValidationError, value string, required bool) {
	if value == "" {
		if required {
			ve.Add("professorId", "professorId is required")
		}
		return
	}
	if _, err := uuid.Parse(value); err != nil {
		ve.Add("professorId", "professorId must be a valid identifier")
	}
}

// validateRange checks both clock fields and their ordering. The interval is
// only meaningful when ok is true.
func validateRange(ve *ValidationError, start, end string) (Interval, bool) {
	var iv Interval
	ok := true
	if start == "" {
		ve.Add("startTime", "startTime is required")
		ok = false
	} else if m, err := ParseClock(start); err != nil {
		ve.Add("startTime", err.Error())
		ok = false
	} else {
		iv.Start = m
	}
	if end == "" {
		ve.Add("endTime", "endTime is required")
		ok = false
	} else if m, err := ParseClock(end); err != nil {
		ve.Add("endTime", err.Error())
		ok = false
	} else {
		iv.End = m
	}
	if ok && iv.Empty() {
		ve.Add("endTime", "endTime must be after startTime")
		ok = false
	}
	return iv, ok
}

func validateQuery(q AvailabilityQuery) error {
	ve := &ValidationError{}
	validateProfessorID(ve, q.ProfessorID, false)
	if q.Date != "" {
		validateDate(ve, "date", q.Date)
	}
	return ve.Err()
}

func parseStatus(s string) (models.AppointmentStatus, error) {
	if s == "" {
		return "", nil
	}
	st := models.AppointmentStatus(s)
	if !st.Valid() {
		ve := &ValidationError{}
		ve.Add("status", "status must be one of active, cancelled")
		return "", ve
	}
	return st, nil
}
