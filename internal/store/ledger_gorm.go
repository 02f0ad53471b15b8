package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"office-hours-server/internal/models"
	"office-hours-server/internal/scheduling"
)

// GormLedger keeps windows and appointments in a SQL database. Slot
// exclusivity comes from a SELECT ... FOR UPDATE on the slot_locks row, so it
// holds across server instances sharing the database.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) InsertWindow(ctx context.Context, w *models.AvailabilityWindow) error {
	return l.db.WithContext(ctx).Create(w).Error
}

func (l *GormLedger) ListWindows(ctx context.Context, filter scheduling.WindowFilter) ([]models.AvailabilityWindow, error) {
	query := l.db.WithContext(ctx).Model(&models.AvailabilityWindow{})
	if filter.ProfessorID != "" {
		query = query.Where("professor_id = ?", filter.ProfessorID)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}

	windows := []models.AvailabilityWindow{}
	if err := query.Order("created_at ASC, id ASC").Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (l *GormLedger) ListAppointments(ctx context.Context, filter scheduling.AppointmentFilter) ([]models.Appointment, error) {
	query := l.db.WithContext(ctx).Model(&models.Appointment{})
	if filter.ProfessorID != "" {
		query = query.Where("professor_id = ?", filter.ProfessorID)
	}
	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	appts := []models.Appointment{}
	if err := query.Order("created_at ASC, id ASC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (l *GormLedger) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := l.db.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scheduling.ErrNotFound
		}
		return nil, err
	}
	return &appt, nil
}

func (l *GormLedger) WithinSlot(ctx context.Context, professorID, date string, fn func(tx scheduling.SlotTx) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lock := models.SlotLock{ProfessorID: professorID, Date: date}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&lock).Error; err != nil {
			return fmt.Errorf("ensure slot lock: %w", err)
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("professor_id = ? AND date = ?", professorID, date).
			Take(&lock).Error; err != nil {
			return fmt.Errorf("acquire slot lock: %w", err)
		}
		return fn(&gormSlotTx{tx: tx, professorID: professorID, date: date})
	})
}

type gormSlotTx struct {
	tx          *gorm.DB
	professorID string
	date        string
}

func (s *gormSlotTx) slot(ctx context.Context, model any) *gorm.DB {
	return s.tx.WithContext(ctx).Model(model).Where("professor_id = ? AND date = ?", s.professorID, s.date)
}

func (s *gormSlotTx) Windows(ctx context.Context) ([]models.AvailabilityWindow, error) {
	windows := []models.AvailabilityWindow{}
	err := s.slot(ctx, &models.AvailabilityWindow{}).
		Order("created_at ASC, id ASC").
		Find(&windows).Error
	return windows, err
}

func (s *gormSlotTx) ActiveAppointments(ctx context.Context) ([]models.Appointment, error) {
	appts := []models.Appointment{}
	err := s.slot(ctx, &models.Appointment{}).
		Where("status = ?", models.StatusActive).
		Order("start_time ASC").
		Find(&appts).Error
	return appts, err
}

func (s *gormSlotTx) Appointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.slot(ctx, &models.Appointment{}).Where("id = ?", id).Take(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scheduling.ErrNotFound
		}
		return nil, err
	}
	return &appt, nil
}

func (s *gormSlotTx) InsertAppointment(ctx context.Context, a *models.Appointment) error {
	return s.tx.WithContext(ctx).Create(a).Error
}

func (s *gormSlotTx) SaveAppointment(ctx context.Context, a *models.Appointment) error {
	return s.tx.WithContext(ctx).Save(a).Error
}
