package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"office-hours-server/internal/models"
	"office-hours-server/internal/scheduling"
)

// MemoryLedger is an in-process ledger used by tests and DB_DRIVER=memory.
// One mutex per (professor, date) serialises WithinSlot callers.
type MemoryLedger struct {
	mu           sync.RWMutex
	windows      []models.AvailabilityWindow
	appointments []models.Appointment

	slotsMu sync.Mutex
	slots   map[string]*sync.Mutex

	now func() time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		slots: make(map[string]*sync.Mutex),
		now:   time.Now,
	}
}

func (l *MemoryLedger) InsertWindow(_ context.Context, w *models.AvailabilityWindow) error {
	stamp(&w.BaseModel, l.now())

	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows = append(l.windows, *w)
	return nil
}

func (l *MemoryLedger) ListWindows(_ context.Context, filter scheduling.WindowFilter) ([]models.AvailabilityWindow, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []models.AvailabilityWindow{}
	for _, w := range l.windows {
		if filter.ProfessorID != "" && w.ProfessorID != filter.ProfessorID {
			continue
		}
		if filter.Date != "" && w.Date != filter.Date {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (l *MemoryLedger) ListAppointments(_ context.Context, filter scheduling.AppointmentFilter) ([]models.Appointment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []models.Appointment{}
	for _, a := range l.appointments {
		if matchAppointment(a, filter) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (l *MemoryLedger) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, a := range l.appointments {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, scheduling.ErrNotFound
}

func (l *MemoryLedger) WithinSlot(ctx context.Context, professorID, date string, fn func(tx scheduling.SlotTx) error) error {
	lock := l.slotLock(professorID, date)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memorySlotTx{ledger: l, professorID: professorID, date: date}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (l *MemoryLedger) slotLock(professorID, date string) *sync.Mutex {
	l.slotsMu.Lock()
	defer l.slotsMu.Unlock()

	key := professorID + "|" + date
	m, ok := l.slots[key]
	if !ok {
		m = &sync.Mutex{}
		l.slots[key] = m
	}
	return m
}

// memorySlotTx buffers writes until fn succeeds.
type memorySlotTx struct {
	ledger      *MemoryLedger
	professorID string
	date        string

	inserted []models.Appointment
	saved    map[string]models.Appointment
}

func (t *memorySlotTx) Windows(ctx context.Context) ([]models.AvailabilityWindow, error) {
	return t.ledger.ListWindows(ctx, scheduling.WindowFilter{ProfessorID: t.professorID, Date: t.date})
}

func (t *memorySlotTx) current() []models.Appointment {
	t.ledger.mu.RLock()
	defer t.ledger.mu.RUnlock()

	var out []models.Appointment
	for _, a := range t.ledger.appointments {
		if a.ProfessorID != t.professorID || a.Date != t.date {
			continue
		}
		if s, ok := t.saved[a.ID]; ok {
			a = s
		}
		out = append(out, a)
	}
	return append(out, t.inserted...)
}

func (t *memorySlotTx) ActiveAppointments(_ context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range t.current() {
		if a.IsActive() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (t *memorySlotTx) Appointment(_ context.Context, id string) (*models.Appointment, error) {
	for _, a := range t.current() {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, scheduling.ErrNotFound
}

func (t *memorySlotTx) InsertAppointment(_ context.Context, a *models.Appointment) error {
	stamp(&a.BaseModel, t.ledger.now())
	t.inserted = append(t.inserted, *a)
	return nil
}

func (t *memorySlotTx) SaveAppointment(_ context.Context, a *models.Appointment) error {
	for i := range t.inserted {
		if t.inserted[i].ID == a.ID {
			t.inserted[i] = *a
			return nil
		}
	}
	if t.saved == nil {
		t.saved = make(map[string]models.Appointment)
	}
	a.UpdatedAt = t.ledger.now()
	t.saved[a.ID] = *a
	return nil
}

func (t *memorySlotTx) commit() {
	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()

	for i, a := range t.ledger.appointments {
		if s, ok := t.saved[a.ID]; ok {
			t.ledger.appointments[i] = s
		}
	}
	t.ledger.appointments = append(t.ledger.appointments, t.inserted...)
}

func matchAppointment(a models.Appointment, f scheduling.AppointmentFilter) bool {
	switch {
	case f.ProfessorID != "" && a.ProfessorID != f.ProfessorID:
		return false
	case f.StudentID != "" && a.StudentID != f.StudentID:
		return false
	case f.Date != "" && a.Date != f.Date:
		return false
	case f.Status != "" && a.Status != f.Status:
		return false
	}
	return true
}

func stamp(b *models.BaseModel, now time.Time) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
