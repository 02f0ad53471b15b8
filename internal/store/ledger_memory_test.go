package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-hours-server/internal/models"
	"office-hours-server/internal/scheduling"
)

func TestMemoryLedgerDiscardsWritesWhenFnFails(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()
	boom := errors.New("boom")

	err := l.WithinSlot(ctx, "p1", "2025-05-01", func(tx scheduling.SlotTx) error {
		require.NoError(t, tx.InsertAppointment(ctx, &models.Appointment{
			ProfessorID: "p1", StudentID: "s1", Date: "2025-05-01",
			StartTime: "09:00", EndTime: "10:00", Status: models.StatusActive,
		}))
		active, err := tx.ActiveAppointments(ctx)
		require.NoError(t, err)
		assert.Len(t, active, 1, "own writes are visible inside the slot")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	appts, err := l.ListAppointments(ctx, scheduling.AppointmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, appts)
}

func TestMemoryLedgerSaveAppointment(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()

	appt := &models.Appointment{
		ProfessorID: "p1", StudentID: "s1", Date: "2025-05-01",
		StartTime: "09:00", EndTime: "10:00", Status: models.StatusActive,
	}
	require.NoError(t, l.WithinSlot(ctx, "p1", "2025-05-01", func(tx scheduling.SlotTx) error {
		return tx.InsertAppointment(ctx, appt)
	}))
	require.NotEmpty(t, appt.ID)

	require.NoError(t, l.WithinSlot(ctx, "p1", "2025-05-01", func(tx scheduling.SlotTx) error {
		current, err := tx.Appointment(ctx, appt.ID)
		if err != nil {
			return err
		}
		current.Status = models.StatusCancelled
		return tx.SaveAppointment(ctx, current)
	}))

	got, err := l.GetAppointment(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)

	err = l.WithinSlot(ctx, "p1", "2025-05-02", func(tx scheduling.SlotTx) error {
		_, err := tx.Appointment(ctx, appt.ID)
		return err
	})
	assert.ErrorIs(t, err, scheduling.ErrNotFound, "appointments are scoped to their slot")

	_, err = l.GetAppointment(ctx, "missing")
	assert.ErrorIs(t, err, scheduling.ErrNotFound)
}

func TestMemoryLedgerFilters(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()

	for _, w := range []models.AvailabilityWindow{
		{ProfessorID: "p1", Date: "2025-05-01", StartTime: "09:00", EndTime: "10:00"},
		{ProfessorID: "p2", Date: "2025-05-01", StartTime: "09:00", EndTime: "10:00"},
		{ProfessorID: "p1", Date: "2025-05-02", StartTime: "09:00", EndTime: "10:00"},
	} {
		w := w
		require.NoError(t, l.InsertWindow(ctx, &w))
	}

	got, err := l.ListWindows(ctx, scheduling.WindowFilter{ProfessorID: "p1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-05-01", got[0].Date)
	assert.Equal(t, "2025-05-02", got[1].Date)

	got, err = l.ListWindows(ctx, scheduling.WindowFilter{ProfessorID: "p1", Date: "2025-05-02"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMemoryLedgerHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewMemoryLedger().WithinSlot(ctx, "p1", "2025-05-01", func(scheduling.SlotTx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
