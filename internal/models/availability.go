package models

// AvailabilityWindow is a span of bookable time a professor published for one date.
// Windows are immutable and never consumed by bookings.
type AvailabilityWindow struct {
	BaseModel
	ProfessorID string `gorm:"size:36;not null;index:idx_windows_slot,priority:1" json:"professorId"`
	Date        string `gorm:"size:10;not null;index:idx_windows_slot,priority:2" json:"date"`
	StartTime   string `gorm:"size:5;not null" json:"startTime"`
	EndTime     string `gorm:"size:5;not null" json:"endTime"`
}

// SlotLock has one row per professor and date. Booking and cancellation take a
// row lock on it so the overlap check and the write happen atomically.
type SlotLock struct {
	ProfessorID string `gorm:"primaryKey;size:36"`
	Date        string `gorm:"primaryKey;size:10"`
}
