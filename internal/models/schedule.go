package models

import "time"

// WeekType selects which week parity a schedule applies to. "both" is a
// request-level value only: the writer expands it into one odd and one even
// row, so persisted schedules always carry odd or even.
type WeekType string

const (
	WeekTypeOdd  WeekType = "odd"
	WeekTypeEven WeekType = "even"
	WeekTypeBoth WeekType = "both"
)

// Valid reports whether the value is one of odd, even or both.
func (w WeekType) Valid() bool {
	return w == WeekTypeOdd || w == WeekTypeEven || w == WeekTypeBoth
}

// Variants expands the week type into the persisted parities.
func (w WeekType) Variants() []WeekType {
	if w == WeekTypeBoth {
		return []WeekType{WeekTypeOdd, WeekTypeEven}
	}
	return []WeekType{w}
}

// Schedule is a recurring lesson assignment: a (teacher, group, subject,
// auditorium) tuple bound to a weekly slot within a date range.
type Schedule struct {
	ID           string    `db:"id" json:"id"`
	GroupID      string    `db:"group_id" json:"group_id"`
	SubjectID    string    `db:"subject_id" json:"subject_id"`
	TeacherID    string    `db:"teacher_id" json:"teacher_id"`
	AuditoriumID string    `db:"auditorium_id" json:"auditorium_id"`
	DayID        int       `db:"day_id" json:"day_id"`
	TimeSlotID   int       `db:"time_slot_id" json:"time_slot_id"`
	Shift        int       `db:"shift" json:"shift"`
	WeekType     WeekType  `db:"week_type" json:"week_type"`
	StartDate    time.Time `db:"start_date" json:"start_date"`
	EndDate      time.Time `db:"end_date" json:"end_date"`
	Description  *string   `db:"description" json:"description,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Conflict dimensions, in detection priority order.
const (
	ConflictAuditorium = "AUDITORIUM"
	ConflictTeacher    = "TEACHER"
	ConflictGroup      = "GROUP"
)

// ScheduleConflict describes an existing schedule that blocks a candidate.
type ScheduleConflict struct {
	ScheduleID   string   `json:"schedule_id"`
	Dimension    string   `json:"dimension"`
	DayID        int      `json:"day_id"`
	TimeSlotID   int      `json:"time_slot_id"`
	Shift        int      `json:"shift"`
	WeekType     WeekType `json:"week_type"`
	AuditoriumID string   `json:"auditorium_id"`
	TeacherID    string   `json:"teacher_id"`
	GroupID      string   `json:"group_id"`
}

// ScheduleConflictError is returned when a candidate collides with an
// existing schedule on one of the three identity dimensions.
type ScheduleConflictError struct {
	Dimension string           `json:"dimension"`
	Message   string           `json:"message"`
	Conflict  ScheduleConflict `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *ScheduleConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
