package models

// Day is immutable reference data: the six teaching days of the week.
type Day struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

/// TimeSlot is immutable reference data: a lesson period within a shift.
// Shift 1 carries lessons 1..6, shift 2 carries lessons 1..3.
type TimeSlot struct {
	ID           int    `db:"id" json:"id"`
	Shift        int    `db:"shift" json:"shift"`
	LessonNumber int    `db:"lesson_number" json:"lesson_number"`
	StartTime    string `db:"start_time" json:"start_time"`
	EndTime      string `db:"end_time" json:"end_time"`
}

// DayNames lists the teaching days in catalog order (day ID 1..6).
var DayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// LessonsPerShift returns how many lesson numbers a shift carries.
func LessonsPerShift(shift int) int {
	if shift == 2 {
		return 3
	}
	return 6
}
