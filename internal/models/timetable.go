package models

import "time"

// LessonSummary is a populated cell of the building weekly grid.
type LessonSummary struct {
	Subject     string  `json:"subject"`
	SubjectType string  `json:"subject_type"`
	Teacher     string  `json:"teacher"`
	Group       string  `json:"group"`
	Auditorium  string  `json:"auditorium"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Description *string `json:"description,omitempty"`
}

// WeeklyGrid maps day name -> lesson number -> lesson (nil when the slot is
// free). Every day/lesson combination valid for the shift is present.
type WeeklyGrid map[string]map[int]*LessonSummary

// BuildingLessonRow is the flattened join used to build a WeeklyGrid.
type BuildingLessonRow struct {
	DayID        int       `db:"day_id"`
	LessonNumber int       `db:"lesson_number"`
	Subject      string    `db:"subject"`
	SubjectType  string    `db:"subject_type"`
	Teacher      string    `db:"teacher"`
	Group        string    `db:"group_name"`
	Auditorium   string    `db:"auditorium"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Description  *string   `db:"description"`
}

// WeekLesson is a populated cell of the auditorium week view.
type WeekLesson struct {
	ScheduleID    string `json:"schedule_id"`
	TimeSlot      int    `json:"time_slot"`
	Subject       string `json:"subject"`
	Teacher       string `json:"teacher"`
	IsThisTeacher bool   `json:"is_this_teacher"`
}

// WeekView is the auditorium-by-day grid for the calendar week containing a
// reference date. Lessons maps auditorium name -> day name -> slot cells
// (index lessonNumber-1, nil when free).
type WeekView struct {
	BuildingID    string                            `json:"building_id"`
	Shift         int                               `json:"shift"`
	WeekNumber    int                               `json:"week_number"`
	WeekStartDate string                            `json:"week_start_date"`
	WeekEndDate   string                            `json:"week_end_date"`
	WeekType      WeekType                          `json:"week_type"`
	Lessons       map[string]map[string][]*WeekLesson `json:"lessons"`
}

// WeekLessonRow is the flattened join used to build a WeekView.
type WeekLessonRow struct {
	ScheduleID   string `db:"schedule_id"`
	DayID        int    `db:"day_id"`
	LessonNumber int    `db:"lesson_number"`
	Subject      string `db:"subject"`
	Teacher      string `db:"teacher"`
	TeacherID    string `db:"teacher_id"`
	Auditorium   string `db:"auditorium"`
}
