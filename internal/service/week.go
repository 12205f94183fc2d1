package service

import (
	"time"

	"github.com/edutime/timetable-api/internal/models"
)

// weekAnchor returns the first Monday on or after January 1 of the given year.
// Week numbering for the year is counted from this date.
func weekAnchor(year int, loc *time.Location) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	offset := (int(time.Monday) - int(jan1.Weekday()) + 7) % 7
	return jan1.AddDate(0, 0, offset)
}

// WeekNumber returns the 1-indexed week number of the date within its year.
// Weeks run Monday through Sunday starting from the year's first Monday.
// Dates before the first Monday fall in week 1.
func WeekNumber(date time.Time) int {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	anchor := weekAnchor(day.Year(), day.Location())
	if day.Before(anchor) {
		return 1
	}
	days := int(day.Sub(anchor).Hours() / 24)
	return days/7 + 1
}

// WeekParity returns the parity of the date's week number.
func WeekParity(date time.Time) models.WeekType {
	if WeekNumber(date)%2 == 1 {
		return models.WeekTypeOdd
	}
	return models.WeekTypeEven
}

// WeekWindow returns the Monday and Sunday bounding the week that contains
// the reference date. Sunday counts as the last day of the preceding Monday's
// week, so a Sunday reference maps backwards, not forwards.
func WeekWindow(referenceDate time.Time) (monday, sunday time.Time) {
	day := time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(), 0, 0, 0, 0, referenceDate.Location())
	back := (int(day.Weekday()) + 6) % 7
	monday = day.AddDate(0, 0, -back)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}
