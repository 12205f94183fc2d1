package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutime/timetable-api/internal/models"
	appErrors "github.com/edutime/timetable-api/pkg/errors"
)

type timetableRepoStub struct {
	buildingRows []models.BuildingLessonRow
	weekRows     []models.WeekLessonRow

	gotWeekType models.WeekType
	gotMonday   time.Time
	gotSunday   time.Time
}

func (s *timetableRepoStub) ListForBuilding(ctx context.Context, buildingID string, shift int, weekType models.WeekType, startDate, endDate time.Time) ([]models.BuildingLessonRow, error) {
	s.gotWeekType = weekType
	return s.buildingRows, nil
}

func (s *timetableRepoStub) ListForWeek(ctx context.Context, buildingID string, shift int, weekType models.WeekType, monday, sunday time.Time) ([]models.WeekLessonRow, error) {
	s.gotWeekType = weekType
	s.gotMonday = monday
	s.gotSunday = sunday
	return s.weekRows, nil
}

type auditoriumListStub struct {
	rooms []models.Auditorium
}

func (s auditoriumListStub) ListAllByBuilding(ctx context.Context, buildingID string) ([]models.Auditorium, error) {
	return s.rooms, nil
}

func newTimetableService(repo *timetableRepoStub, rooms []models.Auditorium) *TimetableService {
	return NewTimetableService(repo, auditoriumListStub{rooms: rooms}, existsStub{exists: true}, nil, nil, nil)
}

func TestWeeklyScheduleEmptyGridIsDense(t *testing.T) {
	repo := &timetableRepoStub{}
	svc := newTimetableService(repo, nil)

	grid, err := svc.WeeklySchedule(context.Background(), WeeklyScheduleRequest{
		BuildingID: "b1", Shift: 1, WeekType: "odd",
		StartDate: "2025-09-01", EndDate: "2025-09-07",
	})
	require.NoError(t, err)
	require.Len(t, grid, 6)
	for _, day := range models.DayNames {
		cells, ok := grid[day]
		require.True(t, ok, day)
		require.Len(t, cells, 6)
		for n := 1; n <= 6; n++ {
			cell, present := cells[n]
			assert.True(t, present)
			assert.Nil(t, cell)
		}
	}
}

func TestWeeklyScheduleShiftTwoHasThreeSlots(t *testing.T) {
	repo := &timetableRepoStub{}
	svc := newTimetableService(repo, nil)

	grid, err := svc.WeeklySchedule(context.Background(), WeeklyScheduleRequest{
		BuildingID: "b1", Shift: 2, WeekType: "even",
		StartDate: "2025-09-01", EndDate: "2025-09-07",
	})
	require.NoError(t, err)
	for _, day := range models.DayNames {
		assert.Len(t, grid[day], 3)
	}
}

func TestWeeklySchedulePopulatesCells(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2025-09-01")
	end, _ := time.Parse("2006-01-02", "2025-12-31")
	repo := &timetableRepoStub{buildingRows: []models.BuildingLessonRow{{
		DayID: 2, LessonNumber: 3, Subject: "Algebra", SubjectType: "lecture",
		Teacher: "John Smith", Group: "SE-21", Auditorium: "101",
		StartDate: start, EndDate: end,
	}}}
	svc := newTimetableService(repo, nil)

	grid, err := svc.WeeklySchedule(context.Background(), WeeklyScheduleRequest{
		BuildingID: "b1", Shift: 1, WeekType: "odd",
		StartDate: "2025-09-01", EndDate: "2025-09-07",
	})
	require.NoError(t, err)

	lesson := grid["Tuesday"][3]
	require.NotNil(t, lesson)
	assert.Equal(t, "Algebra", lesson.Subject)
	assert.Equal(t, "2025-09-01", lesson.StartDate)
	assert.Nil(t, grid["Tuesday"][2])
	assert.Nil(t, grid["Monday"][3])
}

func TestWeeklyScheduleRejectsBothParity(t *testing.T) {
	svc := newTimetableService(&timetableRepoStub{}, nil)

	_, err := svc.WeeklySchedule(context.Background(), WeeklyScheduleRequest{
		BuildingID: "b1", Shift: 1, WeekType: "both",
		StartDate: "2025-09-01", EndDate: "2025-09-07",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestWeekViewSundayAnchorsToPrecedingMonday(t *testing.T) {
	repo := &timetableRepoStub{}
	svc := newTimetableService(repo, []models.Auditorium{{ID: "a1", Name: "101"}})

	// 2025-09-07 is a Sunday; its week started Monday 2025-09-01.
	view, err := svc.WeekView(context.Background(), WeekViewRequest{
		BuildingID: "b1", Shift: 1, ReferenceDate: "2025-09-07",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-09-01", view.WeekStartDate)
	assert.Equal(t, "2025-09-07", view.WeekEndDate)
	assert.Equal(t, date(2025, time.September, 1), repo.gotMonday)
	assert.Equal(t, date(2025, time.September, 7), repo.gotSunday)
	assert.Equal(t, WeekNumber(date(2025, time.September, 1)), view.WeekNumber)
	assert.Equal(t, repo.gotWeekType, view.WeekType)
}

func TestWeekViewIncludesEmptyRooms(t *testing.T) {
	repo := &timetableRepoStub{}
	svc := newTimetableService(repo, []models.Auditorium{
		{ID: "a1", Name: "101"},
		{ID: "a2", Name: "102"},
	})

	view, err := svc.WeekView(context.Background(), WeekViewRequest{
		BuildingID: "b1", Shift: 1, ReferenceDate: "2025-09-03",
	})
	require.NoError(t, err)
	require.Len(t, view.Lessons, 2)
	for _, room := range []string{"101", "102"} {
		days := view.Lessons[room]
		require.Len(t, days, 6)
		for _, day := range models.DayNames {
			require.Len(t, days[day], 6)
			for _, cell := range days[day] {
				assert.Nil(t, cell)
			}
		}
	}
}

func TestWeekViewMarksViewerLessons(t *testing.T) {
	repo := &timetableRepoStub{weekRows: []models.WeekLessonRow{
		{ScheduleID: "s1", DayID: 1, LessonNumber: 1, Subject: "Algebra", Teacher: "John Smith", TeacherID: "t1", Auditorium: "101"},
		{ScheduleID: "s2", DayID: 1, LessonNumber: 2, Subject: "Physics", Teacher: "Jane Doe", TeacherID: "t2", Auditorium: "101"},
	}}
	svc := newTimetableService(repo, []models.Auditorium{{ID: "a1", Name: "101"}})

	view, err := svc.WeekView(context.Background(), WeekViewRequest{
		BuildingID: "b1", Shift: 1, ReferenceDate: "2025-09-03", ViewerTeacherID: "t1",
	})
	require.NoError(t, err)

	monday := view.Lessons["101"]["Monday"]
	require.NotNil(t, monday[0])
	require.NotNil(t, monday[1])
	assert.True(t, monday[0].IsThisTeacher)
	assert.False(t, monday[1].IsThisTeacher)
	assert.Nil(t, monday[2])
}

func TestWeekViewWithoutViewerNeverMarks(t *testing.T) {
	repo := &timetableRepoStub{weekRows: []models.WeekLessonRow{
		{ScheduleID: "s1", DayID: 1, LessonNumber: 1, Subject: "Algebra", Teacher: "John Smith", TeacherID: "t1", Auditorium: "101"},
	}}
	svc := newTimetableService(repo, []models.Auditorium{{ID: "a1", Name: "101"}})

	view, err := svc.WeekView(context.Background(), WeekViewRequest{
		BuildingID: "b1", Shift: 1, ReferenceDate: "2025-09-03",
	})
	require.NoError(t, err)
	assert.False(t, view.Lessons["101"]["Monday"][0].IsThisTeacher)
}

func TestWeekViewUnknownBuilding(t *testing.T) {
	svc := NewTimetableService(&timetableRepoStub{}, auditoriumListStub{}, existsStub{exists: false}, nil, nil, nil)

	_, err := svc.WeekView(context.Background(), WeekViewRequest{
		BuildingID: "missing", Shift: 1, ReferenceDate: "2025-09-03",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
