package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutime/timetable-api/internal/middleware"
	"github.com/edutime/timetable-api/internal/models"
	"github.com/edutime/timetable-api/internal/service"
)

type timetableRepoFake struct {
	buildingRows []models.BuildingLessonRow
	weekRows     []models.WeekLessonRow
}

func (f *timetableRepoFake) ListForBuilding(_ context.Context, buildingID string, shift int, weekType models.WeekType, startDate, endDate time.Time) ([]models.BuildingLessonRow, error) {
	return f.buildingRows, nil
}

func (f *timetableRepoFake) ListForWeek(_ context.Context, buildingID string, shift int, weekType models.WeekType, monday, sunday time.Time) ([]models.WeekLessonRow, error) {
	return f.weekRows, nil
}

type auditoriumListFake struct {
	rooms []models.Auditorium
}

func (f *auditoriumListFake) ListAllByBuilding(_ context.Context, buildingID string) ([]models.Auditorium, error) {
	return f.rooms, nil
}

type buildingExistsFake struct {
	exists bool
}

func (f *buildingExistsFake) Exists(_ context.Context, id string) (bool, error) {
	return f.exists, nil
}

func newTimetableHandler(repo *timetableRepoFake, rooms *auditoriumListFake, exists bool) *ScheduleHandler {
	timetable := service.NewTimetableService(repo, rooms, &buildingExistsFake{exists: exists}, service.NewCacheService(nil, false, 0, nil), nil, nil)
	return NewScheduleHandler(nil, timetable, nil, service.NewMetricsService())
}

func newTestContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func TestScheduleHandlerWeeklyMissingParams(t *testing.T) {
	handler := newTimetableHandler(&timetableRepoFake{}, &auditoriumListFake{}, true)
	c, w := newTestContext(t, http.MethodGet, "/schedules/weekly")

	handler.Weekly(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerWeeklyUnknownBuilding(t *testing.T) {
	handler := newTimetableHandler(&timetableRepoFake{}, &auditoriumListFake{}, false)
	c, w := newTestContext(t, http.MethodGet, "/schedules/weekly?building_id=b-404&shift=1&week_type=odd&start_date=2025-09-01&end_date=2025-12-31")

	handler.Weekly(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleHandlerWeeklyDenseGrid(t *testing.T) {
	repo := &timetableRepoFake{
		buildingRows: []models.BuildingLessonRow{
			{
				DayID:        2,
				LessonNumber: 3,
				Subject:      "Algebra",
				SubjectType:  "lecture",
				Teacher:      "John Smith",
				Group:        "CS-101",
				Auditorium:   "204",
				StartDate:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
				EndDate:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	handler := newTimetableHandler(repo, &auditoriumListFake{}, true)
	c, w := newTestContext(t, http.MethodGet, "/schedules/weekly?building_id=b-1&shift=1&week_type=odd&start_date=2025-09-01&end_date=2025-12-31")

	handler.Weekly(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.WeeklyGrid `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, len(models.DayNames))

	tuesday, ok := resp.Data["Tuesday"]
	require.True(t, ok)
	require.NotNil(t, tuesday[3])
	assert.Equal(t, "Algebra", tuesday[3].Subject)
	assert.Equal(t, "204", tuesday[3].Auditorium)
	assert.Nil(t, tuesday[1])
	assert.Nil(t, resp.Data["Monday"][3])
}

func TestScheduleHandlerWeekMarksViewer(t *testing.T) {
	repo := &timetableRepoFake{
		weekRows: []models.WeekLessonRow{
			{ScheduleID: "s1", DayID: 3, LessonNumber: 2, Subject: "Physics", Teacher: "John Smith", TeacherID: "t1", Auditorium: "101"},
			{ScheduleID: "s2", DayID: 3, LessonNumber: 4, Subject: "Chemistry", Teacher: "Jane Doe", TeacherID: "t2", Auditorium: "101"},
		},
	}
	rooms := &auditoriumListFake{rooms: []models.Auditorium{{ID: "a1", Name: "101"}}}
	handler := newTimetableHandler(repo, rooms, true)

	c, w := newTestContext(t, http.MethodGet, "/schedules/week?building_id=b-1&shift=1&date=2025-09-03")
	teacherID := "t1"
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1", Role: models.RoleTeacher, TeacherID: &teacherID})

	handler.Week(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.WeekView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-09-01", resp.Data.WeekStartDate)
	assert.Equal(t, "2025-09-07", resp.Data.WeekEndDate)

	wednesday := resp.Data.Lessons["101"]["Wednesday"]
	require.Len(t, wednesday, 6)
	require.NotNil(t, wednesday[1])
	assert.True(t, wednesday[1].IsThisTeacher)
	require.NotNil(t, wednesday[3])
	assert.False(t, wednesday[3].IsThisTeacher)
}

func TestScheduleHandlerWeekAnonymousViewer(t *testing.T) {
	repo := &timetableRepoFake{
		weekRows: []models.WeekLessonRow{
			{ScheduleID: "s1", DayID: 1, LessonNumber: 1, Subject: "Physics", Teacher: "John Smith", TeacherID: "t1", Auditorium: "101"},
		},
	}
	rooms := &auditoriumListFake{rooms: []models.Auditorium{{ID: "a1", Name: "101"}}}
	handler := newTimetableHandler(repo, rooms, true)

	c, w := newTestContext(t, http.MethodGet, "/schedules/week?building_id=b-1&shift=1&date=2025-09-03")

	handler.Week(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.WeekView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	monday := resp.Data.Lessons["101"]["Monday"]
	require.NotNil(t, monday[0])
	assert.False(t, monday[0].IsThisTeacher)
}
