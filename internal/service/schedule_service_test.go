package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutime/timetable-api/internal/models"
	appErrors "github.com/edutime/timetable-api/pkg/errors"
)

type scheduleRepoStub struct {
	existing []models.Schedule
	created  []models.Schedule
	locked   bool
}

func (s *scheduleRepoStub) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	mark := len(s.created)
	if err := fn(nil); err != nil {
		s.created = s.created[:mark]
		return err
	}
	return nil
}

func (s *scheduleRepoStub) LockSlot(ctx context.Context, tx *sqlx.Tx, dayID, timeSlotID, shift int) error {
	s.locked = true
	return nil
}

func (s *scheduleRepoStub) FindOverlapping(ctx context.Context, tx *sqlx.Tx, dayID, timeSlotID, shift int, weekType models.WeekType, startDate, endDate time.Time) ([]models.Schedule, error) {
	var matches []models.Schedule
	for _, item := range s.existing {
		if item.DayID == dayID && item.TimeSlotID == timeSlotID && item.Shift == shift && item.WeekType == weekType &&
			!item.StartDate.After(endDate) && !item.EndDate.Before(startDate) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

func (s *scheduleRepoStub) CreateTx(ctx context.Context, tx *sqlx.Tx, schedule *models.Schedule) error {
	schedule.ID = "created-" + string(rune('a'+len(s.created)))
	s.created = append(s.created, *schedule)
	return nil
}

func (s *scheduleRepoStub) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	for _, item := range s.existing {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, errors.New("not found")
}

type resolverStub struct {
	entities ResolvedEntities
}

func (s resolverStub) Resolve(ctx context.Context, groupName, subjectName, subjectType, teacherName string) (*ResolvedEntities, error) {
	out := s.entities
	return &out, nil
}

type existsStub struct {
	exists bool
}

func (s existsStub) Exists(ctx context.Context, id string) (bool, error) {
	return s.exists, nil
}

type referenceStub struct {
	slotShift int
}

func (referenceStub) DayExists(ctx context.Context, id int) (bool, error) {
	return id >= 1 && id <= 6, nil
}

func (s referenceStub) FindTimeSlot(ctx context.Context, id int) (*models.TimeSlot, error) {
	shift := s.slotShift
	if shift == 0 {
		shift = 1
	}
	return &models.TimeSlot{ID: id, Shift: shift, LessonNumber: id}, nil
}

func validRequest() CreateScheduleRequest {
	return CreateScheduleRequest{
		GroupName:    "SE-21",
		SubjectName:  "Algebra",
		SubjectType:  "lecture",
		TeacherName:  "John Smith",
		AuditoriumID: "aud-1",
		DayID:        1,
		TimeSlotID:   1,
		Shift:        1,
		WeekType:     "odd",
		StartDate:    "2025-09-01",
		EndDate:      "2025-12-31",
	}
}

func newScheduleService(repo *scheduleRepoStub) *ScheduleService {
	return NewScheduleService(
		repo,
		resolverStub{entities: ResolvedEntities{GroupID: "g1", SubjectID: "sub1", TeacherID: "t1"}},
		existsStub{exists: true},
		referenceStub{},
		nil,
		nil,
		nil,
	)
}

func TestScheduleServiceCreate(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := newScheduleService(repo)

	result, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, result.IDs, 1)
	require.Len(t, repo.created, 1)
	assert.True(t, repo.locked)
	assert.Equal(t, models.WeekTypeOdd, repo.created[0].WeekType)
	assert.Equal(t, "t1", repo.created[0].TeacherID)
}

func TestScheduleServiceCreateAuditoriumConflict(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2025-09-01")
	end, _ := time.Parse("2006-01-02", "2025-12-31")
	repo := &scheduleRepoStub{existing: []models.Schedule{{
		ID: "s-existing", GroupID: "g-other", TeacherID: "t-other", AuditoriumID: "aud-1",
		DayID: 1, TimeSlotID: 1, Shift: 1, WeekType: models.WeekTypeOdd,
		StartDate: start, EndDate: end,
	}}}
	svc := newScheduleService(repo)

	_, err := svc.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	var conflictErr *models.ScheduleConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, models.ConflictAuditorium, conflictErr.Dimension)
	assert.Equal(t, "s-existing", conflictErr.Conflict.ScheduleID)
	assert.Empty(t, repo.created)
}

func TestScheduleServiceConflictPriorityOrder(t *testing.T) {
	// The existing row collides on auditorium, teacher and group at once;
	// the auditorium dimension must be the one reported.
	start, _ := time.Parse("2006-01-02", "2025-09-01")
	end, _ := time.Parse("2006-01-02", "2025-12-31")
	repo := &scheduleRepoStub{existing: []models.Schedule{{
		ID: "s-existing", GroupID: "g1", TeacherID: "t1", AuditoriumID: "aud-1",
		DayID: 1, TimeSlotID: 1, Shift: 1, WeekType: models.WeekTypeOdd,
		StartDate: start, EndDate: end,
	}}}
	svc := newScheduleService(repo)

	_, err := svc.Create(context.Background(), validRequest())
	require.Error(t, err)

	var conflictErr *models.ScheduleConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, models.ConflictAuditorium, conflictErr.Dimension)
}

func TestScheduleServiceConflictPriorityAcrossRows(t *testing.T) {
	// A group clash appears earlier in the result set than an auditorium
	// clash; the auditorium dimension still wins.
	start, _ := time.Parse("2006-01-02", "2025-09-01")
	end, _ := time.Parse("2006-01-02", "2025-12-31")
	repo := &scheduleRepoStub{existing: []models.Schedule{
		{
			ID: "s-group", GroupID: "g1", TeacherID: "t-other", AuditoriumID: "aud-other",
			DayID: 1, TimeSlotID: 1, Shift: 1, WeekType: models.WeekTypeOdd,
			StartDate: start, EndDate: end,
		},
		{
			ID: "s-auditorium", GroupID: "g-other", TeacherID: "t-other", AuditoriumID: "aud-1",
			DayID: 1, TimeSlotID: 1, Shift: 1, WeekType: models.WeekTypeOdd,
			StartDate: start, EndDate: end,
		},
	}}
	svc := newScheduleService(repo)

	_, err := svc.Create(context.Background(), validRequest())
	require.Error(t, err)

	var conflictErr *models.ScheduleConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, models.ConflictAuditorium, conflictErr.Dimension)
	assert.Equal(t, "s-auditorium", conflictErr.Conflict.ScheduleID)
}

func TestScheduleServiceNonOverlappingDatesPass(t *testing.T) {
	// Same slot key but the existing range ends before the candidate starts.
	start, _ := time.Parse("2006-01-02", "2025-01-10")
	end, _ := time.Parse("2006-01-02", "2025-05-31")
	repo := &scheduleRepoStub{existing: []models.Schedule{{
		ID: "s-existing", GroupID: "g1", TeacherID: "t1", AuditoriumID: "aud-1",
		DayID: 1, TimeSlotID: 1, Shift: 1, WeekType: models.WeekTypeOdd,
		StartDate: start, EndDate: end,
	}}}
	svc := newScheduleService(repo)

	result, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Len(t, result.IDs, 1)
}

func TestScheduleServiceBothExpandsToTwoRows(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := newScheduleService(repo)

	req := validRequest()
	req.WeekType = "both"
	result, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.IDs, 2)
	require.Len(t, repo.created, 2)
	assert.Equal(t, models.WeekTypeOdd, repo.created[0].WeekType)
	assert.Equal(t, models.WeekTypeEven, repo.created[1].WeekType)
}

func TestScheduleServiceBothIsAtomic(t *testing.T) {
	// Only the even variant collides; the odd insert must be rolled back
	// with it so the request leaves no partial state.
	start, _ := time.Parse("2006-01-02", "2025-09-01")
	end, _ := time.Parse("2006-01-02", "2025-12-31")
	repo := &scheduleRepoStub{existing: []models.Schedule{{
		ID: "s-even", GroupID: "g-other", TeacherID: "t-other", AuditoriumID: "aud-1",
		DayID: 1, TimeSlotID: 1, Shift: 1, WeekType: models.WeekTypeEven,
		StartDate: start, EndDate: end,
	}}}
	svc := newScheduleService(repo)

	req := validRequest()
	req.WeekType = "both"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestScheduleServiceRejectsEqualDates(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := newScheduleService(repo)

	req := validRequest()
	req.EndDate = req.StartDate
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceRejectsMissingFields(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := newScheduleService(repo)

	req := validRequest()
	req.TeacherName = ""
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceRejectsShiftMismatch(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := NewScheduleService(
		repo,
		resolverStub{entities: ResolvedEntities{GroupID: "g1", SubjectID: "sub1", TeacherID: "t1"}},
		existsStub{exists: true},
		referenceStub{slotShift: 2},
		nil,
		nil,
		nil,
	)

	_, err := svc.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceRejectsUnknownAuditorium(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := NewScheduleService(
		repo,
		resolverStub{entities: ResolvedEntities{GroupID: "g1", SubjectID: "sub1", TeacherID: "t1"}},
		existsStub{exists: false},
		referenceStub{},
		nil,
		nil,
		nil,
	)

	_, err := svc.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
