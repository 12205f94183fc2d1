package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutime/timetable-api/internal/models"
)

type teacherResolverStub struct {
	known map[string]string
	calls int
}

func (s *teacherResolverStub) GetOrCreate(ctx context.Context, fullName string) (string, bool, error) {
	s.calls++
	if id, ok := s.known[fullName]; ok {
		return id, false, nil
	}
	if s.known == nil {
		s.known = map[string]string{}
	}
	id := "t-" + fullName
	s.known[fullName] = id
	return id, true, nil
}

type groupResolverStub struct{}

func (groupResolverStub) GetOrCreate(ctx context.Context, name string) (string, error) {
	return "g-" + name, nil
}

type subjectResolverStub struct{}

func (subjectResolverStub) GetOrCreate(ctx context.Context, name, subjectType string) (string, error) {
	return "sub-" + name + "-" + subjectType, nil
}

type userRepoStub struct {
	created   []models.User
	usernames map[string]bool
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.usernames == nil {
		s.usernames = map[string]bool{}
	}
	s.usernames[user.Username] = true
	s.created = append(s.created, *user)
	return nil
}

func (s *userRepoStub) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.usernames[username], nil
}

func TestResolverServiceCreatesTeacherLogin(t *testing.T) {
	teachers := &teacherResolverStub{}
	users := &userRepoStub{}
	svc := NewResolverService(teachers, groupResolverStub{}, subjectResolverStub{}, users, nil)

	id, err := svc.ResolveTeacher(context.Background(), "John Smith")
	require.NoError(t, err)
	assert.Equal(t, "t-John Smith", id)

	require.Len(t, users.created, 1)
	login := users.created[0]
	assert.Equal(t, "john.smith", login.Username)
	assert.Equal(t, models.RoleTeacher, login.Role)
	assert.True(t, login.Active)
	require.NotNil(t, login.TeacherID)
	assert.Equal(t, id, *login.TeacherID)
	assert.NotEmpty(t, login.PasswordHash)
}

func TestResolverServiceTeacherIsIdempotent(t *testing.T) {
	teachers := &teacherResolverStub{}
	users := &userRepoStub{}
	svc := NewResolverService(teachers, groupResolverStub{}, subjectResolverStub{}, users, nil)

	first, err := svc.ResolveTeacher(context.Background(), "John Smith")
	require.NoError(t, err)
	second, err := svc.ResolveTeacher(context.Background(), "John Smith")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, users.created, 1)
}

func TestResolverServiceUsernameCollisionGetsSuffix(t *testing.T) {
	teachers := &teacherResolverStub{}
	users := &userRepoStub{usernames: map[string]bool{"john.smith": true}}
	svc := NewResolverService(teachers, groupResolverStub{}, subjectResolverStub{}, users, nil)

	_, err := svc.ResolveTeacher(context.Background(), "John Smith")
	require.NoError(t, err)
	require.Len(t, users.created, 1)
	assert.Equal(t, "john.smith2", users.created[0].Username)
}

func TestResolverServiceRejectsBlankNames(t *testing.T) {
	svc := NewResolverService(&teacherResolverStub{}, groupResolverStub{}, subjectResolverStub{}, &userRepoStub{}, nil)

	_, err := svc.ResolveTeacher(context.Background(), "   ")
	require.Error(t, err)
	_, err = svc.ResolveGroup(context.Background(), "")
	require.Error(t, err)
	_, err = svc.ResolveSubject(context.Background(), "Algebra", "")
	require.Error(t, err)
}

func TestResolverServiceResolveAll(t *testing.T) {
	svc := NewResolverService(&teacherResolverStub{}, groupResolverStub{}, subjectResolverStub{}, &userRepoStub{}, nil)

	resolved, err := svc.Resolve(context.Background(), "SE-21", "Algebra", "lecture", "John Smith")
	require.NoError(t, err)
	assert.Equal(t, "g-SE-21", resolved.GroupID)
	assert.Equal(t, "sub-Algebra-lecture", resolved.SubjectID)
	assert.Equal(t, "t-John Smith", resolved.TeacherID)
}

func TestUsernameSlug(t *testing.T) {
	assert.Equal(t, "john.smith", usernameSlug("John Smith"))
	assert.Equal(t, "anna.maria.lopez", usernameSlug("  Anna-Maria  Lopez "))
	assert.Equal(t, "", usernameSlug("!!!"))
}
