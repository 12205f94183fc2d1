package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/edutime/timetable-api/internal/models"
	appErrors "github.com/edutime/timetable-api/pkg/errors"
)

type teacherResolverRepository interface {
	GetOrCreate(ctx context.Context, fullName string) (string, bool, error)
}

type groupResolverRepository interface {
	GetOrCreate(ctx context.Context, name string) (string, error)
}

type subjectResolverRepository interface {
	GetOrCreate(ctx context.Context, name, subjectType string) (string, error)
}

type resolverUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// ResolvedEntities carries the IDs produced by resolving a schedule request's
// named actors.
type ResolvedEntities struct {
	GroupID   string
	SubjectID string
	TeacherID string
}

// ResolverService turns natural keys (teacher full name, group name, subject
// name+type) into row IDs, creating missing rows on first use.
type ResolverService struct {
	teachers teacherResolverRepository
	groups   groupResolverRepository
	subjects subjectResolverRepository
	users    resolverUserRepository
	logger   *zap.Logger
}

// NewResolverService instantiates ResolverService.
func NewResolverService(teachers teacherResolverRepository, groups groupResolverRepository, subjects subjectResolverRepository, users resolverUserRepository, logger *zap.Logger) *ResolverService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResolverService{teachers: teachers, groups: groups, subjects: subjects, users: users, logger: logger}
}

// ResolveTeacher maps a full name to a teacher ID, creating the teacher on
// first mention. A newly created teacher also gets a login identity with a
// derived username and a generated password. Resolving the same name again
// never creates a second teacher or a second login.
func (s *ResolverService) ResolveTeacher(ctx context.Context, fullName string) (string, error) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "teacher name is required")
	}

	id, created, err := s.teachers.GetOrCreate(ctx, name)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve teacher")
	}

	if created && s.users != nil {
		if err := s.provisionLogin(ctx, id, name); err != nil {
			// The teacher row stands either way; a login can be provisioned
			// manually if this step fails.
			s.logger.Warn("teacher login provisioning failed",
				zap.String("teacher_id", id), zap.Error(err))
		}
	}

	return id, nil
}

// ResolveGroup maps a group name to an ID, creating the group on first use.
func (s *ResolverService) ResolveGroup(ctx context.Context, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "group name is required")
	}
	id, err := s.groups.GetOrCreate(ctx, trimmed)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve group")
	}
	return id, nil
}

// ResolveSubject maps a (name, type) pair to an ID, creating the subject on
// first use. The same name with a different type is a distinct subject.
func (s *ResolverService) ResolveSubject(ctx context.Context, name, subjectType string) (string, error) {
	trimmedName := strings.TrimSpace(name)
	trimmedType := strings.TrimSpace(subjectType)
	if trimmedName == "" || trimmedType == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "subject name and type are required")
	}
	id, err := s.subjects.GetOrCreate(ctx, trimmedName, trimmedType)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve subject")
	}
	return id, nil
}

// Resolve maps all three named actors of a schedule request in one call.
func (s *ResolverService) Resolve(ctx context.Context, groupName, subjectName, subjectType, teacherName string) (*ResolvedEntities, error) {
	groupID, err := s.ResolveGroup(ctx, groupName)
	if err != nil {
		return nil, err
	}
	subjectID, err := s.ResolveSubject(ctx, subjectName, subjectType)
	if err != nil {
		return nil, err
	}
	teacherID, err := s.ResolveTeacher(ctx, teacherName)
	if err != nil {
		return nil, err
	}
	return &ResolvedEntities{GroupID: groupID, SubjectID: subjectID, TeacherID: teacherID}, nil
}

func (s *ResolverService) provisionLogin(ctx context.Context, teacherID, fullName string) error {
	username, err := s.deriveUsername(ctx, fullName)
	if err != nil {
		return err
	}

	password, err := generatePassword()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash generated password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         models.RoleTeacher,
		Active:       true,
		TeacherID:    &teacherID,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return err
	}

	s.logger.Info("teacher login provisioned",
		zap.String("teacher_id", teacherID),
		zap.String("username", username))
	return nil
}

// deriveUsername builds a login from the teacher's name, e.g. "John Smith"
// becomes "john.smith", appending a numeric suffix when taken.
func (s *ResolverService) deriveUsername(ctx context.Context, fullName string) (string, error) {
	base := usernameSlug(fullName)
	if base == "" {
		base = "teacher"
	}

	candidate := base
	for i := 2; ; i++ {
		taken, err := s.users.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

func usernameSlug(fullName string) string {
	var b strings.Builder
	lastDot := true
	for _, r := range strings.ToLower(strings.TrimSpace(fullName)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDot = false
		case !lastDot:
			b.WriteByte('.')
			lastDot = true
		}
	}
	return strings.Trim(b.String(), ".")
}

func generatePassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
