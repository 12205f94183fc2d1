package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/edutime/timetable-api/internal/models"
	appErrors "github.com/edutime/timetable-api/pkg/errors"
	"github.com/edutime/timetable-api/pkg/export"
)

type weeklyGridProvider interface {
	WeeklySchedule(ctx context.Context, req WeeklyScheduleRequest) (models.WeeklyGrid, error)
}

// ExportService flattens the building grid into downloadable CSV or PDF.
type ExportService struct {
	timetable weeklyGridProvider
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	enabled   bool
	logger    *zap.Logger
}

// NewExportService instantiates ExportService.
func NewExportService(timetable weeklyGridProvider, enabled bool, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		timetable: timetable,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		enabled:   enabled,
		logger:    logger,
	}
}

// WeeklyCSV renders the building grid as CSV, one row per day with a column
// per lesson number.
func (s *ExportService) WeeklyCSV(ctx context.Context, req WeeklyScheduleRequest) ([]byte, error) {
	data, err := s.dataset(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := s.csv.Render(*data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return out, nil
}

// WeeklyPDF renders the building grid as a landscape PDF table.
func (s *ExportService) WeeklyPDF(ctx context.Context, req WeeklyScheduleRequest) ([]byte, error) {
	data, err := s.dataset(ctx, req)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Timetable %s week, shift %d", req.WeekType, req.Shift)
	out, err := s.pdf.Render(*data, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return out, nil
}

func (s *ExportService) dataset(ctx context.Context, req WeeklyScheduleRequest) (*export.Dataset, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "export is disabled")
	}

	grid, err := s.timetable.WeeklySchedule(ctx, req)
	if err != nil {
		return nil, err
	}

	maxSlot := models.LessonsPerShift(req.Shift)
	headers := make([]string, 0, maxSlot+1)
	headers = append(headers, "Day")
	for n := 1; n <= maxSlot; n++ {
		headers = append(headers, fmt.Sprintf("Lesson %d", n))
	}

	rows := make([]map[string]string, 0, len(models.DayNames))
	for _, day := range models.DayNames {
		row := map[string]string{"Day": day}
		for n := 1; n <= maxSlot; n++ {
			row[fmt.Sprintf("Lesson %d", n)] = formatLessonCell(grid[day][n])
		}
		rows = append(rows, row)
	}

	return &export.Dataset{Headers: headers, Rows: rows}, nil
}

func formatLessonCell(lesson *models.LessonSummary) string {
	if lesson == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s) / %s / %s / room %s", lesson.Subject, lesson.SubjectType, lesson.Teacher, lesson.Group, lesson.Auditorium)
}
