package academic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/directory"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/apperr"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/tool"
)

const dateLayout = "2006-01-02"

type RecordDailyAttendanceRequest struct {
	StudentID    string                      `json:"student_id"`
	Date         string                      `json:"date"`
	Subjects     []models.DailySubjectStatus `json:"subjects"`
	Semester     int                         `json:"semester,omitempty"`
	AcademicYear string                      `json:"academic_year,omitempty"`
}

type RecordPeriodAttendanceRequest struct {
	StudentID    string                  `json:"student_id"`
	SubjectCode  string                  `json:"subject_code"`
	SubjectName  string                  `json:"subject_name,omitempty"`
	Date         string                  `json:"date"`
	Period       int                     `json:"period"`
	AcademicYear string                  `json:"academic_year,omitempty"`
	Status       models.AttendanceStatus `json:"status"`
	Remarks      *string                 `json:"remarks,omitempty"`
	MarkedBy     string                  `json:"-"`
}

type RecordMarksRequest struct {
	StudentID     string          `json:"student_id"`
	SubjectCode   string          `json:"subject_code"`
	SubjectName   string          `json:"subject_name,omitempty"`
	ExamType      models.ExamType `json:"exam_type"`
	AcademicYear  string          `json:"academic_year,omitempty"`
	Semester      int             `json:"semester,omitempty"`
	ObtainedMarks float64         `json:"obtained_marks"`
	TotalMarks    float64         `json:"total_marks"`
	ExamDate      *time.Time      `json:"exam_date,omitempty"`
	Remarks       *string         `json:"remarks,omitempty"`
	EnteredBy     string          `json:"-"`
}

type ResultSummary struct {
	StudentID     string           `json:"student_id"`
	CGPA          float64          `json:"cgpa"`
	EarnedCredits float64          `json:"earned_credits"`
	Semesters     []*models.Result `json:"semesters"`
}

// Aggregator records attendance and marks exactly once per natural key,
// with idempotent resubmission, and keeps derived percentage/grade/status
// fields consistent with the raw counters.
type Aggregator interface {
	RecordDailyAttendance(ctx context.Context, req *RecordDailyAttendanceRequest) (*models.AttendanceSummary, error)
	RecordPeriodAttendance(ctx context.Context, req *RecordPeriodAttendanceRequest) (*models.PeriodAttendance, error)
	RecordMarks(ctx context.Context, req *RecordMarksRequest) (*models.Mark, error)
	PublishMarks(ctx context.Context, markID string) (*models.Mark, error)
	UpsertResult(ctx context.Context, res *models.Result) (*models.Result, error)
	ComputeResultSummary(ctx context.Context, studentID string) (*ResultSummary, error)
	GetAttendanceSummary(ctx context.Context, studentID string, semester int, academicYear string) (*models.AttendanceSummary, error)
	ListMarks(ctx context.Context, studentID, academicYear string, publishedOnly bool) ([]*models.Mark, error)
	ListPeriodAttendance(ctx context.Context, studentID, subjectCode, from, to string) ([]*models.PeriodAttendance, error)
}

type Service struct {
	db    *gorm.DB
	log   *zap.SugaredLogger
	dir   *directory.Service
	locks *tool.KeyedMutex
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, dir *directory.Service) Aggregator {
	return &Service{db: db, log: log, dir: dir, locks: tool.NewKeyedMutex()}
}

func (s *Service) RecordDailyAttendance(ctx context.Context, req *RecordDailyAttendanceRequest) (*models.AttendanceSummary, error) {
	if req == nil || req.StudentID == "" || req.Date == "" || len(req.Subjects) == 0 {
		return nil, apperr.E(apperr.KindValidation, "student id, date and subjects are required")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, apperr.E(apperr.KindValidation, "date must use the %s form", dateLayout)
	}
	for _, sub := range req.Subjects {
		if sub.SubjectCode == "" || sub.Status == "" {
			return nil, apperr.E(apperr.KindValidation, "every subject needs a code and a status")
		}
	}
	student, err := s.dir.GetStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	semester := req.Semester
	if semester == 0 {
		semester = student.Semester
	}
	year := req.AcademicYear
	if year == "" {
		year = student.AcademicYear
	}

	key := fmt.Sprintf("attendance:%s:%d:%s", student.ID, semester, year)
	unlock := s.locks.Lock(key)
	defer unlock()

	sum, err := s.findOrCreateSummary(ctx, student.ID, semester, year)
	if err != nil {
		return nil, err
	}
	applyDailyAttendance(sum, req.Date, req.Subjects)
	if err := s.db.WithContext(ctx).Save(sum).Error; err != nil {
		return nil, err
	}
	return sum, nil
}

func (s *Service) findOrCreateSummary(ctx context.Context, studentID string, semester int, year string) (*models.AttendanceSummary, error) {
	var sum models.AttendanceSummary
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND semester = ? AND academic_year = ?", studentID, semester, year).
		First(&sum).Error
	if err == nil {
		return &sum, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &models.AttendanceSummary{
		ID:           tool.GenerateUUIDV7(),
		StudentID:    studentID,
		Semester:     semester,
		AcademicYear: year,
		Subjects:     datatypes.NewJSONType([]models.SubjectAttendance{}),
		Daily:        datatypes.NewJSONType([]models.DailyAttendanceEntry{}),
	}, nil
}

func (s *Service) RecordPeriodAttendance(ctx context.Context, req *RecordPeriodAttendanceRequest) (*models.PeriodAttendance, error) {
	if req == nil || req.StudentID == "" || req.SubjectCode == "" || req.Date == "" || req.Period <= 0 || req.Status == "" {
		return nil, apperr.E(apperr.KindValidation, "student id, subject, date, period and status are required")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, apperr.E(apperr.KindValidation, "date must use the %s form", dateLayout)
	}
	student, err := s.dir.GetStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	year := req.AcademicYear
	if year == "" {
		year = student.AcademicYear
	}

	var rec models.PeriodAttendance
	err = s.db.WithContext(ctx).
		Where("student_id = ? AND subject_code = ? AND date = ? AND period = ? AND academic_year = ?",
			student.ID, req.SubjectCode, req.Date, req.Period, year).
		First(&rec).Error
	switch {
	case err == nil:
		// idempotent upsert: overwrite in place, never duplicate
		rec.Status = req.Status
		rec.Remarks = req.Remarks
		rec.MarkedBy = req.MarkedBy
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec = models.PeriodAttendance{
			ID:           tool.GenerateUUIDV7(),
			StudentID:    student.ID,
			SubjectCode:  req.SubjectCode,
			SubjectName:  req.SubjectName,
			Date:         req.Date,
			Period:       req.Period,
			AcademicYear: year,
			Status:       req.Status,
			Remarks:      req.Remarks,
			MarkedBy:     req.MarkedBy,
		}
	default:
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Service) RecordMarks(ctx context.Context, req *RecordMarksRequest) (*models.Mark, error) {
	if req == nil || req.StudentID == "" || req.SubjectCode == "" || req.ExamType == "" {
		return nil, apperr.E(apperr.KindValidation, "student id, subject and exam type are required")
	}
	if req.TotalMarks <= 0 || req.ObtainedMarks < 0 || req.ObtainedMarks > req.TotalMarks {
		return nil, apperr.E(apperr.KindValidation, "obtained marks must be between 0 and total marks")
	}
	student, err := s.dir.GetStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	year := req.AcademicYear
	if year == "" {
		year = student.AcademicYear
	}

	var m models.Mark
	err = s.db.WithContext(ctx).
		Where("student_id = ? AND subject_code = ? AND exam_type = ? AND academic_year = ?",
			student.ID, req.SubjectCode, req.ExamType, year).
		First(&m).Error
	switch {
	case err == nil:
		m.ObtainedMarks = req.ObtainedMarks
		m.TotalMarks = req.TotalMarks
		m.Remarks = req.Remarks
		m.ExamDate = req.ExamDate
		if req.SubjectName != "" {
			m.SubjectName = req.SubjectName
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		semester := req.Semester
		if semester == 0 {
			semester = student.Semester
		}
		m = models.Mark{
			ID:            tool.GenerateUUIDV7(),
			StudentID:     student.ID,
			SubjectCode:   req.SubjectCode,
			SubjectName:   req.SubjectName,
			ExamType:      req.ExamType,
			AcademicYear:  year,
			Semester:      semester,
			ObtainedMarks: req.ObtainedMarks,
			TotalMarks:    req.TotalMarks,
			ExamDate:      req.ExamDate,
			Remarks:       req.Remarks,
			EnteredBy:     req.EnteredBy,
		}
	default:
		return nil, err
	}
	deriveMark(&m)
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// PublishMarks flips the published flag one way; there is no unpublish.
func (s *Service) PublishMarks(ctx context.Context, markID string) (*models.Mark, error) {
	var m models.Mark
	if err := s.db.WithContext(ctx).Where("id = ?", markID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.KindNotFound, "mark %s not found", markID)
		}
		return nil, err
	}
	if m.IsPublished {
		return &m, nil
	}
	m.IsPublished = true
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) UpsertResult(ctx context.Context, res *models.Result) (*models.Result, error) {
	if res == nil || res.StudentID == "" || res.Semester <= 0 || res.AcademicYear == "" {
		return nil, apperr.E(apperr.KindValidation, "student id, semester and academic year are required")
	}
	if res.Status != models.ResultStatusPass && res.Status != models.ResultStatusFail {
		return nil, apperr.E(apperr.KindValidation, "status must be Pass or Fail")
	}
	if _, err := s.dir.GetStudent(ctx, res.StudentID); err != nil {
		return nil, err
	}
	if res.Status == models.ResultStatusFail {
		res.EarnedCredits = 0
	}

	var existing models.Result
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND semester = ? AND academic_year = ?", res.StudentID, res.Semester, res.AcademicYear).
		First(&existing).Error
	switch {
	case err == nil:
		existing.Subjects = res.Subjects
		existing.SGPA = res.SGPA
		existing.EarnedCredits = res.EarnedCredits
		existing.Status = res.Status
		existing.DeclaredAt = res.DeclaredAt
		res = &existing
	case errors.Is(err, gorm.ErrRecordNotFound):
		if res.ID == "" {
			res.ID = tool.GenerateUUIDV7()
		}
	default:
		return nil, err
	}
	if res.DeclaredAt == nil {
		now := time.Now()
		res.DeclaredAt = &now
	}
	if err := s.db.WithContext(ctx).Save(res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) ComputeResultSummary(ctx context.Context, studentID string) (*ResultSummary, error) {
	if _, err := s.dir.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	var results []*models.Result
	if err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("semester").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return &ResultSummary{
		StudentID: studentID,
		CGPA:      overallCGPA(results),
		EarnedCredits: lo.SumBy(results, func(r *models.Result) float64 {
			if r.Status != models.ResultStatusPass {
				return 0
			}
			return r.EarnedCredits
		}),
		Semesters: results,
	}, nil
}

func (s *Service) GetAttendanceSummary(ctx context.Context, studentID string, semester int, academicYear string) (*models.AttendanceSummary, error) {
	var sum models.AttendanceSummary
	q := s.db.WithContext(ctx).Where("student_id = ?", studentID)
	if semester > 0 {
		q = q.Where("semester = ?", semester)
	}
	if academicYear != "" {
		q = q.Where("academic_year = ?", academicYear)
	}
	if err := q.Order("semester desc").First(&sum).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.KindNotFound, "no attendance summary for student %s", studentID)
		}
		return nil, err
	}
	return &sum, nil
}

func (s *Service) ListMarks(ctx context.Context, studentID, academicYear string, publishedOnly bool) ([]*models.Mark, error) {
	q := s.db.WithContext(ctx).Where("student_id = ?", studentID)
	if academicYear != "" {
		q = q.Where("academic_year = ?", academicYear)
	}
	if publishedOnly {
		q = q.Where("is_published = true")
	}
	var out []*models.Mark
	if err := q.Order("subject_code, exam_type").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ListPeriodAttendance(ctx context.Context, studentID, subjectCode, from, to string) ([]*models.PeriodAttendance, error) {
	q := s.db.WithContext(ctx).Where("student_id = ?", studentID)
	if subjectCode != "" {
		q = q.Where("subject_code = ?", subjectCode)
	}
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	var out []*models.PeriodAttendance
	if err := q.Order("date, period").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
