package directory

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/apperr"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/tool"
)

// Service is the student/faculty directory consumed by the payment ledger
// and the academic aggregator for owner validation and contact details.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

func (s *Service) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	var st models.Student
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.KindNotFound, "student %s not found", id)
		}
		return nil, err
	}
	return &st, nil
}

func (s *Service) GetFaculty(ctx context.Context, id string) (*models.Faculty, error) {
	var f models.Faculty
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.KindNotFound, "faculty %s not found", id)
		}
		return nil, err
	}
	return &f, nil
}

type ListStudentsRequest struct {
	Branch   string
	Semester int
	From     int
	Size     int
}

func (s *Service) ListStudents(ctx context.Context, req *ListStudentsRequest) ([]*models.Student, int64, error) {
	if req == nil {
		req = &ListStudentsRequest{}
	}
	if req.Size <= 0 {
		req.Size = 50
	}
	q := s.db.WithContext(ctx).Model(&models.Student{})
	if req.Branch != "" {
		q = q.Where("branch = ?", req.Branch)
	}
	if req.Semester > 0 {
		q = q.Where("semester = ?", req.Semester)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []*models.Student
	if err := q.Order("registration_no").Offset(req.From).Limit(req.Size).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Service) CreateStudent(ctx context.Context, st *models.Student) error {
	if st == nil || st.RegistrationNo == "" || st.Name == "" || st.Email == "" {
		return apperr.E(apperr.KindValidation, "registration number, name and email are required")
	}
	if st.ID == "" {
		st.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Create(st).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.E(apperr.KindConflict, "student with this registration number or email already exists")
		}
		return err
	}
	return nil
}
