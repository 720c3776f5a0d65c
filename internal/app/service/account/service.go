package account

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/apperr"
)

// Account is the credential-bearing capability shared by the three user
// populations. Each variant knows its own backing table; callers never
// dispatch on a role string.
type Account interface {
	Role() models.RecipientRole
	ChangeCredential(ctx context.Context, current, next string) error
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// AccountFor resolves the account variant for a role/id pair.
func (s *Service) AccountFor(ctx context.Context, role models.RecipientRole, id string) (Account, error) {
	switch role {
	case models.RecipientRoleStudent:
		var st models.Student
		if err := s.db.WithContext(ctx).Where("id = ?", id).First(&st).Error; err != nil {
			return nil, notFoundOr(err, "student", id)
		}
		return &studentAccount{svc: s, row: &st}, nil
	case models.RecipientRoleFaculty:
		var f models.Faculty
		if err := s.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
			return nil, notFoundOr(err, "faculty", id)
		}
		return &facultyAccount{svc: s, row: &f}, nil
	case models.RecipientRoleAdmin:
		var a models.Admin
		if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
			return nil, notFoundOr(err, "admin", id)
		}
		return &adminAccount{svc: s, row: &a}, nil
	default:
		return nil, apperr.E(apperr.KindValidation, "unknown account role: %s", role)
	}
}

func notFoundOr(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.E(apperr.KindNotFound, "%s %s not found", kind, id)
	}
	return err
}

func (s *Service) rotate(ctx context.Context, hash, current, next string, save func(newHash string) error) error {
	if next == "" {
		return apperr.E(apperr.KindValidation, "new password is required")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)); err != nil {
		return apperr.E(apperr.KindPermission, "current password does not match")
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return save(string(newHash))
}

type studentAccount struct {
	svc *Service
	row *models.Student
}

func (a *studentAccount) Role() models.RecipientRole { return models.RecipientRoleStudent }

func (a *studentAccount) ChangeCredential(ctx context.Context, current, next string) error {
	return a.svc.rotate(ctx, a.row.PasswordHash, current, next, func(h string) error {
		return a.svc.db.WithContext(ctx).Model(a.row).Update("password_hash", h).Error
	})
}

type facultyAccount struct {
	svc *Service
	row *models.Faculty
}

func (a *facultyAccount) Role() models.RecipientRole { return models.RecipientRoleFaculty }

func (a *facultyAccount) ChangeCredential(ctx context.Context, current, next string) error {
	return a.svc.rotate(ctx, a.row.PasswordHash, current, next, func(h string) error {
		return a.svc.db.WithContext(ctx).Model(a.row).Update("password_hash", h).Error
	})
}

type adminAccount struct {
	svc *Service
	row *models.Admin
}

func (a *adminAccount) Role() models.RecipientRole { return models.RecipientRoleAdmin }

func (a *adminAccount) ChangeCredential(ctx context.Context, current, next string) error {
	return a.svc.rotate(ctx, a.row.PasswordHash, current, next, func(h string) error {
		return a.svc.db.WithContext(ctx).Model(a.row).Update("password_hash", h).Error
	})
}
