package notification

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/apperr"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/tool"
)

// Sink is the write side consumed by the payment ledger and the academic
// aggregator: exactly one Notify call per state transition.
type Sink interface {
	Notify(ctx context.Context, n *models.Notification) error
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

func (s *Service) Notify(ctx context.Context, n *models.Notification) error {
	if n == nil || n.RecipientID == "" {
		return apperr.E(apperr.KindValidation, "notification recipient is required")
	}
	if n.ID == "" {
		n.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return err
	}
	return nil
}

func (s *Service) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]*models.Notification, error) {
	q := s.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("read = false")
	}
	var out []*models.Notification
	if err := q.Order("created_at desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.E(apperr.KindNotFound, "notification %s not found", notificationID)
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = false", recipientID).
		Update("read", true)
	return res.RowsAffected, res.Error
}
