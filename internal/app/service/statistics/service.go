package statistics

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
)

// FinanceOverview is the aggregate consumed by the head-admin and finance
// dashboards.
type FinanceOverview struct {
	Day                string                         `json:"day"`
	DailyCount         int64                          `json:"daily_count"`
	DailyCollected     int64                          `json:"daily_collected"`
	TotalCollected     int64                          `json:"total_collected"`
	PendingReviewCount int64                          `json:"pending_review_count"`
	StatusBreakdown    map[models.PaymentStatus]int64 `json:"status_breakdown"`
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

type statusCount struct {
	Status models.PaymentStatus
	N      int64
}

// FinanceOverviewFor aggregates the payment ledger for one calendar day
// (paid date for collections, creation date for counts).
func (s *Service) FinanceOverviewFor(ctx context.Context, day time.Time) (*FinanceOverview, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	out := &FinanceOverview{
		Day:             dayStart.Format("2006-01-02"),
		StatusBreakdown: map[models.PaymentStatus]int64{},
	}

	if err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&out.DailyCount).Error; err != nil {
		return nil, err
	}

	type sumRow struct{ Total int64 }
	var daily sumRow
	if err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ? AND paid_date >= ? AND paid_date < ?", models.PaymentStatusCompleted, dayStart, dayEnd).
		Scan(&daily).Error; err != nil {
		return nil, err
	}
	out.DailyCollected = daily.Total

	var total sumRow
	if err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", models.PaymentStatusCompleted).
		Scan(&total).Error; err != nil {
		return nil, err
	}
	out.TotalCollected = total.Total

	var rows []statusCount
	if err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out.StatusBreakdown = lo.SliceToMap(rows, func(r statusCount) (models.PaymentStatus, int64) {
		return r.Status, r.N
	})
	out.PendingReviewCount = out.StatusBreakdown[models.PaymentStatusPending]

	return out, nil
}
