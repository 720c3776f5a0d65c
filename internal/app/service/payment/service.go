package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/directory"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/eventlog"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/notification"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/platform/gateway"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/apperr"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/logctx"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/tool"
	types "github.com/Gyanranjan-Priyam/cms-sub002/pkg/types"
)

// customExpiry is how long an unverified custom submission survives
// before the sweep may remove it.
const customExpiry = 5 * time.Minute

// orderExpiry gives gateway checkouts longer to complete than the manual
// submission window.
const orderExpiry = 30 * time.Minute

type Service struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	dir      *directory.Service
	notif    notification.Sink
	events   *eventlog.Service
	gateways map[models.GatewayProvider]gateway.Client
	locks    *tool.KeyedMutex
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, dir *directory.Service, notif *notification.Service, events *eventlog.Service, clients []gateway.Client) Ledger {
	gws := make(map[models.GatewayProvider]gateway.Client, len(clients))
	for _, c := range clients {
		gws[c.Provider()] = c
	}
	return &Service{db: db, log: log, dir: dir, notif: notif, events: events, gateways: gws, locks: tool.NewKeyedMutex()}
}

func (s *Service) SubmitCustomPayment(ctx context.Context, req *SubmitCustomPaymentRequest) (*models.Payment, error) {
	if req == nil || req.StudentID == "" || req.Amount <= 0 || req.Category == "" || req.Method == "" || req.TransactionID == "" {
		return nil, apperr.E(apperr.KindValidation, "student id, positive amount, category, method and transaction id are required")
	}
	student, err := s.dir.GetStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	// Fast-path duplicate check only. The sparse unique index on
	// transaction_id is the authoritative guard; the insert below can
	// still lose the race and surfaces the same conflict.
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("transaction_id = ?", req.TransactionID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.E(apperr.KindConflict, "transaction id %s is already used by another payment", req.TransactionID)
	}

	now := time.Now()
	expiry := now.Add(customExpiry)
	p := &models.Payment{
		ID:            tool.GenerateUUIDV7(),
		StudentID:     student.ID,
		Amount:        req.Amount,
		Category:      req.Category,
		Method:        req.Method,
		TransactionID: &req.TransactionID,
		Status:        models.PaymentStatusPending,
		Semester:      req.Semester,
		AcademicYear:  req.AcademicYear,
		DueDate:       req.DueDate,
		AutoDeleteAt:  &expiry,
	}
	if p.Semester == 0 {
		p.Semester = student.Semester
	}
	if p.AcademicYear == "" {
		p.AcademicYear = student.AcademicYear
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, duplicateTransactionErr(err, req.TransactionID)
	}

	s.notifyTransition(ctx, p)
	return p, nil
}

func (s *Service) CreateGatewayOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResult, error) {
	if req == nil || req.StudentID == "" || req.Amount <= 0 || req.Provider == "" {
		return nil, apperr.E(apperr.KindValidation, "student id, positive amount and provider are required")
	}
	client, ok := s.gateways[req.Provider]
	if !ok {
		return nil, apperr.E(apperr.KindValidation, "unsupported gateway provider: %s", req.Provider)
	}
	student, err := s.dir.GetStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = models.PaymentCategoryAcademic
	}
	orderID := fmt.Sprintf("ORD-%s", tool.GenerateUUIDV7())
	order, err := client.CreateOrder(ctx, &gateway.OrderRequest{
		OrderID:     orderID,
		Amount:      req.Amount,
		Description: fmt.Sprintf("%s fee, semester %d", category, req.Semester),
		CustomerID:  student.ID,
		Name:        student.Name,
		Email:       student.Email,
		Phone:       student.Phone,
	})
	if err != nil {
		return nil, err
	}
	if order.OrderID != "" {
		orderID = order.OrderID
	}

	now := time.Now()
	expiry := now.Add(orderExpiry)
	provider := req.Provider
	p := &models.Payment{
		ID:             tool.GenerateUUIDV7(),
		StudentID:      student.ID,
		Amount:         req.Amount,
		Category:       category,
		Method:         models.PaymentMethodGateway,
		Provider:       &provider,
		GatewayOrderID: &orderID,
		Status:         models.PaymentStatusPending,
		Semester:       req.Semester,
		AcademicYear:   req.AcademicYear,
		AutoDeleteAt:   &expiry,
	}
	if p.Semester == 0 {
		p.Semester = student.Semester
	}
	if p.AcademicYear == "" {
		p.AcademicYear = student.AcademicYear
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return &CreateOrderResult{PaymentID: p.ID, OrderID: orderID, Token: order.Token, RedirectURL: order.RedirectURL}, nil
}

func (s *Service) VerifyGatewayPayment(ctx context.Context, req *VerifyRequest) (*VerifyResult, error) {
	if req == nil || (req.OrderID == "" && req.PaymentID == "") {
		return nil, apperr.E(apperr.KindValidation, "order id or payment id is required")
	}
	p, err := s.findForGateway(ctx, req.OrderID, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if p.Provider == nil {
		return nil, apperr.E(apperr.KindValidation, "payment %s is not bound to a gateway", p.ID)
	}
	client, ok := s.gateways[*p.Provider]
	if !ok {
		return nil, apperr.E(apperr.KindValidation, "unsupported gateway provider: %s", *p.Provider)
	}

	unlock := s.locks.Lock(p.ID)
	defer unlock()
	// Re-read under the lock; a webhook may have landed first.
	if err := s.db.WithContext(ctx).Where("id = ?", p.ID).First(p).Error; err != nil {
		return nil, reloadErr(err, p.ID)
	}

	orderID := ""
	if p.GatewayOrderID != nil {
		orderID = *p.GatewayOrderID
	}
	s.logEvent(ctx, *p.Provider, p, orderID, req, models.GatewayEventLogStatusReceived, nil)

	info, err := client.FetchStatus(ctx, orderID)
	if err != nil {
		s.logEvent(ctx, *p.Provider, p, orderID, req, models.GatewayEventLogStatusHandleFailed, err)
		return nil, err
	}

	eff := resolveGateway(p, info.Status, info.PaymentID, time.Now())
	if err := s.persistTransition(ctx, p, eff); err != nil {
		s.logEvent(ctx, *p.Provider, p, orderID, req, models.GatewayEventLogStatusHandleFailed, err)
		return nil, err
	}
	s.logEvent(ctx, *p.Provider, p, orderID, req, models.GatewayEventLogStatusHandled, nil)

	return &VerifyResult{
		PaymentID:     p.ID,
		Status:        p.Status,
		ReceiptNumber: p.ReceiptNumber,
		Pending:       info.Status == gateway.StatusPending,
	}, nil
}

func (s *Service) ReviewCustomPayment(ctx context.Context, req *ReviewRequest) (*models.Payment, error) {
	if req == nil || req.PaymentID == "" {
		return nil, apperr.E(apperr.KindValidation, "payment id is required")
	}
	if req.Action != ReviewActionApprove && req.Action != ReviewActionReject {
		return nil, apperr.E(apperr.KindValidation, "action must be approve or reject")
	}

	unlock := s.locks.Lock(req.PaymentID)
	defer unlock()

	p, err := s.GetPayment(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PaymentStatusPending {
		return nil, apperr.Wrap(apperr.KindConflict, fmt.Sprintf("payment %s already processed (status %s)", p.ID, p.Status), ErrAlreadyProcessed)
	}

	now := time.Now()
	p.VerifiedBy = &req.ReviewerID
	p.VerifiedAt = &now

	var eff transitionEffect
	if req.Action == ReviewActionApprove {
		eff = applyStatus(p, models.PaymentStatusCompleted, now)
	} else {
		reason := req.Notes
		if reason == "" {
			reason = "Payment rejected by finance department"
		}
		p.RejectionReason = &reason
		eff = applyStatus(p, models.PaymentStatusRejected, now)
	}
	if err := s.persistTransition(ctx, p, eff); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus, actorID string) (*models.Payment, error) {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusCompleted, models.PaymentStatusFailed:
	default:
		return nil, apperr.E(apperr.KindValidation, "status must be pending, completed or failed")
	}

	unlock := s.locks.Lock(paymentID)
	defer unlock()

	p, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	eff := applyStatus(p, status, now)
	if eff.NoOp() {
		return p, nil
	}
	if actorID != "" {
		p.VerifiedBy = &actorID
		p.VerifiedAt = &now
	}
	if err := s.persistTransition(ctx, p, eff); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) HandleWebhook(ctx context.Context, provider models.GatewayProvider, body []byte, signature string) error {
	client, ok := s.gateways[provider]
	if !ok {
		return apperr.E(apperr.KindValidation, "unsupported gateway provider: %s", provider)
	}
	ev, err := client.ParseWebhook(body, signature)
	if err != nil {
		return err
	}

	p, err := s.findForGateway(ctx, ev.OrderID, "")
	if err != nil {
		s.logEvent(ctx, provider, nil, ev.OrderID, json.RawMessage(body), models.GatewayEventLogStatusHandleFailed, err)
		return err
	}

	unlock := s.locks.Lock(p.ID)
	defer unlock()
	if err := s.db.WithContext(ctx).Where("id = ?", p.ID).First(p).Error; err != nil {
		return reloadErr(err, p.ID)
	}
	s.logEvent(ctx, provider, p, ev.OrderID, json.RawMessage(body), models.GatewayEventLogStatusReceived, nil)

	eff := resolveGateway(p, ev.Status, ev.PaymentID, time.Now())
	if err := s.persistTransition(ctx, p, eff); err != nil {
		s.logEvent(ctx, provider, p, ev.OrderID, json.RawMessage(body), models.GatewayEventLogStatusHandleFailed, err)
		return err
	}
	s.logEvent(ctx, provider, p, ev.OrderID, json.RawMessage(body), models.GatewayEventLogStatusHandled, nil)
	return nil
}

// SweepExpiredPayments removes pending/failed records past their
// auto-delete time. Completed and rejected records never match the
// filter, so a record that completes just before the sweep survives.
func (s *Service) SweepExpiredPayments(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("status IN ? AND auto_delete_at IS NOT NULL AND auto_delete_at <= ?",
			[]models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusFailed}, time.Now()).
		Delete(&models.Payment{})
	return res.RowsAffected, res.Error
}

func (s *Service) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	var p models.Payment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.KindNotFound, "payment %s not found", id)
		}
		return nil, err
	}
	return &p, nil
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// ListPayments implements paginated/admin listing with filters.
func (s *Service) ListPayments(ctx context.Context, req *ListPaymentsRequest) (*ListPaymentsResponse, error) {
	if req == nil {
		return nil, apperr.E(apperr.KindValidation, "nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Payment{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}

	var rows []*models.Payment
	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &ListPaymentsResponse{Items: rows, Total: total}, nil
}

// maxMintAttempts bounds the re-mint loop when two payments completing at
// the same time derive the same receipt number.
const maxMintAttempts = 3

// retryMint reports whether a failed save should derive a fresh receipt
// number and try again: only receipt collisions are retried, and only a
// bounded number of times.
func retryMint(err error, attempt int) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) && attempt < maxMintAttempts
}

// persistTransition mints the receipt when required, saves the record and
// emits the single transition notification. Callers hold the per-payment
// lock; the lock does not cover two different payments minting at once,
// so a unique-index collision on the receipt re-mints and retries.
func (s *Service) persistTransition(ctx context.Context, p *models.Payment, eff transitionEffect) error {
	if eff.NoOp() {
		return nil
	}
	for attempt := 1; ; attempt++ {
		if eff.MintReceipt {
			n, err := s.mintReceipt(ctx, *p.PaidDate)
			if err != nil {
				return err
			}
			p.ReceiptNumber = &n
		}
		err := s.db.WithContext(ctx).Save(p).Error
		if err == nil {
			break
		}
		if !eff.MintReceipt || !retryMint(err, attempt) {
			return err
		}
	}
	if eff.Notify {
		s.notifyTransition(ctx, p)
	}
	return nil
}

// mintReceipt derives the next running count from how many receipts were
// ever issued. The unique index on receipt_number backstops the rare race
// between two minting transitions on different payments.
func (s *Service) mintReceipt(ctx context.Context, at time.Time) (string, error) {
	var issued int64
	if err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("receipt_number IS NOT NULL").Count(&issued).Error; err != nil {
		return "", err
	}
	return receiptNumber(at, issued+1), nil
}

func (s *Service) notifyTransition(ctx context.Context, p *models.Payment) {
	n := &models.Notification{
		RecipientID:   p.StudentID,
		RecipientRole: models.RecipientRoleStudent,
		Type:          models.NotificationTypePaymentUpdate,
		Title:         fmt.Sprintf("Payment %s", p.Status),
		Message:       statusMessage(p),
	}
	if err := s.notif.Notify(ctx, n); err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("payment_notification_failed", "payment_id", p.ID, "err", err)
	}
}

// reloadErr keeps a locked re-read miss kinded: the sweep may remove a
// pending payment between the first lookup and lock acquisition.
func reloadErr(err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.E(apperr.KindNotFound, "payment %s not found", id)
	}
	return err
}

// duplicateTransactionErr translates a unique-index rejection on
// transaction_id into the same Conflict the pre-check produces, so both
// outcomes of the insert race surface identically to callers.
func duplicateTransactionErr(err error, transactionID string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.E(apperr.KindConflict, "transaction id %s is already used by another payment", transactionID)
	}
	return err
}

func (s *Service) findForGateway(ctx context.Context, orderID, paymentID string) (*models.Payment, error) {
	var p models.Payment
	q := s.db.WithContext(ctx)
	if orderID != "" {
		q = q.Where("gateway_order_id = ?", orderID)
	} else {
		q = q.Where("id = ?", paymentID)
	}
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.KindNotFound, "payment not found for order %s", orderID)
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) logEvent(ctx context.Context, provider models.GatewayProvider, p *models.Payment, orderID string, payload any, status models.GatewayEventLogStatus, cause error) {
	data, _ := json.Marshal(payload)
	entry := &models.GatewayEventLog{
		Provider:       provider,
		GatewayOrderID: orderID,
		EventTime:      time.Now(),
		Data:           datatypes.JSON(data),
		Status:         status,
	}
	if tid, ok := ctx.Value("traceID").(string); ok {
		entry.TraceID = tid
	}
	if p != nil {
		sid := p.StudentID
		entry.StudentID = &sid
	}
	if cause != nil {
		res, _ := json.Marshal(map[string]string{"error": cause.Error()})
		j := datatypes.JSON(res)
		entry.Result = &j
	}
	s.events.Save(ctx, entry)
}
