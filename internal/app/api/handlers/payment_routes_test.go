package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/payment"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/apperr"
)

type stubLedger struct {
	submitErr error
	reviewErr error
	verify    *payment.VerifyResult
}

func (s *stubLedger) SubmitCustomPayment(_ context.Context, req *payment.SubmitCustomPaymentRequest) (*models.Payment, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	tid := req.TransactionID
	return &models.Payment{ID: "pay-1", StudentID: req.StudentID, Amount: req.Amount, TransactionID: &tid, Status: models.PaymentStatusPending}, nil
}

func (s *stubLedger) CreateGatewayOrder(_ context.Context, _ *payment.CreateOrderRequest) (*payment.CreateOrderResult, error) {
	return &payment.CreateOrderResult{PaymentID: "pay-1", OrderID: "ORD-1", Token: "tok"}, nil
}

func (s *stubLedger) VerifyGatewayPayment(_ context.Context, _ *payment.VerifyRequest) (*payment.VerifyResult, error) {
	return s.verify, nil
}

func (s *stubLedger) ReviewCustomPayment(_ context.Context, _ *payment.ReviewRequest) (*models.Payment, error) {
	if s.reviewErr != nil {
		return nil, s.reviewErr
	}
	return &models.Payment{ID: "pay-1", Status: models.PaymentStatusCompleted}, nil
}

func (s *stubLedger) UpdateStatus(_ context.Context, _ string, _ models.PaymentStatus, _ string) (*models.Payment, error) {
	panic("not used")
}

func (s *stubLedger) HandleWebhook(_ context.Context, _ models.GatewayProvider, _ []byte, _ string) error {
	panic("not used")
}

func (s *stubLedger) SweepExpiredPayments(_ context.Context) (int64, error) { panic("not used") }

func (s *stubLedger) ListPayments(_ context.Context, _ *payment.ListPaymentsRequest) (*payment.ListPaymentsResponse, error) {
	return &payment.ListPaymentsResponse{}, nil
}

func (s *stubLedger) GetPayment(_ context.Context, _ string) (*models.Payment, error) {
	panic("not used")
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApiSubmitCustomPayment_ReturnsPendingPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payments/custom", ApiSubmitCustomPayment(&stubLedger{}))

	w := postJSON(t, r, "/payments/custom", map[string]any{
		"student_id": "stu-1", "amount": 125000, "category": "academic",
		"method": "custom_upi", "transaction_id": "TX-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":0`)
	require.Contains(t, w.Body.String(), `"status":"pending"`)
	require.Contains(t, w.Body.String(), "TX-1")
}

func TestApiSubmitCustomPayment_DuplicateTransactionIDIsConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	stub := &stubLedger{submitErr: apperr.E(apperr.KindConflict, "transaction id TX-1 is already used by another payment")}
	r.POST("/payments/custom", ApiSubmitCustomPayment(stub))

	w := postJSON(t, r, "/payments/custom", map[string]any{
		"student_id": "stu-1", "amount": 125000, "category": "academic",
		"method": "custom_upi", "transaction_id": "TX-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40900`)
}

func TestApiReviewCustomPayment_AlreadyProcessedIsConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	stub := &stubLedger{reviewErr: apperr.Wrap(apperr.KindConflict, "payment pay-1 already processed (status completed)", payment.ErrAlreadyProcessed)}
	r.POST("/payments/verify-custom", ApiReviewCustomPayment(stub))

	w := postJSON(t, r, "/payments/verify-custom", map[string]any{"payment_id": "pay-1", "action": "approve"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40900`)
}

func TestApiVerifyGatewayPayment_ReportsReceipt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	receipt := "RCP20260202-000001"
	stub := &stubLedger{verify: &payment.VerifyResult{PaymentID: "pay-1", Status: models.PaymentStatusCompleted, ReceiptNumber: &receipt}}
	r.POST("/payments/verify", ApiVerifyGatewayPayment(stub))

	w := postJSON(t, r, "/payments/verify", map[string]any{"order_id": "ORD-1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), receipt)
	require.Contains(t, w.Body.String(), `"status":"completed"`)
}

func TestRegisterWebhookRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1")
	RegisterWebhookRoutes(g, nil)

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	require.True(t, contains("POST /api/v1/webhooks/midtrans"))
	require.True(t, contains("POST /api/v1/webhooks/razorpay"))
}

func TestOwnStudentOnly_BlocksOtherStudents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("role", "student"); c.Set("user_id", "stu-1") })
	g := r.Group("/students/:id")
	g.Use(ownStudentOnly())
	g.GET("", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/students/stu-2", nil))
	require.Contains(t, w.Body.String(), `"code":40300`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/students/stu-1", nil))
	require.Equal(t, "ok", w.Body.String())
}
