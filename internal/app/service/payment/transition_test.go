package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/platform/gateway"
)

var txTime = time.Date(2026, 2, 2, 10, 30, 0, 0, time.UTC)

func pendingPayment() *models.Payment {
	return &models.Payment{ID: "pay-1", StudentID: "stu-1", Amount: 125000, Status: models.PaymentStatusPending}
}

func completedPayment() *models.Payment {
	receipt := "RCP20260202-000007"
	paid := txTime
	return &models.Payment{ID: "pay-1", StudentID: "stu-1", Amount: 125000, Status: models.PaymentStatusCompleted, ReceiptNumber: &receipt, PaidDate: &paid}
}

func TestApplyStatus_CompleteMintsReceiptAndNotifies(t *testing.T) {
	p := pendingPayment()
	eff := applyStatus(p, models.PaymentStatusCompleted, txTime)

	require.True(t, eff.Changed)
	require.True(t, eff.MintReceipt)
	require.True(t, eff.Notify)
	require.Equal(t, models.PaymentStatusCompleted, p.Status)
	require.NotNil(t, p.PaidDate)
	require.Equal(t, txTime, *p.PaidDate)
}

func TestApplyStatus_RepeatIsNoOp(t *testing.T) {
	p := completedPayment()
	eff := applyStatus(p, models.PaymentStatusCompleted, txTime.Add(time.Hour))

	require.True(t, eff.NoOp())
	require.Equal(t, "RCP20260202-000007", *p.ReceiptNumber)
	require.Equal(t, txTime, *p.PaidDate)
}

func TestApplyStatus_LeavingCompletedErasesReceipt(t *testing.T) {
	for _, to := range []models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusFailed} {
		p := completedPayment()
		eff := applyStatus(p, to, txTime)

		require.True(t, eff.Changed, "to=%s", to)
		require.False(t, eff.MintReceipt)
		require.True(t, eff.Notify)
		require.Nil(t, p.ReceiptNumber, "to=%s", to)
		require.Nil(t, p.PaidDate, "to=%s", to)
	}
}

func TestApplyStatus_LeavingRejectedClearsReason(t *testing.T) {
	for _, to := range []models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusCompleted, models.PaymentStatusFailed} {
		reason := "mismatched transaction id"
		p := pendingPayment()
		p.Status = models.PaymentStatusRejected
		p.RejectionReason = &reason

		eff := applyStatus(p, to, txTime)
		require.True(t, eff.Changed, "to=%s", to)
		require.Nil(t, p.RejectionReason, "to=%s", to)
	}
}

func TestApplyStatus_RejectKeepsCallerReason(t *testing.T) {
	reason := "amount does not match the fee schedule"
	p := pendingPayment()
	p.RejectionReason = &reason

	applyStatus(p, models.PaymentStatusRejected, txTime)
	require.NotNil(t, p.RejectionReason)
	require.Equal(t, reason, *p.RejectionReason)
}

func TestApplyStatus_RejectClearsDerivedFields(t *testing.T) {
	p := pendingPayment()
	eff := applyStatus(p, models.PaymentStatusRejected, txTime)

	require.True(t, eff.Changed)
	require.True(t, eff.Notify)
	require.False(t, eff.MintReceipt)
	require.Nil(t, p.ReceiptNumber)
	require.Nil(t, p.PaidDate)
}

func TestResolveGateway_SuccessAssignsGatewayPaymentID(t *testing.T) {
	p := pendingPayment()
	eff := resolveGateway(p, gateway.StatusSuccess, "gw-pay-9", txTime)

	require.True(t, eff.MintReceipt)
	require.Equal(t, models.PaymentStatusCompleted, p.Status)
	require.NotNil(t, p.GatewayPaymentID)
	require.Equal(t, "gw-pay-9", *p.GatewayPaymentID)
	require.NotNil(t, p.TransactionID)
	require.Equal(t, "gw-pay-9", *p.TransactionID)
}

func TestResolveGateway_SecondSuccessIsNoOp(t *testing.T) {
	p := pendingPayment()
	eff := resolveGateway(p, gateway.StatusSuccess, "gw-pay-9", txTime)
	require.False(t, eff.NoOp())

	// the caller mints between transitions
	receipt := "RCP20260202-000001"
	p.ReceiptNumber = &receipt

	eff = resolveGateway(p, gateway.StatusSuccess, "gw-pay-9", txTime.Add(time.Minute))
	require.True(t, eff.NoOp())
	require.Equal(t, receipt, *p.ReceiptNumber)
}

func TestResolveGateway_FailureNeverDowngradesCompleted(t *testing.T) {
	p := completedPayment()
	eff := resolveGateway(p, gateway.StatusFailed, "", txTime)

	require.True(t, eff.NoOp())
	require.Equal(t, models.PaymentStatusCompleted, p.Status)
	require.NotNil(t, p.ReceiptNumber)
}

func TestResolveGateway_PendingLeavesRecordUntouched(t *testing.T) {
	p := pendingPayment()
	eff := resolveGateway(p, gateway.StatusPending, "", txTime)

	require.True(t, eff.NoOp())
	require.Equal(t, models.PaymentStatusPending, p.Status)
}

func TestSweepEligible(t *testing.T) {
	past := txTime.Add(-time.Minute)
	future := txTime.Add(time.Minute)

	cases := []struct {
		name   string
		status models.PaymentStatus
		at     *time.Time
		want   bool
	}{
		{"pending past deadline", models.PaymentStatusPending, &past, true},
		{"failed past deadline", models.PaymentStatusFailed, &past, true},
		{"pending before deadline", models.PaymentStatusPending, &future, false},
		{"pending without deadline", models.PaymentStatusPending, nil, false},
		{"completed past deadline", models.PaymentStatusCompleted, &past, false},
		{"rejected past deadline", models.PaymentStatusRejected, &past, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := &models.Payment{Status: c.status, AutoDeleteAt: c.at}
			require.Equal(t, c.want, sweepEligible(p, txTime))
		})
	}
}

func TestReceiptNumber_Format(t *testing.T) {
	require.Equal(t, "RCP20260202-000001", receiptNumber(txTime, 1))
	require.Equal(t, "RCP20261231-001234", receiptNumber(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), 1234))
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "₹1250.00", formatAmount(125000))
	require.Equal(t, "₹0.50", formatAmount(50))
}

func TestStatusMessage_RejectedCarriesReason(t *testing.T) {
	reason := "mismatched transaction id"
	p := pendingPayment()
	p.Status = models.PaymentStatusRejected
	p.RejectionReason = &reason
	require.Contains(t, statusMessage(p), reason)

	p.RejectionReason = nil
	require.Contains(t, statusMessage(p), "No reason provided")
}

func TestStatusMessage_CompletedIncludesReceipt(t *testing.T) {
	p := completedPayment()
	require.Contains(t, statusMessage(p), "RCP20260202-000007")
}
