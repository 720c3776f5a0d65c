package payment

import (
	"fmt"
	"time"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/platform/gateway"
)

// transitionEffect describes what a status change requires of the caller:
// minting a receipt and/or emitting a notification. A zero value means the
// call was an idempotent no-op.
type transitionEffect struct {
	Changed     bool
	MintReceipt bool
	Notify      bool
}

func (e transitionEffect) NoOp() bool { return !e.Changed && !e.MintReceipt && !e.Notify }

// applyStatus moves p to the target status and enforces the derived-field
// invariants: paidDate and receipt exist iff completed, the rejection
// reason only while rejected. Moving away from completed clears both,
// receipt included. Re-applying the current status is a no-op, which is
// what makes verify and webhook handling idempotent.
func applyStatus(p *models.Payment, to models.PaymentStatus, now time.Time) transitionEffect {
	if p.Status == to && !(to == models.PaymentStatusCompleted && !p.HasReceipt()) {
		return transitionEffect{}
	}

	eff := transitionEffect{Changed: p.Status != to}
	p.Status = to
	switch to {
	case models.PaymentStatusCompleted:
		if p.PaidDate == nil {
			t := now
			p.PaidDate = &t
		}
		if !p.HasReceipt() {
			eff.MintReceipt = true
		}
		p.RejectionReason = nil
		eff.Notify = eff.Changed
	case models.PaymentStatusPending, models.PaymentStatusFailed:
		p.ReceiptNumber = nil
		p.PaidDate = nil
		p.RejectionReason = nil
		eff.Notify = eff.Changed
	case models.PaymentStatusRejected:
		p.ReceiptNumber = nil
		p.PaidDate = nil
		eff.Notify = eff.Changed
	}
	return eff
}

// resolveGateway folds the gateway's authoritative status into the local
// record. A pending answer leaves the record untouched; a failure notice
// never downgrades a payment that already completed.
func resolveGateway(p *models.Payment, status gateway.Status, gatewayPaymentID string, now time.Time) transitionEffect {
	switch status {
	case gateway.StatusSuccess:
		eff := applyStatus(p, models.PaymentStatusCompleted, now)
		if !eff.NoOp() && gatewayPaymentID != "" {
			id := gatewayPaymentID
			p.GatewayPaymentID = &id
			if p.TransactionID == nil {
				p.TransactionID = &id
			}
		}
		return eff
	case gateway.StatusFailed:
		if p.Status == models.PaymentStatusCompleted {
			return transitionEffect{}
		}
		return applyStatus(p, models.PaymentStatusFailed, now)
	default:
		return transitionEffect{}
	}
}

// sweepEligible is the expiry predicate: only non-terminal leftovers past
// their auto-delete time are removed. Completed and rejected records are
// never swept regardless of the timestamp.
func sweepEligible(p *models.Payment, now time.Time) bool {
	if p.Status != models.PaymentStatusPending && p.Status != models.PaymentStatusFailed {
		return false
	}
	return p.AutoDeleteAt != nil && !p.AutoDeleteAt.After(now)
}

// formatAmount renders a paise amount for notification text.
func formatAmount(paise int64) string {
	return fmt.Sprintf("₹%.2f", float64(paise)/100)
}

// statusMessage builds the human-readable notification body for a payment
// state change.
func statusMessage(p *models.Payment) string {
	amount := formatAmount(p.Amount)
	switch p.Status {
	case models.PaymentStatusCompleted:
		receipt := ""
		if p.HasReceipt() {
			receipt = fmt.Sprintf(" Receipt: %s.", *p.ReceiptNumber)
		}
		return fmt.Sprintf("Your payment of %s has been completed.%s", amount, receipt)
	case models.PaymentStatusFailed:
		return fmt.Sprintf("Your payment of %s has failed. Please try again.", amount)
	case models.PaymentStatusRejected:
		reason := "No reason provided"
		if p.RejectionReason != nil && *p.RejectionReason != "" {
			reason = *p.RejectionReason
		}
		return fmt.Sprintf("Your payment of %s was rejected. Reason: %s", amount, reason)
	default:
		return fmt.Sprintf("Your payment of %s is pending verification.", amount)
	}
}
