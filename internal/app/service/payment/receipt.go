package payment

import (
	"fmt"
	"time"
)

// receiptNumber mints the human-readable identifier issued exactly once
// per completed payment: a date prefix plus a zero-padded running count.
func receiptNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("RCP%s-%06d", t.Format("20060102"), seq)
}
