package payment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/apperr"
)

func TestRetryMint(t *testing.T) {
	require.True(t, retryMint(gorm.ErrDuplicatedKey, 1))
	require.True(t, retryMint(fmt.Errorf("save: %w", gorm.ErrDuplicatedKey), maxMintAttempts-1))
	require.False(t, retryMint(gorm.ErrDuplicatedKey, maxMintAttempts))
	require.False(t, retryMint(gorm.ErrInvalidData, 1))
	require.False(t, retryMint(nil, 1))
}

func TestReloadErr_MissBecomesNotFound(t *testing.T) {
	err := reloadErr(gorm.ErrRecordNotFound, "pay-123")
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.Contains(t, err.Error(), "pay-123")
}

func TestReloadErr_PassesThroughOtherErrors(t *testing.T) {
	orig := fmt.Errorf("connection reset")
	require.Same(t, orig, reloadErr(orig, "pay-123"))
}

func TestDuplicateTransactionErr_DuplicateBecomesConflict(t *testing.T) {
	err := duplicateTransactionErr(gorm.ErrDuplicatedKey, "TX-42")
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	require.Contains(t, err.Error(), "TX-42")
}

func TestDuplicateTransactionErr_PassesThroughOtherErrors(t *testing.T) {
	orig := fmt.Errorf("connection reset")
	require.Same(t, orig, duplicateTransactionErr(orig, "TX-42"))
}
