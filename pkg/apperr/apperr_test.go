package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf_SurvivesWrapping(t *testing.T) {
	base := E(KindConflict, "transaction id %s already used", "TX-1")
	wrapped := fmt.Errorf("submit payment: %w", base)
	require.Equal(t, KindConflict, KindOf(wrapped))
	require.True(t, Is(wrapped, KindConflict))
	require.False(t, Is(wrapped, KindValidation))
}

func TestWrap_KeepsUnderlyingError(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindGateway, "midtrans status lookup failed", cause)
	require.True(t, errors.Is(err, cause))
	require.Equal(t, KindGateway, KindOf(err))
	require.Equal(t, "midtrans status lookup failed", Message(err))
}

func TestKindOf_PlainError(t *testing.T) {
	require.Equal(t, KindUnknown, KindOf(errors.New("boom")))
}
