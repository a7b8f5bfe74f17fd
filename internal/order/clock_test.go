package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/order"
)

func TestSystemClock_MatchesStoredPrecision(t *testing.T) {
	now := order.SystemClock{}.Now()

	require.Equal(t, time.UTC, now.Location())
	require.Zero(t, now.Nanosecond()%int(time.Microsecond))
	require.True(t, now.Equal(now.Truncate(time.Microsecond)))
}
