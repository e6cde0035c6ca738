package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsRegistered(t *testing.T) {
	m := New()
	m.LedgerEvents.WithLabelValues("sale").Inc()
	m.CashOnHand.Set(8)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LedgerEvents.WithLabelValues("sale")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.CashOnHand))

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["hornet_ledger_events_total"])
	assert.True(t, names["hornet_cash_on_hand"])
}
