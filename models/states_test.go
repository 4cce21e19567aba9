package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStateFor(t *testing.T) {
	for _, ns := range AllNamespaces() {
		raw, ok := DefaultStateFor(ns)
		require.True(t, ok, "namespace %s", ns)
		assert.True(t, json.Valid(raw), "namespace %s", ns)
	}

	_, ok := DefaultStateFor("unknown")
	assert.False(t, ok)
}

func TestDefaultFinanceState(t *testing.T) {
	raw, ok := DefaultStateFor(NamespaceFinance)
	require.True(t, ok)

	var state FinanceState
	require.NoError(t, json.Unmarshal(raw, &state))
	assert.Empty(t, state.Accounts)
	assert.True(t, state.MonthlyBudget.IsZero())
	assert.True(t, state.ExchangeRate.Equal(decimal.NewFromInt(1)))
}

func TestDefaultSettingsState(t *testing.T) {
	raw, ok := DefaultStateFor(NamespaceSettings)
	require.True(t, ok)

	var state SettingsState
	require.NoError(t, json.Unmarshal(raw, &state))
	assert.Equal(t, "system", state.Theme)
	assert.Equal(t, "USD", state.BaseCurrency)
}
