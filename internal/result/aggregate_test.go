package result

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregateIsDeterministicRegardlessOfInputOrder(t *testing.T) {
	a := Errorf("balance", CodeValueNotConservedUTxO, "/body", nil, "mismatch")
	b := Warnf("registration", WarnDRepRefundHistoryUnavailable, "/certificates/0", nil, "unknown history")
	c := Errorf("fee", CodeFeeTooSmall, "/body/fee", nil, "too small")

	r1 := Aggregate("deadbeef", []Finding{a, b, c}, nil, nil)
	r2 := Aggregate("deadbeef", []Finding{c, b, a}, nil, nil)

	require.Equal(t, r1, r2)
	require.False(t, r1.Valid)
	require.Len(t, r1.Errors, 2)
	require.Len(t, r1.Warnings, 1)
}

func TestAggregateValidWithNoFindings(t *testing.T) {
	r := Aggregate("cafebabe", nil, nil, nil)
	require.True(t, r.Valid)
	require.Empty(t, r.Errors)
	require.Empty(t, r.Warnings)
}

func TestAggregateKeepsPhase2FindingsSeparate(t *testing.T) {
	p1 := Errorf("balance", CodeValueNotConservedUTxO, "/body", nil, "mismatch")
	p2 := Warnf("phase2", WarnExUnitsFarBelowBudget, "/redeemers/0", nil, "far below budget")

	r := Aggregate("cafebabe", []Finding{p1}, []Finding{p2}, nil)

	require.Len(t, r.Errors, 1)
	require.Empty(t, r.Warnings)
	require.Empty(t, r.Phase2Errors)
	require.Len(t, r.Phase2Warnings, 1)
}

func TestAggregateScriptFailureInvalidatesResult(t *testing.T) {
	r := Aggregate("cafebabe", nil, nil, []EvalRedeemerResult{{Tag: "spend", Success: false}})
	require.False(t, r.Valid)
}
