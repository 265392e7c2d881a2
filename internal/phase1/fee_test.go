package phase1

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
)

func TestFeeValidatorAcceptsSufficientFee(t *testing.T) {
	tx, ctx := happyPathTx(t)
	findings := FeeValidator{}.Check(tx, ctx)
	require.Empty(t, findings)
}

func TestFeeValidatorFlagsFeeTooSmall(t *testing.T) {
	tx, ctx := happyPathTx(t)
	tx.Fee = big.NewInt(1)

	findings := FeeValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeFeeTooSmall, findings[0].Code)
}

func TestRefScriptFeeAppliesTieredRate(t *testing.T) {
	params := ledgerctx.ProtocolParams{
		RefScriptCostRange: []ledgerctx.RefScriptCostTier{
			{SizeThreshold: 100, Multiplier: ledgerctx.Rational{Numerator: 1, Denominator: 1}},
			{SizeThreshold: 200, Multiplier: ledgerctx.Rational{Numerator: 2, Denominator: 1}},
		},
	}

	got := refScriptFee(params, 150)
	require.Equal(t, big.NewInt(100+50*2), got)
}

func TestRefScriptFeeFallsBackToFlatRate(t *testing.T) {
	params := ledgerctx.ProtocolParams{MinFeeRefScriptCostPerByte: 44}
	got := refScriptFee(params, 10)
	require.Equal(t, big.NewInt(440), got)
}
