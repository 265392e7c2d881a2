package phase1

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/result"
)

func TestTransactionLimitsValidatorAcceptsWithinBounds(t *testing.T) {
	tx, ctx := happyPathTx(t)
	findings := TransactionLimitsValidator{}.Check(tx, ctx)
	require.Empty(t, findings)
}

func TestTransactionLimitsValidatorFlagsTxTooLarge(t *testing.T) {
	tx, ctx := happyPathTx(t)
	ctx.Params.MaxTxSize = 10

	findings := TransactionLimitsValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeTxTooLarge, findings[0].Code)
}

func TestTransactionLimitsValidatorFlagsTTLInThePast(t *testing.T) {
	tx, ctx := happyPathTx(t)
	ttl := uint64(10)
	tx.TTL = &ttl
	ctx.Slot = 1000

	findings := TransactionLimitsValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeTTLInThePast)
}

func TestTransactionLimitsValidatorFlagsValidityStartInFuture(t *testing.T) {
	tx, ctx := happyPathTx(t)
	start := uint64(5000)
	tx.ValidityStart = &start
	ctx.Slot = 1000

	findings := TransactionLimitsValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeValidityStartInFuture)
}
