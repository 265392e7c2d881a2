package phase1

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

func TestOutputValidatorAcceptsSufficientMinUTxO(t *testing.T) {
	tx, ctx := happyPathTx(t)
	findings := OutputValidator{}.Check(tx, ctx)
	require.Empty(t, findings)
}

func TestOutputValidatorFlagsTooSmallUTxO(t *testing.T) {
	tx, ctx := happyPathTx(t)
	tx.Outputs[0].Value = txmodel.NewValue(1)

	findings := OutputValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeOutputTooSmallUTxO, findings[0].Code)
}

func TestOutputValidatorFlagsWrongNetwork(t *testing.T) {
	tx, ctx := happyPathTx(t)
	tx.Outputs[0].Address.Network = 0

	findings := OutputValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeWrongNetworkInOutput)
}

func TestOutputValidatorFlagsValueTooBig(t *testing.T) {
	tx, ctx := happyPathTx(t)
	ctx.Params.MaxValueSize = 1

	findings := OutputValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeOutputTooBigUTxO)
}
