package phase1

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRunHappyPathProducesNoFindings(t *testing.T) {
	defer goleak.VerifyNone(t)

	tx, ctx := happyPathTx(t)
	findings := Run(tx, ctx)
	require.Empty(t, findings)
}

func TestRunIsDeterministicAcrossRepeatedCalls(t *testing.T) {
	defer goleak.VerifyNone(t)

	tx, ctx := happyPathTx(t)
	tx.Fee = nil // triggers a nil-pointer panic inside Balance/Fee, recovered as UnknownError

	first := Run(tx, ctx)
	second := Run(tx, ctx)
	require.Equal(t, first, second)
}

func TestRunRecoversValidatorPanicAsUnknownError(t *testing.T) {
	defer goleak.VerifyNone(t)

	tx, ctx := happyPathTx(t)
	tx.Fee = nil

	findings := Run(tx, ctx)

	var sawUnknown bool
	for _, f := range findings {
		if f.Code == "UnknownError" {
			sawUnknown = true
		}
	}
	require.True(t, sawUnknown)
}
