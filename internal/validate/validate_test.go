package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/phase2"
)

type noopRunner struct{}

func (noopRunner) Run(program []byte, costModel []int64, budget ledgerctx.ExUnitsParam) (phase2.ExUnits, error) {
	return phase2.ExUnits{}, nil
}

func TestValidateRejectsInvalidHex(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := Validate("not-hex", &ledgerctx.Context{}, noopRunner{})
	require.Error(t, err)
}

func TestValidateRejectsMalformedCBOR(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := Validate("ff", &ledgerctx.Context{}, noopRunner{})
	require.Error(t, err)
}
