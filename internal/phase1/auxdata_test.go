package phase1

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/cryptoutil"
	"github.com/go-cardano/ledgercheck/internal/result"
)

func TestAuxiliaryDataValidatorAcceptsMatchingHash(t *testing.T) {
	tx, ctx := happyPathTx(t)
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	hash := cryptoutil.Blake2b256(data)
	tx.AuxData.Present = true
	tx.AuxData.CBOR = data
	tx.AuxData.Hash = &hash

	findings := AuxiliaryDataValidator{}.Check(tx, ctx)
	require.Empty(t, findings)
}

func TestAuxiliaryDataValidatorFlagsMismatch(t *testing.T) {
	tx, ctx := happyPathTx(t)
	hash := [32]byte{0x01}
	tx.AuxData.Present = true
	tx.AuxData.CBOR = []byte{0xde, 0xad}
	tx.AuxData.Hash = &hash

	findings := AuxiliaryDataValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeAuxiliaryDataHashMismatch, findings[0].Code)
}

func TestAuxiliaryDataValidatorFlagsMissingHash(t *testing.T) {
	tx, ctx := happyPathTx(t)
	tx.AuxData.Present = true

	findings := AuxiliaryDataValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeMissingAuxiliaryDataHash, findings[0].Code)
}
