package phase1

import (
	"bytes"

	"github.com/go-cardano/ledgercheck/internal/cryptoutil"
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// AuxiliaryDataValidator checks that the transaction body's optional
// auxiliary-data hash agrees with the auxiliary data actually attached to
// the envelope, in both directions: a hash with no data, and data with no
// (or a mismatching) hash, are both structurally invalid.
type AuxiliaryDataValidator struct{}

func (AuxiliaryDataValidator) Name() string { return "auxiliary-data" }

func (AuxiliaryDataValidator) Check(tx *txmodel.Transaction, _ *ledgerctx.Context) []result.Finding {
	var findings []result.Finding

	switch {
	case tx.AuxData.Hash != nil && !tx.AuxData.Present:
		findings = append(findings, result.Errorf(
			"auxiliary-data", result.CodeUnexpectedAuxiliaryData, "/auxiliaryDataHash", nil,
			"transaction body declares an auxiliary data hash but no auxiliary data is attached"))

	case tx.AuxData.Hash == nil && tx.AuxData.Present:
		findings = append(findings, result.Errorf(
			"auxiliary-data", result.CodeMissingAuxiliaryDataHash, "/auxiliaryData", nil,
			"auxiliary data is attached but the transaction body has no auxiliary data hash"))

	case tx.AuxData.Hash != nil && tx.AuxData.Present:
		got := cryptoutil.Blake2b256(tx.AuxData.CBOR)
		if !bytes.Equal(got[:], tx.AuxData.Hash[:]) {
			findings = append(findings, result.Errorf(
				"auxiliary-data", result.CodeAuxiliaryDataHashMismatch, "/auxiliaryData", map[string]any{
					"expected": hexString(tx.AuxData.Hash[:]),
					"actual":   hexString(got[:]),
				},
				"auxiliary data hash does not match the attached auxiliary data"))
		}
	}

	return findings
}
