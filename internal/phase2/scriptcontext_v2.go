package phase2

import (
	"github.com/go-cardano/ledgercheck/internal/cborx"
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// scriptContextV2 builds the Plutus V2 ScriptContext: adds the reference
// inputs V1 lacks, still no governance fields.
type scriptContextV2 struct{}

func (scriptContextV2) Build(tx *txmodel.Transaction, lc *ledgerctx.Context, r txmodel.Redeemer) ([]byte, error) {
	var buf []byte
	buf = append(buf, cborx.EncodeArrayHeader(2)...)
	buf = append(buf, encodeTxInfo(tx, lc, txInfoFields{
		includeReferenceInputs: true,
		includeVotes:           false,
		includeProposals:       false,
		includeTreasury:        false,
	})...)
	buf = append(buf, encodeScriptPurpose(tx, r)...)
	return buf, nil
}
