package phase2

import (
	"github.com/go-cardano/ledgercheck/internal/cborx"
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// scriptContextV1 builds the Plutus V1 ScriptContext: a TxInfo with no
// reference inputs, no governance fields and no per-redeemer extension
// data, plus the ScriptPurpose for this redeemer.
type scriptContextV1 struct{}

func (scriptContextV1) Build(tx *txmodel.Transaction, lc *ledgerctx.Context, r txmodel.Redeemer) ([]byte, error) {
	var buf []byte
	buf = append(buf, cborx.EncodeArrayHeader(2)...)
	buf = append(buf, encodeTxInfo(tx, lc, txInfoFields{
		includeReferenceInputs: false,
		includeVotes:           false,
		includeProposals:       false,
		includeTreasury:        false,
	})...)
	buf = append(buf, encodeScriptPurpose(tx, r)...)
	return buf, nil
}
