package phase2

import (
	"github.com/go-cardano/ledgercheck/internal/cborx"
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// scriptContextV3 builds the Conway-era Plutus V3 ScriptContext: the full
// TxInfo including reference inputs, voting procedures, proposal
// procedures, the current treasury balance and the treasury donation,
// followed by the redeemer's tag/index purpose pair and then the
// redeemer's own Plutus data as a third element.
type scriptContextV3 struct{}

func (scriptContextV3) Build(tx *txmodel.Transaction, lc *ledgerctx.Context, r txmodel.Redeemer) ([]byte, error) {
	var buf []byte
	buf = append(buf, cborx.EncodeArrayHeader(3)...)
	buf = append(buf, encodeTxInfo(tx, lc, txInfoFields{
		includeReferenceInputs: true,
		includeVotes:           true,
		includeProposals:       true,
		includeTreasury:        true,
	})...)
	buf = append(buf, encodeScriptPurpose(tx, r)...)
	buf = append(buf, r.Data...)
	return buf, nil
}
