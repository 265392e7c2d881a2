package phase1

import (
	"fmt"
	"math/big"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// minUTxOOverhead is the CIP-0055 fixed per-output byte overhead charged on
// top of the output's own serialized size before multiplying by the
// protocol's lovelace-per-byte rate.
const minUTxOOverhead = 160

// OutputValidator checks each output against the minimum-UTxO lovelace
// requirement (CIP-0055), the maximum serialized value size, and that the
// output's address is tagged for the same network the transaction is being
// submitted to.
//
// The ledger specification and informal summaries disagree on exactly what
// "serialized size" means for OutputTooBigUTxO once a reference script is
// attached. This validator counts the datum and reference script's bytes
// in the size used for the minimum-UTxO check; the maximum-value-size
// check measures the value component alone.
type OutputValidator struct{}

func (OutputValidator) Name() string { return "output" }

func (OutputValidator) Check(tx *txmodel.Transaction, ctx *ledgerctx.Context) []result.Finding {
	var findings []result.Finding

	for i, out := range tx.Outputs {
		loc := fmt.Sprintf("/outputs/%d", i)

		serialized := outputSerializedSize(out)
		minRequired := new(big.Int).Mul(
			big.NewInt(int64(minUTxOOverhead+serialized)),
			big.NewInt(int64(ctx.Params.CoinsPerUTxOByte)),
		)
		if out.Value.Coin.Cmp(minRequired) < 0 {
			findings = append(findings, result.Errorf(
				"output", result.CodeOutputTooSmallUTxO, loc, map[string]any{
					"declared": out.Value.Coin.String(),
					"minimum":  minRequired.String(),
				},
				"output's lovelace is below the minimum UTxO requirement"))
		}

		valueBytes := multiAssetSerializedSize(out.Value)
		if ctx.Params.MaxValueSize != 0 && valueBytes > ctx.Params.MaxValueSize {
			findings = append(findings, result.Errorf(
				"output", result.CodeOutputTooBigUTxO, loc, map[string]any{
					"valueBytes": valueBytes,
					"max":        ctx.Params.MaxValueSize,
				},
				"output's serialized value exceeds the protocol maximum"))
		}

		if out.Address.Network != ctx.NetworkID && len(out.Address.Raw) > 0 {
			findings = append(findings, result.Errorf(
				"output", result.CodeWrongNetworkInOutput, loc, map[string]any{
					"outputNetwork": out.Address.Network,
					"contextNetwork": ctx.NetworkID,
				},
				"output address is tagged for a different network than the context"))
		}
	}

	return findings
}

// outputSerializedSize estimates the serialized byte size of an output,
// including its datum and reference script, following the same per-field
// accounting as CIP-0055 reference implementations.
func outputSerializedSize(out txmodel.TxOutput) uint64 {
	const envelopeOverhead = 10
	size := uint64(envelopeOverhead) + uint64(len(out.Address.Raw)) + multiAssetSerializedSize(out.Value)

	if out.Datum != nil {
		if out.Datum.Hash != nil {
			size += 32
		} else {
			size += uint64(len(out.Datum.Inline))
		}
	}
	if out.RefScript != nil {
		size += uint64(len(out.RefScript.CBOR))
	}
	return size
}

func multiAssetSerializedSize(v txmodel.Value) uint64 {
	const adaValueBytes = 9
	const perPolicyOverhead = 28 + 12
	const perAssetOverhead = 12

	size := uint64(adaValueBytes)
	n := v.Normalize()
	for _, assets := range n.Assets {
		size += perPolicyOverhead
		for name := range assets {
			size += perAssetOverhead + uint64(len(name))
		}
	}
	return size
}
