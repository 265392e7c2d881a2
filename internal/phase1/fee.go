package phase1

import (
	"math/big"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// FeeValidator checks that the declared fee is at least the protocol's
// linear per-byte fee plus the tiered reference-script fee for any scripts
// the transaction references.
type FeeValidator struct{}

func (FeeValidator) Name() string { return "fee" }

func (FeeValidator) Check(tx *txmodel.Transaction, ctx *ledgerctx.Context) []result.Finding {
	linear := new(big.Int).Add(
		new(big.Int).Mul(big.NewInt(int64(len(tx.RawCBOR))), big.NewInt(int64(ctx.Params.MinFeeA))),
		big.NewInt(int64(ctx.Params.MinFeeB)),
	)

	refScriptBytes := uint64(0)
	for _, in := range append(append([]txmodel.TxInput{}, tx.Inputs...), tx.ReferenceInputs...) {
		entry, ok := ctx.Lookup(in)
		if !ok || entry.Output.RefScript == nil {
			continue
		}
		refScriptBytes += uint64(len(entry.Output.RefScript.CBOR))
	}

	refFee := refScriptFee(ctx.Params, refScriptBytes)
	minFee := new(big.Int).Add(linear, refFee)

	if tx.Fee.Cmp(minFee) < 0 {
		return []result.Finding{result.Errorf(
			"fee", result.CodeFeeTooSmall, "/fee", map[string]any{
				"declared": tx.Fee.String(),
				"minimum":  minFee.String(),
				"txBytes":  len(tx.RawCBOR),
				"refScriptBytes": refScriptBytes,
			},
			"declared fee is below the minimum required fee")}
	}
	return nil
}

// refScriptFee applies the tiered reference-script byte price if the
// protocol parameters carry tiers (Conway's CIP-0077-style accounting),
// falling back to a single flat per-byte rate otherwise.
func refScriptFee(p ledgerctx.ProtocolParams, totalBytes uint64) *big.Int {
	if len(p.RefScriptCostRange) == 0 {
		return new(big.Int).SetUint64(totalBytes * p.MinFeeRefScriptCostPerByte)
	}

	fee := big.NewInt(0)
	remaining := totalBytes
	var lowerBound uint64
	for _, tier := range p.RefScriptCostRange {
		if remaining == 0 {
			break
		}
		tierSize := tier.SizeThreshold - lowerBound
		chunk := remaining
		if chunk > tierSize {
			chunk = tierSize
		}
		fee.Add(fee, new(big.Int).SetUint64(tier.Multiplier.Mul(chunk)))
		remaining -= chunk
		lowerBound = tier.SizeThreshold
	}
	if remaining > 0 && len(p.RefScriptCostRange) > 0 {
		last := p.RefScriptCostRange[len(p.RefScriptCostRange)-1]
		fee.Add(fee, new(big.Int).SetUint64(last.Multiplier.Mul(remaining)))
	}
	return fee
}
