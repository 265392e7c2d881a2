package phase1

import (
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// TransactionLimitsValidator checks the protocol's global transaction-size,
// execution-unit-budget and validity-interval limits: ones that bound the
// whole transaction rather than any single part of it.
type TransactionLimitsValidator struct{}

func (TransactionLimitsValidator) Name() string { return "transaction-limits" }

func (TransactionLimitsValidator) Check(tx *txmodel.Transaction, ctx *ledgerctx.Context) []result.Finding {
	var findings []result.Finding

	if ctx.Params.MaxTxSize != 0 && uint64(len(tx.RawCBOR)) > ctx.Params.MaxTxSize {
		findings = append(findings, result.Errorf(
			"transaction-limits", result.CodeTxTooLarge, "/", map[string]any{
				"size": len(tx.RawCBOR),
				"max":  ctx.Params.MaxTxSize,
			},
			"transaction exceeds the protocol's maximum transaction size"))
	}

	if tx.TTL != nil && ctx.Slot > *tx.TTL {
		findings = append(findings, result.Errorf(
			"transaction-limits", result.CodeTTLInThePast, "/ttl", map[string]any{
				"ttl": *tx.TTL, "slot": ctx.Slot,
			},
			"transaction's time-to-live has already passed"))
	}
	if tx.ValidityStart != nil && ctx.Slot < *tx.ValidityStart {
		findings = append(findings, result.Errorf(
			"transaction-limits", result.CodeValidityStartInFuture, "/validityIntervalStart", map[string]any{
				"validityStart": *tx.ValidityStart, "slot": ctx.Slot,
			},
			"transaction's validity interval has not started yet"))
	}

	var memUsed, stepsUsed uint64
	for _, r := range tx.Redeemers {
		memUsed += r.ExUnits.Memory
		stepsUsed += r.ExUnits.Steps
	}
	if ctx.Params.MaxTxExecutionUnits.Memory != 0 && memUsed > ctx.Params.MaxTxExecutionUnits.Memory ||
		ctx.Params.MaxTxExecutionUnits.Steps != 0 && stepsUsed > ctx.Params.MaxTxExecutionUnits.Steps {
		findings = append(findings, result.Errorf(
			"transaction-limits", result.CodeExUnitsTooLarge, "/redeemers", map[string]any{
				"memUsed": memUsed, "stepsUsed": stepsUsed,
				"maxMem": ctx.Params.MaxTxExecutionUnits.Memory, "maxSteps": ctx.Params.MaxTxExecutionUnits.Steps,
			},
			"sum of declared redeemer execution units exceeds the per-transaction budget"))
	}

	if tx.Mint != nil && ctx.Params.MaxValueSize != 0 {
		if mintBytes := multiAssetSerializedSize(*tx.Mint); mintBytes > ctx.Params.MaxValueSize {
			findings = append(findings, result.Errorf(
				"transaction-limits", result.CodeTooManyAssetsInMint, "/mint", map[string]any{
					"mintBytes": mintBytes, "max": ctx.Params.MaxValueSize,
				},
				"minted value's serialized size exceeds the protocol maximum"))
		}
	}

	return findings
}
