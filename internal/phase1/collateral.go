package phase1

import (
	"fmt"
	"math/big"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// CollateralValidator checks the collateral requirements that only apply
// when a transaction carries Plutus scripts: at least one collateral
// input, every collateral input key-locked (never script-locked), the
// total collateral at least collateralPercentage of the fee, and an
// explicit total-collateral field (if present) matching what the inputs
// and return output actually imply.
type CollateralValidator struct{}

func (CollateralValidator) Name() string { return "collateral" }

func (CollateralValidator) Check(tx *txmodel.Transaction, ctx *ledgerctx.Context) []result.Finding {
	var findings []result.Finding

	needsCollateral := len(tx.Redeemers) > 0
	if !needsCollateral {
		return findings
	}

	if len(tx.Collateral) == 0 {
		return append(findings, result.Errorf(
			"collateral", result.CodeNoCollateralInputs, "/collateral", nil,
			"transaction includes Plutus redeemers but declares no collateral inputs"))
	}

	if uint64(len(tx.Collateral)) > ctx.Params.MaxCollateralInputs {
		findings = append(findings, result.Errorf(
			"collateral", result.CodeCollateralInputsExceedMaximum, "/collateral",
			map[string]any{"count": len(tx.Collateral), "max": ctx.Params.MaxCollateralInputs},
			"number of collateral inputs exceeds the protocol maximum"))
	}

	total := big.NewInt(0)
	for i, in := range tx.Collateral {
		entry, ok := ctx.Lookup(in)
		if !ok {
			findings = append(findings, result.Errorf(
				"collateral", result.CodeMissingInputUTxO, fmt.Sprintf("/collateral/%d", i),
				map[string]any{"txHash": hexString(in.TxHash[:]), "index": in.Index},
				"collateral input references a UTxO that is not in the supplied context"))
			continue
		}
		if entry.Output.Address.Payment != nil && entry.Output.Address.Payment.Kind == txmodel.CredentialScript {
			findings = append(findings, result.Errorf(
				"collateral", result.CodeCollateralIsScriptLocked, fmt.Sprintf("/collateral/%d", i), nil,
				"collateral input is locked by a script credential, which the ledger never accepts as collateral"))
		}
		if len(entry.Output.Value.Normalize().Assets) > 0 {
			findings = append(findings, result.Errorf(
				"collateral", result.CodeCollateralContainsNonADA, fmt.Sprintf("/collateral/%d", i), nil,
				"collateral input carries a non-ADA asset, which the ledger never accepts as collateral"))
		}
		total.Add(total, entry.Output.Value.Coin)
	}

	if tx.CollateralReturn != nil {
		total.Sub(total, tx.CollateralReturn.Value.Coin)
	}

	required := new(big.Int).Mul(tx.Fee, big.NewInt(int64(ctx.Params.CollateralPercentage)))
	required = ceilDiv100(required)

	if total.Cmp(required) < 0 {
		findings = append(findings, result.Errorf(
			"collateral", result.CodeInsufficientCollateral, "/collateral", map[string]any{
				"provided": total.String(),
				"required": required.String(),
			},
			"total collateral is below collateralPercentage of the fee"))
	}

	if tx.TotalCollateral != nil {
		declared := new(big.Int).SetUint64(*tx.TotalCollateral)
		if declared.Cmp(total) != 0 {
			findings = append(findings, result.Errorf(
				"collateral", result.CodeIncorrectTotalCollateralField, "/totalCollateral", map[string]any{
					"declared": declared.String(),
					"computed": total.String(),
				},
				"declared total collateral does not match collateral inputs minus the collateral return"))
		}
	}

	return findings
}

func ceilDiv100(n *big.Int) *big.Int {
	hundred := big.NewInt(100)
	q, r := new(big.Int), new(big.Int)
	q.DivMod(n, hundred, r)
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}
