package phase1

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

func withRedeemer(tx *txmodel.Transaction) {
	tx.Redeemers = []txmodel.Redeemer{
		{Tag: txmodel.RedeemerSpend, Index: 0, ExUnits: txmodel.ExUnits{Memory: 1, Steps: 1}},
	}
}

func TestCollateralValidatorSkipsWithoutRedeemers(t *testing.T) {
	tx, ctx := happyPathTx(t)
	findings := CollateralValidator{}.Check(tx, ctx)
	require.Empty(t, findings)
}

func TestCollateralValidatorFlagsNoCollateralInputs(t *testing.T) {
	tx, ctx := happyPathTx(t)
	withRedeemer(tx)
	ctx.Params.CollateralPercentage = 150

	findings := CollateralValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeNoCollateralInputs, findings[0].Code)
}

func TestCollateralValidatorFlagsScriptLockedCollateral(t *testing.T) {
	tx, ctx := happyPathTx(t)
	withRedeemer(tx)
	ctx.Params.CollateralPercentage = 150
	ctx.Params.MaxCollateralInputs = 3

	scriptCred := txmodel.Credential{Kind: txmodel.CredentialScript, Hash: [28]byte{0x44}}
	collIn := txmodel.TxInput{TxHash: [32]byte{0x55}, Index: 0}
	ctx.UTxOs[ledgerctx.OutRef{TxHash: collIn.TxHash, Index: 0}] = ledgerctx.UTxOEntry{
		Output: txmodel.TxOutput{Address: txmodel.Address{Payment: &scriptCred}, Value: txmodel.NewValue(1_000_000)},
	}
	tx.Collateral = []txmodel.TxInput{collIn}

	findings := CollateralValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeCollateralIsScriptLocked)
}

func TestCollateralValidatorFlagsNonADACollateralWithReturn(t *testing.T) {
	tx, ctx := happyPathTx(t)
	withRedeemer(tx)
	ctx.Params.CollateralPercentage = 150
	ctx.Params.MaxCollateralInputs = 3

	keyCred := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0x88}}
	collIn := txmodel.TxInput{TxHash: [32]byte{0x99}, Index: 0}
	collValue := txmodel.NewValue(5_000_000)
	collValue.Assets[txmodel.PolicyID{0x01}] = map[txmodel.AssetName]*big.Int{"token": big.NewInt(10)}
	ctx.UTxOs[ledgerctx.OutRef{TxHash: collIn.TxHash, Index: 0}] = ledgerctx.UTxOEntry{
		Output: txmodel.TxOutput{Address: txmodel.Address{Payment: &keyCred}, Value: collValue},
	}
	tx.Collateral = []txmodel.TxInput{collIn}
	tx.CollateralReturn = &txmodel.TxOutput{
		Address: txmodel.Address{Payment: &keyCred},
		Value:   collValue,
	}

	findings := CollateralValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeCollateralContainsNonADA)
}

func TestCollateralValidatorFlagsInsufficientCollateral(t *testing.T) {
	tx, ctx := happyPathTx(t)
	withRedeemer(tx)
	ctx.Params.CollateralPercentage = 150
	ctx.Params.MaxCollateralInputs = 3

	keyCred := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0x66}}
	collIn := txmodel.TxInput{TxHash: [32]byte{0x77}, Index: 0}
	ctx.UTxOs[ledgerctx.OutRef{TxHash: collIn.TxHash, Index: 0}] = ledgerctx.UTxOEntry{
		Output: txmodel.TxOutput{Address: txmodel.Address{Payment: &keyCred}, Value: txmodel.NewValue(1)},
	}
	tx.Collateral = []txmodel.TxInput{collIn}

	findings := CollateralValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeInsufficientCollateral)
}
