package phase1

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

func TestBalanceValidatorAcceptsConservedValue(t *testing.T) {
	tx, ctx := happyPathTx(t)
	findings := BalanceValidator{}.Check(tx, ctx)
	require.Empty(t, findings)
}

func TestBalanceValidatorFlagsValueNotConserved(t *testing.T) {
	tx, ctx := happyPathTx(t)
	tx.Outputs[0].Value = txmodel.NewValue(999_000_000)

	findings := BalanceValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeValueNotConservedUTxO, findings[0].Code)
}

func TestBalanceValidatorFlagsWithdrawalAmountMismatch(t *testing.T) {
	tx, ctx := happyPathTx(t)
	cred := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0x55}}
	tx.Withdrawals = []txmodel.Withdrawal{
		{StakeAddress: txmodel.Address{Network: 1, Stake: &cred}, Amount: big.NewInt(1_000_000)},
	}
	ctx.Accounts = map[txmodel.Credential]ledgerctx.AccountState{
		cred: {Registered: true, RewardBalance: big.NewInt(500_000), DelegatedDRep: &cred},
	}

	findings := BalanceValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeWithdrawalAmountMismatch)
}

func TestBalanceValidatorFlagsWithdrawalWithoutDRepDelegation(t *testing.T) {
	tx, ctx := happyPathTx(t)
	cred := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0x56}}
	tx.Withdrawals = []txmodel.Withdrawal{
		{StakeAddress: txmodel.Address{Network: 1, Stake: &cred}, Amount: big.NewInt(500_000)},
	}
	ctx.Accounts = map[txmodel.Credential]ledgerctx.AccountState{
		cred: {Registered: true, RewardBalance: big.NewInt(500_000)},
	}

	findings := BalanceValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeWithdrawalWithoutDRepDelegation)
}

func TestBalanceValidatorFlagsMissingInputUTxO(t *testing.T) {
	tx, ctx := happyPathTx(t)
	tx.Inputs = append(tx.Inputs, txmodel.TxInput{TxHash: [32]byte{0xff}, Index: 9})

	findings := BalanceValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeMissingInputUTxO)
}
