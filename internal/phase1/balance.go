package phase1

import (
	"fmt"
	"math/big"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// BalanceValidator checks the ledger's value-conservation equation: every
// lovelace and token consumed by a transaction (its inputs, withdrawals and
// minted tokens, plus any deposit refunds) must equal everything it
// produces (its outputs, fee, deposits and any treasury donation).
type BalanceValidator struct{}

func (BalanceValidator) Name() string { return "balance" }

func (BalanceValidator) Check(tx *txmodel.Transaction, ctx *ledgerctx.Context) []result.Finding {
	var findings []result.Finding

	consumed := txmodel.NewValue(0)
	for i, in := range tx.Inputs {
		entry, ok := ctx.Lookup(in)
		if !ok {
			findings = append(findings, result.Errorf(
				"balance", result.CodeMissingInputUTxO, fmt.Sprintf("/inputs/%d", i),
				map[string]any{"txHash": hexString(in.TxHash[:]), "index": in.Index},
				"input references a UTxO that is not in the supplied context"))
			continue
		}
		consumed = consumed.Add(entry.Output.Value)
	}

	for i, w := range tx.Withdrawals {
		consumed.Coin.Add(consumed.Coin, w.Amount)

		if w.StakeAddress.Stake == nil {
			continue
		}
		loc := fmt.Sprintf("/withdrawals/%d", i)
		acc, ok := ctx.Accounts[*w.StakeAddress.Stake]
		if !ok || acc.RewardBalance == nil || w.Amount.Cmp(acc.RewardBalance) != 0 {
			expected := "0"
			if ok && acc.RewardBalance != nil {
				expected = acc.RewardBalance.String()
			}
			findings = append(findings, result.Errorf(
				"balance", result.CodeWithdrawalAmountMismatch, loc, map[string]any{
					"declared": w.Amount.String(),
					"expected": expected,
				},
				"withdrawal amount does not match the account's available reward balance"))
		}
		if !ok || acc.DelegatedDRep == nil {
			findings = append(findings, result.Errorf(
				"balance", result.CodeWithdrawalWithoutDRepDelegation, loc, nil,
				"withdrawal from a stake credential that is not delegated to a DRep"))
		}
	}

	if tx.Mint != nil {
		consumed = consumed.Add(*tx.Mint)
	}

	for _, cert := range tx.Certificates {
		switch cert.Kind {
		case txmodel.CertStakeDeregistration, txmodel.CertDRepDeregistration:
			if cert.StakeCredential != nil {
				if acc, ok := ctx.Accounts[*cert.StakeCredential]; ok && acc.Deposit != nil {
					consumed.Coin.Add(consumed.Coin, acc.Deposit)
				}
			}
			if cert.DRepCredential != nil {
				if drep, ok := ctx.DReps[*cert.DRepCredential]; ok && drep.Deposit != nil {
					consumed.Coin.Add(consumed.Coin, drep.Deposit)
				}
			}
		}
	}

	produced := txmodel.NewValue(0)
	for _, out := range tx.Outputs {
		produced = produced.Add(out.Value)
	}
	produced.Coin.Add(produced.Coin, tx.Fee)

	for _, cert := range tx.Certificates {
		switch cert.Kind {
		case txmodel.CertStakeRegistration:
			produced.Coin.Add(produced.Coin, new(big.Int).SetUint64(ctx.Params.KeyDeposit))
		case txmodel.CertDRepRegistration:
			if cert.Deposit != nil {
				produced.Coin.Add(produced.Coin, cert.Deposit)
			} else {
				produced.Coin.Add(produced.Coin, new(big.Int).SetUint64(ctx.Params.DRepDeposit))
			}
		case txmodel.CertPoolRegistration:
			produced.Coin.Add(produced.Coin, new(big.Int).SetUint64(ctx.Params.PoolDeposit))
		}
	}
	for _, ga := range tx.ProposalProcedures {
		if ga.Deposit != nil {
			produced.Coin.Add(produced.Coin, ga.Deposit)
		}
	}
	if tx.Donation != nil {
		produced.Coin.Add(produced.Coin, tx.Donation)
	}

	if !consumed.Normalize().Equal(produced.Normalize()) {
		findings = append(findings, result.Errorf(
			"balance", result.CodeValueNotConservedUTxO, "/", map[string]any{
				"consumedCoin": consumed.Coin.String(),
				"producedCoin": produced.Coin.String(),
			},
			"value consumed by the transaction does not equal value produced"))
	}

	if produced.HasNegative() || consumed.HasNegative() {
		findings = append(findings, result.Errorf(
			"balance", result.CodeNegativeValueAfterMint, "/mint", nil,
			"minting or burning leaves a negative quantity for some asset"))
	}

	return findings
}
