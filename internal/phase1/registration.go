package phase1

import (
	"fmt"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// RegistrationValidator checks stake/DRep/committee certificates and
// governance voting/proposal procedures against the account, DRep,
// committee and governance-action state in the context: no double
// registrations, no operations on unregistered credentials, deposits that
// match what the context expects, and votes cast only on still-open
// governance actions.
type RegistrationValidator struct{}

func (RegistrationValidator) Name() string { return "registration" }

func (RegistrationValidator) Check(tx *txmodel.Transaction, ctx *ledgerctx.Context) []result.Finding {
	var findings []result.Finding

	// Scratch per-transaction view: the context only tells us ledger state
	// as of the start of the transaction, so a second certificate touching
	// the same entity later in the same certificate list needs its own
	// tracking rather than a context lookup.
	seenStakeCert := map[txmodel.Credential]bool{}
	seenCommitteeHot := map[txmodel.Credential]bool{}
	seenCommitteeCold := map[txmodel.Credential]bool{}

	for i, cert := range tx.Certificates {
		loc := fmt.Sprintf("/certificates/%d", i)
		switch cert.Kind {
		case txmodel.CertStakeRegistration:
			if cert.StakeCredential != nil {
				if acc, ok := ctx.Accounts[*cert.StakeCredential]; ok && acc.Registered {
					findings = append(findings, result.Errorf(
						"registration", result.CodeStakeKeyAlreadyRegistered, loc, nil,
						"stake credential is already registered"))
				} else if seenStakeCert[*cert.StakeCredential] {
					findings = append(findings, result.Warnf(
						"registration", result.WarnDuplicateStakeCertInTx, loc, nil,
						"stake credential is registered more than once in this transaction"))
				}
				seenStakeCert[*cert.StakeCredential] = true
			}

		case txmodel.CertStakeDeregistration, txmodel.CertStakeDelegation, txmodel.CertVoteDelegation:
			if cert.StakeCredential != nil {
				if acc, ok := ctx.Accounts[*cert.StakeCredential]; !ok || !acc.Registered {
					findings = append(findings, result.Errorf(
						"registration", result.CodeStakeKeyNotRegistered, loc, nil,
						"stake credential is not registered"))
				} else if cert.Kind == txmodel.CertStakeDeregistration && seenStakeCert[*cert.StakeCredential] {
					findings = append(findings, result.Warnf(
						"registration", result.WarnDuplicateStakeCertInTx, loc, nil,
						"stake credential is deregistered more than once in this transaction"))
				}
				if cert.Kind == txmodel.CertStakeDeregistration {
					seenStakeCert[*cert.StakeCredential] = true
				}
			}

		case txmodel.CertPoolRegistration:
			if cert.PoolCost != nil && ctx.Params.MinPoolCost > 0 && cert.PoolCost.Uint64() < ctx.Params.MinPoolCost {
				findings = append(findings, result.Errorf(
					"registration", result.CodePoolCostBelowMinimum, loc, map[string]any{
						"declared": cert.PoolCost.String(),
						"minimum":  ctx.Params.MinPoolCost,
					},
					"pool registration declares a cost below the protocol's minimum pool cost"))
			}

		case txmodel.CertPoolRetirement:
			if cert.PoolKeyHash != nil {
				if pool, ok := ctx.Pools[*cert.PoolKeyHash]; !ok || !pool.Registered {
					findings = append(findings, result.Errorf(
						"registration", result.CodeUnknownPoolForRetirement, loc, nil,
						"pool retirement certificate references a pool that is not registered"))
				}
			}
			if cert.PoolRetirementEpoch != nil && ctx.Params.PoolRetireMaxEpoch != 0 {
				minEpoch := ctx.Epoch + 1
				maxEpoch := ctx.Epoch + ctx.Params.PoolRetireMaxEpoch
				epoch := *cert.PoolRetirementEpoch
				if epoch < minEpoch || epoch > maxEpoch {
					findings = append(findings, result.Errorf(
						"registration", result.CodePoolRetirementEpochOutOfRange, loc, map[string]any{
							"declared": epoch, "minEpoch": minEpoch, "maxEpoch": maxEpoch,
						},
						"pool retirement epoch is outside the allowed retirement window"))
				}
			}

		case txmodel.CertCommitteeHotKeyRegistration:
			if cert.ColdCredential != nil {
				if !ctx.Committee.Members[*cert.ColdCredential] {
					findings = append(findings, result.Errorf(
						"registration", result.CodeCommitteeMemberUnknown, loc, nil,
						"committee hot-key authorization references a cold credential that is not a committee member"))
				} else if seenCommitteeHot[*cert.ColdCredential] {
					findings = append(findings, result.Warnf(
						"registration", result.WarnDuplicateCommitteeCertInTx, loc, nil,
						"committee cold credential has more than one hot-key authorization in this transaction"))
				}
				seenCommitteeHot[*cert.ColdCredential] = true
			}

		case txmodel.CertCommitteeColdKeyResignation:
			if cert.ColdCredential != nil {
				switch {
				case !ctx.Committee.Members[*cert.ColdCredential]:
					findings = append(findings, result.Errorf(
						"registration", result.CodeCommitteeMemberUnknown, loc, nil,
						"committee cold-key resignation references a credential that is not a committee member"))
				case ctx.Committee.Resigned[*cert.ColdCredential]:
					findings = append(findings, result.Errorf(
						"registration", result.CodeCommitteeHotKeyAlreadySet, loc, nil,
						"committee member has already resigned"))
				case seenCommitteeCold[*cert.ColdCredential]:
					findings = append(findings, result.Warnf(
						"registration", result.WarnDuplicateCommitteeCertInTx, loc, nil,
						"committee cold credential resigns more than once in this transaction"))
				}
				seenCommitteeCold[*cert.ColdCredential] = true
			}

		case txmodel.CertDRepRegistration:
			if cert.DRepCredential != nil {
				if drep, ok := ctx.DReps[*cert.DRepCredential]; ok && drep.Registered {
					findings = append(findings, result.Errorf(
						"registration", result.CodeDRepAlreadyRegistered, loc, nil,
						"DRep credential is already registered"))
				}
			}

		case txmodel.CertDRepDeregistration, txmodel.CertDRepUpdate:
			if cert.DRepCredential == nil {
				break
			}
			drep, ok := ctx.DReps[*cert.DRepCredential]
			if !ok || !drep.Registered {
				findings = append(findings, result.Errorf(
					"registration", result.CodeDRepNotRegistered, loc, nil,
					"DRep credential is not registered"))
				break
			}
			if cert.Kind == txmodel.CertDRepDeregistration {
				if !drep.HistoryAvailable {
					findings = append(findings, result.Warnf(
						"registration", result.WarnDRepRefundHistoryUnavailable, loc, nil,
						"DRep deposit refund cannot be fully verified: deposit history unavailable in the supplied context"))
				} else if cert.Deposit != nil && drep.Deposit != nil && cert.Deposit.Cmp(drep.Deposit) != 0 {
					findings = append(findings, result.Errorf(
						"registration", result.CodeConflictingDeposit, loc, map[string]any{
							"declared": cert.Deposit.String(),
							"expected": drep.Deposit.String(),
						},
						"DRep deregistration deposit does not match the registered deposit"))
				}
			}
		}
	}

	for i, vp := range tx.VotingProcedures {
		loc := fmt.Sprintf("/votingProcedures/%d", i)
		ref := ledgerctx.OutRef{TxHash: vp.ActionTxID, Index: vp.ActionIndex}
		state, ok := ctx.GovActions[ref]
		if !ok || state.Expired {
			findings = append(findings, result.Errorf(
				"registration", result.CodeVoteOnUnknownAction, loc, nil,
				"vote cast on a governance action that is unknown or already expired"))
			continue
		}
		if state.Enacted {
			findings = append(findings, result.Warnf(
				"registration", result.WarnVoteOnAlreadyEnactedAction, loc, nil,
				"vote cast on a governance action that has already been enacted"))
		}
	}

	for i, ga := range tx.ProposalProcedures {
		loc := fmt.Sprintf("/proposalProcedures/%d", i)
		if ga.Deposit != nil && ga.Deposit.Sign() >= 0 {
			if uint64(0) != ctx.Params.GovActionDeposit && ga.Deposit.Uint64() != ctx.Params.GovActionDeposit {
				findings = append(findings, result.Errorf(
					"registration", result.CodeProposalDepositMismatch, loc, map[string]any{
						"declared": ga.Deposit.String(),
						"expected": ctx.Params.GovActionDeposit,
					},
					"proposal deposit does not match the protocol's governance action deposit"))
			}
		}
		if len(ga.DepositReturnAddress.Raw) > 0 && ga.DepositReturnAddress.Network != ctx.NetworkID {
			findings = append(findings, result.Errorf(
				"registration", result.CodeProposalReturnAddrWrongNet, loc, nil,
				"proposal's deposit return address is tagged for a different network than the context"))
		}
	}

	return findings
}
