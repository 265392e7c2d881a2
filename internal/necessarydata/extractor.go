// Package necessarydata implements the syntactic walk over a parsed
// transaction that lists every piece of external state a full validation
// run needs, without consulting any ledger state itself. It never decides
// whether the transaction is valid; it only says what a caller would need
// to fetch in order to find out.
package necessarydata

import (
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// NecessaryInputData is the complete set of external references a
// transaction's validation depends on: which UTxOs must be resolved, which
// stake/DRep/pool/committee/governance-action identities must be looked up,
// whether the treasury balance is needed, and which governance-action kinds'
// last-enacted instances the proposals depend on.
type NecessaryInputData struct {
	UTxORefs       []ledgerctx.OutRef   `json:"utxoRefs"`
	StakeCreds     []txmodel.Credential `json:"stakeCreds"`
	DRepCreds      []txmodel.Credential `json:"dRepCreds"`
	PoolKeyHashes  [][28]byte           `json:"poolKeyHashes,omitempty"`
	GovActionRefs  []ledgerctx.OutRef   `json:"govActionRefs"`
	CommitteeCreds []txmodel.Credential `json:"committeeCreds"`
	NeedsTreasury  bool                 `json:"needsTreasury"`

	// LastEnactedGovAction lists the governance-action kinds whose
	// last-enacted instance this transaction's proposals implicitly depend
	// on: a proposal of a chaining kind (parameter change, hard-fork
	// initiation, no-confidence, committee update, or new constitution)
	// only makes sense relative to whatever of that kind was last enacted,
	// even when the proposal itself carries no explicit prevActionId.
	LastEnactedGovAction []txmodel.GovActionKind `json:"lastEnactedGovAction,omitempty"`
}

// Extract walks tx once and returns every external reference a complete
// Phase-1+Phase-2 validation run would need to resolve. It is pure: the same
// tx always yields the same NecessaryInputData, and it never consults a
// Context — everything a validator later looks up in the Context is
// present in this list.
func Extract(tx *txmodel.Transaction) NecessaryInputData {
	var nd NecessaryInputData

	seenUTxO := map[ledgerctx.OutRef]bool{}
	addUTxO := func(in txmodel.TxInput) {
		ref := ledgerctx.OutRef{TxHash: in.TxHash, Index: in.Index}
		if !seenUTxO[ref] {
			seenUTxO[ref] = true
			nd.UTxORefs = append(nd.UTxORefs, ref)
		}
	}
	for _, in := range tx.Inputs {
		addUTxO(in)
	}
	for _, in := range tx.Collateral {
		addUTxO(in)
	}
	for _, in := range tx.ReferenceInputs {
		addUTxO(in)
	}

	seenStake := map[txmodel.Credential]bool{}
	addStake := func(c *txmodel.Credential) {
		if c == nil || seenStake[*c] {
			return
		}
		seenStake[*c] = true
		nd.StakeCreds = append(nd.StakeCreds, *c)
	}

	seenDRep := map[txmodel.Credential]bool{}
	addDRep := func(c *txmodel.Credential) {
		if c == nil || seenDRep[*c] {
			return
		}
		seenDRep[*c] = true
		nd.DRepCreds = append(nd.DRepCreds, *c)
	}

	seenPool := map[[28]byte]bool{}
	addPool := func(h *[28]byte) {
		if h == nil || seenPool[*h] {
			return
		}
		seenPool[*h] = true
		nd.PoolKeyHashes = append(nd.PoolKeyHashes, *h)
	}

	for _, cert := range tx.Certificates {
		addStake(cert.StakeCredential)
		addDRep(cert.DRepCredential)
		switch cert.Kind {
		case txmodel.CertStakeDelegation, txmodel.CertPoolRegistration, txmodel.CertPoolRetirement:
			addPool(cert.PoolKeyHash)
		case txmodel.CertCommitteeHotKeyRegistration, txmodel.CertCommitteeColdKeyResignation:
			if cert.ColdCredential != nil {
				nd.CommitteeCreds = append(nd.CommitteeCreds, *cert.ColdCredential)
			}
		}
	}

	for _, w := range tx.Withdrawals {
		if w.StakeAddress.Stake != nil {
			addStake(w.StakeAddress.Stake)
		}
	}

	for _, vp := range tx.VotingProcedures {
		nd.GovActionRefs = append(nd.GovActionRefs, ledgerctx.OutRef{TxHash: vp.ActionTxID, Index: vp.ActionIndex})
		nd.CommitteeCreds = append(nd.CommitteeCreds, vp.Voter)
	}

	if len(tx.ProposalProcedures) > 0 {
		nd.NeedsTreasury = true
	}
	if tx.Donation != nil || tx.TreasuryValue != nil {
		nd.NeedsTreasury = true
	}

	seenGovKind := map[txmodel.GovActionKind]bool{}
	for _, ga := range tx.ProposalProcedures {
		if !chainsFromLastEnacted(ga.Kind) || seenGovKind[ga.Kind] {
			continue
		}
		seenGovKind[ga.Kind] = true
		nd.LastEnactedGovAction = append(nd.LastEnactedGovAction, ga.Kind)
	}

	return nd
}

// chainsFromLastEnacted reports whether a governance-action kind's
// enactment supersedes whatever of that kind was last enacted (so a
// validator needs to know the last-enacted instance to check prevActionId
// against it). TreasuryWithdrawals and Info proposals don't chain: any
// number of them can be enacted independently.
func chainsFromLastEnacted(kind txmodel.GovActionKind) bool {
	switch kind {
	case txmodel.GovActionParameterChange, txmodel.GovActionHardForkInitiation,
		txmodel.GovActionNoConfidence, txmodel.GovActionUpdateCommittee, txmodel.GovActionNewConstitution:
		return true
	default:
		return false
	}
}
