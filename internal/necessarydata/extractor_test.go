package necessarydata

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

func TestExtractListsEveryInputOnce(t *testing.T) {
	hash := [32]byte{1}
	tx := &txmodel.Transaction{
		Inputs:          []txmodel.TxInput{{TxHash: hash, Index: 0}},
		Collateral:      []txmodel.TxInput{{TxHash: hash, Index: 0}},
		ReferenceInputs: []txmodel.TxInput{{TxHash: hash, Index: 1}},
	}
	nd := Extract(tx)
	require.Len(t, nd.UTxORefs, 2)
	require.Contains(t, nd.UTxORefs, ledgerctx.OutRef{TxHash: hash, Index: 0})
	require.Contains(t, nd.UTxORefs, ledgerctx.OutRef{TxHash: hash, Index: 1})
}

func TestExtractCollectsGovernanceIdentities(t *testing.T) {
	cred := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{9}}
	tx := &txmodel.Transaction{
		VotingProcedures: []txmodel.VotingProcedure{
			{Voter: cred, ActionTxID: [32]byte{2}, ActionIndex: 3},
		},
		ProposalProcedures: []txmodel.GovernanceAction{
			{Deposit: big.NewInt(500000000)},
		},
	}
	nd := Extract(tx)
	require.Len(t, nd.GovActionRefs, 1)
	require.Equal(t, uint32(3), nd.GovActionRefs[0].Index)
	require.Contains(t, nd.CommitteeCreds, cred)
	require.True(t, nd.NeedsTreasury)
	require.Contains(t, nd.LastEnactedGovAction, txmodel.GovActionParameterChange)
}

func TestExtractCollectsPoolKeyHashesAndCommitteeColdCredentials(t *testing.T) {
	poolKeyHash := [28]byte{7}
	cold := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{8}}
	tx := &txmodel.Transaction{
		Certificates: []txmodel.Certificate{
			{Kind: txmodel.CertPoolRetirement, PoolKeyHash: &poolKeyHash},
			{Kind: txmodel.CertCommitteeColdKeyResignation, ColdCredential: &cold},
		},
	}
	nd := Extract(tx)
	require.Contains(t, nd.PoolKeyHashes, poolKeyHash)
	require.Contains(t, nd.CommitteeCreds, cold)
}

func TestExtractSkipsLastEnactedForNonChainingGovActions(t *testing.T) {
	tx := &txmodel.Transaction{
		ProposalProcedures: []txmodel.GovernanceAction{
			{Kind: txmodel.GovActionTreasuryWithdrawals},
			{Kind: txmodel.GovActionInfo},
		},
	}
	nd := Extract(tx)
	require.Empty(t, nd.LastEnactedGovAction)
}
