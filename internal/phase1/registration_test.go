package phase1

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

func TestRegistrationValidatorFlagsAlreadyRegisteredStakeKey(t *testing.T) {
	tx, ctx := happyPathTx(t)
	cred := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0x99}}
	tx.Certificates = []txmodel.Certificate{
		{Kind: txmodel.CertStakeRegistration, StakeCredential: &cred},
	}
	ctx.Accounts = map[txmodel.Credential]ledgerctx.AccountState{
		cred: {Registered: true},
	}

	findings := RegistrationValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeStakeKeyAlreadyRegistered, findings[0].Code)
}

func TestRegistrationValidatorFlagsUnregisteredDeregistration(t *testing.T) {
	tx, ctx := happyPathTx(t)
	cred := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0x99}}
	tx.Certificates = []txmodel.Certificate{
		{Kind: txmodel.CertStakeDeregistration, StakeCredential: &cred},
	}

	findings := RegistrationValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeStakeKeyNotRegistered, findings[0].Code)
}

func TestRegistrationValidatorWarnsOnUnavailableDRepHistory(t *testing.T) {
	tx, ctx := happyPathTx(t)
	cred := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0xaa}}
	tx.Certificates = []txmodel.Certificate{
		{Kind: txmodel.CertDRepDeregistration, DRepCredential: &cred, Deposit: big.NewInt(500_000_000)},
	}
	ctx.DReps = map[txmodel.Credential]ledgerctx.DRepState{
		cred: {Registered: true, HistoryAvailable: false},
	}

	findings := RegistrationValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.SeverityWarning, findings[0].Severity)
	require.Equal(t, result.WarnDRepRefundHistoryUnavailable, findings[0].Code)
}

func TestRegistrationValidatorFlagsPoolCostBelowMinimum(t *testing.T) {
	tx, ctx := happyPathTx(t)
	ctx.Params.MinPoolCost = 340_000_000
	tx.Certificates = []txmodel.Certificate{
		{Kind: txmodel.CertPoolRegistration, PoolCost: big.NewInt(100_000_000)},
	}

	findings := RegistrationValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodePoolCostBelowMinimum, findings[0].Code)
}

func TestRegistrationValidatorFlagsUnknownPoolForRetirement(t *testing.T) {
	tx, ctx := happyPathTx(t)
	poolKeyHash := [28]byte{0x12}
	epoch := ctx.Epoch + 1
	tx.Certificates = []txmodel.Certificate{
		{Kind: txmodel.CertPoolRetirement, PoolKeyHash: &poolKeyHash, PoolRetirementEpoch: &epoch},
	}

	findings := RegistrationValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeUnknownPoolForRetirement, findings[0].Code)
}

func TestRegistrationValidatorFlagsPoolRetirementEpochOutOfRange(t *testing.T) {
	tx, ctx := happyPathTx(t)
	poolKeyHash := [28]byte{0x13}
	ctx.Pools = map[[28]byte]ledgerctx.PoolState{poolKeyHash: {Registered: true}}
	ctx.Params.PoolRetireMaxEpoch = 2
	epoch := ctx.Epoch + 10
	tx.Certificates = []txmodel.Certificate{
		{Kind: txmodel.CertPoolRetirement, PoolKeyHash: &poolKeyHash, PoolRetirementEpoch: &epoch},
	}

	findings := RegistrationValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodePoolRetirementEpochOutOfRange, findings[0].Code)
}

func TestRegistrationValidatorFlagsUnknownCommitteeMember(t *testing.T) {
	tx, ctx := happyPathTx(t)
	cold := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0x21}}
	tx.Certificates = []txmodel.Certificate{
		{Kind: txmodel.CertCommitteeColdKeyResignation, ColdCredential: &cold},
	}

	findings := RegistrationValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeCommitteeMemberUnknown, findings[0].Code)
}

func TestRegistrationValidatorFlagsAlreadyResignedCommitteeMember(t *testing.T) {
	tx, ctx := happyPathTx(t)
	cold := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0x22}}
	ctx.Committee = ledgerctx.CommitteeRoster{
		Members:  map[txmodel.Credential]bool{cold: true},
		Resigned: map[txmodel.Credential]bool{cold: true},
	}
	tx.Certificates = []txmodel.Certificate{
		{Kind: txmodel.CertCommitteeColdKeyResignation, ColdCredential: &cold},
	}

	findings := RegistrationValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeCommitteeHotKeyAlreadySet, findings[0].Code)
}

func TestRegistrationValidatorWarnsOnDuplicateCommitteeHotRegistration(t *testing.T) {
	tx, ctx := happyPathTx(t)
	cold := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0x23}}
	ctx.Committee = ledgerctx.CommitteeRoster{
		Members: map[txmodel.Credential]bool{cold: true},
	}
	tx.Certificates = []txmodel.Certificate{
		{Kind: txmodel.CertCommitteeHotKeyRegistration, ColdCredential: &cold},
		{Kind: txmodel.CertCommitteeHotKeyRegistration, ColdCredential: &cold},
	}

	findings := RegistrationValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.SeverityWarning, findings[0].Severity)
	require.Equal(t, result.WarnDuplicateCommitteeCertInTx, findings[0].Code)
}

func TestRegistrationValidatorFlagsVoteOnUnknownAction(t *testing.T) {
	tx, ctx := happyPathTx(t)
	tx.VotingProcedures = []txmodel.VotingProcedure{
		{ActionTxID: [32]byte{0x01}, ActionIndex: 0},
	}

	findings := RegistrationValidator{}.Check(tx, ctx)

	require.Len(t, findings, 1)
	require.Equal(t, result.CodeVoteOnUnknownAction, findings[0].Code)
}
