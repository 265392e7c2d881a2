// Package txmodel defines the in-memory transaction/value/credential model a
// validator operates on, and parses it byte-exactly from a CBOR transaction.
package txmodel

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
)

// ByteRange is an inclusive-exclusive offset pair into the original
// transaction CBOR buffer, kept so findings can reference precisely the
// bytes they are complaining about and so re-hashing never has to
// re-serialize anything the source already encoded.
type ByteRange struct {
	Start, End int
}

// CredentialKind distinguishes a payment/stake/governance credential backed
// by a verification key from one backed by a native or Plutus script.
type CredentialKind uint8

const (
	CredentialKey CredentialKind = iota
	CredentialScript
)

// Credential is a 28-byte hash of either a verification key or a script,
// tagged with which one it is.
type Credential struct {
	Kind CredentialKind
	Hash [28]byte
}

type credentialWire struct {
	Kind string `json:"kind"`
	Hash string `json:"hash"`
}

// MarshalJSON renders a Credential as {"kind":"key"|"script","hash":"<hex>"}.
func (c Credential) MarshalJSON() ([]byte, error) {
	kind := "key"
	if c.Kind == CredentialScript {
		kind = "script"
	}
	return json.Marshal(credentialWire{Kind: kind, Hash: hex.EncodeToString(c.Hash[:])})
}

// UnmarshalJSON parses the kind/hash wire form back into a Credential.
func (c *Credential) UnmarshalJSON(data []byte) error {
	var w credentialWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "key":
		c.Kind = CredentialKey
	case "script":
		c.Kind = CredentialScript
	default:
		return fmt.Errorf("credential: unknown kind %q", w.Kind)
	}
	raw, err := hex.DecodeString(w.Hash)
	if err != nil {
		return err
	}
	if len(raw) != 28 {
		return fmt.Errorf("credential: expected 28-byte hash, got %d", len(raw))
	}
	copy(c.Hash[:], raw)
	return nil
}

// Address is a decoded Cardano address: its network tag and payment/stake
// credentials where applicable. Byron-style addresses are represented by
// Raw alone since they are out of scope for Conway-era validation beyond
// round-tripping their bytes; pointer addresses get their payment
// credential but not their stake pointer.
type Address struct {
	Raw     []byte
	Network byte
	Payment *Credential
	Stake   *Credential
}

// TxInput references a previously produced output by transaction hash and
// output index.
type TxInput struct {
	TxHash [32]byte
	Index  uint32
	Range  ByteRange
}

// Datum is either a hash reference to an off-chain datum, or a datum whose
// full Plutus Data is embedded in the transaction (inline datum).
type Datum struct {
	Hash   *[32]byte
	Inline []byte // raw Plutus Data CBOR, present iff Hash is nil
}

// ScriptRef is a reference script attached to an output, available to later
// transactions that reference this output as a read-only reference input.
type ScriptRef struct {
	Language PlutusVersion // zero value means a native (non-Plutus) script
	Native   bool
	CBOR     []byte
}

// TxOutput is a transaction output: destination address, value, optional
// datum, optional reference script.
type TxOutput struct {
	Address   Address
	Value     Value
	Datum     *Datum
	RefScript *ScriptRef
	Range     ByteRange
}

// PlutusVersion identifies which Plutus language version a script is
// written in; each has a distinct script-context encoding.
type PlutusVersion uint8

const (
	PlutusNone PlutusVersion = iota
	PlutusV1
	PlutusV2
	PlutusV3
)

// RedeemerTag identifies which part of the transaction a redeemer applies
// to, following the ledger's four (Conway: six, with Propose/Vote) purposes.
type RedeemerTag uint8

const (
	RedeemerSpend RedeemerTag = iota
	RedeemerMint
	RedeemerCert
	RedeemerReward
	RedeemerVote
	RedeemerPropose
)

// ExUnits is the Plutus execution-unit budget: memory and CPU steps.
type ExUnits struct {
	Memory uint64
	Steps  uint64
}

// Redeemer is one entry of the transaction's redeemer map: which purpose and
// index it applies to, the Plutus Data argument, and the ex-unit budget the
// submitter is willing to pay for it.
type Redeemer struct {
	Tag     RedeemerTag
	Index   uint32
	Data    []byte // raw Plutus Data CBOR
	ExUnits ExUnits
	Range   ByteRange
}

// VkeyWitness is an Ed25519 verification-key witness: the 32-byte public key
// and the 64-byte signature over the transaction body hash.
type VkeyWitness struct {
	VKey      [32]byte
	Signature [64]byte
}

// Certificate is a single certificate from the transaction's certificate
// list. Kind identifies which one; only the fields relevant to that kind
// are populated.
type Certificate struct {
	Kind  CertificateKind
	Range ByteRange

	StakeCredential *Credential
	PoolKeyHash     *[28]byte
	DRepCredential  *Credential
	Deposit         *big.Int

	// ColdCredential/HotCredential are populated for the two committee
	// certificate kinds: auth_committee_hot_cert carries both (cold member
	// authorizing a hot key), resign_committee_cold_cert carries only the
	// cold credential resigning.
	ColdCredential *Credential
	HotCredential  *Credential

	// Pool registration/retirement fields (CertPoolRegistration/
	// CertPoolRetirement only). PoolKeyHash above doubles as the operator
	// key for both.
	PoolPledge          *big.Int
	PoolCost            *big.Int
	PoolRetirementEpoch *uint64
}

// CertificateKind enumerates the certificate variants Phase-1's Registration
// validator inspects. Tag values follow the Conway-era certificate CDDL:
// 0-4 are the original Shelley stake/pool certificates; 7-9 and 14-18 are
// Conway's deposit-carrying registration, vote delegation, and committee/DRep
// certificates.
type CertificateKind uint8

const (
	CertStakeRegistration           CertificateKind = iota // tags 0 and 7 (reg_cert, with deposit)
	CertStakeDeregistration                                // tags 1 and 8 (unreg_cert, with deposit)
	CertStakeDelegation                                    // tag 2
	CertPoolRegistration                                   // tag 3
	CertPoolRetirement                                      // tag 4
	CertVoteDelegation                                      // tag 9 (vote_deleg_cert)
	CertCommitteeHotKeyRegistration                         // tag 14 (auth_committee_hot_cert)
	CertCommitteeColdKeyResignation                         // tag 15 (resign_committee_cold_cert)
	CertDRepRegistration                                    // tag 16 (reg_drep_cert)
	CertDRepDeregistration                                  // tag 17 (unreg_drep_cert)
	CertDRepUpdate                                          // tag 18 (update_drep_cert)
)

// Withdrawal is one entry of the transaction's reward withdrawal map.
type Withdrawal struct {
	StakeAddress Address
	Amount       *big.Int
}

// GovActionKind identifies which of the Conway governance-action variants a
// proposal procedure carries.
type GovActionKind uint8

const (
	GovActionParameterChange GovActionKind = iota
	GovActionHardForkInitiation
	GovActionTreasuryWithdrawals
	GovActionNoConfidence
	GovActionUpdateCommittee
	GovActionNewConstitution
	GovActionInfo
)

// GovActionRef identifies one enacted-or-pending governance action by the
// transaction that proposed it and its index within that transaction's
// proposal procedures, mirroring gov_action_id in the certificate CDDL.
type GovActionRef struct {
	TxHash [32]byte
	Index  uint32
}

// GovernanceAction is one proposal procedure entry. PrevActionRef is the
// gov_action_id the action's CDDL variant chains from (nil for a fresh
// chain, and always nil for TreasuryWithdrawals/Info which don't chain at
// all): the ledger enacts at most one action per kind's chain at a time, so
// this is how a proposal declares which prior enactment it supersedes.
type GovernanceAction struct {
	Kind                 GovActionKind
	PrevActionRef        *GovActionRef
	DepositReturnAddress Address
	Deposit              *big.Int
	Range                ByteRange
}

// VotingProcedure is one voting procedure entry: who voted, on which
// governance action, and how.
type VotingProcedure struct {
	Voter       Credential
	ActionTxID  [32]byte
	ActionIndex uint32
	Range       ByteRange
}

// AuxiliaryData is the transaction's optional metadata/native-script/
// Plutus-script auxiliary bundle.
type AuxiliaryData struct {
	Present bool
	CBOR    []byte
	Hash    *[32]byte // tx body's auxiliary_data_hash field, if set
}

// Transaction is the fully parsed, byte-annotated view of a single Cardano
// transaction that every Phase-1 validator and the Phase-2 evaluator read.
// It is built once by Parse and never mutated afterward.
type Transaction struct {
	RawCBOR []byte
	BodyRange ByteRange

	Inputs       []TxInput
	Outputs      []TxOutput
	Fee          *big.Int
	TTL          *uint64
	ValidityStart *uint64
	Certificates []Certificate
	Withdrawals  []Withdrawal
	Mint         *Value
	ScriptDataHash *[32]byte
	Collateral       []TxInput
	RequiredSigners  [][28]byte
	NetworkID        *byte
	CollateralReturn *TxOutput
	TotalCollateral  *uint64
	ReferenceInputs  []TxInput
	VotingProcedures []VotingProcedure
	ProposalProcedures []GovernanceAction
	TreasuryValue    *big.Int
	Donation         *big.Int

	AuxData AuxiliaryData

	VkeyWitnesses   []VkeyWitness
	NativeScripts   [][]byte
	PlutusV1Scripts [][]byte
	PlutusV2Scripts [][]byte
	PlutusV3Scripts [][]byte
	PlutusData      [][]byte
	Redeemers       []Redeemer

	IsValid bool // the transaction body's top-level "is valid" flag (Alonzo+)
}

// Hash is a 32-byte Blake2b-256 digest, such as the hash of BodyRange's bytes.
type Hash [32]byte
