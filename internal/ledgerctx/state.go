package ledgerctx

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

func errInvalidHashLength(field string, got int) error {
	return fmt.Errorf("%s: expected 32 bytes, got %d", field, got)
}

// OutRef identifies a UTxO entry by the transaction that produced it and the
// output index within that transaction.
type OutRef struct {
	TxHash [32]byte
	Index  uint32
}

type outRefWire struct {
	TxHash string `json:"txHash"`
	Index  uint32 `json:"index"`
}

// MarshalJSON renders the transaction hash as hex, the conventional Cardano
// tx-id encoding, instead of json's default base64 for byte arrays.
func (o OutRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(outRefWire{TxHash: hex.EncodeToString(o.TxHash[:]), Index: o.Index})
}

// UnmarshalJSON parses the hex tx-hash/index wire form back into an OutRef.
func (o *OutRef) UnmarshalJSON(data []byte) error {
	var w outRefWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	raw, err := hex.DecodeString(w.TxHash)
	if err != nil {
		return err
	}
	if len(raw) != 32 {
		return errInvalidHashLength("txHash", len(raw))
	}
	copy(o.TxHash[:], raw)
	o.Index = w.Index
	return nil
}

// UTxOEntry is one unspent output available to a transaction as an input,
// collateral input, or reference input.
type UTxOEntry struct {
	Output txmodel.TxOutput
}

// AccountState is a stake account's ledger-visible state: whether it is
// currently registered, its deposit, its reward balance, and the pool and
// DRep it delegates to, if any.
type AccountState struct {
	Registered     bool
	Deposit        *big.Int
	RewardBalance  *big.Int
	DelegatedPool  *[28]byte
	DelegatedDRep  *txmodel.Credential
}

// PoolState is a stake pool's ledger-visible registration state.
type PoolState struct {
	Registered bool
	Retiring   bool
	PledgeMet  bool
}

// DRepState is a DRep's ledger-visible registration and activity state.
// HistoryAvailable is false when the caller's snapshot does not have enough
// history to know whether the DRep's deposit refund conditions are met; the
// Registration validator treats that as a warning, never an error (see
// DESIGN.md's Open Question decision).
type DRepState struct {
	Registered       bool
	Deposit          *big.Int
	HistoryAvailable bool
	LastActiveEpoch  uint64
}

// GovActionState is the ledger-visible lifecycle state of one governance
// action: whether it is still open for votes and what epoch it expires.
type GovActionState struct {
	Enacted bool
	Expired bool
	ExpiresAtEpoch uint64
}

// CommitteeRoster is the current constitutional committee: which cold-key
// credentials are members, which already have a hot-key registered, and
// which have already resigned (a resigned member stays in Members until the
// next epoch boundary removes it, but can never resign twice).
type CommitteeRoster struct {
	Members  map[txmodel.Credential]bool
	HotKeyOf map[txmodel.Credential]txmodel.Credential
	Resigned map[txmodel.Credential]bool
}

// Context is the complete, immutable ledger-state snapshot a single
// Validate call is evaluated against. Every field is read-only: no
// component of this library mutates a Context, and none of them fetch or
// persist one — it is always supplied whole by the caller.
type Context struct {
	Slot      uint64
	NetworkID byte
	Epoch     uint64

	Params ProtocolParams

	UTxOs map[OutRef]UTxOEntry

	Accounts map[txmodel.Credential]AccountState
	Pools    map[[28]byte]PoolState
	DReps    map[txmodel.Credential]DRepState

	GovActions map[OutRef]GovActionState
	Committee  CommitteeRoster

	TreasuryBalance *big.Int
}

// Lookup resolves a transaction input against the context's UTxO set.
func (c *Context) Lookup(in txmodel.TxInput) (UTxOEntry, bool) {
	e, ok := c.UTxOs[OutRef{TxHash: in.TxHash, Index: in.Index}]
	return e, ok
}
