package main

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// validateRequest is the wire body of POST /validate: the transaction hex
// plus the full ledger-state snapshot the caller wants it evaluated against.
type validateRequest struct {
	TxHex   string         `json:"txHex"`
	Context contextRequest `json:"context"`
}

// necessaryDataRequest is the wire body of POST /necessary-data.
type necessaryDataRequest struct {
	TxHex string `json:"txHex"`
}

// contextRequest is the JSON-friendly projection of ledgerctx.Context. The
// core type's maps are keyed by structs and byte arrays, which encoding/json
// cannot use as object keys directly, so the wire form lists entries and
// this file folds them back into the map shape Validate expects.
type contextRequest struct {
	Slot      uint64                   `json:"slot"`
	NetworkID byte                     `json:"networkId"`
	Epoch     uint64                   `json:"epoch"`
	Params    ledgerctx.ProtocolParams `json:"params"`

	UTxOs []utxoEntryWire `json:"utxos"`

	Accounts []accountEntryWire `json:"accounts,omitempty"`
	Pools    []poolEntryWire    `json:"pools,omitempty"`
	DReps    []dRepEntryWire    `json:"dReps,omitempty"`

	GovActions []govActionEntryWire `json:"govActions,omitempty"`
	Committee  committeeWire        `json:"committee,omitempty"`

	TreasuryBalance *string `json:"treasuryBalance,omitempty"`
}

type addressWire struct {
	Raw     string               `json:"raw"` // hex-encoded address bytes
	Network byte                 `json:"network"`
	Payment *txmodel.Credential  `json:"payment,omitempty"`
	Stake   *txmodel.Credential  `json:"stake,omitempty"`
}

type valueAssetWire struct {
	Policy   string `json:"policy"` // hex
	Asset    string `json:"asset"`  // hex
	Quantity string `json:"quantity"`
}

type valueWire struct {
	Coin   string           `json:"coin"`
	Assets []valueAssetWire `json:"assets,omitempty"`
}

type datumWire struct {
	Hash   string `json:"hash,omitempty"`   // hex, mutually exclusive with Inline
	Inline string `json:"inline,omitempty"` // hex Plutus Data CBOR
}

type scriptRefWire struct {
	Language uint8  `json:"language"` // txmodel.PlutusVersion, 0 = native
	Native   bool   `json:"native"`
	CBOR     string `json:"cbor"` // hex
}

type txOutputWire struct {
	Address   addressWire    `json:"address"`
	Value     valueWire      `json:"value"`
	Datum     *datumWire     `json:"datum,omitempty"`
	RefScript *scriptRefWire `json:"refScript,omitempty"`
}

type utxoEntryWire struct {
	TxHash string       `json:"txHash"` // hex
	Index  uint32       `json:"index"`
	Output txOutputWire `json:"output"`
}

type accountEntryWire struct {
	Credential    txmodel.Credential `json:"credential"`
	Registered    bool               `json:"registered"`
	Deposit       string             `json:"deposit,omitempty"`
	RewardBalance string             `json:"rewardBalance,omitempty"`
	DelegatedPool string             `json:"delegatedPool,omitempty"` // hex
}

type poolEntryWire struct {
	KeyHash    string `json:"keyHash"` // hex
	Registered bool   `json:"registered"`
	Retiring   bool   `json:"retiring"`
	PledgeMet  bool   `json:"pledgeMet"`
}

type dRepEntryWire struct {
	Credential       txmodel.Credential `json:"credential"`
	Registered       bool               `json:"registered"`
	Deposit          string             `json:"deposit,omitempty"`
	HistoryAvailable bool               `json:"historyAvailable"`
	LastActiveEpoch  uint64             `json:"lastActiveEpoch"`
}

type govActionEntryWire struct {
	Ref            ledgerctx.OutRef `json:"ref"`
	Enacted        bool             `json:"enacted"`
	Expired        bool             `json:"expired"`
	ExpiresAtEpoch uint64           `json:"expiresAtEpoch"`
}

type committeeWire struct {
	Members  []txmodel.Credential `json:"members,omitempty"`
	HotKeyOf []hotKeyEntryWire    `json:"hotKeyOf,omitempty"`
	Resigned []txmodel.Credential `json:"resigned,omitempty"`
}

type hotKeyEntryWire struct {
	Cold txmodel.Credential `json:"cold"`
	Hot  txmodel.Credential `json:"hot"`
}

func decodeHex(field, s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid hex: %w", field, err)
	}
	return b, nil
}

func decodeBigInt(field, s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%s: invalid integer %q", field, s)
	}
	return n, nil
}

func decodeHash28(field, s string) ([28]byte, error) {
	var out [28]byte
	raw, err := decodeHex(field, s)
	if err != nil {
		return out, err
	}
	if len(raw) != 28 {
		return out, fmt.Errorf("%s: expected 28 bytes, got %d", field, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

func decodeHash32(field, s string) ([32]byte, error) {
	var out [32]byte
	raw, err := decodeHex(field, s)
	if err != nil {
		return out, err
	}
	if len(raw) != 32 {
		return out, fmt.Errorf("%s: expected 32 bytes, got %d", field, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

func (a addressWire) toAddress() (txmodel.Address, error) {
	raw, err := decodeHex("address.raw", a.Raw)
	if err != nil {
		return txmodel.Address{}, err
	}
	return txmodel.Address{Raw: raw, Network: a.Network, Payment: a.Payment, Stake: a.Stake}, nil
}

func (v valueWire) toValue() (txmodel.Value, error) {
	coin, err := decodeBigInt("value.coin", v.Coin)
	if err != nil {
		return txmodel.Value{}, err
	}
	if coin == nil {
		coin = big.NewInt(0)
	}
	out := txmodel.Value{Coin: coin, Assets: map[txmodel.PolicyID]map[txmodel.AssetName]*big.Int{}}
	for _, a := range v.Assets {
		policyRaw, err := decodeHash28("value.assets.policy", a.Policy)
		if err != nil {
			return txmodel.Value{}, err
		}
		nameRaw, err := decodeHex("value.assets.asset", a.Asset)
		if err != nil {
			return txmodel.Value{}, err
		}
		qty, err := decodeBigInt("value.assets.quantity", a.Quantity)
		if err != nil {
			return txmodel.Value{}, err
		}
		policy := txmodel.PolicyID(policyRaw)
		name := txmodel.AssetName(nameRaw)
		if out.Assets[policy] == nil {
			out.Assets[policy] = map[txmodel.AssetName]*big.Int{}
		}
		out.Assets[policy][name] = qty
	}
	return out, nil
}

func (d datumWire) toDatum() (*txmodel.Datum, error) {
	if d.Hash != "" {
		h, err := decodeHash32("datum.hash", d.Hash)
		if err != nil {
			return nil, err
		}
		return &txmodel.Datum{Hash: &h}, nil
	}
	inline, err := decodeHex("datum.inline", d.Inline)
	if err != nil {
		return nil, err
	}
	return &txmodel.Datum{Inline: inline}, nil
}

func (s scriptRefWire) toScriptRef() (*txmodel.ScriptRef, error) {
	cbor, err := decodeHex("refScript.cbor", s.CBOR)
	if err != nil {
		return nil, err
	}
	return &txmodel.ScriptRef{Language: txmodel.PlutusVersion(s.Language), Native: s.Native, CBOR: cbor}, nil
}

func (o txOutputWire) toTxOutput() (txmodel.TxOutput, error) {
	addr, err := o.Address.toAddress()
	if err != nil {
		return txmodel.TxOutput{}, err
	}
	val, err := o.Value.toValue()
	if err != nil {
		return txmodel.TxOutput{}, err
	}
	out := txmodel.TxOutput{Address: addr, Value: val}
	if o.Datum != nil {
		out.Datum, err = o.Datum.toDatum()
		if err != nil {
			return txmodel.TxOutput{}, err
		}
	}
	if o.RefScript != nil {
		out.RefScript, err = o.RefScript.toScriptRef()
		if err != nil {
			return txmodel.TxOutput{}, err
		}
	}
	return out, nil
}

// toContext folds the wire request into the ledgerctx.Context Validate
// operates on, rebuilding every map the HTTP body represents as a list.
func (r contextRequest) toContext() (*ledgerctx.Context, error) {
	ctx := &ledgerctx.Context{
		Slot:      r.Slot,
		NetworkID: r.NetworkID,
		Epoch:     r.Epoch,
		Params:    r.Params,
		UTxOs:     map[ledgerctx.OutRef]ledgerctx.UTxOEntry{},
	}

	for _, u := range r.UTxOs {
		txHash, err := decodeHash32("utxos.txHash", u.TxHash)
		if err != nil {
			return nil, err
		}
		out, err := u.Output.toTxOutput()
		if err != nil {
			return nil, err
		}
		ctx.UTxOs[ledgerctx.OutRef{TxHash: txHash, Index: u.Index}] = ledgerctx.UTxOEntry{Output: out}
	}

	if len(r.Accounts) > 0 {
		ctx.Accounts = map[txmodel.Credential]ledgerctx.AccountState{}
		for _, a := range r.Accounts {
			deposit, err := decodeBigInt("accounts.deposit", a.Deposit)
			if err != nil {
				return nil, err
			}
			reward, err := decodeBigInt("accounts.rewardBalance", a.RewardBalance)
			if err != nil {
				return nil, err
			}
			state := ledgerctx.AccountState{Registered: a.Registered, Deposit: deposit, RewardBalance: reward}
			if a.DelegatedPool != "" {
				pool, err := decodeHash28("accounts.delegatedPool", a.DelegatedPool)
				if err != nil {
					return nil, err
				}
				state.DelegatedPool = &pool
			}
			ctx.Accounts[a.Credential] = state
		}
	}

	if len(r.Pools) > 0 {
		ctx.Pools = map[[28]byte]ledgerctx.PoolState{}
		for _, p := range r.Pools {
			hash, err := decodeHash28("pools.keyHash", p.KeyHash)
			if err != nil {
				return nil, err
			}
			ctx.Pools[hash] = ledgerctx.PoolState{Registered: p.Registered, Retiring: p.Retiring, PledgeMet: p.PledgeMet}
		}
	}

	if len(r.DReps) > 0 {
		ctx.DReps = map[txmodel.Credential]ledgerctx.DRepState{}
		for _, d := range r.DReps {
			deposit, err := decodeBigInt("dReps.deposit", d.Deposit)
			if err != nil {
				return nil, err
			}
			ctx.DReps[d.Credential] = ledgerctx.DRepState{
				Registered:       d.Registered,
				Deposit:          deposit,
				HistoryAvailable: d.HistoryAvailable,
				LastActiveEpoch:  d.LastActiveEpoch,
			}
		}
	}

	if len(r.GovActions) > 0 {
		ctx.GovActions = map[ledgerctx.OutRef]ledgerctx.GovActionState{}
		for _, g := range r.GovActions {
			ctx.GovActions[g.Ref] = ledgerctx.GovActionState{
				Enacted:        g.Enacted,
				Expired:        g.Expired,
				ExpiresAtEpoch: g.ExpiresAtEpoch,
			}
		}
	}

	if len(r.Committee.Members) > 0 || len(r.Committee.HotKeyOf) > 0 || len(r.Committee.Resigned) > 0 {
		ctx.Committee.Members = map[txmodel.Credential]bool{}
		for _, m := range r.Committee.Members {
			ctx.Committee.Members[m] = true
		}
		ctx.Committee.HotKeyOf = map[txmodel.Credential]txmodel.Credential{}
		for _, h := range r.Committee.HotKeyOf {
			ctx.Committee.HotKeyOf[h.Cold] = h.Hot
		}
		ctx.Committee.Resigned = map[txmodel.Credential]bool{}
		for _, c := range r.Committee.Resigned {
			ctx.Committee.Resigned[c] = true
		}
	}

	if r.TreasuryBalance != nil {
		balance, err := decodeBigInt("treasuryBalance", *r.TreasuryBalance)
		if err != nil {
			return nil, err
		}
		ctx.TreasuryBalance = balance
	}

	return ctx, nil
}
