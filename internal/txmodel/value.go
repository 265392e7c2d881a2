package txmodel

import "math/big"

// PolicyID is a 28-byte Plutus minting policy hash.
type PolicyID [28]byte

// AssetName is an asset name of at most 32 bytes, kept as a variable-length
// slice since shorter names are legal and common.
type AssetName string

// Value is a multi-asset amount: a coin (lovelace) quantity plus zero or more
// signed quantities keyed by policy and asset name. A missing policy/asset
// entry is equivalent to a zero quantity; Value never stores an entry whose
// quantity is exactly zero (Normalize removes them), so two Values represent
// the same amount iff their normalized forms compare equal.
type Value struct {
	Coin   *big.Int
	Assets map[PolicyID]map[AssetName]*big.Int
}

// NewValue returns a coin-only Value.
func NewValue(lovelace int64) Value {
	return Value{Coin: big.NewInt(lovelace), Assets: map[PolicyID]map[AssetName]*big.Int{}}
}

// Normalize returns a copy of v with all zero-quantity asset entries removed
// and empty policy maps dropped, so equality comparisons are well-defined.
func (v Value) Normalize() Value {
	out := Value{Coin: new(big.Int).Set(v.Coin), Assets: map[PolicyID]map[AssetName]*big.Int{}}
	for pol, assets := range v.Assets {
		for name, qty := range assets {
			if qty.Sign() == 0 {
				continue
			}
			m, ok := out.Assets[pol]
			if !ok {
				m = map[AssetName]*big.Int{}
				out.Assets[pol] = m
			}
			m[name] = new(big.Int).Set(qty)
		}
	}
	return out
}

// Add returns v + other.
func (v Value) Add(other Value) Value {
	return v.combine(other, func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) })
}

// Sub returns v - other.
func (v Value) Sub(other Value) Value {
	return v.combine(other, func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) })
}

func (v Value) combine(other Value, op func(a, b *big.Int) *big.Int) Value {
	out := Value{Coin: op(v.Coin, other.Coin), Assets: map[PolicyID]map[AssetName]*big.Int{}}
	seen := map[PolicyID]map[AssetName]bool{}
	for pol, assets := range v.Assets {
		for name := range assets {
			addQty(out.Assets, pol, name, op(v.quantity(pol, name), other.quantity(pol, name)))
			markSeen(seen, pol, name)
		}
	}
	for pol, assets := range other.Assets {
		for name := range assets {
			if seen[pol] != nil && seen[pol][name] {
				continue
			}
			addQty(out.Assets, pol, name, op(v.quantity(pol, name), other.quantity(pol, name)))
		}
	}
	return out.Normalize()
}

func markSeen(seen map[PolicyID]map[AssetName]bool, pol PolicyID, name AssetName) {
	if seen[pol] == nil {
		seen[pol] = map[AssetName]bool{}
	}
	seen[pol][name] = true
}

func addQty(m map[PolicyID]map[AssetName]*big.Int, pol PolicyID, name AssetName, qty *big.Int) {
	if m[pol] == nil {
		m[pol] = map[AssetName]*big.Int{}
	}
	m[pol][name] = qty
}

func (v Value) quantity(pol PolicyID, name AssetName) *big.Int {
	if m, ok := v.Assets[pol]; ok {
		if q, ok := m[name]; ok {
			return q
		}
	}
	return big.NewInt(0)
}

// IsZero reports whether v's normalized form has no coin and no assets.
func (v Value) IsZero() bool {
	n := v.Normalize()
	return n.Coin.Sign() == 0 && len(n.Assets) == 0
}

// HasNegative reports whether any component of v (including the coin) is
// negative, which is never valid for a transaction output or balance result.
func (v Value) HasNegative() bool {
	if v.Coin.Sign() < 0 {
		return true
	}
	for _, assets := range v.Assets {
		for _, qty := range assets {
			if qty.Sign() < 0 {
				return true
			}
		}
	}
	return false
}

// Equal reports whether v and other represent the same amount once
// normalized (zero entries elided).
func (v Value) Equal(other Value) bool {
	a, b := v.Normalize(), other.Normalize()
	if a.Coin.Cmp(b.Coin) != 0 {
		return false
	}
	if len(a.Assets) != len(b.Assets) {
		return false
	}
	for pol, assets := range a.Assets {
		bAssets, ok := b.Assets[pol]
		if !ok || len(bAssets) != len(assets) {
			return false
		}
		for name, qty := range assets {
			bq, ok := bAssets[name]
			if !ok || bq.Cmp(qty) != 0 {
				return false
			}
		}
	}
	return true
}
