package txmodel

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueAddSubRoundTrip(t *testing.T) {
	a := NewValue(100)
	b := NewValue(40)
	sum := a.Add(b)
	require.Equal(t, big.NewInt(140), sum.Coin)

	back := sum.Sub(b)
	require.True(t, back.Equal(a))
}

func TestValueNormalizeDropsZeroAssets(t *testing.T) {
	var pol PolicyID
	pol[0] = 0xaa
	v := Value{
		Coin: big.NewInt(0),
		Assets: map[PolicyID]map[AssetName]*big.Int{
			pol: {"token": big.NewInt(0)},
		},
	}
	require.True(t, v.IsZero())
}

func TestValueEqualIgnoresZeroEntries(t *testing.T) {
	var pol PolicyID
	pol[0] = 0x01
	withZero := Value{
		Coin: big.NewInt(5),
		Assets: map[PolicyID]map[AssetName]*big.Int{
			pol: {"x": big.NewInt(0)},
		},
	}
	without := NewValue(5)
	require.True(t, withZero.Equal(without))
}

func TestValueHasNegative(t *testing.T) {
	v := NewValue(-1)
	require.True(t, v.HasNegative())
	require.False(t, NewValue(1).HasNegative())
}
