package cborx

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

func TestDecodeByteRanges(t *testing.T) {
	cases := []struct {
		name string
		hex  string
		kind Kind
	}{
		{"small uint", "05", KindUint},
		{"neg int", "29", KindNegInt},
		{"def bytes", "4403010203", KindBytes},
		{"indef bytes", "5f420101420203ff", KindBytes},
		{"def list", "820102", KindList},
		{"def map", "a1011864", KindMap},
		{"tag 258 set", "d9010281624142", KindTag},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			buf := mustHex(t, c.hex)
			item, err := Decode(buf)
			require.NoError(t, err)
			require.Equal(t, c.kind, item.Kind)
			require.Equal(t, 0, item.Start)
			require.Equal(t, len(buf), item.End)
		})
	}
}

func TestDecodeChunkedBytesConcatenates(t *testing.T) {
	buf := mustHex(t, "5f420101420203ff")
	item, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 1, 2, 3}, item.Bytes)
}

func TestMapValueUintLooksUpByKey(t *testing.T) {
	// {0: 5, 1: 100}
	buf := mustHex(t, "a20005011864")
	item, err := Decode(buf)
	require.NoError(t, err)

	v, ok := item.MapValueUint(buf, 0)
	require.True(t, ok)
	require.Equal(t, uint64(5), v.Uint)

	_, ok = item.MapValueUint(buf, 9)
	require.False(t, ok)
}

func TestBigIntBignumFallback(t *testing.T) {
	// tag 2 (positive bignum) wrapping bytes 0x0100000000000000 (2^56)
	buf := mustHex(t, "c2480100000000000000")
	item, err := Decode(buf)
	require.NoError(t, err)
	got := item.BigInt()
	require.NotNil(t, got)
	require.Equal(t, "72057594037927936", got.String())
}

func TestRoundTripSubsliceIsByteExact(t *testing.T) {
	buf := mustHex(t, "8301820102820304")
	item, err := Decode(buf)
	require.NoError(t, err)
	require.Len(t, item.Items, 3)
	require.Equal(t, mustHex(t, "820102"), item.Items[1].Raw(buf))
	require.Equal(t, mustHex(t, "820304"), item.Items[2].Raw(buf))
}
