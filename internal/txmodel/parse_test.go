package txmodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeAddressEnterpriseKey(t *testing.T) {
	raw := make([]byte, 29)
	raw[0] = 0x61 // enterprise key, mainnet
	for i := 1; i < 29; i++ {
		raw[i] = byte(i)
	}
	addr := decodeAddress(raw)
	require.Equal(t, byte(1), addr.Network)
	require.NotNil(t, addr.Payment)
	require.Equal(t, CredentialKey, addr.Payment.Kind)
	require.Nil(t, addr.Stake)
}

func TestDecodeAddressBaseKeyPaymentScriptStake(t *testing.T) {
	raw := make([]byte, 57)
	raw[0] = 0x21 // base, key payment + script stake, mainnet
	addr := decodeAddress(raw)
	require.Equal(t, byte(1), addr.Network)
	require.NotNil(t, addr.Payment)
	require.Equal(t, CredentialKey, addr.Payment.Kind)
	require.NotNil(t, addr.Stake)
	require.Equal(t, CredentialScript, addr.Stake.Kind)
}

func TestDecodeAddressRewardAccount(t *testing.T) {
	raw := make([]byte, 29)
	raw[0] = 0xe1 // stake/reward, key, mainnet
	addr := decodeAddress(raw)
	require.Nil(t, addr.Payment)
	require.NotNil(t, addr.Stake)
	require.Equal(t, CredentialKey, addr.Stake.Kind)
}

func TestParseRejectsNonArrayTop(t *testing.T) {
	_, err := Parse([]byte{0x01})
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}
