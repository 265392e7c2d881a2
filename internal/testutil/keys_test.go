package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/cryptoutil"
)

func TestDerivePaymentKeyIsDeterministic(t *testing.T) {
	words := strings.Fields("abandon amount liar amount expire adjust cage candy arch gather drum bullet absurd math era live bid rhythm alien crouch range attend journey unaware")

	a, err := DerivePaymentKey(words, 0, 0)
	require.NoError(t, err)
	b, err := DerivePaymentKey(words, 0, 0)
	require.NoError(t, err)

	require.Equal(t, a.Credential, b.Credential)
}

func TestDerivePaymentKeyDiffersAcrossMnemonics(t *testing.T) {
	first := strings.Fields("abandon amount liar amount expire adjust cage candy arch gather drum bullet absurd math era live bid rhythm alien crouch range attend journey unaware")
	second := strings.Fields("zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo vote")

	a, err := DerivePaymentKey(first, 0, 0)
	require.NoError(t, err)
	b, err := DerivePaymentKey(second, 0, 0)
	require.NoError(t, err)

	require.NotEqual(t, a.Credential, b.Credential)
}

func TestDerivePaymentKeyDiffersAcrossIndex(t *testing.T) {
	words := strings.Fields("abandon amount liar amount expire adjust cage candy arch gather drum bullet absurd math era live bid rhythm alien crouch range attend journey unaware")

	a, err := DerivePaymentKey(words, 0, 0)
	require.NoError(t, err)
	b, err := DerivePaymentKey(words, 0, 1)
	require.NoError(t, err)

	require.NotEqual(t, a.Credential, b.Credential)
}

func TestSignBodyHashProducesVerifiableSignature(t *testing.T) {
	k, err := DefaultKeypair()
	require.NoError(t, err)

	var bodyHash [32]byte
	copy(bodyHash[:], []byte("deterministic-fixture-body-hash-"))

	vkey, sig := k.SignBodyHash(bodyHash)
	require.NotZero(t, vkey)
	require.NotZero(t, sig)
	require.True(t, cryptoutil.VerifyEd25519(vkey, bodyHash[:], sig))
}
