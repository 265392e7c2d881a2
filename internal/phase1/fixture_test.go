package phase1

import (
	"crypto/ed25519"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/cryptoutil"
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// happyPathTx builds a minimal transaction that should pass every Phase-1
// validator with no findings: a single key-locked input spending into one
// output plus a fee, no certificates, no scripts, no auxiliary data.
func happyPathTx(t *testing.T) (*txmodel.Transaction, *ledgerctx.Context) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	inputHash := [32]byte{0x11}
	payer := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: cryptoutil.Blake2b224(pub)}
	receiver := txmodel.Address{Raw: []byte{0x61, 0x33}, Network: 1, Payment: &txmodel.Credential{Kind: txmodel.CredentialKey, Hash: [28]byte{0x33}}}

	body := make([]byte, 299)
	raw := append([]byte{0xff}, body...)
	bodyRange := txmodel.ByteRange{Start: 1, End: len(raw)}
	bodyHash := cryptoutil.Blake2b256(raw[bodyRange.Start:bodyRange.End])
	sig := ed25519.Sign(priv, bodyHash[:])

	var vkey [32]byte
	copy(vkey[:], pub)
	var sigArr [64]byte
	copy(sigArr[:], sig)

	networkID := byte(1)
	tx := &txmodel.Transaction{
		RawCBOR:   raw,
		BodyRange: bodyRange,
		Inputs:    []txmodel.TxInput{{TxHash: inputHash, Index: 0}},
		Outputs: []txmodel.TxOutput{
			{Address: receiver, Value: txmodel.NewValue(4_000_000)},
		},
		Fee:           big.NewInt(200_000),
		NetworkID:     &networkID,
		VkeyWitnesses: []txmodel.VkeyWitness{{VKey: vkey, Signature: sigArr}},
	}

	ctx := &ledgerctx.Context{
		NetworkID: 1,
		Slot:      1000,
		Params: ledgerctx.ProtocolParams{
			MinFeeA:          44,
			MinFeeB:          155_381,
			MaxTxSize:        16384,
			CoinsPerUTxOByte: 4310,
			MaxValueSize:     5000,
		},
		UTxOs: map[ledgerctx.OutRef]ledgerctx.UTxOEntry{
			{TxHash: inputHash, Index: 0}: {
				Output: txmodel.TxOutput{
					Address: txmodel.Address{Network: 1, Payment: &payer},
					Value:   txmodel.NewValue(4_200_000),
				},
			},
		},
	}

	return tx, ctx
}
