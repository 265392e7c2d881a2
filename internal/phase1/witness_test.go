package phase1

import (
	"crypto/ed25519"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-cardano/ledgercheck/internal/cryptoutil"
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

func signedTxAndContext(t *testing.T) (*txmodel.Transaction, *ledgerctx.Context, ed25519.PublicKey) {
	t.Helper()

	body := []byte{0x01, 0x02, 0x03, 0x04}
	raw := append([]byte{0xff}, body...)
	bodyRange := txmodel.ByteRange{Start: 1, End: len(raw)}

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	bodyHash := cryptoutil.Blake2b256(raw[bodyRange.Start:bodyRange.End])
	sig := ed25519.Sign(priv, bodyHash[:])

	var vkey [32]byte
	copy(vkey[:], pub)
	var sigArr [64]byte
	copy(sigArr[:], sig)

	payer := txmodel.Credential{Kind: txmodel.CredentialKey, Hash: cryptoutil.Blake2b224(pub)}

	txHash := [32]byte{0xaa}
	input := txmodel.TxInput{TxHash: txHash, Index: 0}

	tx := &txmodel.Transaction{
		RawCBOR:   raw,
		BodyRange: bodyRange,
		Inputs:    []txmodel.TxInput{input},
		Fee:       big.NewInt(200000),
		VkeyWitnesses: []txmodel.VkeyWitness{
			{VKey: vkey, Signature: sigArr},
		},
	}

	ctx := &ledgerctx.Context{
		UTxOs: map[ledgerctx.OutRef]ledgerctx.UTxOEntry{
			{TxHash: txHash, Index: 0}: {
				Output: txmodel.TxOutput{
					Address: txmodel.Address{Payment: &payer},
					Value:   txmodel.NewValue(5_000_000),
				},
			},
		},
	}

	return tx, ctx, pub
}

func TestWitnessValidatorAcceptsValidSignature(t *testing.T) {
	tx, ctx, _ := signedTxAndContext(t)
	findings := WitnessValidator{}.Check(tx, ctx)
	require.Empty(t, findings)
}

func TestWitnessValidatorFlagsTamperedSignature(t *testing.T) {
	tx, ctx, _ := signedTxAndContext(t)
	tx.VkeyWitnesses[0].Signature[0] ^= 0xff

	findings := WitnessValidator{}.Check(tx, ctx)
	require.NotEmpty(t, findings)
	require.Equal(t, "witness", findings[0].Source)
}

func TestWitnessValidatorFlagsMissingSigner(t *testing.T) {
	tx, ctx, _ := signedTxAndContext(t)
	tx.VkeyWitnesses = nil

	findings := WitnessValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeMissingVKeyWitness)
}

func TestWitnessValidatorFlagsMissingScriptWitness(t *testing.T) {
	tx, ctx, _ := signedTxAndContext(t)

	scriptCred := txmodel.Credential{Kind: txmodel.CredentialScript, Hash: [28]byte{0x01}}
	scriptInput := txmodel.TxInput{TxHash: [32]byte{0xbb}, Index: 0}
	ctx.UTxOs[ledgerctx.OutRef{TxHash: scriptInput.TxHash, Index: 0}] = ledgerctx.UTxOEntry{
		Output: txmodel.TxOutput{
			Address: txmodel.Address{Payment: &scriptCred},
			Value:   txmodel.NewValue(2_000_000),
		},
	}
	tx.Inputs = append(tx.Inputs, scriptInput)
	tx.Redeemers = []txmodel.Redeemer{
		{Tag: txmodel.RedeemerSpend, Index: 1, Data: []byte{0x00}},
	}

	findings := WitnessValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeMissingScriptWitness)
}

func TestWitnessValidatorFlagsMissingRedeemerForScriptInput(t *testing.T) {
	tx, ctx, _ := signedTxAndContext(t)

	scriptCred := txmodel.Credential{Kind: txmodel.CredentialScript, Hash: cryptoutil.Blake2b224([]byte{0xde, 0xad})}
	scriptInput := txmodel.TxInput{TxHash: [32]byte{0xbb}, Index: 0}
	ctx.UTxOs[ledgerctx.OutRef{TxHash: scriptInput.TxHash, Index: 0}] = ledgerctx.UTxOEntry{
		Output: txmodel.TxOutput{
			Address: txmodel.Address{Payment: &scriptCred},
			Value:   txmodel.NewValue(2_000_000),
		},
	}
	tx.Inputs = append(tx.Inputs, scriptInput)
	tx.NativeScripts = [][]byte{{0xde, 0xad}}

	findings := WitnessValidator{}.Check(tx, ctx)

	var codes []result.Code
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	require.Contains(t, codes, result.CodeMissingRedeemer)
}
